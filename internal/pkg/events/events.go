package events

import (
	"context"
	"encoding/json"
	"time"

	redisc "github.com/dws-labs/transcript-core/internal/pkg/redis"
	"github.com/redis/go-redis/v9"
)

// Event types published by the maintenance pipeline. Callers subscribe to
// these instead of the pipeline reaching into any UI notification state.
const (
	TypeScanCompleted        = "diagnostics.scan.completed"
	TypeRemediationCompleted = "diagnostics.remediation.completed"
	TypeTagsApplied          = "tags.applied"
	TypeTranscriptProcessed  = "transcript.processed"
)

const channel = "tc:events"

// Event is the envelope published on the notification channel.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	At      time.Time       `json:"at"`
}

// Publisher fan-outs pipeline events over Redis pub/sub.
type Publisher struct {
	rc *redisc.Client
}

func NewPublisher(rc *redisc.Client) *Publisher {
	return &Publisher{rc: rc}
}

// Publish emits an event. Failures are returned but callers typically treat
// publishing as best effort.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	if p == nil || p.rc == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(Event{Type: eventType, Payload: raw, At: time.Now()})
	if err != nil {
		return err
	}
	return p.rc.Publish(ctx, channel, data)
}

// Subscribe returns a pub/sub subscription on the pipeline event channel.
func (p *Publisher) Subscribe(ctx context.Context) *redis.PubSub {
	return p.rc.Subscribe(ctx, channel)
}
