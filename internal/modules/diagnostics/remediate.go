package diagnostics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/dws-labs/transcript-core/internal/pkg/apperrors"
	"github.com/dws-labs/transcript-core/internal/pkg/events"
	"go.uber.org/zap"
)

// Executor runs bulk repair operations. Items are processed strictly one at
// a time: each remote call completes before the next is issued, which keeps
// progress reporting accurate and isolates per-item failures. These are
// administrative operations, not a hot path.
type Executor struct {
	store   RecordStore
	proc    ProcessingClient
	blob    BlobDownloader
	pub     *events.Publisher
	log     *zap.Logger
	isStale func(t models.TranscriptModel, now time.Time) bool
	now     func() time.Time
}

func NewExecutor(store RecordStore, proc ProcessingClient, blob BlobDownloader, pub *events.Publisher, scanner *Scanner, log *zap.Logger) *Executor {
	return &Executor{
		store:   store,
		proc:    proc,
		blob:    blob,
		pub:     pub,
		log:     log,
		isStale: scanner.isStale,
		now:     time.Now,
	}
}

// MarkProcessed sets is_processed on every given id. Idempotent: an
// already-processed id succeeds with no observable change.
func (e *Executor) MarkProcessed(ctx context.Context, ids []string, progress Progress) (*Result, error) {
	return e.run(ctx, "mark_processed", ids, progress, func(ctx context.Context, id string) error {
		_, err := e.store.Update(ctx, id, map[string]interface{}{"is_processed": true})
		return err
	})
}

// ForceReprocess asks the processing runtime to re-run ingestion for every
// id. It does not touch is_processed; the runtime flips it on completion.
func (e *Executor) ForceReprocess(ctx context.Context, ids []string, progress Progress) (*Result, error) {
	return e.run(ctx, "force_reprocess", ids, progress, func(ctx context.Context, id string) error {
		return e.proc.Reprocess(ctx, id)
	})
}

// FixIssues applies category-aware repair per id: empty-content records with
// an attached file get their text re-extracted, stalled records get
// processing re-triggered and updated_at refreshed. Healthy ids are counted
// as successes without any write.
func (e *Executor) FixIssues(ctx context.Context, ids []string, progress Progress) (*Result, error) {
	return e.run(ctx, "fix_issues", ids, progress, e.fixOne)
}

func (e *Executor) fixOne(ctx context.Context, id string) error {
	t, err := e.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("transcript %s not found", id)
	}

	patch := map[string]interface{}{}

	if !t.HasContent() && t.FilePath != nil && strings.TrimSpace(*t.FilePath) != "" {
		if e.blob == nil {
			return fmt.Errorf("blob storage is not configured")
		}
		content, err := e.blob.Download(ctx, *t.FilePath)
		if err != nil {
			return err
		}
		patch["content"] = string(content)
	}

	if !t.IsProcessed && e.isStale(*t, e.now()) {
		if err := e.proc.Reprocess(ctx, id); err != nil {
			return err
		}
		patch["updated_at"] = e.now()
	}

	if len(patch) == 0 {
		// Nothing wrong with this record; the repair is a no-op success.
		return nil
	}

	_, err = e.store.Update(ctx, id, patch)
	return err
}

// run is the shared batch discipline: validate up front, then walk the ids
// sequentially, recording per-item failures without aborting the remainder.
// Context cancellation is honored between items only, so a started item
// always finishes.
func (e *Executor) run(ctx context.Context, op string, ids []string, progress Progress, fn func(ctx context.Context, id string) error) (*Result, error) {
	if len(ids) == 0 {
		return nil, apperrors.Validationf("%s: no transcripts selected", op)
	}

	result := &Result{Errors: make(map[string]string)}
	total := len(ids)

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			result.Cancelled = true
			e.log.Warn("batch remediation cancelled",
				zap.String("op", op), zap.Int("completed", i), zap.Int("total", total))
			break
		}

		if err := fn(ctx, id); err != nil {
			remote := apperrors.Remote(id, err)
			result.Errors[id] = err.Error()
			e.log.Warn("remediation item failed",
				zap.String("op", op), zap.String("id", id), zap.Error(remote))
		} else {
			result.SuccessCount++
		}

		if progress != nil {
			progress(i+1, total)
		}
	}

	if e.pub != nil {
		_ = e.pub.Publish(ctx, events.TypeRemediationCompleted, map[string]interface{}{
			"op":            op,
			"success_count": result.SuccessCount,
			"error_count":   len(result.Errors),
			"cancelled":     result.Cancelled,
		})
	}

	return result, nil
}
