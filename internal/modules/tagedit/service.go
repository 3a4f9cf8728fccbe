// Package tagedit applies tag and source-category edits across many
// transcripts at once.
package tagedit

import (
	"context"

	"github.com/dws-labs/transcript-core/internal/config"
	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/dws-labs/transcript-core/internal/pkg/apperrors"
	"github.com/dws-labs/transcript-core/internal/pkg/events"
	"go.uber.org/zap"
)

// RecordStore is the slice of the transcript service bulk edits need.
type RecordStore interface {
	UpdateMany(ctx context.Context, ids []string, patch map[string]interface{}) ([]models.TranscriptModel, error)
	UpdateManyOwned(ctx context.Context, ids []string, userID string, patch map[string]interface{}) ([]models.TranscriptModel, error)
}

// ApplyRequest describes one bulk edit. Tags replace the prior set on every
// addressed transcript. Source, when non-nil, recategorizes them as well.
type ApplyRequest struct {
	Tags   []string       `json:"tags"`
	Source *models.Source `json:"source,omitempty"`
}

// Applied reports the outcome of a bulk edit.
type Applied struct {
	Tags    models.StringArray `json:"tags"`
	Updated int                `json:"updated"`
	// SourceSkipped is set when a requested source change was withheld
	// because the batch exceeded the category change limit.
	SourceSkipped bool `json:"source_skipped,omitempty"`
}

// Service performs batch tag edits.
type Service struct {
	store RecordStore
	pub   *events.Publisher
	cfg   config.TaggingConfig
	log   *zap.Logger
}

func NewService(store RecordStore, pub *events.Publisher, cfg config.TaggingConfig, log *zap.Logger) *Service {
	return &Service{store: store, pub: pub, cfg: cfg, log: log}
}

// Apply writes the given tag set to every transcript in ids, replacing
// whatever was there. A source change riding along with a batch larger than
// the configured limit is skipped; the tags still land. A non-empty ownerID
// restricts the edit to that owner's transcripts.
func (s *Service) Apply(ctx context.Context, ids []string, ownerID string, req ApplyRequest) (*Applied, error) {
	if len(ids) == 0 {
		return nil, apperrors.Validationf("no transcripts selected")
	}

	tags := models.StringArray(req.Tags).Dedupe()
	patch := map[string]interface{}{"tags": tags}

	applied := &Applied{Tags: tags}
	if req.Source != nil {
		if !models.IsKnownSource(*req.Source) {
			return nil, apperrors.Validationf("unknown source category %q", *req.Source)
		}
		if len(ids) > s.cfg.CategoryChangeLimit {
			applied.SourceSkipped = true
			s.log.Warn("source change skipped for oversized batch",
				zap.Int("batch", len(ids)),
				zap.Int("limit", s.cfg.CategoryChangeLimit))
		} else {
			patch["source"] = *req.Source
		}
	}

	var (
		updated []models.TranscriptModel
		err     error
	)
	if ownerID != "" {
		updated, err = s.store.UpdateManyOwned(ctx, ids, ownerID, patch)
	} else {
		updated, err = s.store.UpdateMany(ctx, ids, patch)
	}
	if err != nil {
		return nil, err
	}
	applied.Updated = len(updated)

	if err := s.pub.Publish(ctx, events.TypeTagsApplied, applied); err != nil {
		s.log.Warn("event publish failed", zap.Error(err))
	}
	s.log.Info("batch tag edit applied",
		zap.Int("updated", applied.Updated),
		zap.Int("tags", len(tags)),
		zap.Bool("source_skipped", applied.SourceSkipped))

	return applied, nil
}
