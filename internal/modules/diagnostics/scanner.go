package diagnostics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dws-labs/transcript-core/internal/config"
	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/dws-labs/transcript-core/internal/modules/transcript"
	"go.uber.org/zap"
)

// Scanner classifies every transcript into zero or more issue categories.
// A scan is a pure read: it holds no state between runs and is safe to
// invoke concurrently with itself.
type Scanner struct {
	store RecordStore
	cfg   config.DiagnosticsConfig
	log   *zap.Logger
	now   func() time.Time
}

func NewScanner(store RecordStore, cfg config.DiagnosticsConfig, log *zap.Logger) *Scanner {
	return &Scanner{
		store: store,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

// Scan fetches the visible transcript set and evaluates every category
// predicate per record. A totally unreachable store is the only fatal error.
func (s *Scanner) Scan(ctx context.Context, opts ScanOptions) (*Report, error) {
	filter := transcript.ListFilter{}
	if !opts.AllUsers {
		filter.UserID = opts.UserID
	}

	transcripts, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("scan: list transcripts: %w", err)
	}

	now := s.now()
	report := &Report{
		Stats: ScanStats{
			Scanned: len(transcripts),
			Counts:  make(map[Category]int, len(Categories)),
		},
		ByCategory: make(map[Category][]models.TranscriptModel, len(Categories)),
	}

	flagged := make(map[string]struct{})
	for _, t := range transcripts {
		if t.Metadata.Malformed {
			// Downgraded on load; note it and carry on with the record.
			s.log.Warn("malformed transcript metadata, treating as absent",
				zap.String("id", t.ID))
		}

		for _, category := range s.categorize(t, now) {
			report.ByCategory[category] = append(report.ByCategory[category], t)
			flagged[t.ID] = struct{}{}
		}
	}

	for _, category := range Categories {
		list := report.ByCategory[category]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
		report.ByCategory[category] = list
		report.Stats.Counts[category] = len(list)
	}
	report.Stats.Flagged = len(flagged)

	return report, nil
}

// categorize evaluates every category predicate for one transcript.
// Categories are independent boolean facts, not a single enum state, so a
// record can come back with several.
func (s *Scanner) categorize(t models.TranscriptModel, now time.Time) []Category {
	var out []Category

	if !t.HasContent() {
		out = append(out, CategoryEmptyContent)
	}
	if !t.IsProcessed {
		out = append(out, CategoryUnprocessed)
		if s.isStale(t, now) {
			out = append(out, CategoryStuckInProcessing)
		}
	}
	if s.matchesWatchlist(t) {
		out = append(out, CategoryPotentialDuplicate)
	}
	if now.Sub(t.CreatedAt) <= s.recentWindow() {
		out = append(out, CategoryRecentlyUploaded)
	}

	return out
}

// isStale reports whether an unprocessed transcript has overstayed the
// staleness threshold.
func (s *Scanner) isStale(t models.TranscriptModel, now time.Time) bool {
	return now.Sub(t.CreatedAt) > s.stalenessThreshold()
}

// matchesWatchlist checks title and content against the recurring-event
// watch-list. A heuristic for flagging likely duplicates, not a guarantee.
func (s *Scanner) matchesWatchlist(t models.TranscriptModel) bool {
	if len(s.cfg.Watchlist) == 0 {
		return false
	}
	title := strings.ToLower(t.Title)
	content := strings.ToLower(t.Content)
	for _, entry := range s.cfg.Watchlist {
		// Entries come lowercased from config normalization, but the scanner
		// must not depend on how its config was built.
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if strings.Contains(title, entry) || strings.Contains(content, entry) {
			return true
		}
	}
	return false
}

func (s *Scanner) stalenessThreshold() time.Duration {
	return time.Duration(s.cfg.StalenessHours) * time.Hour
}

func (s *Scanner) recentWindow() time.Duration {
	return time.Duration(s.cfg.RecentWindowMinutes) * time.Minute
}
