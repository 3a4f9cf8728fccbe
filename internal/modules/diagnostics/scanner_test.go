package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dws-labs/transcript-core/internal/config"
	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/dws-labs/transcript-core/internal/modules/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	transcripts []models.TranscriptModel
	listErr     error
	listFilter  transcript.ListFilter

	updates    map[string][]map[string]interface{}
	updateErr  map[string]error
	statsValue transcript.Stats
	statsErr   error
}

func newFakeStore(transcripts ...models.TranscriptModel) *fakeStore {
	return &fakeStore{
		transcripts: transcripts,
		updates:     make(map[string][]map[string]interface{}),
		updateErr:   make(map[string]error),
	}
}

func (f *fakeStore) List(_ context.Context, filter transcript.ListFilter) ([]models.TranscriptModel, error) {
	f.listFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	if filter.UserID == "" {
		return f.transcripts, nil
	}
	var out []models.TranscriptModel
	for _, t := range f.transcripts {
		if t.UserID == filter.UserID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*models.TranscriptModel, error) {
	for i := range f.transcripts {
		if f.transcripts[i].ID == id {
			t := f.transcripts[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Update(_ context.Context, id string, patch map[string]interface{}) (*models.TranscriptModel, error) {
	if err := f.updateErr[id]; err != nil {
		return nil, err
	}
	f.updates[id] = append(f.updates[id], patch)
	for i := range f.transcripts {
		if f.transcripts[i].ID == id {
			t := f.transcripts[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("transcript %s not found", id)
}

func (f *fakeStore) Stats(context.Context, string) (transcript.Stats, error) {
	return f.statsValue, f.statsErr
}

func testDiagnosticsConfig() config.DiagnosticsConfig {
	return config.DiagnosticsConfig{
		StalenessHours:      24,
		RecentWindowMinutes: 60,
		Watchlist:           []string{"weekly deal review", "all hands"},
	}
}

func newTestScanner(store RecordStore, now time.Time) *Scanner {
	s := NewScanner(store, testDiagnosticsConfig(), zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func makeTranscript(id string, age time.Duration, now time.Time, mutate func(*models.TranscriptModel)) models.TranscriptModel {
	t := models.TranscriptModel{
		Base:        models.Base{ID: id, CreatedAt: now.Add(-age), UpdatedAt: now.Add(-age)},
		Title:       "Project Falcon earnings call",
		Content:     "Revenue grew 12 percent quarter over quarter.",
		Source:      models.SourceEarningsCall,
		IsProcessed: true,
		UserID:      "user-1",
	}
	if mutate != nil {
		mutate(&t)
	}
	return t
}

func TestScanCategorizesIndependently(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	healthy := makeTranscript("healthy", 3*time.Hour, now, nil)
	unprocessedFresh := makeTranscript("unprocessed-fresh", 2*time.Hour, now, func(m *models.TranscriptModel) {
		m.IsProcessed = false
	})
	stuck := makeTranscript("stuck", 48*time.Hour, now, func(m *models.TranscriptModel) {
		m.IsProcessed = false
	})
	empty := makeTranscript("empty", 5*time.Hour, now, func(m *models.TranscriptModel) {
		m.Content = "   \n\t "
	})
	watchlisted := makeTranscript("watchlisted", 6*time.Hour, now, func(m *models.TranscriptModel) {
		m.Title = "Weekly Deal Review 2026-03-13"
	})
	recent := makeTranscript("recent", 10*time.Minute, now, nil)

	store := newFakeStore(healthy, unprocessedFresh, stuck, empty, watchlisted, recent)
	scanner := newTestScanner(store, now)

	report, err := scanner.Scan(context.Background(), ScanOptions{AllUsers: true})
	require.NoError(t, err)

	assert.Equal(t, 6, report.Stats.Scanned)
	assert.Equal(t, 5, report.Stats.Flagged) // healthy is the only clean record

	assert.ElementsMatch(t, idsOf(report.ByCategory[CategoryUnprocessed]), []string{"unprocessed-fresh", "stuck"})
	assert.ElementsMatch(t, idsOf(report.ByCategory[CategoryStuckInProcessing]), []string{"stuck"})
	assert.ElementsMatch(t, idsOf(report.ByCategory[CategoryEmptyContent]), []string{"empty"})
	assert.ElementsMatch(t, idsOf(report.ByCategory[CategoryPotentialDuplicate]), []string{"watchlisted"})
	assert.ElementsMatch(t, idsOf(report.ByCategory[CategoryRecentlyUploaded]), []string{"recent"})

	for _, category := range Categories {
		assert.Equal(t, len(report.ByCategory[category]), report.Stats.Counts[category])
	}
}

func TestScanTwiceOnUnchangedCorpusIsIdentical(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	store := newFakeStore(
		makeTranscript("healthy", 3*time.Hour, now, nil),
		makeTranscript("stuck", 48*time.Hour, now, func(m *models.TranscriptModel) {
			m.IsProcessed = false
		}),
		makeTranscript("empty", 5*time.Hour, now, func(m *models.TranscriptModel) {
			m.Content = ""
		}),
		makeTranscript("recent", 10*time.Minute, now, nil),
	)
	scanner := newTestScanner(store, now)

	first, err := scanner.Scan(context.Background(), ScanOptions{AllUsers: true})
	require.NoError(t, err)
	second, err := scanner.Scan(context.Background(), ScanOptions{AllUsers: true})
	require.NoError(t, err)

	assert.Equal(t, first.Stats, second.Stats)
	for _, category := range Categories {
		assert.Equal(t, idsOf(first.ByCategory[category]), idsOf(second.ByCategory[category]),
			"category %s", category)
	}
}

func TestScanWatchlistMatchIsCaseInsensitive(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	flagged := makeTranscript("flagged", 6*time.Hour, now, func(m *models.TranscriptModel) {
		m.Title = "WEEKLY DEAL REVIEW 2026-03-13"
	})
	store := newFakeStore(flagged)

	// The entry is deliberately not lowercased: the scanner must not lean on
	// config normalization for correctness.
	scanner := NewScanner(store, config.DiagnosticsConfig{
		StalenessHours:      24,
		RecentWindowMinutes: 60,
		Watchlist:           []string{" Weekly Deal Review "},
	}, zap.NewNop())
	scanner.now = func() time.Time { return now }

	report, err := scanner.Scan(context.Background(), ScanOptions{AllUsers: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, idsOf(report.ByCategory[CategoryPotentialDuplicate]), []string{"flagged"})
}

func TestScanMultipleCategoriesForOneRecord(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	// Empty, unprocessed and stale at once.
	bad := makeTranscript("bad", 72*time.Hour, now, func(m *models.TranscriptModel) {
		m.Content = ""
		m.IsProcessed = false
	})

	store := newFakeStore(bad)
	scanner := newTestScanner(store, now)

	report, err := scanner.Scan(context.Background(), ScanOptions{AllUsers: true})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Stats.Flagged)
	assert.Contains(t, idsOf(report.ByCategory[CategoryEmptyContent]), "bad")
	assert.Contains(t, idsOf(report.ByCategory[CategoryUnprocessed]), "bad")
	assert.Contains(t, idsOf(report.ByCategory[CategoryStuckInProcessing]), "bad")
}

func TestScanSortsNewestFirst(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	older := makeTranscript("older", 5*time.Hour, now, func(m *models.TranscriptModel) {
		m.IsProcessed = false
	})
	newer := makeTranscript("newer", 1*time.Hour, now, func(m *models.TranscriptModel) {
		m.IsProcessed = false
	})

	store := newFakeStore(older, newer)
	scanner := newTestScanner(store, now)

	report, err := scanner.Scan(context.Background(), ScanOptions{AllUsers: true})
	require.NoError(t, err)

	require.Len(t, report.ByCategory[CategoryUnprocessed], 2)
	assert.Equal(t, "newer", report.ByCategory[CategoryUnprocessed][0].ID)
	assert.Equal(t, "older", report.ByCategory[CategoryUnprocessed][1].ID)
}

func TestScanScopesToOwnerUnlessAllUsers(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	mine := makeTranscript("mine", 2*time.Hour, now, func(m *models.TranscriptModel) {
		m.UserID = "user-1"
		m.IsProcessed = false
	})
	theirs := makeTranscript("theirs", 2*time.Hour, now, func(m *models.TranscriptModel) {
		m.UserID = "user-2"
		m.IsProcessed = false
	})

	store := newFakeStore(mine, theirs)
	scanner := newTestScanner(store, now)

	report, err := scanner.Scan(context.Background(), ScanOptions{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Stats.Scanned)
	assert.Equal(t, "user-1", store.listFilter.UserID)

	report, err = scanner.Scan(context.Background(), ScanOptions{UserID: "user-1", AllUsers: true})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Stats.Scanned)
	assert.Equal(t, "", store.listFilter.UserID)
}

func TestScanMalformedMetadataDoesNotAbort(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	broken := makeTranscript("broken", 2*time.Hour, now, func(m *models.TranscriptModel) {
		m.Metadata = models.TranscriptMeta{Malformed: true}
		m.IsProcessed = false
	})

	store := newFakeStore(broken)
	scanner := newTestScanner(store, now)

	report, err := scanner.Scan(context.Background(), ScanOptions{AllUsers: true})
	require.NoError(t, err)
	assert.Contains(t, idsOf(report.ByCategory[CategoryUnprocessed]), "broken")
}

func TestScanStoreFailureIsFatal(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("connection refused")
	scanner := newTestScanner(store, time.Now())

	_, err := scanner.Scan(context.Background(), ScanOptions{AllUsers: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func idsOf(list []models.TranscriptModel) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.ID)
	}
	return out
}
