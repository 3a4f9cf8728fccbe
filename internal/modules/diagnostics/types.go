// Package diagnostics implements the corpus maintenance pipeline: the
// environment health probe, the issue scanner, and the remediation executor.
package diagnostics

import (
	"context"

	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/dws-labs/transcript-core/internal/modules/transcript"
)

// Category is a derived, non-exclusive classification of a transcript.
// Membership is recomputed on every scan and never persisted; a transcript
// can sit in several categories at once.
type Category string

const (
	CategoryUnprocessed        Category = "unprocessed"
	CategoryStuckInProcessing  Category = "stuck_in_processing"
	CategoryEmptyContent       Category = "empty_content"
	CategoryPotentialDuplicate Category = "potential_duplicate"
	CategoryRecentlyUploaded   Category = "recently_uploaded"
)

// Categories lists every scan category in report order.
var Categories = []Category{
	CategoryUnprocessed,
	CategoryStuckInProcessing,
	CategoryEmptyContent,
	CategoryPotentialDuplicate,
	CategoryRecentlyUploaded,
}

// RecordStore is the narrow slice of the transcript service the pipeline
// needs. Tests drive the scanner and executor through fakes of this.
type RecordStore interface {
	List(ctx context.Context, filter transcript.ListFilter) ([]models.TranscriptModel, error)
	GetByID(ctx context.Context, id string) (*models.TranscriptModel, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) (*models.TranscriptModel, error)
	Stats(ctx context.Context, userID string) (transcript.Stats, error)
}

// ProcessingClient triggers the external ingestion/summarization runtime.
// Completion (and the is_processed flip it implies) happens asynchronously
// on the collaborator's side.
type ProcessingClient interface {
	Reprocess(ctx context.Context, transcriptID string) error
}

// BlobDownloader fetches an attached source file for re-extraction.
type BlobDownloader interface {
	Download(ctx context.Context, objectKey string) ([]byte, error)
}

// ScanOptions narrows a scan run.
type ScanOptions struct {
	// UserID scopes the scan to one owner's corpus. Ignored when AllUsers.
	UserID string
	// AllUsers scans the whole corpus; requires elevated privilege,
	// enforced by the caller.
	AllUsers bool
}

// ScanStats summarizes a scan run.
type ScanStats struct {
	Scanned int              `json:"scanned"`
	Flagged int              `json:"flagged"`
	Counts  map[Category]int `json:"counts"`
}

// Report is the issue scanner's output: per-category transcript lists, each
// sorted by creation time descending.
type Report struct {
	Stats      ScanStats                             `json:"stats"`
	ByCategory map[Category][]models.TranscriptModel `json:"by_category"`
}

// Result is produced by every batch remediation operation. It never
// partial-throws: item failures land in Errors keyed by transcript id.
type Result struct {
	SuccessCount int               `json:"success_count"`
	Errors       map[string]string `json:"errors"`
	// Cancelled is set when the batch stopped early on context cancellation;
	// already-processed items keep their outcome.
	Cancelled bool `json:"cancelled,omitempty"`
}

// Progress is invoked after every processed item with the running completion
// fraction (completed out of total). May be nil.
type Progress func(completed, total int)

// HealthReport is the environment probe's output. Booleans report
// reachability; probe failures read as false, never as an error.
type HealthReport struct {
	Database          bool             `json:"database"`
	Storage           bool             `json:"storage"`
	ProcessingRuntime bool             `json:"processing_runtime"`
	Statistics        transcript.Stats `json:"statistics"`
}

// Healthy reports whether every probe succeeded.
func (r HealthReport) Healthy() bool {
	return r.Database && r.Storage && r.ProcessingRuntime
}
