package transcript

import (
	"context"
	"errors"
	"strings"

	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/dws-labs/transcript-core/internal/pkg/pagination"
	"github.com/dws-labs/transcript-core/internal/pkg/response"
	"gorm.io/gorm"
)

// Service is the transcript record store. It owns all reads and writes to
// the transcripts table; the maintenance pipeline consumes it through the
// diagnostics.RecordStore interface.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListFilter narrows List results. Zero values are ignored.
type ListFilter struct {
	UserID      string
	Source      models.Source
	Unprocessed bool
	Search      string
}

// List returns every transcript matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.TranscriptModel, error) {
	tx := s.db.WithContext(ctx).Model(&models.TranscriptModel{}).Order("created_at DESC")
	tx = applyFilter(tx, filter)

	var transcripts []models.TranscriptModel
	if err := tx.Find(&transcripts).Error; err != nil {
		return nil, err
	}
	return transcripts, nil
}

// ListPaged returns one page of transcripts plus pagination metadata.
func (s *Service) ListPaged(ctx context.Context, filter ListFilter, q pagination.Query) ([]models.TranscriptModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.TranscriptModel{}).Order("created_at DESC")
	tx = applyFilter(tx, filter)

	var transcripts []models.TranscriptModel
	pag, err := pagination.Paginate(tx, q, &transcripts)
	return transcripts, pag, err
}

func applyFilter(tx *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.UserID != "" {
		tx = tx.Where("user_id = ?", filter.UserID)
	}
	if filter.Source != "" {
		tx = tx.Where("source = ?", filter.Source)
	}
	if filter.Unprocessed {
		tx = tx.Where("is_processed = ?", false)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		tx = tx.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	return tx
}

// GetByID fetches a single transcript. Returns (nil, nil) when absent.
func (s *Service) GetByID(ctx context.Context, id string) (*models.TranscriptModel, error) {
	var t models.TranscriptModel
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a new transcript record.
func (s *Service) Create(ctx context.Context, t *models.TranscriptModel) error {
	t.Tags = t.Tags.Dedupe()
	if t.Source == "" {
		t.Source = models.SourceOther
	}
	return s.db.WithContext(ctx).Create(t).Error
}

// Update applies a column patch to one transcript and returns the updated row.
func (s *Service) Update(ctx context.Context, id string, patch map[string]interface{}) (*models.TranscriptModel, error) {
	result := s.db.WithContext(ctx).Model(&models.TranscriptModel{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetByID(ctx, id)
}

// UpdateMany applies the same column patch to every given id.
func (s *Service) UpdateMany(ctx context.Context, ids []string, patch map[string]interface{}) ([]models.TranscriptModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := s.db.WithContext(ctx).Model(&models.TranscriptModel{}).Where("id IN ?", ids).Updates(patch).Error; err != nil {
		return nil, err
	}

	var transcripts []models.TranscriptModel
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&transcripts).Error; err != nil {
		return nil, err
	}
	return transcripts, nil
}

// UpdateManyOwned is UpdateMany restricted to one owner's transcripts.
// Ids belonging to someone else are silently left untouched.
func (s *Service) UpdateManyOwned(ctx context.Context, ids []string, userID string, patch map[string]interface{}) ([]models.TranscriptModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	scope := s.db.WithContext(ctx).Model(&models.TranscriptModel{}).
		Where("id IN ? AND user_id = ?", ids, userID)
	if err := scope.Updates(patch).Error; err != nil {
		return nil, err
	}

	var transcripts []models.TranscriptModel
	if err := s.db.WithContext(ctx).Where("id IN ? AND user_id = ?", ids, userID).Find(&transcripts).Error; err != nil {
		return nil, err
	}
	return transcripts, nil
}

// Stats aggregates corpus-level processing counts, optionally per owner.
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	var stats Stats

	base := s.db.WithContext(ctx).Model(&models.TranscriptModel{})
	if userID != "" {
		base = base.Where("user_id = ?", userID)
	}

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return Stats{}, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_processed = ?", true).Count(&stats.Processed).Error; err != nil {
		return Stats{}, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_summarized = ?", true).Count(&stats.Summarized).Error; err != nil {
		return Stats{}, err
	}

	stats.Unprocessed = stats.Total - stats.Processed
	if stats.Total > 0 {
		stats.ProcessedPercent = float64(stats.Processed) / float64(stats.Total) * 100
	}
	return stats, nil
}

// Stats is the aggregate corpus statistics block.
type Stats struct {
	Total            int64   `json:"total"`
	Processed        int64   `json:"processed"`
	ProcessedPercent float64 `json:"processed_percent"`
	Unprocessed      int64   `json:"unprocessed"`
	Summarized       int64   `json:"summarized"`
}
