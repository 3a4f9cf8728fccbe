// Package ingest accepts transcript uploads: the raw file lands in blob
// storage, a transcript record is created and processing is enqueued.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/dws-labs/transcript-core/internal/modules/classifier"
	"github.com/dws-labs/transcript-core/internal/modules/transcript"
	"github.com/dws-labs/transcript-core/internal/pkg/apperrors"
	"github.com/dws-labs/transcript-core/internal/pkg/blobstore"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Uploader is the blob storage slice ingestion needs.
type Uploader interface {
	Upload(ctx context.Context, objectKey string, payload []byte, contentType string) (string, error)
}

// Processor kicks off asynchronous transcript processing.
type Processor interface {
	Reprocess(ctx context.Context, transcriptID string) error
}

// Input describes one transcript upload.
type Input struct {
	Title       string
	Filename    string
	Data        []byte
	ContentType string
	Source      models.Source
	Tags        []string
	UserID      string
}

// Service runs the ingestion pipeline.
type Service struct {
	records *transcript.Service
	blob    Uploader
	proc    Processor
	log     *zap.Logger
}

func NewService(records *transcript.Service, blob Uploader, proc Processor, log *zap.Logger) *Service {
	return &Service{records: records, blob: blob, proc: proc, log: log}
}

// Ingest stores the uploaded file, creates the transcript record and enqueues
// processing. The record is created even when the blob upload is skipped
// (no storage configured); processing enqueue failures are logged, not fatal.
func (s *Service) Ingest(ctx context.Context, in Input) (*models.TranscriptModel, error) {
	if len(in.Data) == 0 {
		return nil, apperrors.Validationf("uploaded file is empty")
	}
	if !utf8.Valid(in.Data) {
		return nil, apperrors.Validationf("uploaded file is not valid UTF-8 text")
	}

	content := string(in.Data)
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = titleFromFilename(in.Filename)
	}

	source := in.Source
	if source == "" {
		source = classifier.DetectSourceCategory(title, content)
	} else if !models.IsKnownSource(source) {
		return nil, apperrors.Validationf("unknown source category %q", source)
	}

	tags := models.StringArray(in.Tags).Dedupe()
	if len(tags) == 0 {
		tags = models.StringArray(classifier.SuggestTags(content))
	}

	t := models.TranscriptModel{
		Title:   title,
		Content: content,
		Source:  source,
		Tags:    tags,
		UserID:  in.UserID,
	}

	if s.blob != nil {
		objectKey := buildObjectKey(in.Filename)
		if _, err := s.blob.Upload(ctx, objectKey, in.Data, contentTypeOrDefault(in.ContentType)); err != nil {
			return nil, fmt.Errorf("blob upload: %w", err)
		}
		t.FilePath = &objectKey
	}

	if err := s.records.Create(ctx, &t); err != nil {
		return nil, err
	}

	if err := s.proc.Reprocess(ctx, t.ID); err != nil {
		s.log.Warn("processing enqueue failed",
			zap.String("transcript_id", t.ID),
			zap.Error(err))
	}

	s.log.Info("transcript ingested",
		zap.String("transcript_id", t.ID),
		zap.String("source", string(source)),
		zap.Int("bytes", len(in.Data)))

	return &t, nil
}

func buildObjectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if ext == "" || len(ext) > 10 {
		ext = ".txt"
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
	return blobstore.NormalizeObjectKey("transcripts/" + name)
}

func titleFromFilename(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" || base == "." {
		return "Untitled transcript"
	}
	return base
}

func contentTypeOrDefault(ct string) string {
	if strings.TrimSpace(ct) == "" {
		return "text/plain; charset=utf-8"
	}
	return ct
}
