package processing

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	appcfg "github.com/dws-labs/transcript-core/internal/config"
	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/dws-labs/transcript-core/internal/pkg/events"
	"github.com/dws-labs/transcript-core/internal/pkg/taskqueue"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	TaskTypeReprocess = "processing:reprocess"
	TaskTypeSummary   = "processing:summary"
)

var errTranscriptEmpty = errors.New("transcript not found or empty")

// Worker executes transcript processing tasks: chunking the content,
// generating a cached summary and flipping the processed flags.
type Worker struct {
	db      *gorm.DB
	taskSvc *taskqueue.Service
	pub     *events.Publisher
	cfg     appcfg.AIConfig
	log     *zap.Logger
}

func NewWorker(db *gorm.DB, taskSvc *taskqueue.Service, pub *events.Publisher, cfg appcfg.AIConfig, log *zap.Logger) *Worker {
	return &Worker{db: db, taskSvc: taskSvc, pub: pub, cfg: cfg, log: log}
}

type reprocessPayload struct {
	TranscriptID string `json:"transcript_id"`
}

// Reprocess enqueues a processing task for the transcript. Duplicate requests
// for the same transcript collapse onto the existing unfinished task.
func (w *Worker) Reprocess(ctx context.Context, transcriptID string) error {
	transcriptID = strings.TrimSpace(transcriptID)
	if transcriptID == "" {
		return errors.New("transcript id is required")
	}

	payload := reprocessPayload{TranscriptID: transcriptID}
	task, err := w.taskSvc.Enqueue(ctx, TaskTypeReprocess, payload, transcriptID)
	if err != nil {
		return err
	}

	// Execute immediately in a goroutine (in production use a worker pool)
	if task.Status == taskqueue.TaskPending {
		go w.executeReprocess(context.Background(), task.ID, payload)
	}
	return nil
}

// setTaskStatus records a task transition; a failed write is logged, the
// processing outcome itself is not rolled back over it.
func (w *Worker) setTaskStatus(ctx context.Context, taskID string, status taskqueue.TaskStatus, result interface{}, errMsg string) {
	if err := w.taskSvc.UpdateStatus(ctx, taskID, status, result, errMsg); err != nil {
		w.log.Warn("task status update failed",
			zap.String("task_id", taskID),
			zap.String("status", string(status)),
			zap.Error(err))
	}
}

func (w *Worker) executeReprocess(ctx context.Context, taskID string, payload reprocessPayload) {
	w.setTaskStatus(ctx, taskID, taskqueue.TaskRunning, nil, "")

	var t models.TranscriptModel
	err := w.db.WithContext(ctx).First(&t, "id = ?", payload.TranscriptID).Error
	if err != nil || !t.HasContent() {
		w.setTaskStatus(ctx, taskID, taskqueue.TaskFailed, nil, errTranscriptEmpty.Error())
		return
	}

	chunks := Chunk(t.Content, ChunkOptions{})

	patch := map[string]interface{}{"is_processed": true}

	summarized := false
	if w.cfg.EnableSummary {
		summary, err := w.summarize(ctx, &t)
		if err != nil {
			w.log.Warn("summary generation failed",
				zap.String("transcript_id", t.ID),
				zap.Error(err))
		} else if summary != "" {
			summarized = true
			patch["is_summarized"] = true
		}
	}

	if err := w.db.WithContext(ctx).Model(&models.TranscriptModel{}).
		Where("id = ?", t.ID).Updates(patch).Error; err != nil {
		w.setTaskStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error())
		return
	}

	if err := w.pub.Publish(ctx, events.TypeTranscriptProcessed, gin.H{
		"transcript_id": t.ID,
		"chunks":        len(chunks),
		"summarized":    summarized,
	}); err != nil {
		w.log.Warn("event publish failed", zap.Error(err))
	}

	w.log.Info("transcript processed",
		zap.String("transcript_id", t.ID),
		zap.Int("chunks", len(chunks)),
		zap.Bool("summarized", summarized))

	w.setTaskStatus(ctx, taskID, taskqueue.TaskCompleted, gin.H{
		"chunks":     len(chunks),
		"summarized": summarized,
	}, "")
}

// summarize generates and caches a summary for the transcript, reusing a
// cached one when present.
func (w *Worker) summarize(ctx context.Context, t *models.TranscriptModel) (string, error) {
	lang := w.cfg.SummaryTargetLanguage
	hash := summaryHash(t.ID, lang)

	var cached models.TranscriptSummaryModel
	err := w.db.WithContext(ctx).Where("hash = ?", hash).First(&cached).Error
	if err == nil {
		return cached.Summary, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	provider := selectProvider(w.cfg)
	if provider == nil {
		return "", errors.New("no enabled AI provider")
	}

	summary, err := callSummary(ctx, provider, t.Content, lang)
	if err != nil {
		return "", err
	}

	summaryModel := models.TranscriptSummaryModel{
		Hash:         hash,
		Summary:      summary,
		TranscriptID: t.ID,
		Lang:         lang,
	}
	w.db.WithContext(ctx).Where("hash = ?", hash).
		Assign(summaryModel).FirstOrCreate(&summaryModel)

	return summary, nil
}

// GetSummary returns the cached summary for a transcript, (nil, nil) when
// none has been generated yet.
func (w *Worker) GetSummary(ctx context.Context, transcriptID, lang string) (*models.TranscriptSummaryModel, error) {
	if lang == "" {
		lang = w.cfg.SummaryTargetLanguage
	}
	var summary models.TranscriptSummaryModel
	err := w.db.WithContext(ctx).
		Where("hash = ?", summaryHash(transcriptID, lang)).First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func summaryHash(transcriptID, lang string) string {
	if lang == "" {
		lang = "default"
	}
	h := sha256.Sum256([]byte(transcriptID + ":" + lang))
	return fmt.Sprintf("%x", h)
}

// PruneFinishedTasks drops finished task records older than the given age.
// Wired to the periodic scheduler.
func (w *Worker) PruneFinishedTasks(ctx context.Context, olderThan time.Duration) error {
	before := time.Now().Add(-olderThan).UnixMilli()
	return w.taskSvc.DeleteFinished(ctx, before)
}
