package diagnostics

import (
	"context"
	"time"

	"github.com/dws-labs/transcript-core/internal/pkg/apperrors"
	"github.com/dws-labs/transcript-core/internal/pkg/blobstore"
	redisc "github.com/dws-labs/transcript-core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const probeTimeout = 5 * time.Second

// Probe verifies the external collaborators are reachable before a
// diagnostics run. Advisory only: the scanner may still run with degraded
// health, the caller just surfaces the unhealthy flags.
type Probe struct {
	db    *gorm.DB
	rc    *redisc.Client
	blob  *blobstore.Client
	store RecordStore
	log   *zap.Logger
}

func NewProbe(db *gorm.DB, rc *redisc.Client, blob *blobstore.Client, store RecordStore, log *zap.Logger) *Probe {
	return &Probe{db: db, rc: rc, blob: blob, store: store, log: log}
}

// CheckHealth runs every reachability probe. Probe failures are caught and
// reported as false, never returned as errors.
func (p *Probe) CheckHealth(ctx context.Context) HealthReport {
	report := HealthReport{
		Database:          p.checkDatabase(ctx),
		Storage:           p.checkStorage(ctx),
		ProcessingRuntime: p.checkProcessingRuntime(ctx),
	}

	if report.Database {
		stats, err := p.store.Stats(ctx, "")
		if err != nil {
			p.logProbe("statistics", err)
			report.Database = false
		} else {
			report.Statistics = stats
		}
	}

	return report
}

func (p *Probe) checkDatabase(ctx context.Context) bool {
	if p.db == nil {
		return false
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		p.logProbe("database", err)
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		p.logProbe("database", err)
		return false
	}
	return true
}

func (p *Probe) checkStorage(ctx context.Context) bool {
	if p.blob == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := p.blob.CheckAccess(ctx); err != nil {
		p.logProbe("storage", err)
		return false
	}
	return true
}

func (p *Probe) checkProcessingRuntime(ctx context.Context) bool {
	if p.rc == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := p.rc.Ping(ctx); err != nil {
		p.logProbe("processing_runtime", err)
		return false
	}
	return true
}

func (p *Probe) logProbe(name string, err error) {
	hcErr := &apperrors.HealthCheckError{Probe: name, Err: err}
	p.log.Warn("health probe failed", zap.String("probe", name), zap.Error(hcErr))
}
