package diagnostics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCheckHealthUnreachableCollaboratorsReadFalse(t *testing.T) {
	// No database, redis or blob storage wired at all: every probe must
	// come back false without an error or a panic.
	probe := NewProbe(nil, nil, nil, newFakeStore(), zap.NewNop())

	report := probe.CheckHealth(context.Background())

	assert.False(t, report.Database)
	assert.False(t, report.Storage)
	assert.False(t, report.ProcessingRuntime)
	assert.False(t, report.Healthy())
	assert.Zero(t, report.Statistics.Total)
}

func TestHealthReportHealthy(t *testing.T) {
	assert.True(t, HealthReport{Database: true, Storage: true, ProcessingRuntime: true}.Healthy())
	assert.False(t, HealthReport{Database: true, Storage: true}.Healthy())
	assert.False(t, HealthReport{}.Healthy())
}
