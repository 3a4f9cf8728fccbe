package tagedit

import (
	"context"
	"errors"
	"testing"

	"github.com/dws-labs/transcript-core/internal/config"
	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/dws-labs/transcript-core/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	lastIDs     []string
	lastOwner   string
	lastPatch   map[string]interface{}
	ownedCalled bool
	err         error
}

func (f *fakeStore) UpdateMany(_ context.Context, ids []string, patch map[string]interface{}) ([]models.TranscriptModel, error) {
	f.lastIDs, f.lastPatch = ids, patch
	if f.err != nil {
		return nil, f.err
	}
	return make([]models.TranscriptModel, len(ids)), nil
}

func (f *fakeStore) UpdateManyOwned(_ context.Context, ids []string, userID string, patch map[string]interface{}) ([]models.TranscriptModel, error) {
	f.ownedCalled = true
	f.lastIDs, f.lastOwner, f.lastPatch = ids, userID, patch
	if f.err != nil {
		return nil, f.err
	}
	return make([]models.TranscriptModel, len(ids)), nil
}

func newTestService(store RecordStore) *Service {
	return NewService(store, nil, config.TaggingConfig{CategoryChangeLimit: 3}, zap.NewNop())
}

func TestApplyEmptyIDsRejected(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.Apply(context.Background(), nil, "", ApplyRequest{Tags: []string{"m_and_a"}})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Nil(t, store.lastIDs, "no store call before validation")
}

func TestApplyReplacesTagSetDeduplicated(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	applied, err := svc.Apply(context.Background(), []string{"a", "b"}, "", ApplyRequest{
		Tags: []string{" m_and_a ", "valuation", "m_and_a"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StringArray{"m_and_a", "valuation"}, applied.Tags)
	assert.Equal(t, 2, applied.Updated)
	assert.False(t, applied.SourceSkipped)
	assert.Equal(t, models.StringArray{"m_and_a", "valuation"}, store.lastPatch["tags"])
	assert.NotContains(t, store.lastPatch, "source")
}

func TestApplySourceWithinLimit(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	source := models.SourceBoardMeeting
	applied, err := svc.Apply(context.Background(), []string{"a", "b", "c"}, "", ApplyRequest{
		Tags:   []string{"governance"},
		Source: &source,
	})
	require.NoError(t, err)

	assert.False(t, applied.SourceSkipped)
	assert.Equal(t, models.SourceBoardMeeting, store.lastPatch["source"])
}

func TestApplySourceSkippedOverLimitTagsStillLand(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	source := models.SourceBoardMeeting
	applied, err := svc.Apply(context.Background(), []string{"a", "b", "c", "d"}, "", ApplyRequest{
		Tags:   []string{"governance"},
		Source: &source,
	})
	require.NoError(t, err)

	assert.True(t, applied.SourceSkipped)
	assert.Equal(t, 4, applied.Updated)
	assert.NotContains(t, store.lastPatch, "source")
	assert.Equal(t, models.StringArray{"governance"}, store.lastPatch["tags"])
}

func TestApplyUnknownSourceRejected(t *testing.T) {
	svc := newTestService(&fakeStore{})

	source := models.Source("gossip")
	_, err := svc.Apply(context.Background(), []string{"a"}, "", ApplyRequest{Source: &source})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestApplyOwnerScoping(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.Apply(context.Background(), []string{"a"}, "user-1", ApplyRequest{Tags: []string{"x"}})
	require.NoError(t, err)
	assert.True(t, store.ownedCalled)
	assert.Equal(t, "user-1", store.lastOwner)
}

func TestApplyStoreErrorPropagates(t *testing.T) {
	store := &fakeStore{err: errors.New("deadlock")}
	svc := newTestService(store)

	_, err := svc.Apply(context.Background(), []string{"a"}, "", ApplyRequest{Tags: []string{"x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock")
}
