package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "forestinv/internal/errors"
	"forestinv/internal/model"
)

func TestTreeService_Create(t *testing.T) {
	plotID := uuid.New()
	speciesID := uuid.New()
	userID := uuid.New()

	input := CreateTreeInput{
		TreeNumber:  7,
		Latitude:    14.61,
		Longitude:   -90.51,
		DBH:         28.3,
		Height:      15.0,
		PlotID:      plotID,
		SpeciesID:   speciesID,
		CreatedByID: userID,
	}

	t.Run("creates with defaults when the plot exists", func(t *testing.T) {
		trees := new(MockTreeRepository)
		plots := new(MockPlotRepository)
		plots.On("FindByID", mock.Anything, plotID).Return(&model.Plot{ID: plotID}, nil)
		trees.On("Create", mock.Anything, mock.AnythingOfType("*model.Tree")).Return(nil)

		svc := NewTreeService(trees, plots)
		tree, err := svc.Create(context.Background(), input)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tree.ID)
		assert.Len(t, tree.Code, 8)
		assert.Equal(t, model.TreeHealthy, tree.Condition)
		assert.False(t, tree.Synced)
		assert.Equal(t, userID, tree.CreatedByID)
		assert.False(t, tree.MeasuredAt.IsZero())

		trees.AssertExpectations(t)
		plots.AssertExpectations(t)
	})

	t.Run("rejects an unknown plot", func(t *testing.T) {
		trees := new(MockTreeRepository)
		plots := new(MockPlotRepository)
		plots.On("FindByID", mock.Anything, plotID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTreeService(trees, plots)
		tree, err := svc.Create(context.Background(), input)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, tree)
		trees.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTreeService_Update(t *testing.T) {
	id := uuid.New()
	existing := &model.Tree{ID: id, DBH: 20, Height: 10, Condition: model.TreeHealthy}

	trees := new(MockTreeRepository)
	plots := new(MockPlotRepository)
	trees.On("FindByID", mock.Anything, id).Return(existing, nil)
	trees.On("Update", mock.Anything, existing).Return(nil)

	newDBH := 22.5
	condition := model.TreeSick
	synced := true

	svc := NewTreeService(trees, plots)
	updated, err := svc.Update(context.Background(), id, UpdateTreeInput{
		DBH:       &newDBH,
		Condition: &condition,
		Synced:    &synced,
	})

	require.NoError(t, err)
	assert.Equal(t, 22.5, updated.DBH)
	assert.Equal(t, 10.0, updated.Height) // untouched field stays
	assert.Equal(t, model.TreeSick, updated.Condition)
	assert.True(t, updated.Synced)
	assert.NotNil(t, updated.UpdatedAt)
	trees.AssertExpectations(t)
}

func TestTreeService_GetAndDelete_NotFound(t *testing.T) {
	id := uuid.New()
	trees := new(MockTreeRepository)
	plots := new(MockPlotRepository)
	trees.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewTreeService(trees, plots)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	trees.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTreeDendrometrics(t *testing.T) {
	tree := &model.Tree{DBH: 30, Height: 20}
	assert.InDelta(t, BasalArea(30), tree.BasalArea(), 1e-12)
	assert.InDelta(t, StemVolume(30, 20, DefaultFormFactor), tree.Volume(), 1e-12)
}
