package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irodionov/ifcmerge/internal/domain/services"
	"github.com/irodionov/ifcmerge/internal/infrastructure/step"
)

func newAnalyzeHandler() *AnalyzeHandler {
	return NewAnalyzeHandler(step.NewStore(), services.NewAnalyzeService())
}

func TestAnalyzeHandler_Handle(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "base.ifc", baseFixture)

	report, err := newAnalyzeHandler().Handle(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, report.Path)
	assert.Equal(t, "IFC4", report.Schema)
	assert.Equal(t, 1, report.Products)
	assert.Equal(t, 1, report.Materials)
	assert.Equal(t, []string{"Concrete"}, report.MaterialNames)
	assert.Equal(t, 1, report.SurfaceStyles)
	assert.Equal(t, 1, report.StyledItems)
	assert.Equal(t, 1, report.Colours)
	require.Len(t, report.ColourSamples, 1)
	assert.InDelta(t, 0.8, report.ColourSamples[0].R, 1e-9)
	assert.Equal(t, 1, report.MaterialRelations)
	assert.Equal(t, 0, report.MalformedGlobalIDs)
	assert.Equal(t, 0, report.DuplicateGlobalIDs)
}

func TestAnalyzeHandler_Handle_DoesNotModifyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "base.ifc", baseFixture)

	_, err := newAnalyzeHandler().Handle(context.Background(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, baseFixture, string(data))

	// No new files appear next to the input.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAnalyzeHandler_Handle_MissingFile(t *testing.T) {
	_, err := newAnalyzeHandler().Handle(context.Background(), filepath.Join(t.TempDir(), "missing.ifc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening model")
}

func TestAnalyzeHandler_Handle_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newAnalyzeHandler().Handle(ctx, "whatever.ifc")
	assert.ErrorIs(t, err, context.Canceled)
}
