package handlers

import (
	"context"
	"fmt"

	"github.com/irodionov/ifcmerge/internal/domain/ports"
	"github.com/irodionov/ifcmerge/internal/domain/services"
)

// AnalyzeHandler produces a read-only appearance report for one file. It
// never creates or modifies anything.
type AnalyzeHandler struct {
	store    ports.ModelStore
	analyzer *services.AnalyzeService
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(store ports.ModelStore, analyzer *services.AnalyzeService) *AnalyzeHandler {
	return &AnalyzeHandler{
		store:    store,
		analyzer: analyzer,
	}
}

// Handle opens the file at path and reports on its appearance entities.
func (h *AnalyzeHandler) Handle(ctx context.Context, path string) (*services.AppearanceReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := h.store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model: %w", err)
	}
	return h.analyzer.Report(m, path), nil
}
