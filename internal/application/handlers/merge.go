// Package handlers orchestrates the merge and analyze use cases over the
// model store.
package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/irodionov/ifcmerge/internal/domain/ports"
	"github.com/irodionov/ifcmerge/internal/domain/services"
)

// MergeHandler merges a list of input files into one output model. The
// first input is the base file: it is copied unconditionally and wins
// every appearance conflict.
type MergeHandler struct {
	store ports.ModelStore
	log   zerolog.Logger
}

// NewMergeHandler creates a new merge handler.
func NewMergeHandler(store ports.ModelStore, log zerolog.Logger) *MergeHandler {
	return &MergeHandler{
		store: store,
		log:   log,
	}
}

// MergeResult is the outcome of one merge run.
type MergeResult struct {
	OutputPath   string                 `yaml:"output"`
	Schema       string                 `yaml:"schema"`
	Files        []*services.FileReport `yaml:"files"`
	SkippedFiles []string               `yaml:"skipped_files,omitempty"`
	Summary      services.Summary       `yaml:"summary"`
}

// Handle merges inputPaths (base first) and writes the result to
// outputPath. A base file that cannot be opened is fatal; any later file
// that cannot be opened is skipped with a warning. A failed final write
// is returned as an error so the process can exit non-zero.
func (h *MergeHandler) Handle(ctx context.Context, outputPath string, inputPaths []string) (*MergeResult, error) {
	if len(inputPaths) == 0 {
		return nil, errors.New("no input files to merge")
	}

	basePath := inputPaths[0]
	base, err := h.store.Open(basePath)
	if err != nil {
		return nil, fmt.Errorf("opening base model: %w", err)
	}

	out, err := h.store.New(base.Schema())
	if err != nil {
		return nil, fmt.Errorf("creating output model: %w", err)
	}
	h.log.Info().Str("schema", base.Schema()).Str("path", basePath).Msg("using base model schema")

	result := &MergeResult{
		OutputPath: outputPath,
		Schema:     base.Schema(),
	}

	session := services.NewMergeSession(out)
	report, err := session.ImportBase(ctx, base, basePath)
	if err != nil {
		return nil, err
	}
	h.logReport(report)
	result.Files = append(result.Files, report)

	for _, path := range inputPaths[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := h.store.Open(path)
		if err != nil {
			h.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable input file")
			result.SkippedFiles = append(result.SkippedFiles, path)
			continue
		}
		report, err := session.MergeFile(ctx, m, path)
		if err != nil {
			return nil, err
		}
		h.logReport(report)
		result.Files = append(result.Files, report)
	}

	if err := out.Write(outputPath); err != nil {
		return nil, fmt.Errorf("writing merged model: %w", err)
	}
	result.Summary = session.Summary()
	return result, nil
}

// logReport surfaces one file's outcome: a progress line plus a warning
// per failed entity copy.
func (h *MergeHandler) logReport(report *services.FileReport) {
	h.log.Info().
		Str("path", report.Path).
		Int("products", report.Products).
		Int("copied", report.Copied).
		Int("skipped_known", report.SkippedKnown).
		Int("failed", report.Failed).
		Msg("processed input file")
	for _, w := range report.Warnings {
		evt := h.log.Warn().Str("path", report.Path).Str("class", w.Class).Int64("id", w.ID)
		if w.Name != "" {
			evt = evt.Str("name", w.Name)
		}
		if w.GlobalID != "" {
			evt = evt.Str("global_id", w.GlobalID)
		}
		evt.Str("reason", w.Reason).Msg("could not copy entity")
	}
}
