package main

import (
	"github.com/rs/zerolog"

	"github.com/irodionov/ifcmerge/internal/application/handlers"
	"github.com/irodionov/ifcmerge/internal/domain/services"
	"github.com/irodionov/ifcmerge/internal/infrastructure/logging"
	"github.com/irodionov/ifcmerge/internal/infrastructure/step"
)

// Deps holds the high-level dependencies for commands.
type Deps struct {
	Log     zerolog.Logger
	Merger  *handlers.MergeHandler
	Analyze *handlers.AnalyzeHandler
}

// withDeps builds the dependency graph and calls the provided function.
func withDeps(fn func(*Deps) error) error {
	log, err := logging.New(logLevel)
	if err != nil {
		return err
	}

	store := step.NewStore()
	deps := &Deps{
		Log:     log,
		Merger:  handlers.NewMergeHandler(store, log),
		Analyze: handlers.NewAnalyzeHandler(store, services.NewAnalyzeService()),
	}
	return fn(deps)
}
