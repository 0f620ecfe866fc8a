// Package orchestrators coordinates the patch and verify workflows across
// domain services and gateways.
package orchestrators

import (
	"context"
	"fmt"
	"io"

	"github.com/ochairo/distpatch/internal/domain/entities"
	"github.com/ochairo/distpatch/internal/domain/interfaces"
	"github.com/ochairo/distpatch/internal/domain/interfaces/gateways"
	"github.com/ochairo/distpatch/internal/domain/services"
)

// PropertiesStore interface for loading and persisting properties files
type PropertiesStore interface {
	Load(path string) (*entities.PropertiesFile, error)
	Store(file *entities.PropertiesFile) error
}

// PatchOrchestrator runs the distributionUrl patch workflow one properties
// file at a time
type PatchOrchestrator struct {
	store    PropertiesStore
	rewriter gateways.URLRewriter
	patcher  *services.PatchService
	logger   interfaces.Logger
	out      io.Writer
	dryRun   bool
}

// PatchOrchestratorConfig holds configuration for the orchestrator
type PatchOrchestratorConfig struct {
	DryRun bool
}

// NewPatchOrchestrator creates a new patch orchestrator
func NewPatchOrchestrator(
	store PropertiesStore,
	rewriter gateways.URLRewriter,
	patcher *services.PatchService,
	logger interfaces.Logger,
	out io.Writer,
	config PatchOrchestratorConfig,
) *PatchOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &PatchOrchestrator{
		store:    store,
		rewriter: rewriter,
		patcher:  patcher,
		logger:   logger,
		out:      out,
		dryRun:   config.DryRun,
	}
}

// PatchFile patches the distributionUrl line of one properties file.
//
// The rewrite tool is looked up fresh for every file; when it is absent the
// file is deliberately left alone and the run ends successfully. Informational
// messages go to the configured writer, failures come back as typed errors
// carrying the user-facing message.
func (o *PatchOrchestrator) PatchFile(ctx context.Context, path string) (entities.PatchResult, error) {
	if !o.rewriter.Available() {
		o.logger.Debug("rewrite tool not found on PATH",
			interfaces.F("tool", o.rewriter.Name()),
			interfaces.F("path", path),
		)
		fmt.Fprintf(o.out, "%s executable not found, not rewriting %s in %s\n",
			o.rewriter.Name(), entities.DistributionURLKey, path)
		return entities.PatchResult{Path: path, Outcome: entities.OutcomeToolMissing, Line: -1}, nil
	}

	file, err := o.store.Load(path)
	if err != nil {
		return entities.PatchResult{Path: path, Line: -1}, err
	}

	lines, result, err := o.patcher.RewriteDistributionURL(file.Lines, func(url string) (string, error) {
		return o.rewriter.Rewrite(ctx, url)
	})
	result.Path = path
	result.DryRun = o.dryRun
	if err != nil {
		return result, err
	}

	switch result.Outcome {
	case entities.OutcomeKeyMissing:
		return result, &entities.KeyMissingError{Path: path}

	case entities.OutcomeUnchanged:
		o.logger.Info("url already final",
			interfaces.F("path", path),
			interfaces.F("url", result.NewURL),
		)
		fmt.Fprintf(o.out, "%s in %s is already set to %s\n",
			entities.DistributionURLKey, path, result.NewURL)
		return result, nil

	case entities.OutcomeUpdated:
		if o.dryRun {
			fmt.Fprintf(o.out, "Would patch %s in '%s' to '%s' (dry run)\n",
				entities.DistributionURLKey, path, result.NewURL)
			return result, nil
		}

		file.Lines = lines
		if err := o.store.Store(file); err != nil {
			return result, err
		}

		o.logger.Info("patched distribution url",
			interfaces.F("path", path),
			interfaces.F("old", result.OldURL),
			interfaces.F("new", result.NewURL),
		)
		fmt.Fprintf(o.out, "Patched %s in '%s' to '%s'\n",
			entities.DistributionURLKey, path, result.NewURL)
		fmt.Fprintln(o.out, "Do not commit this change")
		return result, nil
	}

	return result, nil
}
