// Package main provides the distpatch CLI for patching distributionUrl
// lines in build-tool properties files through an external rewrite tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ochairo/distpatch/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/distpatch/internal/domain-orchestrators"
	"github.com/ochairo/distpatch/internal/domain/entities"
	"github.com/ochairo/distpatch/internal/domain/interfaces"
	"github.com/ochairo/distpatch/internal/domain/services"
	"github.com/ochairo/distpatch/internal/external-adapters/gpg"
	"github.com/ochairo/distpatch/internal/external-adapters/mx"
	"github.com/ochairo/distpatch/internal/external-adapters/yaml"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run parses flags, assembles the workflow, and is the single place that
// decides the process exit code. Workflow failures carry their user-facing
// message and are printed to stdout alongside the informational output;
// configuration mistakes go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("distpatch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		tool      = fs.String("tool", "", "rewrite tool executable (default mx, mx.cmd on Windows)")
		timeout   = fs.Duration("timeout", 0, "timeout per rewrite tool invocation (0 waits forever)")
		dryRun    = fs.Bool("dry-run", false, "report the would-be patch without writing anything")
		verify    = fs.Bool("verify", false, "download the final distribution and verify it")
		configArg = fs.String("config", "", "settings file (default .distpatch.yml when present)")
		verbose   = fs.Bool("verbose", false, "log workflow details to stderr")
	)

	fs.Usage = func() {
		printUsage(fs.Output())
		fmt.Fprintln(fs.Output(), "\nOptions:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if fs.NArg() < 1 {
		printUsage(stdout)
		return 1
	}

	settings, err := yaml.NewSettingsLoader().Load(*configArg)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading settings: %v\n", err)
		return 1
	}

	// Flags override the settings file, which overrides the defaults
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tool":
			settings.Rewriter.Executable = *tool
		case "timeout":
			settings.Rewriter.Timeout = *timeout
		case "verify":
			settings.Verify.Enabled = *verify
		}
	})

	if settings.Rewriter.Timeout < 0 {
		fmt.Fprintln(stderr, "Error: timeout must not be negative")
		return 1
	}
	if settings.Verify.Enabled && !settings.Verify.Checksum && !settings.Verify.HasKeySource() {
		fmt.Fprintln(stderr, "Error: verification is enabled but has neither checksum comparison nor a key source")
		return 1
	}

	var logger interfaces.Logger = &interfaces.NoOpLogger{}
	if *verbose {
		logger = interfaces.NewWriterLogger(stderr, interfaces.LevelDebug)
	}

	patchOrch := orchestrators.NewPatchOrchestrator(
		gateways.NewPropertiesStore(),
		mx.NewRewriter(settings.Rewriter),
		services.NewPatchService(),
		logger,
		stdout,
		orchestrators.PatchOrchestratorConfig{DryRun: *dryRun},
	)

	var verifyOrch *orchestrators.VerifyOrchestrator
	if settings.Verify.Enabled && !*dryRun {
		verifyOrch = orchestrators.NewVerifyOrchestrator(
			gateways.NewDistributionFetcher(settings.Verify.FetchTimeout),
			gateways.NewChecksumVerifier(),
			gpg.NewVerifier(),
			settings.Verify,
			logger,
			stdout,
		)
	}

	start := time.Now()
	for _, path := range fs.Args() {
		result, err := patchOrch.PatchFile(ctx, path)
		if err != nil {
			fmt.Fprintln(stdout, err)
			return 1
		}

		// A missing tool ends the whole run, leaving every file untouched
		if result.Outcome == entities.OutcomeToolMissing {
			return 0
		}

		if verifyOrch != nil {
			if err := verifyOrch.VerifyDistribution(ctx, result); err != nil {
				fmt.Fprintln(stdout, err)
				return 1
			}
		}
	}

	logger.Debug("run finished",
		interfaces.F("files", fs.NArg()),
		interfaces.F("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: distpatch [options] <path_to_properties_file> [<path2>, ...]")
	fmt.Fprintln(w, "Uses mx urlrewrite to patch distributionUrl in the given properties files.")
	fmt.Fprintln(w, "If mx is not available or no urlrewrite rule applies, does nothing.")
}
