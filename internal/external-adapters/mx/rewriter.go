// Package mx wraps the mx build tool's urlrewrite subcommand.
package mx

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ochairo/distpatch/internal/domain/entities"
)

// Rewriter maps URLs through an external mx-style rewrite tool
type Rewriter struct {
	executable string
	subcommand string
	timeout    time.Duration
}

// NewRewriter creates a rewriter from settings. On Windows an executable
// without an extension gains a .cmd suffix, matching how mx installs itself.
func NewRewriter(settings entities.RewriterSettings) *Rewriter {
	executable := settings.Executable
	if executable == "" {
		executable = entities.DefaultRewriteExecutable
	}
	subcommand := settings.Subcommand
	if subcommand == "" {
		subcommand = entities.DefaultRewriteSubcommand
	}
	if runtime.GOOS == "windows" && !strings.Contains(filepath.Base(executable), ".") {
		executable += ".cmd"
	}

	return &Rewriter{
		executable: executable,
		subcommand: subcommand,
		timeout:    settings.Timeout,
	}
}

// Name returns the executable name used in lookups and messages
func (r *Rewriter) Name() string {
	return r.executable
}

// Available checks if the rewrite tool can be found on PATH
func (r *Rewriter) Available() bool {
	_, err := exec.LookPath(r.executable)
	return err == nil
}

// Rewrite runs `<tool> <subcommand> <url>` and returns the trimmed stdout.
// A zero timeout leaves the command bound only by the caller's context.
func (r *Rewriter) Rewrite(ctx context.Context, url string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.executable, r.subcommand, url)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &entities.RewriteError{
			Command: strings.Join(cmd.Args, " "),
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}
