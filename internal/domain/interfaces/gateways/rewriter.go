// Package gateways defines interfaces for external service adapters.
package gateways

import "context"

// URLRewriter maps a distribution URL to its policy-rewritten equivalent.
// The production implementation shells out to the platform rewrite tool;
// tests inject a deterministic function instead.
type URLRewriter interface {
	// Name returns the executable name the rewriter resolves on PATH, for
	// use in user-facing messages.
	Name() string

	// Available reports whether the rewrite tool can be found. Callers must
	// check this before Rewrite; an unavailable tool is a graceful no-op,
	// not a failure.
	Available() bool

	// Rewrite returns the rewritten URL for url, or url itself when no
	// rewrite rule applies. Output is whitespace-trimmed.
	Rewrite(ctx context.Context, url string) (string, error)
}
