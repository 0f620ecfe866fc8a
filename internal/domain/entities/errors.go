package entities

import "fmt"

// Error messages below are the tool's user-facing contract: main prints the
// error value verbatim on stdout and exits 1.

// ReadError reports a properties file that could not be loaded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("Error reading file: %s, not rewriting %s", e.Path, DistributionURLKey)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a rewritten properties file that could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Error writing file: %s, %s not updated according to url rewrite rules", e.Path, DistributionURLKey)
}

func (e *WriteError) Unwrap() error { return e.Err }

// RewriteError reports a rewrite tool invocation that failed.
type RewriteError struct {
	Command string // the full command line, for diagnostics
	Stderr  string // captured tool stderr, possibly empty
	Err     error
}

func (e *RewriteError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("Command `%s` failed: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("Command `%s` failed: %v", e.Command, e.Err)
}

func (e *RewriteError) Unwrap() error { return e.Err }

// KeyMissingError reports a file with no distributionUrl line at all.
type KeyMissingError struct {
	Path string
}

func (e *KeyMissingError) Error() string {
	return fmt.Sprintf("Did not find '%s' in %s", DistributionURLKey, e.Path)
}

// VerifyError reports a distribution that failed verification.
type VerifyError struct {
	URL string
	Err error
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("Verification of %s failed: %v", e.URL, e.Err)
}

func (e *VerifyError) Unwrap() error { return e.Err }
