package yaml

import (
	"testing"
)

// FuzzSettingsParser tests the YAML parser against random/malformed inputs
// to detect crashes, panics, or unexpected behavior.
//
// Run with: go test -fuzz=FuzzSettingsParser -fuzztime=30s
func FuzzSettingsParser(f *testing.F) {
	// Seed corpus with valid settings examples
	f.Add([]byte(`rewriter:
  executable: mx
  subcommand: urlrewrite
  timeout: 30s
`))

	f.Add([]byte(`rewriter:
  executable: mx-internal
verify:
  enabled: true
  checksum: true
  signature_suffix: .asc
  gpg_key_files:
    - keys/release.asc
  gpg_keys_url: https://example.com/KEYS
  fetch_timeout: 2m
`))

	f.Add([]byte(`verify:
  enabled: true
  checksum: false
  gpg_keys_url: https://example.com/KEYS
`))

	// Seed with edge cases
	f.Add([]byte(``))                                        // Empty input
	f.Add([]byte(`{}`))                                      // Empty JSON-style YAML
	f.Add([]byte(`[]`))                                      // Array instead of object
	f.Add([]byte(`rewriter: nope`))                          // Scalar where a map is expected
	f.Add([]byte("rewriter:\n  timeout: -1h\n"))             // Negative duration
	f.Add([]byte("verify:\n  checksum: maybe\n"))            // Non-boolean checksum
	f.Add([]byte("rewriter: {}\nrewriter: {timeout: 1s}\n")) // Duplicate keys

	parser := NewSettingsParser()

	f.Fuzz(func(_ *testing.T, data []byte) {
		// The parser should handle any input without crashing
		// We don't care if it returns an error - just that it doesn't panic
		_, _ = parser.Parse(data)
	})
}
