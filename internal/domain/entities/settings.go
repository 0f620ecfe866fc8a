package entities

import "time"

// Default rewrite tool contract: `mx urlrewrite <url>` prints the rewritten
// URL (or the input URL when no rule applies) on stdout and exits non-zero
// on failure.
const (
	DefaultRewriteExecutable = "mx"
	DefaultRewriteSubcommand = "urlrewrite"
	DefaultSignatureSuffix   = ".asc"
	DefaultFetchTimeout      = 5 * time.Minute
)

// RewriterSettings configures how the external rewrite tool is invoked.
type RewriterSettings struct {
	Executable string        // base executable name, resolved on PATH
	Subcommand string        // first argument passed to the tool
	Timeout    time.Duration // 0 waits forever, matching the historical behavior
}

// VerifySettings configures optional verification of the distribution the
// final URL points at.
type VerifySettings struct {
	Enabled         bool
	Checksum        bool     // compare against distributionSha256Sum when present
	SignatureSuffix string   // detached signature fetched from <url><suffix>
	GPGKeyFiles     []string // armored public-key files loaded into the keyring
	GPGKeysURL      string   // alternatively, a KEYS-file URL
	FetchTimeout    time.Duration
}

// HasKeySource reports whether any PGP key source is configured.
func (v VerifySettings) HasKeySource() bool {
	return len(v.GPGKeyFiles) > 0 || v.GPGKeysURL != ""
}

// Settings is the full runtime configuration, assembled from defaults, an
// optional settings file, and command-line flags, in increasing precedence.
type Settings struct {
	Rewriter RewriterSettings
	Verify   VerifySettings
}

// DefaultSettings returns the configuration used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Rewriter: RewriterSettings{
			Executable: DefaultRewriteExecutable,
			Subcommand: DefaultRewriteSubcommand,
		},
		Verify: VerifySettings{
			Checksum:        true,
			SignatureSuffix: DefaultSignatureSuffix,
			FetchTimeout:    DefaultFetchTimeout,
		},
	}
}
