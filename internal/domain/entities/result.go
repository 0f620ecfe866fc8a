package entities

// PatchOutcome classifies what happened to a single properties file.
type PatchOutcome int

const (
	// OutcomeUpdated means the distributionUrl line was rewritten.
	OutcomeUpdated PatchOutcome = iota
	// OutcomeUnchanged means the rewrite tool returned the URL already in place.
	OutcomeUnchanged
	// OutcomeKeyMissing means the file has no distributionUrl line at all.
	OutcomeKeyMissing
	// OutcomeToolMissing means the rewrite tool is not on PATH; the whole run
	// stops as a successful no-op.
	OutcomeToolMissing
)

// String returns the outcome name for log output.
func (o PatchOutcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeKeyMissing:
		return "key-missing"
	case OutcomeToolMissing:
		return "tool-missing"
	default:
		return "unknown"
	}
}

// PatchResult describes the processing of one properties file.
type PatchResult struct {
	Path     string
	Outcome  PatchOutcome
	OldURL   string
	NewURL   string
	Line     int    // index of the distributionUrl line, -1 when missing
	Checksum string // distributionSha256Sum value when present; never mutated
	DryRun   bool
}

// FinalURL returns the URL the file on disk points at after processing. A
// dry run never writes, so its final URL is still the old one.
func (r PatchResult) FinalURL() string {
	if r.Outcome == OutcomeUpdated && !r.DryRun {
		return r.NewURL
	}
	return r.OldURL
}
