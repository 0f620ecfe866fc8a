// Package services contains the pure patch computation: line sequences go
// in, new line sequences and an outcome come out. File and process I/O live
// in the adapter layers.
package services

import (
	"strings"

	"github.com/ochairo/distpatch/internal/domain/entities"
)

// RewriteFunc maps an existing distribution URL to its replacement. It is
// the injectable seam for the external rewrite tool.
type RewriteFunc func(url string) (string, error)

// PatchService computes properties-file patches without side effects.
type PatchService struct{}

// NewPatchService creates a new patch service
func NewPatchService() *PatchService {
	return &PatchService{}
}

// FindProperty returns the index and trimmed value of the first line whose
// leading/trailing-trimmed text starts with key + "=". Later occurrences are
// ignored. The value is everything after the first '=' of the raw line,
// whitespace-trimmed.
func (s *PatchService) FindProperty(lines []string, key string) (int, string, bool) {
	prefix := key + "="
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), prefix) {
			_, value, _ := strings.Cut(line, "=")
			return i, strings.TrimSpace(value), true
		}
	}
	return -1, "", false
}

// RewriteDistributionURL applies rewrite to the value of the first
// distributionUrl line. The input slice is never modified; when the URL
// changes a fresh copy with the replaced line is returned. The replacement
// line is always `distributionUrl=<url>` with a single trailing newline,
// whatever the original line's indentation or terminator was.
//
// A missing key yields OutcomeKeyMissing with the input lines untouched and
// a nil error: whether that is fatal is the caller's policy. When rewrite
// fails, the returned result still carries the old URL for diagnostics.
func (s *PatchService) RewriteDistributionURL(lines []string, rewrite RewriteFunc) ([]string, entities.PatchResult, error) {
	result := entities.PatchResult{Outcome: entities.OutcomeKeyMissing, Line: -1}

	if _, sum, ok := s.FindProperty(lines, entities.ChecksumKey); ok {
		result.Checksum = sum
	}

	idx, oldURL, ok := s.FindProperty(lines, entities.DistributionURLKey)
	if !ok {
		return lines, result, nil
	}
	result.Line = idx
	result.OldURL = oldURL

	newURL, err := rewrite(oldURL)
	if err != nil {
		return lines, result, err
	}
	result.NewURL = newURL

	if newURL == oldURL {
		result.Outcome = entities.OutcomeUnchanged
		return lines, result, nil
	}

	patched := make([]string, len(lines))
	copy(patched, lines)
	patched[idx] = entities.DistributionURLKey + "=" + newURL + "\n"
	result.Outcome = entities.OutcomeUpdated
	return patched, result, nil
}
