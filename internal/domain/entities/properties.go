// Package entities defines core domain models and data structures.
package entities

import "io/fs"

// Property keys this tool understands. Only DistributionURLKey is ever
// mutated; ChecksumKey is read when verifying a downloaded distribution.
const (
	DistributionURLKey = "distributionUrl"
	ChecksumKey        = "distributionSha256Sum"
)

// PropertiesFile represents a build-tool properties file as an ordered
// sequence of raw lines. Every line keeps its original terminator bytes so
// untouched lines round-trip byte-for-byte; a final line without a trailing
// newline stays unterminated.
type PropertiesFile struct {
	Path  string
	Lines []string
	Mode  fs.FileMode
}

// NewPropertiesFile splits raw file content into terminator-preserving lines.
func NewPropertiesFile(path string, data []byte, mode fs.FileMode) *PropertiesFile {
	return &PropertiesFile{Path: path, Lines: SplitLines(data), Mode: mode}
}

// Bytes reassembles the file content from its lines.
func (f *PropertiesFile) Bytes() []byte {
	size := 0
	for _, line := range f.Lines {
		size += len(line)
	}
	buf := make([]byte, 0, size)
	for _, line := range f.Lines {
		buf = append(buf, line...)
	}
	return buf
}

// SplitLines splits data after every '\n', keeping the terminator on each
// line. Unlike strings.SplitAfter it never produces a trailing empty element
// for newline-terminated content.
func SplitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i+1]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}
