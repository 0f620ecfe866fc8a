package entities

// Distribution represents a downloaded build-tool distribution archive held
// in a temporary file while it is being verified.
type Distribution struct {
	URL  string
	Path string
	Size int64
}
