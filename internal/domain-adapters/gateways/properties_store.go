package gateways

import (
	"io/fs"
	"os"

	"github.com/ochairo/distpatch/internal/domain/entities"
)

// PropertiesStore loads and persists build-tool properties files on disk
type PropertiesStore struct{}

// NewPropertiesStore creates a new properties store
func NewPropertiesStore() *PropertiesStore {
	return &PropertiesStore{}
}

// Load reads a properties file and records its permission bits for write-back
func (s *PropertiesStore) Load(path string) (*entities.PropertiesFile, error) {
	//nolint:gosec // G304: path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &entities.ReadError{Path: path, Err: err}
	}

	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	return entities.NewPropertiesFile(path, data, mode), nil
}

// Store writes the file back to its original path, keeping the original mode
func (s *PropertiesStore) Store(file *entities.PropertiesFile) error {
	//nolint:gosec // G306: properties files keep the permission bits they were read with
	if err := os.WriteFile(file.Path, file.Bytes(), file.Mode); err != nil {
		return &entities.WriteError{Path: file.Path, Err: err}
	}
	return nil
}
