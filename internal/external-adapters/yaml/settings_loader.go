package yaml

import (
	"os"

	"github.com/ochairo/distpatch/internal/domain/entities"
)

// DefaultSettingsFile is looked up in the working directory when no
// explicit settings path is given
const DefaultSettingsFile = ".distpatch.yml"

// SettingsLoader resolves and loads the settings file
type SettingsLoader struct {
	parser *SettingsParser
}

// NewSettingsLoader creates a new settings loader
func NewSettingsLoader() *SettingsLoader {
	return &SettingsLoader{
		parser: NewSettingsParser(),
	}
}

// Load reads settings from path. An empty path falls back to
// DefaultSettingsFile, and a missing default file yields the built-in
// defaults. An explicitly named file must exist.
func (l *SettingsLoader) Load(path string) (entities.Settings, error) {
	if path == "" {
		if _, err := os.Stat(DefaultSettingsFile); os.IsNotExist(err) {
			return entities.DefaultSettings(), nil
		}
		path = DefaultSettingsFile
	}

	return l.parser.ParseFile(path)
}
