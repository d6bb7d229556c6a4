package config

import (
	"os"
	"path/filepath"
)

// Paths holds the file system paths used by the demo application.
type Paths struct {
	Home       string // ~/.scrollview
	ConfigPath string // ~/.scrollview/config.json
	LogRoot    string // ~/.scrollview/logs
}

// DefaultPaths returns the default paths configuration.
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	root := filepath.Join(home, ".scrollview")

	return &Paths{
		Home:       root,
		ConfigPath: filepath.Join(root, "config.json"),
		LogRoot:    filepath.Join(root, "logs"),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Home, p.LogRoot} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
