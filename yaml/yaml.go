// Package yaml loads uistream settings from a YAML file.
package yaml

import (
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/uistream"
	"gopkg.in/yaml.v3"
)

// ErrUnknownBackend is returned when the file names a backend other than
// proxy or gemini.
var ErrUnknownBackend = errors.New("yaml: unknown backend")

type file struct {
	Backend  uistream.Backend `yaml:"backend"`
	BaseURL  string           `yaml:"base_url"`
	Provider string           `yaml:"provider"`
	Model    string           `yaml:"model"`
	Lenient  bool             `yaml:"lenient"`
	LogLevel string           `yaml:"log_level"`
}

// Load reads the config file at path, expands environment references and
// overlays the result on uistream.DefaultConfig. Keys absent from the file
// keep their defaults.
func Load(path string) (uistream.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return uistream.Config{}, fmt.Errorf("config file not found: %s", path)
		}
		return uistream.Config{}, fmt.Errorf("cannot read config file %q: %w", path, err)
	}
	return Parse([]byte(ExpandEnv(string(data))), path)
}

// Parse decodes already expanded YAML. name is used in error messages.
func Parse(data []byte, name string) (uistream.Config, error) {
	d := uistream.DefaultConfig()
	f := file{
		Backend:  d.Backend,
		BaseURL:  d.BaseURL,
		Provider: d.Provider,
		Model:    d.Model,
		Lenient:  d.Lenient,
		LogLevel: d.LogLevel,
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return uistream.Config{}, fmt.Errorf("invalid YAML in %s: %w", name, err)
	}
	switch f.Backend {
	case uistream.BackendProxy, uistream.BackendGemini:
	default:
		return uistream.Config{}, fmt.Errorf("%w: %q", ErrUnknownBackend, f.Backend)
	}
	return uistream.Config{
		Backend:  f.Backend,
		BaseURL:  f.BaseURL,
		Provider: f.Provider,
		Model:    f.Model,
		Lenient:  f.Lenient,
		LogLevel: f.LogLevel,
	}, nil
}
