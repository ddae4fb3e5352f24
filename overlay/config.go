package overlay

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the additive, optional `_overlay.yaml` a directory may carry
// alongside the conventional prose files (spec.md §4.6, "new, additive").
type Config struct {
	RelatedAPIOrder  []string `yaml:"relatedApiOrder"`
	SkipPlaceholders *bool    `yaml:"skipPlaceholders"`
}

func loadConfig(dir string) (Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, "_overlay.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
