package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration, read from a yaml file.
type Config struct {
	// Snapshot is the path of the ledger snapshot file.
	Snapshot string `yaml:"snapshot"`
	// Currency is the ISO code used to display amounts.
	Currency string `yaml:"currency"`
	// PageSize is the default page size of paginated listings.
	PageSize int `yaml:"pageSize"`
}

// DefaultConfig is used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Snapshot: "finbook.json",
		Currency: "EUR",
		PageSize: 20,
	}
}

// LoadConfig reads the config file, falling back to ~/.finbook.yaml when path
// is empty, and to defaults when no file exists. Fields left empty in the
// file keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".finbook.yaml")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	if file.Snapshot != "" {
		cfg.Snapshot = file.Snapshot
	}
	if file.Currency != "" {
		cfg.Currency = file.Currency
	}
	if file.PageSize > 0 {
		cfg.PageSize = file.PageSize
	}
	return cfg, nil
}
