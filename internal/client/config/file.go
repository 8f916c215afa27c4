package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/campusevents/internal/flagx"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the config file. Empty values leave the
// current setting alone. Timeout is a duration string like "30s".
type fileConfig struct {
	APIURL      string `json:"api_url" yaml:"api_url"`
	StoragePath string `json:"storage_path" yaml:"storage_path"`
	Language    string `json:"language" yaml:"language"`
	LogLevel    string `json:"log_level" yaml:"log_level"`
	LogBackend  string `json:"log_backend" yaml:"log_backend"`
	Timeout     string `json:"timeout" yaml:"timeout"`
}

// parseFile overlays cfg with the file named by -c or -config. Files ending
// in .yaml or .yml are read as YAML, anything else as JSON. Read and decode
// errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(fmt.Errorf("config file %s: %w", path, err))
	}

	if err := fc.apply(cfg); err != nil {
		panic(fmt.Errorf("config file %s: %w", path, err))
	}
}

func (fc *fileConfig) apply(cfg *Config) error {
	setIfNotEmpty(&cfg.APIURL, fc.APIURL)
	setIfNotEmpty(&cfg.StoragePath, fc.StoragePath)
	setIfNotEmpty(&cfg.Language, fc.Language)
	setIfNotEmpty(&cfg.LogLevel, fc.LogLevel)
	setIfNotEmpty(&cfg.LogBackend, fc.LogBackend)

	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = d
	}
	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
