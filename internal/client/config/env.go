package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of the environment variables read by parseEnv.
const EnvPrefix = "CAMPUS"

type envConfig struct {
	APIURL      string        `envconfig:"API_URL"`
	StoragePath string        `envconfig:"STORAGE_PATH"`
	Language    string        `envconfig:"LANGUAGE"`
	LogLevel    string        `envconfig:"LOG_LEVEL"`
	LogBackend  string        `envconfig:"LOG_BACKEND"`
	Timeout     time.Duration `envconfig:"TIMEOUT"`
}

// parseEnv overlays cfg with the CAMPUS_* variables that are set. Malformed
// values panic.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process(EnvPrefix, &ec); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.APIURL, ec.APIURL)
	setIfNotEmpty(&cfg.StoragePath, ec.StoragePath)
	setIfNotEmpty(&cfg.Language, ec.Language)
	setIfNotEmpty(&cfg.LogLevel, ec.LogLevel)
	setIfNotEmpty(&cfg.LogBackend, ec.LogBackend)
	if ec.Timeout != 0 {
		cfg.Timeout = ec.Timeout
	}
}
