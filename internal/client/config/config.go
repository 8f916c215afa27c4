package config

import (
	"time"

	"github.com/dmitrijs2005/campusevents/internal/common"
	"github.com/dmitrijs2005/campusevents/internal/logging"
)

// Config holds runtime settings of the campus events client.
type Config struct {
	// APIURL is the root of the REST API, e.g. http://localhost:8000/api.
	APIURL string
	// StoragePath is the SQLite file keeping the session and preferences.
	StoragePath string
	// Language overrides the stored UI language for this run when set.
	Language   string
	LogLevel   string
	LogBackend string
	// Timeout bounds every HTTP attempt. Zero means no timeout.
	Timeout time.Duration
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = common.DefaultAPIURL
	c.StoragePath = "campusevents.db"
	c.Language = ""
	c.LogLevel = "info"
	c.LogBackend = logging.BackendSlog
	c.Timeout = 0
}

// LoadConfig builds a Config from defaults, then the config file, then the
// environment, then command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
