package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/campusevents/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string     API base URL
//	-s string     path of the local storage file
//	-l string     UI language (en, ru, kz)
//	-t duration   HTTP timeout, e.g. 30s
//
// Only these flags are taken from os.Args, see flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "API base URL")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "local storage file")
	fs.StringVar(&cfg.Language, "l", cfg.Language, "UI language (en, ru, kz)")
	fs.DurationVar(&cfg.Timeout, "t", cfg.Timeout, "HTTP timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
