// Package config loads the optional TOML configuration file shared by the
// urlcheck and htmlcheck command-line tools.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the settings either CLI reads from a config file. Command
// line flags always take precedence over a loaded Config field.
type Config struct {
	// Color enables ANSI-colorized output. Defaults to true when no config
	// file is present.
	Color bool `toml:"color"`

	// PreScreen enables the lancet validator hint printed alongside the
	// real WHATWG parse result.
	PreScreen bool `toml:"pre_screen"`

	// BaseURL is the default base URL used to resolve relative input when
	// none is given on the command line.
	BaseURL string `toml:"base_url"`

	// Scripting controls whether htmlcheck parses noscript content as
	// markup (false, the default) or raw text (true).
	Scripting bool `toml:"scripting"`
}

// Default returns the configuration used when no file is loaded.
func Default() Config {
	return Config{Color: true, PreScreen: true}
}

// Load reads and decodes a TOML config file at path. A missing file is not
// an error: Load returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
