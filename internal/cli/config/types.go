// Package config provides configuration management for the dump2tsv CLI.
//
// Values are layered with koanf. Precedence (highest to lowest):
// flags > DUMP2TSV_ environment variables > dump2tsv.yaml > defaults.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	OutputDir    string      `koanf:"output_dir" yaml:"output_dir"`
	BufferSize   int         `koanf:"buffer_size" yaml:"buffer_size"`
	Progress     string      `koanf:"progress" yaml:"progress"`
	OutputFormat string      `koanf:"output" yaml:"output"`
	Verbose      bool        `koanf:"verbose" yaml:"verbose"`
	Fetch        FetchConfig `koanf:"fetch" yaml:"fetch"`
}

// FetchConfig controls how remote dumps are downloaded.
type FetchConfig struct {
	Retries int           `koanf:"retries" yaml:"retries"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`
}

// Progress display modes.
const (
	ProgressAuto   = "auto"   // bar on a terminal, periodic log lines otherwise
	ProgressAlways = "always" // always draw the bar on stderr
	ProgressNever  = "never"
)

// Default configuration values.
const (
	DefaultOutputDir    = "tables"
	DefaultBufferSize   = 128 * 1024
	DefaultProgress     = ProgressAuto
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultFetchRetries = 3
	DefaultFetchTimeout = 10 * time.Minute
)

// ConfigFileNames are the config files looked up in the working directory, in order.
var ConfigFileNames = []string{"dump2tsv.yaml", "dump2tsv.yml"}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		OutputDir:    DefaultOutputDir,
		BufferSize:   DefaultBufferSize,
		Progress:     DefaultProgress,
		OutputFormat: DefaultOutput,
		Fetch: FetchConfig{
			Retries: DefaultFetchRetries,
			Timeout: DefaultFetchTimeout,
		},
	}
}
