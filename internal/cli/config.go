package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/pkg/routedoc"
)

const (
	// DefaultConfigFile is read from the working directory when no -config flag is given
	DefaultConfigFile = "routedoc.toml"

	// EnvView overrides the view to collect
	EnvView = "ROUTEDOC_VIEW"

	// EnvFormat overrides the output format
	EnvFormat = "ROUTEDOC_FORMAT"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the configuration for the CLI
type Config struct {
	// Directories is the list of directories to scan for annotated Go files
	Directories []string `toml:"directories"`

	// View selects the documentation view; empty means the default view
	View string `toml:"view"`

	// ExcludeSections lists sections whose documented routes are left out
	ExcludeSections []string `toml:"exclude_sections"`

	// Format is the output format, json or yaml
	Format string `toml:"format"`

	// Output is the output file; empty or "-" writes to stdout
	Output string `toml:"output"`

	// Extra is a YAML file of additional entries not backed by routes in source
	Extra string `toml:"extra"`

	// ModuleName is the module reported in the output
	// If empty, will be determined from go.mod file
	ModuleName string `toml:"module"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `toml:"verbose"`

	// Quiet only shows errors
	Quiet bool `toml:"quiet"`
}

// LoadConfig reads a TOML configuration file.
// A missing file is an error only when required is set; otherwise an empty Config is returned.
func LoadConfig(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return &Config{}, nil
		}
		return nil, errors.WrapConfigurationError(path, "read", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		wrapped := errors.WrapConfigurationError(path, "parse", err)
		var decodeErr *toml.DecodeError
		if stderrors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			wrapped.WithLocation(errors.SourceLocation{File: path, Line: row, Column: col})
		}
		return nil, wrapped
	}

	return &cfg, nil
}

// LoadEnv applies environment variable overrides
func (c *Config) LoadEnv() {
	if v := os.Getenv(EnvView); v != "" {
		c.View = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
}

// Merge applies values from overlay configuration that differ from zero values
func (c *Config) Merge(overlay *Config) {
	if len(overlay.Directories) > 0 {
		c.Directories = overlay.Directories
	}
	if overlay.View != "" {
		c.View = overlay.View
	}
	if len(overlay.ExcludeSections) > 0 {
		c.ExcludeSections = overlay.ExcludeSections
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.Output != "" {
		c.Output = overlay.Output
	}
	if overlay.Extra != "" {
		c.Extra = overlay.Extra
	}
	if overlay.ModuleName != "" {
		c.ModuleName = overlay.ModuleName
	}
	if overlay.Verbose {
		c.Verbose = true
	}
	if overlay.Quiet {
		c.Quiet = true
	}
}

// Finalize applies defaults and validates the configuration
func (c *Config) Finalize() error {
	c.loadDefaults()
	return c.validate()
}

func (c *Config) loadDefaults() {
	if len(c.Directories) == 0 {
		c.Directories = []string{"./..."}
	}
	if c.View == "" {
		c.View = routedoc.DefaultView
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = FormatJSON
	}
}

func (c *Config) validate() error {
	if !slices.Contains([]string{FormatJSON, FormatYAML}, c.Format) {
		return errors.Newf(errors.ConfigurationErrorCode, "unsupported format '%s'", c.Format).
			WithSuggestion(fmt.Sprintf("use -format=%s or -format=%s", FormatJSON, FormatYAML))
	}
	if c.Verbose && c.Quiet {
		return errors.New(errors.ConfigurationErrorCode, "verbose and quiet are mutually exclusive")
	}
	return nil
}
