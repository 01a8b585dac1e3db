package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for docsubset.
// All settings have working defaults; a YAML settings file and environment
// variables are optional overrides.
type Config struct {
	Docs    DocsConfig        `yaml:"docs"`
	Serve   ServeConfig       `yaml:"serve"`
	Tool    ToolConfig        `yaml:"tool"`
	Aliases map[string]string `yaml:"aliases"`
	Logging LoggingConfig     `yaml:"logging"`
}

// DocsConfig describes the documentation corpus being subset.
type DocsConfig struct {
	// Dir is the content root whose top-level directories feed the
	// exclusion calculation.
	Dir string `yaml:"dir"`

	// Config is the site configuration file to subset.
	Config string `yaml:"config"`

	// Output is where the generated subset configuration is written.
	Output string `yaml:"output"`

	// AlwaysKeep lists content directories never excluded from the build
	// (shared assets, snippets, templates).
	AlwaysKeep []string `yaml:"always_keep"`

	// AlwaysShownMarker keeps any top-level nav entry whose label contains
	// this text, regardless of the selected section.
	AlwaysShownMarker string `yaml:"always_shown_marker"`

	// HomePage keeps any top-level nav entry pointing at this path.
	HomePage string `yaml:"home_page"`

	// ExcludePlugin is the key of the exclusion plugin in the plugins list.
	ExcludePlugin string `yaml:"exclude_plugin"`

	// RefPlugin is the key of the API-reference plugin in the plugins list.
	RefPlugin string `yaml:"ref_plugin"`
}

// ServeConfig contains settings for serving the generated subset.
type ServeConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// PortAttempts is how many consecutive ports to probe when the
	// requested one is busy.
	PortAttempts int `yaml:"port_attempts"`

	// Clean disables the build tool's dirty-reload mode.
	Clean bool `yaml:"clean"`
}

// ToolConfig describes the external build/serve executable.
type ToolConfig struct {
	// Binary is the executable to launch.
	Binary string `yaml:"binary"`

	// Args are the leading arguments before the serve file/address flags
	// are appended.
	Args []string `yaml:"args"`

	// GracefulTimeout is how many seconds to wait for the tool to exit
	// after SIGTERM before it is killed.
	GracefulTimeout int `yaml:"graceful_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from an optional YAML settings file and applies
// environment variable overrides.
//
// The loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults; skipped when path is empty)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: DOCSUBSET_SECTION_KEY
// For example: DOCSUBSET_DOCS_DIR, DOCSUBSET_SERVE_PORT
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading settings file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing settings file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults, matching the
// documentation repository this tool was built against.
func defaultConfig() *Config {
	return &Config{
		Docs: DocsConfig{
			Dir:    "docs",
			Config: "mkdocs.yml",
			Output: "mkdocs.subset.yml",
			AlwaysKeep: []string{
				"_snippets",
				"javascripts",
				"static",
				"stylesheets",
				"overrides",
				"templates",
			},
			AlwaysShownMarker: "get started",
			HomePage:          "index.md",
			ExcludePlugin:     "exclude",
			RefPlugin:         "mkdocstrings",
		},
		Serve: ServeConfig{
			Host:         "localhost",
			Port:         8000,
			PortAttempts: 10,
		},
		Tool: ToolConfig{
			Binary:          "uv",
			Args:            []string{"run", "--no-sync", "python", "-m", "mkdocs", "serve"},
			GracefulTimeout: 10,
		},
		Aliases: map[string]string{
			"deepagents": "Deep Agents",
			"core":       "langchain-core",
			"community":  "langchain-community",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables follow the pattern:
// DOCSUBSET_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DOCSUBSET_DOCS_DIR"); v != "" {
		cfg.Docs.Dir = v
	}
	if v := os.Getenv("DOCSUBSET_DOCS_CONFIG"); v != "" {
		cfg.Docs.Config = v
	}
	if v := os.Getenv("DOCSUBSET_DOCS_OUTPUT"); v != "" {
		cfg.Docs.Output = v
	}
	if v := os.Getenv("DOCSUBSET_SERVE_HOST"); v != "" {
		cfg.Serve.Host = v
	}
	if v := os.Getenv("DOCSUBSET_SERVE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Serve.Port = port
		}
	}
	if v := os.Getenv("DOCSUBSET_TOOL_BINARY"); v != "" {
		cfg.Tool.Binary = v
	}
	if v := os.Getenv("DOCSUBSET_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Docs.Config == "" {
		errs = append(errs, "docs.config is required")
	}
	if c.Docs.Output == "" {
		errs = append(errs, "docs.output is required")
	} else if !strings.HasSuffix(c.Docs.Output, ".yml") && !strings.HasSuffix(c.Docs.Output, ".yaml") {
		errs = append(errs, "docs.output must have a .yml or .yaml extension")
	}
	if c.Serve.Port < 1024 || c.Serve.Port > 65535 {
		errs = append(errs, "serve.port must be between 1024 and 65535")
	}
	if c.Serve.PortAttempts < 1 {
		errs = append(errs, "serve.port_attempts must be at least 1")
	}
	if c.Tool.Binary == "" {
		errs = append(errs, "tool.binary is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ResolveAlias maps a short section name to its canonical nav label.
// The lookup is case-insensitive; the input is returned unchanged when no
// alias matches.
func (c *Config) ResolveAlias(section string) (string, bool) {
	if canonical, ok := c.Aliases[strings.ToLower(section)]; ok {
		return canonical, true
	}
	return section, false
}

// GetGracefulTimeout returns the build tool's shutdown grace period as a
// Duration.
func (c *Config) GetGracefulTimeout() time.Duration {
	return time.Duration(c.Tool.GracefulTimeout) * time.Second
}
