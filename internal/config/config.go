// Package config loads the bageri project configuration.
//
// The configuration lives in bageri.json5, a JSON document that may contain
// comments and trailing commas. It is standardized with tailscale/hujson
// before being unmarshaled with encoding/json. Every field is optional;
// defaults produce a working single-page project.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"

	"github.com/druskus20/bageri/internal/logging"
)

// DefaultPath is the fixed config file location relative to the project root.
const DefaultPath = "bageri.json5"

// Attributes describes page metadata. Scalar fields fall back to the
// project-wide defaults when empty; list fields are appended after them.
type Attributes struct {
	Title       string   `json:"title"`
	Favicon     string   `json:"favicon"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Scripts     []string `json:"scripts"`
	Styles      []string `json:"styles"`
}

// HTMLPage configures a static HTML page. When Pattern is empty the source
// file is <source_dir>/<name>.html by convention.
type HTMLPage struct {
	Pattern string `json:"pattern"`
	Attributes
}

// EnvFiles names the environment files for each deployment mode.
type EnvFiles struct {
	Dev string `json:"dev"`
	Prd string `json:"prd"`
}

// Config is the full project configuration, loaded once per build invocation
// and never mutated afterwards.
type Config struct {
	DefaultAttributes Attributes            `json:"default_attributes"`
	SPAPages          map[string]Attributes `json:"spa_pages"`
	HTMLPages         map[string]HTMLPage   `json:"html_pages"`
	WatchPatterns     []string              `json:"watch_patterns"`
	EnvFiles          EnvFiles              `json:"env_files"`
	PreHook           []string              `json:"pre_hook"`
	OutputDir         string                `json:"output_dir"`
	SourceDir         string                `json:"source_dir"`

	// Env holds the key/value pairs loaded from the selected environment
	// file. Never read from the config document itself.
	Env map[string]string `json:"-"`
}

// Load reads and parses the configuration at path, applies defaults and
// resolves the environment file selected by NODE_ENV.
func Load(path string, logger *logging.Logger) (*Config, error) {
	log := logger.WithComponent("config")

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	for name := range cfg.SPAPages {
		if _, ok := cfg.HTMLPages[name]; ok {
			log.Warn("page name defined as both SPA and HTML page, both will be rendered", "page", name)
		}
	}

	cfg.Env = loadEnv(cfg.EnvFiles, log)

	log.Debug("configuration loaded",
		"spa_pages", len(cfg.SPAPages),
		"html_pages", len(cfg.HTMLPages),
		"hooks", len(cfg.PreHook),
		"output_dir", cfg.OutputDir,
	)
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DefaultAttributes.Title == "" {
		c.DefaultAttributes.Title = "Bageri App"
	}
	if c.DefaultAttributes.Favicon == "" {
		c.DefaultAttributes.Favicon = "favicon.ico"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.SourceDir == "" {
		c.SourceDir = "src"
	}
	if len(c.SPAPages) == 0 && len(c.HTMLPages) == 0 {
		c.SPAPages = map[string]Attributes{
			"index": {Scripts: []string{"index.js"}},
		}
	}
	if c.SPAPages == nil {
		c.SPAPages = map[string]Attributes{}
	}
	if c.HTMLPages == nil {
		c.HTMLPages = map[string]HTMLPage{}
	}
	if len(c.WatchPatterns) == 0 {
		c.WatchPatterns = []string{c.SourceDir}
	}
}

// loadEnv picks the environment file for the current NODE_ENV and parses it.
// A missing file yields an empty mapping, not an error.
func loadEnv(files EnvFiles, log *logging.Logger) map[string]string {
	file := files.Dev
	if os.Getenv("NODE_ENV") == "production" {
		file = files.Prd
		if file == "" {
			file = ".env.prd"
		}
	} else if file == "" {
		file = ".env"
	}

	env, err := godotenv.Read(file)
	if err != nil {
		log.Debug("environment file not loaded", "file", file, "reason", err.Error())
		return map[string]string{}
	}
	log.Debug("environment file loaded", "file", file, "keys", len(env))
	return env
}
