// Package config loads the server configuration.
//
// Precedence, lowest to highest:
//  1. Default()            built-in values that work for local development
//  2. a YAML file          optional, path from -config or CONFIG_PATH
//  3. environment variables PORT, DB_PATH, GITHUB_TOKEN, ...
//
// Environment wins so a container deployment can override a baked-in file
// without rebuilding it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	GitHub  GitHubConfig  `yaml:"github"`
	Storage StorageConfig `yaml:"storage"`
	Visitor VisitorConfig `yaml:"visitor"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	TemplateDir string `yaml:"templateDir"`
	StaticDir   string `yaml:"staticDir"`
}

type GitHubConfig struct {
	// BaseURL of the REST API. Point it at GitHub Enterprise or a test server.
	BaseURL string `yaml:"baseUrl"`
	// Token is optional. Anonymous access works but is limited to 60 requests/hour.
	// If empty, read from env GITHUB_TOKEN.
	Token string `yaml:"token"`
	// RPS and Burst configure the client-side rate limiter.
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
	// TimeoutSeconds bounds each outbound request.
	TimeoutSeconds int `yaml:"timeoutSeconds"`
}

type StorageConfig struct {
	DBPath string `yaml:"dbPath"`
}

type VisitorConfig struct {
	// Secret signs the visitor cookie. When empty a random secret is generated
	// at startup, which means visitors get a new identity after every restart.
	Secret string `yaml:"secret"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:        8080,
			TemplateDir: "web/templates",
			StaticDir:   "web/static",
		},
		GitHub: GitHubConfig{
			BaseURL:        "https://api.github.com",
			RPS:            2,
			Burst:          10,
			TimeoutSeconds: 15,
		},
		Storage: StorageConfig{DBPath: "data/github-clone.db"},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads YAML config from path on top of Default, then applies the
// environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}
	if err := cfg.ResolveEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ResolveEnv overrides fields from environment variables.
func (c *Config) ResolveEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v) // Atoi = ASCII to Integer
		if err != nil {
			return fmt.Errorf("config: invalid PORT value %q", v)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("TEMPLATE_DIR"); v != "" {
		c.Server.TemplateDir = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("GITHUB_API_URL"); v != "" {
		c.GitHub.BaseURL = v
	}
	if c.GitHub.Token == "" {
		c.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	if v := os.Getenv("GITHUB_API_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: invalid GITHUB_API_RPS value %q", v)
		}
		c.GitHub.RPS = f
	}
	if v := os.Getenv("GITHUB_API_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid GITHUB_API_BURST value %q", v)
		}
		c.GitHub.Burst = n
	}
	if c.Visitor.Secret == "" {
		c.Visitor.Secret = os.Getenv("VISITOR_SECRET")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.GitHub.BaseURL == "" {
		errs = append(errs, errors.New("github.baseUrl is required"))
	}
	if c.GitHub.RPS <= 0 {
		errs = append(errs, fmt.Errorf("github.rps must be positive, got %v", c.GitHub.RPS))
	}
	if c.GitHub.Burst <= 0 {
		errs = append(errs, fmt.Errorf("github.burst must be positive, got %d", c.GitHub.Burst))
	}
	if c.GitHub.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("github.timeoutSeconds must be positive, got %d", c.GitHub.TimeoutSeconds))
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.dbPath is required"))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ParseLevel maps a level name onto a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
