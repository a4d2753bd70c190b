// Package pactconfig loads the configuration for a standalone pact mock
// server process (cmd/pactcore serve): a plain struct with JSON/YAML
// tags, a typed default constructor, and a loader that auto-detects
// format by file extension.
package pactconfig

import (
	"log/slog"

	"github.com/pact-foundation/pact-core-go/pkg/pactlog"
)

// ServerConfig configures a standalone mock server process: which pact
// file to load, where to bind, and how to log.
type ServerConfig struct {
	// PactFile is the path to the pact JSON file to serve.
	PactFile string `json:"pactFile" yaml:"pactFile"`
	// Addr is the address to bind the mock server to. Empty selects a
	// free port starting from the core's default scan base.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
	// TLS enables a self-signed HTTPS listener instead of plain HTTP.
	TLS bool `json:"tls,omitempty" yaml:"tls,omitempty"`
	// PactDir is a pact-file directory setting, loaded and saved with the
	// rest of the config; cmd/pactcore does not write pact files to it.
	PactDir string `json:"pactDir,omitempty" yaml:"pactDir,omitempty"`
	// LogLevel is one of debug/info/warn/error.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	// LogFormat is "text" or "json".
	LogFormat string `json:"logFormat,omitempty" yaml:"logFormat,omitempty"`

	// Sources tracks where each field's value came from: default, a
	// loaded config file, an environment variable, or an explicit flag.
	Sources map[string]string `json:"-" yaml:"-"`
}

// Provenance values recorded in ServerConfig.Sources.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		PactDir:   "pacts",
		LogLevel:  "info",
		LogFormat: "text",
		Sources: map[string]string{
			"pactDir":   SourceDefault,
			"logLevel":  SourceDefault,
			"logFormat": SourceDefault,
		},
	}
}

// Logger builds the *slog.Logger this configuration describes.
func (c *ServerConfig) Logger() *slog.Logger {
	return pactlog.New(pactlog.Config{
		Level:  pactlog.ParseLevel(c.LogLevel),
		Format: pactlog.ParseFormat(c.LogFormat),
	})
}
