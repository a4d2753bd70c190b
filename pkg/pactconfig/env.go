package pactconfig

import "os"

// Environment variable names read by ApplyEnv.
const (
	EnvPactFile  = "PACTCORE_PACT_FILE"
	EnvAddr      = "PACTCORE_ADDR"
	EnvTLS       = "PACTCORE_TLS"
	EnvPactDir   = "PACTCORE_PACT_DIR"
	EnvLogLevel  = "PACTCORE_LOG_LEVEL"
	EnvLogFormat = "PACTCORE_LOG_FORMAT"
)

// ApplyEnv overrides cfg's fields from PACTCORE_* environment variables,
// recording SourceEnv provenance for each field actually present in the
// environment. Only variables that are set are applied; an unset
// variable leaves whatever the file loader (or the defaults) put there.
func ApplyEnv(cfg *ServerConfig) {
	if cfg.Sources == nil {
		cfg.Sources = map[string]string{}
	}

	if v, ok := os.LookupEnv(EnvPactFile); ok {
		cfg.PactFile = v
		cfg.Sources["pactFile"] = SourceEnv
	}
	if v, ok := os.LookupEnv(EnvAddr); ok {
		cfg.Addr = v
		cfg.Sources["addr"] = SourceEnv
	}
	if v, ok := os.LookupEnv(EnvTLS); ok {
		cfg.TLS = v == "true" || v == "1" || v == "yes"
		cfg.Sources["tls"] = SourceEnv
	}
	if v, ok := os.LookupEnv(EnvPactDir); ok {
		cfg.PactDir = v
		cfg.Sources["pactDir"] = SourceEnv
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}
}
