package config

import (
	"strconv"
	"strings"

	sanitize "github.com/mrz1836/go-sanitize"
)

// Environment variable names read by ApplyEnvironment.
const (
	EnvHome      = "SSSS_HOME"
	EnvLogLevel  = "SSSS_LOG_LEVEL"
	EnvLogFile   = "SSSS_LOG_FILE"
	EnvDiffusion = "SSSS_DIFFUSION"
	EnvHex       = "SSSS_HEX"
	EnvMemLock   = "SSSS_MEMLOCK"
	EnvToken     = "SSSS_TOKEN"
	EnvQuiet     = "SSSS_QUIET"
	EnvFormat    = "SSSS_OUTPUT_FORMAT"
)

// Getenv is indirected so tests can inject a fake environment without
// mutating process state.
type Getenv func(string) string

// ApplyEnvironment applies environment variable overrides to cfg. It
// is tolerant of malformed values: anything that doesn't parse is
// left at its current value rather than aborting configuration load.
func ApplyEnvironment(cfg *Config, getenv Getenv) {
	if v := getenv(EnvHome); v != "" {
		cfg.Home = strings.TrimSpace(v)
	}

	if v := getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}

	if v := getenv(EnvLogFile); v != "" {
		cfg.Logging.File = strings.TrimSpace(v)
	}

	if v := getenv(EnvDiffusion); v != "" {
		cfg.Security.Diffusion = parseBool(v, cfg.Security.Diffusion)
	}

	if v := getenv(EnvHex); v != "" {
		cfg.Output.Hex = parseBool(v, cfg.Output.Hex)
	}

	if v := getenv(EnvMemLock); v != "" {
		cfg.Security.RequireMemoryLock = parseBool(v, cfg.Security.RequireMemoryLock)
	}

	if v := getenv(EnvToken); v != "" {
		cfg.Security.DefaultToken = SanitizeToken(v)
	}

	if v := getenv(EnvQuiet); v != "" {
		cfg.Output.Quiet = parseBool(v, cfg.Output.Quiet)
	}

	if v := getenv(EnvFormat); v != "" {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(v))
	}
}

// SanitizeToken strips control characters and surrounding whitespace
// from a share token supplied via -w/--token or SSSS_TOKEN, the same
// role sigil's SanitizeURL plays for copy-pasted RPC URLs.
func SanitizeToken(raw string) string {
	return sanitize.SingleLine(strings.TrimSpace(raw))
}

func parseBool(v string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}
