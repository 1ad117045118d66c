package config

// Defaults returns the built-in configuration, matching the original
// ssss tool's behavior (diffusion on, security level auto-derived,
// quiet/silent off).
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.ssss",
		Security: SecurityConfig{
			DefaultLevel:      0,
			Diffusion:         true,
			RequireMemoryLock: false,
			DefaultToken:      "",
		},
		Output: OutputConfig{
			Hex:    false,
			Quiet:  false,
			Silent: false,
			QR:     false,
			Format: "auto",
		},
		Logging: LoggingConfig{
			Level: "off",
			File:  "~/.ssss/ssss.log",
		},
	}
}
