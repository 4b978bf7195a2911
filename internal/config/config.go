// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Audit    AuditConfig    `mapstructure:"audit" yaml:"audit"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
}

// ColorConfig maps log levels to terminal color names for the console encoder.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
	Fatal string `mapstructure:"fatal" yaml:"fatal"`
}

// LoggerConfig controls the zap logger setup.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"` // "console" or "json"
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`

	// File sink settings. An empty LogFile disables the file core.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// AuditConfig carries the tunable knobs of the audit engine. The severity
// weights feed the compliance score; they default to the conventional
// error=1.0 / warning=0.5 / note=0.1 but are configuration, not policy.
type AuditConfig struct {
	SeverityWeights map[string]float64 `mapstructure:"severity_weights" yaml:"severity_weights"`

	// SensitiveNames are case-insensitive substrings; any variable whose
	// name contains one is treated as sensitive by the sanitizer.
	SensitiveNames []string `mapstructure:"sensitive_names" yaml:"sensitive_names"`

	// RedactionMask is the fixed-width token substituted for redacted values.
	RedactionMask string `mapstructure:"redaction_mask" yaml:"redaction_mask"`

	Sanitize       bool `mapstructure:"sanitize" yaml:"sanitize"`
	DetectSecrets  bool `mapstructure:"detect_secrets" yaml:"detect_secrets"`
	IncludeMetrics bool `mapstructure:"include_metrics" yaml:"include_metrics"`
}

// DatabaseConfig configures the optional findings history store. An empty
// URL disables persistence entirely.
type DatabaseConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// DefaultSensitiveNames is the built-in sensitive-name heuristic applied
// when the config does not override it.
var DefaultSensitiveNames = []string{"key", "secret", "token", "password", "credential"}

// DefaultRedactionMask is the constant-length mask substituted for sensitive
// values. Its shape must never itself look like sensitive content, so that
// sanitization stays idempotent.
const DefaultRedactionMask = "***REDACTED***"

// SetDefaults registers every default value on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "envlens-cli")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("audit.severity_weights", map[string]float64{
		"error":   1.0,
		"warning": 0.5,
		"note":    0.1,
	})
	v.SetDefault("audit.sensitive_names", DefaultSensitiveNames)
	v.SetDefault("audit.redaction_mask", DefaultRedactionMask)
	v.SetDefault("audit.sanitize", true)
	v.SetDefault("audit.detect_secrets", true)
	v.SetDefault("audit.include_metrics", false)
}

// Load reads the configuration from the given viper instance, applying
// defaults and validating the result.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks invariants that viper defaults alone cannot guarantee.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logger.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logger format %q (want console or json)", c.Logger.Format)
	}

	for sev, w := range c.Audit.SeverityWeights {
		if w < 0 {
			return fmt.Errorf("severity weight for %q must be non-negative, got %v", sev, w)
		}
	}
	if c.Audit.RedactionMask == "" {
		c.Audit.RedactionMask = DefaultRedactionMask
	}
	if len(c.Audit.SensitiveNames) == 0 {
		c.Audit.SensitiveNames = DefaultSensitiveNames
	}
	return nil
}
