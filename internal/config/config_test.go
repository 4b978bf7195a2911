package config_test

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/envlens-cli/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "envlens-cli", cfg.Logger.ServiceName)

	assert.True(t, cfg.Audit.Sanitize)
	assert.True(t, cfg.Audit.DetectSecrets)
	assert.False(t, cfg.Audit.IncludeMetrics)
	assert.Equal(t, config.DefaultRedactionMask, cfg.Audit.RedactionMask)
	assert.Equal(t, config.DefaultSensitiveNames, cfg.Audit.SensitiveNames)
	assert.Equal(t, 1.0, cfg.Audit.SeverityWeights["error"])
	assert.Equal(t, 0.5, cfg.Audit.SeverityWeights["warning"])
	assert.Equal(t, 0.1, cfg.Audit.SeverityWeights["note"])

	assert.Empty(t, cfg.Database.URL)
}

func TestLoad_FromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	yamlCfg := `
logger:
  level: debug
  format: json
audit:
  sanitize: false
  severity_weights:
    error: 2.0
    warning: 1.0
  redaction_mask: "[MASKED]"
database:
  url: "postgres://localhost:5432/envlens"
`
	require.NoError(t, v.ReadConfig(strings.NewReader(yamlCfg)))

	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.False(t, cfg.Audit.Sanitize)
	assert.Equal(t, "[MASKED]", cfg.Audit.RedactionMask)
	assert.Equal(t, 2.0, cfg.Audit.SeverityWeights["error"])
	assert.Equal(t, "postgres://localhost:5432/envlens", cfg.Database.URL)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	t.Run("unknown logger format", func(t *testing.T) {
		v := viper.New()
		v.Set("logger.format", "xml")

		_, err := config.Load(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid logger format")
	})

	t.Run("negative severity weight", func(t *testing.T) {
		v := viper.New()
		v.Set("audit.severity_weights", map[string]float64{"error": -1})

		_, err := config.Load(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be non-negative")
	})
}

func TestValidate_BackfillsEmptyMaskAndNames(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logger.Format = "console"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.DefaultRedactionMask, cfg.Audit.RedactionMask)
	assert.Equal(t, config.DefaultSensitiveNames, cfg.Audit.SensitiveNames)
}
