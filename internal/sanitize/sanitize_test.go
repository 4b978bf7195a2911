package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
	"github.com/xkilldash9x/envlens-cli/internal/config"
	"github.com/xkilldash9x/envlens-cli/internal/sanitize"
)

func TestApply_RedactsSecretScannerValues(t *testing.T) {
	entries := []schemas.EnvEntry{
		{Key: "API_KEY", Value: "sk_live_abc123", Line: 2},
		{Key: "APP_NAME", Value: "myapp", Line: 1},
	}
	s := sanitize.New(entries, map[string]bool{"API_KEY": true},
		config.DefaultSensitiveNames, config.DefaultRedactionMask)

	findings := []schemas.Finding{
		{
			RuleID:   "secret.detected",
			Severity: schemas.SeverityError,
			Message:  "Potential Stripe Live Key detected in API_KEY (API_KEY=sk_live_abc123)",
			Location: schemas.Location{Key: "API_KEY", Line: 2},
			Source:   schemas.SourceSecretScanner,
		},
	}

	out := s.Apply(findings)

	require.Len(t, out, 1)
	assert.Equal(t, "Potential Stripe Live Key detected in API_KEY (API_KEY=***REDACTED***)", out[0].Message)
	assert.NotContains(t, out[0].Message, "sk_live_abc123")
	// Only the message changes.
	assert.Equal(t, findings[0].RuleID, out[0].RuleID)
	assert.Equal(t, findings[0].Severity, out[0].Severity)
	assert.Equal(t, findings[0].Location, out[0].Location)
	assert.Equal(t, findings[0].Source, out[0].Source)
	// Input untouched.
	assert.Contains(t, findings[0].Message, "sk_live_abc123")
}

func TestApply_NameHeuristicCaseInsensitive(t *testing.T) {
	entries := []schemas.EnvEntry{
		{Key: "Db_Password", Value: "hunter2", Line: 1},
		{Key: "SERVICE_TOKEN", Value: "tok-123", Line: 2},
		{Key: "PORT", Value: "8080", Line: 3},
	}
	s := sanitize.New(entries, nil, config.DefaultSensitiveNames, config.DefaultRedactionMask)

	assert.Equal(t, "got ***REDACTED*** and ***REDACTED***", s.Redact("got hunter2 and tok-123"))
	// Non-sensitive values stay.
	assert.Equal(t, "listening on 8080", s.Redact("listening on 8080"))
}

func TestApply_Idempotent(t *testing.T) {
	entries := []schemas.EnvEntry{
		{Key: "SECRET_A", Value: "value-a", Line: 1},
	}
	s := sanitize.New(entries, nil, config.DefaultSensitiveNames, config.DefaultRedactionMask)

	findings := []schemas.Finding{
		{RuleID: "r", Severity: schemas.SeverityWarning, Message: "leaked value-a twice: value-a"},
	}

	once := s.Apply(findings)
	twice := s.Apply(once)
	assert.Equal(t, once, twice)
}

func TestApply_IdempotentWithMaskSubstringValue(t *testing.T) {
	// "RED" occurs inside the mask text itself; treating it as sensitive
	// would shred the mask on a second pass.
	entries := []schemas.EnvEntry{
		{Key: "API_TOKEN", Value: "RED", Line: 1},
		{Key: "API_SECRET", Value: "hunter2", Line: 2},
	}
	s := sanitize.New(entries, nil, config.DefaultSensitiveNames, config.DefaultRedactionMask)

	// A mask-substring value is never redacted at all.
	assert.Equal(t, "value RED leaked", s.Redact("value RED leaked"))

	findings := []schemas.Finding{
		{RuleID: "r", Severity: schemas.SeverityWarning, Message: "got hunter2 and RED"},
	}
	once := s.Apply(findings)
	twice := s.Apply(once)

	require.Len(t, once, 1)
	assert.Equal(t, "got ***REDACTED*** and RED", once[0].Message)
	assert.Equal(t, once, twice)
}

func TestNew_LongestValueFirst(t *testing.T) {
	// "abc" is a substring of "abcdef"; redacting the short one first would
	// leave "def" exposed.
	entries := []schemas.EnvEntry{
		{Key: "TOKEN_SHORT", Value: "abc", Line: 1},
		{Key: "TOKEN_LONG", Value: "abcdef", Line: 2},
	}
	s := sanitize.New(entries, nil, config.DefaultSensitiveNames, config.DefaultRedactionMask)

	assert.Equal(t, "***REDACTED*** ***REDACTED***", s.Redact("abcdef abc"))
}

func TestApply_EmptyMessagePassesThrough(t *testing.T) {
	s := sanitize.New(nil, nil, config.DefaultSensitiveNames, config.DefaultRedactionMask)

	findings := []schemas.Finding{{RuleID: "r", Severity: schemas.SeverityNote}}
	out := s.Apply(findings)

	require.Len(t, out, 1)
	assert.Equal(t, findings[0], out[0])
}

func TestSecretKeys(t *testing.T) {
	findings := []schemas.Finding{
		{Source: schemas.SourceSecretScanner, Location: schemas.Location{Key: "API_KEY"}},
		{Source: schemas.SourcePolicy, Location: schemas.Location{Key: "DEBUG"}},
		{Source: schemas.SourceSecretScanner},
	}

	keys := sanitize.SecretKeys(findings)
	assert.Equal(t, map[string]bool{"API_KEY": true}, keys)
}
