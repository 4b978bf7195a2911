// File: internal/adapters/secrets.go
package adapters

import (
	"fmt"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

// AdaptSecrets converts secret-scanner hits into canonical findings. The
// entry sequence is consulted to embed the detected value in the message as
// evidence; the sanitizer redacts it before the finding reaches any output.
// A hit without a location is malformed and dropped with a synthetic
// warning.
func AdaptSecrets(hits []schemas.SecretHit, entries []schemas.EnvEntry) []schemas.Finding {
	values := make(map[valueKey]string, len(entries))
	for _, e := range entries {
		values[valueKey{e.Key, e.Line}] = e.Value
	}

	findings := make([]schemas.Finding, 0, len(hits))
	for _, h := range hits {
		if h.Line <= 0 {
			findings = append(findings, malformed(schemas.SourceSecretScanner,
				fmt.Sprintf("hit %q has no location", h.Detector)))
			continue
		}

		subject := h.Key
		if subject == "" {
			subject = "environment file"
		}
		msg := fmt.Sprintf("Potential %s detected in %s", h.Detector, subject)
		if v, ok := values[valueKey{h.Key, h.Line}]; ok && v != "" {
			msg = fmt.Sprintf("%s (%s=%s)", msg, h.Key, v)
		}

		findings = append(findings, schemas.Finding{
			RuleID:   RuleSecretDetected,
			Severity: schemas.SeverityError,
			Message:  msg,
			Location: schemas.Location{Key: h.Key, Line: h.Line},
			Source:   schemas.SourceSecretScanner,
		})
	}
	return findings
}

type valueKey struct {
	key  string
	line int
}
