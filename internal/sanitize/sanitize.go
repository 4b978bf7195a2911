// File: internal/sanitize/sanitize.go

// Package sanitize redacts sensitive environment values from finding
// messages before they reach metrics or the report builder. Sensitivity
// context is passed explicitly; there is no ambient redaction state.
package sanitize

import (
	"sort"
	"strings"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

// Sanitizer replaces sensitive values with a fixed-width mask. It is a pure
// function over finding sequences and idempotent: once a value is replaced
// by the mask nothing in the output re-matches, so a second pass is a no-op.
type Sanitizer struct {
	mask string
	// values holds every sensitive value, longest first so that no value is
	// partially redacted when one is a substring of another.
	values []string
}

// New builds a sanitizer from the audited entries. An entry's value is
// sensitive when (a) its key was flagged by the secret scanner, or (b) its
// key name contains one of the configured case-insensitive substrings.
func New(entries []schemas.EnvEntry, secretKeys map[string]bool, nameSubstrings []string, mask string) *Sanitizer {
	lowered := make([]string, len(nameSubstrings))
	for i, s := range nameSubstrings {
		lowered[i] = strings.ToLower(s)
	}

	seen := make(map[string]bool)
	var values []string
	for _, e := range entries {
		// Any value contained in the mask would re-match the mask text a
		// previous pass inserted and break idempotence, so skip it entirely.
		if e.Value == "" || strings.Contains(mask, e.Value) {
			continue
		}
		if !secretKeys[e.Key] && !nameMatches(e.Key, lowered) {
			continue
		}
		if !seen[e.Value] {
			seen[e.Value] = true
			values = append(values, e.Value)
		}
	}

	sort.Slice(values, func(i, j int) bool {
		if len(values[i]) != len(values[j]) {
			return len(values[i]) > len(values[j])
		}
		return values[i] < values[j]
	})

	return &Sanitizer{mask: mask, values: values}
}

// SecretKeys extracts the set of keys flagged by secret-scanner findings.
// These keys are sensitive regardless of what their names look like.
func SecretKeys(findings []schemas.Finding) map[string]bool {
	keys := make(map[string]bool)
	for _, f := range findings {
		if f.Source == schemas.SourceSecretScanner && f.Location.Key != "" {
			keys[f.Location.Key] = true
		}
	}
	return keys
}

// Apply returns a copy of the sequence with every sensitive value in every
// message replaced by the mask. Rule ids, severities and locations are
// never altered; a finding without a message passes through untouched.
func (s *Sanitizer) Apply(findings []schemas.Finding) []schemas.Finding {
	out := make([]schemas.Finding, len(findings))
	for i, f := range findings {
		f.Message = s.Redact(f.Message)
		out[i] = f
	}
	return out
}

// Redact replaces sensitive values in a single string.
func (s *Sanitizer) Redact(text string) string {
	if text == "" {
		return text
	}
	for _, v := range s.values {
		text = strings.ReplaceAll(text, v, s.mask)
	}
	return text
}

func nameMatches(key string, lowered []string) bool {
	lk := strings.ToLower(key)
	for _, sub := range lowered {
		if sub != "" && strings.Contains(lk, sub) {
			return true
		}
	}
	return false
}
