// File: internal/secrets/scanner.go

// Package secrets provides a reference secret scanner over parsed env
// entries. It is a closed registry of well-known credential shapes; the
// audit core only consumes the resulting hits and works with any scanner
// producing the same record shape.
package secrets

import (
	"regexp"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

// detector pairs a human-readable name with the value pattern it fires on.
type detector struct {
	Name    string
	Pattern *regexp.Regexp
}

// knownDetectors contains patterns for well-known credential formats.
var knownDetectors = []detector{
	{"GitHub Token", regexp.MustCompile(`^ghp_[a-zA-Z0-9]{36}$`)},
	{"Stripe Live Key", regexp.MustCompile(`^sk_live_[a-zA-Z0-9]+$`)},
	{"Stripe Test Key", regexp.MustCompile(`^sk_test_[a-zA-Z0-9]+$`)},
	{"AWS Access Key", regexp.MustCompile(`^AKIA[0-9A-Z]{16}$`)},
	{"Private Key", regexp.MustCompile(`-----BEGIN (?:RSA |EC |OPENSSH )?PRIVATE KEY-----`)},
}

// jwtShape is a cheap pre-filter; candidates are confirmed by actually
// parsing the token so e.g. "eyJ.x.y" noise does not fire.
var jwtShape = regexp.MustCompile(`^eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+$`)

// Scanner detects well-known secret shapes in environment values.
type Scanner struct {
	jwtParser *jwt.Parser
}

// NewScanner creates a scanner with the built-in detector registry.
func NewScanner() *Scanner {
	return &Scanner{jwtParser: jwt.NewParser()}
}

// Scan checks every entry value against the detector registry and returns
// one hit per matching entry, in entry order. Empty values never match.
func (s *Scanner) Scan(entries []schemas.EnvEntry) []schemas.SecretHit {
	var hits []schemas.SecretHit
	for _, e := range entries {
		if e.Value == "" {
			continue
		}
		if name, ok := s.detect(e.Value); ok {
			hits = append(hits, schemas.SecretHit{
				Key:      e.Key,
				Detector: name,
				Line:     e.Line,
			})
		}
	}
	return hits
}

// detect returns the first detector that fires on a value.
func (s *Scanner) detect(value string) (string, bool) {
	for _, d := range knownDetectors {
		if d.Pattern.MatchString(value) {
			return d.Name, true
		}
	}
	if jwtShape.MatchString(value) && s.isJWT(value) {
		return "JWT", true
	}
	return "", false
}

// isJWT confirms a candidate by parsing it without signature verification.
// Only the structure matters here; we are detecting a leaked token, not
// validating one.
func (s *Scanner) isJWT(value string) bool {
	_, _, err := s.jwtParser.ParseUnverified(value, jwt.MapClaims{})
	return err == nil
}
