// File: internal/metrics/metrics.go

// Package metrics computes the summary record for one audit run. The
// collector is a pure, deterministic function over the final finding
// sequence; it never mutates its input.
package metrics

import (
	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

// DefaultWeights is the conventional severity weighting of the compliance
// score. The weights are configuration, not fixed policy.
var DefaultWeights = map[string]float64{
	string(schemas.SeverityError):   1.0,
	string(schemas.SeverityWarning): 0.5,
	string(schemas.SeverityNote):    0.1,
}

// Collect builds the metrics record from the sanitized, ordered finding
// sequence. checksAttempted is supplied by the caller; zero checks yield a
// vacuously compliant score of 1.0 rather than an error. A nil weights map
// falls back to DefaultWeights.
func Collect(findings []schemas.Finding, checksAttempted int, weights map[string]float64) schemas.Metrics {
	if weights == nil {
		weights = DefaultWeights
	}

	m := schemas.Metrics{
		TotalFindings: len(findings),
		BySeverity:    make(map[schemas.Severity]int),
		BySource:      make(map[schemas.Source]int),
	}

	var weighted float64
	for _, f := range findings {
		m.BySeverity[f.Severity]++
		m.BySource[f.Source]++
		weighted += weights[string(f.Severity)]
	}

	m.ComplianceScore = score(weighted, checksAttempted)
	return m
}

// score maps the weighted violation count onto [0,1].
func score(weighted float64, checks int) float64 {
	if checks <= 0 {
		return 1.0
	}
	s := 1.0 - weighted/float64(checks)
	if s < 0 {
		return 0.0
	}
	if s > 1 {
		return 1.0
	}
	return s
}
