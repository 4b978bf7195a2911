package schemas

// Metrics summarizes one audit run. It is computed as a pure function over
// the final, sanitized finding sequence and never mutated afterwards.
type Metrics struct {
	TotalFindings int `json:"total_findings"`

	// BySeverity and BySource hold per-category counts. Only categories
	// that actually occurred are present.
	BySeverity map[Severity]int `json:"by_severity"`
	BySource   map[Source]int   `json:"by_source"`

	// ComplianceScore is 1.0 minus the severity-weighted violation count
	// over the number of checks attempted, clamped to [0,1]. A run with no
	// checks is vacuously compliant (1.0).
	ComplianceScore float64 `json:"compliance_score"`
}
