package schemas

// -- Finding Schemas --

// Severity represents the severity level of a compliance finding. The values
// are lowercase to align with SARIF result levels.
type Severity string

// Constants defining the standard severity levels for findings.
const (
	SeverityError   Severity = "error"   // A hard compliance violation.
	SeverityWarning Severity = "warning" // A suspect condition worth review.
	SeverityNote    Severity = "note"    // An informational observation.
)

// Rank returns the ordering weight of a severity, errors first. Unknown
// severities sort after all known ones.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityNote:
		return 2
	default:
		return 3
	}
}

// Source tags the provenance of a finding: which diagnostic collaborator
// produced it.
type Source string

// Constants for the three diagnostic sources.
const (
	SourceSchema        Source = "schema"         // Schema validation errors.
	SourceSecretScanner Source = "secret_scanner" // Secret-detection hits.
	SourcePolicy        Source = "policy"         // Policy-rule violations.
)

// Rank returns the fixed provenance tie-break order used during
// deduplication: schema wins over secret_scanner wins over policy.
func (s Source) Rank() int {
	switch s {
	case SourceSchema:
		return 0
	case SourceSecretScanner:
		return 1
	case SourcePolicy:
		return 2
	default:
		return 3
	}
}

// Location pins a finding to a place in the audited file. Both fields are
// optional: a zero Line means "line unknown" and an empty Key means the
// finding is not tied to a single variable.
type Location struct {
	Key  string `json:"key,omitempty"`
	Line int    `json:"line,omitempty"`
}

// Finding is the canonical unit of audit output. Every diagnostic source is
// normalized into this shape before aggregation; deduplication and ordering
// operate on it exclusively.
type Finding struct {
	// RuleID is the stable identifier for the violated rule, e.g.
	// "policy.forbidden_key". It is deterministic for a given violation
	// type regardless of input ordering.
	RuleID string `json:"rule_id"`

	Severity Severity `json:"severity"`

	// Message is the human-readable description. After sanitization it must
	// not contain any sensitive value.
	Message string `json:"message"`

	Location Location `json:"location"`

	Source Source `json:"source"`

	// Fingerprint is the deterministic dedup key derived from RuleID,
	// Location and Source. It is assigned by the aggregator; adapters leave
	// it empty.
	Fingerprint string `json:"fingerprint,omitempty"`
}
