// File: internal/adapters/adapters.go

// Package adapters translates each diagnostic collaborator's native output
// into the canonical finding shape. Adapters are pure: no I/O, no mutation
// of their input, no deduplication (the aggregator's job) and no
// sanitization (the sanitizer's job). A malformed upstream record is
// downgraded to a synthetic warning finding instead of aborting the run.
package adapters

import (
	"fmt"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

// Rule identifiers assigned by the adapters. These are stable across runs
// and independent of input ordering.
const (
	RuleSchemaValidation   = "schema.validation"
	RuleSchemaMissingField = "schema.missing_field"
	RuleSecretDetected     = "secret.detected"
	RulePolicyRequired     = "policy.missing_required"
	RulePolicyForbidden    = "policy.forbidden_key"
	RulePolicyPattern      = "policy.pattern_match"
	RuleMalformedInput     = "adapter.malformed_input"
)

// malformed builds the synthetic warning emitted for a bad upstream record.
// One bad record must never abort the whole report.
func malformed(source schemas.Source, detail string) schemas.Finding {
	return schemas.Finding{
		RuleID:   RuleMalformedInput,
		Severity: schemas.SeverityWarning,
		Message:  fmt.Sprintf("Dropped malformed %s record: %s", source, detail),
		Source:   source,
	}
}
