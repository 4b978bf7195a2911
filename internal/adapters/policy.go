// File: internal/adapters/policy.go
package adapters

import (
	"github.com/xkilldash9x/envlens-cli/api/schemas"
	"github.com/xkilldash9x/envlens-cli/internal/policy"
)

// AdaptPolicy converts native policy violations into canonical findings.
// Missing-required and forbidden violations are errors; pattern matches are
// warnings unless the pattern's action escalates them. A violation without
// a key is malformed and dropped with a synthetic warning.
func AdaptPolicy(violations []policy.Violation) []schemas.Finding {
	findings := make([]schemas.Finding, 0, len(violations))
	for _, v := range violations {
		if v.Key == "" {
			findings = append(findings, malformed(schemas.SourcePolicy, "violation has no key"))
			continue
		}

		f := schemas.Finding{
			Message:  v.Message,
			Location: schemas.Location{Key: v.Key, Line: v.Line},
			Source:   schemas.SourcePolicy,
		}

		switch v.Kind {
		case policy.KindMissingRequired:
			f.RuleID = RulePolicyRequired
			f.Severity = schemas.SeverityError
		case policy.KindForbidden:
			f.RuleID = RulePolicyForbidden
			f.Severity = schemas.SeverityError
		case policy.KindPatternMatch:
			f.RuleID = RulePolicyPattern
			f.Severity = schemas.SeverityWarning
			if v.Deny {
				f.Severity = schemas.SeverityError
			}
		default:
			findings = append(findings, malformed(schemas.SourcePolicy,
				"violation has unknown kind "+string(v.Kind)))
			continue
		}

		findings = append(findings, f)
	}
	return findings
}
