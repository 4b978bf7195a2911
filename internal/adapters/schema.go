// File: internal/adapters/schema.go
package adapters

import (
	"fmt"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

// AdaptSchema converts schema-validator errors into canonical findings.
// Every distinct error maps to exactly one finding. Records without an
// error message are considered malformed and dropped with a synthetic
// warning.
func AdaptSchema(errs []schemas.SchemaError) []schemas.Finding {
	findings := make([]schemas.Finding, 0, len(errs))
	for _, e := range errs {
		if e.FieldName == "" && e.ErrMessage == "" {
			findings = append(findings, malformed(schemas.SourceSchema, "record has neither field name nor message"))
			continue
		}

		if e.Missing {
			findings = append(findings, schemas.Finding{
				RuleID:   RuleSchemaMissingField,
				Severity: schemas.SeverityError,
				Message:  fmt.Sprintf("Required field '%s' is missing", e.FieldName),
				Location: schemas.Location{Key: e.FieldName},
				Source:   schemas.SourceSchema,
			})
			continue
		}

		msg := e.ErrMessage
		if e.FieldName != "" {
			msg = fmt.Sprintf("%s: %s", e.FieldName, e.ErrMessage)
		}
		findings = append(findings, schemas.Finding{
			RuleID:   RuleSchemaValidation,
			Severity: schemas.SeverityError,
			Message:  msg,
			Location: schemas.Location{Key: e.FieldName, Line: e.Line},
			Source:   schemas.SourceSchema,
		})
	}
	return findings
}
