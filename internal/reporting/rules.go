// File: internal/reporting/rules.go
package reporting

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
	"github.com/xkilldash9x/envlens-cli/internal/adapters"
)

// ruleInfo is one entry of the static rule catalog that backs the SARIF
// rules[] array.
type ruleInfo struct {
	Name         string
	Short        string
	Help         string
	DefaultLevel schemas.Severity
}

// ruleCatalog maps every rule id the adapters can emit to its descriptive
// metadata. Rule ids not present here still get a generated entry so the
// rules[] array always covers every emitted result.
var ruleCatalog = map[string]ruleInfo{
	adapters.RuleSchemaValidation: {
		Name:         "Schema Validation",
		Short:        "Schema validation error",
		Help:         "Environment variable does not match the expected schema type or format.",
		DefaultLevel: schemas.SeverityError,
	},
	adapters.RuleSchemaMissingField: {
		Name:         "Schema Missing Field",
		Short:        "Required field is missing",
		Help:         "A required field defined in the schema is not present in the environment file.",
		DefaultLevel: schemas.SeverityError,
	},
	adapters.RuleSecretDetected: {
		Name:         "Secret Detected",
		Short:        "Potential secret detected in environment file",
		Help:         "Potential secret or sensitive credential detected by the secrets scanner.",
		DefaultLevel: schemas.SeverityError,
	},
	adapters.RulePolicyRequired: {
		Name:         "Policy Missing Required",
		Short:        "Required environment variable is missing",
		Help:         "A required environment variable specified in policy is missing.",
		DefaultLevel: schemas.SeverityError,
	},
	adapters.RulePolicyForbidden: {
		Name:         "Policy Forbidden Key",
		Short:        "Forbidden environment variable detected",
		Help:         "An environment variable that is forbidden by policy is present.",
		DefaultLevel: schemas.SeverityError,
	},
	adapters.RulePolicyPattern: {
		Name:         "Policy Pattern Match",
		Short:        "Environment variable matches warning pattern",
		Help:         "Environment variable name matches a pattern defined in policy.",
		DefaultLevel: schemas.SeverityWarning,
	},
	adapters.RuleMalformedInput: {
		Name:         "Adapter Malformed Input",
		Short:        "Malformed diagnostic record dropped",
		Help:         "An upstream diagnostic record could not be interpreted and was dropped from the report.",
		DefaultLevel: schemas.SeverityWarning,
	},
}

// lookupRule returns catalog metadata for a rule id, generating a neutral
// entry for ids outside the catalog.
func lookupRule(ruleID string) ruleInfo {
	if info, ok := ruleCatalog[ruleID]; ok {
		return info
	}
	return ruleInfo{
		Name:         ruleIDToName(ruleID),
		Short:        fmt.Sprintf("Rule %s", ruleID),
		Help:         fmt.Sprintf("Audit rule: %s", ruleID),
		DefaultLevel: schemas.SeverityWarning,
	}
}

// ruleIDToName derives a human-readable name from a dotted rule id.
func ruleIDToName(ruleID string) string {
	parts := strings.FieldsFunc(ruleID, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
