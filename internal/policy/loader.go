// File: internal/policy/loader.go
package policy

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

// validSections are the only top-level keys a policy document may carry.
var validSections = map[string]bool{
	"metadata":  true,
	"required":  true,
	"forbidden": true,
	"patterns":  true,
}

// Load reads and validates a policy YAML file.
func Load(path string) (*schemas.PolicyRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes policy YAML content. Unknown sections,
// malformed pattern entries and non-compiling regexes are all rejected here
// so that evaluation never has to handle a half-valid policy.
func Parse(data []byte) (*schemas.PolicyRule, error) {
	// First decode into a generic map to detect unknown sections; yaml.v3
	// silently drops unmatched keys when decoding straight into a struct.
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML in policy file: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("policy file is empty")
	}
	for section := range raw {
		if !validSections[section] {
			return nil, fmt.Errorf("invalid policy section: %s", section)
		}
	}

	var rule schemas.PolicyRule
	if err := yaml.Unmarshal(data, &rule); err != nil {
		return nil, fmt.Errorf("invalid policy structure: %w", err)
	}

	for i, p := range rule.Patterns {
		if p.Regex == "" {
			return nil, fmt.Errorf("pattern %d must have a 'regex' field", i)
		}
		if _, err := regexp.Compile(p.Regex); err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", p.Regex, err)
		}
		switch p.Action {
		case "", schemas.PatternActionWarn, schemas.PatternActionDeny:
		default:
			return nil, fmt.Errorf("pattern %q has unknown action %q", p.Regex, p.Action)
		}
	}

	return &rule, nil
}

// examplePolicy is written by WriteExample as a starting point for users.
var examplePolicy = schemas.PolicyRule{
	Metadata: schemas.PolicyMetadata{
		Name:        "Example Environment Policy",
		Version:     "1.0.0",
		Description: "Example policy for environment variable validation",
	},
	Required:  []string{"APP_NAME", "APP_ENV", "DATABASE_URL"},
	Forbidden: []string{"DEBUG", "UNSAFE_MODE"},
	Patterns: []schemas.PatternRule{
		{
			Regex:   ".*_PROD_.*",
			Action:  schemas.PatternActionWarn,
			Message: "Production variables should not be in .env files",
		},
		{
			Regex:   "^TEST_.*",
			Action:  schemas.PatternActionWarn,
			Message: "Test variables detected",
		},
	},
}

// WriteExample creates an example policy file at the given path.
func WriteExample(path string) error {
	data, err := yaml.Marshal(&examplePolicy)
	if err != nil {
		return fmt.Errorf("failed to marshal example policy: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write example policy: %w", err)
	}
	return nil
}
