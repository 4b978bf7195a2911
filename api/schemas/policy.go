package schemas

// -- Policy Schemas --

// PatternAction controls what a matching name pattern produces.
type PatternAction string

const (
	PatternActionWarn PatternAction = "warn" // Match yields a warning finding.
	PatternActionDeny PatternAction = "deny" // Match yields an error finding.
)

// PatternRule is one name-pattern entry of a policy. Patterns are evaluated
// in declaration order and each match yields one violation per matching key.
type PatternRule struct {
	Regex   string        `yaml:"regex" json:"regex"`
	Action  PatternAction `yaml:"action" json:"action"`
	Message string        `yaml:"message,omitempty" json:"message,omitempty"`
}

// PolicyMetadata carries descriptive information about a policy document.
// It has no effect on evaluation.
type PolicyMetadata struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// PolicyRule is the parsed form of a policy YAML document. It is consumed
// by the policy evaluator; the audit core never constructs one.
type PolicyRule struct {
	Metadata  PolicyMetadata `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Required  []string       `yaml:"required,omitempty" json:"required,omitempty"`
	Forbidden []string       `yaml:"forbidden,omitempty" json:"forbidden,omitempty"`
	Patterns  []PatternRule  `yaml:"patterns,omitempty" json:"patterns,omitempty"`
}
