// File: internal/policy/evaluate.go
package policy

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

// ViolationKind distinguishes the three ways a policy can be violated.
type ViolationKind string

const (
	KindMissingRequired ViolationKind = "missing_required"
	KindForbidden       ViolationKind = "forbidden"
	KindPatternMatch    ViolationKind = "pattern_match"
)

// Violation is the evaluator's native output, one record per breached rule.
// The policy adapter translates these into canonical findings.
type Violation struct {
	Kind    ViolationKind
	Key     string
	Line    int // 0 when the variable is absent from the file
	Message string
	Deny    bool // pattern violations only: true escalates warn to error
}

// Evaluate checks the entry sequence against a policy. Required and
// forbidden checks use last-value-wins presence semantics; name patterns run
// in declaration order and yield one violation per matching key. Required
// variables are checked in sorted order so output does not depend on map
// iteration.
func Evaluate(entries []schemas.EnvEntry, rule *schemas.PolicyRule) []Violation {
	if rule == nil {
		return nil
	}

	latest := make(map[string]schemas.EnvEntry, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := latest[e.Key]; !ok {
			order = append(order, e.Key)
		}
		latest[e.Key] = e
	}

	var out []Violation

	required := append([]string(nil), rule.Required...)
	sort.Strings(required)
	for _, name := range required {
		if _, ok := latest[name]; !ok {
			out = append(out, Violation{
				Kind:    KindMissingRequired,
				Key:     name,
				Message: fmt.Sprintf("Required environment variable '%s' is missing", name),
			})
		}
	}

	forbidden := append([]string(nil), rule.Forbidden...)
	sort.Strings(forbidden)
	for _, name := range forbidden {
		if e, ok := latest[name]; ok {
			out = append(out, Violation{
				Kind:    KindForbidden,
				Key:     name,
				Line:    e.Line,
				Message: fmt.Sprintf("Forbidden environment variable '%s' is present", name),
			})
		}
	}

	for _, p := range rule.Patterns {
		// Parse validated the regex already; a failure here is a programming
		// error and the pattern is skipped rather than aborting the audit.
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			continue
		}
		for _, name := range order {
			if !re.MatchString(name) {
				continue
			}
			msg := p.Message
			if msg == "" {
				msg = fmt.Sprintf("Variable '%s' matches pattern '%s'", name, p.Regex)
			}
			out = append(out, Violation{
				Kind:    KindPatternMatch,
				Key:     name,
				Line:    latest[name].Line,
				Message: msg,
				Deny:    p.Action == schemas.PatternActionDeny,
			})
		}
	}

	return out
}
