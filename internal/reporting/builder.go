// File: internal/reporting/builder.go

// Package reporting assembles the canonical finding sequence, metrics and
// tool identity into a SARIF 2.1.0 document. The logical document is part
// of the engine's contract: given identical inputs the emitted structure is
// bit-exact across runs, so everything non-deterministic (timestamp, run
// id) is opt-in and excluded by default.
package reporting

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
	"github.com/xkilldash9x/envlens-cli/internal/reporting/sarif"
)

// Constants for tool identification in the SARIF report.
const (
	ToolName     = "envlens-cli"
	ToolInfoURI  = "https://github.com/xkilldash9x/envlens-cli"
	SARIFVersion = "2.1.0"
	SARIFSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

// Builder constructs report documents for one tool identity.
type Builder struct {
	toolVersion string

	// timestamp and runID are nil/empty unless explicitly requested; both
	// are outside the deterministic surface of the report.
	timestamp *time.Time
	runID     string
}

// Option configures a Builder.
type Option func(*Builder)

// WithTimestamp stamps the report with a run time. Conformance tests must
// compare reports with the timestamp normalized or omitted.
func WithTimestamp(t time.Time) Option {
	return func(b *Builder) { b.timestamp = &t }
}

// WithRunID attaches a caller-supplied run identifier to the report
// properties. Like the timestamp it is excluded from determinism checks.
func WithRunID(id string) Option {
	return func(b *Builder) { b.runID = id }
}

// NewBuilder creates a report builder with the given tool version.
func NewBuilder(toolVersion string, opts ...Option) *Builder {
	b := &Builder{toolVersion: toolVersion}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build assembles the report. findings must already be aggregated,
// sanitized and ordered; Build preserves their order exactly. metrics may
// be nil (metrics inclusion is a configuration switch). runProps carries
// extra run-level properties (file size, variable count) and may be nil.
func (b *Builder) Build(findings []schemas.Finding, sourceFile string, m *schemas.Metrics, runProps map[string]interface{}) *sarif.Log {
	results := make([]*sarif.Result, 0, len(findings))
	for i := range findings {
		results = append(results, b.buildResult(&findings[i], sourceFile))
	}

	run := &sarif.Run{
		Tool: &sarif.Tool{
			Driver: &sarif.ToolComponent{
				Name:           ToolName,
				Version:        pString(b.toolVersion),
				InformationURI: pString(ToolInfoURI),
				Rules:          b.buildRules(findings),
			},
		},
		Results:    results,
		ColumnKind: "utf16CodeUnits",
	}

	props := sarif.PropertyBag{}
	if m != nil {
		props["metrics"] = *m
	}
	for k, v := range runProps {
		props[k] = v
	}
	if b.runID != "" {
		props["run_id"] = b.runID
	}
	if b.timestamp != nil {
		props["timestamp"] = b.timestamp.UTC().Format(time.RFC3339)
	}
	if len(props) > 0 {
		run.Properties = &props
	}

	return &sarif.Log{
		Version: SARIFVersion,
		Schema:  SARIFSchema,
		Runs:    []*sarif.Run{run},
	}
}

// buildRules emits one ReportingDescriptor per distinct rule id in the
// finding sequence, sorted by id for deterministic output.
func (b *Builder) buildRules(findings []schemas.Finding) []*sarif.ReportingDescriptor {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(findings))
	for _, f := range findings {
		if !seen[f.RuleID] {
			seen[f.RuleID] = true
			ids = append(ids, f.RuleID)
		}
	}
	sort.Strings(ids)

	rules := make([]*sarif.ReportingDescriptor, 0, len(ids))
	for _, id := range ids {
		info := lookupRule(id)
		rules = append(rules, &sarif.ReportingDescriptor{
			ID:               id,
			Name:             pString(info.Name),
			ShortDescription: &sarif.MultiformatMessageString{Text: pString(info.Short)},
			Help:             &sarif.MultiformatMessageString{Text: pString(info.Help)},
			DefaultConfiguration: &sarif.ReportingConfiguration{
				Level: severityToLevel(info.DefaultLevel),
			},
		})
	}
	return rules
}

// buildResult converts one canonical finding into a SARIF result.
func (b *Builder) buildResult(f *schemas.Finding, sourceFile string) *sarif.Result {
	physical := &sarif.PhysicalLocation{
		ArtifactLocation: &sarif.ArtifactLocation{URI: pString(sourceFile)},
	}
	if f.Location.Line > 0 {
		physical.Region = &sarif.Region{StartLine: f.Location.Line}
	}

	location := &sarif.Location{PhysicalLocation: physical}
	if f.Location.Key != "" {
		location.Message = &sarif.Message{
			Text: pString(fmt.Sprintf("Variable %s", f.Location.Key)),
		}
	}

	return &sarif.Result{
		RuleID:    f.RuleID,
		Level:     severityToLevel(f.Severity),
		Message:   &sarif.Message{Text: pString(f.Message)},
		Locations: []*sarif.Location{location},
		Fingerprints: map[string]string{
			"primary": resultFingerprint(f.RuleID, sourceFile, f.Location.Line),
		},
	}
}

// resultFingerprint generates the stable per-result matching key used by
// SARIF consumers to track results across runs.
func resultFingerprint(ruleID, uri string, line int) string {
	data := fmt.Sprintf("%s:%s:%d", ruleID, uri, line)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])[:16]
}

// severityToLevel maps canonical severities onto SARIF result levels.
func severityToLevel(s schemas.Severity) sarif.Level {
	switch s {
	case schemas.SeverityError:
		return sarif.LevelError
	case schemas.SeverityWarning:
		return sarif.LevelWarning
	case schemas.SeverityNote:
		return sarif.LevelNote
	default:
		return sarif.LevelWarning
	}
}

// pString returns a pointer to the given string value. Helper for optional
// SARIF fields.
func pString(s string) *string {
	return &s
}
