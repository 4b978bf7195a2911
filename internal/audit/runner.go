// File: internal/audit/runner.go

// Package audit orchestrates one compliance run: it fans the diagnostic
// producers out concurrently, waits for all of them, then drives the
// aggregate -> sanitize -> metrics pipeline. One invocation is stateless
// and produces exactly one complete result; nothing is emitted
// progressively.
package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
	"github.com/xkilldash9x/envlens-cli/internal/adapters"
	"github.com/xkilldash9x/envlens-cli/internal/aggregate"
	"github.com/xkilldash9x/envlens-cli/internal/config"
	"github.com/xkilldash9x/envlens-cli/internal/metrics"
	"github.com/xkilldash9x/envlens-cli/internal/policy"
	"github.com/xkilldash9x/envlens-cli/internal/sanitize"
)

// SchemaValidator is the contract of the external schema collaborator. The
// engine consumes its error records; it never constructs or executes the
// schema itself.
type SchemaValidator interface {
	Validate(ctx context.Context, entries []schemas.EnvEntry) ([]schemas.SchemaError, error)
}

// SecretScanner is the contract of the external secret-detection
// collaborator.
type SecretScanner interface {
	Scan(entries []schemas.EnvEntry) []schemas.SecretHit
}

// Runner executes audit runs with a fixed set of collaborators. A nil
// validator or scanner simply disables that diagnostic source.
type Runner struct {
	cfg       config.AuditConfig
	logger    *zap.Logger
	validator SchemaValidator
	scanner   SecretScanner
}

// NewRunner creates a runner.
func NewRunner(cfg config.AuditConfig, validator SchemaValidator, scanner SecretScanner, logger *zap.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		logger:    logger.Named("audit_runner"),
		validator: validator,
		scanner:   scanner,
	}
}

// Input is the closed set a run operates on: one file, one policy.
type Input struct {
	Entries  []schemas.EnvEntry
	FileSize int
	Policy   *schemas.PolicyRule
}

// Output is the complete result of one run.
type Output struct {
	// Findings is the aggregated, sanitized, deterministically ordered
	// sequence. Empty (but non-nil) for a clean file.
	Findings []schemas.Finding

	Metrics schemas.Metrics

	// ChecksAttempted is the denominator that went into the compliance
	// score.
	ChecksAttempted int
}

// Run executes one audit. User-facing problems surface as findings inside
// the output; only internal invariant breaches are returned as errors.
func (r *Runner) Run(ctx context.Context, in Input) (*Output, error) {
	// The producers are pure over the immutable entry slice, so they can
	// run concurrently. Aggregation needs the complete candidate set and
	// waits for every producer before merging.
	var schemaFindings, secretFindings, policyFindings []schemas.Finding

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		schemaFindings = r.runSchema(gctx, in.Entries)
		return nil
	})
	g.Go(func() error {
		secretFindings = r.runSecrets(in.Entries)
		return nil
	})
	g.Go(func() error {
		policyFindings = r.runPolicy(in.Entries, in.Policy)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged, err := aggregate.Merge(schemaFindings, secretFindings, policyFindings)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate findings: %w", err)
	}

	if r.cfg.Sanitize {
		s := sanitize.New(in.Entries, sanitize.SecretKeys(merged), r.cfg.SensitiveNames, r.cfg.RedactionMask)
		merged = s.Apply(merged)
	}

	checks := r.countChecks(in)
	out := &Output{
		Findings:        merged,
		Metrics:         metrics.Collect(merged, checks, r.cfg.SeverityWeights),
		ChecksAttempted: checks,
	}

	r.logger.Info("Audit run complete",
		zap.Int("findings", len(out.Findings)),
		zap.Int("checks", checks),
		zap.Float64("compliance_score", out.Metrics.ComplianceScore),
	)
	return out, nil
}

// runSchema invokes the schema validator and adapts its records. A failing
// validator is downgraded to a warning finding; one broken collaborator
// must not abort the report.
func (r *Runner) runSchema(ctx context.Context, entries []schemas.EnvEntry) []schemas.Finding {
	if r.validator == nil {
		return nil
	}
	errs, err := r.validator.Validate(ctx, entries)
	if err != nil {
		r.logger.Warn("Schema validator failed", zap.Error(err))
		return []schemas.Finding{{
			RuleID:   adapters.RuleMalformedInput,
			Severity: schemas.SeverityWarning,
			Message:  fmt.Sprintf("Schema validation encountered an error: %v", err),
			Source:   schemas.SourceSchema,
		}}
	}
	return adapters.AdaptSchema(errs)
}

func (r *Runner) runSecrets(entries []schemas.EnvEntry) []schemas.Finding {
	if r.scanner == nil || !r.cfg.DetectSecrets {
		return nil
	}
	return adapters.AdaptSecrets(r.scanner.Scan(entries), entries)
}

func (r *Runner) runPolicy(entries []schemas.EnvEntry, rule *schemas.PolicyRule) []schemas.Finding {
	if rule == nil {
		return nil
	}
	return adapters.AdaptPolicy(policy.Evaluate(entries, rule))
}

// countChecks derives the compliance-score denominator from the work each
// active source performs: one check per unique variable for the schema
// validator, one per raw entry for the secret scanner, and one per list
// rule plus one per pattern/variable pair for the policy.
func (r *Runner) countChecks(in Input) int {
	unique := make(map[string]bool, len(in.Entries))
	for _, e := range in.Entries {
		unique[e.Key] = true
	}

	checks := 0
	if r.validator != nil {
		checks += len(unique)
	}
	if r.scanner != nil && r.cfg.DetectSecrets {
		checks += len(in.Entries)
	}
	if in.Policy != nil {
		checks += len(in.Policy.Required) + len(in.Policy.Forbidden)
		checks += len(in.Policy.Patterns) * len(unique)
	}
	return checks
}
