// File: cmd/audit.go
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
	"github.com/xkilldash9x/envlens-cli/internal/audit"
	"github.com/xkilldash9x/envlens-cli/internal/observability"
	"github.com/xkilldash9x/envlens-cli/internal/parser"
	"github.com/xkilldash9x/envlens-cli/internal/policy"
	"github.com/xkilldash9x/envlens-cli/internal/reporting"
	"github.com/xkilldash9x/envlens-cli/internal/reporting/sarif"
	"github.com/xkilldash9x/envlens-cli/internal/secrets"
	"github.com/xkilldash9x/envlens-cli/internal/store"
)

// newAuditCmd creates and configures the `audit` command.
func newAuditCmd() *cobra.Command {
	var (
		policyPath    string
		outputPath    string
		withTimestamp bool
		persist       bool
	)

	auditCmd := &cobra.Command{
		Use:   "audit <env-file>",
		Short: "Audit an environment file and emit a SARIF compliance report.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			envPath := args[0]

			// CLI flags override the config file when explicitly set.
			auditCfg := cfg.Audit
			if cmd.Flags().Changed("sanitize") {
				auditCfg.Sanitize, _ = cmd.Flags().GetBool("sanitize")
			}
			if cmd.Flags().Changed("detect-secrets") {
				auditCfg.DetectSecrets, _ = cmd.Flags().GetBool("detect-secrets")
			}
			if cmd.Flags().Changed("metrics") {
				auditCfg.IncludeMetrics, _ = cmd.Flags().GetBool("metrics")
			}

			parsed, err := parser.ParseFile(envPath)
			if err != nil {
				return err
			}
			logger.Debug("Parsed environment file",
				zap.String("path", envPath),
				zap.Int("entries", len(parsed.Entries)),
				zap.Int("duplicates", len(parsed.Duplicates)),
			)

			var rule *schemas.PolicyRule
			if policyPath != "" {
				rule, err = policy.Load(policyPath)
				if err != nil {
					return err
				}
			}

			runner := audit.NewRunner(auditCfg, nil, secrets.NewScanner(), logger)
			out, err := runner.Run(cmd.Context(), audit.Input{
				Entries:  parsed.Entries,
				FileSize: parsed.Size,
				Policy:   rule,
			})
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			opts := []reporting.Option{reporting.WithRunID(runID)}
			if withTimestamp {
				opts = append(opts, reporting.WithTimestamp(time.Now().UTC()))
			}

			runProps := map[string]interface{}{
				"file_size_bytes": parsed.Size,
				"env_var_count":   len(parsed.Entries),
			}
			var metricsOut *schemas.Metrics
			if auditCfg.IncludeMetrics {
				metricsOut = &out.Metrics
			}

			log := reporting.NewBuilder(Version, opts...).Build(out.Findings, envPath, metricsOut, runProps)
			if err := writeReport(outputPath, log); err != nil {
				return err
			}

			if persist && cfg.Database.URL != "" {
				if err := persistRun(cmd, runID, envPath, out.Findings); err != nil {
					// History is best effort; the report already exists.
					logger.Warn("Failed to persist audit history", zap.Error(err))
				}
			}

			if len(out.Findings) > 0 {
				return errFindingsPresent
			}
			return nil
		},
	}

	auditCmd.Flags().StringVar(&policyPath, "policy", "", "path to policy YAML file")
	auditCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output SARIF report file (default: stdout)")
	auditCmd.Flags().Bool("sanitize", true, "sanitize sensitive values in output")
	auditCmd.Flags().Bool("detect-secrets", true, "run the secret scanner")
	auditCmd.Flags().Bool("metrics", false, "include metrics in the report")
	auditCmd.Flags().BoolVar(&withTimestamp, "timestamp", false, "stamp the report with the run time (non-deterministic)")
	auditCmd.Flags().BoolVar(&persist, "persist", false, "record findings in the configured history database")

	return auditCmd
}

// writeReport sends the report to the chosen sink: a file path or stdout.
func writeReport(path string, log *sarif.Log) error {
	if path == "" {
		return reporting.Write(os.Stdout, log)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := reporting.WriteCloser(f, log, observability.GetLogger()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
	return nil
}

// persistRun connects to the configured history database and records the
// run's sanitized findings.
func persistRun(cmd *cobra.Command, runID, sourceFile string, findings []schemas.Finding) error {
	ctx := cmd.Context()
	logger := observability.GetLogger()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	st, err := store.New(ctx, pool, logger)
	if err != nil {
		return err
	}
	return st.PersistRun(ctx, runID, sourceFile, findings)
}

func init() {
	rootCmd.AddCommand(newAuditCmd())
}
