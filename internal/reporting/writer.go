// File: internal/reporting/writer.go
package reporting

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/envlens-cli/internal/reporting/sarif"
)

// json is configured for standard-library compatibility: map keys are
// sorted and struct fields keep declaration order, which keeps the encoded
// bytes stable across runs.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Write serializes the report as indented JSON to the given writer. The
// byte output is deterministic for a deterministic log value.
func Write(w io.Writer, log *sarif.Log) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode SARIF output: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}
	return nil
}

// WriteCloser writes the report and closes the sink, logging final counts
// the way long outputs are finalized elsewhere in the tool.
func WriteCloser(w io.WriteCloser, log *sarif.Log, logger *zap.Logger) error {
	var results, rules int
	if len(log.Runs) > 0 && log.Runs[0] != nil {
		results = len(log.Runs[0].Results)
		if log.Runs[0].Tool != nil && log.Runs[0].Tool.Driver != nil {
			rules = len(log.Runs[0].Tool.Driver.Rules)
		}
	}
	logger.Info("Finalizing SARIF report",
		zap.Int("total_results", results),
		zap.Int("total_rules", rules),
	)

	writeErr := Write(w, log)
	closeErr := w.Close()

	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close output writer: %w", closeErr)
	}
	return nil
}
