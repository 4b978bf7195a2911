// File: internal/aggregate/aggregate.go

// Package aggregate merges the finding sequences produced by the diagnostic
// adapters into one deduplicated, deterministically ordered sequence. The
// ordering is a correctness property: identical inputs must yield
// byte-identical reports, so no container iteration order is ever allowed
// to leak into the output.
package aggregate

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

// ErrInternal marks a broken aggregation invariant. It indicates a bug in
// the engine itself, never a data problem, and is kept distinct from
// user-facing findings.
var ErrInternal = errors.New("aggregation invariant violated")

// Fingerprint derives the deterministic dedup key of a finding from its
// rule id, location and source. The message is deliberately excluded so two
// adapters describing the same violation differently still collide.
func Fingerprint(f schemas.Finding) string {
	h := sha256.New()
	h.Write([]byte(f.RuleID))
	h.Write([]byte{0})
	h.Write([]byte(f.Location.Key))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(f.Location.Line)))
	h.Write([]byte{0})
	h.Write([]byte(f.Source))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Merge flattens the per-adapter sequences, assigns fingerprints,
// deduplicates and sorts. For findings sharing a fingerprint exactly one
// survives: the highest severity, with the fixed provenance order
// schema > secret_scanner > policy breaking severity ties. Empty input is a
// valid, successful result and yields an empty (non-nil) sequence.
func Merge(sequences ...[]schemas.Finding) ([]schemas.Finding, error) {
	var working []schemas.Finding
	for _, seq := range sequences {
		working = append(working, seq...)
	}

	byPrint := make(map[string]schemas.Finding, len(working))
	for _, f := range working {
		f.Fingerprint = Fingerprint(f)

		kept, seen := byPrint[f.Fingerprint]
		if !seen {
			byPrint[f.Fingerprint] = f
			continue
		}

		// Equal fingerprints must mean equal identity fields; anything else
		// is a hash collision and a fatal engine bug.
		if kept.RuleID != f.RuleID || kept.Location != f.Location || kept.Source != f.Source {
			return nil, fmt.Errorf("%w: fingerprint %s maps to distinct findings (%s vs %s)",
				ErrInternal, f.Fingerprint, kept.RuleID, f.RuleID)
		}

		if prefer(f, kept) {
			byPrint[f.Fingerprint] = f
		}
	}

	deduped := make([]schemas.Finding, 0, len(byPrint))
	for _, f := range byPrint {
		deduped = append(deduped, f)
	}
	sort.Slice(deduped, func(i, j int) bool {
		return less(deduped[i], deduped[j])
	})

	return deduped, nil
}

// prefer reports whether candidate should replace kept within a dedup group.
func prefer(candidate, kept schemas.Finding) bool {
	if candidate.Severity.Rank() != kept.Severity.Rank() {
		return candidate.Severity.Rank() < kept.Severity.Rank()
	}
	return candidate.Source.Rank() < kept.Source.Rank()
}

// less implements the fixed total order: severity (errors first), then line
// ascending with missing lines last, then rule id, then location key.
func less(a, b schemas.Finding) bool {
	if a.Severity.Rank() != b.Severity.Rank() {
		return a.Severity.Rank() < b.Severity.Rank()
	}
	if a.Location.Line != b.Location.Line {
		// Zero means "line unknown" and sorts after every real line.
		if a.Location.Line == 0 {
			return false
		}
		if b.Location.Line == 0 {
			return true
		}
		return a.Location.Line < b.Location.Line
	}
	if a.RuleID != b.RuleID {
		return a.RuleID < b.RuleID
	}
	return a.Location.Key < b.Location.Key
}
