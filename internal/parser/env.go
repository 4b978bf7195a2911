// File: internal/parser/env.go
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

// Result holds the outcome of parsing one environment file.
type Result struct {
	// Entries preserves every KEY=VALUE line in file order, duplicates
	// included. The slice is never mutated after parsing.
	Entries []schemas.EnvEntry

	// Duplicates lists keys that appeared more than once, in the order the
	// second occurrence was seen.
	Duplicates []string

	// Size is the exact byte length of the parsed content, line endings
	// included.
	Size int
}

// countingReader tracks how many bytes pass through it so Size reflects the
// real content, CRLF endings and missing trailing newlines included.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

// ParseFile reads and parses an environment file from disk.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse parses .env content from a reader. Blank lines and comments are
// skipped; lines without an '=' are ignored as malformed. Values keep their
// exact text apart from surrounding whitespace and one matching pair of
// single or double quotes.
func Parse(r io.Reader) (*Result, error) {
	result := &Result{}
	seen := make(map[string]bool)

	counted := &countingReader{r: r}
	scanner := bufio.NewScanner(counted)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx == -1 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := unquote(strings.TrimSpace(line[idx+1:]))
		if key == "" {
			continue
		}

		if seen[key] {
			result.Duplicates = append(result.Duplicates, key)
		}
		seen[key] = true

		result.Entries = append(result.Entries, schemas.EnvEntry{
			Key:   key,
			Value: value,
			Line:  lineNum,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read env content: %w", err)
	}
	result.Size = counted.n

	return result, nil
}

// Latest returns the last-value-wins view of the entries, keyed by variable
// name. Validation consumers use this; reporting keeps the full sequence.
func (r *Result) Latest() map[string]schemas.EnvEntry {
	latest := make(map[string]schemas.EnvEntry, len(r.Entries))
	for _, e := range r.Entries {
		latest[e.Key] = e
	}
	return latest
}

// unquote strips one matching pair of surrounding quotes, if present.
func unquote(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if first == last && (first == '"' || first == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
