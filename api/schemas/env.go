package schemas

// EnvEntry is the in-memory representation of one line of an environment
// file: a key/value pair plus the 1-based line number it came from. Entries
// are immutable once parsed.
//
// Key uniqueness is not assumed. Duplicate keys are legal in raw files and
// are preserved in parse order for reporting; consumers that need a single
// value per key apply last-value-wins semantics themselves.
type EnvEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Line  int    `json:"line"`
}
