package schemas

// -- Diagnostic collaborator contracts --
//
// These are the raw result shapes the audit core consumes from its external
// collaborators. The core does not run schema validation or secret detection
// itself; it only translates these records into canonical findings.

// SchemaError is one field-level failure reported by a schema validator.
// The validator supplies them in its own order; the aggregator imposes the
// final ordering.
type SchemaError struct {
	// FieldName is the environment variable the error refers to. A missing
	// required field reports the declared field name even though no entry
	// exists for it.
	FieldName string `json:"field_name"`

	// ErrMessage is the validator's description of the failure.
	ErrMessage string `json:"error_message"`

	// Line is the 1-based line of the offending entry, or 0 when the field
	// is absent from the file.
	Line int `json:"line,omitempty"`

	// Missing marks errors about required fields that are not present at
	// all, as opposed to present-but-invalid values.
	Missing bool `json:"missing,omitempty"`
}

// SecretHit is one detection reported by a secret scanner over the raw file
// content.
type SecretHit struct {
	// Key is the environment variable whose value triggered the detector.
	// May be empty if the scanner could not attribute the hit to a variable.
	Key string `json:"key"`

	// Detector names the heuristic or pattern that fired, e.g. "GitHub Token".
	Detector string `json:"detector"`

	// Line is the 1-based line of the hit. Zero means the scanner lost the
	// location; the adapter downgrades such records.
	Line int `json:"line"`
}
