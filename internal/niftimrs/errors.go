package niftimrs

import "errors"

// Sentinel errors shared by the data model and the transformation operators.
// Callers classify failures with errors.Is; messages carry the offending
// file, tag, or index.
var (
	// ErrShapeMismatch indicates inputs disagree on a non-concatenated axis
	// or on header fields that must match before data can be combined.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInsufficientInput indicates an operation received fewer inputs than
	// it requires.
	ErrInsufficientInput = errors.New("insufficient input")

	// ErrUnknownTag indicates an operation referenced a dimension tag the
	// image does not carry.
	ErrUnknownTag = errors.New("unknown dimension tag")

	// ErrTagCardinality indicates more than three higher-dimension tags were
	// requested, a tag was repeated, or a reorder omitted an existing tag.
	ErrTagCardinality = errors.New("invalid tag cardinality")

	// ErrInvalidBoundary indicates a split boundary outside the axis or one
	// that would leave a partition empty.
	ErrInvalidBoundary = errors.New("invalid split boundary")

	// ErrMetadataConsistency indicates per-index metadata referencing a
	// tag or index the image does not have.
	ErrMetadataConsistency = errors.New("inconsistent per-index metadata")
)
