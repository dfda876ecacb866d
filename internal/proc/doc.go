// Package proc implements the structural transformations over NIfTI-MRS
// images: merge, split, reorder, conjugate, and the axis-collapsing
// combinations (average, coil combine, add, subtract), plus the time-domain
// phase corrections. Every operator is pure: inputs are never mutated, each
// call returns a freshly constructed image with re-keyed per-index metadata
// and an extended provenance log. Independent pipelines are therefore safe
// to run concurrently over disjoint inputs.
//
// Failures use the sentinel errors from internal/niftimrs and always name
// the offending tag, axis, or index.
package proc
