// Package niftimrs models a NIfTI-MRS dataset in memory: a complex-valued
// tensor whose first three axes are spatial, whose fourth axis is the
// spectral/time axis, and whose remaining axes (up to three) carry semantic
// dimension tags such as DIM_COIL or DIM_DYN.
//
// An Image bundles the sample array with its acquisition header, a sparse
// per-index metadata overlay, and an append-only provenance log. Images are
// immutable once constructed; the transformation operators in internal/proc
// always build fresh instances and never alias metadata or provenance
// between inputs and outputs.
//
// Dimension tags form a closed vocabulary. ParseTag is the only way to turn
// user input into a Tag, so unrecognized labels are rejected at the boundary
// rather than deep inside axis arithmetic.
package niftimrs
