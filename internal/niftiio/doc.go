// Package niftiio reads and writes the on-disk container for NIfTI-MRS
// datasets: a gzip-compressed file holding a JSON metadata block (header,
// dimension tags, per-index metadata, provenance) followed by the raw
// little-endian complex sample payload. Reads and writes are lossless for
// everything the in-memory model carries.
//
// Writes go to a temp file that is renamed into place, and are serialized
// per output directory with a lock file, so concurrent invocations never
// expose a partially written container.
package niftiio
