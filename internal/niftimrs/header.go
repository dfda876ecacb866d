package niftimrs

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatVersion is the container format revision this code reads and writes.
const FormatVersion = "0.7"

// Header carries the scalar acquisition metadata of a dataset. Values that
// vary per higher-dimension index (a per-repetition frequency shift, say)
// belong in the per-index metadata overlay, not here, so operators can stay
// free of shared mutable header state.
type Header struct {
	// SpectrometerFrequency is the transmitter frequency in MHz.
	SpectrometerFrequency float64
	// DwellTime is the spectral sampling interval in seconds.
	DwellTime float64
	// Nucleus is the resonant nucleus label, e.g. "1H" or "31P".
	Nucleus string
	// Version is the container format version the dataset was read with.
	Version string
}

// NormalizeNucleus canonicalizes a nucleus label ("1h" -> "1H").
func NormalizeNucleus(label string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(label))
}

// Bandwidth returns the spectral bandwidth in Hz, or 0 when the dwell time
// is unset.
func (h Header) Bandwidth() float64 {
	if h.DwellTime <= 0 {
		return 0
	}
	return 1 / h.DwellTime
}

// Equivalent reports whether two headers describe combinable acquisitions:
// same nucleus and same spectrometer frequency. Dwell time is compared
// exactly because merging resampled data is never valid.
func (h Header) Equivalent(other Header) bool {
	return NormalizeNucleus(h.Nucleus) == NormalizeNucleus(other.Nucleus) &&
		h.SpectrometerFrequency == other.SpectrometerFrequency &&
		h.DwellTime == other.DwellTime
}
