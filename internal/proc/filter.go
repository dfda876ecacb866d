package proc

import (
	"fmt"
	"math"

	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

// Apodize multiplies every FID by an exponential decay exp(-amount*t),
// broadening each line by amount Hz. The time axis is derived from the
// header dwell time.
func Apodize(img *niftimrs.Image, amountHz float64) (*niftimrs.Image, error) {
	dwell := img.Header().DwellTime
	if dwell <= 0 {
		return nil, fmt.Errorf("%w: dwell time %g, cannot derive a time axis",
			niftimrs.ErrShapeMismatch, dwell)
	}
	if amountHz < 0 {
		return nil, fmt.Errorf("%w: negative apodization %gHz would amplify noise",
			niftimrs.ErrInvalidBoundary, amountHz)
	}
	points := img.SpectralLen()
	window := make([]float64, points)
	for n := range window {
		window[n] = math.Exp(-amountHz * float64(n) * dwell)
	}

	data := img.Data()
	forEachFID(img.Shape(), func(base, stride int) {
		for n := 0; n < points; n++ {
			data[base+n*stride] *= complex(window[n], 0)
		}
	})
	prov := img.Provenance().Extend("apodize", fmt.Sprintf("amount=%gHz, filter=exp", amountHz))
	return niftimrs.New(data, img.Shape(), img.Tags(), img.Header(), img.Metadata(), prov)
}

// TruncateOrPad changes the spectral axis length by points samples:
// positive points zero-pad, negative points truncate. position is "first"
// or "last" and names the end of the FID that grows or shrinks.
func TruncateOrPad(img *niftimrs.Image, points int, position string) (*niftimrs.Image, error) {
	if position != "first" && position != "last" {
		return nil, fmt.Errorf("%w: position %q, must be first or last",
			niftimrs.ErrInvalidBoundary, position)
	}
	if points == 0 {
		return nil, fmt.Errorf("%w: zero points changes nothing", niftimrs.ErrInvalidBoundary)
	}
	oldLen := img.SpectralLen()
	newLen := oldLen + points
	if newLen < 1 {
		return nil, fmt.Errorf("%w: removing %d of %d spectral points leaves nothing",
			niftimrs.ErrInvalidBoundary, -points, oldLen)
	}

	shape := img.Shape()
	outShape := append([]int(nil), shape...)
	outShape[3] = newLen
	outer := shape[0] * shape[1] * shape[2]
	inner := 1
	for _, n := range shape[4:] {
		inner *= n
	}

	data := img.Data()
	out := make([]complex128, outer*newLen*inner)
	for o := 0; o < outer; o++ {
		for j := 0; j < inner; j++ {
			oldBase := o*oldLen*inner + j
			newBase := o*newLen*inner + j
			for newN := 0; newN < newLen; newN++ {
				oldN := newN
				if position == "first" {
					oldN = newN - points
				}
				if oldN >= 0 && oldN < oldLen {
					out[newBase+newN*inner] = data[oldBase+oldN*inner]
				}
			}
		}
	}

	prov := img.Provenance().Extend("truncate_or_pad",
		fmt.Sprintf("points=%d, position=%s", points, position))
	return niftimrs.New(out, outShape, img.Tags(), img.Header(), img.Metadata(), prov)
}
