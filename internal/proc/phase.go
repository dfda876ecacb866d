package proc

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

// FrequencyShift multiplies every FID by exp(2*pi*i*hz*t), shifting the
// spectrum by hz. The time axis is derived from the header dwell time.
func FrequencyShift(img *niftimrs.Image, hz float64) (*niftimrs.Image, error) {
	dwell := img.Header().DwellTime
	if dwell <= 0 {
		return nil, fmt.Errorf("%w: dwell time %g, cannot derive a time axis",
			niftimrs.ErrShapeMismatch, dwell)
	}
	points := img.SpectralLen()
	factors := make([]complex128, points)
	for n := range factors {
		factors[n] = cmplx.Exp(complex(0, 2*math.Pi*hz*float64(n)*dwell))
	}

	data := img.Data()
	forEachFID(img.Shape(), func(base, stride int) {
		for n := 0; n < points; n++ {
			data[base+n*stride] *= factors[n]
		}
	})
	prov := img.Provenance().Extend("fshift", fmt.Sprintf("amount=%gHz", hz))
	return niftimrs.New(data, img.Shape(), img.Tags(), img.Header(), img.Metadata(), prov)
}

// ApplyFixedPhase applies a zero-order phase of p0 degrees and, when p1 is
// non-zero, a first-order term realized as a time shift of p1 seconds with
// linear interpolation between samples (points shifted past either end are
// zero-filled).
func ApplyFixedPhase(img *niftimrs.Image, p0Deg, p1Sec float64) (*niftimrs.Image, error) {
	dwell := img.Header().DwellTime
	if p1Sec != 0 && dwell <= 0 {
		return nil, fmt.Errorf("%w: dwell time %g, cannot apply first-order phase",
			niftimrs.ErrShapeMismatch, dwell)
	}

	phase := cmplx.Exp(complex(0, p0Deg*math.Pi/180))
	points := img.SpectralLen()
	data := img.Data()
	var fid []complex128
	if p1Sec != 0 {
		fid = make([]complex128, points)
	}
	shift := 0.0
	if p1Sec != 0 {
		shift = p1Sec / dwell
	}

	forEachFID(img.Shape(), func(base, stride int) {
		for n := 0; n < points; n++ {
			data[base+n*stride] *= phase
		}
		if p1Sec == 0 {
			return
		}
		for n := 0; n < points; n++ {
			fid[n] = data[base+n*stride]
		}
		for n := 0; n < points; n++ {
			data[base+n*stride] = sampleAt(fid, float64(n)+shift)
		}
	})

	prov := img.Provenance().Extend("apply_fixed_phase", fmt.Sprintf("p0=%gdeg, p1=%gs", p0Deg, p1Sec))
	return niftimrs.New(data, img.Shape(), img.Tags(), img.Header(), img.Metadata(), prov)
}

// sampleAt linearly interpolates a FID at a fractional sample position.
func sampleAt(fid []complex128, pos float64) complex128 {
	if pos < 0 || pos > float64(len(fid)-1) {
		return 0
	}
	lo := int(math.Floor(pos))
	if lo == len(fid)-1 {
		return fid[lo]
	}
	frac := complex(pos-float64(lo), 0)
	return fid[lo]*(1-frac) + fid[lo+1]*frac
}

// forEachFID visits every FID in a row-major array: fn receives the flat
// offset of the FID's first sample and the stride between its samples.
func forEachFID(shape []int, fn func(base, stride int)) {
	outer := shape[0] * shape[1] * shape[2]
	inner := 1
	for _, n := range shape[4:] {
		inner *= n
	}
	points := shape[3]
	for o := 0; o < outer; o++ {
		for j := 0; j < inner; j++ {
			fn(o*points*inner+j, inner)
		}
	}
}
