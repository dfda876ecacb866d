package proc

import (
	"math/cmplx"

	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

// Conjugate applies complex conjugation to every sample, correcting data
// acquired under the opposite phase/frequency sign convention. Shape, tags,
// and metadata are unchanged; applying it twice restores the input exactly.
func Conjugate(img *niftimrs.Image) (*niftimrs.Image, error) {
	data := img.Data()
	for i, v := range data {
		data[i] = cmplx.Conj(v)
	}
	prov := img.Provenance().Extend("conjugate", "")
	return niftimrs.New(data, img.Shape(), img.Tags(), img.Header(), img.Metadata(), prov)
}
