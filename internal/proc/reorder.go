package proc

import (
	"fmt"
	"strings"

	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

// Reorder permutes the higher axes so the image's tag sequence equals
// order. A recognized tag absent from the image materializes a new
// singleton axis at its requested position; every tag the image already
// carries must appear somewhere in order. Sample values are untouched, only
// axis order changes.
func Reorder(img *niftimrs.Image, order []niftimrs.Tag) (*niftimrs.Image, error) {
	if len(order) == 0 || len(order) > niftimrs.MaxDims {
		return nil, fmt.Errorf("%w: order must name between 1 and %d tags, got %d",
			niftimrs.ErrTagCardinality, niftimrs.MaxDims, len(order))
	}
	seen := make(map[niftimrs.Tag]struct{}, len(order))
	for _, tag := range order {
		if tag.IsZero() {
			return nil, fmt.Errorf("%w: zero-valued tag in order", niftimrs.ErrUnknownTag)
		}
		if _, dup := seen[tag]; dup {
			return nil, fmt.Errorf("%w: duplicate tag %s in order", niftimrs.ErrTagCardinality, tag)
		}
		seen[tag] = struct{}{}
	}
	for _, tag := range img.Tags() {
		if _, ok := seen[tag]; !ok {
			return nil, fmt.Errorf("%w: order omits existing tag %s", niftimrs.ErrTagCardinality, tag)
		}
	}

	shape := img.Shape()
	fixed := len(shape) - len(img.Tags())

	// srcAxis[i] is the input axis feeding output axis i, or -1 for a newly
	// materialized singleton.
	srcAxis := make([]int, 0, fixed+len(order))
	outShape := make([]int, 0, fixed+len(order))
	for ax := 0; ax < fixed; ax++ {
		srcAxis = append(srcAxis, ax)
		outShape = append(outShape, shape[ax])
	}
	for _, tag := range order {
		if axis, err := img.DimPosition(tag); err == nil {
			srcAxis = append(srcAxis, axis)
			outShape = append(outShape, shape[axis])
		} else {
			srcAxis = append(srcAxis, -1)
			outShape = append(outShape, 1)
		}
	}

	data := img.Data()
	out := make([]complex128, len(data))
	inStrides := niftimrs.Strides(shape)
	idx := make([]int, len(outShape))
	for flat := range out {
		src := 0
		for i, ax := range srcAxis {
			if ax >= 0 {
				src += idx[i] * inStrides[ax]
			}
		}
		out[flat] = data[src]
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < outShape[i] {
				break
			}
			idx[i] = 0
		}
	}

	// Metadata keys are tag-addressed, so axis permutation leaves them
	// untouched; new singleton tags simply have no entries yet.
	prov := img.Provenance().Extend("reorder",
		fmt.Sprintf("dim_order=%s", strings.Join(niftimrs.TagLabels(order), ",")))
	return niftimrs.New(out, outShape, order, img.Header(), img.Metadata(), prov)
}
