package proc

import (
	"fmt"

	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

// Average collapses the tagged axis by taking the mean across it. The tag
// is removed from the image's tag list and its per-index metadata dropped.
func Average(img *niftimrs.Image, tag niftimrs.Tag) (*niftimrs.Image, error) {
	length, err := img.DimLen(tag)
	if err != nil {
		return nil, err
	}
	weights := make([]complex128, length)
	for i := range weights {
		weights[i] = complex(1/float64(length), 0)
	}
	return collapseAxis(img, tag, weights, "average", fmt.Sprintf("dim=%s, count=%d", tag, length))
}

// CoilCombine reduces the receive-coil axis to a single channel by a
// weighted sum. Weights come from an external collaborator (coil
// sensitivity estimation); nil weights fall back to a uniform combination.
func CoilCombine(img *niftimrs.Image, weights []complex128) (*niftimrs.Image, error) {
	length, err := img.DimLen(niftimrs.TagCoil)
	if err != nil {
		return nil, err
	}
	external := weights != nil
	if !external {
		weights = make([]complex128, length)
		for i := range weights {
			weights[i] = complex(1/float64(length), 0)
		}
	} else if len(weights) != length {
		return nil, fmt.Errorf("%w: %d combination weights for %d coils",
			niftimrs.ErrShapeMismatch, len(weights), length)
	}
	return collapseAxis(img, niftimrs.TagCoil, weights,
		"coilcombine", fmt.Sprintf("coils=%d, weighted=%t", length, external))
}

// Add collapses a length-2 tagged axis into the half-sum of its two
// conditions, the usual reduction for edited acquisitions.
func Add(img *niftimrs.Image, tag niftimrs.Tag) (*niftimrs.Image, error) {
	if err := requirePair(img, tag, "addition"); err != nil {
		return nil, err
	}
	return collapseAxis(img, tag, []complex128{0.5, 0.5}, "add", fmt.Sprintf("dim=%s", tag))
}

// Subtract collapses a length-2 tagged axis into the half-difference of
// its two conditions (index 1 subtracted from index 0).
func Subtract(img *niftimrs.Image, tag niftimrs.Tag) (*niftimrs.Image, error) {
	if err := requirePair(img, tag, "subtraction"); err != nil {
		return nil, err
	}
	return collapseAxis(img, tag, []complex128{0.5, -0.5}, "subtract", fmt.Sprintf("dim=%s", tag))
}

func requirePair(img *niftimrs.Image, tag niftimrs.Tag, op string) error {
	length, err := img.DimLen(tag)
	if err != nil {
		return err
	}
	if length != 2 {
		return fmt.Errorf("%w: %s dimension %s must have length 2, has %d",
			niftimrs.ErrShapeMismatch, op, tag, length)
	}
	return nil
}

// collapseAxis removes the tagged axis by forming a weighted sum across it.
func collapseAxis(img *niftimrs.Image, tag niftimrs.Tag, weights []complex128, method, details string) (*niftimrs.Image, error) {
	axis, err := img.DimPosition(tag)
	if err != nil {
		return nil, err
	}
	shape := img.Shape()
	length := shape[axis]
	outer, inner := 1, 1
	for _, n := range shape[:axis] {
		outer *= n
	}
	for _, n := range shape[axis+1:] {
		inner *= n
	}

	data := img.Data()
	out := make([]complex128, outer*inner)
	for o := 0; o < outer; o++ {
		base := o * length * inner
		for k := 0; k < length; k++ {
			w := weights[k]
			src := base + k*inner
			dstBase := o * inner
			for j := 0; j < inner; j++ {
				out[dstBase+j] += w * data[src+j]
			}
		}
	}

	outShape := append(append([]int(nil), shape[:axis]...), shape[axis+1:]...)
	tags := img.Tags()
	outTags := make([]niftimrs.Tag, 0, len(tags)-1)
	for _, t := range tags {
		if t != tag {
			outTags = append(outTags, t)
		}
	}
	meta := img.Metadata().DropTag(tag)
	prov := img.Provenance().Extend(method, details)
	return niftimrs.New(out, outShape, outTags, img.Header(), meta, prov)
}
