package proc

import (
	"fmt"
	"sort"

	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

// Split cuts an image in two at an index along the tagged axis. The first
// result holds indices 0..index inclusive, the second index+1..end. Both
// halves keep the tag even when their axis length drops to 1, so a split
// can always be undone by a merge.
func Split(img *niftimrs.Image, tag niftimrs.Tag, index int) (*niftimrs.Image, *niftimrs.Image, error) {
	length, err := img.DimLen(tag)
	if err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= length-1 {
		return nil, nil, fmt.Errorf("%w: cut index %d outside 0..%d on %s (length %d)",
			niftimrs.ErrInvalidBoundary, index, length-2, tag, length)
	}
	first := indexRange(0, index+1)
	second := indexRange(index+1, length)
	detail := fmt.Sprintf("dim=%s, index=%d", tag, index)
	return partition(img, tag, first, second, detail)
}

// SplitIndices extracts an explicit set of indices along the tagged axis.
// The second result holds exactly the given indices in ascending order; the
// first holds the complement. The set must be non-empty, in range, and must
// not cover the whole axis.
func SplitIndices(img *niftimrs.Image, tag niftimrs.Tag, indices []int) (*niftimrs.Image, *niftimrs.Image, error) {
	length, err := img.DimLen(tag)
	if err != nil {
		return nil, nil, err
	}
	if len(indices) == 0 {
		return nil, nil, fmt.Errorf("%w: empty index set for %s", niftimrs.ErrInvalidBoundary, tag)
	}
	picked := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= length {
			return nil, nil, fmt.Errorf("%w: index %d outside 0..%d on %s",
				niftimrs.ErrInvalidBoundary, idx, length-1, tag)
		}
		picked[idx] = struct{}{}
	}
	if len(picked) == length {
		return nil, nil, fmt.Errorf("%w: index set covers the whole %s axis, first half would be empty",
			niftimrs.ErrInvalidBoundary, tag)
	}

	second := make([]int, 0, len(picked))
	for idx := range picked {
		second = append(second, idx)
	}
	sort.Ints(second)
	first := make([]int, 0, length-len(picked))
	for idx := 0; idx < length; idx++ {
		if _, ok := picked[idx]; !ok {
			first = append(first, idx)
		}
	}
	detail := fmt.Sprintf("dim=%s, indices=%v", tag, second)
	return partition(img, tag, first, second, detail)
}

func indexRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

// partition builds the two split outputs. first and second must be sorted,
// disjoint, non-empty, and together cover the axis. Each output gets its
// metadata re-indexed to its own local index space and a distinct
// provenance branch extending the input's log.
func partition(img *niftimrs.Image, tag niftimrs.Tag, first, second []int, detail string) (*niftimrs.Image, *niftimrs.Image, error) {
	a, err := take(img, tag, first, detail+", half=first")
	if err != nil {
		return nil, nil, err
	}
	b, err := take(img, tag, second, detail+", half=second")
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func take(img *niftimrs.Image, tag niftimrs.Tag, indices []int, detail string) (*niftimrs.Image, error) {
	axis, err := img.DimPosition(tag)
	if err != nil {
		return nil, err
	}
	shape := img.Shape()
	outer, inner := 1, 1
	for _, n := range shape[:axis] {
		outer *= n
	}
	for _, n := range shape[axis+1:] {
		inner *= n
	}

	data := img.Data()
	length := shape[axis]
	out := make([]complex128, outer*len(indices)*inner)
	dst := 0
	for o := 0; o < outer; o++ {
		base := o * length * inner
		for _, idx := range indices {
			copy(out[dst:dst+inner], data[base+idx*inner:base+(idx+1)*inner])
			dst += inner
		}
	}

	outShape := append([]int(nil), shape...)
	outShape[axis] = len(indices)
	meta := img.Metadata().SelectTag(tag, indices)
	prov := img.Provenance().Extend("split", detail)
	return niftimrs.New(out, outShape, img.Tags(), img.Header(), meta, prov)
}
