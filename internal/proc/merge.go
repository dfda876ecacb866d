package proc

import (
	"fmt"
	"slices"

	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

// Merge concatenates two or more images along the axis identified by tag,
// in input order. When no input carries the tag a new trailing singleton
// axis is materialized on each, so every input contributes length 1.
// Per-index metadata along the merge tag is re-keyed by the cumulative
// length of the preceding inputs; provenance logs are concatenated in input
// order before the merge record is appended.
func Merge(images []*niftimrs.Image, tag niftimrs.Tag) (*niftimrs.Image, error) {
	if len(images) < 2 {
		return nil, fmt.Errorf("%w: merge needs at least 2 images, got %d", niftimrs.ErrInsufficientInput, len(images))
	}

	first := images[0]
	tags := first.Tags()
	for i, img := range images[1:] {
		if !slices.Equal(img.Tags(), tags) {
			return nil, fmt.Errorf("%w: input %d carries tags %v, input 0 carries %v",
				niftimrs.ErrUnknownTag, i+1, niftimrs.TagLabels(img.Tags()), niftimrs.TagLabels(tags))
		}
		if !img.Header().Equivalent(first.Header()) {
			return nil, fmt.Errorf("%w: input %d header (nucleus, frequency, or dwell time) differs from input 0",
				niftimrs.ErrShapeMismatch, i+1)
		}
	}

	// Absent tag: append it as a new trailing axis on every input.
	newAxis := !first.HasTag(tag)
	if newAxis {
		if len(tags)+1 > niftimrs.MaxDims {
			return nil, fmt.Errorf("%w: cannot add %s, image already carries %d tags",
				niftimrs.ErrTagCardinality, tag, len(tags))
		}
		tags = append(tags, tag)
	}

	shapes := make([][]int, len(images))
	for i, img := range images {
		shapes[i] = img.Shape()
		if newAxis {
			shapes[i] = append(shapes[i], 1)
		}
	}
	axis := len(shapes[0]) - 1
	if !newAxis {
		var err error
		axis, err = first.DimPosition(tag)
		if err != nil {
			return nil, err
		}
	}

	total := 0
	for i, shape := range shapes {
		for ax := range shape {
			if ax != axis && shape[ax] != shapes[0][ax] {
				return nil, fmt.Errorf("%w: input %d has length %d on axis %d, input 0 has %d",
					niftimrs.ErrShapeMismatch, i, shape[ax], ax, shapes[0][ax])
			}
		}
		total += shape[axis]
	}

	outShape := append([]int(nil), shapes[0]...)
	outShape[axis] = total
	outer, inner := 1, 1
	for _, n := range outShape[:axis] {
		outer *= n
	}
	for _, n := range outShape[axis+1:] {
		inner *= n
	}

	out := make([]complex128, outer*total*inner)
	datas := make([][]complex128, len(images))
	for i, img := range images {
		datas[i] = img.Data()
	}
	dst := 0
	for o := 0; o < outer; o++ {
		for i, data := range datas {
			block := shapes[i][axis] * inner
			copy(out[dst:dst+block], data[o*block:(o+1)*block])
			dst += block
		}
	}

	meta := make(niftimrs.Metadata)
	offset := 0
	for _, img := range images {
		for k, v := range img.Metadata() {
			if k.Tag == tag {
				k.Index += offset
				meta[k] = v
			} else if _, ok := meta[k]; !ok {
				meta[k] = v
			}
		}
		if newAxis {
			offset++
		} else {
			n, _ := img.DimLen(tag)
			offset += n
		}
	}

	logs := make([]niftimrs.Log, len(images))
	for i, img := range images {
		logs[i] = img.Provenance()
	}
	prov := niftimrs.Concat(logs...).Extend("merge",
		fmt.Sprintf("dim=%s, inputs=%d, length=%d", tag, len(images), total))

	return niftimrs.New(out, outShape, tags, first.Header(), meta, prov)
}
