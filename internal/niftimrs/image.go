package niftimrs

import (
	"fmt"
)

// fixedAxes is the spatial+spectral prefix every image carries: three
// spatial axes (singleton for non-imaging acquisitions) and the
// spectral/time axis.
const fixedAxes = 4

// Image is an immutable NIfTI-MRS dataset: row-major complex samples over a
// shape of fixedAxes+len(tags) axes, plus header, per-index metadata, and
// provenance. Construct with New; transformation operators return fresh
// instances and never mutate their inputs.
type Image struct {
	data  []complex128
	shape []int
	tags  []Tag
	hdr   Header
	meta  Metadata
	prov  Log
}

// New validates and builds an image. data is row-major (first axis slowest)
// and must match the product of shape; shape must have one axis per tag
// beyond the spatial+spectral prefix. meta and prov may be nil; both are
// copied, never aliased.
func New(data []complex128, shape []int, tags []Tag, hdr Header, meta Metadata, prov Log) (*Image, error) {
	if len(shape) < fixedAxes {
		return nil, fmt.Errorf("%w: shape %v lacks the spatial+spectral prefix", ErrShapeMismatch, shape)
	}
	if len(tags) > MaxDims {
		return nil, fmt.Errorf("%w: %d tags, at most %d supported", ErrTagCardinality, len(tags), MaxDims)
	}
	if got, want := len(shape), fixedAxes+len(tags); got != want {
		return nil, fmt.Errorf("%w: shape %v has %d axes but %d tags require %d", ErrShapeMismatch, shape, got, len(tags), want)
	}
	seen := make(map[Tag]struct{}, len(tags))
	for _, tag := range tags {
		if tag.IsZero() {
			return nil, fmt.Errorf("%w: zero-valued tag", ErrUnknownTag)
		}
		if _, dup := seen[tag]; dup {
			return nil, fmt.Errorf("%w: duplicate tag %s", ErrTagCardinality, tag)
		}
		seen[tag] = struct{}{}
	}
	total := 1
	for i, n := range shape {
		if n < 1 {
			return nil, fmt.Errorf("%w: axis %d has non-positive length %d", ErrShapeMismatch, i, n)
		}
		total *= n
	}
	if len(data) != total {
		return nil, fmt.Errorf("%w: %d samples for shape %v (want %d)", ErrShapeMismatch, len(data), shape, total)
	}
	if err := meta.Validate(tags, shape[fixedAxes:]); err != nil {
		return nil, err
	}
	hdr.Nucleus = NormalizeNucleus(hdr.Nucleus)
	img := &Image{
		data:  append([]complex128(nil), data...),
		shape: append([]int(nil), shape...),
		tags:  append([]Tag(nil), tags...),
		hdr:   hdr,
		meta:  meta.Clone(),
		prov:  prov.Clone(),
	}
	return img, nil
}

// NDim returns the number of axes, fixed prefix included.
func (img *Image) NDim() int { return len(img.shape) }

// Shape returns a copy of the axis lengths.
func (img *Image) Shape() []int { return append([]int(nil), img.shape...) }

// SpectralLen returns the length of the spectral/time axis.
func (img *Image) SpectralLen() int { return img.shape[3] }

// Tags returns a copy of the ordered higher-dimension tags.
func (img *Image) Tags() []Tag { return append([]Tag(nil), img.tags...) }

// HasTag reports whether the image carries the tag.
func (img *Image) HasTag(tag Tag) bool {
	for _, t := range img.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DimPosition resolves a tag to its axis index.
func (img *Image) DimPosition(tag Tag) (int, error) {
	for i, t := range img.tags {
		if t == tag {
			return fixedAxes + i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s not present (have %v)", ErrUnknownTag, tag, TagLabels(img.tags))
}

// DimLen returns the length of the axis identified by tag.
func (img *Image) DimLen(tag Tag) (int, error) {
	axis, err := img.DimPosition(tag)
	if err != nil {
		return 0, err
	}
	return img.shape[axis], nil
}

// Data returns a copy of the row-major sample array.
func (img *Image) Data() []complex128 { return append([]complex128(nil), img.data...) }

// At returns the sample at a full multi-index.
func (img *Image) At(idx ...int) complex128 {
	return img.data[Offset(Strides(img.shape), idx)]
}

// Header returns the acquisition header.
func (img *Image) Header() Header { return img.hdr }

// Metadata returns a copy of the per-index overlay.
func (img *Image) Metadata() Metadata { return img.meta.Clone() }

// Meta looks up a single per-index value.
func (img *Image) Meta(tag Tag, index int) (any, bool) {
	v, ok := img.meta[MetaKey{Tag: tag, Index: index}]
	return v, ok
}

// Provenance returns a copy of the provenance log.
func (img *Image) Provenance() Log { return img.prov.Clone() }

// Strides computes row-major strides (last axis fastest) for a shape.
func Strides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// Offset maps a multi-index to a flat offset given precomputed strides.
func Offset(strides, idx []int) int {
	off := 0
	for i, v := range idx {
		off += v * strides[i]
	}
	return off
}
