package niftimrs_test

import (
	"errors"
	"testing"

	"github.com/bloyl/fsl-mrs/internal/niftimrs"
)

func testHeader() niftimrs.Header {
	return niftimrs.Header{
		SpectrometerFrequency: 123.2,
		DwellTime:             1.0 / 4000,
		Nucleus:               "1h",
		Version:               niftimrs.FormatVersion,
	}
}

func constImage(t *testing.T, shape []int, tags []niftimrs.Tag) *niftimrs.Image {
	t.Helper()
	total := 1
	for _, n := range shape {
		total *= n
	}
	data := make([]complex128, total)
	for i := range data {
		data[i] = complex(float64(i), -float64(i))
	}
	img, err := niftimrs.New(data, shape, tags, testHeader(), nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return img
}

func TestNewValidatesShapeAgainstTags(t *testing.T) {
	data := make([]complex128, 2*4)
	_, err := niftimrs.New(data, []int{1, 1, 1, 4, 2}, nil, testHeader(), nil, nil)
	if !errors.Is(err, niftimrs.ErrShapeMismatch) {
		t.Fatalf("untagged fifth axis error = %v, want ErrShapeMismatch", err)
	}

	_, err = niftimrs.New(data, []int{1, 1, 1, 8}, []niftimrs.Tag{niftimrs.TagDyn}, testHeader(), nil, nil)
	if !errors.Is(err, niftimrs.ErrShapeMismatch) {
		t.Fatalf("tag without axis error = %v, want ErrShapeMismatch", err)
	}
}

func TestNewValidatesDataLength(t *testing.T) {
	_, err := niftimrs.New(make([]complex128, 7), []int{1, 1, 1, 4, 2}, []niftimrs.Tag{niftimrs.TagDyn}, testHeader(), nil, nil)
	if !errors.Is(err, niftimrs.ErrShapeMismatch) {
		t.Fatalf("short data error = %v, want ErrShapeMismatch", err)
	}
}

func TestNewRejectsDuplicateTags(t *testing.T) {
	tags := []niftimrs.Tag{niftimrs.TagDyn, niftimrs.TagDyn}
	_, err := niftimrs.New(make([]complex128, 16), []int{1, 1, 1, 4, 2, 2}, tags, testHeader(), nil, nil)
	if !errors.Is(err, niftimrs.ErrTagCardinality) {
		t.Fatalf("duplicate tag error = %v, want ErrTagCardinality", err)
	}
}

func TestNewValidatesMetadata(t *testing.T) {
	meta := niftimrs.Metadata{
		{Tag: niftimrs.TagCoil, Index: 0}: 1.0,
	}
	_, err := niftimrs.New(make([]complex128, 8), []int{1, 1, 1, 4, 2}, []niftimrs.Tag{niftimrs.TagDyn}, testHeader(), meta, nil)
	if !errors.Is(err, niftimrs.ErrMetadataConsistency) {
		t.Fatalf("foreign-tag metadata error = %v, want ErrMetadataConsistency", err)
	}

	meta = niftimrs.Metadata{
		{Tag: niftimrs.TagDyn, Index: 5}: 1.0,
	}
	_, err = niftimrs.New(make([]complex128, 8), []int{1, 1, 1, 4, 2}, []niftimrs.Tag{niftimrs.TagDyn}, testHeader(), meta, nil)
	if !errors.Is(err, niftimrs.ErrMetadataConsistency) {
		t.Fatalf("out-of-range metadata error = %v, want ErrMetadataConsistency", err)
	}
}

func TestNewNormalizesNucleus(t *testing.T) {
	img := constImage(t, []int{1, 1, 1, 4}, nil)
	if got := img.Header().Nucleus; got != "1H" {
		t.Fatalf("nucleus = %q, want 1H", got)
	}
}

func TestDimPosition(t *testing.T) {
	img := constImage(t, []int{1, 1, 1, 4, 2, 3}, []niftimrs.Tag{niftimrs.TagCoil, niftimrs.TagDyn})
	axis, err := img.DimPosition(niftimrs.TagDyn)
	if err != nil {
		t.Fatalf("DimPosition: %v", err)
	}
	if axis != 5 {
		t.Fatalf("DimPosition(DIM_DYN) = %d, want 5", axis)
	}
	if _, err := img.DimPosition(niftimrs.TagEdit); !errors.Is(err, niftimrs.ErrUnknownTag) {
		t.Fatalf("missing tag error = %v, want ErrUnknownTag", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	img := constImage(t, []int{1, 1, 1, 4, 2}, []niftimrs.Tag{niftimrs.TagDyn})

	shape := img.Shape()
	shape[4] = 99
	if img.Shape()[4] != 2 {
		t.Fatal("mutating Shape() result leaked into the image")
	}

	data := img.Data()
	data[0] = complex(999, 0)
	if img.At(0, 0, 0, 0, 0) == complex(999, 0) {
		t.Fatal("mutating Data() result leaked into the image")
	}

	tags := img.Tags()
	tags[0] = niftimrs.TagCoil
	if img.Tags()[0] != niftimrs.TagDyn {
		t.Fatal("mutating Tags() result leaked into the image")
	}
}

func TestAtUsesRowMajorLayout(t *testing.T) {
	img := constImage(t, []int{1, 1, 1, 3, 2}, []niftimrs.Tag{niftimrs.TagDyn})
	// Row-major: the higher axis is fastest, so (t=1, d=0) sits at flat 2.
	if got := img.At(0, 0, 0, 1, 0); got != complex(2, -2) {
		t.Fatalf("At(...,1,0) = %v, want (2,-2)", got)
	}
	if got := img.At(0, 0, 0, 1, 1); got != complex(3, -3) {
		t.Fatalf("At(...,1,1) = %v, want (3,-3)", got)
	}
}

func TestLogExtendDoesNotShareBackingArray(t *testing.T) {
	base := niftimrs.Log{}
	first := base.Extend("conjugate", "")
	second := base.Extend("average", "dim=DIM_DYN")
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("extend lengths = %d, %d, want 1, 1", len(first), len(second))
	}
	if first[0].Method == second[0].Method {
		t.Fatal("branched logs share a record")
	}
	if first[0].ID == "" || first[0].ID == second[0].ID {
		t.Fatal("records must carry distinct IDs")
	}
}

func TestMetadataSelectTagReindexes(t *testing.T) {
	meta := niftimrs.Metadata{
		{Tag: niftimrs.TagDyn, Index: 1}:  1.5,
		{Tag: niftimrs.TagDyn, Index: 3}:  3.5,
		{Tag: niftimrs.TagCoil, Index: 0}: -1.0,
	}
	out := meta.SelectTag(niftimrs.TagDyn, []int{3, 1})
	if got := out[niftimrs.MetaKey{Tag: niftimrs.TagDyn, Index: 0}]; got != 1.5 {
		t.Fatalf("index 1 should land at local 0, got %v", got)
	}
	if got := out[niftimrs.MetaKey{Tag: niftimrs.TagDyn, Index: 1}]; got != 3.5 {
		t.Fatalf("index 3 should land at local 1, got %v", got)
	}
	if got := out[niftimrs.MetaKey{Tag: niftimrs.TagCoil, Index: 0}]; got != -1.0 {
		t.Fatalf("other-tag entry should pass through, got %v", got)
	}
}
