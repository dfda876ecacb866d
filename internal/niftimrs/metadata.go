package niftimrs

import (
	"fmt"
	"sort"
)

// MetaKey addresses one index along one tagged axis.
type MetaKey struct {
	Tag   Tag
	Index int
}

// Metadata is the sparse per-index overlay: auxiliary values (a
// per-repetition phase correction, a free-form user field) attached to
// specific indices of tagged axes. Absence of a key simply means no value
// was recorded for that index. Values must be JSON-serializable scalars or
// records.
type Metadata map[MetaKey]any

// Clone returns an independent copy of the overlay.
func (m Metadata) Clone() Metadata {
	if len(m) == 0 {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// OffsetTag returns a copy where every key on the given tag is shifted by
// delta; entries for other tags pass through unchanged.
func (m Metadata) OffsetTag(tag Tag, delta int) Metadata {
	if len(m) == 0 {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		if k.Tag == tag {
			k.Index += delta
		}
		out[k] = v
	}
	return out
}

// SelectTag returns a copy keeping, for the given tag, only entries whose
// index appears in keep; kept entries are re-indexed to their position in
// ascending keep order. Entries on other tags pass through unchanged.
func (m Metadata) SelectTag(tag Tag, keep []int) Metadata {
	if len(m) == 0 {
		return nil
	}
	sorted := append([]int(nil), keep...)
	sort.Ints(sorted)
	local := make(map[int]int, len(sorted))
	for pos, idx := range sorted {
		local[idx] = pos
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		if k.Tag == tag {
			pos, kept := local[k.Index]
			if !kept {
				continue
			}
			k.Index = pos
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// DropTag returns a copy with every entry for the given tag removed.
func (m Metadata) DropTag(tag Tag) Metadata {
	if len(m) == 0 {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		if k.Tag == tag {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Validate checks every key against the current tags and axis lengths.
// tags and dimShape run in parallel: dimShape[i] is the length of the axis
// tagged tags[i].
func (m Metadata) Validate(tags []Tag, dimShape []int) error {
	lengths := make(map[Tag]int, len(tags))
	for i, tag := range tags {
		lengths[tag] = dimShape[i]
	}
	for k := range m {
		length, ok := lengths[k.Tag]
		if !ok {
			return fmt.Errorf("%w: entry keyed on %s but image has no such dimension", ErrMetadataConsistency, k.Tag)
		}
		if k.Index < 0 || k.Index >= length {
			return fmt.Errorf("%w: entry %s[%d] outside axis length %d", ErrMetadataConsistency, k.Tag, k.Index, length)
		}
	}
	return nil
}
