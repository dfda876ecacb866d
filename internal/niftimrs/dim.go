package niftimrs

import (
	"fmt"
	"strings"
)

// MaxDims is the number of higher (tagged) dimensions an image may carry
// beyond the spatial and spectral axes.
const MaxDims = 3

// TagKind enumerates the recognized dimension roles. The zero value is
// invalid so an uninitialized Tag never masquerades as a real one.
type TagKind uint8

const (
	KindCoil TagKind = iota + 1
	KindDyn
	KindEdit
	KindMeas
	KindPhaseCycle
	KindISIS
	KindIndirect0
	KindIndirect1
	KindIndirect2
	// KindUser covers user-defined repeats; the Tag carries the full label.
	KindUser
)

// Tag identifies the semantic role of one higher dimension. Tags are
// comparable and safe to use as map keys.
type Tag struct {
	Kind TagKind
	// Name holds the full label for user-defined tags and is empty for the
	// fixed vocabulary.
	Name string
}

// Canonical tags for the fixed vocabulary.
var (
	TagCoil       = Tag{Kind: KindCoil}
	TagDyn        = Tag{Kind: KindDyn}
	TagEdit       = Tag{Kind: KindEdit}
	TagMeas       = Tag{Kind: KindMeas}
	TagPhaseCycle = Tag{Kind: KindPhaseCycle}
	TagISIS       = Tag{Kind: KindISIS}
	TagIndirect0  = Tag{Kind: KindIndirect0}
	TagIndirect1  = Tag{Kind: KindIndirect1}
	TagIndirect2  = Tag{Kind: KindIndirect2}
)

const userPrefix = "DIM_USER_"

var kindLabels = map[TagKind]string{
	KindCoil:       "DIM_COIL",
	KindDyn:        "DIM_DYN",
	KindEdit:       "DIM_EDIT",
	KindMeas:       "DIM_MEAS",
	KindPhaseCycle: "DIM_PHASE_CYCLE",
	KindISIS:       "DIM_ISIS",
	KindIndirect0:  "DIM_INDIRECT_0",
	KindIndirect1:  "DIM_INDIRECT_1",
	KindIndirect2:  "DIM_INDIRECT_2",
}

var labelKinds = func() map[string]TagKind {
	m := make(map[string]TagKind, len(kindLabels))
	for kind, label := range kindLabels {
		m[label] = kind
	}
	return m
}()

// UserTag builds a user-defined tag from a suffix, e.g. UserTag("0") is
// DIM_USER_0.
func UserTag(suffix string) Tag {
	return Tag{Kind: KindUser, Name: userPrefix + strings.ToUpper(strings.TrimSpace(suffix))}
}

// ParseTag converts a label into a Tag. Labels outside the fixed vocabulary
// are accepted only with the DIM_USER_ prefix; anything else is rejected so
// typos never reach axis arithmetic.
func ParseTag(label string) (Tag, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(label))
	if kind, ok := labelKinds[trimmed]; ok {
		return Tag{Kind: kind}, nil
	}
	if rest, ok := strings.CutPrefix(trimmed, userPrefix); ok && rest != "" {
		return Tag{Kind: KindUser, Name: trimmed}, nil
	}
	return Tag{}, fmt.Errorf("%w: unrecognized label %q", ErrUnknownTag, label)
}

// ParseTags converts a list of labels, rejecting duplicates and enforcing
// the three-tag ceiling.
func ParseTags(labels []string) ([]Tag, error) {
	if len(labels) > MaxDims {
		return nil, fmt.Errorf("%w: %d tags requested, at most %d supported", ErrTagCardinality, len(labels), MaxDims)
	}
	tags := make([]Tag, 0, len(labels))
	seen := make(map[Tag]struct{}, len(labels))
	for _, label := range labels {
		tag, err := ParseTag(label)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[tag]; dup {
			return nil, fmt.Errorf("%w: duplicate tag %s", ErrTagCardinality, tag)
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags, nil
}

// IsZero reports whether the tag is the invalid zero value.
func (t Tag) IsZero() bool { return t.Kind == 0 }

// String returns the canonical DIM_* label.
func (t Tag) String() string {
	if t.Kind == KindUser {
		return t.Name
	}
	if label, ok := kindLabels[t.Kind]; ok {
		return label
	}
	return fmt.Sprintf("DIM_INVALID(%d)", t.Kind)
}

// TagLabels renders tags back to their canonical labels.
func TagLabels(tags []Tag) []string {
	labels := make([]string, len(tags))
	for i, tag := range tags {
		labels[i] = tag.String()
	}
	return labels
}
