// Package tagpath implements the tag-path addressing language (TagPath) and
// the tag-path pattern matching language (TagPathPattern) used to locate
// elements inside a DICOM dataset, including elements nested arbitrarily
// deep inside sequences.
//
// Grounded on the original Python implementation's dicom_tag_path.py and
// dicom_tag_path_pattern.py regex-per-step grammar, adapted to walk
// *dicom.DataSet / *dicom.SequenceValue instead of a JSON document tree.
package tagpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/deidentify/engineerr"
)

// itemIndexAll is the sentinel index for a "[%]" step (broadcast to every
// item of the sequence).
const itemIndexAll = -1

// Step is one literal component of a TagPath: a tag plus an optional item
// index when the tag names a sequence being traversed into.
type Step struct {
	Tag tag.Tag
	// HasIndex is false when the step carries no "[k]"/"[%]" suffix.
	HasIndex bool
	// Index is the item index for "[k]"; itemIndexAll for "[%]".
	Index int
}

// TagPath is a fully literal, ordered chain of steps naming either an exact
// element location ("[k]" throughout) or a broadcast location ("[%]" at one
// or more steps).
type TagPath struct {
	raw   string
	Steps []Step
}

func (p TagPath) String() string { return p.raw }

var stepRe = regexp.MustCompile(`^([0-9A-Za-z_]+)(?:\[(\d+|%)\])?$`)
var hex8Re = regexp.MustCompile(`^[0-9A-Fa-f]{8}$`)

// ParseTagPath parses a dotted tag path such as "PatientName" or
// "00081115[0].0020000E".
func ParseTagPath(s string) (TagPath, error) {
	if strings.TrimSpace(s) == "" {
		return TagPath{}, engineerr.PathInvalid(s, "empty tag path")
	}

	parts := strings.Split(s, ".")
	steps := make([]Step, 0, len(parts))

	for _, part := range parts {
		m := stepRe.FindStringSubmatch(part)
		if m == nil {
			return TagPath{}, engineerr.PathInvalid(s, fmt.Sprintf("malformed step %q", part))
		}

		t, err := resolveStepTag(m[1])
		if err != nil {
			return TagPath{}, engineerr.PathInvalid(s, err.Error())
		}

		step := Step{Tag: t}
		if m[2] != "" {
			step.HasIndex = true
			if m[2] == "%" {
				step.Index = itemIndexAll
			} else {
				idx, _ := strconv.Atoi(m[2])
				step.Index = idx
			}
		}
		steps = append(steps, step)
	}

	return TagPath{raw: s, Steps: steps}, nil
}

// resolveStepTag turns a literal step body (keyword or 8-hex) into a Tag.
func resolveStepTag(body string) (tag.Tag, error) {
	if hex8Re.MatchString(body) {
		group, err1 := strconv.ParseUint(body[0:4], 16, 16)
		elem, err2 := strconv.ParseUint(body[4:8], 16, 16)
		if err1 != nil || err2 != nil {
			return tag.Tag{}, fmt.Errorf("malformed hex tag %q", body)
		}
		return tag.New(uint16(group), uint16(elem)), nil
	}

	info, err := tag.FindByKeyword(body)
	if err != nil {
		return tag.Tag{}, fmt.Errorf("unknown keyword %q", body)
	}
	return info.Tag, nil
}

// ResolveParents walks D following the path and yields, for every selected
// location, the parent dataset holding the leaf and the leaf's tag integer.
//
// At each non-last step the step must name an existing sequence (VR=SQ);
// item indices are taken from "[k]"/"[%]", or treated as "[%]" when absent
// and the sequence has exactly one item (failing otherwise). The last step
// always yields (currentDataset, leafTag) without requiring the tag to
// already exist — callers like AddTags use this to attach new elements.
func ResolveParents(d *dicom.DataSet, path TagPath) ([]ParentRef, error) {
	if len(path.Steps) == 0 {
		return nil, engineerr.PathInvalid(path.raw, "empty path")
	}
	return resolveParentsRec(d, path.Steps, path.raw)
}

// ParentRef is one (parent dataset, leaf tag) pair yielded by ResolveParents.
type ParentRef struct {
	Parent *dicom.DataSet
	Leaf   tag.Tag
}

func resolveParentsRec(d *dicom.DataSet, steps []Step, raw string) ([]ParentRef, error) {
	step := steps[0]

	if len(steps) == 1 {
		return []ParentRef{{Parent: d, Leaf: step.Tag}}, nil
	}

	elem, err := d.Get(step.Tag)
	if err != nil {
		return nil, engineerr.PathInvalid(raw, fmt.Sprintf("sequence %s not present", step.Tag))
	}
	seq, ok := elem.Value().(*dicom.SequenceValue)
	if !ok {
		return nil, engineerr.PathInvalid(raw, fmt.Sprintf("%s is not a sequence", step.Tag))
	}

	items := seq.Items()
	indices, err := selectIndices(step, len(items), raw)
	if err != nil {
		return nil, err
	}

	var out []ParentRef
	for _, idx := range indices {
		if idx < 0 || idx >= len(items) {
			return nil, engineerr.PathInvalid(raw, fmt.Sprintf("item index %d out of range for %s", idx, step.Tag))
		}
		refs, err := resolveParentsRec(items[idx], steps[1:], raw)
		if err != nil {
			return nil, err
		}
		out = append(out, refs...)
	}
	return out, nil
}

func selectIndices(step Step, n int, raw string) ([]int, error) {
	if !step.HasIndex {
		if n != 1 {
			return nil, engineerr.PathInvalid(raw, fmt.Sprintf("step %s has no index and sequence has %d items", step.Tag, n))
		}
		return []int{0}, nil
	}
	if step.Index == itemIndexAll {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	return []int{step.Index}, nil
}

// LocStep is one link in a Location: the element found at this depth and the
// dataset that directly contains it (needed to resolve private creators
// during pattern matching).
type LocStep struct {
	Elem   *element.Element
	Parent *dicom.DataSet
}

// Location is the chain of elements from the root dataset down to a target
// element, threaded as a stack during traversal rather than via parent
// back-pointers (the DICOM tree is acyclic, so none are needed).
type Location []LocStep

// Elements returns the bare element chain.
func (loc Location) Elements() []*element.Element {
	out := make([]*element.Element, len(loc))
	for i, s := range loc {
		out[i] = s.Elem
	}
	return out
}

// CanonicalHex renders a location as the canonical concatenated-hex string
// hex(e1.tag)hex(e2.tag)...
func (loc Location) CanonicalHex() string {
	var sb strings.Builder
	for _, s := range loc {
		sb.WriteString(fmt.Sprintf("%04X%04X", s.Elem.Tag().Group, s.Elem.Tag().Element))
	}
	return sb.String()
}
