package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codeninja55/go-radx/deidentify/config"
	"github.com/codeninja55/go-radx/deidentify/engineerr"
	"github.com/codeninja55/go-radx/deidentify/mapping"
	"github.com/codeninja55/go-radx/deidentify/mask"
	"github.com/codeninja55/go-radx/deidentify/tagpath"
	"github.com/codeninja55/go-radx/dicom/datetime"
	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/pixel"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/uid"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
)

// scopeFor resolves a ReuseMapping name against the identifiers captured at
// construction time, never against values a prior step may have already
// replaced on this instance.
func (p *Pipeline) scopeFor(reuseMapping string) (mapping.ScopeType, string, error) {
	return mapping.ReuseScope(reuseMapping, p.patientID, p.studyUID, p.seriesUID, p.instanceUID)
}

// runShiftDateTime is step 1: every matching DA/DT/TM element is shifted by
// a random offset in [-ShiftBy, +ShiftBy] (days for DA, seconds for DT/TM),
// reused per scope so the same old value always shifts by the same amount
// within a scope.
func (p *Pipeline) runShiftDateTime(ctx context.Context) error {
	for i := range p.ops.ShiftDateTime {
		op := &p.ops.ShiftDateTime[i]
		scopeType, scopeValue, err := p.scopeFor(string(op.ReuseMapping))
		if err != nil {
			return engineerr.TransformFailed("ShiftDateTime", "", err)
		}
		matches := tagpath.EnumerateMatching(p.ds, op.Patterns(), op.ExceptPatterns())
		for _, m := range matches {
			if err := p.shiftOneElement(ctx, m, op.ShiftBy, scopeType, scopeValue); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Pipeline) shiftOneElement(ctx context.Context, m tagpath.Match, shiftBy int, scopeType mapping.ScopeType, scopeValue string) error {
	elem := m.Element
	if v := elem.VR(); v != vr.Date && v != vr.Time && v != vr.DateTime {
		return nil
	}
	old := elem.Value().String()
	if old == "" {
		return nil
	}

	candidate, err := shiftDateTimeValue(elem.VR(), old, shiftBy)
	if err != nil {
		return engineerr.TransformFailed("ShiftDateTime", m.CanonicalHex, err)
	}
	key := mapping.Key{ValueType: mapping.ValueDateTime, OldValue: old, ScopeType: scopeType, ScopeValue: scopeValue}
	shifted, err := p.store.LookupOrInsert(ctx, key, candidate)
	if err != nil {
		return engineerr.TransformFailed("ShiftDateTime", m.CanonicalHex, err)
	}

	newVal, err := value.NewStringValue(elem.VR(), []string{shifted})
	if err != nil {
		return engineerr.TransformFailed("ShiftDateTime", m.CanonicalHex, err)
	}
	if err := elem.SetValue(newVal); err != nil {
		return engineerr.TransformFailed("ShiftDateTime", m.CanonicalHex, err)
	}
	return nil
}

// shiftDateTimeValue parses s per its VR and shifts it by a fresh random
// offset in [-shiftBy, +shiftBy]: days for DA, seconds for DT and TM, per
// dicom.py's shift_date_time.
func shiftDateTimeValue(v vr.VR, s string, shiftBy int) (string, error) {
	shift, err := randShift(shiftBy)
	if err != nil {
		return "", err
	}

	switch v {
	case vr.Date:
		d, err := datetime.ParseDate(s)
		if err != nil {
			return "", err
		}
		d.Time = d.Time.AddDate(0, 0, shift)
		return d.DCM(), nil
	case vr.Time:
		t, err := datetime.ParseTime(s)
		if err != nil {
			return "", err
		}
		t.Time = t.Time.Add(time.Duration(shift) * time.Second)
		return t.DCM(), nil
	case vr.DateTime:
		dt, err := datetime.ParseDateTime(s)
		if err != nil {
			return "", err
		}
		dt.Time = dt.Time.Add(time.Duration(shift) * time.Second)
		return dt.DCM(), nil
	default:
		return "", fmt.Errorf("pipeline: ShiftDateTime matched non DA/DT/TM VR %s", v)
	}
}

// runRandomizeText is step 2: every matching text element is replaced with
// a fresh random alphanumeric string, reused per scope. Split breaks the
// old value into segments on a separator first, replacing each segment
// independently and rejoining with the same separator, per dicom.py's
// randomize_text (Split is honored whenever it is non-empty; the original's
// literal `is True` check on Split is not reproduced).
func (p *Pipeline) runRandomizeText(ctx context.Context) error {
	for i := range p.ops.RandomizeText {
		op := &p.ops.RandomizeText[i]
		scopeType, scopeValue, err := p.scopeFor(string(op.ReuseMapping))
		if err != nil {
			return engineerr.TransformFailed("RandomizeText", "", err)
		}
		matches := tagpath.EnumerateMatching(p.ds, op.Patterns(), op.ExceptPatterns())
		for _, m := range matches {
			if err := p.randomizeOneElement(ctx, m, op.Split, op.IgnoreCase, scopeType, scopeValue); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Pipeline) randomizeOneElement(ctx context.Context, m tagpath.Match, split string, ignoreCase bool, scopeType mapping.ScopeType, scopeValue string) error {
	elem := m.Element
	sv, ok := elem.Value().(*value.StringValue)
	if !ok {
		return nil
	}
	strs := sv.Strings()
	out := make([]string, len(strs))
	for i, old := range strs {
		if old == "" {
			out[i] = old
			continue
		}
		replaced, err := p.randomizeOneString(ctx, old, split, ignoreCase, scopeType, scopeValue, m.CanonicalHex)
		if err != nil {
			return err
		}
		out[i] = replaced
	}

	newVal, err := value.NewStringValue(elem.VR(), out)
	if err != nil {
		return engineerr.TransformFailed("RandomizeText", m.CanonicalHex, err)
	}
	if err := elem.SetValue(newVal); err != nil {
		return engineerr.TransformFailed("RandomizeText", m.CanonicalHex, err)
	}
	return nil
}

func (p *Pipeline) randomizeOneString(ctx context.Context, old, split string, ignoreCase bool, scopeType mapping.ScopeType, scopeValue, tagPath string) (string, error) {
	if split == "" {
		return p.randomizedLookup(ctx, old, ignoreCase, scopeType, scopeValue, tagPath)
	}

	segments := strings.Split(old, split)
	out := make([]string, len(segments))
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		replaced, err := p.randomizedLookup(ctx, seg, ignoreCase, scopeType, scopeValue, tagPath)
		if err != nil {
			return "", err
		}
		out[i] = replaced
	}
	return strings.Join(out, split), nil
}

// compatQuirkRandomizeTextValueType is the mapping value_type RandomizeText
// stores under. dicom.py's randomize_text reuses ShiftDateTime's 'DATETIME'
// value_type rather than a distinct 'TEXT' one; named here instead of
// inlined so the quirk is searchable.
const compatQuirkRandomizeTextValueType = mapping.ValueDateTime

// randomGeneratedTextLength is the fixed length of every RandomizeText
// replacement segment, per dicom.py's randomize_text (8 characters
// regardless of the old segment's length).
const randomGeneratedTextLength = 8

func (p *Pipeline) randomizedLookup(ctx context.Context, old string, ignoreCase bool, scopeType mapping.ScopeType, scopeValue, tagPath string) (string, error) {
	if ignoreCase {
		old = strings.ToLower(old)
	}
	key := mapping.Key{ValueType: compatQuirkRandomizeTextValueType, OldValue: old, ScopeType: scopeType, ScopeValue: scopeValue}
	candidate, err := randAlnum(randomGeneratedTextLength)
	if err != nil {
		return "", engineerr.TransformFailed("RandomizeText", tagPath, err)
	}
	newVal, err := p.store.LookupOrInsert(ctx, key, candidate)
	if err != nil {
		return "", engineerr.TransformFailed("RandomizeText", tagPath, err)
	}
	return newVal, nil
}

// runRandomizeUID is step 3: every matching UI element is replaced with a
// freshly generated UID, reused per old value so repeated references to the
// same UID (e.g. StudyInstanceUID appearing in a sequence item) resolve to
// the same replacement. RandomizeUID has no ReuseMapping field: dicom.py
// always reuses across the whole run (mapping table scope_type='always'),
// so the scope here is fixed rather than read from config.
func (p *Pipeline) runRandomizeUID(ctx context.Context) error {
	for i := range p.ops.RandomizeUID {
		op := &p.ops.RandomizeUID[i]
		matches := tagpath.EnumerateMatching(p.ds, op.Patterns(), op.ExceptPatterns())
		for _, m := range matches {
			if err := p.randomizeOneUID(ctx, m, op.Prefix); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Pipeline) randomizeOneUID(ctx context.Context, m tagpath.Match, prefix string) error {
	elem := m.Element
	// File-meta (group 0002) UIDs are left alone; MediaStorageSOPInstanceUID
	// follows the main SOPInstanceUID via setMediaStorageSOPInstanceUID.
	if elem.VR() != vr.UniqueIdentifier || elem.Tag().Group == 0x0002 {
		return nil
	}
	old := elem.Value().String()
	if old == "" {
		return nil
	}

	key := mapping.Key{ValueType: mapping.ValueUID, OldValue: old, ScopeType: mapping.ScopeAlways, ScopeValue: "always"}
	var candidate string
	if prefix != "" {
		candidate = uid.GenerateWithRoot(prefix)
	} else {
		candidate = uid.Generate()
	}
	newUID, err := p.store.LookupOrInsert(ctx, key, candidate)
	if err != nil {
		return engineerr.TransformFailed("RandomizeUID", m.CanonicalHex, err)
	}

	newVal, err := value.NewStringValue(elem.VR(), []string{newUID})
	if err != nil {
		return engineerr.TransformFailed("RandomizeUID", m.CanonicalHex, err)
	}
	if err := elem.SetValue(newVal); err != nil {
		return engineerr.TransformFailed("RandomizeUID", m.CanonicalHex, err)
	}

	if m.CanonicalHex == "00080018" {
		if err := p.setMediaStorageSOPInstanceUID(newUID); err != nil {
			return engineerr.TransformFailed("RandomizeUID", m.CanonicalHex, err)
		}
	}
	return nil
}

// setMediaStorageSOPInstanceUID mirrors the main SOPInstanceUID's
// replacement onto the file-meta group's MediaStorageSOPInstanceUID, per
// dicom.py's randomize_uid (`self.dicom.file_meta.MediaStorageSOPInstanceUID
// = new_uid`).
func (p *Pipeline) setMediaStorageSOPInstanceUID(newUID string) error {
	newVal, err := value.NewStringValue(vr.UniqueIdentifier, []string{newUID})
	if err != nil {
		return err
	}
	if fileMeta := p.ds.FileMetaInformation(); fileMeta != nil {
		if existing, err := fileMeta.Get(tag.MediaStorageSOPInstanceUID); err == nil {
			return existing.SetValue(newVal)
		}
	}
	elem, err := element.NewElement(tag.MediaStorageSOPInstanceUID, vr.UniqueIdentifier, newVal)
	if err != nil {
		return err
	}
	return p.ds.Add(elem)
}

// runAddTags is step 4: attach a literal element at an exact tag path,
// skipping paths already present unless OverwriteIfExists is set.
func (p *Pipeline) runAddTags(ctx context.Context) error {
	_ = ctx
	for i := range p.ops.AddTags {
		op := &p.ops.AddTags[i]
		if err := p.addOneTag(op); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) addOneTag(op *config.AddTagsOp) error {
	path := op.CompiledPath()
	parents, err := tagpath.ResolveParents(p.ds, path)
	if err != nil {
		return engineerr.TransformFailed("AddTags", path.String(), err)
	}

	for _, pr := range parents {
		if pr.Parent.Contains(pr.Leaf) && !op.OverwriteIfExists {
			continue
		}
		elem, err := element.NewElement(pr.Leaf, op.CompiledVR(), op.CompiledValue())
		if err != nil {
			return engineerr.TransformFailed("AddTags", path.String(), err)
		}
		if err := pr.Parent.Add(elem); err != nil {
			return engineerr.TransformFailed("AddTags", path.String(), err)
		}
	}
	return nil
}

// runRemoveBurnedInAnnotations is step 5: zero out operator- or OCR-
// supplied rectangles across every frame/sample of the pixel data. Only
// reached once NeedsTranscodingIn has confirmed the instance is already
// uncompressed little-endian, so pixel.Extract always finds a registered
// native decoder.
func (p *Pipeline) runRemoveBurnedInAnnotations(ctx context.Context) error {
	_ = ctx
	if len(p.ops.RemoveBurnedInAnnotations) == 0 {
		return nil
	}

	boxes := collectBoxes(p.ops.RemoveBurnedInAnnotations, p.ocrBoxes)
	if len(boxes) == 0 {
		return nil
	}

	pd, err := pixel.Extract(p.ds)
	if err != nil {
		return engineerr.TransformFailed("RemoveBurnedInAnnotations", "", err)
	}
	if pd.SamplesPerPixel > 1 {
		pd, err = pixel.ConvertPlanarConfiguration(pd, 0)
		if err != nil {
			return engineerr.TransformFailed("RemoveBurnedInAnnotations", "", err)
		}
		if err := p.setPlanarConfiguration(0); err != nil {
			return engineerr.TransformFailed("RemoveBurnedInAnnotations", "", err)
		}
	}

	m := mask.New(pd.NumberOfFrames, int(pd.Rows), int(pd.Columns))
	for _, box := range boxes {
		m.ZeroRect(box)
	}

	bytesPerSample := int(pd.BitsAllocated) / 8
	if bytesPerSample < 1 {
		bytesPerSample = 1
	}
	data := append([]byte(nil), pd.RawBytes()...)
	if err := m.Apply(data, int(pd.SamplesPerPixel), bytesPerSample); err != nil {
		return engineerr.TransformFailed("RemoveBurnedInAnnotations", "", err)
	}

	elem, err := p.ds.Get(tag.PixelData)
	if err != nil {
		return engineerr.TransformFailed("RemoveBurnedInAnnotations", "", err)
	}
	newVal, err := value.NewBytesValue(elem.VR(), data)
	if err != nil {
		return engineerr.TransformFailed("RemoveBurnedInAnnotations", "", err)
	}
	if err := elem.SetValue(newVal); err != nil {
		return engineerr.TransformFailed("RemoveBurnedInAnnotations", "", err)
	}
	return nil
}

// setPlanarConfiguration writes PlanarConfiguration on the dataset so the
// declared tag stays consistent with ConvertPlanarConfiguration's in-memory
// byte layout change. BitsAllocated/BitsStored/HighBit are left untouched:
// masking never changes the sample bit depth, so there is nothing for those
// tags to reconcile.
func (p *Pipeline) setPlanarConfiguration(planarConfig uint16) error {
	newVal, err := value.NewIntValue(vr.UnsignedShort, []int64{int64(planarConfig)})
	if err != nil {
		return err
	}
	if existing, err := p.ds.Get(tag.PlanarConfiguration); err == nil {
		return existing.SetValue(newVal)
	}
	elem, err := element.NewElement(tag.PlanarConfiguration, vr.UnsignedShort, newVal)
	if err != nil {
		return err
	}
	return p.ds.Add(elem)
}

func collectBoxes(ops []config.RemoveBurnedInAnnotationsOp, ocrBoxes []mask.Rect) []mask.Rect {
	var boxes []mask.Rect
	for _, op := range ops {
		switch op.Type {
		case "Manual":
			for _, b := range op.BoxCoordinates {
				boxes = append(boxes, exclusiveBoxToRect(b))
			}
		case "OCR":
			boxes = append(boxes, ocrBoxes...)
		}
	}
	return boxes
}

// runDeleteTags is step 6: remove or empty every matching element.
func (p *Pipeline) runDeleteTags(ctx context.Context) error {
	_ = ctx
	for i := range p.ops.DeleteTags {
		op := &p.ops.DeleteTags[i]
		matches := tagpath.EnumerateMatching(p.ds, op.Patterns(), op.ExceptPatterns())
		for _, m := range matches {
			if err := p.deleteOneElement(m, op.Action); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Pipeline) deleteOneElement(m tagpath.Match, action string) error {
	switch action {
	case "Remove":
		if err := m.Parent.Remove(m.Element.Tag()); err != nil {
			return engineerr.TransformFailed("DeleteTags", m.CanonicalHex, err)
		}
		return nil
	case "Empty":
		empty, err := emptyValueFor(m.Element.VR())
		if err != nil {
			return engineerr.TransformFailed("DeleteTags", m.CanonicalHex, err)
		}
		if err := m.Element.SetValue(empty); err != nil {
			return engineerr.TransformFailed("DeleteTags", m.CanonicalHex, err)
		}
		return nil
	default:
		return engineerr.TransformFailed("DeleteTags", m.CanonicalHex, fmt.Errorf("unknown Action %q", action))
	}
}

// emptyValueFor builds a zero-length value for v, mirroring
// dicom/anonymize's replaceWithEmpty VR switch.
func emptyValueFor(v vr.VR) (value.Value, error) {
	switch v {
	case vr.SequenceOfItems, vr.OtherByte, vr.OtherDouble, vr.OtherFloat, vr.OtherLong, vr.OtherVeryLong, vr.OtherWord, vr.Unknown:
		return value.NewBytesValue(v, nil)
	case vr.SignedLong, vr.SignedShort, vr.SignedVeryLong, vr.UnsignedLong, vr.UnsignedShort, vr.UnsignedVeryLong, vr.IntegerString:
		if v == vr.IntegerString {
			return value.NewStringValue(v, []string{""})
		}
		return value.NewIntValue(v, nil)
	case vr.FloatingPointDouble, vr.FloatingPointSingle, vr.DecimalString:
		if v == vr.DecimalString {
			return value.NewStringValue(v, []string{""})
		}
		return value.NewFloatValue(v, nil)
	default:
		return value.NewStringValue(v, []string{""})
	}
}
