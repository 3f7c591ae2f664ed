package dicom

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
)

// itemTag and itemDelimitationTag/sequenceDelimitationTag identify the
// structural markers used inside a VR=SQ element's value, per DICOM Part 5
// Section 7.5.
const (
	itemTagGroup             = uint16(0xFFFE)
	itemTagElement           = uint16(0xE000)
	itemDelimitationTagValue = uint32(0xFFFEE00D)
	sequenceDelimitationTag  = uint32(0xFFFEE0DD)
)

// SequenceValue is the value.Value implementation for VR=SQ elements: an
// ordered list of nested datasets (items).
//
// It lives in package dicom, not package value, because a sequence's items
// are *DataSet values and value cannot import dicom without an import cycle
// (dicom already imports value transitively via element).
type SequenceValue struct {
	items      []*DataSet
	explicitVR bool
}

var _ value.Value = (*SequenceValue)(nil)

// NewSequenceValue builds a sequence value from parsed items. explicitVR
// records which VR encoding mode the items were parsed under (the transfer
// syntax in force at parse time), so Bytes can re-encode nested elements
// the same way.
func NewSequenceValue(items []*DataSet, explicitVR bool) *SequenceValue {
	if items == nil {
		items = []*DataSet{}
	}
	return &SequenceValue{items: items, explicitVR: explicitVR}
}

// Items returns the nested datasets making up this sequence.
func (s *SequenceValue) Items() []*DataSet {
	return s.items
}

// VR always returns vr.SequenceOfItems.
func (s *SequenceValue) VR() vr.VR {
	return vr.SequenceOfItems
}

// Bytes re-encodes the sequence as a run of defined-length items, matching
// the defined-length convention the rest of the writer already uses for
// every other VR (no sequence/item delimiters are emitted).
func (s *SequenceValue) Bytes() []byte {
	var buf bytes.Buffer
	for _, item := range s.items {
		itemBytes := encodeElementsLE(item, s.explicitVR)
		_ = binary.Write(&buf, binary.LittleEndian, itemTagGroup)
		_ = binary.Write(&buf, binary.LittleEndian, itemTagElement)
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(itemBytes)))
		buf.Write(itemBytes)
	}
	return buf.Bytes()
}

func (s *SequenceValue) String() string {
	if len(s.items) == 1 {
		return "Sequence of 1 item"
	}
	return fmt.Sprintf("Sequence of %d items", len(s.items))
}

// Equals compares items element-by-element; order matters.
func (s *SequenceValue) Equals(other value.Value) bool {
	o, ok := other.(*SequenceValue)
	if !ok || len(o.items) != len(s.items) {
		return false
	}
	for i, item := range s.items {
		otherItem := o.items[i]
		if item.Len() != otherItem.Len() {
			return false
		}
		for _, elem := range item.Elements() {
			oe, err := otherItem.Get(elem.Tag())
			if err != nil || !elem.Equals(oe) {
				return false
			}
		}
	}
	return true
}
