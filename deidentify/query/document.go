// Package query implements the metadata query language: a compact filter
// grammar compiled into an in-memory predicate over a document view of a
// DICOM dataset.
//
// Grounded on original_source's dicom_json.py (convert_dicom_to_json for
// the document-view normalization rules) and translate_query_to_jsonpath
// (for the condition grammar) - adapted here to compile directly to a
// Predicate closure tree instead of a PostgreSQL JSONPath string, since
// this engine has no SQL surface to target.
package query

import (
	"fmt"
	"strings"

	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
)

// Document is the normalized, per-instance view a compiled Predicate is
// evaluated against. Each entry is keyed by its canonical 8-hex tag and
// holds one of: string (scalar, including the "" empty-value marker),
// []string (an uncollapsed multi-valued scalar), or []Document (a
// sequence's items).
type Document map[string]any

// BuildDocument converts a dataset into its document view, recursing into
// every sequence.
func BuildDocument(ds *dicom.DataSet) Document {
	doc := make(Document, ds.Len())
	for _, e := range ds.Elements() {
		key := hexKey(e)
		doc[key] = documentValue(e)
	}
	return doc
}

func hexKey(e *element.Element) string {
	t := e.Tag()
	return fmt.Sprintf("%04X%04X", t.Group, t.Element)
}

// documentValue normalizes one element's value per the document-view
// rules: sequences become lists of sub-documents, person names become
// their alphabetic component, and a single-item multi-valued scalar
// collapses to a bare string. An element with no representable value
// (e.g. PixelData, or genuinely absent) becomes "".
func documentValue(e *element.Element) any {
	if seq, ok := e.Value().(*dicom.SequenceValue); ok {
		items := seq.Items()
		subs := make([]Document, len(items))
		for i, it := range items {
			subs[i] = BuildDocument(it)
		}
		return subs
	}

	strs := scalarStrings(e)
	if len(strs) == 0 {
		return ""
	}
	if len(strs) == 1 {
		return strs[0]
	}
	return strs
}

// scalarStrings extracts the string form of every component of a
// non-sequence element's value, applying the PN -> alphabetic-component
// normalization.
func scalarStrings(e *element.Element) []string {
	switch v := e.Value().(type) {
	case *value.StringValue:
		strs := v.Strings()
		if e.VR() == vr.PersonName {
			out := make([]string, len(strs))
			for i, s := range strs {
				out[i] = alphabeticComponent(s)
			}
			return out
		}
		return strs
	case *value.IntValue:
		ints := v.Ints()
		out := make([]string, len(ints))
		for i, n := range ints {
			out[i] = fmt.Sprintf("%d", n)
		}
		return out
	case *value.FloatValue:
		floats := v.Floats()
		out := make([]string, len(floats))
		for i, f := range floats {
			out[i] = fmt.Sprintf("%g", f)
		}
		return out
	default:
		// BytesValue and anything else (PixelData, OB/OW/UN, ...) carries
		// no searchable text representation.
		return nil
	}
}

// alphabeticComponent returns the Alphabetic group of a PN value, whose
// three groups are separated by "=" (Alphabetic=Ideographic=Phonetic).
func alphabeticComponent(s string) string {
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		return s[:idx]
	}
	return s
}
