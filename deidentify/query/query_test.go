package query_test

import (
	"testing"

	"github.com/codeninja55/go-radx/deidentify/query"
	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleDataSet(t *testing.T) *dicom.DataSet {
	t.Helper()
	ds := dicom.NewDataSet()

	modVal, _ := value.NewStringValue(vr.CodeString, []string{"CT"})
	modElem, err := element.NewElement(tag.New(0x0008, 0x0060), vr.CodeString, modVal)
	require.NoError(t, err)
	require.NoError(t, ds.Add(modElem))

	mfgVal, _ := value.NewStringValue(vr.LongString, []string{"GE Healthcare"})
	mfgElem, err := element.NewElement(tag.New(0x0008, 0x0070), vr.LongString, mfgVal)
	require.NoError(t, err)
	require.NoError(t, ds.Add(mfgElem))

	nameVal, _ := value.NewStringValue(vr.PersonName, []string{"Doe^John=Doe^John (ideographic)"})
	nameElem, err := element.NewElement(tag.New(0x0010, 0x0010), vr.PersonName, nameVal)
	require.NoError(t, err)
	require.NoError(t, ds.Add(nameElem))

	item := dicom.NewDataSet()
	meaningVal, _ := value.NewStringValue(vr.LongString, []string{"Chest CT"})
	meaningElem, err := element.NewElement(tag.New(0x0008, 0x0104), vr.LongString, meaningVal)
	require.NoError(t, err)
	require.NoError(t, item.Add(meaningElem))

	seqVal := dicom.NewSequenceValue([]*dicom.DataSet{item}, true)
	seqElem, err := element.NewElement(tag.New(0x0032, 0x1064), vr.SequenceOfItems, seqVal)
	require.NoError(t, err)
	require.NoError(t, ds.Add(seqElem))

	return ds
}

func TestCompile_StrEquals(t *testing.T) {
	ds := buildSampleDataSet(t)
	doc := query.BuildDocument(ds)

	pred, err := query.Compile("Modality StrEquals CT")
	require.NoError(t, err)
	assert.True(t, pred(doc))

	pred, err = query.Compile("Modality StrEquals MR")
	require.NoError(t, err)
	assert.False(t, pred(doc))
}

func TestCompile_WildcardAndCaseInsensitive(t *testing.T) {
	ds := buildSampleDataSet(t)
	doc := query.BuildDocument(ds)

	pred, err := query.Compile(`Manufacturer StrEquals "ge*"`)
	require.NoError(t, err)
	assert.True(t, pred(doc))
}

func TestCompile_AndOrParens(t *testing.T) {
	ds := buildSampleDataSet(t)
	doc := query.BuildDocument(ds)

	pred, err := query.Compile(`Modality StrEquals CT AND (Manufacturer StrEquals GE* OR Manufacturer StrEquals Philips*)`)
	require.NoError(t, err)
	assert.True(t, pred(doc))

	pred, err = query.Compile(`Modality StrEquals MR AND (Manufacturer StrEquals GE* OR Manufacturer StrEquals Philips*)`)
	require.NoError(t, err)
	assert.False(t, pred(doc))
}

func TestCompile_ExistsNotExists(t *testing.T) {
	ds := buildSampleDataSet(t)
	doc := query.BuildDocument(ds)

	pred, err := query.Compile("Modality Exists")
	require.NoError(t, err)
	assert.True(t, pred(doc))

	pred, err = query.Compile("00100020 NotExists")
	require.NoError(t, err)
	assert.True(t, pred(doc))
}

func TestCompile_NestedSequencePath(t *testing.T) {
	ds := buildSampleDataSet(t)
	doc := query.BuildDocument(ds)

	pred, err := query.Compile("RequestedProcedureCodeSequence.CodeMeaning StrEquals Chest*")
	require.NoError(t, err)
	assert.True(t, pred(doc))
}

func TestCompile_PersonNameAlphabeticForm(t *testing.T) {
	ds := buildSampleDataSet(t)
	doc := query.BuildDocument(ds)

	pred, err := query.Compile("PatientName StrEquals Doe^John")
	require.NoError(t, err)
	assert.True(t, pred(doc))
}

func TestCompile_EmptyFilterAlwaysMatches(t *testing.T) {
	ds := buildSampleDataSet(t)
	doc := query.BuildDocument(ds)

	pred, err := query.Compile("")
	require.NoError(t, err)
	assert.True(t, pred(doc))
}

func TestCompile_NbComparisons(t *testing.T) {
	ds := dicom.NewDataSet()
	rowsVal, _ := value.NewIntValue(vr.UnsignedShort, []int64{512})
	rowsElem, err := element.NewElement(tag.New(0x0028, 0x0010), vr.UnsignedShort, rowsVal)
	require.NoError(t, err)
	require.NoError(t, ds.Add(rowsElem))
	doc := query.BuildDocument(ds)

	pred, err := query.Compile("Rows NbEquals 512")
	require.NoError(t, err)
	assert.True(t, pred(doc))

	pred, err = query.Compile("Rows NbGreater 100")
	require.NoError(t, err)
	assert.True(t, pred(doc))

	pred, err = query.Compile("Rows NbLess 100")
	require.NoError(t, err)
	assert.False(t, pred(doc))
}

func TestCompile_InvalidSyntax(t *testing.T) {
	_, err := query.Compile("Modality StrEquals CT XOR Modality StrEquals MR")
	assert.Error(t, err)
}
