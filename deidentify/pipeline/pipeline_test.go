package pipeline_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/codeninja55/go-radx/deidentify/config"
	"github.com/codeninja55/go-radx/deidentify/labels"
	"github.com/codeninja55/go-radx/deidentify/mapping"
	"github.com/codeninja55/go-radx/deidentify/pipeline"
	"github.com/codeninja55/go-radx/deidentify/query"
	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `{
  "Labels": [{ "Name": "CT" }],
  "ScopeToForward": { "Labels": ["ALL"] },
  "Transformations": [
    {
      "Scope": { "Labels": ["ALL"] },
      "ShiftDateTime": [
        { "TagPatterns": "StudyDate", "ShiftBy": 10, "ReuseMapping": "SamePatient" }
      ],
      "RandomizeText": [
        { "TagPatterns": "OtherPatientIDs", "Split": "^" }
      ],
      "RandomizeUID": [
        { "TagPatterns": ["{UI}"] }
      ],
      "AddTags": [
        { "Path": "PatientIdentityRemoved", "VR": "CS", "Value": "YES" }
      ],
      "DeleteTags": [
        { "TagPatterns": "ReferringPhysicianAddress", "Action": "Remove" }
      ],
      "Transcode": "1.2.840.10008.1.2.1"
    }
  ]
}`

func loadConfig(t *testing.T, doc string) *config.Config {
	t.Helper()
	var c config.Config
	require.NoError(t, json.Unmarshal([]byte(doc), &c))
	require.NoError(t, c.Validate())
	return &c
}

func strElem(t *testing.T, tg tag.Tag, v vr.VR, vals ...string) *element.Element {
	t.Helper()
	val, err := value.NewStringValue(v, vals)
	require.NoError(t, err)
	elem, err := element.NewElement(tg, v, val)
	require.NoError(t, err)
	return elem
}

func newInstance(t *testing.T) *dicom.DataSet {
	t.Helper()
	ds := dicom.NewDataSet()
	require.NoError(t, ds.Add(strElem(t, tag.PatientID, vr.LongString, "PAT1")))
	require.NoError(t, ds.Add(strElem(t, tag.StudyInstanceUID, vr.UniqueIdentifier, "1.2.3.1")))
	require.NoError(t, ds.Add(strElem(t, tag.SeriesInstanceUID, vr.UniqueIdentifier, "1.2.3.1.1")))
	require.NoError(t, ds.Add(strElem(t, tag.SOPInstanceUID, vr.UniqueIdentifier, "1.2.3.1.1.1")))
	require.NoError(t, ds.Add(strElem(t, tag.StudyDate, vr.Date, "20200115")))
	require.NoError(t, ds.Add(strElem(t, tag.OtherPatientIDs, vr.LongString, "ABC^DEF")))
	require.NoError(t, ds.Add(strElem(t, tag.ReferringPhysicianAddress, vr.ShortText, "123 Main St")))
	require.NoError(t, ds.Add(strElem(t, tag.TransferSyntaxUID, vr.UniqueIdentifier, "1.2.840.10008.1.2")))
	return ds
}

func resolveOps(t *testing.T, c *config.Config, ds *dicom.DataSet) labels.Result {
	t.Helper()
	return labels.Evaluate(c, query.BuildDocument(ds))
}

func TestPipeline_RunsOrderedStepsToCompletion(t *testing.T) {
	c := loadConfig(t, testDoc)
	ds := newInstance(t)
	res := resolveOps(t, c, ds)
	require.False(t, res.Skipped)

	store := mapping.NewMemoryStore()
	p := pipeline.New(ds, res.Ops, store)
	result := p.Run(context.Background())

	require.Equal(t, pipeline.ResultDone, result.Kind)
	assert.Equal(t, "1.2.840.10008.1.2.1", result.Transcode)

	studyDate, err := ds.Get(tag.StudyDate)
	require.NoError(t, err)
	// The shift is drawn from [-10, +10] days, zero included.
	assert.Regexp(t, `^202001(0[5-9]|1[0-9]|2[0-5])$`, studyDate.Value().String())

	addedElem, err := ds.Get(tag.PatientIdentityRemoved)
	require.NoError(t, err)
	assert.Equal(t, "YES", addedElem.Value().String())

	assert.False(t, ds.Contains(tag.ReferringPhysicianAddress))
}

func TestPipeline_ShiftDateTime_SameScopeSameShift(t *testing.T) {
	c := loadConfig(t, testDoc)

	ds1 := newInstance(t)
	ds2 := newInstance(t)
	require.NoError(t, ds2.Add(strElem(t, tag.StudyDate, vr.Date, "20200115")))
	require.NoError(t, ds2.Add(strElem(t, tag.PatientID, vr.LongString, "PAT1")))

	store := mapping.NewMemoryStore()

	res1 := resolveOps(t, c, ds1)
	p1 := pipeline.New(ds1, res1.Ops, store)
	require.Equal(t, pipeline.ResultDone, p1.Run(context.Background()).Kind)

	res2 := resolveOps(t, c, ds2)
	p2 := pipeline.New(ds2, res2.Ops, store)
	require.Equal(t, pipeline.ResultDone, p2.Run(context.Background()).Kind)

	d1, err := ds1.Get(tag.StudyDate)
	require.NoError(t, err)
	d2, err := ds2.Get(tag.StudyDate)
	require.NoError(t, err)
	assert.Equal(t, d1.Value().String(), d2.Value().String())
}

func TestPipeline_RandomizeUID_ReusesAcrossInstances(t *testing.T) {
	c := loadConfig(t, testDoc)
	store := mapping.NewMemoryStore()

	ds1 := newInstance(t)
	res1 := resolveOps(t, c, ds1)
	p1 := pipeline.New(ds1, res1.Ops, store)
	require.Equal(t, pipeline.ResultDone, p1.Run(context.Background()).Kind)

	ds2 := dicom.NewDataSet()
	require.NoError(t, ds2.Add(strElem(t, tag.StudyInstanceUID, vr.UniqueIdentifier, "1.2.3.1")))
	require.NoError(t, ds2.Add(strElem(t, tag.TransferSyntaxUID, vr.UniqueIdentifier, "1.2.840.10008.1.2")))
	res2 := resolveOps(t, c, ds2)
	p2 := pipeline.New(ds2, res2.Ops, store)
	require.Equal(t, pipeline.ResultDone, p2.Run(context.Background()).Kind)

	u1, err := ds1.Get(tag.StudyInstanceUID)
	require.NoError(t, err)
	u2, err := ds2.Get(tag.StudyInstanceUID)
	require.NoError(t, err)
	assert.Equal(t, u1.Value().String(), u2.Value().String())
	assert.NotEqual(t, "1.2.3.1", u1.Value().String())
}

const shiftUnitsDoc = `{
  "Labels": [{ "Name": "CT" }],
  "ScopeToForward": { "Labels": ["ALL"] },
  "Transformations": [
    {
      "Scope": { "Labels": ["ALL"] },
      "ShiftDateTime": [
        { "TagPatterns": ["StudyDate", "StudyTime", "AcquisitionDateTime"], "ShiftBy": 10 }
      ]
    }
  ]
}`

func TestPipeline_ShiftDateTime_UsesDaysForDADateAndSecondsForTMAndDT(t *testing.T) {
	c := loadConfig(t, shiftUnitsDoc)
	ds := dicom.NewDataSet()
	require.NoError(t, ds.Add(strElem(t, tag.TransferSyntaxUID, vr.UniqueIdentifier, "1.2.840.10008.1.2")))
	require.NoError(t, ds.Add(strElem(t, tag.StudyDate, vr.Date, "20200115")))
	require.NoError(t, ds.Add(strElem(t, tag.StudyTime, vr.Time, "120000")))
	require.NoError(t, ds.Add(strElem(t, tag.AcquisitionDateTime, vr.DateTime, "20200115120000")))

	res := resolveOps(t, c, ds)
	p := pipeline.New(ds, res.Ops, mapping.NewMemoryStore())
	require.Equal(t, pipeline.ResultDone, p.Run(context.Background()).Kind)

	studyDate, err := ds.Get(tag.StudyDate)
	require.NoError(t, err)
	// A +-10 day shift on 2020-01-15 always stays within January.
	assert.Regexp(t, `^202001(0[1-9]|1[0-9]|2[0-5])$`, studyDate.Value().String())

	studyTime, err := ds.Get(tag.StudyTime)
	require.NoError(t, err)
	// A +-10 second shift (zero included) keeps 12:00:00 within 11:59:50-12:00:10.
	assert.Regexp(t, `^(1159[5-9][0-9]|1200(0[0-9]|10))$`, studyTime.Value().String())

	acqDT, err := ds.Get(tag.AcquisitionDateTime)
	require.NoError(t, err)
	assert.Regexp(t, `^20200115(1159[5-9][0-9]|1200(0[0-9]|10))$`, acqDT.Value().String())
	// A +-10 second shift on noon never crosses a day boundary.
	assert.Regexp(t, `^20200115`, acqDT.Value().String())
}

const randomizeTextLengthDoc = `{
  "Labels": [{ "Name": "CT" }],
  "ScopeToForward": { "Labels": ["ALL"] },
  "Transformations": [
    {
      "Scope": { "Labels": ["ALL"] },
      "RandomizeText": [
        { "TagPatterns": "OtherPatientIDs", "IgnoreCase": true }
      ]
    }
  ]
}`

func TestPipeline_RandomizeText_FixedEightCharsAndIgnoreCaseSharesMapping(t *testing.T) {
	c := loadConfig(t, randomizeTextLengthDoc)
	store := mapping.NewMemoryStore()

	ds1 := dicom.NewDataSet()
	require.NoError(t, ds1.Add(strElem(t, tag.TransferSyntaxUID, vr.UniqueIdentifier, "1.2.840.10008.1.2")))
	require.NoError(t, ds1.Add(strElem(t, tag.OtherPatientIDs, vr.LongString, "ABC")))
	res1 := resolveOps(t, c, ds1)
	p1 := pipeline.New(ds1, res1.Ops, store)
	require.Equal(t, pipeline.ResultDone, p1.Run(context.Background()).Kind)

	out1, err := ds1.Get(tag.OtherPatientIDs)
	require.NoError(t, err)
	assert.Len(t, out1.Value().String(), 8)

	ds2 := dicom.NewDataSet()
	require.NoError(t, ds2.Add(strElem(t, tag.TransferSyntaxUID, vr.UniqueIdentifier, "1.2.840.10008.1.2")))
	require.NoError(t, ds2.Add(strElem(t, tag.OtherPatientIDs, vr.LongString, "abc")))
	res2 := resolveOps(t, c, ds2)
	p2 := pipeline.New(ds2, res2.Ops, store)
	require.Equal(t, pipeline.ResultDone, p2.Run(context.Background()).Kind)

	out2, err := ds2.Get(tag.OtherPatientIDs)
	require.NoError(t, err)
	assert.Equal(t, out1.Value().String(), out2.Value().String(), "IgnoreCase folds ABC and abc onto the same mapping entry")
}

const randomizeSOPUIDDoc = `{
  "Labels": [{ "Name": "CT" }],
  "ScopeToForward": { "Labels": ["ALL"] },
  "Transformations": [
    {
      "Scope": { "Labels": ["ALL"] },
      "RandomizeUID": [
        { "TagPatterns": ["{UI}"] }
      ]
    }
  ]
}`

func TestPipeline_RandomizeUID_PropagatesToMediaStorageSOPInstanceUID(t *testing.T) {
	c := loadConfig(t, randomizeSOPUIDDoc)
	ds := dicom.NewDataSet()
	require.NoError(t, ds.Add(strElem(t, tag.TransferSyntaxUID, vr.UniqueIdentifier, "1.2.840.10008.1.2")))
	require.NoError(t, ds.Add(strElem(t, tag.SOPInstanceUID, vr.UniqueIdentifier, "1.2.3.1.1.1")))
	require.NoError(t, ds.Add(strElem(t, tag.MediaStorageSOPInstanceUID, vr.UniqueIdentifier, "1.2.3.1.1.1")))

	res := resolveOps(t, c, ds)
	p := pipeline.New(ds, res.Ops, mapping.NewMemoryStore())
	require.Equal(t, pipeline.ResultDone, p.Run(context.Background()).Kind)

	sopUID, err := ds.Get(tag.SOPInstanceUID)
	require.NoError(t, err)
	msSopUID, err := ds.Get(tag.MediaStorageSOPInstanceUID)
	require.NoError(t, err)
	assert.Equal(t, sopUID.Value().String(), msSopUID.Value().String())
	assert.NotEqual(t, "1.2.3.1.1.1", sopUID.Value().String())
}

func TestPipeline_TranscodeSuppressedWhenAlreadyAtDestination(t *testing.T) {
	c := loadConfig(t, testDoc)
	ds := newInstance(t)
	require.NoError(t, ds.Add(strElem(t, tag.TransferSyntaxUID, vr.UniqueIdentifier, "1.2.840.10008.1.2.1")))

	res := resolveOps(t, c, ds)
	store := mapping.NewMemoryStore()
	p := pipeline.New(ds, res.Ops, store)
	result := p.Run(context.Background())

	require.Equal(t, pipeline.ResultDone, result.Kind)
	assert.Empty(t, result.Transcode)
}

const pixelEditDoc = `{
  "Labels": [{ "Name": "CT" }],
  "ScopeToForward": { "Labels": ["ALL"] },
  "Transformations": [
    {
      "Scope": { "Labels": ["ALL"] },
      "RemoveBurnedInAnnotations": [
        { "Type": "Manual", "BoxCoordinates": [[0, 0, 2, 2]] }
      ]
    }
  ]
}`

func pixelInstance(t *testing.T) *dicom.DataSet {
	t.Helper()
	ds := dicom.NewDataSet()
	require.NoError(t, ds.Add(strElem(t, tag.TransferSyntaxUID, vr.UniqueIdentifier, "1.2.840.10008.1.2.1")))

	mustUS := func(tg tag.Tag, n int64) *element.Element {
		v, err := value.NewIntValue(vr.UnsignedShort, []int64{n})
		require.NoError(t, err)
		e, err := element.NewElement(tg, vr.UnsignedShort, v)
		require.NoError(t, err)
		return e
	}
	require.NoError(t, ds.Add(mustUS(tag.Rows, 4)))
	require.NoError(t, ds.Add(mustUS(tag.Columns, 4)))
	require.NoError(t, ds.Add(mustUS(tag.BitsAllocated, 8)))
	require.NoError(t, ds.Add(mustUS(tag.BitsStored, 8)))
	require.NoError(t, ds.Add(mustUS(tag.HighBit, 7)))
	require.NoError(t, ds.Add(mustUS(tag.PixelRepresentation, 0)))
	require.NoError(t, ds.Add(mustUS(tag.SamplesPerPixel, 1)))
	require.NoError(t, ds.Add(strElem(t, tag.PhotometricInterpretation, vr.CodeString, "MONOCHROME2")))

	data := make([]byte, 16)
	for i := range data {
		data[i] = 0xFF
	}
	pixVal, err := value.NewBytesValue(vr.OtherByte, data)
	require.NoError(t, err)
	pixElem, err := element.NewElement(tag.PixelData, vr.OtherByte, pixVal)
	require.NoError(t, err)
	require.NoError(t, ds.Add(pixElem))

	return ds
}

func planarPixelInstance(t *testing.T) *dicom.DataSet {
	t.Helper()
	ds := dicom.NewDataSet()
	require.NoError(t, ds.Add(strElem(t, tag.TransferSyntaxUID, vr.UniqueIdentifier, "1.2.840.10008.1.2.1")))

	mustUS := func(tg tag.Tag, n int64) *element.Element {
		v, err := value.NewIntValue(vr.UnsignedShort, []int64{n})
		require.NoError(t, err)
		e, err := element.NewElement(tg, vr.UnsignedShort, v)
		require.NoError(t, err)
		return e
	}
	require.NoError(t, ds.Add(mustUS(tag.Rows, 2)))
	require.NoError(t, ds.Add(mustUS(tag.Columns, 2)))
	require.NoError(t, ds.Add(mustUS(tag.BitsAllocated, 8)))
	require.NoError(t, ds.Add(mustUS(tag.BitsStored, 8)))
	require.NoError(t, ds.Add(mustUS(tag.HighBit, 7)))
	require.NoError(t, ds.Add(mustUS(tag.PixelRepresentation, 0)))
	require.NoError(t, ds.Add(mustUS(tag.SamplesPerPixel, 3)))
	require.NoError(t, ds.Add(mustUS(tag.PlanarConfiguration, 1)))
	require.NoError(t, ds.Add(strElem(t, tag.PhotometricInterpretation, vr.CodeString, "RGB")))

	// 2x2 RGB, planar: R plane then G plane then B plane, 4 bytes each.
	data := make([]byte, 12)
	for i := range data {
		data[i] = 0xFF
	}
	pixVal, err := value.NewBytesValue(vr.OtherByte, data)
	require.NoError(t, err)
	pixElem, err := element.NewElement(tag.PixelData, vr.OtherByte, pixVal)
	require.NoError(t, err)
	require.NoError(t, ds.Add(pixElem))

	return ds
}

func TestPipeline_RemoveBurnedInAnnotations_PlanarInputWritesBackInterleavedConfig(t *testing.T) {
	c := loadConfig(t, pixelEditDoc)
	ds := planarPixelInstance(t)
	res := resolveOps(t, c, ds)
	require.True(t, res.Ops.NeedsPixelEdit())

	p := pipeline.New(ds, res.Ops, mapping.NewMemoryStore())
	result := p.Run(context.Background())
	require.Equal(t, pipeline.ResultDone, result.Kind)

	planarConfig, err := ds.Get(tag.PlanarConfiguration)
	require.NoError(t, err)
	assert.Equal(t, "0", planarConfig.Value().String(),
		"PlanarConfiguration tag must reflect the interleaved layout ConvertPlanarConfiguration produced")
}

func TestPipeline_RemoveBurnedInAnnotations_ManualBoxZeroesRegion(t *testing.T) {
	c := loadConfig(t, pixelEditDoc)
	ds := pixelInstance(t)
	res := resolveOps(t, c, ds)
	require.True(t, res.Ops.NeedsPixelEdit())
	require.False(t, res.Ops.NeedsOCR())

	p := pipeline.New(ds, res.Ops, mapping.NewMemoryStore())
	needs, _, err := p.NeedsTranscodingIn()
	require.NoError(t, err)
	require.False(t, needs, "instance is already uncompressed little-endian")

	result := p.Run(context.Background())
	require.Equal(t, pipeline.ResultDone, result.Kind)

	elem, err := ds.Get(tag.PixelData)
	require.NoError(t, err)
	data := elem.Value().Bytes()
	// box [0,0,2,2) exclusive covers rows/cols 0-1: 2x2 of a 4x4 grid.
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			idx := y*4 + x
			if x < 2 && y < 2 {
				assert.Equalf(t, byte(0), data[idx], "expected zeroed at (%d,%d)", x, y)
			} else {
				assert.Equalf(t, byte(0xFF), data[idx], "expected untouched at (%d,%d)", x, y)
			}
		}
	}
}
