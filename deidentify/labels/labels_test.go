package labels_test

import (
	"encoding/json"
	"testing"

	"github.com/codeninja55/go-radx/deidentify/config"
	"github.com/codeninja55/go-radx/deidentify/labels"
	"github.com/codeninja55/go-radx/deidentify/query"
	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T, doc string) *config.Config {
	t.Helper()
	var c config.Config
	require.NoError(t, json.Unmarshal([]byte(doc), &c))
	require.NoError(t, c.Validate())
	return &c
}

func ctDocument(t *testing.T) query.Document {
	t.Helper()
	ds := dicom.NewDataSet()
	modVal, _ := value.NewStringValue(vr.CodeString, []string{"CT"})
	modElem, err := element.NewElement(tag.New(0x0008, 0x0060), vr.CodeString, modVal)
	require.NoError(t, err)
	require.NoError(t, ds.Add(modElem))
	return query.BuildDocument(ds)
}

const docTemplate = `{
  "Labels": [
    { "Name": "CT", "DICOMQueryFilter": "Modality StrEquals CT" },
    { "Name": "MR", "DICOMQueryFilter": "Modality StrEquals MR" }
  ],
  "Categories": [
    { "Name": "Imaging", "Labels": ["CT", "MR"] }
  ],
  "ScopeToForward": %s,
  "Transformations": %s
}`

func TestEvaluate_MatchingLabelsAlwaysIncludesALL(t *testing.T) {
	c := loadConfig(t, `{"Labels":[{"Name":"CT","DICOMQueryFilter":"Modality StrEquals CT"}],"ScopeToForward":{"Labels":["ALL"]}}`)
	res := labels.Evaluate(c, ctDocument(t))
	assert.Contains(t, res.Matching, "ALL")
	assert.Contains(t, res.Matching, "CT")
}

func TestEvaluate_SkipsWhenScopeNotSatisfied(t *testing.T) {
	c := loadConfig(t, `{"Labels":[{"Name":"CT","DICOMQueryFilter":"Modality StrEquals CT"}],"ScopeToForward":{"Labels":["MR"]}}`)
	res := labels.Evaluate(c, ctDocument(t))
	assert.True(t, res.Skipped)
}

func TestEvaluate_ForwardsWhenIncludedLabelMatches(t *testing.T) {
	c := loadConfig(t, `{"Labels":[{"Name":"CT","DICOMQueryFilter":"Modality StrEquals CT"}],"ScopeToForward":{"Labels":["CT"]}}`)
	res := labels.Evaluate(c, ctDocument(t))
	assert.False(t, res.Skipped)
}

func TestEvaluate_ExcludeDominatesInclude(t *testing.T) {
	c := loadConfig(t, `{"Labels":[{"Name":"CT","DICOMQueryFilter":"Modality StrEquals CT"}],"ScopeToForward":{"Labels":["CT"],"ExceptLabels":["CT"]}}`)
	res := labels.Evaluate(c, ctDocument(t))
	assert.True(t, res.Skipped)
}

func TestEvaluate_CategoryExpansion(t *testing.T) {
	c := loadConfig(t, `{
      "Labels": [{"Name":"CT","DICOMQueryFilter":"Modality StrEquals CT"}],
      "Categories": [{"Name":"Imaging","Labels":["CT"]}],
      "ScopeToForward": {"Categories":["Imaging"]}
    }`)
	res := labels.Evaluate(c, ctDocument(t))
	assert.False(t, res.Skipped)
}

func TestEvaluate_LastTranscodeWins(t *testing.T) {
	c := loadConfig(t, `{
      "Labels": [{"Name":"CT","DICOMQueryFilter":"Modality StrEquals CT"}],
      "ScopeToForward": {"Labels":["CT"]},
      "Transformations": [
        {"Scope":{"Labels":["CT"]},"Transcode":"1.2.840.10008.1.2"},
        {"Scope":{"Labels":["CT"]},"Transcode":"1.2.840.10008.1.2.1"}
      ]
    }`)
	res := labels.Evaluate(c, ctDocument(t))
	assert.Equal(t, "1.2.840.10008.1.2.1", res.Ops.Transcode)
}

func TestEvaluate_NeedsPixelEditAndOCR(t *testing.T) {
	c := loadConfig(t, `{
      "Labels": [{"Name":"CT","DICOMQueryFilter":"Modality StrEquals CT"}],
      "ScopeToForward": {"Labels":["CT"]},
      "Transformations": [
        {"Scope":{"Labels":["CT"]},"RemoveBurnedInAnnotations":[{"Type":"OCR"}]}
      ]
    }`)
	res := labels.Evaluate(c, ctDocument(t))
	require.False(t, res.Skipped)
	assert.True(t, res.Ops.NeedsPixelEdit())
	assert.True(t, res.Ops.NeedsOCR())
}

func TestSatisfies_ALLCategoryShorthand(t *testing.T) {
	matching := map[string]bool{"ALL": true}
	rule := config.ScopeRule{Categories: []string{"ALL"}}
	assert.True(t, labels.Satisfies(matching, rule, nil))
}

func TestSatisfies_EmptyRuleNeverSatisfied(t *testing.T) {
	matching := map[string]bool{"ALL": true, "CT": true}
	assert.False(t, labels.Satisfies(matching, config.ScopeRule{}, nil))
}
