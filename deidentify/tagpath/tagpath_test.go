package tagpath_test

import (
	"testing"

	"github.com/codeninja55/go-radx/deidentify/tagpath"
	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustElem(t *testing.T, tg tag.Tag, v vr.VR, val value.Value) *element.Element {
	t.Helper()
	e, err := element.NewElement(tg, v, val)
	require.NoError(t, err)
	return e
}

func TestParseTagPath(t *testing.T) {
	t.Run("keyword path", func(t *testing.T) {
		p, err := tagpath.ParseTagPath("PatientName")
		require.NoError(t, err)
		require.Len(t, p.Steps, 1)
		assert.Equal(t, tag.New(0x0010, 0x0010), p.Steps[0].Tag)
		assert.False(t, p.Steps[0].HasIndex)
	})

	t.Run("hex path with item index", func(t *testing.T) {
		p, err := tagpath.ParseTagPath("00081115[0].0020000E")
		require.NoError(t, err)
		require.Len(t, p.Steps, 2)
		assert.Equal(t, tag.New(0x0008, 0x1115), p.Steps[0].Tag)
		assert.True(t, p.Steps[0].HasIndex)
		assert.Equal(t, 0, p.Steps[0].Index)
		assert.Equal(t, tag.New(0x0020, 0x000E), p.Steps[1].Tag)
	})

	t.Run("broadcast index", func(t *testing.T) {
		p, err := tagpath.ParseTagPath("00081115[%].0020000D")
		require.NoError(t, err)
		assert.True(t, p.Steps[0].HasIndex)
	})

	t.Run("empty path is an error", func(t *testing.T) {
		_, err := tagpath.ParseTagPath("")
		assert.Error(t, err)
	})

	t.Run("unknown keyword is an error", func(t *testing.T) {
		_, err := tagpath.ParseTagPath("NotARealKeyword")
		assert.Error(t, err)
	})
}

func TestResolveParents(t *testing.T) {
	root := dicom.NewDataSet()

	item1 := dicom.NewDataSet()
	sv1, _ := value.NewStringValue(vr.LongString, []string{"one"})
	require.NoError(t, item1.Add(mustElem(t, tag.New(0x0040, 0xA160), vr.LongString, sv1)))

	seqVal := dicom.NewSequenceValue([]*dicom.DataSet{item1}, true)
	seqElem, err := element.NewElement(tag.New(0x0008, 0x1115), vr.SequenceOfItems, seqVal)
	require.NoError(t, err)
	require.NoError(t, root.Add(seqElem))

	path, err := tagpath.ParseTagPath("00081115[0].0040A160")
	require.NoError(t, err)

	refs, err := tagpath.ResolveParents(root, path)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, tag.New(0x0040, 0xA160), refs[0].Leaf)
	assert.Same(t, item1, refs[0].Parent)
}

func TestResolveParents_BroadcastOverItems(t *testing.T) {
	root := dicom.NewDataSet()

	item1 := dicom.NewDataSet()
	item2 := dicom.NewDataSet()
	seqVal := dicom.NewSequenceValue([]*dicom.DataSet{item1, item2}, true)
	seqElem, err := element.NewElement(tag.New(0x0008, 0x1115), vr.SequenceOfItems, seqVal)
	require.NoError(t, err)
	require.NoError(t, root.Add(seqElem))

	path, err := tagpath.ParseTagPath("00081115[%].0040A160")
	require.NoError(t, err)

	refs, err := tagpath.ResolveParents(root, path)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, item1, refs[0].Parent)
	assert.Equal(t, item2, refs[1].Parent)
}

func TestParseTagPathPattern(t *testing.T) {
	t.Run("top-level scope", func(t *testing.T) {
		p, err := tagpath.ParseTagPathPattern("PatientName")
		require.NoError(t, err)
		assert.Equal(t, tagpath.ScopeTop, p.Scope)
	})

	t.Run("any-depth scope", func(t *testing.T) {
		p, err := tagpath.ParseTagPathPattern("*/{UI}")
		require.NoError(t, err)
		assert.Equal(t, tagpath.ScopeAny, p.Scope)
		require.Len(t, p.Steps, 1)
	})

	t.Run("below-top scope", func(t *testing.T) {
		p, err := tagpath.ParseTagPathPattern("+/PatientName")
		require.NoError(t, err)
		assert.Equal(t, tagpath.ScopeBelow, p.Scope)
	})

	t.Run("hex wildcard pattern", func(t *testing.T) {
		_, err := tagpath.ParseTagPathPattern("0010XX10")
		require.NoError(t, err)
	})
}

func TestEnumerateMatching(t *testing.T) {
	ds := dicom.NewDataSet()
	nameVal, _ := value.NewStringValue(vr.PersonName, []string{"Doe^John"})
	require.NoError(t, ds.Add(mustElem(t, tag.New(0x0010, 0x0010), vr.PersonName, nameVal)))

	uidVal, _ := value.NewStringValue(vr.UniqueIdentifier, []string{"1.2.3"})
	require.NoError(t, ds.Add(mustElem(t, tag.New(0x0020, 0x000D), vr.UniqueIdentifier, uidVal)))

	includes := []tagpath.TagPathPattern{mustPattern(t, "*/{UI}")}
	matches := tagpath.EnumerateMatching(ds, includes, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, tag.New(0x0020, 0x000D), matches[0].Element.Tag())
}

func TestEnumerateMatching_ExcludeDominates(t *testing.T) {
	ds := dicom.NewDataSet()
	nameVal, _ := value.NewStringValue(vr.PersonName, []string{"Doe^John"})
	require.NoError(t, ds.Add(mustElem(t, tag.New(0x0010, 0x0010), vr.PersonName, nameVal)))

	includes := []tagpath.TagPathPattern{mustPattern(t, "PatientName")}
	excludes := []tagpath.TagPathPattern{mustPattern(t, "PatientName")}
	matches := tagpath.EnumerateMatching(ds, includes, excludes)
	assert.Empty(t, matches)
}

func mustPattern(t *testing.T, s string) tagpath.TagPathPattern {
	t.Helper()
	p, err := tagpath.ParseTagPathPattern(s)
	require.NoError(t, err)
	return p
}
