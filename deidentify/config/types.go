// Package config parses and validates the de-identification rule
// document: labels, categories, scope rules, and the ordered
// transformation pipeline they gate.
//
// Grounded on the teacher's own go-playground/validator/v10 struct-tag
// usage (fhir/validation/validator.go) for shape rules, and on
// original_source's validation.py composable-checker style for the
// cross-reference rules struct tags cannot express.
package config

import (
	"github.com/codeninja55/go-radx/deidentify/query"
	"github.com/codeninja55/go-radx/deidentify/tagpath"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
)

// Label is `{ name, optional filter expression }`. A label with no
// filter matches every instance.
type Label struct {
	Name             string `json:"Name" validate:"required"`
	DICOMQueryFilter string `json:"DICOMQueryFilter,omitempty"`

	predicate query.Predicate
}

// Predicate returns the compiled filter, populated by Validate. Callers
// must not invoke this before a successful Validate call.
func (l *Label) Predicate() query.Predicate { return l.predicate }

// Category is a named group of label names, used as shorthand in scope
// rules.
type Category struct {
	Name   string   `json:"Name" validate:"required"`
	Labels []string `json:"Labels" validate:"required,min=1"`
}

// ScopeRule selects a set of matching labels: satisfied iff at least one
// resolved included label is present and no resolved excluded label is
// present. Excludes dominate.
type ScopeRule struct {
	Labels           []string `json:"Labels,omitempty"`
	ExceptLabels     []string `json:"ExceptLabels,omitempty"`
	Categories       []string `json:"Categories,omitempty"`
	ExceptCategories []string `json:"ExceptCategories,omitempty"`
}

// ReuseMapping selects the mapping-store scope an identifier-replacing op
// reuses across instances.
type ReuseMapping string

const (
	ReuseAlways       ReuseMapping = "Always"
	ReuseSamePatient  ReuseMapping = "SamePatient"
	ReuseSameStudy    ReuseMapping = "SameStudy"
	ReuseSameSeries   ReuseMapping = "SameSeries"
	ReuseSameInstance ReuseMapping = "SameInstance"
)

// ShiftDateTimeOp shifts DA/DT/TM values by a random offset within
// [-ShiftBy, +ShiftBy].
type ShiftDateTimeOp struct {
	TagPatterns       TagPatternList `json:"TagPatterns" validate:"required"`
	ExceptTagPatterns TagPatternList `json:"ExceptTagPatterns,omitempty"`
	ShiftBy           int            `json:"ShiftBy"`
	ReuseMapping      ReuseMapping   `json:"ReuseMapping,omitempty" validate:"omitempty,oneof=Always SamePatient SameStudy SameSeries SameInstance"`

	compiled compiledPatterns
}

// RandomizeTextOp replaces matching text values with fresh random
// strings, optionally splitting on a separator first.
type RandomizeTextOp struct {
	TagPatterns       TagPatternList `json:"TagPatterns" validate:"required"`
	ExceptTagPatterns TagPatternList `json:"ExceptTagPatterns,omitempty"`
	Split             string         `json:"Split,omitempty"`
	IgnoreCase        bool           `json:"IgnoreCase,omitempty"`
	ReuseMapping      ReuseMapping   `json:"ReuseMapping,omitempty" validate:"omitempty,oneof=Always SamePatient SameStudy SameSeries SameInstance"`

	compiled compiledPatterns
}

// RandomizeUIDOp replaces UI-valued elements with freshly generated UIDs
// under an optional custom root.
type RandomizeUIDOp struct {
	TagPatterns       TagPatternList `json:"TagPatterns" validate:"required"`
	ExceptTagPatterns TagPatternList `json:"ExceptTagPatterns,omitempty"`
	Prefix            string         `json:"Prefix,omitempty"`

	compiled compiledPatterns
}

// AddTagsOp attaches a literal element at an exact tag path.
type AddTagsOp struct {
	Path              string `json:"Path" validate:"required"`
	VR                string `json:"VR" validate:"required,len=2"`
	Value             string `json:"Value"`
	OverwriteIfExists bool   `json:"OverwriteIfExists,omitempty"`

	compiledPath  tagpath.TagPath
	compiledVR    vr.VR
	compiledValue value.Value
}

// RemoveBurnedInAnnotationsOp masks pixel data, either from operator-
// supplied boxes (Manual) or boxes discovered by OCR at runtime.
type RemoveBurnedInAnnotationsOp struct {
	Type           string   `json:"Type" validate:"required,oneof=OCR Manual"`
	BoxCoordinates [][4]int `json:"BoxCoordinates,omitempty"`
}

// DeleteTagsOp removes or clears matching elements.
type DeleteTagsOp struct {
	TagPatterns       TagPatternList `json:"TagPatterns" validate:"required"`
	ExceptTagPatterns TagPatternList `json:"ExceptTagPatterns,omitempty"`
	Action            string         `json:"Action" validate:"required,oneof=Remove Empty"`

	compiled compiledPatterns
}

// TransformationRule gates one batch of ops behind a scope rule.
type TransformationRule struct {
	Scope                     ScopeRule                     `json:"Scope"`
	ShiftDateTime             []ShiftDateTimeOp             `json:"ShiftDateTime,omitempty" validate:"dive"`
	RandomizeText             []RandomizeTextOp             `json:"RandomizeText,omitempty" validate:"dive"`
	RandomizeUID              []RandomizeUIDOp              `json:"RandomizeUID,omitempty" validate:"dive"`
	AddTags                   []AddTagsOp                   `json:"AddTags,omitempty" validate:"dive"`
	RemoveBurnedInAnnotations []RemoveBurnedInAnnotationsOp `json:"RemoveBurnedInAnnotations,omitempty" validate:"dive"`
	DeleteTags                []DeleteTagsOp                `json:"DeleteTags,omitempty" validate:"dive"`
	Transcode                 string                        `json:"Transcode,omitempty"`
}

// Config is the full rule document.
type Config struct {
	Labels          []Label              `json:"Labels" validate:"required,dive"`
	Categories      []Category           `json:"Categories,omitempty" validate:"dive"`
	ScopeToForward  ScopeRule            `json:"ScopeToForward"`
	Transformations []TransformationRule `json:"Transformations,omitempty" validate:"dive"`
}
