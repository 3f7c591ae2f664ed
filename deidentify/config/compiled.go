package config

import (
	"github.com/codeninja55/go-radx/deidentify/tagpath"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
)

// Each op type carries its compiled tag-path patterns (and, for AddTags,
// its compiled path/VR/value) as unexported fields populated by
// Config.Validate. Accessors below expose them read-only to callers like
// deidentify/pipeline that run after a successful Validate.

type compiledPatterns struct {
	patterns       []tagpath.TagPathPattern
	exceptPatterns []tagpath.TagPathPattern
}

func (c compiledPatterns) Patterns() []tagpath.TagPathPattern       { return c.patterns }
func (c compiledPatterns) ExceptPatterns() []tagpath.TagPathPattern { return c.exceptPatterns }

func (op *ShiftDateTimeOp) setCompiled(p compiledPatterns) { op.compiled = p }
func (op *RandomizeTextOp) setCompiled(p compiledPatterns) { op.compiled = p }
func (op *RandomizeUIDOp) setCompiled(p compiledPatterns)  { op.compiled = p }
func (op *DeleteTagsOp) setCompiled(p compiledPatterns)    { op.compiled = p }

func (op *ShiftDateTimeOp) Patterns() []tagpath.TagPathPattern       { return op.compiled.Patterns() }
func (op *ShiftDateTimeOp) ExceptPatterns() []tagpath.TagPathPattern { return op.compiled.ExceptPatterns() }

func (op *RandomizeTextOp) Patterns() []tagpath.TagPathPattern       { return op.compiled.Patterns() }
func (op *RandomizeTextOp) ExceptPatterns() []tagpath.TagPathPattern { return op.compiled.ExceptPatterns() }

func (op *RandomizeUIDOp) Patterns() []tagpath.TagPathPattern       { return op.compiled.Patterns() }
func (op *RandomizeUIDOp) ExceptPatterns() []tagpath.TagPathPattern { return op.compiled.ExceptPatterns() }

func (op *DeleteTagsOp) Patterns() []tagpath.TagPathPattern       { return op.compiled.Patterns() }
func (op *DeleteTagsOp) ExceptPatterns() []tagpath.TagPathPattern { return op.compiled.ExceptPatterns() }

func (op *AddTagsOp) CompiledPath() tagpath.TagPath { return op.compiledPath }
func (op *AddTagsOp) CompiledVR() vr.VR             { return op.compiledVR }
func (op *AddTagsOp) CompiledValue() value.Value    { return op.compiledValue }
