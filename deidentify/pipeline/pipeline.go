// Package pipeline implements the ordered transformation pipeline and its
// caller-driven state machine: given a loaded instance and the op-set
// deidentify/labels resolved for it, run the 7 transformation steps in
// order, pausing for transcode/OCR round-trips the pipeline itself never
// performs.
//
// Grounded on original_source's dicom.py DicomDeidentifier: same step
// order (ShiftDateTime, RandomizeText, RandomizeUID, AddTags,
// RemoveBurnedInAnnotations, DeleteTags, Transcode), same
// is_transcoding_needed/is_ocr_needed/add_box_coordinates pre-flight
// signals, same "capture the pre-transform PatientID/StudyInstanceUID/
// SeriesInstanceUID/SOPInstanceUID once" rule for ReuseMapping scoping
// (done here at construction time rather than lazily on first
// RandomizeText match, since every identifier is known as soon as the
// instance is loaded).
package pipeline

import (
	"context"
	"fmt"

	"github.com/codeninja55/go-radx/deidentify/engineerr"
	"github.com/codeninja55/go-radx/deidentify/labels"
	"github.com/codeninja55/go-radx/deidentify/mapping"
	"github.com/codeninja55/go-radx/deidentify/mask"
	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/uid"
)

// State is a node of the pipeline's per-instance state machine. The
// pipeline is constructed already LOADED (parsing the byte stream is the
// caller's job); CREATED has no observable equivalent on this type.
type State int

const (
	StateLoaded State = iota
	StateAwaitTranscode
	StateAwaitOCR
	StateTransformed
	StateDoneOK
	StateDoneSkip
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "LOADED"
	case StateAwaitTranscode:
		return "AWAIT_TRANSCODE"
	case StateAwaitOCR:
		return "AWAIT_OCR"
	case StateTransformed:
		return "TRANSFORMED"
	case StateDoneOK:
		return "DONE_OK"
	case StateDoneSkip:
		return "DONE_SKIP"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// ResultKind classifies what Run did or what it still needs from the
// caller before it can make further progress.
type ResultKind int

const (
	// ResultNeedsTranscode means the caller must reload the instance
	// using a decoded (uncompressed little-endian) transfer syntax and
	// call ResumeAfterTranscode, then call Run again.
	ResultNeedsTranscode ResultKind = iota
	// ResultNeedsOCR means the caller must run an OCR pass, call
	// AddBoxCoordinates with whatever it finds (possibly none), then
	// call Run again.
	ResultNeedsOCR
	// ResultDone means every step ran; Transcode (if non-empty) is the
	// destination transfer syntax the caller should emit to.
	ResultDone
	// ResultSkipped means Skip was called instead of running steps.
	ResultSkipped
	ResultFailed
)

// Result is what Run (or Skip) returns.
type Result struct {
	Kind          ResultKind
	CurrentSyntax uid.UID // populated on ResultNeedsTranscode
	Transcode     string  // populated on ResultDone, per op-set's Transcode
	Err           error
}

// Pipeline runs the 7-step transformation algorithm against one loaded
// instance, threading the caller through transcode/OCR round-trips.
type Pipeline struct {
	ds    *dicom.DataSet
	ops   labels.OpSet
	store mapping.Store

	state State
	err   error

	// Instance identifiers captured once, before any step runs, so that
	// a SamePatient/SameStudy/SameSeries/SameInstance ReuseMapping scope
	// always keys off the original value even after RandomizeText or
	// RandomizeUID has already replaced it on a later matching element.
	patientID, studyUID, seriesUID, instanceUID string

	stepsOneToFourDone bool
	ocrBoxes           []mask.Rect
	ocrDone            bool
	lastNeededSyntax   uid.UID
}

// New builds a Pipeline for ds (already parsed, LOADED) against ops (the
// op-set deidentify/labels.Evaluate resolved for this instance) and
// store (the shared mapping-store collaborator every identifier-
// replacing step reads through).
func New(ds *dicom.DataSet, ops labels.OpSet, store mapping.Store) *Pipeline {
	return &Pipeline{
		ds:          ds,
		ops:         ops,
		store:       store,
		state:       StateLoaded,
		patientID:   elemString(ds, tag.PatientID),
		studyUID:    elemString(ds, tag.StudyInstanceUID),
		seriesUID:   elemString(ds, tag.SeriesInstanceUID),
		instanceUID: elemString(ds, tag.SOPInstanceUID),
	}
}

// State reports the pipeline's current state.
func (p *Pipeline) State() State { return p.state }

// ResumeAfterTranscode supplies the instance reloaded under a decoded
// transfer syntax after a ResultNeedsTranscode response, per spec's
// "initial_load=false" resume rule: labels and the op-set are not
// recomputed, only the dataset reference changes.
func (p *Pipeline) ResumeAfterTranscode(ds *dicom.DataSet) {
	p.ds = ds
	if p.state == StateAwaitTranscode {
		p.state = StateLoaded
	}
}

// AddBoxCoordinates records OCR-discovered rectangles to mask in
// addition to any operator-supplied RemoveBurnedInAnnotations box
// coordinates. Each box is (left, top, right, bottom) with the right/
// bottom edge exclusive, matching the convention DICOM query/export
// tooling in this codebase's reference material already uses for pixel
// regions.
func (p *Pipeline) AddBoxCoordinates(boxes [][4]int) {
	for _, b := range boxes {
		p.ocrBoxes = append(p.ocrBoxes, exclusiveBoxToRect(b))
	}
	p.ocrDone = true
	if p.state == StateAwaitOCR {
		p.state = StateLoaded
	}
}

func exclusiveBoxToRect(b [4]int) mask.Rect {
	return mask.Rect{X0: b[0], Y0: b[1], X1: b[2] - 1, Y1: b[3] - 1}
}

// NeedsTranscodingIn reports whether the instance must be reloaded under
// a decoded transfer syntax before step 5 can run: true iff the op-set
// needs a pixel edit and the instance's current transfer syntax isn't
// already uncompressed little-endian.
func (p *Pipeline) NeedsTranscodingIn() (bool, uid.UID, error) {
	if !p.ops.NeedsPixelEdit() {
		return false, uid.UID{}, nil
	}
	current, err := p.currentTransferSyntax()
	if err != nil {
		return false, uid.UID{}, err
	}
	needs := current != uid.ImplicitVRLittleEndian && current != uid.ExplicitVRLittleEndian
	return needs, current, nil
}

// NeedsOCR reports whether the op-set contains an OCR-type
// RemoveBurnedInAnnotations entry, meaning the caller must run OCR and
// call AddBoxCoordinates before step 5.
func (p *Pipeline) NeedsOCR() bool {
	return p.ops.NeedsOCR()
}

func (p *Pipeline) currentTransferSyntax() (uid.UID, error) {
	elem, err := p.ds.Get(tag.TransferSyntaxUID)
	if err != nil {
		return uid.UID{}, engineerr.PreconditionFailed("RemoveBurnedInAnnotations", "TransferSyntaxUID not present")
	}
	u, err := uid.Parse(elem.Value().String())
	if err != nil {
		return uid.UID{}, engineerr.PreconditionFailed("RemoveBurnedInAnnotations", fmt.Sprintf("malformed TransferSyntaxUID: %v", err))
	}
	return u, nil
}

// Skip transitions a forwarded-but-excluded instance straight to
// DONE_SKIP without running any step, for callers that still want a
// Pipeline handle for a skipped instance rather than special-casing it.
func (p *Pipeline) Skip() Result {
	p.state = StateDoneSkip
	return Result{Kind: ResultSkipped}
}

// Run advances the pipeline as far as it can without caller input and
// reports what happened. Call it repeatedly: a ResultNeedsTranscode or
// ResultNeedsOCR response means call the matching Resume/Add method and
// call Run again; a terminal response (ResultDone/ResultFailed) is
// returned again unchanged on any further call.
func (p *Pipeline) Run(ctx context.Context) Result {
	switch p.state {
	case StateDoneOK:
		return Result{Kind: ResultDone, Transcode: p.transcodeTarget()}
	case StateDoneSkip:
		return Result{Kind: ResultSkipped}
	case StateFailed:
		return Result{Kind: ResultFailed, Err: p.err}
	case StateAwaitTranscode:
		return Result{Kind: ResultNeedsTranscode, CurrentSyntax: p.lastNeededSyntax}
	case StateAwaitOCR:
		return Result{Kind: ResultNeedsOCR}
	}

	if !p.stepsOneToFourDone {
		if err := p.runShiftDateTime(ctx); err != nil {
			return p.fail(err)
		}
		if err := p.runRandomizeText(ctx); err != nil {
			return p.fail(err)
		}
		if err := p.runRandomizeUID(ctx); err != nil {
			return p.fail(err)
		}
		if err := p.runAddTags(ctx); err != nil {
			return p.fail(err)
		}
		p.stepsOneToFourDone = true
	}

	if needs, current, err := p.NeedsTranscodingIn(); err != nil {
		return p.fail(err)
	} else if needs {
		p.state = StateAwaitTranscode
		p.lastNeededSyntax = current
		return Result{Kind: ResultNeedsTranscode, CurrentSyntax: current}
	}

	if p.ops.NeedsOCR() && !p.ocrDone {
		p.state = StateAwaitOCR
		return Result{Kind: ResultNeedsOCR}
	}

	if err := p.runRemoveBurnedInAnnotations(ctx); err != nil {
		return p.fail(err)
	}
	if err := p.runDeleteTags(ctx); err != nil {
		return p.fail(err)
	}

	p.state = StateTransformed
	p.state = StateDoneOK
	return Result{Kind: ResultDone, Transcode: p.transcodeTarget()}
}

// transcodeTarget suppresses the Transcode signal when the instance's
// current transfer syntax already matches the configured destination, per
// dicom.py's apply_transformations final return (it never asks the caller
// to re-export under the same syntax it's already in).
func (p *Pipeline) transcodeTarget() string {
	if p.ops.Transcode == "" {
		return ""
	}
	current, err := p.currentTransferSyntax()
	if err != nil {
		return p.ops.Transcode
	}
	if current.String() == p.ops.Transcode {
		return ""
	}
	return p.ops.Transcode
}

func (p *Pipeline) fail(err error) Result {
	p.state = StateFailed
	p.err = err
	return Result{Kind: ResultFailed, Err: err}
}

func elemString(ds *dicom.DataSet, t tag.Tag) string {
	elem, err := ds.Get(t)
	if err != nil {
		return ""
	}
	return elem.Value().String()
}
