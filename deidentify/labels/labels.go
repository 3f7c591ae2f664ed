// Package labels implements the label/scope evaluator: for one instance,
// determine which labels match, whether the instance is forwarded at
// all, and the combined op-set the transformation pipeline should run.
//
// Grounded on original_source's dicom.py
// (_find_matching_labels/_do_labels_match_scope_rules): same seed label
// ("ALL"), same exclude-dominates-then-include evaluation order.
package labels

import (
	"github.com/codeninja55/go-radx/deidentify/config"
	"github.com/codeninja55/go-radx/deidentify/query"
)

// allLabel is the implicit label every instance matches.
const allLabel = "ALL"

// OpSet is the combined set of transformation ops an instance should run,
// assembled by walking Transformations in declaration order and merging
// every entry whose scope is satisfied.
type OpSet struct {
	ShiftDateTime             []config.ShiftDateTimeOp
	RandomizeText             []config.RandomizeTextOp
	RandomizeUID              []config.RandomizeUIDOp
	AddTags                   []config.AddTagsOp
	RemoveBurnedInAnnotations []config.RemoveBurnedInAnnotationsOp
	DeleteTags                []config.DeleteTagsOp

	// Transcode holds the last matching rule's Transcode value; later
	// rules overwrite earlier ones, per spec.
	Transcode string
}

// NeedsPixelEdit reports whether any RemoveBurnedInAnnotations entry is
// present in the op-set.
func (s OpSet) NeedsPixelEdit() bool {
	return len(s.RemoveBurnedInAnnotations) > 0
}

// NeedsOCR reports whether any RemoveBurnedInAnnotations entry requires
// OCR-discovered boxes.
func (s OpSet) NeedsOCR() bool {
	for _, e := range s.RemoveBurnedInAnnotations {
		if e.Type == "OCR" {
			return true
		}
	}
	return false
}

// Result is the outcome of evaluating one instance against a validated
// Config.
type Result struct {
	Matching []string
	Skipped  bool
	Ops      OpSet
}

// Evaluate runs the 5-step label/scope algorithm from spec §4.D against
// doc, the instance's document view (query.BuildDocument).
func Evaluate(cfg *config.Config, doc query.Document) Result {
	matching := []string{allLabel}
	for i := range cfg.Labels {
		l := &cfg.Labels[i]
		if l.Predicate()(doc) {
			matching = append(matching, l.Name)
		}
	}

	matchSet := toSet(matching)

	if !Satisfies(matchSet, cfg.ScopeToForward, cfg.Categories) {
		return Result{Matching: matching, Skipped: true}
	}

	var ops OpSet
	for _, tr := range cfg.Transformations {
		if !Satisfies(matchSet, tr.Scope, cfg.Categories) {
			continue
		}
		ops.ShiftDateTime = append(ops.ShiftDateTime, tr.ShiftDateTime...)
		ops.RandomizeText = append(ops.RandomizeText, tr.RandomizeText...)
		ops.RandomizeUID = append(ops.RandomizeUID, tr.RandomizeUID...)
		ops.AddTags = append(ops.AddTags, tr.AddTags...)
		ops.RemoveBurnedInAnnotations = append(ops.RemoveBurnedInAnnotations, tr.RemoveBurnedInAnnotations...)
		ops.DeleteTags = append(ops.DeleteTags, tr.DeleteTags...)
		if tr.Transcode != "" {
			ops.Transcode = tr.Transcode
		}
	}

	return Result{Matching: matching, Skipped: false, Ops: ops}
}

// Satisfies reports whether the matching label set satisfies a scope
// rule: at least one matching label is in the resolved include set, and
// none is in the resolved exclude set. Excludes dominate.
func Satisfies(matching map[string]bool, rule config.ScopeRule, categories []config.Category) bool {
	included := make(map[string]bool)
	excluded := make(map[string]bool)

	for _, l := range rule.Labels {
		included[l] = true
	}
	for _, c := range rule.Categories {
		for _, l := range resolveCategory(categories, c) {
			included[l] = true
		}
	}
	for _, l := range rule.ExceptLabels {
		excluded[l] = true
	}
	for _, c := range rule.ExceptCategories {
		for _, l := range resolveCategory(categories, c) {
			excluded[l] = true
		}
	}

	for label := range matching {
		if excluded[label] {
			return false
		}
	}
	for label := range matching {
		if included[label] {
			return true
		}
	}
	return false
}

// resolveCategory expands a category name into its label list. "ALL" is
// the implicit category containing only the implicit "ALL" label.
func resolveCategory(categories []config.Category, name string) []string {
	if name == allLabel {
		return []string{allLabel}
	}
	for _, c := range categories {
		if c.Name == name {
			return c.Labels
		}
	}
	return nil
}

func toSet(labels []string) map[string]bool {
	out := make(map[string]bool, len(labels))
	for _, l := range labels {
		out[l] = true
	}
	return out
}
