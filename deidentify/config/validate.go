package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	validatorpkg "github.com/go-playground/validator/v10"

	"github.com/codeninja55/go-radx/deidentify/engineerr"
	"github.com/codeninja55/go-radx/deidentify/query"
	"github.com/codeninja55/go-radx/deidentify/tagpath"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
)

var structValidator = validatorpkg.New()

// Validate checks the full rule document per spec §4.C: struct-tag shape
// rules via go-playground/validator, then hand-written cross-reference
// passes for everything struct tags cannot express (label/category
// existence, tag-path-pattern grammar, bounding-box ordering, predicate
// compilation). Every violation becomes a path-annotated ConfigInvalid
// error; all violations found in one pass are returned together via
// errors.Join, so errors.Is(err, engineerr.ErrConfigInvalid) still holds.
func (c *Config) Validate() error {
	var errs []error

	if err := structValidator.Struct(c); err != nil {
		var verrs validatorpkg.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, engineerr.ConfigInvalid(fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, engineerr.ConfigInvalid("", err.Error()))
		}
	}

	labelNames := make(map[string]bool, len(c.Labels)+1)
	labelNames["ALL"] = true
	for i := range c.Labels {
		l := &c.Labels[i]
		if labelNames[l.Name] {
			errs = append(errs, engineerr.ConfigInvalid(fmt.Sprintf("Labels[%d].Name", i), "duplicate label name "+l.Name))
		}
		labelNames[l.Name] = true

		if l.DICOMQueryFilter != "" {
			pred, err := query.Compile(l.DICOMQueryFilter)
			if err != nil {
				errs = append(errs, engineerr.ConfigInvalid(fmt.Sprintf("Labels[%d].DICOMQueryFilter", i), err.Error()))
				continue
			}
			l.predicate = pred
		} else {
			l.predicate = query.Always()
		}
	}

	categoryNames := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		categoryNames[cat.Name] = true
		for j, ln := range cat.Labels {
			if !labelNames[ln] {
				errs = append(errs, engineerr.ConfigInvalid(fmt.Sprintf("Categories[%d].Labels[%d]", i, j), "unknown label "+ln))
			}
		}
	}

	errs = append(errs, checkScopeRule(c.ScopeToForward, "ScopeToForward", labelNames, categoryNames)...)

	for i, tr := range c.Transformations {
		path := fmt.Sprintf("Transformations[%d]", i)
		errs = append(errs, checkScopeRule(tr.Scope, path+".Scope", labelNames, categoryNames)...)

		for j := range tr.ShiftDateTime {
			op := &tr.ShiftDateTime[j]
			p, e := compilePatternSet(op.TagPatterns, op.ExceptTagPatterns, fmt.Sprintf("%s.ShiftDateTime[%d]", path, j))
			errs = append(errs, e...)
			op.setCompiled(p)
		}
		for j := range tr.RandomizeText {
			op := &tr.RandomizeText[j]
			p, e := compilePatternSet(op.TagPatterns, op.ExceptTagPatterns, fmt.Sprintf("%s.RandomizeText[%d]", path, j))
			errs = append(errs, e...)
			op.setCompiled(p)
		}
		for j := range tr.RandomizeUID {
			op := &tr.RandomizeUID[j]
			p, e := compilePatternSet(op.TagPatterns, op.ExceptTagPatterns, fmt.Sprintf("%s.RandomizeUID[%d]", path, j))
			errs = append(errs, e...)
			op.setCompiled(p)
		}
		for j := range tr.DeleteTags {
			op := &tr.DeleteTags[j]
			p, e := compilePatternSet(op.TagPatterns, op.ExceptTagPatterns, fmt.Sprintf("%s.DeleteTags[%d]", path, j))
			errs = append(errs, e...)
			op.setCompiled(p)
		}
		for j := range tr.AddTags {
			op := &tr.AddTags[j]
			opPath := fmt.Sprintf("%s.AddTags[%d]", path, j)

			tp, err := tagpath.ParseTagPath(op.Path)
			if err != nil {
				errs = append(errs, engineerr.ConfigInvalid(opPath+".Path", err.Error()))
			} else {
				op.compiledPath = tp
			}

			v, err := vr.Parse(strings.ToUpper(op.VR))
			if err != nil {
				errs = append(errs, engineerr.ConfigInvalid(opPath+".VR", err.Error()))
				continue
			}
			op.compiledVR = v

			val, err := buildLiteralValue(v, op.Value)
			if err != nil {
				errs = append(errs, engineerr.ConfigInvalid(opPath+".Value", err.Error()))
				continue
			}
			op.compiledValue = val
		}
		for j, op := range tr.RemoveBurnedInAnnotations {
			if op.Type != "Manual" {
				continue
			}
			opPath := fmt.Sprintf("%s.RemoveBurnedInAnnotations[%d]", path, j)
			for k, box := range op.BoxCoordinates {
				left, top, right, bottom := box[0], box[1], box[2], box[3]
				if left >= right || top >= bottom {
					errs = append(errs, engineerr.ConfigInvalid(
						fmt.Sprintf("%s.BoxCoordinates[%d]", opPath, k),
						"left must be < right and top must be < bottom"))
				}
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// checkScopeRule reports every label/category name referenced by a scope
// rule that does not exist. "ALL" is always legal.
func checkScopeRule(r ScopeRule, path string, labelNames, categoryNames map[string]bool) []error {
	var errs []error
	for i, ln := range r.Labels {
		if !labelNames[ln] {
			errs = append(errs, engineerr.ConfigInvalid(fmt.Sprintf("%s.Labels[%d]", path, i), "unknown label "+ln))
		}
	}
	for i, ln := range r.ExceptLabels {
		if !labelNames[ln] {
			errs = append(errs, engineerr.ConfigInvalid(fmt.Sprintf("%s.ExceptLabels[%d]", path, i), "unknown label "+ln))
		}
	}
	for i, cn := range r.Categories {
		if cn != "ALL" && !categoryNames[cn] {
			errs = append(errs, engineerr.ConfigInvalid(fmt.Sprintf("%s.Categories[%d]", path, i), "unknown category "+cn))
		}
	}
	for i, cn := range r.ExceptCategories {
		if cn != "ALL" && !categoryNames[cn] {
			errs = append(errs, engineerr.ConfigInvalid(fmt.Sprintf("%s.ExceptCategories[%d]", path, i), "unknown category "+cn))
		}
	}
	return errs
}

func compilePatternSet(patterns, except TagPatternList, path string) (compiledPatterns, []error) {
	var errs []error
	var out compiledPatterns

	for i, s := range patterns {
		p, err := tagpath.ParseTagPathPattern(s)
		if err != nil {
			errs = append(errs, engineerr.ConfigInvalid(fmt.Sprintf("%s.TagPatterns[%d]", path, i), err.Error()))
			continue
		}
		out.patterns = append(out.patterns, p)
	}
	for i, s := range except {
		p, err := tagpath.ParseTagPathPattern(s)
		if err != nil {
			errs = append(errs, engineerr.ConfigInvalid(fmt.Sprintf("%s.ExceptTagPatterns[%d]", path, i), err.Error()))
			continue
		}
		out.exceptPatterns = append(out.exceptPatterns, p)
	}
	return out, errs
}

// buildLiteralValue constructs the literal value AddTags attaches,
// splitting on "\" for multi-valued VRs per the DICOM value-multiplicity
// convention.
func buildLiteralValue(v vr.VR, raw string) (value.Value, error) {
	if v.IsStringType() {
		parts := strings.Split(raw, `\`)
		return value.NewStringValue(v, parts)
	}
	if v.IsNumericType() {
		return parseNumericLiteral(v, raw)
	}
	return value.NewBytesValue(v, []byte(raw))
}

func parseNumericLiteral(v vr.VR, raw string) (value.Value, error) {
	parts := strings.Split(raw, `\`)

	if v == vr.FloatingPointSingle || v == vr.FloatingPointDouble {
		floats := make([]float64, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("malformed numeric literal %q: %w", p, err)
			}
			floats[i] = f
		}
		return value.NewFloatValue(v, floats)
	}

	ints := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed numeric literal %q: %w", p, err)
		}
		ints[i] = n
	}
	return value.NewIntValue(v, ints)
}
