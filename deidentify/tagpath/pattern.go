package tagpath

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/vr"
	"github.com/codeninja55/go-radx/deidentify/engineerr"
)

// DepthScope selects which depths in the tree a pattern's body is checked
// against.
type DepthScope int

const (
	// ScopeTop ("" prefix) matches only at the top level of the dataset.
	ScopeTop DepthScope = iota
	// ScopeBelow ("+/" prefix) matches strictly below top level.
	ScopeBelow
	// ScopeAny ("*/" prefix) matches at any depth, including top level.
	ScopeAny
)

type stepKind int

const (
	stepKeyword stepKind = iota
	stepHex
	stepPrivateCreator
	stepVR
)

// StepPattern is one dot-separated component of a TagPathPattern body.
type StepPattern struct {
	Kind stepKind

	keywordRe *regexp.Regexp

	hexPattern string // stepHex: 8 chars

	groupPattern   string // stepPrivateCreator: 4 chars
	elemLowPattern string // stepPrivateCreator: 2 chars
	creatorName    string

	vr vr.VR
}

// TagPathPattern matches zero or more element locations.
type TagPathPattern struct {
	raw   string
	Scope DepthScope
	Steps []StepPattern
}

func (p TagPathPattern) String() string { return p.raw }

var (
	vrFormRe      = regexp.MustCompile(`^\{([A-Za-z]{2})\}$`)
	creatorFormRe = regexp.MustCompile(`^([0-9A-Fa-fXx@]{4})\{(.+)\}([0-9A-Fa-fXx@]{2})$`)
	hexPatternRe  = regexp.MustCompile(`^[0-9A-Fa-fXx@]{8}$`)
	keywordFormRe = regexp.MustCompile(`^[A-Za-z0-9_*]+$`)
)

// ParseTagPathPattern reads an optional depth prefix ("+/" or "*/"), then
// splits the remainder on "." into step patterns, each validated against
// the four alternatives in the tag-path pattern grammar.
func ParseTagPathPattern(s string) (TagPathPattern, error) {
	raw := s
	scope := ScopeTop
	switch {
	case strings.HasPrefix(s, "+/"):
		scope = ScopeBelow
		s = s[2:]
	case strings.HasPrefix(s, "*/"):
		scope = ScopeAny
		s = s[2:]
	}

	if s == "" {
		return TagPathPattern{}, engineerr.PathInvalid(raw, "empty pattern body")
	}

	parts := strings.Split(s, ".")
	steps := make([]StepPattern, 0, len(parts))
	for _, part := range parts {
		sp, err := parseStepPattern(part)
		if err != nil {
			return TagPathPattern{}, engineerr.PathInvalid(raw, err.Error())
		}
		steps = append(steps, sp)
	}

	return TagPathPattern{raw: raw, Scope: scope, Steps: steps}, nil
}

func parseStepPattern(s string) (StepPattern, error) {
	if m := vrFormRe.FindStringSubmatch(s); m != nil {
		v, err := vr.Parse(strings.ToUpper(m[1]))
		if err != nil {
			return StepPattern{}, fmt.Errorf("step %q: %w", s, err)
		}
		return StepPattern{Kind: stepVR, vr: v}, nil
	}

	if m := creatorFormRe.FindStringSubmatch(s); m != nil {
		return StepPattern{
			Kind:           stepPrivateCreator,
			groupPattern:   strings.ToUpper(m[1]),
			creatorName:    m[2],
			elemLowPattern: strings.ToUpper(m[3]),
		}, nil
	}

	if hexPatternRe.MatchString(s) {
		return StepPattern{Kind: stepHex, hexPattern: strings.ToUpper(s)}, nil
	}

	if keywordFormRe.MatchString(s) {
		re, err := compileKeywordPattern(s)
		if err != nil {
			return StepPattern{}, err
		}
		return StepPattern{Kind: stepKeyword, keywordRe: re}, nil
	}

	return StepPattern{}, fmt.Errorf("malformed step pattern %q", s)
}

// compileKeywordPattern turns a keyword pattern with "*" wildcards into an
// anchored, case-sensitive regex: escape all metacharacters, then replace
// the escaped "*" with ".*".
func compileKeywordPattern(s string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(s)
	quoted = strings.ReplaceAll(quoted, `\*`, `.*`)
	return regexp.Compile("^" + quoted + "$")
}

// Matches reports whether element e (found directly inside dataset parent)
// satisfies this step pattern.
func (sp StepPattern) Matches(e *element.Element, parent *dicom.DataSet) bool {
	switch sp.Kind {
	case stepKeyword:
		kw := e.Keyword()
		if kw == "" {
			return false
		}
		return sp.keywordRe.MatchString(kw)

	case stepHex:
		return matchHexPattern(sp.hexPattern, hex8(e.Tag()))

	case stepPrivateCreator:
		hex := hex8(e.Tag())
		if !matchHexPattern(sp.groupPattern, hex[0:4]) {
			return false
		}
		if !matchHexPattern(sp.elemLowPattern, hex[6:8]) {
			return false
		}
		creator, ok := lookupPrivateCreator(parent, e)
		return ok && creator == sp.creatorName

	case stepVR:
		return e.VR() == sp.vr

	default:
		return false
	}
}

func hex8(t tag.Tag) string {
	return fmt.Sprintf("%04X%04X", t.Group, t.Element)
}

// matchHexPattern compares an 8-char (or 4/2-char) pattern against a value
// of equal length, char by char: 'X'/'x' matches anything, '@' matches any
// odd hex digit (1,3,5,7,9,B,D,F), other chars compare case-insensitively.
func matchHexPattern(pattern, value string) bool {
	if len(pattern) != len(value) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		pc := pattern[i]
		vc := value[i]
		switch pc {
		case 'X', 'x':
			continue
		case '@':
			if !isOddHexDigit(vc) {
				return false
			}
		default:
			if toUpperByte(pc) != toUpperByte(vc) {
				return false
			}
		}
	}
	return true
}

func toUpperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func isOddHexDigit(b byte) bool {
	switch toUpperByte(b) {
	case '1', '3', '5', '7', '9', 'B', 'D', 'F':
		return true
	default:
		return false
	}
}

// lookupPrivateCreator resolves the private creator string for a private
// data element at (gggg,BBXX) by reading the creator-id element at
// (gggg,00BB), where BB is the high byte of the element's address.
func lookupPrivateCreator(parent *dicom.DataSet, e *element.Element) (string, bool) {
	t := e.Tag()
	if !t.IsPrivate() {
		return "", false
	}
	block := (t.Element >> 8) & 0xFF
	if block < 0x10 {
		return "", false
	}
	creatorElem, err := parent.Get(tag.New(t.Group, block))
	if err != nil {
		return "", false
	}
	return creatorElem.Value().String(), true
}

// Matches reports whether a traversed Location satisfies this pattern: the
// depth scope check, then pairing the last len(Steps) location entries
// (right to left) against the step patterns.
func (p TagPathPattern) Matches(loc Location) bool {
	d := len(loc)
	n := len(p.Steps)

	switch p.Scope {
	case ScopeTop:
		if d != n {
			return false
		}
	case ScopeBelow:
		if d <= n {
			return false
		}
	case ScopeAny:
		if d < n {
			return false
		}
	}

	tail := loc[d-n:]
	for i, step := range p.Steps {
		entry := tail[i]
		if !step.Matches(entry.Elem, entry.Parent) {
			return false
		}
	}
	return true
}

// EnumerateMatching walks D depth-first and yields every element location
// matching at least one pattern in includes and none in excludes.
func EnumerateMatching(ds *dicom.DataSet, includes, excludes []TagPathPattern) []Match {
	var results []Match

	var walk func(cur *dicom.DataSet, loc Location)
	walk = func(cur *dicom.DataSet, loc Location) {
		for _, e := range cur.Elements() {
			newLoc := make(Location, len(loc)+1)
			copy(newLoc, loc)
			newLoc[len(loc)] = LocStep{Elem: e, Parent: cur}

			if matchesAny(newLoc, includes) && !matchesAny(newLoc, excludes) {
				results = append(results, Match{
					Element:      e,
					CanonicalHex: newLoc.CanonicalHex(),
					Parent:       cur,
					Location:     newLoc,
				})
			}

			if seq, ok := e.Value().(*dicom.SequenceValue); ok {
				for _, item := range seq.Items() {
					walk(item, newLoc)
				}
			}
		}
	}
	walk(ds, nil)

	return results
}

func matchesAny(loc Location, patterns []TagPathPattern) bool {
	for _, p := range patterns {
		if p.Matches(loc) {
			return true
		}
	}
	return false
}

// Match is one result of EnumerateMatching.
type Match struct {
	Element      *element.Element
	CanonicalHex string
	Parent       *dicom.DataSet
	Location     Location
}
