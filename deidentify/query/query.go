package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/codeninja55/go-radx/deidentify/engineerr"
	"github.com/codeninja55/go-radx/dicom/tag"
)

// Predicate tests a Document against a compiled filter.
type Predicate func(doc Document) bool

// Always is the predicate a label with no DICOMQueryFilter compiles to.
func Always() Predicate { return func(Document) bool { return true } }

var conditionRe = regexp.MustCompile(
	`([A-Za-z0-9_.]+)\s+(?:` +
		`(?P<exop>(?i:Exists|NotExists|Empty|NotEmpty))` +
		`|(?P<nbop>(?i:NbEquals|NbNotEquals|NbGreater|NbLess))\s+(?P<nbval>[0-9]+(?:\.[0-9]+)?)` +
		`|(?P<strop>(?i:StrEquals|StrNotEquals))\s+(?:(?P<strval1>[^"() ]+)|"(?P<strval2>[^"]*)")` +
		`)`,
)

// Compile parses a filter string into a Predicate. An empty or
// whitespace-only filter always matches.
func Compile(filter string) (Predicate, error) {
	if strings.TrimSpace(filter) == "" {
		return Always(), nil
	}

	names := conditionRe.SubexpNames()
	matches := conditionRe.FindAllStringSubmatchIndex(filter, -1)
	if matches == nil {
		return nil, engineerr.QueryInvalid(filter, "no recognizable condition")
	}

	var preds []Predicate
	var skeleton strings.Builder
	prevEnd := 0

	for i, m := range matches {
		start, end := m[0], m[1]
		between := filter[prevEnd:start]
		if !validBetween(between) {
			return nil, engineerr.QueryInvalid(filter, "unexpected text between conditions: "+strings.TrimSpace(between))
		}
		skeleton.WriteString(normalizeBetween(between))

		groups := make(map[string]string, len(names))
		for gi, name := range names {
			if name == "" || m[2*gi] < 0 {
				continue
			}
			groups[name] = filter[m[2*gi]:m[2*gi+1]]
		}

		p, err := compileCondition(filter[m[2]:m[3]], groups)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
		skeleton.WriteString(placeholder(i))

		prevEnd = end
	}

	tail := filter[prevEnd:]
	if !validBetween(tail) {
		return nil, engineerr.QueryInvalid(filter, "unexpected trailing text: "+strings.TrimSpace(tail))
	}
	skeleton.WriteString(normalizeBetween(tail))

	tokens, err := tokenize(skeleton.String())
	if err != nil {
		return nil, engineerr.QueryInvalid(filter, err.Error())
	}

	pos := 0
	expr, err := parseOr(tokens, &pos, preds)
	if err != nil {
		return nil, engineerr.QueryInvalid(filter, err.Error())
	}
	if pos != len(tokens) {
		return nil, engineerr.QueryInvalid(filter, "unbalanced parentheses")
	}
	return expr, nil
}

func placeholder(i int) string { return " $" + strconv.Itoa(i) + " " }

// validBetween restricts the text between/around conditions to
// parentheses, AND/OR (any case), and whitespace.
func validBetween(s string) bool {
	for _, tok := range strings.Fields(s) {
		u := strings.ToUpper(tok)
		switch {
		case u == "AND", u == "OR":
			continue
		default:
			for _, r := range tok {
				if r != '(' && r != ')' {
					return false
				}
			}
		}
	}
	return true
}

func normalizeBetween(s string) string {
	var sb strings.Builder
	for _, tok := range strings.Fields(s) {
		switch strings.ToUpper(tok) {
		case "AND":
			sb.WriteString(" AND ")
		case "OR":
			sb.WriteString(" OR ")
		default:
			sb.WriteString(" ")
			sb.WriteString(tok)
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

func tokenize(skeleton string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(skeleton) {
		c := skeleton[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '(' || c == ')':
			tokens = append(tokens, string(c))
			i++
		default:
			j := i
			for j < len(skeleton) && skeleton[j] != ' ' && skeleton[j] != '(' && skeleton[j] != ')' {
				j++
			}
			tokens = append(tokens, skeleton[i:j])
			i = j
		}
	}
	return tokens, nil
}

func parseOr(tokens []string, pos *int, preds []Predicate) (Predicate, error) {
	left, err := parseAnd(tokens, pos, preds)
	if err != nil {
		return nil, err
	}
	for *pos < len(tokens) && strings.EqualFold(tokens[*pos], "OR") {
		*pos++
		right, err := parseAnd(tokens, pos, preds)
		if err != nil {
			return nil, err
		}
		l, r := left, right
		left = func(doc Document) bool { return l(doc) || r(doc) }
	}
	return left, nil
}

func parseAnd(tokens []string, pos *int, preds []Predicate) (Predicate, error) {
	left, err := parseFactor(tokens, pos, preds)
	if err != nil {
		return nil, err
	}
	for *pos < len(tokens) && strings.EqualFold(tokens[*pos], "AND") {
		*pos++
		right, err := parseFactor(tokens, pos, preds)
		if err != nil {
			return nil, err
		}
		l, r := left, right
		left = func(doc Document) bool { return l(doc) && r(doc) }
	}
	return left, nil
}

func parseFactor(tokens []string, pos *int, preds []Predicate) (Predicate, error) {
	if *pos >= len(tokens) {
		return nil, errUnexpectedEnd
	}
	tok := tokens[*pos]
	switch {
	case tok == "(":
		*pos++
		inner, err := parseOr(tokens, pos, preds)
		if err != nil {
			return nil, err
		}
		if *pos >= len(tokens) || tokens[*pos] != ")" {
			return nil, errMissingCloseParen
		}
		*pos++
		return inner, nil
	case strings.HasPrefix(tok, "$"):
		idx, err := strconv.Atoi(tok[1:])
		if err != nil || idx < 0 || idx >= len(preds) {
			return nil, errBadPlaceholder
		}
		*pos++
		return preds[idx], nil
	default:
		return nil, errUnexpectedToken
	}
}

var (
	errUnexpectedEnd     = parseErr("unexpected end of filter")
	errMissingCloseParen = parseErr("missing closing parenthesis")
	errBadPlaceholder    = parseErr("internal placeholder error")
	errUnexpectedToken   = parseErr("unexpected token")
)

type parseErr string

func (e parseErr) Error() string { return string(e) }

// compileCondition builds the Predicate for one matched condition, given
// its path string and the named submatch groups captured from
// conditionRe.
func compileCondition(path string, groups map[string]string) (Predicate, error) {
	keys, err := resolvePathKeys(path)
	if err != nil {
		return nil, engineerr.QueryInvalid(path, err.Error())
	}

	if op, ok := groups["exop"]; ok {
		switch strings.ToLower(op) {
		case "exists":
			return func(doc Document) bool { _, found := resolve(doc, keys); return found }, nil
		case "notexists":
			return func(doc Document) bool { _, found := resolve(doc, keys); return !found }, nil
		case "empty":
			return func(doc Document) bool { return allEmpty(resolve(doc, keys)) }, nil
		case "notempty":
			return func(doc Document) bool { return !allEmpty(resolve(doc, keys)) }, nil
		}
	}

	if op, ok := groups["nbop"]; ok {
		nbVal, err := strconv.ParseFloat(groups["nbval"], 64)
		if err != nil {
			return nil, engineerr.QueryInvalid(path, "malformed numeric literal")
		}
		cmp := func(a float64) bool { return false }
		switch strings.ToLower(op) {
		case "nbequals":
			cmp = func(a float64) bool { return a == nbVal }
		case "nbnotequals":
			cmp = func(a float64) bool { return a != nbVal }
		case "nbgreater":
			cmp = func(a float64) bool { return a > nbVal }
		case "nbless":
			cmp = func(a float64) bool { return a < nbVal }
		}
		return func(doc Document) bool {
			vals, found := resolve(doc, keys)
			if !found {
				return false
			}
			for _, s := range vals {
				f, err := strconv.ParseFloat(s, 64)
				if err == nil && cmp(f) {
					return true
				}
			}
			return false
		}, nil
	}

	if op, ok := groups["strop"]; ok {
		raw := groups["strval1"]
		if raw == "" {
			raw = groups["strval2"]
		}
		re, err := compileStrPattern(raw)
		if err != nil {
			return nil, engineerr.QueryInvalid(path, err.Error())
		}
		negate := strings.EqualFold(op, "StrNotEquals")
		return func(doc Document) bool {
			vals, found := resolve(doc, keys)
			if !found {
				return negate
			}
			matched := false
			for _, s := range vals {
				if re.MatchString(s) {
					matched = true
					break
				}
			}
			if negate {
				return !matched
			}
			return matched
		}, nil
	}

	return nil, engineerr.QueryInvalid(path, "unrecognized operator")
}

// compileStrPattern turns a StrEquals/StrNotEquals literal into an
// anchored, case-insensitive regex: escape regex metacharacters, then
// reinstate "*" as "zero or more of any character".
func compileStrPattern(lit string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(lit)
	quoted = strings.ReplaceAll(quoted, `\*`, `.*`)
	return regexp.Compile(`(?i)^` + quoted + `$`)
}

// resolvePathKeys turns a dotted keyword/hex path into its canonical hex
// key chain.
func resolvePathKeys(path string) ([]string, error) {
	parts := strings.Split(path, ".")
	keys := make([]string, len(parts))
	for i, part := range parts {
		if len(part) == 8 && isHex(part) {
			keys[i] = strings.ToUpper(part)
			continue
		}
		info, err := tag.FindByKeyword(part)
		if err != nil {
			return nil, err
		}
		keys[i] = tagHexKey(info.Tag)
	}
	return keys, nil
}

func isHex(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}

func tagHexKey(t tag.Tag) string {
	const hexDigits = "0123456789ABCDEF"
	buf := make([]byte, 8)
	for i := 0; i < 4; i++ {
		buf[3-i] = hexDigits[(t.Group>>(4*i))&0xF]
	}
	for i := 0; i < 4; i++ {
		buf[7-i] = hexDigits[(t.Element>>(4*i))&0xF]
	}
	return string(buf)
}

// resolve navigates a Document along a key chain, fanning out across
// sequence items when an intermediate key holds []Document. found is
// true as soon as the path resolves to at least one present entry, even
// if its value is the "" empty-value marker.
func resolve(doc Document, keys []string) (values []string, found bool) {
	if len(keys) == 0 {
		return nil, false
	}
	v, ok := doc[keys[0]]
	if !ok {
		return nil, false
	}

	if len(keys) == 1 {
		switch val := v.(type) {
		case string:
			return []string{val}, true
		case []string:
			return val, true
		case []Document:
			// The path ends on a sequence itself: it exists, but carries no
			// scalar text to compare against.
			return nil, true
		default:
			return nil, false
		}
	}

	subs, ok := v.([]Document)
	if !ok {
		return nil, false
	}
	var all []string
	anyFound := false
	for _, sub := range subs {
		vals, ok := resolve(sub, keys[1:])
		if ok {
			anyFound = true
			all = append(all, vals...)
		}
	}
	return all, anyFound
}

func allEmpty(values []string, found bool) bool {
	if !found {
		return true
	}
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}
