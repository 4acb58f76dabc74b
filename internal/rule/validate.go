package rule

import (
	"sort"

	"github.com/coregx/ahocorasick"
	"github.com/quasilyte/regex/syntax"
)

// Validate walks the pruned tree and re-runs the offset checks of §4.2,
// warns about "search" tests with no range limit (the generator emits no
// call for those), and runs the regex syntax sanity pass (§4.6a) and the
// literal overlap sanity pass (§4.6b). It never mutates root.
func Validate(root *Test, diags *Sink) {
	validateOffsets(root, diags)
	validateRegexTests(root, diags)
	validateLiteralOverlap(root, diags)
}

func validateOffsets(t *Test, diags *Sink) {
	if t.Offset.Unparseable {
		diags.Warnf("validate", t.Lnum, "offset %q remains unparseable after pruning", t.Offset.Raw)
	}
	if t.Offset.Unimplemented {
		diags.Warnf("validate", t.Lnum, "offset %q uses an unimplemented form", t.Offset.Raw)
	}
	if t.TestCode == "search" && t.Limit == "" {
		diags.Warnf("validate", t.Lnum, "search test has no range limit; no code is emitted for it")
	}
	for _, c := range t.Subtests {
		validateOffsets(c, diags)
	}
}

// validateRegexTests parses every surviving "regex" Test's target with a
// regex syntax parser and warns when it uses a construct the runtime's
// RegexMatch helper will not execute faithfully (named captures — the
// runtime matches with Go's RE2-based regexp, which silently accepts but
// ignores capture names for match-only use, so this is advisory rather
// than a hard failure). Grounded on github.com/quasilyte/regex/syntax,
// the regex-syntax package the coregx-coregex example repo's own engine
// is built on.
func validateRegexTests(t *Test, diags *Sink) {
	if t.TestCode == "regex" && t.Target != "" {
		p := syntax.NewParser()
		re, err := p.Parse(t.Target)
		if err != nil {
			diags.Warnf("validate", t.Lnum, "regex target %q failed to parse: %v", t.Target, err)
		} else if usesNamedCapture(re.Expr) {
			diags.Warnf("validate", t.Lnum, "regex target %q uses a named capture group; RegexMatch ignores capture names", t.Target)
		}
	}
	for _, c := range t.Subtests {
		validateRegexTests(c, diags)
	}
}

func usesNamedCapture(e syntax.Expr) bool {
	if e.Op == syntax.OpNamedCapture {
		return true
	}
	for _, a := range e.Args {
		if usesNamedCapture(a) {
			return true
		}
	}
	return false
}

// validateLiteralOverlap implements §4.6b: for every sibling group that
// codegen would fold into a simple-string cascade or string-equals map, it
// builds a multi-pattern automaton over the group's literals and warns
// when one literal is a substring of another in the same group. Grounded
// on github.com/coregx/ahocorasick, the multi-pattern automaton the
// coregx-coregex engine itself builds for its large-literal-alternation
// fast path (meta/compile.go's buildStrategyEngines).
func validateLiteralOverlap(t *Test, diags *Sink) {
	group := simpleStringSiblings(t.Subtests)
	if len(group) > 1 {
		checkLiteralOverlap(group, diags)
	}
	for _, c := range t.Subtests {
		validateLiteralOverlap(c, diags)
	}
}

func simpleStringSiblings(subtests []*Test) []*Test {
	var group []*Test
	for _, s := range subtests {
		if s.TestCode == "string" && len(s.Flags) == 0 && s.Offset.Simple {
			group = append(group, s)
		}
	}
	return group
}

func checkLiteralOverlap(group []*Test, diags *Sink) {
	builder := ahocorasick.NewBuilder()
	seen := make(map[string]bool)
	ordered := make([]*Test, 0, len(group))
	for _, t := range group {
		if t.Target == "" || seen[t.Target] {
			continue
		}
		seen[t.Target] = true
		ordered = append(ordered, t)
		builder.AddPattern([]byte(t.Target))
	}
	if len(ordered) < 2 {
		return
	}
	auto, err := builder.Build()
	if err != nil {
		return
	}

	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Target < ordered[j].Target })
	for _, t := range ordered {
		m := auto.Find([]byte(t.Target), 0)
		if m == nil {
			continue
		}
		matched := t.Target[m.Start:m.End]
		if matched != t.Target {
			diags.Warnf("validate", t.Lnum, "string literal %q contains sibling literal %q; fast-path table order may matter", t.Target, matched)
		}
	}
}
