package rule

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Priority values that order sibling test evaluation. Lower runs first.
const (
	PriorityInteger    = 0
	PriorityStringEq   = 5
	PriorityOther      = 10
	PriorityStringSrch = 20
	PriorityRegex      = 80
	PriorityStringLong = 90
)

// Test is one node of the rule tree.
type Test struct {
	Lnum  int
	Level int // -1 for the synthesized root
	Name  string

	Offset Offset

	TestCode string // e.g. "beshort", "string", "regex", after u-prefix/flag/mask stripped
	Unsigned bool
	Flags    []byte // sorted, 'b' and 't' stripped
	Mask     string // original textual mask after '&', or ""
	Limit    string // textual search/regex limit

	Target      string
	TargetOper  string
	TargetOpUnimplemented bool // gates target-operator extraction only
	Invalid     bool

	TestID   string
	Priority int

	SetMime string
	Mimex   bool // true when SetMime contains "/x-"
	Strength Strength

	Active   bool
	Parent   *Test
	Subtests []*Test
}

var maskRE = regexp.MustCompile(`^(\w+)&([0-9a-fxA-FX]+)$`)
var regexFlagRE = regexp.MustCompile(`^(\d+)?([csl]*)$`)

// ParseTest classifies a (testCode, target) pair: unsigned/mask/flag
// stripping, byte-order normalization, and operator extraction. It sets
// neither Offset, Level nor Parent; the caller fills those in.
func ParseTest(testCode, target string, line int, cfg Config, diags *Sink) *Test {
	t := &Test{Target: target}

	code := testCode
	if strings.HasPrefix(code, "u") && len(code) > 1 && !strings.HasPrefix(code, "use") {
		t.Unsigned = true
		code = code[1:]
	}

	if m := maskRE.FindStringSubmatch(code); m != nil {
		t.Mask = m[2]
		code = m[1]
	}

	base, flagStr, hasFlag := strings.Cut(code, "/")
	if !hasFlag {
		base, flagStr = code, ""
	}

	if base == "regex" {
		if m := regexFlagRE.FindStringSubmatch(flagStr); m != nil {
			t.Limit = m[1]
			t.Flags = []byte(m[2])
		} else {
			diags.Warnf("test", line, "unrecognized regex flags %q", flagStr)
		}
	} else if flagStr != "" {
		var flags []byte
		for _, tok := range strings.Split(flagStr, "/") {
			if tok == "" {
				continue
			}
			if tok[0] >= '0' && tok[0] <= '9' {
				t.Limit = tok
				continue
			}
			for i := 0; i < len(tok); i++ {
				if tok[i] != 'b' && tok[i] != 't' {
					flags = append(flags, tok[i])
				}
			}
		}
		sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })
		t.Flags = flags
	}

	t.TestCode = normalizeByteOrder(base, cfg.TargetEndian)
	extractTargetOper(t, line, diags)

	t.Priority = computePriority(t)

	return t
}

// RefreshTestID recomputes TestID; callers must call this after setting
// Offset, since TestID embeds the raw offset text.
func (t *Test) RefreshTestID() {
	t.TestID = composeTestID(t)
}

// normalizeByteOrder rewrites bare short|long|quad to be…/le… according to
// the configured target endianness, rather than the compiling host's.
func normalizeByteOrder(code string, target Endian) string {
	prefix := "le"
	if target == BigEndian {
		prefix = "be"
	}
	switch code {
	case "short", "long", "quad":
		return prefix + code
	default:
		return code
	}
}

func extractTargetOper(t *Test, line int, diags *Sink) {
	target := t.Target
	if target == "x" {
		t.TargetOper = "x"
		return
	}

	switch {
	case isStringLike(t.TestCode):
		t.TargetOper = consumeOper(&target, "=<>")
	case isIntegerLike(t.TestCode):
		t.TargetOper = consumeOper(&target, "=<>&^~")
	case isFloatLike(t.TestCode):
		t.TargetOper = consumeOper(&target, "=<>")
	case t.TestCode == "default" || t.TestCode == "clear" || t.TestCode == "regex":
		t.TargetOpUnimplemented = true
	default:
		t.Invalid = true
		diags.Warnf("test", line, "invalid test code %q", t.TestCode)
	}

	// Write back whatever consumeOper actually stripped (possibly nothing),
	// so t.Target always holds the true literal operand. The defaulting
	// below only fills in an implicit "=" for TargetOper bookkeeping; it
	// must never be treated as characters consumed from Target.
	t.Target = target

	if t.TargetOper == "" && !t.TargetOpUnimplemented && !t.Invalid {
		t.TargetOper = "="
	}
}

// consumeOper consumes the leading operator characters (one from set,
// optionally followed by '!') from *target, mutating it in place, and
// returns the operator string.
func consumeOper(target *string, set string) string {
	s := *target
	if s == "" {
		return ""
	}
	oper := ""
	if strings.IndexByte(set, s[0]) >= 0 {
		oper += string(s[0])
		s = s[1:]
	}
	if strings.HasPrefix(s, "!") {
		oper += "!"
		s = s[1:]
	}
	*target = s
	return oper
}

func isStringLike(code string) bool {
	switch code {
	case "string", "search", "bestring16", "lestring16", "pstring":
		return true
	}
	return false
}

func isIntegerLike(code string) bool {
	switch code {
	case "byte", "short", "beshort", "leshort",
		"long", "belong", "lelong",
		"quad", "bequad", "lequad":
		return true
	}
	return false
}

func isFloatLike(code string) bool {
	switch code {
	case "float", "befloat", "lefloat", "double", "bedouble", "ledouble":
		return true
	}
	return false
}

// composeTestID builds the canonical descriptor used as a sibling
// partition key.
func composeTestID(t *Test) string {
	var b strings.Builder
	if t.Unsigned {
		b.WriteByte('u')
	}
	b.WriteString(t.TestCode)
	for _, f := range t.Flags {
		b.WriteByte('/')
		b.WriteByte(f)
	}
	if t.Mask != "" {
		b.WriteString("&")
		b.WriteString(t.Mask)
	}
	b.WriteByte(' ')
	b.WriteString(t.TargetOper)
	b.WriteByte(' ')
	b.WriteString(t.Offset.Raw)
	return b.String()
}

func computePriority(t *Test) int {
	switch {
	case isIntegerLike(t.TestCode):
		return PriorityInteger
	case t.TestCode == "string" && t.TargetOper == "=":
		return PriorityStringEq
	case t.TestCode == "search":
		// Nothing defines where a "short" search ends and a "long" one
		// begins; 256 is this compiler's own cutoff, chosen so a search
		// limit tight enough to be a fixed-width signature scan runs
		// before unbounded or near-unbounded searches. See the open
		// question on this split recorded in SPEC_FULL.md §9.
		if n := parseDecimal(t.Limit); n > 0 && n <= 256 {
			return PriorityStringSrch
		}
		return PriorityStringLong
	case t.TestCode == "regex":
		return PriorityRegex
	default:
		return PriorityOther
	}
}

func parseDecimal(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return -1
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// SetAction attaches a MIME action to t.
func (t *Test) SetAction(mime string) {
	t.SetMime = mime
	t.Mimex = strings.Contains(mime, "/x-")
}

func (t *Test) String() string {
	return fmt.Sprintf("Test{lnum=%d level=%d code=%s target=%q mime=%q}", t.Lnum, t.Level, t.TestCode, t.Target, t.SetMime)
}
