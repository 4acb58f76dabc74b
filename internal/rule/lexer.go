package rule

import (
	"regexp"
	"strings"
)

// Fields is the result of splitting one magic rule line into its five
// semantic slots.
type Fields struct {
	Levels string // leading run of '>' characters, possibly empty
	Offset string
	Test   string
	Target string
	Msg    string
}

var levelRE = regexp.MustCompile(`^\s*(>+)`)

// isComment reports whether line is a comment line: first non-whitespace
// byte is '#'. Inline comments are never stripped — a test target may
// legitimately contain '#'.
func isComment(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return len(trimmed) > 0 && trimmed[0] == '#'
}

// SplitLine splits one non-blank, non-comment rule line into Fields. It is
// a total function on any line that has at least an offset and a test
// field separated by whitespace; ok is false when the line has no offset
// field or no test field (a blank line, or a line with a single field).
func SplitLine(line string) (Fields, bool) {
	var f Fields

	rest := line
	if m := levelRE.FindStringSubmatch(rest); m != nil {
		f.Levels = m[1]
		rest = rest[len(m[0]):]
	}
	rest = strings.TrimLeft(rest, " \t")

	f.Offset, rest = splitFirstField(rest)
	if f.Offset == "" {
		return f, false
	}
	rest = strings.TrimLeft(rest, " \t")

	f.Test, rest = splitFirstField(rest)
	if f.Test == "" {
		return f, false
	}
	rest = strings.TrimLeft(rest, " \t")

	f.Target, f.Msg = splitTargetAndMsg(rest)
	return f, true
}

// splitFirstField splits s on the first run of whitespace, returning the
// field and the untrimmed remainder.
func splitFirstField(s string) (field, rest string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

// splitTargetAndMsg implements a backslash-quoting scan: a backslash quotes
// the next character into target, except
// that a backslash-space sequence is kept as an unescaped space (not a
// literal backslash-space); unquoted whitespace ends target and starts
// msg, which is captured verbatim and right-trimmed.
func splitTargetAndMsg(s string) (target, msg string) {
	var b strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			next := s[i+1]
			if next != ' ' {
				b.WriteByte('\\')
			}
			b.WriteByte(next)
			i += 2
			continue
		}
		if c == ' ' || c == '\t' {
			break
		}
		b.WriteByte(c)
		i++
	}
	target = b.String()
	if i < len(s) {
		msg = strings.TrimRight(strings.TrimLeft(s[i:], " \t"), " \t\r\n")
	}
	return target, msg
}
