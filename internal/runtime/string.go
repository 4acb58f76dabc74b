package runtime

import (
	"fmt"
	"regexp"
	"strings"
)

// StringEqual reports whether buf at offset begins with pattern, generalizing
// shirou-gofile's matchString simple-comparison branch (detector_match.go) to
// a standalone byte-slice comparison with no entry/description bookkeeping.
func StringEqual(buf []byte, offset int64, pattern string) (bool, error) {
	if pattern == "" {
		return false, nil
	}
	window, err := slice(buf, offset, len(pattern))
	if err != nil {
		return false, err
	}
	return string(window) == pattern, nil
}

// StringLess reports whether the bytes at offset, taken pattern-length deep,
// sort lexicographically before pattern ('<' string tests).
func StringLess(buf []byte, offset int64, pattern string) (bool, error) {
	window, err := slice(buf, offset, len(pattern))
	if err != nil {
		return false, err
	}
	return string(window) < pattern, nil
}

// StringGreater is StringLess's '>' counterpart.
func StringGreater(buf []byte, offset int64, pattern string) (bool, error) {
	window, err := slice(buf, offset, len(pattern))
	if err != nil {
		return false, err
	}
	return string(window) > pattern, nil
}

// StringMatch dispatches a string test to StringEqual/StringLess/StringGreater
// by cmp, inverting the result when CompareNot is set. It is the single entry
// point codegen emits a call to for a plain "string" test.
func StringMatch(buf []byte, offset int64, pattern string, cmp CompareFlag) (bool, error) {
	var hit bool
	var err error

	switch {
	case cmp&CompareLt != 0:
		hit, err = StringLess(buf, offset, pattern)
	case cmp&CompareGt != 0:
		hit, err = StringGreater(buf, offset, pattern)
	default:
		hit, err = StringEqual(buf, offset, pattern)
	}
	if err != nil {
		return false, err
	}
	if cmp&CompareNot != 0 {
		hit = !hit
	}
	return hit, nil
}

// StringSearch implements the "search" test: look for pattern anywhere in
// buf[start : start+limit] (limit <= 0 means search to the end of buf),
// mirroring shirou-gofile's matchSearch window-then-Contains approach
// (detector_match.go). It returns the absolute offset of the first match.
func StringSearch(buf []byte, start, limit int64, pattern string) (bool, int64, error) {
	if pattern == "" {
		return false, 0, nil
	}
	if start < 0 || start > int64(len(buf)) {
		return false, 0, fmt.Errorf("runtime: search start %d out of range for buffer of length %d", start, len(buf))
	}
	end := int64(len(buf))
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	window := buf[start:end]
	idx := strings.Index(string(window), pattern)
	if idx < 0 {
		return false, 0, nil
	}
	return true, start + int64(idx), nil
}

// RegexMatch implements the "regex" test: compile pattern (optionally
// case-insensitive when flags contains 'c') and search for it within
// buf[start : start+limit] (limit <= 0 means to the end of buf), mirroring
// shirou-gofile's matchRegex (detector_match.go), which runs the standard
// library's regexp engine against the candidate window rather than a custom
// NFA. Unlike matchRegex, an invalid pattern is reported as an error instead
// of silently falling back to a substring match.
func RegexMatch(buf []byte, start, limit int64, pattern string, flags []byte) (bool, error) {
	if start < 0 || start > int64(len(buf)) {
		return false, fmt.Errorf("runtime: regex start %d out of range for buffer of length %d", start, len(buf))
	}
	end := int64(len(buf))
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	expr := pattern
	for _, f := range flags {
		if f == 'c' {
			expr = "(?i)" + expr
			break
		}
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return false, fmt.Errorf("runtime: invalid regex pattern %q: %w", pattern, err)
	}
	return re.Match(buf[start:end]), nil
}

// StringEqualMap implements the fast-path shape for a group of
// sibling "string =" tests at the same fixed offset, collapsed by the code
// generator into one longest-match literal lookup instead of one comparison
// per sibling. Grounded on shirou-gofile's matchStringGroup (detector_match_groups.go),
// generalized from "first pattern that Contains" to "longest literal whose
// bytes equal the window at offset", since sibling rule order in the table
// must not change which MIME wins when one literal prefixes another.
func StringEqualMap(buf []byte, offset int64, table map[string]string) (string, bool) {
	if offset < 0 || offset > int64(len(buf)) {
		return "", false
	}
	window := buf[offset:]
	best := ""
	bestMime := ""
	for pattern, mime := range table {
		if len(pattern) <= len(best) {
			continue
		}
		if len(window) >= len(pattern) && string(window[:len(pattern)]) == pattern {
			best = pattern
			bestMime = mime
		}
	}
	return bestMime, best != ""
}

func slice(buf []byte, offset int64, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if offset < 0 || offset+int64(n) > int64(len(buf)) {
		return nil, fmt.Errorf("runtime: read of %d bytes at offset %d exceeds buffer of length %d", n, offset, len(buf))
	}
	return buf[offset : offset+int64(n)], nil
}
