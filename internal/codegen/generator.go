// Package codegen turns a pruned, validated rule.Test tree into a standalone
// Go source file exposing RunTests(buf, mime) (Result, error). It is
// grounded on shirou-gofile's own text-emission style (internal/magic/print.go's
// FileShowStr, a straight fmt.Fprintf writer rather than a template engine or
// an AST-builder library), generalized from "print one debug line" to
// "assemble one generated source file" by routing every emission through a
// small set of strings.Builder streams instead of an io.Writer.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/als123/libmimemagic/internal/rule"
)

// Generator accumulates two text streams (data tables and the code body)
// plus a monotonic counter used to name fast-shape tables.
type Generator struct {
	pkg          string
	littleEndian bool
	tables       strings.Builder
	body         strings.Builder
	tableCount   int
	maxLevel     int
}

// NewGenerator creates a Generator that emits package pkg, reading
// multi-byte indirect pointers in the endianness cfg.TargetEndian selects.
func NewGenerator(pkg string, cfg rule.Config) *Generator {
	return &Generator{
		pkg:          pkg,
		littleEndian: cfg.TargetEndian == rule.LittleEndian,
	}
}

// Generate renders the full output file for root (the synthesized level -1
// node whose Subtests are the top-level rules): a prologue, the data
// tables collected while emitting the body, the RunTests function, and
// an epilogue.
func (g *Generator) Generate(root *rule.Test) (string, error) {
	fmt.Fprintf(&g.body, "func RunTests(buf []byte, mime *string) (Result, error) {\n")
	fmt.Fprintf(&g.body, "\thaveError := false\n")
	g.putTests(root.Subtests, 0)
	fmt.Fprintf(&g.body, "\tif haveError {\n")
	fmt.Fprintf(&g.body, "\t\treturn Error, errNoMatchWithError\n")
	fmt.Fprintf(&g.body, "\t}\n")
	fmt.Fprintf(&g.body, "\treturn Fail, nil\n")
	fmt.Fprintf(&g.body, "}\n")

	var out strings.Builder
	out.WriteString(prologue(g.pkg))
	out.WriteString(g.tables.String())
	out.WriteString(g.body.String())
	out.WriteString(epilogue)
	return out.String(), nil
}

func (g *Generator) nextTableName(prefix string) string {
	g.tableCount++
	return fmt.Sprintf("%s%d", prefix, g.tableCount)
}

// putTests partitions tests at one level by priority, ascending, stable
// within each class.
func (g *Generator) putTests(tests []*rule.Test, level int) {
	if len(tests) == 0 {
		return
	}
	byPriority := map[int][]*rule.Test{}
	var priorities []int
	for _, t := range tests {
		if _, ok := byPriority[t.Priority]; !ok {
			priorities = append(priorities, t.Priority)
		}
		byPriority[t.Priority] = append(byPriority[t.Priority], t)
	}
	sort.Ints(priorities)
	for _, p := range priorities {
		g.putTests2(byPriority[p], level)
	}
}

// putTests2 extracts the two fast shapes of §4.7 step 1-2 from one priority
// class, then lowers everything left one test at a time.
func (g *Generator) putTests2(group []*rule.Test, level int) {
	beFast, rest := selectBeShortGroup(group)
	if len(beFast) > 0 {
		g.emitBeShortGroup(beFast, level)
	} else {
		rest = group
	}

	strFast, rest2 := selectStringEqualGroup(rest)
	if len(strFast) > 0 {
		g.emitStringEqualMap(strFast, level)
	} else {
		rest2 = rest
	}

	for _, t := range rest2 {
		g.lowerGeneral(t, level)
	}
}

// selectBeShortGroup extracts the fast-path group: sibling
// "beshort =" tests at offset 0, signed, unmasked, with a MIME action.
// The group's table holds no masks, so a masked test stays in rest.
func selectBeShortGroup(tests []*rule.Test) (fast, rest []*rule.Test) {
	for _, t := range tests {
		if t.TestCode == "beshort" && !t.Unsigned && t.TargetOper == "=" &&
			t.Mask == "" && t.SetMime != "" && t.Offset.NoOffset {
			fast = append(fast, t)
		} else {
			rest = append(rest, t)
		}
	}
	return fast, rest
}

// selectStringEqualGroup extracts the string-map fast-path group: sibling
// "string =" tests, no flags, at offset 0, with a MIME action.
func selectStringEqualGroup(tests []*rule.Test) (fast, rest []*rule.Test) {
	for _, t := range tests {
		if t.TestCode == "string" && len(t.Flags) == 0 && t.Offset.NoOffset &&
			t.TargetOper == "=" && t.SetMime != "" {
			fast = append(fast, t)
		} else {
			rest = append(rest, t)
		}
	}
	return fast, rest
}

func (g *Generator) emitBeShortGroup(tests []*rule.Test, level int) {
	name := g.nextTableName("beShortTable")
	fmt.Fprintf(&g.tables, "var %s = map[uint16]string{\n", name)
	for _, t := range tests {
		v, ok := parseUintLiteral(t.Target)
		if !ok {
			continue
		}
		fmt.Fprintf(&g.tables, "\t0x%04x: %s,\n", uint16(v), goStringLit([]byte(t.SetMime)))
	}
	fmt.Fprintf(&g.tables, "}\n\n")

	fmt.Fprintf(&g.body, "\tif m, ok := runtime.BeShortGroup(buf, int64(0), %s); ok {\n", name)
	fmt.Fprintf(&g.body, "\t\t*mime = m\n")
	fmt.Fprintf(&g.body, "\t\treturn Match, nil\n")
	fmt.Fprintf(&g.body, "\t}\n")
}

func (g *Generator) emitStringEqualMap(tests []*rule.Test, level int) {
	name := g.nextTableName("stringEqualTable")
	fmt.Fprintf(&g.tables, "var %s = map[string]string{\n", name)
	for _, t := range tests {
		lit := splitStringBytes(t.Target)
		fmt.Fprintf(&g.tables, "\t// %s\n", showStr(lit))
		fmt.Fprintf(&g.tables, "\t%s: %s,\n", goStringLit(lit), goStringLit([]byte(t.SetMime)))
	}
	fmt.Fprintf(&g.tables, "}\n\n")

	fmt.Fprintf(&g.body, "\tif m, ok := runtime.StringEqualMap(buf, int64(0), %s); ok {\n", name)
	fmt.Fprintf(&g.body, "\t\t*mime = m\n")
	fmt.Fprintf(&g.body, "\t\treturn Match, nil\n")
	fmt.Fprintf(&g.body, "\t}\n")
}

func offsetVar(level int) string {
	return fmt.Sprintf("off%d", level)
}

// parseUintLiteral parses a rule target as a decimal, hex (0x…) or octal
// (0…) integer literal, the same grammar rule.Offset.BaseInt uses. A
// leading '-' yields the two's-complement bit pattern.
func parseUintLiteral(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	var v uint64
	var err error
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		_, err = fmt.Sscanf(s[2:], "%x", &v)
	case len(s) > 1 && s[0] == '0':
		_, err = fmt.Sscanf(s, "%o", &v)
	default:
		_, err = fmt.Sscanf(s, "%d", &v)
	}
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}
