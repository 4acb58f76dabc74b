package codegen

import (
	"fmt"
	"strings"

	"github.com/als123/libmimemagic/internal/rule"
)

// lowerGeneral handles one Test that neither fast shape (the beshort or
// string-equal sibling groups) claimed: an offset preamble, a call to the
// matching runtime function, and a success block.
func (g *Generator) lowerGeneral(t *rule.Test, level int) {
	// Each test gets its own block: siblings at the same level must not
	// collide over "matched"/"err"/offL identifiers, since they are
	// emitted as a flat sequence of independent attempts.
	fmt.Fprintf(&g.body, "\t{\n")
	preamble, off, guarded := g.genOffset(t, level)
	g.body.WriteString(preamble)

	switch {
	case t.TargetOper == "x" || t.TestCode == "default":
		g.emitAlwaysMatch(t, level)

	case isIntegerCode(t.TestCode):
		g.emitIntegerTest(t, level, off)

	case t.TestCode == "string":
		g.emitStringTest(t, level, off)

	case t.TestCode == "search":
		g.emitSearchTest(t, level, off)

	case t.TestCode == "regex":
		g.emitRegexTest(t, level, off)

	default:
		// Any other TestCode (the float family, "clear", "pstring", the
		// 16-bit string codes, codes rule.ParseTest marked Invalid) gets no
		// test call, so neither its MIME action nor its subtests are
		// emitted.
		fmt.Fprintf(&g.body, "\t_ = %s\n", off)
	}

	if guarded {
		fmt.Fprintf(&g.body, "\t}\n")
	}
	fmt.Fprintf(&g.body, "\t}\n")
}

// genOffset emits the offset-resolution preamble and returns the
// Go variable name the test body should read. When the offset is indirect,
// the remaining emission must be wrapped in the "err != nil" guard the
// preamble opens; the returned bool tells lowerGeneral to close it.
//
// A non-indirect offset is just base, plus the parent's resolved offset
// when outerRelative ("&base"). An indirect offset ("(base...)") first
// resolves the address to read the pointer from — base, plus the parent's
// offset when innerRelative ("(&base...)") — then dereferences it and
// applies any trailing operand arithmetic; an outerRelative indirect offset
// ("&(base...)") adds the parent's offset to that dereferenced result, not
// to the read address.
func (g *Generator) genOffset(t *rule.Test, level int) (preamble, varName string, guarded bool) {
	off := offsetVar(level)
	base, _ := t.Offset.BaseInt()
	parent := offsetVar(level - 1)

	var b strings.Builder

	if !t.Offset.Indirect {
		loc := fmt.Sprintf("%d", base)
		if t.Offset.OuterRelative && level > 0 {
			loc = fmt.Sprintf("%s + %d", parent, base)
		}
		fmt.Fprintf(&b, "\t%s := int64(%s)\n", off, loc)
		return b.String(), off, false
	}

	readAddr := fmt.Sprintf("%d", base)
	if t.Offset.InnerRelative && level > 0 {
		readAddr = fmt.Sprintf("%s + %d", parent, base)
	}

	operand, _ := t.Offset.OperandInt()
	opLit := byte(0)
	if t.Offset.Op != 0 {
		opLit = t.Offset.Op
	}
	fmt.Fprintf(&b, "\t%sPtr := int64(%s)\n", off, readAddr)
	fmt.Fprintf(&b, "\t%s, err := runtime.GetOffset(buf, %sPtr, %q, %v, %d, %d)\n",
		off, off, rune(t.Offset.TypeFlag), g.littleEndian, opLit, operand)
	fmt.Fprintf(&b, "\tif err != nil {\n\t\thaveError = true\n\t} else {\n")
	if t.Offset.OuterRelative && level > 0 {
		fmt.Fprintf(&b, "\t\t%s += %s\n", off, parent)
	}
	return b.String(), off, true
}

func isIntegerCode(code string) bool {
	switch code {
	case "byte", "beshort", "leshort", "belong", "lelong", "bequad", "lequad":
		return true
	}
	return false
}

func integerFuncName(code string, unsigned bool) string {
	var base string
	switch code {
	case "byte":
		base = "Byte"
	case "beshort":
		base = "BeShort"
	case "leshort":
		base = "LeShort"
	case "belong":
		base = "BeLong"
	case "lelong":
		base = "LeLong"
	case "bequad":
		base = "BeQuad"
	case "lequad":
		base = "LeQuad"
	}
	if unsigned {
		return "U" + base + "Match"
	}
	return base + "Match"
}

// strippedTarget returns a Test's literal operand. rule.ParseTest already
// strips any leading comparison operator from Target as it classifies it
// into TargetOper, so this is just t.Target — named separately so call
// sites read as "the operand", not "whatever ParseTest happened to leave".
func strippedTarget(t *rule.Test) string {
	return t.Target
}

func (g *Generator) emitIntegerTest(t *rule.Test, level int, off string) {
	value, _ := parseUintLiteral(strippedTarget(t))
	mask := uint64(0)
	if t.Mask != "" {
		mask, _ = parseUintLiteral(t.Mask)
	}
	fn := integerFuncName(t.TestCode, t.Unsigned)
	cmp := compareFlagExpr(t.TargetOper)

	fmt.Fprintf(&g.body, "\tmatched, err := runtime.%s(buf, %d, %s, 0x%x, %s)\n", fn, value, cmp, mask, off)
	fmt.Fprintf(&g.body, "\tif err != nil {\n\t\thaveError = true\n\t} else if matched {\n")
	g.emitSuccessBody(t, level)
	fmt.Fprintf(&g.body, "\t}\n")
}

func (g *Generator) emitStringTest(t *rule.Test, level int, off string) {
	pattern := splitStringBytes(strippedTarget(t))
	cmp := compareFlagExpr(t.TargetOper)

	fmt.Fprintf(&g.body, "\t// %s\n", showStr(pattern))
	fmt.Fprintf(&g.body, "\tmatched, err := runtime.StringMatch(buf, %s, %s, %s)\n", off, goStringLit(pattern), cmp)
	fmt.Fprintf(&g.body, "\tif err != nil {\n\t\thaveError = true\n\t} else if matched {\n")
	g.emitSuccessBody(t, level)
	fmt.Fprintf(&g.body, "\t}\n")
}

func (g *Generator) emitSearchTest(t *rule.Test, level int, off string) {
	if t.Limit == "" {
		fmt.Fprintf(&g.body, "\t_ = %s\n", off)
		return
	}
	limit, _ := parseUintLiteral(t.Limit)
	pattern := splitStringBytes(strippedTarget(t))

	fmt.Fprintf(&g.body, "\t// %s\n", showStr(pattern))
	fmt.Fprintf(&g.body, "\tmatched, _, err := runtime.StringSearch(buf, %s, %d, %s)\n", off, limit, goStringLit(pattern))
	fmt.Fprintf(&g.body, "\tif err != nil {\n\t\thaveError = true\n\t} else if matched {\n")
	g.emitSuccessBody(t, level)
	fmt.Fprintf(&g.body, "\t}\n")
}

func (g *Generator) emitRegexTest(t *rule.Test, level int, off string) {
	limit := 0
	if t.Limit != "" {
		n, _ := parseUintLiteral(t.Limit)
		limit = int(n)
	}
	for _, f := range t.Flags {
		if f == 'l' {
			limit *= 80
		}
	}

	fmt.Fprintf(&g.body, "\tmatched, err := runtime.RegexMatch(buf, %s, %d, %s, %s)\n",
		off, limit, goStringLit([]byte(t.Target)), goByteSliceLit(t.Flags))
	fmt.Fprintf(&g.body, "\tif err != nil {\n\t\thaveError = true\n\t} else if matched {\n")
	g.emitSuccessBody(t, level)
	fmt.Fprintf(&g.body, "\t}\n")
}

func (g *Generator) emitAlwaysMatch(t *rule.Test, level int) {
	g.emitSuccessBody(t, level)
}

// emitSuccessBody either terminates with the rule's MIME action, or
// recurses into the subtests one level deeper.
func (g *Generator) emitSuccessBody(t *rule.Test, level int) {
	if t.SetMime != "" {
		fmt.Fprintf(&g.body, "\t*mime = %s\n", goStringLit([]byte(t.SetMime)))
		fmt.Fprintf(&g.body, "\treturn Match, nil\n")
		return
	}
	g.putTests(t.Subtests, level+1)
}
