package codegen

import "strings"

// compareFlagExpr translates a Test's TargetOper (one relation character
// from "=<>&^~" plus an optional trailing "!") into the Go expression the
// generated code ORs together and passes to a runtime.*Match call. An
// empty oper (shouldn't occur after rule.ParseTest's
// default-to-"=") falls back to CompareEq so generated code never ORs zero
// terms together.
func compareFlagExpr(oper string) string {
	var flags []string
	for i := 0; i < len(oper); i++ {
		switch oper[i] {
		case '=':
			flags = append(flags, "runtime.CompareEq")
		case '<':
			flags = append(flags, "runtime.CompareLt")
		case '>':
			flags = append(flags, "runtime.CompareGt")
		case '&':
			flags = append(flags, "runtime.CompareSet")
		case '^':
			flags = append(flags, "runtime.CompareClr")
		case '~':
			flags = append(flags, "runtime.CompareNeg")
		case '!':
			flags = append(flags, "runtime.CompareNot")
		}
	}
	if len(flags) == 0 {
		return "runtime.CompareEq"
	}
	return strings.Join(flags, "|")
}
