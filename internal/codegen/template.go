package codegen

import "fmt"

// prologue renders the fixed header every generated file needs: a package clause,
// the fixed imports every generated file needs, and the Result type the
// emitted RunTests returns.
func prologue(pkg string) string {
	return fmt.Sprintf(`// Code generated by magiccompile. DO NOT EDIT.

package %s

import (
	"errors"

	"github.com/als123/libmimemagic/internal/runtime"
)

// Result is the outcome of a RunTests call.
type Result int

const (
	Fail Result = iota
	Match
	Error
)

var errNoMatchWithError = errors.New("classify: no rule matched and at least one test reported an error")

`, pkg)
}

const epilogue = ""
