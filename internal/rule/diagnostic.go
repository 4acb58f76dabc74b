package rule

import "fmt"

// Diagnostic is a structured warning emitted by one pipeline stage. The
// distilled spec calls for "textual warnings" only; this type still prints
// as one line of text, but lets the CLI filter/sort/count them instead of
// scraping stderr.
type Diagnostic struct {
	Line    int    // 0 when the diagnostic is not tied to a source line
	Stage   string // "lexer", "offset", "test", "tree", "prune", "validate"
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", d.Stage, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Stage, d.Message)
}

// Sink collects diagnostics across a compile run. It is passed by pointer
// into every stage constructor rather than read from a package-level slice.
type Sink struct {
	diags []Diagnostic
}

func (s *Sink) Warnf(stage string, line int, format string, args ...any) {
	s.diags = append(s.diags, Diagnostic{
		Line:    line,
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	})
}

func (s *Sink) All() []Diagnostic {
	return s.diags
}

func (s *Sink) Len() int {
	return len(s.diags)
}
