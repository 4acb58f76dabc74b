package rule

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// stack is the nesting stack that tracks the current parent during tree
// construction: never empty, strictly increasing in Level from bottom to top.
type stack struct {
	frames []*Test
}

func newStack(root *Test) *stack {
	return &stack{frames: []*Test{root}}
}

func (s *stack) top() *Test {
	return s.frames[len(s.frames)-1]
}

// parentFor pops frames while top.Level >= level and returns the new top,
// which becomes the parent of a Test at the given level.
func (s *stack) parentFor(level int) *Test {
	for len(s.frames) > 1 && s.top().Level >= level {
		s.frames = s.frames[:len(s.frames)-1]
	}
	return s.top()
}

// push pushes t if it is deeper than the current top, maintaining the
// strictly-increasing invariant.
func (s *stack) push(t *Test) {
	if t.Level > s.top().Level {
		s.frames = append(s.frames, t)
	}
}

// Tree is the result of building the rule tree from one magic source file.
type Tree struct {
	Root *Test
}

// BuildTree reads a magic rule database and assembles it into a Tree.
// Diagnostics (unparseable lines, unimplemented directives,
// recognized-but-ignored "name"/"use" blocks) are appended to diags;
// BuildTree itself only fails on I/O error.
func BuildTree(path string, cfg Config, diags *Sink) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule database %s: %w", path, err)
	}
	defer f.Close()
	return buildTreeFromReader(f, cfg, diags)
}

func buildTreeFromReader(r io.Reader, cfg Config, diags *Sink) (*Tree, error) {
	root := &Test{Level: -1}
	st := newStack(root)
	var last *Test

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lnum := 0
	for scanner.Scan() {
		lnum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || isComment(line) {
			continue
		}

		fields, ok := SplitLine(line)
		if !ok {
			diags.Warnf("lexer", lnum, "unparseable line %q", line)
			continue
		}

		switch fields.Offset {
		case "!:mime":
			if last != nil {
				last.SetAction(strings.TrimSpace(fields.Test))
			}
			continue
		case "!:strength":
			if last != nil {
				if s, ok := ParseStrength(fields.Test + fields.Target); ok {
					last.Strength = s
				}
			}
			continue
		case "!:apple":
			continue
		}

		if fields.Test == "name" || fields.Test == "use" {
			// Both "name" and "use" blocks are parsed into a no-op and
			// warned about, not silently accepted nor treated as an error.
			diags.Warnf("tree", lnum, "%q block is recognized but not implemented; ignoring", fields.Test)
			if fields.Test == "use" {
				continue
			}
			continue
		}

		level := len(fields.Levels)
		t := ParseTest(fields.Test, fields.Target, lnum, cfg, diags)
		t.Lnum = lnum
		t.Level = level
		t.Offset = ParseOffset(fields.Offset, lnum, diags)
		t.Name = fields.Msg
		t.RefreshTestID()

		parent := st.parentFor(level)
		t.Parent = parent
		parent.Subtests = append(parent.Subtests, t)
		st.push(t)
		last = t
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rule database: %w", err)
	}

	return &Tree{Root: root}, nil
}
