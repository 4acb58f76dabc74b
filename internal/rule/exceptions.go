package rule

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ExceptionSet is the set of MIME strings whose rules must not survive
// pruning.
type ExceptionSet map[string]struct{}

// Contains reports whether mime is excluded.
func (e ExceptionSet) Contains(mime string) bool {
	_, ok := e[mime]
	return ok
}

// LoadExceptions reads a file of MIME strings, one per line, "#" starting
// an end-of-line comment, blank lines ignored. Mirrors the line-oriented,
// comment-tolerant reading style of shirou-gofile's Parser.LoadFile.
func LoadExceptions(path string) (ExceptionSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open exception file %s: %w", path, err)
	}
	defer f.Close()

	set := make(ExceptionSet)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		set[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exception file %s: %w", path, err)
	}
	return set, nil
}
