package rule

import "regexp"

// Strength records a parsed "!:strength" directive. The value is preserved
// on the Test for future priority tuning but is deliberately never
// consulted by the pruner or generator: libmagic's own strength tuning is
// a runtime-interpreter concern, and this compiler never interprets a
// rule, only compiles it.
type Strength struct {
	Op    byte // one of + * / -
	Value string
	Set   bool
}

var strengthRE = regexp.MustCompile(`([+*/-])\s*(\w+)`)

// ParseStrength parses the operand of a "!:strength" directive, matching
// against the concatenation of the test and target fields the way
// shirou-gofile's parser_strength.go does.
func ParseStrength(testAndTarget string) (Strength, bool) {
	m := strengthRE.FindStringSubmatch(testAndTarget)
	if m == nil {
		return Strength{}, false
	}
	return Strength{Op: m[1][0], Value: m[2], Set: true}, true
}
