// Package libmimemagic compiles a libmagic-style textual rule database into
// a standalone Go source file that classifies byte buffers into MIME types,
// without interpreting any rule at runtime itself.
package libmimemagic

import (
	"os"

	"github.com/als123/libmimemagic/internal/codegen"
	"github.com/als123/libmimemagic/internal/rule"
)

// CompileResult is the output of one Compile call.
type CompileResult struct {
	Source      []byte
	Diagnostics []rule.Diagnostic
}

// Compile reads cfg.RuleFile (and, if set, cfg.ExceptionFile), builds and
// prunes the rule tree, validates what survives, and renders the generated
// classifier source. It never writes cfg.OutputFile itself; callers decide
// what to do with the result, the same split as shirou-gofile's
// `Parser.LoadFile` (pure transformation) versus its CLI's file-writing.
func Compile(cfg rule.Config) (*CompileResult, error) {
	cfg = cfg.WithDefaults()
	diags := &rule.Sink{}

	var exceptions rule.ExceptionSet
	if cfg.ExceptionFile != "" {
		var err error
		exceptions, err = rule.LoadExceptions(cfg.ExceptionFile)
		if err != nil {
			return nil, err
		}
	}

	tree, err := rule.BuildTree(cfg.RuleFile, cfg, diags)
	if err != nil {
		return nil, err
	}

	pruned := rule.Prune(tree.Root, exceptions)
	rule.Validate(pruned, diags)

	if cfg.Debug {
		for _, d := range diags.All() {
			cfg.Logger.Debug(d.String())
		}
	}

	gen := codegen.NewGenerator(cfg.PackageName, cfg)
	src, err := gen.Generate(pruned)
	if err != nil {
		return nil, err
	}

	return &CompileResult{Source: []byte(src), Diagnostics: diags.All()}, nil
}

// WriteFile writes res.Source to path with 0o644 permissions,
// the mode shirou-gofile's own output helpers use for generated artifacts.
func (res *CompileResult) WriteFile(path string) error {
	return os.WriteFile(path, res.Source, 0o644)
}
