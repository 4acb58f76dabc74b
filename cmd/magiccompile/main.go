// Command magiccompile reads a libmagic-style rule database and an
// exception list, and writes a generated Go source file implementing
// RunTests for the surviving rules.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/als123/libmimemagic"
	"github.com/als123/libmimemagic/internal/rule"
)

const programName = "magiccompile"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		exceptionFile string
		pkgName       string
		targetEndian  string
		debug         bool
		quiet         bool
	)

	cmd := &cobra.Command{
		Use:           programName + " <rules-file> <output.go>",
		Short:         "Compile a magic rule database into a Go classifier",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			endian, err := parseEndian(targetEndian)
			if err != nil {
				return err
			}

			cfg := rule.Config{
				RuleFile:      args[0],
				ExceptionFile: exceptionFile,
				OutputFile:    args[1],
				PackageName:   pkgName,
				TargetEndian:  endian,
				Debug:         debug,
				Quiet:         quiet,
			}.WithDefaults()

			res, err := libmimemagic.Compile(cfg)
			if err != nil {
				return fmt.Errorf("compile %s: %w", cfg.RuleFile, err)
			}

			if !cfg.Quiet {
				for _, d := range res.Diagnostics {
					fmt.Fprintf(os.Stderr, "%s: %s\n", programName, d.String())
				}
			}

			if err := res.WriteFile(cfg.OutputFile); err != nil {
				return fmt.Errorf("write %s: %w", cfg.OutputFile, err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&exceptionFile, "exceptions", "e", "", "path to a MIME exception list")
	flags.StringVar(&pkgName, "package", "", "package name for the generated file (default \"classify\")")
	flags.StringVar(&targetEndian, "target-endian", "", "byte order the generated classifier assumes (little|big, default host endianness)")
	flags.BoolVarP(&debug, "debug", "d", false, "log every diagnostic at debug level as the compiler runs")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress diagnostic output on success")

	return cmd
}

func parseEndian(s string) (rule.Endian, error) {
	switch s {
	case "":
		return "", nil
	case "little":
		return rule.LittleEndian, nil
	case "big":
		return rule.BigEndian, nil
	default:
		return "", fmt.Errorf("invalid --target-endian %q: want \"little\" or \"big\"", s)
	}
}
