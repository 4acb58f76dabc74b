// Package rule parses the textual libmagic rule grammar into a Test tree,
// prunes it to paths that can yield a MIME action, and validates what
// survives. It has no knowledge of the code generator that eventually
// consumes its output.
package rule

import (
	"log/slog"
	"os"
	"unsafe"
)

// Endian selects the byte order the generated classifier will assume for
// the buffer it inspects at runtime. This is the compiler's own
// configuration knob, not the compiling host's endianness, per the
// REDESIGN FLAG on host-endianness-dependent normalization.
type Endian string

const (
	LittleEndian Endian = "little"
	BigEndian    Endian = "big"
)

// hostEndian reports the endianness of the machine running the compiler.
// Used only to pick Config.TargetEndian's default.
func hostEndian() Endian {
	var i uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}

// Config is the explicit configuration value threaded through every stage
// of the pipeline, replacing libmagic's own ambient "OptDebug" /
// "RuntimeDebug" globals with an explicitly passed value.
type Config struct {
	RuleFile      string
	ExceptionFile string
	OutputFile    string
	PackageName   string
	TargetEndian  Endian
	Debug         bool
	Quiet         bool
	Logger        *slog.Logger
}

// WithDefaults fills in zero-valued fields (endianness, package name,
// logger) and returns the result; it does not mutate the receiver.
func (c Config) WithDefaults() Config {
	if c.TargetEndian == "" {
		c.TargetEndian = hostEndian()
	}
	if c.PackageName == "" {
		c.PackageName = "classify"
	}
	if c.Logger == nil {
		level := slog.LevelWarn
		if c.Debug {
			level = slog.LevelDebug
		}
		c.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return c
}
