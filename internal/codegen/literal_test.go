package codegen

import (
	"bytes"
	"testing"
)

func TestSplitStringBytes(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want []byte
	}{
		"plain":             {"PNG", []byte("PNG")},
		"hex escape":        {`\x41\x42`, []byte{0x41, 0x42}},
		"malformed hex":     {`\xabcd`, []byte{0xab, 'c', 'd'}},
		"octal escape":      {`\101\102`, []byte{0x41, 0x42}},
		"newline escape":    {`a\nb`, []byte{'a', '\n', 'b'}},
		"literal backslash": {`a\\b`, []byte{'a', '\\', 'b'}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := splitStringBytes(tc.raw)
			if !bytes.Equal(got, tc.want) {
				t.Errorf("splitStringBytes(%q) = % x, want % x", tc.raw, got, tc.want)
			}
		})
	}
}

func TestSplitStringBytesThenBytesToGoRoundTripsBytes(t *testing.T) {
	raw := `\xabcd`
	b := splitStringBytes(raw)
	lit := bytesToGo(b)
	if lit != `[]byte{0xab, 0x63, 0x64}` {
		t.Errorf("bytesToGo(% x) = %s, want a []byte{...} composite literal", b, lit)
	}
}

func TestBytesToGoPicksPlainStringForPrintableASCII(t *testing.T) {
	got := bytesToGo([]byte("%PDF"))
	want := `"%PDF"`
	if got != want {
		t.Errorf("bytesToGo(%%PDF) = %s, want %s", got, want)
	}
}

func TestShowStrEscapesControlCharacters(t *testing.T) {
	got := showStr([]byte{'a', 0x00, 'b'})
	want := `a\000b`
	if got != want {
		t.Errorf("showStr = %q, want %q", got, want)
	}
}
