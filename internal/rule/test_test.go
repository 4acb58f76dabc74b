package rule

import "testing"

func TestParseTestClassification(t *testing.T) {
	cfg := Config{TargetEndian: BigEndian}

	tests := map[string]struct {
		testCode     string
		target       string
		wantCode     string
		wantUnsigned bool
		wantOper     string
		wantMask     string
		wantPriority int
	}{
		"plain beshort": {
			testCode:     "beshort",
			target:       "0xcafe",
			wantCode:     "beshort",
			wantOper:     "=",
			wantPriority: PriorityInteger,
		},
		"unsigned short normalizes to target endian": {
			testCode:     "ushort",
			target:       "10",
			wantCode:     "beshort",
			wantUnsigned: true,
			wantOper:     "=",
			wantPriority: PriorityInteger,
		},
		"masked long": {
			testCode:     "long&0xff00",
			target:       "0x100",
			wantCode:     "belong",
			wantMask:     "0xff00",
			wantOper:     "=",
			wantPriority: PriorityInteger,
		},
		"string equality": {
			testCode:     "string",
			target:       "PNG",
			wantCode:     "string",
			wantOper:     "=",
			wantPriority: PriorityStringEq,
		},
		"string inequality": {
			testCode:     "string",
			target:       ">PNG",
			wantCode:     "string",
			wantOper:     ">",
			wantPriority: PriorityOther,
		},
		"always true": {
			testCode:     "byte",
			target:       "x",
			wantCode:     "byte",
			wantOper:     "x",
			wantPriority: PriorityInteger,
		},
		"regex": {
			testCode:     "regex",
			target:       "^foo",
			wantCode:     "regex",
			wantPriority: PriorityRegex,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			diags := &Sink{}
			tr := ParseTest(tc.testCode, tc.target, 1, cfg, diags)
			if tr.TestCode != tc.wantCode {
				t.Errorf("TestCode = %q, want %q", tr.TestCode, tc.wantCode)
			}
			if tr.Unsigned != tc.wantUnsigned {
				t.Errorf("Unsigned = %v, want %v", tr.Unsigned, tc.wantUnsigned)
			}
			if tr.TargetOper != tc.wantOper {
				t.Errorf("TargetOper = %q, want %q", tr.TargetOper, tc.wantOper)
			}
			if tr.Mask != tc.wantMask {
				t.Errorf("Mask = %q, want %q", tr.Mask, tc.wantMask)
			}
			if tr.Priority != tc.wantPriority {
				t.Errorf("Priority = %d, want %d", tr.Priority, tc.wantPriority)
			}
		})
	}
}

func TestNormalizeByteOrderUsesTargetNotHost(t *testing.T) {
	if got := normalizeByteOrder("short", BigEndian); got != "beshort" {
		t.Errorf("normalizeByteOrder(short, big) = %q, want beshort", got)
	}
	if got := normalizeByteOrder("short", LittleEndian); got != "leshort" {
		t.Errorf("normalizeByteOrder(short, little) = %q, want leshort", got)
	}
	if got := normalizeByteOrder("beshort", LittleEndian); got != "beshort" {
		t.Errorf("normalizeByteOrder should not rewrite an already-qualified code, got %q", got)
	}
}

func TestParseTestStripsExplicitOperatorButNotImplicitOne(t *testing.T) {
	cfg := Config{TargetEndian: BigEndian}
	diags := &Sink{}

	implicit := ParseTest("string", "MZ", 1, cfg, diags)
	if implicit.TargetOper != "=" {
		t.Fatalf("TargetOper = %q, want implicit =", implicit.TargetOper)
	}
	if implicit.Target != "MZ" {
		t.Errorf("Target = %q, want MZ unchanged since no operator character was present", implicit.Target)
	}

	explicit := ParseTest("string", ">MZ", 2, cfg, diags)
	if explicit.TargetOper != ">" {
		t.Fatalf("TargetOper = %q, want >", explicit.TargetOper)
	}
	if explicit.Target != "MZ" {
		t.Errorf("Target = %q, want the leading > stripped", explicit.Target)
	}
}

func TestRefreshTestIDDependsOnOffset(t *testing.T) {
	cfg := Config{TargetEndian: BigEndian}
	diags := &Sink{}
	tr := ParseTest("byte", "1", 1, cfg, diags)
	before := tr.TestID

	tr.Offset = ParseOffset("4", 1, diags)
	tr.RefreshTestID()
	after := tr.TestID

	if before == after {
		t.Errorf("RefreshTestID did not pick up the new offset: before=%q after=%q", before, after)
	}
}
