package runtime

import "testing"

func TestStringEqual(t *testing.T) {
	buf := []byte("%PDF-1.4")
	matched, err := StringEqual(buf, 0, "%PDF")
	if err != nil {
		t.Fatalf("StringEqual: %v", err)
	}
	if !matched {
		t.Errorf("expected %%PDF prefix to match")
	}

	matched, err = StringEqual(buf, 0, "%PNG")
	if err != nil {
		t.Fatalf("StringEqual: %v", err)
	}
	if matched {
		t.Errorf("did not expect %%PNG to match %%PDF-1.4")
	}
}

func TestStringEqualOutOfRange(t *testing.T) {
	if _, err := StringEqual([]byte("ab"), 0, "abcdef"); err == nil {
		t.Fatalf("expected an error when the pattern runs past the end of buf")
	}
}

func TestStringLessGreater(t *testing.T) {
	buf := []byte("banana")
	less, err := StringLess(buf, 0, "cherry")
	if err != nil {
		t.Fatalf("StringLess: %v", err)
	}
	if !less {
		t.Errorf("expected banana < cherry")
	}

	greater, err := StringGreater(buf, 0, "apple")
	if err != nil {
		t.Fatalf("StringGreater: %v", err)
	}
	if !greater {
		t.Errorf("expected banana > apple")
	}
}

func TestStringMatchDispatchesOnCompareFlag(t *testing.T) {
	buf := []byte("banana")

	if matched, err := StringMatch(buf, 0, "banana", CompareEq); err != nil || !matched {
		t.Errorf("StringMatch eq = %v, %v, want true, nil", matched, err)
	}
	if matched, err := StringMatch(buf, 0, "apple", CompareGt); err != nil || !matched {
		t.Errorf("StringMatch gt = %v, %v, want true, nil", matched, err)
	}
	if matched, err := StringMatch(buf, 0, "banana", CompareEq|CompareNot); err != nil || matched {
		t.Errorf("StringMatch eq|not = %v, %v, want false, nil", matched, err)
	}
}

func TestStringSearchFindsWithinLimit(t *testing.T) {
	buf := []byte("xxxxneedlexxxx")
	matched, pos, err := StringSearch(buf, 0, 10, "needle")
	if err != nil {
		t.Fatalf("StringSearch: %v", err)
	}
	if !matched || pos != 4 {
		t.Errorf("StringSearch = (%v, %d), want (true, 4)", matched, pos)
	}
}

func TestStringSearchRespectsLimit(t *testing.T) {
	buf := []byte("xxxxneedlexxxx")
	matched, _, err := StringSearch(buf, 0, 3, "needle")
	if err != nil {
		t.Fatalf("StringSearch: %v", err)
	}
	if matched {
		t.Errorf("did not expect a match when the needle falls outside the search limit")
	}
}

func TestStringSearchNoLimitSearchesToEnd(t *testing.T) {
	buf := []byte("xxxxneedlexxxx")
	matched, _, err := StringSearch(buf, 0, 0, "needle")
	if err != nil {
		t.Fatalf("StringSearch: %v", err)
	}
	if !matched {
		t.Errorf("expected a zero limit to mean search to the end of buf")
	}
}

func TestRegexMatchCaseInsensitiveFlag(t *testing.T) {
	buf := []byte("Hello World")
	matched, err := RegexMatch(buf, 0, 0, "^hello", []byte{'c'})
	if err != nil {
		t.Fatalf("RegexMatch: %v", err)
	}
	if !matched {
		t.Errorf("expected case-insensitive regex to match Hello")
	}
}

func TestRegexMatchInvalidPatternIsAnError(t *testing.T) {
	if _, err := RegexMatch([]byte("x"), 0, 0, "(unclosed", nil); err == nil {
		t.Fatalf("expected an error for an invalid regex pattern")
	}
}

func TestStringEqualMapPicksLongestMatchingLiteral(t *testing.T) {
	table := map[string]string{
		"PK":         "application/zip",
		"PK\x03\x04": "application/zip",
		"PK\x05\x06": "application/zip-empty",
	}
	mime, ok := StringEqualMap([]byte("PK\x05\x06rest"), 0, table)
	if !ok || mime != "application/zip-empty" {
		t.Errorf("StringEqualMap = (%q, %v), want (application/zip-empty, true)", mime, ok)
	}
}

func TestStringEqualMapNoMatch(t *testing.T) {
	table := map[string]string{"GIF89a": "image/gif"}
	_, ok := StringEqualMap([]byte("not a gif"), 0, table)
	if ok {
		t.Errorf("did not expect a match")
	}
}
