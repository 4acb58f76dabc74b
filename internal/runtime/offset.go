package runtime

import "fmt"

// BeShortGroup implements the fast-path shape for a group of sibling
// "beshort =" tests at a fixed offset: one big-endian read followed by one
// table lookup, instead of one comparison per sibling. Grounded on
// shirou-gofile's matchShortGroup (detector_match_groups.go), generalized
// from a pre-read-both-endian-then-switch-on-entry-type loop to a single
// map keyed by the already-normalized big-endian value.
func BeShortGroup(buf []byte, offset int64, table map[uint16]string) (string, bool) {
	v, err := readUint(buf, offset, 2, false)
	if err != nil {
		return "", false
	}
	mime, ok := table[uint16(v)]
	return mime, ok
}

// indirectWidth maps an offset type flag (b/s/l, or its uppercase
// force-big-endian form) to its width in bytes.
func indirectWidth(typeFlag byte) (int, bool) {
	switch typeFlag {
	case 'b', 'B':
		return 1, true
	case 's', 'S':
		return 2, true
	case 'l', 'L':
		return 4, true
	default:
		return 0, false
	}
}

// GetOffset resolves an indirect offset: read a pointer of the width implied
// by typeFlag at base (big-endian if typeFlag is uppercase, else littleEndian)
// and apply the operand arithmetic a trailing ".[+-*/%&|^]operand" clause
// requests. base is the address to read from, already adjusted by the caller
// for an inner "&" relative offset (added to base before this call); an outer
// "&" relative offset is added by the caller to this function's result, not
// to base. Grounded on shirou-gofile's readIndirectPointer + calculateTargetOffset
// pair (detector_match.go), collapsed into the single function codegen calls
// for every "(...)" offset form instead of two helpers plus an
// entry-mutating caller.
func GetOffset(buf []byte, base int64, typeFlag byte, littleEndian bool, op byte, operand int64) (int64, error) {
	width, ok := indirectWidth(typeFlag)
	if !ok {
		return 0, fmt.Errorf("runtime: unsupported indirect offset type flag %q", typeFlag)
	}

	forceBig := typeFlag == 'B' || typeFlag == 'S' || typeFlag == 'L'
	le := littleEndian && !forceBig

	raw, err := readUint(buf, base, width, le)
	if err != nil {
		return 0, err
	}
	pointer := int64(raw)

	switch op {
	case '+':
		pointer += operand
	case '-':
		pointer -= operand
	case '*':
		pointer *= operand
	case '/':
		if operand == 0 {
			return 0, fmt.Errorf("runtime: indirect offset divide by zero")
		}
		pointer /= operand
	case '%':
		if operand == 0 {
			return 0, fmt.Errorf("runtime: indirect offset modulo by zero")
		}
		pointer %= operand
	case '&':
		pointer &= operand
	case '|':
		pointer |= operand
	case '^':
		pointer ^= operand
	}

	return pointer, nil
}
