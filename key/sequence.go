package key

import "strings"

// Sequence is an ordered series of strokes, e.g. "g g" or "ctrl+k ctrl+c".
type Sequence []Event

// ParseSequence parses a space-separated sequence spec. An empty string
// yields an empty sequence.
func ParseSequence(spec string) (Sequence, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, nil
	}
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		ev, err := Parse(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, ev)
	}
	return seq, nil
}

// MustParseSequence parses a sequence spec and panics on error. Use only
// for known-valid sequences in initialization code.
func MustParseSequence(spec string) Sequence {
	seq, err := ParseSequence(spec)
	if err != nil {
		panic("key: invalid sequence " + spec + ": " + err.Error())
	}
	return seq
}

// Equals reports whether two sequences contain the same strokes in order.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, ev := range s {
		if !ev.SameStroke(other[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether s begins with prefix. An empty prefix matches
// every sequence.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, ev := range prefix {
		if !ev.SameStroke(s[i]) {
			return false
		}
	}
	return true
}

// String returns the space-separated canonical spec.
func (s Sequence) String() string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, len(s))
	for i, ev := range s {
		parts[i] = ev.ID()
	}
	return strings.Join(parts, " ")
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
