package testutil

import "testing"

// ScriptedSource is a dice.Source that replays a fixed list of draws and
// fails the test on any draw it was not scripted for.
type ScriptedSource struct {
	t     testing.TB
	vals  []int
	calls []int
}

// NewScriptedSource returns a source that answers successive Intn calls with vals.
//
// Precondition: every vals[i] must be valid for the bound of the i-th Intn call.
// Postcondition: an out-of-range value or an extra call fails t immediately.
func NewScriptedSource(t testing.TB, vals ...int) *ScriptedSource {
	t.Helper()
	return &ScriptedSource{t: t, vals: vals}
}

// Intn returns the next scripted value.
func (s *ScriptedSource) Intn(n int) int {
	s.t.Helper()
	i := len(s.calls)
	s.calls = append(s.calls, n)
	if i >= len(s.vals) {
		s.t.Fatalf("scripted source exhausted: unexpected draw #%d with n=%d", i+1, n)
		return 0
	}
	v := s.vals[i]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted draw #%d: value %d out of range [0, %d)", i+1, v, n)
		return 0
	}
	return v
}

// Bounds returns the n argument of every Intn call so far.
func (s *ScriptedSource) Bounds() []int {
	return append([]int(nil), s.calls...)
}

// AssertExhausted fails the test unless every scripted value was consumed.
func (s *ScriptedSource) AssertExhausted() {
	s.t.Helper()
	if len(s.calls) != len(s.vals) {
		s.t.Errorf("scripted source: %d of %d draws consumed", len(s.calls), len(s.vals))
	}
}
