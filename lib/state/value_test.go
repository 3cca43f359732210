package state

import (
	"testing"
)

// TestValueEqual tests the value-equality rule used by the dirty containers
func TestValueEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b Value
		want bool
	}{
		{name: "equal strings", a: String("hp"), b: String("hp"), want: true},
		{name: "different strings", a: String("hp"), b: String("mp"), want: false},
		{name: "equal int32", a: Int32(-3), b: Int32(-3), want: true},
		{name: "different int32", a: Int32(-3), b: Int32(3), want: false},
		{name: "equal float64", a: Float64(1.25), b: Float64(1.25), want: true},
		{name: "kind mismatch same bits", a: Uint32(1), b: Int32(1), want: false},
		{name: "char vs uint8 same bits", a: Char('A'), b: Uint8('A'), want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Errorf("Equal = %v, want %v", got, tc.want)
			}
		})
	}
}

// TestValueRoundTrip tests that constructors and accessors preserve the
// payload for every scalar kind
func TestValueRoundTrip(t *testing.T) {
	if got := Int32(-2_000_000_000).Int32V(); got != -2_000_000_000 {
		t.Errorf("int32 payload = %d", got)
	}
	if got := Uint64(1 << 63).Uint64V(); got != 1<<63 {
		t.Errorf("uint64 payload = %d", got)
	}
	if got := Float32(0.5).Float32V(); got != 0.5 {
		t.Errorf("float32 payload = %v", got)
	}
	if got := Char('z').CharV(); got != 'z' {
		t.Errorf("char payload = %q", got)
	}
	if got := String("terrain").Str(); got != "terrain" {
		t.Errorf("string payload = %q", got)
	}
}
