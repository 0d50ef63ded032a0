package utils

import (
	"math"
	"testing"
)

func TestFloatEquals(t *testing.T) {
	tests := []struct {
		name     string
		x1       float64
		x2       float64
		absTol   float64
		expected bool
	}{
		{name: "equal", x1: 1.0, x2: 1.0, absTol: 0.0, expected: true},
		{name: "outside tolerance", x1: 1.0, x2: 1.1, absTol: 0.1, expected: false},
		{name: "within tolerance", x1: 1.0, x2: 1.1, absTol: 0.2, expected: true},
		{name: "within tight tolerance", x1: 1.0, x2: 1.01, absTol: 0.02, expected: true},
		{name: "NaN always equal", x1: math.NaN(), x2: math.NaN(), absTol: 0.123456789, expected: true},
		{name: "NaN never equals number", x1: math.NaN(), x2: 1.0, absTol: 100, expected: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := FloatEquals(test.x1, test.x2, test.absTol)
			if actual != test.expected {
				t.Errorf("FloatEquals(%f, %f, %f) expected to be %t but was %t",
					test.x1, test.x2, test.absTol, test.expected, actual)
			}
		})
	}
}

func TestJSONEquals(t *testing.T) {
	tests := []struct {
		name      string
		j1        []byte
		j2        []byte
		expected  bool
		expectErr bool
	}{
		{name: "eq empty", j1: []byte("{}"), j2: []byte("{}"), expected: true},
		{name: "eq one key", j1: []byte(`{"a": 1}`), j2: []byte(`{"a": 1}`), expected: true},
		{name: "eq key order", j1: []byte(`{"a": 1, "b": 2}`), j2: []byte(`{"b": 2, "a": 1}`), expected: true},
		{name: "neq value", j1: []byte(`{"a": 1}`), j2: []byte(`{"a": 2}`), expected: false},
		{name: "neq missing key", j1: []byte(`{"a": 1}`), j2: []byte(`{}`), expected: false},
		{name: "invalid json", j1: []byte(`{`), j2: []byte(`{}`), expectErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := JSONEquals(test.j1, test.j2)
			if test.expectErr {
				if err == nil {
					t.Errorf("expected an error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if actual != test.expected {
				t.Errorf("JSONEquals(%s, %s) expected to be %t but was %t",
					test.j1, test.j2, test.expected, actual)
			}
		})
	}
}
