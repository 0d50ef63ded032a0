package utils

import (
	"encoding/json"
	"math"
	"reflect"
)

// FloatEquals compares two floats and returns true if they are within
// absTol of each other, or are both NaN. NaN != NaN normally, but
// treating them as equal makes comparisons of float-bearing structs
// in tests behave sensibly.
func FloatEquals(x1, x2, absTol float64) bool {
	return x1 == x2 || math.Abs(x1-x2) < absTol || (math.IsNaN(x1) && math.IsNaN(x2))
}

// JSONEquals reports whether j1 and j2 contain JSON documents
// representing equal objects. An error is returned if either input is
// not valid JSON.
func JSONEquals(j1, j2 []byte) (bool, error) {
	var o1, o2 interface{}
	if err := json.Unmarshal(j1, &o1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(j2, &o2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(o1, o2), nil
}
