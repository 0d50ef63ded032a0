package derive

import (
	"testing"

	"github.com/binwatch/pe-features/internal/utils"
	"github.com/binwatch/pe-features/pkg/api/features"
)

func TestOverallComplexity(t *testing.T) {
	generics := map[string]float64{
		features.GenericFileSize:    102400,
		features.GenericFileEntropy: 6.5,
	}
	sections := map[string]float64{features.SectionsMaxEntropy: 7.2}

	score, ok := overallComplexity(generics, sections, 3, 2)
	if !ok {
		t.Fatalf("overallComplexity() unavailable for complete inputs")
	}

	// (log1p(102400)/20 + 6.5/8 + log1p(3)/10 + 7.2*2/100) / 4
	expected := 0.417990506
	if !utils.FloatEquals(expected, score, 1e-6) {
		t.Errorf("overallComplexity = %f; want %f", score, expected)
	}
}

func TestOverallComplexityBounded(t *testing.T) {
	// Packed file near the top of every term stays within the informal
	// [0, ~1.2] bound.
	generics := map[string]float64{
		features.GenericFileSize:    1 << 30,
		features.GenericFileEntropy: 8,
	}
	sections := map[string]float64{features.SectionsMaxEntropy: 8}

	score, ok := overallComplexity(generics, sections, 500, 10)
	if !ok {
		t.Fatalf("overallComplexity() unavailable for complete inputs")
	}
	if score < 0 || score > 1.2 {
		t.Errorf("overallComplexity = %f; expected within [0, 1.2]", score)
	}
}

func TestOverallComplexityMissingInputs(t *testing.T) {
	generics := map[string]float64{
		features.GenericFileSize:    102400,
		features.GenericFileEntropy: 6.5,
	}
	sections := map[string]float64{features.SectionsMaxEntropy: 7.2}

	tests := []struct {
		name     string
		generics map[string]float64
		sections map[string]float64
	}{
		{"no file size", map[string]float64{features.GenericFileEntropy: 6.5}, sections},
		{"no file entropy", map[string]float64{features.GenericFileSize: 102400}, sections},
		{"no max entropy", generics, map[string]float64{}},
		{"nil maps", nil, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, ok := overallComplexity(test.generics, test.sections, 3, 2); ok {
				t.Errorf("overallComplexity() reported available")
			}
		})
	}
}

func TestOverallComplexityInvalidFileSize(t *testing.T) {
	// log1p of a corrupt file size below -1 is NaN; the stage reports
	// unavailable instead of propagating it.
	generics := map[string]float64{
		features.GenericFileSize:    -100,
		features.GenericFileEntropy: 6.5,
	}
	sections := map[string]float64{features.SectionsMaxEntropy: 7.2}

	if _, ok := overallComplexity(generics, sections, 3, 2); ok {
		t.Errorf("overallComplexity() reported available for negative file size")
	}
}
