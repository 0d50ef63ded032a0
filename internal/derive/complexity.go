package derive

import (
	"math"

	"github.com/binwatch/pe-features/pkg/api/features"
)

// overallComplexity combines normalised size, entropy, import and section
// signals into a single composite score, the arithmetic mean of four
// terms each scaled to roughly [0, 1]:
//
//	log1p(fileSize) / 20
//	fileEntropy / 8
//	log1p(importCount) / 10
//	maxSectionEntropy x dllCount / 100
//
// importCount and dllCount are the deduplicated counts computed by the
// import stage. ok is false when an input is missing or the score is not
// a finite number (for example log1p of a corrupt negative file size).
func overallComplexity(generics, sections map[string]float64, importCount, dllCount int) (float64, bool) {
	l := statLookup{stats: generics}
	fileSize := l.get(features.GenericFileSize)
	fileEntropy := l.get(features.GenericFileEntropy)

	maxEntropy, haveMaxEntropy := sections[features.SectionsMaxEntropy]
	if l.missing || !haveMaxEntropy {
		return 0, false
	}

	sizeTerm := math.Log1p(fileSize) / 20
	entropyTerm := fileEntropy / 8
	importTerm := math.Log1p(float64(importCount)) / 10
	sectionTerm := maxEntropy * float64(dllCount) / 100

	score := (sizeTerm + entropyTerm + importTerm + sectionTerm) / 4
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, false
	}
	return score, true
}
