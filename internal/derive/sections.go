package derive

import (
	"github.com/binwatch/pe-features/pkg/api/features"
)

// sectionSignals relates the size and entropy statistics of a file's
// sections to each other. Large raw size spreads, inflated virtual sizes
// and high entropy spreads are all packing indicators that raw counts
// miss.
type sectionSignals struct {
	sizeRatio             float64 // max section size / min section size
	virtualToRawRatio     float64 // mean virtual size / mean raw size
	entropyVariance       float64 // max entropy - min entropy
	meanToMaxEntropyRatio float64
}

// analyzeSections computes section relationship signals from the section
// statistics map. ok reports whether every referenced statistic was
// present; when false the stage is unavailable and all its features are
// zero-filled by the caller.
func analyzeSections(sections map[string]float64) (sectionSignals, bool) {
	l := statLookup{stats: sections}
	minSize := l.get(features.SectionsMinSize)
	maxSize := l.get(features.SectionsMaxSize)
	meanSize := l.get(features.SectionsMeanSize)
	meanVirtualSize := l.get(features.SectionsMeanVirtualSize)
	minEntropy := l.get(features.SectionsMinEntropy)
	maxEntropy := l.get(features.SectionsMaxEntropy)
	meanEntropy := l.get(features.SectionsMeanEntropy)
	if l.missing {
		return sectionSignals{}, false
	}

	s := sectionSignals{
		entropyVariance: maxEntropy - minEntropy,
	}
	if minSize != 0 {
		s.sizeRatio = maxSize / minSize
	}
	if meanSize != 0 {
		s.virtualToRawRatio = meanVirtualSize / meanSize
	}
	if maxEntropy != 0 {
		s.meanToMaxEntropyRatio = meanEntropy / maxEntropy
	}
	return s, true
}
