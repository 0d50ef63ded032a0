package derive

import (
	"github.com/binwatch/pe-features/pkg/api/features"
)

// resourceSignals measures how much of a file's content sits in embedded
// resources and how uniform those resources are. Droppers commonly hide
// payloads in a small number of large, high-entropy resources.
type resourceSignals struct {
	density      float64 // resources per KiB of file
	complexity   float64 // mean resource size x mean resource entropy
	sizeVariance float64 // (max - min) resource size, relative to the mean
}

// analyzeResources computes resource signals. Resource statistics are
// optional: a bundle whose sections carry no resource count yields
// all-zero signals without the stage being unavailable. The stage is
// unavailable (ok false) only when a statistic referenced by the
// computation is missing, in which case all three features zero-fill
// together.
func analyzeResources(sections, generics map[string]float64) (resourceSignals, bool) {
	count, present := sections[features.ResourcesCount]
	if !present {
		return resourceSignals{}, true
	}

	fileSize, haveSize := generics[features.GenericFileSize]
	if !haveSize {
		return resourceSignals{}, false
	}

	r := resourceSignals{}
	if fileSize > 0 {
		r.density = count / (fileSize / 1024)
	}

	if count > 0 {
		l := statLookup{stats: sections}
		meanSize := l.get(features.ResourcesMeanSize)
		meanEntropy := l.get(features.ResourcesMeanEntropy)
		maxSize := l.get(features.ResourcesMaxSize)
		minSize := l.get(features.ResourcesMinSize)
		if l.missing {
			return resourceSignals{}, false
		}

		r.complexity = meanSize * meanEntropy
		if meanSize != 0 {
			r.sizeVariance = (maxSize - minSize) / meanSize
		}
	}
	return r, true
}
