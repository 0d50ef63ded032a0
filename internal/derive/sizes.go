package derive

import (
	"github.com/binwatch/pe-features/pkg/api/features"
)

// sizeSignals scales header and data sizes against the total file size,
// so that files of different sizes become comparable.
type sizeSignals struct {
	headerSizeRatio    float64
	codeSizeRatio      float64
	entropyToSizeRatio float64
	uninitializedRatio float64
	initializedRatio   float64
}

// analyzeSizes computes size relationship signals. The stage is
// unavailable (ok false, all features zero-filled) when the file size is
// zero or any referenced field is absent. Numerators are used as-is; a
// negative header field is the extractor's problem, not this stage's.
func analyzeSizes(headers, generics map[string]float64) (sizeSignals, bool) {
	l := statLookup{stats: generics}
	fileSize := l.get(features.GenericFileSize)
	fileEntropy := l.get(features.GenericFileEntropy)

	h := statLookup{stats: headers}
	headerSize := h.get(features.HeaderSizeOfHeaders)
	codeSize := h.get(features.HeaderSizeOfCode)
	uninitialized := h.get(features.HeaderSizeOfUninitializedData)
	initialized := h.get(features.HeaderSizeOfInitializedData)

	if l.missing || h.missing || fileSize == 0 {
		return sizeSignals{}, false
	}

	return sizeSignals{
		headerSizeRatio:    headerSize / fileSize,
		codeSizeRatio:      codeSize / fileSize,
		entropyToSizeRatio: fileEntropy / fileSize,
		uninitializedRatio: uninitialized / fileSize,
		initializedRatio:   initialized / fileSize,
	}, true
}
