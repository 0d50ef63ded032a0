// Package derive computes derived features from the base static analysis
// feature bundle of a PE file. Derived features are ratios, densities and
// composite scores over the base statistics, chosen to be more
// discriminative inputs for a malware classifier than the raw counts.
//
// The computation is a pure transform: five independent stages read the
// same bundle and each either produces its full set of features or is
// unavailable, in which case its features are zero-filled. A stage never
// affects the others.
package derive

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/binwatch/pe-features/pkg/api/features"
)

// Names of the derived features, excluding the per-category API ratios
// which are generated from the category table.
const (
	featureSectionSizeRatio      = "derived_sectionSizeRatio"
	featureVirtualToRawRatio     = "derived_virtualToRawRatio"
	featureEntropyVariance       = "derived_entropyVariance"
	featureMeanToMaxEntropyRatio = "derived_meanToMaxEntropyRatio"

	featureHeaderSizeRatio    = "derived_headerSizeRatio"
	featureCodeSizeRatio      = "derived_codeSizeRatio"
	featureEntropyToSizeRatio = "derived_entropyToSizeRatio"
	featureUninitializedRatio = "derived_uninitializedRatio"
	featureInitializedRatio   = "derived_initializedRatio"

	featureImportToExportRatio = "derived_importToExportRatio"
	featureAvgImportsPerDll    = "derived_avgImportsPerDll"

	featureResourceDensity      = "derived_resourceDensity"
	featureResourceComplexity   = "derived_resourceComplexity"
	featureResourceSizeVariance = "derived_resourceSizeVariance"

	featureOverallComplexity = "derived_overallComplexity"
)

var vocabulary = func() []string {
	keys := []string{
		featureSectionSizeRatio,
		featureVirtualToRawRatio,
		featureEntropyVariance,
		featureMeanToMaxEntropyRatio,
		featureHeaderSizeRatio,
		featureCodeSizeRatio,
		featureEntropyToSizeRatio,
		featureUninitializedRatio,
		featureInitializedRatio,
		featureImportToExportRatio,
		featureAvgImportsPerDll,
		featureResourceDensity,
		featureResourceComplexity,
		featureResourceSizeVariance,
		featureOverallComplexity,
	}
	for _, category := range maps.Keys(apiCategories) {
		keys = append(keys, categoryRatioKey(category))
	}
	slices.Sort(keys)
	return keys
}()

// Vocabulary returns the fixed set of derived feature names, sorted.
// Every enhanced bundle's derived map contains exactly these keys,
// letting downstream vector assemblers rely on a stable layout.
func Vocabulary() []string {
	return slices.Clone(vocabulary)
}

/*
Enhance computes all derived features for the given bundle and returns
the bundle merged with the derived mapping. The input is not modified;
collections are shared with the output, not copied.

The derived map always contains the full Vocabulary. Features of an
unavailable stage (missing or invalid base statistics) are zero, and
stage failures are isolated from one another. The only error condition
is a bundle violating its minimal contract: a nil imps, exps or dlls
collection yields a wrapped features.ErrMissingRequiredField and no
result. ctx is used for logging only.
*/
func Enhance(ctx context.Context, b features.Bundle) (*features.EnhancedBundle, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("cannot enhance feature bundle: %w", err)
	}

	derived := make(map[string]float64, len(vocabulary))
	for _, key := range vocabulary {
		derived[key] = 0
	}

	if s, ok := analyzeSections(b.Sections); ok {
		derived[featureSectionSizeRatio] = s.sizeRatio
		derived[featureVirtualToRawRatio] = s.virtualToRawRatio
		derived[featureEntropyVariance] = s.entropyVariance
		derived[featureMeanToMaxEntropyRatio] = s.meanToMaxEntropyRatio
	} else {
		slog.DebugContext(ctx, "section statistics incomplete, zero-filling section relationship features")
	}

	if s, ok := analyzeSizes(b.Headers, b.Generics); ok {
		derived[featureHeaderSizeRatio] = s.headerSizeRatio
		derived[featureCodeSizeRatio] = s.codeSizeRatio
		derived[featureEntropyToSizeRatio] = s.entropyToSizeRatio
		derived[featureUninitializedRatio] = s.uninitializedRatio
		derived[featureInitializedRatio] = s.initializedRatio
	} else {
		slog.DebugContext(ctx, "size statistics incomplete, zero-filling size relationship features")
	}

	imports := analyzeImports(b.Imports, b.Exports, b.DLLs)
	for category, ratio := range imports.categoryRatios {
		derived[categoryRatioKey(category)] = ratio
	}
	derived[featureImportToExportRatio] = imports.importToExportRatio
	derived[featureAvgImportsPerDll] = imports.avgImportsPerDLL

	if r, ok := analyzeResources(b.Sections, b.Generics); ok {
		derived[featureResourceDensity] = r.density
		derived[featureResourceComplexity] = r.complexity
		derived[featureResourceSizeVariance] = r.sizeVariance
	} else {
		slog.DebugContext(ctx, "resource statistics incomplete, zero-filling resource features")
	}

	if score, ok := overallComplexity(b.Generics, b.Sections, imports.importCount, imports.dllCount); ok {
		derived[featureOverallComplexity] = score
	} else {
		slog.DebugContext(ctx, "complexity inputs incomplete, zero-filling overall complexity")
	}

	return &features.EnhancedBundle{Bundle: b, Derived: derived}, nil
}
