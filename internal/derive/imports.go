package derive

import (
	"strings"

	"github.com/binwatch/pe-features/internal/utils"
)

// importSignals summarises the imported and exported symbol sets:
// per-category API usage ratios plus import/export and import/DLL
// relationships.
type importSignals struct {
	categoryRatios map[string]float64 // keyed by api category name

	// importToExportRatio is |imports| / |exports|. With no exports it
	// degenerates to the plain import count rather than dividing by zero.
	importToExportRatio float64
	avgImportsPerDLL    float64

	// Deduplicated counts, reused by the complexity stage.
	importCount int
	dllCount    int
}

// analyzeImports computes import/export signals. The collections are
// treated as sets; duplicates are removed before any counting. This stage
// has no unavailable state since the collections are part of the bundle's
// minimal contract, validated before any stage runs.
func analyzeImports(imports, exports, dlls []string) importSignals {
	imps := utils.RemoveDuplicates(imports)
	exps := utils.RemoveDuplicates(exports)
	libs := utils.RemoveDuplicates(dlls)

	s := importSignals{
		categoryRatios: make(map[string]float64, len(apiCategories)),
		importCount:    len(imps),
		dllCount:       len(libs),
	}

	lowered := utils.Transform(imps, strings.ToLower)
	for category, keywords := range apiCategories {
		ratio := 0.0
		if len(lowered) > 0 {
			matched := 0
			for _, name := range lowered {
				if containsAnyKeyword(name, keywords) {
					matched++
				}
			}
			ratio = float64(matched) / float64(len(lowered))
		}
		s.categoryRatios[category] = ratio
	}

	if len(exps) > 0 {
		s.importToExportRatio = float64(len(imps)) / float64(len(exps))
	} else {
		s.importToExportRatio = float64(len(imps))
	}
	if len(libs) > 0 {
		s.avgImportsPerDLL = float64(len(imps)) / float64(len(libs))
	}
	return s
}
