// The features package defines the types exchanged with external
// collaborators: the static analysis extractor that produces base
// feature bundles, and the vector assembler / classifier that consumes
// enhanced bundles. These structs are serialised to JSON and form the
// wire contract of the feature enhancement API.
package features

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Names of the base feature keys read during enhancement. The extractor
// owns the full key schema; only the keys listed here are interpreted.
const (
	SectionsMinSize         = "pesectionProcessed_sectionsMinSize"
	SectionsMaxSize         = "pesectionProcessed_sectionsMaxSize"
	SectionsMeanSize        = "pesectionProcessed_sectionsMeanSize"
	SectionsMeanVirtualSize = "pesectionProcessed_sectionsMeanVirtualSize"
	SectionsMinEntropy      = "pesectionProcessed_sectionsMinEntropy"
	SectionsMaxEntropy      = "pesectionProcessed_sectionsMaxEntropy"
	SectionsMeanEntropy     = "pesectionProcessed_sectionsMeanEntropy"

	ResourcesCount       = "pesectionProcessed_resources_nb"
	ResourcesMinSize     = "pesectionProcessed_resourcesMinSize"
	ResourcesMaxSize     = "pesectionProcessed_resourcesMaxSize"
	ResourcesMeanSize    = "pesectionProcessed_resourcesMeanSize"
	ResourcesMeanEntropy = "pesectionProcessed_resourcesMeanEntropy"

	HeaderSizeOfHeaders           = "header_SizeOfHeaders"
	HeaderSizeOfCode              = "header_SizeOfCode"
	HeaderSizeOfInitializedData   = "header_SizeOfInitializedData"
	HeaderSizeOfUninitializedData = "header_SizeOfUninitializedData"

	GenericFileSize    = "generic_fileSize"
	GenericFileEntropy = "generic_fileEntropy"
)

// ErrMissingRequiredField is returned (wrapped, with the field name) when a
// bundle lacks one of the collections that form its minimal contract.
var ErrMissingRequiredField = errors.New("missing required field")

// Bundle holds the base static analysis features extracted from a single
// PE file. Numeric statistics are grouped into named maps; imported and
// exported symbols are plain string lists with set semantics (duplicates
// carry no meaning).
//
// Imports, Exports and DLLs are mandatory: a nil slice means the field was
// absent from the input, which is a contract violation (see Validate).
// An empty non-nil slice is a valid value meaning "none". All other keys
// are optional; enhancement zero-fills features whose inputs are missing.
type Bundle struct {
	// Sections holds per-section size and entropy statistics, including
	// the optional embedded-resource statistics.
	Sections map[string]float64 `json:"sections"`

	// Headers holds numeric fields lifted from the PE optional header.
	Headers map[string]float64 `json:"headers"`

	// Generics holds whole-file metrics, at least generic_fileSize (bytes)
	// and generic_fileEntropy (0-8).
	Generics map[string]float64 `json:"generics"`

	// Imports lists imported function names.
	Imports []string `json:"imps"`

	// Exports lists exported function names.
	Exports []string `json:"exps"`

	// DLLs lists imported library names.
	DLLs []string `json:"dlls"`

	// Rich carries the raw rich header data. It is not read during
	// enhancement but must round-trip unchanged for other consumers.
	Rich json.RawMessage `json:"rich,omitempty"`
}

// Validate checks the minimal input contract: the imps, exps and dlls
// collections must all be present. A wrapped ErrMissingRequiredField is
// returned for the first absent field.
func (b Bundle) Validate() error {
	required := []struct {
		name  string
		value []string
	}{
		{"imps", b.Imports},
		{"exps", b.Exports},
		{"dlls", b.DLLs},
	}
	for _, f := range required {
		if f.value == nil {
			return fmt.Errorf("%w: %s", ErrMissingRequiredField, f.name)
		}
	}
	return nil
}

// EnhancedBundle is the enhancement output: the original bundle plus the
// derived feature mapping. Derived always contains the full fixed
// vocabulary of derived feature names (see derive.Vocabulary), with zero
// values standing in for features whose inputs were absent or invalid.
type EnhancedBundle struct {
	Bundle
	Derived map[string]float64 `json:"derived"`
}
