package domain

// DuplicateKind classifies what a duplicate group contains
type DuplicateKind string

const (
	// DuplicateKindFunction is a group of similar function declarations
	DuplicateKindFunction DuplicateKind = "function"

	// DuplicateKindType is a group of similar type/interface declarations
	DuplicateKindType DuplicateKind = "type"
)

// DuplicateLocation is one occurrence of a duplicated symbol, as reported by
// the upstream duplicate detector. The engine trusts these fields as given.
type DuplicateLocation struct {
	// File is the path of the file containing the declaration, relative to
	// the project root
	File string `json:"file"`

	// Name is the declared symbol name at this location
	Name string `json:"name"`

	// Line is the 1-based line of the declaration
	Line int `json:"line"`

	// Exported indicates whether the declaration is exported
	Exported bool `json:"exported"`

	// HasJSDoc indicates whether the declaration carries a doc comment
	HasJSDoc bool `json:"has_jsdoc,omitempty"`
}

// DuplicateGroup is a set of locations the upstream detector considers the
// same symbol. Similarity is pre-computed; the engine never re-verifies it.
type DuplicateGroup struct {
	// Name is the representative symbol name for the group
	Name string `json:"name"`

	// Kind is what the group contains (function or type)
	Kind DuplicateKind `json:"kind"`

	// Similarity is the detector's similarity score in [0,1].
	// 1.0 means the declarations are identical.
	Similarity float64 `json:"similarity"`

	// RecommendMerge indicates the detector recommends merging this group
	RecommendMerge bool `json:"recommend_merge"`

	// Locations are the occurrences of the duplicated symbol
	Locations []DuplicateLocation `json:"locations"`
}

// CanonicalCandidate carries the information the canonical selector ranks.
// Derived per group member during planning; never persisted.
type CanonicalCandidate struct {
	// File is the candidate's file path relative to the project root
	File string `json:"file"`

	// Name is the declared symbol name
	Name string `json:"name"`

	// Line is the declaration line
	Line int `json:"line"`

	// Exported indicates whether the declaration is exported
	Exported bool `json:"exported"`

	// ImporterCount is the number of distinct files importing this file
	ImporterCount int `json:"importer_count"`

	// IsTypeFile indicates the file matches the dedicated-types-file heuristic
	IsTypeFile bool `json:"is_type_file"`

	// HasJSDoc indicates the declaration carries a doc comment
	HasJSDoc bool `json:"has_jsdoc"`

	// PathDepth is the number of path segments in File
	PathDepth int `json:"path_depth"`
}
