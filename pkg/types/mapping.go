// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the metamapping engine:
// ontology types, mapping paths, candidate identifiers, and results.
package types

// OntologyType names an identifier namespace (e.g. "HMDB", "CHEBI",
// "UNIPROTKB_AC"). Equality is exact string match; there is no hierarchy.
type OntologyType = string

// ResourceDescriptor identifies one adapter capable of attempting a specific
// hop. It is owned by the capability registry; the engine only stores and
// forwards it.
type ResourceDescriptor struct {
	// Name is the unique resource identifier (e.g. "unichem", "sqlite_cache").
	Name string `json:"name" yaml:"name"`

	// Priority orders resources for a hop; lower values are tried first.
	Priority int `json:"priority" yaml:"priority"`
}

// MappingStep is one edge in a discovered mapping path, pre-bound to the
// resources that can attempt it, in the registry's priority order.
type MappingStep struct {
	SourceType OntologyType         `json:"source_type" yaml:"source_type"`
	TargetType OntologyType         `json:"target_type" yaml:"target_type"`
	Resources  []ResourceDescriptor `json:"resources" yaml:"resources"`
}

// PathEntry records one executed hop in a candidate's history. Append-only.
type PathEntry struct {
	SourceID     string       `json:"source_id" yaml:"source_id"`
	SourceType   OntologyType `json:"source_type" yaml:"source_type"`
	TargetID     string       `json:"target_id" yaml:"target_id"`
	TargetType   OntologyType `json:"target_type" yaml:"target_type"`
	ResourceName string       `json:"resource" yaml:"resource"`
	Confidence   float64      `json:"confidence" yaml:"confidence"`
}

// CandidateIdentifier is one identifier value reached while walking a
// mapping path, with the compounded confidence and hop-by-hop provenance.
type CandidateIdentifier struct {
	ID         string         `json:"id" yaml:"id"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
	Path       []PathEntry    `json:"path" yaml:"path"`
	Metadata   map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Mapping is one candidate translation returned by a resource adapter for
// a single hop attempt.
type Mapping struct {
	TargetID   string         `json:"target_id" yaml:"target_id"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
	Metadata   map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// SourceMetamapping marks results produced by the path engine, as opposed
// to a direct single-resource lookup.
const SourceMetamapping = "metamapping"

// MetadataPathKey is the metadata key under which a result's provenance
// (its []PathEntry) is stored.
const MetadataPathKey = "mapping_path"

// MappingResult is the terminal output of executing a mapping path for one
// source identifier.
type MappingResult struct {
	TargetID   string         `json:"target_id" yaml:"target_id"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
	Source     string         `json:"source" yaml:"source"`
	Metadata   map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// MappedPath returns the provenance entries stored in the result metadata,
// or nil if absent.
func (r MappingResult) MappedPath() []PathEntry {
	entries, _ := r.Metadata[MetadataPathKey].([]PathEntry)
	return entries
}
