// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapter

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/metamap/pkg/types"
)

// TableAdapter serves hops from a static mapping table loaded from a YAML
// file. It backs curated cross-reference sets and offline fixtures.
type TableAdapter struct {
	name    string
	entries map[tableKey][]types.Mapping
}

// tableKey addresses one (identifier, hop) bucket.
type tableKey struct {
	id         string
	sourceType types.OntologyType
	targetType types.OntologyType
}

// TableFile is the on-disk representation of a static mapping table.
type TableFile struct {
	Mappings []TableEntry `yaml:"mappings"`
}

// TableEntry is one row of the table. A zero confidence means 1.0.
type TableEntry struct {
	SourceID   string             `yaml:"source_id"`
	SourceType types.OntologyType `yaml:"source_type"`
	TargetID   string             `yaml:"target_id"`
	TargetType types.OntologyType `yaml:"target_type"`
	Confidence float64            `yaml:"confidence,omitempty"`
	Metadata   map[string]any     `yaml:"metadata,omitempty"`
}

// LoadTable reads a mapping table from path. Rows keep file order within
// one (identifier, hop) bucket.
func LoadTable(name, path string) (*TableAdapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping table %s: %w", path, err)
	}
	var file TableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing mapping table %s: %w", path, err)
	}
	return NewTable(name, file.Mappings), nil
}

// NewTable builds a TableAdapter from in-memory entries.
func NewTable(name string, entries []TableEntry) *TableAdapter {
	indexed := make(map[tableKey][]types.Mapping)
	for _, e := range entries {
		confidence := e.Confidence
		if confidence == 0 {
			confidence = 1.0
		}
		key := tableKey{id: e.SourceID, sourceType: e.SourceType, targetType: e.TargetType}
		indexed[key] = append(indexed[key], types.Mapping{
			TargetID:   e.TargetID,
			Confidence: confidence,
			Metadata:   e.Metadata,
		})
	}
	return &TableAdapter{name: name, entries: indexed}
}

// Name returns the resource identifier.
func (a *TableAdapter) Name() string { return a.name }

// MapEntity looks the identifier up in the table.
func (a *TableAdapter) MapEntity(_ context.Context, id string, sourceType, targetType types.OntologyType) ([]types.Mapping, error) {
	return a.entries[tableKey{id: id, sourceType: sourceType, targetType: targetType}], nil
}
