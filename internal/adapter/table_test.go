// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAdapter_MapEntity(t *testing.T) {
	a := NewTable("local", []TableEntry{
		{SourceID: "HMDB0000122", SourceType: "HMDB", TargetID: "CHEBI:4167", TargetType: "CHEBI", Confidence: 0.95},
		{SourceID: "HMDB0000122", SourceType: "HMDB", TargetID: "CHEBI:17234", TargetType: "CHEBI", Confidence: 0.4},
		{SourceID: "HMDB0000190", SourceType: "HMDB", TargetID: "CHEBI:16651", TargetType: "CHEBI", Confidence: 0.9},
	})
	assert.Equal(t, "local", a.Name())

	mappings, err := a.MapEntity(context.Background(), "HMDB0000122", "HMDB", "CHEBI")
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, "CHEBI:4167", mappings[0].TargetID)
	assert.Equal(t, 0.95, mappings[0].Confidence)
	assert.Equal(t, "CHEBI:17234", mappings[1].TargetID)
}

func TestTableAdapter_Miss(t *testing.T) {
	a := NewTable("local", []TableEntry{
		{SourceID: "HMDB0000122", SourceType: "HMDB", TargetID: "CHEBI:4167", TargetType: "CHEBI"},
	})

	mappings, err := a.MapEntity(context.Background(), "HMDB0000122", "HMDB", "PUBCHEM_CID")
	require.NoError(t, err)
	assert.Empty(t, mappings)

	mappings, err = a.MapEntity(context.Background(), "HMDB9999999", "HMDB", "CHEBI")
	require.NoError(t, err)
	assert.Empty(t, mappings)
}

func TestTableAdapter_DefaultConfidence(t *testing.T) {
	a := NewTable("local", []TableEntry{
		{SourceID: "HMDB0000122", SourceType: "HMDB", TargetID: "CHEBI:4167", TargetType: "CHEBI"},
	})

	mappings, err := a.MapEntity(context.Background(), "HMDB0000122", "HMDB", "CHEBI")
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, 1.0, mappings[0].Confidence)
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	content := `mappings:
  - source_id: HMDB0000122
    source_type: HMDB
    target_id: "CHEBI:4167"
    target_type: CHEBI
    confidence: 0.95
    metadata:
      curator: internal
  - source_id: C00031
    source_type: KEGG_COMPOUND
    target_id: "5793"
    target_type: PUBCHEM_CID
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	a, err := LoadTable("local", path)
	require.NoError(t, err)

	mappings, err := a.MapEntity(context.Background(), "HMDB0000122", "HMDB", "CHEBI")
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "CHEBI:4167", mappings[0].TargetID)
	assert.Equal(t, "internal", mappings[0].Metadata["curator"])

	mappings, err = a.MapEntity(context.Background(), "C00031", "KEGG_COMPOUND", "PUBCHEM_CID")
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, 1.0, mappings[0].Confidence)
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable("local", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadTable_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mappings: [unclosed"), 0o644))

	_, err := LoadTable("local", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing mapping table")
}
