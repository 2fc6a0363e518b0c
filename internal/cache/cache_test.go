// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "mappings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	meta := map[string]any{"source": "unichem"}
	require.NoError(t, s.StoreMapping(ctx, "HMDB0000122", "HMDB", "CHEBI:4167", "CHEBI", 0.95, meta))

	mappings, err := s.Lookup(ctx, "HMDB0000122", "HMDB", "CHEBI")
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "CHEBI:4167", mappings[0].TargetID)
	assert.Equal(t, 0.95, mappings[0].Confidence)
	assert.Equal(t, "unichem", mappings[0].Metadata["source"])
}

func TestStore_LookupMiss(t *testing.T) {
	s := openTestStore(t)

	mappings, err := s.Lookup(context.Background(), "HMDB0000122", "HMDB", "CHEBI")
	require.NoError(t, err)
	assert.Empty(t, mappings)
}

func TestStore_UpsertRefreshes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.StoreMapping(ctx, "HMDB0000122", "HMDB", "CHEBI:4167", "CHEBI", 0.5, nil))
	require.NoError(t, s.StoreMapping(ctx, "HMDB0000122", "HMDB", "CHEBI:4167", "CHEBI", 0.9,
		map[string]any{"source": "refreshed"}))

	mappings, err := s.Lookup(ctx, "HMDB0000122", "HMDB", "CHEBI")
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, 0.9, mappings[0].Confidence)
	assert.Equal(t, "refreshed", mappings[0].Metadata["source"])
}

func TestStore_MultipleTargetsPreserveInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.StoreMapping(ctx, "C00031", "KEGG_COMPOUND", "5793", "PUBCHEM_CID", 0.9, nil))
	require.NoError(t, s.StoreMapping(ctx, "C00031", "KEGG_COMPOUND", "79025", "PUBCHEM_CID", 0.4, nil))

	mappings, err := s.Lookup(ctx, "C00031", "KEGG_COMPOUND", "PUBCHEM_CID")
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, "5793", mappings[0].TargetID)
	assert.Equal(t, "79025", mappings[1].TargetID)
}

func TestStore_LookupIgnoresOtherHops(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.StoreMapping(ctx, "HMDB0000122", "HMDB", "CHEBI:4167", "CHEBI", 0.9, nil))
	require.NoError(t, s.StoreMapping(ctx, "HMDB0000122", "HMDB", "5793", "PUBCHEM_CID", 0.8, nil))

	mappings, err := s.Lookup(ctx, "HMDB0000122", "HMDB", "CHEBI")
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "CHEBI:4167", mappings[0].TargetID)
}

func TestStore_Stats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sum, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)

	require.NoError(t, s.StoreMapping(ctx, "HMDB0000122", "HMDB", "CHEBI:4167", "CHEBI", 0.9, nil))
	require.NoError(t, s.StoreMapping(ctx, "HMDB0000190", "HMDB", "CHEBI:16651", "CHEBI", 0.9, nil))
	require.NoError(t, s.StoreMapping(ctx, "C00031", "KEGG_COMPOUND", "5793", "PUBCHEM_CID", 0.8, nil))

	sum, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Mappings)
	assert.Equal(t, 2, sum.HopKinds)
}

func TestStore_Clear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.StoreMapping(ctx, "HMDB0000122", "HMDB", "CHEBI:4167", "CHEBI", 0.9, nil))
	require.NoError(t, s.Clear(ctx))

	sum, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Mappings)

	mappings, err := s.Lookup(ctx, "HMDB0000122", "HMDB", "CHEBI")
	require.NoError(t, err)
	assert.Empty(t, mappings)
}

func TestOpen_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "mappings.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.StoreMapping(context.Background(), "HMDB0000122", "HMDB", "CHEBI:4167", "CHEBI", 0.9, nil))
}
