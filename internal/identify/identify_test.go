// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identify

import (
	"testing"

	"github.com/pdiddy/metamap/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		identifier     string
		wantType       types.OntologyType
		wantNormalized string
		wantFound      bool
	}{
		{"hmdb current", "HMDB0000122", TypeHMDB, "HMDB0000122", true},
		{"hmdb legacy padded", "HMDB00122", TypeHMDB, "HMDB0000122", true},
		{"hmdb five digits", "HMDB12345", TypeHMDB, "HMDB0012345", true},
		{"hmdb too short", "HMDB122", "", "HMDB122", false},
		{"chebi prefixed", "CHEBI:4167", TypeChEBI, "CHEBI:4167", true},
		{"chebi bare rejected", "4167", "", "4167", false},
		{"kegg compound", "C00031", TypeKEGG, "C00031", true},
		{"kegg wrong width", "C0031", "", "C0031", false},
		{"pubchem cid", "CID5793", TypePubChemCID, "CID5793", true},
		{"pubchem cid colon", "CID:5793", TypePubChemCID, "CID5793", true},
		{"uniprot classic", "P69905", TypeUniProt, "P69905", true},
		{"uniprot extended", "A0A024R161", TypeUniProt, "A0A024R161", true},
		{"inchikey", "WQZGKKKJIJFFOK-GASJEMHNSA-N", TypeInChIKey, "WQZGKKKJIJFFOK-GASJEMHNSA-N", true},
		{"cas", "50-99-7", TypeCAS, "50-99-7", true},
		{"whitespace trimmed", "  HMDB0000122  ", TypeHMDB, "HMDB0000122", true},
		{"empty", "", "", "", false},
		{"free text", "glucose", "", "glucose", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, normalized, found := Classify(tt.identifier)
			if found != tt.wantFound {
				t.Fatalf("Classify(%q) found = %v, want %v", tt.identifier, found, tt.wantFound)
			}
			if typ != tt.wantType {
				t.Errorf("Classify(%q) type = %q, want %q", tt.identifier, typ, tt.wantType)
			}
			if normalized != tt.wantNormalized {
				t.Errorf("Classify(%q) normalized = %q, want %q", tt.identifier, normalized, tt.wantNormalized)
			}
		})
	}
}

func TestClassify_KEGGBeatsUniProt(t *testing.T) {
	// C00031 also fits no UniProt shape, but order matters for patterns
	// that could overlap; KEGG must win for compound-shaped input.
	typ, _, found := Classify("C00031")
	if !found || typ != TypeKEGG {
		t.Fatalf("Classify(C00031) = %q, want %q", typ, TypeKEGG)
	}
}
