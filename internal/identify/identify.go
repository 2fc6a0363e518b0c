// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identify classifies a raw biological identifier into its likely
// ontology type and normalized form, so callers can omit the source type
// when it is recognizable from the identifier itself.
package identify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/metamap/pkg/types"
)

// Ontology types recognizable from identifier shape alone.
const (
	TypeHMDB       types.OntologyType = "HMDB"
	TypeChEBI      types.OntologyType = "CHEBI"
	TypeKEGG       types.OntologyType = "KEGG_COMPOUND"
	TypePubChemCID types.OntologyType = "PUBCHEM_CID"
	TypeUniProt    types.OntologyType = "UNIPROTKB_AC"
	TypeInChIKey   types.OntologyType = "INCHIKEY"
	TypeCAS        types.OntologyType = "CAS"
)

// hmdbPattern matches HMDB accessions: "HMDB0000122", legacy "HMDB00122".
var hmdbPattern = regexp.MustCompile(`^HMDB(\d{5,7})$`)

// chebiPattern matches ChEBI IDs with or without prefix: "CHEBI:4167", "4167"
// is NOT accepted bare (too ambiguous); the prefix is required.
var chebiPattern = regexp.MustCompile(`^(?:CHEBI:)(\d+)$`)

// keggPattern matches KEGG compound IDs: "C00031".
var keggPattern = regexp.MustCompile(`^C\d{5}$`)

// cidPattern matches PubChem compound IDs with explicit prefix: "CID5793",
// "CID:5793".
var cidPattern = regexp.MustCompile(`^CID:?(\d+)$`)

// uniprotPattern matches UniProtKB accessions: "P69905", "A0A024R161".
var uniprotPattern = regexp.MustCompile(`^(?:[OPQ][0-9][A-Z0-9]{3}[0-9]|[A-NR-Z][0-9](?:[A-Z][A-Z0-9]{2}[0-9]){1,2})$`)

// inchikeyPattern matches InChIKeys: "WQZGKKKJIJFFOK-GASJEMHNSA-N".
var inchikeyPattern = regexp.MustCompile(`^[A-Z]{14}-[A-Z]{10}-[A-Z]$`)

// casPattern matches CAS registry numbers: "50-99-7".
var casPattern = regexp.MustCompile(`^\d{2,7}-\d{2}-\d$`)

// Classify determines the ontology type of a raw identifier and returns
// the normalized form. Legacy short HMDB accessions are zero-padded to the
// current 7-digit width; ChEBI and PubChem prefixes are normalized to
// "CHEBI:" and "CID". found is false when the shape is not recognized.
func Classify(identifier string) (typ types.OntologyType, normalized string, found bool) {
	identifier = strings.TrimSpace(identifier)

	if m := hmdbPattern.FindStringSubmatch(identifier); m != nil {
		digits := m[1]
		for len(digits) < 7 {
			digits = "0" + digits
		}
		return TypeHMDB, "HMDB" + digits, true
	}
	if m := chebiPattern.FindStringSubmatch(identifier); m != nil {
		return TypeChEBI, "CHEBI:" + m[1], true
	}
	if keggPattern.MatchString(identifier) {
		return TypeKEGG, identifier, true
	}
	if m := cidPattern.FindStringSubmatch(identifier); m != nil {
		return TypePubChemCID, "CID" + m[1], true
	}
	if inchikeyPattern.MatchString(identifier) {
		return TypeInChIKey, identifier, true
	}
	if casPattern.MatchString(identifier) {
		return TypeCAS, identifier, true
	}
	// UniProt last: its shape overlaps chemical vendor codes.
	if uniprotPattern.MatchString(identifier) {
		return TypeUniProt, identifier, true
	}

	return "", identifier, false
}
