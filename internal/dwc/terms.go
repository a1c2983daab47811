// Package dwc holds the Darwin Core surface of the exporter: output term
// lists, the shared scientific-name start pattern, and the archive
// descriptor writers.
package dwc

import "regexp"

// ScientificStart accepts strings that begin like a real scientific name:
// a capitalized word of letters. Placeholder phrases ("unknown sp", "?",
// all-lowercase free text) fail it.
var ScientificStart = regexp.MustCompile(`^[A-Z][a-z]+`)

const RowType = "http://rs.tdwg.org/dwc/terms/Taxon"
const VernacularRowType = "http://rs.gbif.org/terms/1.0/VernacularName"

// TaxonTerms is the taxon.csv column order.
var TaxonTerms = []string{
	"taxonID",
	"parentNameUsageID",
	"acceptedNameUsageID",
	"nomenclaturalCode",
	"scientificName",
	"scientificNameAuthorship",
	"taxonRank",
	"taxonomicStatus",
	"nomenclaturalStatus",
	"kingdom",
	"phylum",
	"class",
	"order",
	"family",
	"genus",
	"taxonRemarks",
	"source",
	"datasetID",
}

// VernacularTerms is the vernacularNames.csv column order.
var VernacularTerms = []string{
	"taxonID",
	"vernacularName",
	"status",
	"isPreferredName",
	"language",
	"source",
	"datasetID",
	"taxonRemarks",
}

// TermURI maps a term to its full Darwin Core (or GBIF extension) URI for
// meta.xml. Terms without a registered URI fall back to the ALA namespace.
func TermURI(term string) string {
	switch term {
	case "status":
		return "http://ala.org.au/terms/1.0/status"
	case "isPreferredName":
		return "http://gbif.org/terms/1.0/isPreferredName"
	case "source":
		return "http://purl.org/dc/terms/source"
	case "language":
		return "http://purl.org/dc/terms/language"
	default:
		return "http://rs.tdwg.org/dwc/terms/" + term
	}
}
