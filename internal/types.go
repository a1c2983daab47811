package internal

// CAAB source dump columns.
const (
	FieldSpcode          = "SPCODE"
	FieldParentID        = "PARENT_ID"
	FieldNonCurrentFlag  = "NON_CURRENT_FLAG"
	FieldScientificName  = "SCIENTIFIC_NAME"
	FieldDisplayName     = "DISPLAY_NAME"
	FieldAuthority       = "AUTHORITY"
	FieldCommonName      = "COMMON_NAME"
	FieldCommonNamesList = "COMMON_NAMES_LIST"
	FieldRecentSynonyms  = "RECENT_SYNONYMS"
	FieldKingdom         = "KINGDOM"
	FieldPhylum          = "PHYLUM"
	FieldSubphylum       = "SUBPHYLUM"
	FieldClass           = "CLASS"
	FieldSubclass        = "SUBCLASS"
	FieldOrderName       = "ORDER_NAME"
	FieldSuborder        = "SUBORDER"
	FieldInfraorder      = "INFRAORDER"
	FieldFamily          = "FAMILY"
	FieldGenus           = "GENUS"
	FieldSubgenus        = "SUBGENUS"
	FieldSpecies         = "SPECIES"
	FieldSubspecies      = "SUBSPECIES"
	FieldVariety         = "VARIETY"
	FieldRank            = "RANK"
	FieldStandard        = "STANDARD"
	FieldIntroducedFlag  = "INTRODUCED_FLAG"
)

// CaabSchema lists the columns a source dump may provide, in register order.
var CaabSchema = []string{
	FieldSpcode, FieldParentID, FieldNonCurrentFlag,
	FieldScientificName, FieldDisplayName, FieldAuthority,
	FieldCommonName, FieldCommonNamesList, FieldRecentSynonyms,
	FieldKingdom, FieldPhylum, FieldSubphylum, FieldClass, FieldSubclass,
	FieldOrderName, FieldSuborder, FieldInfraorder, FieldFamily,
	FieldGenus, FieldSubgenus, FieldSpecies, FieldSubspecies, FieldVariety,
	FieldRank, FieldStandard, FieldIntroducedFlag,
}

// CaabRequired are the columns that must appear in a dump header for the file
// to be accepted at all; the remainder may be missing and read as absent.
var CaabRequired = []string{
	FieldSpcode, FieldScientificName, FieldDisplayName,
}

// Record is a row keyed by schema column name. Absent and empty are the same
// state: setting an empty value removes the field, and a missing field reads
// as "", false. Transforms clone before rewriting so the input row is never
// mutated.
type Record struct {
	fields map[string]string
}

func NewRecord() Record {
	return Record{fields: map[string]string{}}
}

func (r Record) Get(field string) (string, bool) {
	v, ok := r.fields[field]
	return v, ok
}

// Value returns the field text, "" when absent.
func (r Record) Value(field string) string {
	return r.fields[field]
}

func (r Record) Has(field string) bool {
	_, ok := r.fields[field]
	return ok
}

func (r Record) Set(field, value string) {
	if value == "" {
		delete(r.fields, field)
		return
	}
	r.fields[field] = value
}

func (r Record) Clone() Record {
	out := NewRecord()
	for k, v := range r.fields {
		out.fields[k] = v
	}
	return out
}

func (r Record) Len() int {
	return len(r.fields)
}

// TaxonRow is a staged Darwin Core taxon record.
type TaxonRow struct {
	ID                       int
	TaxonID                  string
	ParentNameUsageID        *string
	AcceptedNameUsageID      *string
	NomenclaturalCode        *string
	ScientificName           string
	ScientificNameAuthorship *string
	TaxonRank                string
	TaxonomicStatus          string
	NomenclaturalStatus      *string
	Kingdom                  *string
	Phylum                   *string
	Class                    *string
	Order                    *string
	Family                   *string
	Genus                    *string
	TaxonRemarks             *string
	Source                   *string
	DatasetID                string
}

// VernacularRow is a staged Darwin Core vernacular-name record.
type VernacularRow struct {
	ID              int
	TaxonID         string
	VernacularName  string
	Status          string
	IsPreferredName bool
	Language        string
	Source          *string
	DatasetID       string
	TaxonRemarks    *string
}

// Issue records a row or value the pipeline rejected or could not process,
// keyed by the stage that raised it. Issues surface in the review workbook so
// a curator can fix the register instead of chasing silent drops.
type Issue struct {
	ID     int
	Stage  string
	Spcode string
	Value  string
	Detail string
}

const (
	StageCurrent  = "current"
	StageLookup   = "lookup"
	StageExpand   = "expand"
	StageUsable   = "usable"
	StageValidate = "validate"
)

const (
	StatusAccepted = "accepted"
	StatusSynonym  = "synonym"

	VernacularStandard = "standard"
	VernacularCommon   = "common"

	// IntroducedCode is the register's literal flag value for an
	// introduced species.
	IntroducedCode = "I"
)

// RunStats summarises one processing run for the runs table.
type RunStats struct {
	SourceRows int
	Current    int
	Taxa       int
	Synonyms   int
	Vernacular int
	Issues     int
}
