package pipeline

import (
	"fmt"
	"strconv"

	"caabdwc/internal"
	"caabdwc/internal/config"
	"caabdwc/internal/util"
)

// Mapping from cleaned register rows to Darwin Core records. Output records
// use DwC term names as field keys.

// TaxonURL builds the identifier for a species code from the configured
// register URL prefix.
func TaxonURL(cfg config.Config, spcode string) string {
	return cfg.Default("taxonURLPrefix") + spcode
}

// ToAcceptedTaxon maps one current register row to its accepted DwC taxon.
// parents is the set of species codes present in the run; a PARENT_ID
// outside it leaves parentNameUsageID unset rather than dangling.
func ToAcceptedTaxon(r internal.Record, cfg config.Config, parents map[string]bool) internal.Record {
	spcode := r.Value(internal.FieldSpcode)
	out := internal.NewRecord()
	out.Set("taxonID", TaxonURL(cfg, spcode))
	if parent := r.Value(internal.FieldParentID); parent != "" && parents[parent] {
		out.Set("parentNameUsageID", TaxonURL(cfg, parent))
	}

	name := r.Value(internal.FieldScientificName)
	if name == "" {
		name = r.Value(internal.FieldDisplayName)
	}
	out.Set("scientificName", name)
	out.Set("scientificNameAuthorship", r.Value(internal.FieldAuthority))
	rank := r.Value(internal.FieldRank)
	if rank == "" {
		rank = "unranked"
	}
	out.Set("taxonRank", rank)
	out.Set("taxonomicStatus", internal.StatusAccepted)
	out.Set("nomenclaturalCode", r.Value("nomenclaturalCode"))
	out.Set("kingdom", r.Value(internal.FieldKingdom))
	out.Set("phylum", r.Value(internal.FieldPhylum))
	out.Set("class", r.Value(internal.FieldClass))
	out.Set("order", r.Value(internal.FieldOrderName))
	out.Set("family", r.Value(internal.FieldFamily))
	out.Set("genus", r.Value(internal.FieldGenus))
	out.Set("source", TaxonURL(cfg, spcode))
	out.Set("datasetID", cfg.Default("datasetID"))
	return out
}

// SynonymTaxa expands one denormalised synonym entry (which may itself be a
// name group) into synonym records pointing at the accepted taxon. ordinal
// numbers synonyms within a species code so taxonIDs stay distinct.
func SynonymTaxa(r internal.Record, entry string, cfg config.Config, ordinal *int) ([]internal.Record, error) {
	names, err := ExpandNameGroup(entry)
	if err != nil {
		return nil, err
	}

	spcode := r.Value(internal.FieldSpcode)
	accepted := TaxonURL(cfg, spcode)
	out := make([]internal.Record, 0, len(names))
	for _, name := range names {
		*ordinal++
		syn := internal.NewRecord()
		syn.Set("taxonID", fmt.Sprintf("%s-syn-%d", accepted, *ordinal))
		syn.Set("acceptedNameUsageID", accepted)
		syn.Set("scientificName", name)
		rank := r.Value(internal.FieldRank)
		if rank == "" {
			rank = "unranked"
		}
		syn.Set("taxonRank", rank)
		syn.Set("taxonomicStatus", internal.StatusSynonym)
		syn.Set("nomenclaturalCode", r.Value("nomenclaturalCode"))
		syn.Set("kingdom", r.Value(internal.FieldKingdom))
		syn.Set("source", accepted)
		syn.Set("datasetID", cfg.Default("datasetID"))
		out = append(out, syn)
	}
	return out, nil
}

// ApplyNamePatterns overrides a record's statuses with the first pattern
// matching its scientific name.
func ApplyNamePatterns(rows []internal.Record, patterns []NamePattern) []internal.Record {
	out := make([]internal.Record, 0, len(rows))
	for _, r := range rows {
		next := r.Clone()
		name := r.Value("scientificName")
		for _, p := range patterns {
			if p.Pattern.MatchString(name) {
				next.Set("taxonomicStatus", p.TaxonomicStatus)
				next.Set("nomenclaturalStatus", p.NomenclaturalStatus)
				break
			}
		}
		out = append(out, next)
	}
	return out
}

// RenameNames rewrites scientific names through the curated rename map.
func RenameNames(rows []internal.Record, names map[string]string) []internal.Record {
	out := make([]internal.Record, 0, len(rows))
	for _, r := range rows {
		next := r.Clone()
		if renamed, ok := names[r.Value("scientificName")]; ok {
			next.Set("scientificName", renamed)
		}
		out = append(out, next)
	}
	return out
}

// ValidateTaxon checks the fields every published taxon record must carry.
func ValidateTaxon(r internal.Record) error {
	for _, field := range []string{"taxonID", "scientificName", "taxonRank", "taxonomicStatus", "datasetID"} {
		if !r.Has(field) {
			return fmt.Errorf("taxon missing %s", field)
		}
	}
	return nil
}

// StandardVernaculars expands a row's standard common name against its
// scientific name group: one preferred vernacular record per resolved name,
// each remarking how the name was derived.
func StandardVernaculars(r internal.Record, cfg config.Config) ([]internal.Record, error) {
	common := r.Value(internal.FieldCommonName)
	if common == "" {
		return nil, nil
	}

	group := r.Value(internal.FieldScientificName)
	names, err := ExpandNameGroup(group)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{group}
	}

	standard := r.Value(internal.FieldStandard)
	if standard == "" {
		standard = cfg.Default("sourceLabel")
	}

	out := make([]internal.Record, 0, len(names))
	for _, name := range names {
		v := internal.NewRecord()
		v.Set("taxonID", TaxonURL(cfg, r.Value(internal.FieldSpcode)))
		v.Set("vernacularName", common)
		v.Set("status", internal.VernacularStandard)
		v.Set("isPreferredName", "true")
		v.Set("language", cfg.Default("vernacularLanguage"))
		v.Set("source", TaxonURL(cfg, r.Value(internal.FieldSpcode)))
		v.Set("datasetID", cfg.Default("datasetID"))
		v.Set("taxonRemarks", StandardNameRemark(name, group, standard, r.Value(internal.FieldIntroducedFlag)))
		out = append(out, v)
	}
	return out, nil
}

// CommonVernacular maps one denormalised common-name list entry.
func CommonVernacular(r internal.Record, name string, cfg config.Config) internal.Record {
	v := internal.NewRecord()
	v.Set("taxonID", TaxonURL(cfg, r.Value(internal.FieldSpcode)))
	v.Set("vernacularName", name)
	v.Set("status", internal.VernacularCommon)
	v.Set("isPreferredName", "false")
	v.Set("language", cfg.Default("vernacularLanguage"))
	v.Set("source", TaxonURL(cfg, r.Value(internal.FieldSpcode)))
	v.Set("datasetID", cfg.Default("datasetID"))
	return v
}

// TaxonRowFromRecord converts a DwC taxon record for staging.
func TaxonRowFromRecord(r internal.Record) internal.TaxonRow {
	return internal.TaxonRow{
		TaxonID:                  r.Value("taxonID"),
		ParentNameUsageID:        util.OptString(r.Value("parentNameUsageID")),
		AcceptedNameUsageID:      util.OptString(r.Value("acceptedNameUsageID")),
		NomenclaturalCode:        util.OptString(r.Value("nomenclaturalCode")),
		ScientificName:           r.Value("scientificName"),
		ScientificNameAuthorship: util.OptString(r.Value("scientificNameAuthorship")),
		TaxonRank:                r.Value("taxonRank"),
		TaxonomicStatus:          r.Value("taxonomicStatus"),
		NomenclaturalStatus:      util.OptString(r.Value("nomenclaturalStatus")),
		Kingdom:                  util.OptString(r.Value("kingdom")),
		Phylum:                   util.OptString(r.Value("phylum")),
		Class:                    util.OptString(r.Value("class")),
		Order:                    util.OptString(r.Value("order")),
		Family:                   util.OptString(r.Value("family")),
		Genus:                    util.OptString(r.Value("genus")),
		TaxonRemarks:             util.OptString(r.Value("taxonRemarks")),
		Source:                   util.OptString(r.Value("source")),
		DatasetID:                r.Value("datasetID"),
	}
}

// VernacularRowFromRecord converts a DwC vernacular record for staging.
func VernacularRowFromRecord(r internal.Record) internal.VernacularRow {
	preferred, _ := strconv.ParseBool(r.Value("isPreferredName"))
	return internal.VernacularRow{
		TaxonID:         r.Value("taxonID"),
		VernacularName:  r.Value("vernacularName"),
		Status:          r.Value("status"),
		IsPreferredName: preferred,
		Language:        r.Value("language"),
		Source:          util.OptString(r.Value("source")),
		DatasetID:       r.Value("datasetID"),
		TaxonRemarks:    util.OptString(r.Value("taxonRemarks")),
	}
}
