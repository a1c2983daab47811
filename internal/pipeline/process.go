package pipeline

import (
	"time"

	"github.com/google/uuid"

	"caabdwc/internal"
	"caabdwc/internal/config"
	"caabdwc/internal/storage"
	"caabdwc/internal/util"
)

type ProcessingService struct {
	db  *storage.DB
	cfg config.Config
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg}
}

// Inputs names the register dump and its companion lookup tables. Lookup
// paths may be empty; the corresponding join is then skipped.
type Inputs struct {
	Source       string
	CodeMap      string
	NamePatterns string
	NameMap      string
}

// rankColumns are the per-rank name columns cleaned with the placeholder
// filter ("Unassigned ..." values read as absent).
var rankColumns = []string{
	internal.FieldKingdom, internal.FieldPhylum, internal.FieldSubphylum,
	internal.FieldClass, internal.FieldSubclass,
	internal.FieldOrderName, internal.FieldSuborder, internal.FieldInfraorder,
	internal.FieldFamily, internal.FieldGenus, internal.FieldSubgenus,
	internal.FieldSpecies, internal.FieldSubspecies, internal.FieldVariety,
}

// ProcessFile runs the whole preprocessing pipeline over one dump and stages
// the results, replacing any previously staged output.
func (s *ProcessingService) ProcessFile(in Inputs) (internal.RunStats, error) {
	start := time.Now()
	var stats internal.RunStats

	rows, err := ReadSourceFile(in.Source)
	if err != nil {
		return stats, err
	}
	stats.SourceRows = len(rows)

	codeMap := map[string]string{}
	if in.CodeMap != "" {
		if codeMap, err = ReadKeyValueCSV(in.CodeMap); err != nil {
			return stats, err
		}
	}
	var patterns []NamePattern
	if in.NamePatterns != "" {
		if patterns, err = ReadNamePatternsCSV(in.NamePatterns); err != nil {
			return stats, err
		}
	}
	nameMap := map[string]string{}
	if in.NameMap != "" {
		if nameMap, err = ReadKeyValueCSV(in.NameMap); err != nil {
			return stats, err
		}
	}

	if err := s.db.ClearStaged(); err != nil {
		return stats, err
	}

	var issues []internal.Issue
	addIssue := func(stage string, r internal.Record, value, detail string) {
		issues = append(issues, internal.Issue{
			Stage:  stage,
			Spcode: r.Value(internal.FieldSpcode),
			Value:  value,
			Detail: detail,
		})
	}

	// Keep only current register entries.
	current, nonCurrent := Filter(rows, IsCurrentTaxon)
	for _, r := range nonCurrent {
		addIssue(internal.StageCurrent, r, r.Value(internal.FieldScientificName), "non-current or placeholder row dropped")
	}
	stats.Current = len(current)

	// Per-field cleaning.
	cleaners := map[string]func(string) string{
		internal.FieldScientificName:  CleanScientific,
		internal.FieldDisplayName:     CleanScientific,
		internal.FieldAuthority:       util.StripMarkup,
		internal.FieldCommonName:      CleanCommon,
		internal.FieldCommonNamesList: CleanCommon,
		internal.FieldRecentSynonyms:  CleanScientific,
		internal.FieldRank:            CleanRank,
	}
	for _, col := range rankColumns {
		cleaners[col] = CleanScientificAssigned
	}
	cleaned := MapFields(current, cleaners)

	// Join the nomenclatural code for each kingdom.
	coded := Lookup(cleaned, codeMap, internal.FieldKingdom, "nomenclaturalCode", func(r internal.Record) {
		if r.Has(internal.FieldKingdom) {
			addIssue(internal.StageLookup, r, r.Value(internal.FieldKingdom), "kingdom has no nomenclatural code mapping")
		}
	})

	parents := map[string]bool{}
	for _, r := range coded {
		parents[r.Value(internal.FieldSpcode)] = true
	}

	// Accepted taxa, one per row.
	accepted := make([]internal.Record, 0, len(coded))
	for _, r := range coded {
		accepted = append(accepted, ToAcceptedTaxon(r, s.cfg, parents))
	}

	// Synonyms: split the synonym list, then expand each entry's name group.
	var synonyms []internal.Record
	ordinals := map[string]*int{}
	Denormalise(coded, internal.FieldRecentSynonyms, "|", func(r internal.Record, entry string) {
		spcode := r.Value(internal.FieldSpcode)
		if ordinals[spcode] == nil {
			ordinals[spcode] = new(int)
		}
		expanded, err := SynonymTaxa(r, entry, s.cfg, ordinals[spcode])
		if err != nil {
			addIssue(internal.StageExpand, r, entry, err.Error())
			return
		}
		synonyms = append(synonyms, expanded...)
	})
	synonyms = ApplyNamePatterns(synonyms, patterns)
	stats.Synonyms = len(synonyms)

	// Merge, rename, gate on usability, validate, stage.
	renamed := RenameNames(Merge(accepted, synonyms), nameMap)
	usable, unusable := Filter(renamed, IsUsableTaxon)
	for _, r := range unusable {
		addIssue(internal.StageUsable, r, r.Value("scientificName"), "scientific name not usable")
	}

	taxa := make([]internal.TaxonRow, 0, len(usable))
	for _, r := range usable {
		if err := ValidateTaxon(r); err != nil {
			addIssue(internal.StageValidate, r, r.Value("scientificName"), err.Error())
			continue
		}
		taxa = append(taxa, TaxonRowFromRecord(r))
	}
	stats.Taxa = len(taxa)
	if err := s.db.InsertTaxa(taxa); err != nil {
		return stats, err
	}

	// Vernacular names: the standard name fans out over the scientific name
	// group; the common-name list denormalises one record per entry.
	var vernacular []internal.VernacularRow
	for _, r := range coded {
		expanded, err := StandardVernaculars(r, s.cfg)
		if err != nil {
			addIssue(internal.StageExpand, r, r.Value(internal.FieldScientificName), err.Error())
			continue
		}
		for _, v := range expanded {
			vernacular = append(vernacular, VernacularRowFromRecord(v))
		}
	}
	Denormalise(coded, internal.FieldCommonNamesList, "|", func(r internal.Record, name string) {
		vernacular = append(vernacular, VernacularRowFromRecord(CommonVernacular(r, name, s.cfg)))
	})
	stats.Vernacular = len(vernacular)
	if err := s.db.InsertVernacular(vernacular); err != nil {
		return stats, err
	}

	stats.Issues = len(issues)
	for _, issue := range issues {
		if err := s.db.InsertIssue(issue); err != nil {
			return stats, err
		}
	}

	timings := map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())}
	if err := s.db.InsertRun(uuid.NewString(), in.Source, timings, stats); err != nil {
		return stats, err
	}
	if err := s.db.SetMetadata("lastSource", in.Source); err != nil {
		return stats, err
	}

	return stats, nil
}
