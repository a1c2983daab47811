package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"caabdwc/internal"
	"caabdwc/internal/config"
	"caabdwc/internal/dwc"
	"caabdwc/internal/util"
)

// ExportArchive writes taxon.csv, vernacularNames.csv, meta.xml and eml.xml
// into outputDir, in staged order.
func ExportArchive(taxa []internal.TaxonRow, vernacular []internal.VernacularRow, cfg config.Config, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	if err := writeTaxonCSV(taxa, filepath.Join(outputDir, "taxon.csv")); err != nil {
		return err
	}
	if err := writeVernacularCSV(vernacular, filepath.Join(outputDir, "vernacularNames.csv")); err != nil {
		return err
	}
	if err := dwc.WriteMeta(filepath.Join(outputDir, "meta.xml")); err != nil {
		return err
	}
	return dwc.WriteEml(filepath.Join(outputDir, "eml.xml"), dwc.EmlInfo{
		DatasetID:    cfg.Default("datasetID"),
		Title:        cfg.Default("datasetTitle"),
		URL:          cfg.Default("datasetURL"),
		Publisher:    cfg.Default("publisher"),
		ContactEmail: cfg.Default("contactEmail"),
	})
}

func writeTaxonCSV(taxa []internal.TaxonRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(dwc.TaxonTerms); err != nil {
		return err
	}
	for _, t := range taxa {
		row := []string{
			t.TaxonID,
			util.Deref(t.ParentNameUsageID),
			util.Deref(t.AcceptedNameUsageID),
			util.Deref(t.NomenclaturalCode),
			t.ScientificName,
			util.Deref(t.ScientificNameAuthorship),
			t.TaxonRank,
			t.TaxonomicStatus,
			util.Deref(t.NomenclaturalStatus),
			util.Deref(t.Kingdom),
			util.Deref(t.Phylum),
			util.Deref(t.Class),
			util.Deref(t.Order),
			util.Deref(t.Family),
			util.Deref(t.Genus),
			util.Deref(t.TaxonRemarks),
			util.Deref(t.Source),
			t.DatasetID,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeVernacularCSV(vernacular []internal.VernacularRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(dwc.VernacularTerms); err != nil {
		return err
	}
	for _, v := range vernacular {
		row := []string{
			v.TaxonID,
			v.VernacularName,
			v.Status,
			strconv.FormatBool(v.IsPreferredName),
			v.Language,
			util.Deref(v.Source),
			v.DatasetID,
			util.Deref(v.TaxonRemarks),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportReviewXLSX writes the curator's review workbook: every issue the run
// raised plus a summary sheet of staged counts.
func ExportReviewXLSX(issues []internal.Issue, stats internal.RunStats, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetName(sheet, "Issues")
	sheet = "Issues"

	headers := []string{"stage", "spcode", "value", "detail"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, issue := range issues {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, issue.Stage)
		set(2, issue.Spcode)
		set(3, issue.Value)
		set(4, issue.Detail)
	}

	summary := "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return err
	}
	counts := [][]any{
		{"source rows", stats.SourceRows},
		{"current rows", stats.Current},
		{"taxa staged", stats.Taxa},
		{"synonyms", stats.Synonyms},
		{"vernacular names", stats.Vernacular},
		{"issues", stats.Issues},
	}
	for i, row := range counts {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, i+1)
			_ = f.SetCellValue(summary, cell, v)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
