package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"caabdwc/internal"
)

func TestReadSourceCSVWithBOM(t *testing.T) {
	blob := "\ufeffSPCODE,NON_CURRENT_FLAG,SCIENTIFIC_NAME,DISPLAY_NAME,RANK\n" +
		"37441001,,Thunnus maccoyii,Southern Bluefin Tuna,Species\n" +
		"37441002,Y,Thunnus obesus,,Species\n"

	rows, err := readSourceCSV(strings.NewReader(blob))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("len=%d", len(rows))
	}
	if got := rows[0].Value(internal.FieldSpcode); got != "37441001" {
		t.Fatalf("BOM not stripped from first header: %q", got)
	}
	if !rows[1].Has(internal.FieldNonCurrentFlag) {
		t.Fatal("flag column lost")
	}
}

func TestReadSourceCSVMissingRequiredColumn(t *testing.T) {
	blob := "SPCODE,RANK\n1,species\n"
	if _, err := readSourceCSV(strings.NewReader(blob)); err == nil {
		t.Fatal("expected header error")
	}
}

func TestReadSourceXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"SPCODE", "NON_CURRENT_FLAG", "SCIENTIFIC_NAME", "DISPLAY_NAME"},
		{"37441001", "", "Thunnus maccoyii", "Southern Bluefin Tuna"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	path := filepath.Join(t.TempDir(), "dump.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	records, err := ReadSourceFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("len=%d", len(records))
	}
	if got := records[0].Value(internal.FieldScientificName); got != "Thunnus maccoyii" {
		t.Fatalf("got %q", got)
	}
}

func TestReadKeyValueCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.csv")
	blob := "kingdom,nomenclaturalCode\nAnimalia,ICZN\nPlantae,ICN\n"
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := ReadKeyValueCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if table["Animalia"] != "ICZN" || table["Plantae"] != "ICN" {
		t.Fatalf("table %v", table)
	}
}

func TestReadNamePatternsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.csv")
	blob := "pattern,taxonomicStatus,nomenclaturalStatus\n" +
		"[A-Z][a-z]+ cf\\. ,inferredSynonym,\n" +
		"Unplaced ,invalid,nomen dubium\n"
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatal(err)
	}

	patterns, err := ReadNamePatternsCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(patterns) != 2 {
		t.Fatalf("len=%d", len(patterns))
	}
	if !patterns[0].Pattern.MatchString("Thunnus cf. obesus") {
		t.Fatal("pattern not anchored as expected")
	}
	if patterns[1].NomenclaturalStatus != "nomen dubium" {
		t.Fatalf("got %q", patterns[1].NomenclaturalStatus)
	}
}
