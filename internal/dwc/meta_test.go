package dwc

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScientificStart(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"Thunnus maccoyii", true},
		{"Thunnus", true},
		{"unknown sp", false},
		{"?Thunnus", false},
		{"T", false},
	}
	for _, tc := range cases {
		if got := ScientificStart.MatchString(tc.input); got != tc.want {
			t.Fatalf("%q: got %v want %v", tc.input, got, tc.want)
		}
	}
}

func TestWriteMeta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.xml")
	if err := WriteMeta(path); err != nil {
		t.Fatal(err)
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Core struct {
			RowType  string `xml:"rowType,attr"`
			Location string `xml:"files>location"`
			Fields   []struct {
				Term string `xml:"term,attr"`
			} `xml:"field"`
		} `xml:"core"`
		Extensions []struct {
			RowType  string `xml:"rowType,attr"`
			Location string `xml:"files>location"`
		} `xml:"extension"`
	}
	if err := xml.Unmarshal(blob, &doc); err != nil {
		t.Fatal(err)
	}

	if doc.Core.RowType != RowType || doc.Core.Location != "taxon.csv" {
		t.Fatalf("core %+v", doc.Core)
	}
	if len(doc.Core.Fields) != len(TaxonTerms) {
		t.Fatalf("fields %d want %d", len(doc.Core.Fields), len(TaxonTerms))
	}
	if len(doc.Extensions) != 1 || doc.Extensions[0].Location != "vernacularNames.csv" {
		t.Fatalf("extensions %+v", doc.Extensions)
	}
}

func TestWriteEml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eml.xml")
	info := EmlInfo{
		DatasetID: "dr2595",
		Title:     "Codes for Australian Aquatic Biota",
		URL:       "https://www.cmar.csiro.au/caab/",
		Publisher: "CSIRO",
	}
	if err := WriteEml(path, info); err != nil {
		t.Fatal(err)
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(blob)
	for _, want := range []string{"dr2595", "Codes for Australian Aquatic Biota", "CSIRO"} {
		if !strings.Contains(text, want) {
			t.Fatalf("eml missing %q", want)
		}
	}
}
