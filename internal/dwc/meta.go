package dwc

import (
	"encoding/xml"
	"os"
	"time"
)

// meta.xml structures, per the Darwin Core text guidelines.

type metaArchive struct {
	XMLName    xml.Name   `xml:"archive"`
	Xmlns      string     `xml:"xmlns,attr"`
	Core       metaFile   `xml:"core"`
	Extensions []metaFile `xml:"extension,omitempty"`
}

type metaFile struct {
	RowType           string      `xml:"rowType,attr"`
	FieldsTerminated  string      `xml:"fieldsTerminatedBy,attr"`
	LinesTerminated   string      `xml:"linesTerminatedBy,attr"`
	FieldsEnclosed    string      `xml:"fieldsEnclosedBy,attr"`
	Encoding          string      `xml:"encoding,attr"`
	IgnoreHeaderLines int         `xml:"ignoreHeaderLines,attr"`
	Location          string      `xml:"files>location"`
	ID                *metaField  `xml:"id,omitempty"`
	CoreID            *metaField  `xml:"coreid,omitempty"`
	Fields            []metaField `xml:"field"`
}

type metaField struct {
	Index int    `xml:"index,attr"`
	Term  string `xml:"term,attr,omitempty"`
}

// WriteMeta writes a meta.xml describing taxon.csv as the core file and
// vernacularNames.csv as a vernacular-name extension keyed on taxonID.
func WriteMeta(path string) error {
	core := metaFile{
		RowType:           RowType,
		FieldsTerminated:  ",",
		LinesTerminated:   "\\n",
		FieldsEnclosed:    `"`,
		Encoding:          "UTF-8",
		IgnoreHeaderLines: 1,
		Location:          "taxon.csv",
		ID:                &metaField{Index: 0},
	}
	for i, term := range TaxonTerms {
		core.Fields = append(core.Fields, metaField{Index: i, Term: TermURI(term)})
	}

	ext := metaFile{
		RowType:           VernacularRowType,
		FieldsTerminated:  ",",
		LinesTerminated:   "\\n",
		FieldsEnclosed:    `"`,
		Encoding:          "UTF-8",
		IgnoreHeaderLines: 1,
		Location:          "vernacularNames.csv",
		CoreID:            &metaField{Index: 0},
	}
	for i, term := range VernacularTerms {
		if term == "taxonID" {
			continue
		}
		ext.Fields = append(ext.Fields, metaField{Index: i, Term: TermURI(term)})
	}

	archive := metaArchive{
		Xmlns:      "http://rs.tdwg.org/dwc/text/",
		Core:       core,
		Extensions: []metaFile{ext},
	}

	blob, err := xml.MarshalIndent(archive, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), append(blob, '\n')...), 0o644)
}

// EmlInfo carries the dataset metadata written into eml.xml.
type EmlInfo struct {
	DatasetID    string
	Title        string
	URL          string
	Publisher    string
	ContactEmail string
}

type emlDoc struct {
	XMLName  xml.Name   `xml:"eml:eml"`
	XmlnsEml string     `xml:"xmlns:eml,attr"`
	PackageD string     `xml:"packageId,attr"`
	System   string     `xml:"system,attr"`
	Dataset  emlDataset `xml:"dataset"`
}

type emlDataset struct {
	Title   string    `xml:"title"`
	Creator emlParty  `xml:"creator"`
	Contact *emlParty `xml:"contact,omitempty"`
	PubDate string    `xml:"pubDate"`
	Online  emlOnline `xml:"distribution>online"`
}

type emlParty struct {
	Organization string `xml:"organizationName,omitempty"`
	Email        string `xml:"electronicMailAddress,omitempty"`
}

type emlOnline struct {
	URL string `xml:"url"`
}

// WriteEml writes an eml.xml for the export using the configured dataset
// metadata.
func WriteEml(path string, info EmlInfo) error {
	doc := emlDoc{
		XmlnsEml: "eml://ecoinformatics.org/eml-2.1.1",
		PackageD: info.DatasetID,
		System:   "ALA-REGISTRY",
		Dataset: emlDataset{
			Title:   info.Title,
			Creator: emlParty{Organization: info.Publisher},
			PubDate: time.Now().UTC().Format("2006-01-02"),
			Online:  emlOnline{URL: info.URL},
		},
	}
	if info.ContactEmail != "" {
		doc.Dataset.Contact = &emlParty{Email: info.ContactEmail}
	}

	blob, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), append(blob, '\n')...), 0o644)
}
