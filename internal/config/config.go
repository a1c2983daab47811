package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	DatasetID          string
	TaxonURLPrefix     string
	SourceLabel        string
	VernacularLanguage string

	DatasetTitle string
	DatasetURL   string
	Publisher    string
	ContactEmail string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "caab.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		DatasetID:          getEnv("DATASET_ID", "dr2595"),
		TaxonURLPrefix:     getEnv("TAXON_URL_PREFIX", "https://www.cmar.csiro.au/caab/taxon_report.cfm?caab_code="),
		SourceLabel:        getEnv("SOURCE_LABEL", "CAAB"),
		VernacularLanguage: getEnv("VERNACULAR_LANGUAGE", "en"),

		DatasetTitle: getEnv("DATASET_TITLE", "Codes for Australian Aquatic Biota"),
		DatasetURL:   getEnv("DATASET_URL", "https://www.cmar.csiro.au/caab/"),
		Publisher:    getEnv("PUBLISHER", "CSIRO Marine and Atmospheric Research"),
		ContactEmail: getEnv("CONTACT_EMAIL", ""),
	}

	return cfg, nil
}

// Default is the read-only context lookup handed to derived-field builders.
// Unknown keys resolve to "".
func (c Config) Default(key string) string {
	switch key {
	case "datasetID":
		return c.DatasetID
	case "taxonURLPrefix":
		return c.TaxonURLPrefix
	case "sourceLabel":
		return c.SourceLabel
	case "vernacularLanguage":
		return c.VernacularLanguage
	case "datasetTitle":
		return c.DatasetTitle
	case "datasetURL":
		return c.DatasetURL
	case "publisher":
		return c.Publisher
	case "contactEmail":
		return c.ContactEmail
	default:
		return ""
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
