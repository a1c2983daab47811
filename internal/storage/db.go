package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"caabdwc/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS taxa (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  taxonID TEXT NOT NULL,
  parentNameUsageID TEXT,
  acceptedNameUsageID TEXT,
  nomenclaturalCode TEXT,
  scientificName TEXT NOT NULL,
  scientificNameAuthorship TEXT,
  taxonRank TEXT NOT NULL,
  taxonomicStatus TEXT NOT NULL,
  nomenclaturalStatus TEXT,
  kingdom TEXT,
  phylum TEXT,
  class TEXT,
  order_name TEXT,
  family TEXT,
  genus TEXT,
  taxonRemarks TEXT,
  source TEXT,
  datasetID TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_taxa_taxonID ON taxa(taxonID);
CREATE INDEX IF NOT EXISTS idx_taxa_status ON taxa(taxonomicStatus);

CREATE TABLE IF NOT EXISTS vernacular (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  taxonID TEXT NOT NULL,
  vernacularName TEXT NOT NULL,
  status TEXT NOT NULL,
  isPreferredName INTEGER NOT NULL DEFAULT 0,
  language TEXT,
  source TEXT,
  datasetID TEXT NOT NULL,
  taxonRemarks TEXT
);
CREATE INDEX IF NOT EXISTS idx_vernacular_taxonID ON vernacular(taxonID);

CREATE TABLE IF NOT EXISTS issues (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  stage TEXT NOT NULL,
  spcode TEXT,
  value TEXT,
  detail TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  sourceFile TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ClearStaged drops staged output from previous runs; runs history is kept.
func (d *DB) ClearStaged() error {
	for _, stmt := range []string{
		`DELETE FROM taxa`,
		`DELETE FROM vernacular`,
		`DELETE FROM issues`,
	} {
		if _, err := d.conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) InsertTaxa(rows []internal.TaxonRow) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO taxa (
  taxonID, parentNameUsageID, acceptedNameUsageID, nomenclaturalCode,
  scientificName, scientificNameAuthorship, taxonRank, taxonomicStatus,
  nomenclaturalStatus, kingdom, phylum, class, order_name, family, genus,
  taxonRemarks, source, datasetID
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range rows {
		if _, err := stmt.Exec(
			t.TaxonID, t.ParentNameUsageID, t.AcceptedNameUsageID, t.NomenclaturalCode,
			t.ScientificName, t.ScientificNameAuthorship, t.TaxonRank, t.TaxonomicStatus,
			t.NomenclaturalStatus, t.Kingdom, t.Phylum, t.Class, t.Order, t.Family, t.Genus,
			t.TaxonRemarks, t.Source, t.DatasetID,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListTaxa() ([]internal.TaxonRow, error) {
	rows, err := d.conn.Query(`
SELECT id, taxonID, parentNameUsageID, acceptedNameUsageID, nomenclaturalCode,
       scientificName, scientificNameAuthorship, taxonRank, taxonomicStatus,
       nomenclaturalStatus, kingdom, phylum, class, order_name, family, genus,
       taxonRemarks, source, datasetID
FROM taxa ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.TaxonRow
	for rows.Next() {
		var t internal.TaxonRow
		if err := rows.Scan(
			&t.ID, &t.TaxonID, &t.ParentNameUsageID, &t.AcceptedNameUsageID, &t.NomenclaturalCode,
			&t.ScientificName, &t.ScientificNameAuthorship, &t.TaxonRank, &t.TaxonomicStatus,
			&t.NomenclaturalStatus, &t.Kingdom, &t.Phylum, &t.Class, &t.Order, &t.Family, &t.Genus,
			&t.TaxonRemarks, &t.Source, &t.DatasetID,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (d *DB) InsertVernacular(rows []internal.VernacularRow) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO vernacular (
  taxonID, vernacularName, status, isPreferredName, language, source, datasetID, taxonRemarks
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range rows {
		preferred := 0
		if v.IsPreferredName {
			preferred = 1
		}
		if _, err := stmt.Exec(
			v.TaxonID, v.VernacularName, v.Status, preferred, v.Language, v.Source, v.DatasetID, v.TaxonRemarks,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListVernacular() ([]internal.VernacularRow, error) {
	rows, err := d.conn.Query(`
SELECT id, taxonID, vernacularName, status, isPreferredName, language, source, datasetID, taxonRemarks
FROM vernacular ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.VernacularRow
	for rows.Next() {
		var v internal.VernacularRow
		var preferred int
		if err := rows.Scan(&v.ID, &v.TaxonID, &v.VernacularName, &v.Status, &preferred, &v.Language, &v.Source, &v.DatasetID, &v.TaxonRemarks); err != nil {
			return nil, err
		}
		v.IsPreferredName = preferred != 0
		out = append(out, v)
	}
	return out, rows.Err()
}

func (d *DB) InsertIssue(issue internal.Issue) error {
	_, err := d.conn.Exec(`
INSERT INTO issues (stage, spcode, value, detail) VALUES (?, ?, ?, ?)
`, issue.Stage, issue.Spcode, issue.Value, issue.Detail)
	return err
}

func (d *DB) ListIssues() ([]internal.Issue, error) {
	rows, err := d.conn.Query(`SELECT id, stage, spcode, value, detail FROM issues ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Issue
	for rows.Next() {
		var i internal.Issue
		if err := rows.Scan(&i.ID, &i.Stage, &i.Spcode, &i.Value, &i.Detail); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(traceID, sourceFile string, timings map[string]float64, counts internal.RunStats) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`
INSERT INTO runs (traceId, sourceFile, timingsJson, countsJson) VALUES (?, ?, ?, ?)
`, traceID, sourceFile, string(timingsJSON), string(countsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
