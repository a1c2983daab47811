package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"caabdwc/internal"
	"caabdwc/internal/config"
	"caabdwc/internal/pipeline"
	"caabdwc/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "process":
		in := parseInputs(cmd)
		processor := pipeline.NewProcessingService(db, cfg)
		stats, err := processor.ProcessFile(in)
		must(err)
		printStats(stats)
	case "export:csv":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", cfg.OutputDir, "output directory")
		_ = fs.Parse(os.Args[2:])
		taxa, err := db.ListTaxa()
		must(err)
		vernacular, err := db.ListVernacular()
		must(err)
		if len(taxa) == 0 {
			must(fmt.Errorf("nothing staged; run process first"))
		}
		must(pipeline.ExportArchive(taxa, vernacular, cfg, *out))
		fmt.Printf("exported %d taxa, %d vernacular names to %s\n", len(taxa), len(vernacular), *out)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", filepath.Join(cfg.OutputDir, "review.xlsx"), "review workbook path")
		_ = fs.Parse(os.Args[2:])
		issues, err := db.ListIssues()
		must(err)
		stats, err := stagedStats(db, issues)
		must(err)
		must(pipeline.ExportReviewXLSX(issues, stats, *out))
		fmt.Printf("exported %d issues to %s\n", len(issues), *out)
	case "run":
		in := parseInputs(cmd)
		processor := pipeline.NewProcessingService(db, cfg)
		stats, err := processor.ProcessFile(in)
		must(err)
		printStats(stats)
		taxa, err := db.ListTaxa()
		must(err)
		vernacular, err := db.ListVernacular()
		must(err)
		must(pipeline.ExportArchive(taxa, vernacular, cfg, cfg.OutputDir))
		issues, err := db.ListIssues()
		must(err)
		must(pipeline.ExportReviewXLSX(issues, stats, filepath.Join(cfg.OutputDir, "review.xlsx")))
		fmt.Printf("run done output=%s\n", cfg.OutputDir)
	default:
		usage()
		os.Exit(1)
	}
}

func parseInputs(cmd string) pipeline.Inputs {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	input := fs.String("input", "", "register dump (.csv or .xlsx)")
	codes := fs.String("codes", "", "nomenclatural code map csv")
	patterns := fs.String("patterns", "", "scientific name patterns csv")
	names := fs.String("names", "", "name rename map csv")
	_ = fs.Parse(os.Args[2:])
	if strings.TrimSpace(*input) == "" {
		must(fmt.Errorf("--input is required"))
	}
	return pipeline.Inputs{
		Source:       *input,
		CodeMap:      *codes,
		NamePatterns: *patterns,
		NameMap:      *names,
	}
}

func stagedStats(db *storage.DB, issues []internal.Issue) (internal.RunStats, error) {
	taxa, err := db.ListTaxa()
	if err != nil {
		return internal.RunStats{}, err
	}
	vernacular, err := db.ListVernacular()
	if err != nil {
		return internal.RunStats{}, err
	}
	stats := internal.RunStats{Taxa: len(taxa), Vernacular: len(vernacular), Issues: len(issues)}
	for _, t := range taxa {
		if t.TaxonomicStatus == internal.StatusSynonym {
			stats.Synonyms++
		}
	}
	return stats, nil
}

func printStats(stats internal.RunStats) {
	fmt.Printf("processed rows=%d current=%d taxa=%d synonyms=%d vernacular=%d issues=%d\n",
		stats.SourceRows, stats.Current, stats.Taxa, stats.Synonyms, stats.Vernacular, stats.Issues)
}

func usage() {
	fmt.Println("usage: caabdwc <command>")
	fmt.Println("commands:")
	fmt.Println("  process --input=caab_dump.csv [--codes=...] [--patterns=...] [--names=...]")
	fmt.Println("  export:csv [--out=./out]")
	fmt.Println("  export:xlsx [--out=./out/review.xlsx]")
	fmt.Println("  run --input=caab_dump.csv [--codes=...] [--patterns=...] [--names=...]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
