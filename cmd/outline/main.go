// Command outline extracts a structured outline from every PDF in an
// input directory and writes one JSON file per document:
//
//	go run ./cmd/outline --input ./input --output ./output
//
// Each <name>.pdf produces <name>.json with the document title and its
// H1/H2/H3 headings with page numbers. A document that fails to parse
// still produces a valid JSON file with an empty outline.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	docintel "github.com/sachinrathod11/techstack-adobe-project-1a"
)

func main() {
	var (
		inputDir   = flag.String("input", "input", "Directory containing PDF files")
		outputDir  = flag.String("output", "output", "Directory for JSON output files")
		configPath = flag.String("config", "", "Optional YAML config file")
		verbose    = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := docintel.DefaultConfig()
	if *configPath != "" {
		loaded, err := docintel.LoadConfig(*configPath)
		if err != nil {
			fatal("loading config: %v", err)
		}
		cfg = loaded
	}

	engine, err := docintel.New(cfg)
	if err != nil {
		fatal("creating engine: %v", err)
	}

	pdfs, err := listPDFs(*inputDir)
	if err != nil {
		fatal("%v", err)
	}
	if len(pdfs) == 0 {
		fatal("no PDF files found in %s", *inputDir)
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fatal("creating output directory: %v", err)
	}

	ctx := context.Background()
	failures := 0
	for _, path := range pdfs {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outPath := filepath.Join(*outputDir, stem+".json")

		result, err := engine.ExtractOutlineFile(ctx, path)
		if err != nil {
			slog.Error("extraction failed", "file", filepath.Base(path), "error", err)
			failures++
			// Emit a valid empty outline so downstream consumers always
			// find one JSON file per input.
			result = &docintel.OutlineResult{Title: stem, Outline: []docintel.OutlineEntry{}}
		}

		if err := writeJSON(outPath, result); err != nil {
			fatal("writing %s: %v", outPath, err)
		}
		fmt.Printf("%s -> %s (%d headings)\n", filepath.Base(path), filepath.Base(outPath), len(result.Outline))
	}

	if failures > 0 {
		slog.Warn("some documents failed", "failed", failures, "total", len(pdfs))
	}
}

// listPDFs returns the sorted PDF paths in a directory.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	var pdfs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			pdfs = append(pdfs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(pdfs)
	return pdfs, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "outline: "+format+"\n", args...)
	os.Exit(1)
}
