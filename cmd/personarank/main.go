// Command personarank ranks the sections of a PDF collection by relevance
// to a persona and its job-to-be-done:
//
//	go run ./cmd/personarank --input ./collection --request request.yaml \
//	  --output analysis.json
//
// The request file carries the persona profile, the job description, and
// optional output limits:
//
//	persona:
//	  role: Travel Planner
//	  expertise: [budget travel, itineraries]
//	  experience_level: expert
//	job_to_be_done: Plan a 4-day trip for a group of 10 college friends.
//	max_sections: 10
//	max_subsections: 5
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

	"gopkg.in/yaml.v3"

	docintel "github.com/sachinrathod11/techstack-adobe-project-1a"
)

func main() {
	var (
		inputDir    = flag.String("input", "input", "Directory containing the PDF collection (3-10 files)")
		requestPath = flag.String("request", "request.yaml", "YAML file with persona, job_to_be_done, and limits")
		outputPath  = flag.String("output", "analysis.json", "Output JSON file")
		configPath  = flag.String("config", "", "Optional YAML config file")
		verbose     = flag.Bool("v", false, "Enable debug logging")
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

	req, err := loadRequest(*requestPath)
	if err != nil {
		fatal("loading request: %v", err)
	}

	pdfs, err := listPDFs(*inputDir)
	if err != nil {
		fatal("%v", err)
	}
	for _, path := range pdfs {
		req.Documents = append(req.Documents, docintel.DocumentInput{Path: path})
	}

	engine, err := docintel.New(cfg)
	if err != nil {
		fatal("creating engine: %v", err)
	}

	analysis, err := engine.AnalyzeCollection(context.Background(), req)
	if err != nil {
		fatal("analyzing collection: %v", err)
	}

	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		fatal("encoding analysis: %v", err)
	}
	if err := os.WriteFile(*outputPath, append(data, '\n'), 0o644); err != nil {
		fatal("writing %s: %v", *outputPath, err)
	}

	fmt.Printf("analyzed %d documents, %d ranked sections, %d subsection excerpts -> %s\n",
		len(analysis.Metadata.InputDocuments), len(analysis.ExtractedSections),
		len(analysis.SubsectionAnalysis), *outputPath)
	for _, w := range analysis.Metadata.Warnings {
		fmt.Printf("warning: %s: %s\n", w.Document, w.Reason)
	}
}

// loadRequest reads the persona/job request file (YAML, which also accepts
// plain JSON).
func loadRequest(path string) (docintel.CollectionRequest, error) {
	var req docintel.CollectionRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, err
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("parsing %s: %w", path, err)
	}
	return req, nil
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

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "personarank: "+format+"\n", args...)
	os.Exit(1)
}
