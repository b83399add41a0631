package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"warden/internal/lint"
	"warden/internal/report"
	"warden/internal/sentence"
	"warden/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.txt|directory>...",
	Short: "Verify reports against their texts",
	Long:  "Check that every text has an up-to-date report and summarize its findings. Directories are walked for *.txt files.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "number of files checked in parallel (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("strict", false, "fail on style suggestions too, not only grammar errors")
}

// checkResult is the per-file outcome. Indices into the results slice are
// unique per goroutine, so no mutex is needed.
type checkResult struct {
	Path        string
	Errors      int
	Suggestions int
	// Segments counts paragraph and list-item segments with enough words
	// to be worth running through the engine.
	Segments   int
	Incomplete bool
	Err        error
}

func runCheck(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return err
	}

	files, err := collectTextFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("check: no text files found")
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]checkResult, len(files))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = checkFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return printCheckResults(results, strict)
}

func checkFile(path string) checkResult {
	res := checkResult{Path: path}
	text, _, err := source.LoadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	rep, err := report.Load(path+".warden", text)
	if err != nil {
		res.Err = err
		return res
	}
	errs, suggs := rep.Findings()
	errs = lint.DedupOverlapping(errs)
	res.Errors = len(errs)
	res.Suggestions = len(suggs)
	res.Segments = countAnalyzableSegments(text.String())
	res.Incomplete = !sentence.EndsComplete(text.String())
	return res
}

// countAnalyzableSegments counts the segments of the text that carry at
// least MinWordsForAnalysis words, the unit the grammar engine is fed.
func countAnalyzableSegments(text string) int {
	runes := []rune(text)
	n := 0
	for _, seg := range sentence.Split(text) {
		words := len(strings.Fields(string(runes[seg.Start:seg.End])))
		if words >= sentence.MinWordsForAnalysis {
			n++
		}
	}
	return n
}

func printCheckResults(results []checkResult, strict bool) error {
	failures := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failures++
			fmt.Printf("FAIL  %s: %v\n", res.Path, res.Err)
		case res.Errors > 0 || (strict && res.Suggestions > 0):
			failures++
			fmt.Printf("FAIL  %s: %d error(s), %d suggestion(s)\n", res.Path, res.Errors, res.Suggestions)
		default:
			note := ""
			if res.Incomplete {
				note = " (ends mid-sentence)"
			}
			fmt.Printf("ok    %s: %d segment(s), %d suggestion(s)%s\n", res.Path, res.Segments, res.Suggestions, note)
		}
	}
	if failures > 0 {
		return fmt.Errorf("check: %d of %d file(s) failed", failures, len(results))
	}
	fmt.Printf("checked %d file(s)\n", len(results))
	return nil
}

// collectTextFiles expands directory arguments into their *.txt and *.md
// files and returns a sorted, deduplicated list.
func collectTextFiles(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("check: %w", err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		walkErr := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.HasSuffix(path, ".txt") || strings.HasSuffix(path, ".md") {
				add(path)
			}
			return nil
		})
		if walkErr != nil && !errors.Is(walkErr, fs.SkipDir) {
			return nil, walkErr
		}
	}
	sort.Strings(files)
	return files, nil
}
