package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/papersec/docsource"
	"github.com/hazyhaar/papersec/papersec"
	"github.com/hazyhaar/papersec/runlog"
)

var (
	flagOutDir  string
	flagNoWrite bool
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE...",
	Short: "Extract sections from one or more documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		extractor := newExtractor(cfg, logger)
		loader := docsource.New(docsource.Config{Logger: logger})

		var runs *runlog.Store
		if cfg.RunLogPath != "" {
			runs, err = runlog.Open(cfg.RunLogPath, logger)
			if err != nil {
				return err
			}
			defer runs.Close()
		}

		paths, err := expandArgs(args)
		if err != nil {
			return err
		}

		var failed int
		for _, path := range paths {
			if err := extractOne(cmd, extractor, loader, runs, path); err != nil {
				logger.Error("extraction failed", "file", path, "error", err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, len(paths))
		}
		return nil
	},
}

// expandArgs replaces directory arguments with the supported documents they
// contain, non-recursively. File arguments pass through as given.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if _, err := docsource.Detect(entry.Name()); err != nil {
				continue
			}
			paths = append(paths, filepath.Join(arg, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no supported documents among %v", args)
	}
	return paths, nil
}

func init() {
	extractCmd.Flags().StringVarP(&flagOutDir, "out", "o", "", "output directory (default: <file>_sections next to the input)")
	extractCmd.Flags().BoolVar(&flagNoWrite, "no-write", false, "print the summary without writing section files")
}

func extractOne(cmd *cobra.Command, extractor *papersec.Extractor, loader *docsource.Loader, runs *runlog.Store, path string) error {
	text, err := loader.Load(path)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := extractor.Extract(cmd.Context(), text)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	formatSummary(cmd.OutOrStdout(), path, result)

	if !flagNoWrite {
		dir := flagOutDir
		if dir == "" {
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			dir = filepath.Join(filepath.Dir(path), base+"_sections")
		}
		written, err := writeSections(dir, result.Sections)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", dimStyle.Render(fmt.Sprintf("Wrote %d files to %s", len(written), dir)))
	}

	if runs != nil {
		rec := runlog.Record{
			Source:    path,
			Escalated: result.Escalated,
			Duration:  elapsed,
			Missing:   result.Report.MissingCritical,
		}
		for _, name := range papersec.CanonicalSections {
			if _, ok := result.Sections[name]; ok {
				rec.Sections = append(rec.Sections, name)
			}
		}
		if _, err := runs.Log(cmd.Context(), rec); err != nil {
			// Run history is best-effort.
			fmt.Fprintln(os.Stderr, "warning: run log:", err)
		}
	}
	return nil
}
