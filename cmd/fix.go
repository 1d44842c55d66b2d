package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/typelint/typelint/internal/fixer"
	tt "github.com/typelint/typelint/internal/types"
	"github.com/typelint/typelint/lint"
	"github.com/typelint/typelint/scanner"
)

var (
	dryRun    bool
	fixLevel  string
	maxPasses int
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Automatically fix issues",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		threshold, err := tt.ParseApplicability(fixLevel)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine := newEngine()

		runAutoFix(ctx, logger, engine, args, threshold)
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run in dry-run mode (show fixes without applying them)")
	fixCmd.Flags().StringVar(&fixLevel, "fix-level", "safe", "Minimum fix safety to apply (safe, sometimes, unsafe)")
	fixCmd.Flags().IntVar(&maxPasses, "max-passes", fixer.DefaultMaxPasses, "Maximum number of fix passes per file")
}

func runAutoFix(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, threshold tt.Applicability) {
	fix := fixer.New(dryRun, threshold)
	if maxPasses > 0 {
		fix.MaxPasses = maxPasses
	}

	for _, path := range paths {
		files, err := collectTargets(path)
		if err != nil {
			logger.Error("error collecting files", zap.String("path", path), zap.Error(err))
			continue
		}

		for _, file := range files {
			select {
			case <-ctx.Done():
				logger.Error("fix timed out", zap.Error(ctx.Err()))
				os.Exit(1)
			default:
			}

			res, err := fix.FixFile(file, engine.RunSource)
			if err != nil {
				logger.Error("error fixing issues", zap.String("file", file), zap.Error(err))
				continue
			}
			if res.Stalled {
				logger.Warn("fixes did not converge; remaining issues left in place",
					zap.String("file", file),
					zap.Int("passes", res.Passes))
			}
		}
	}
}

// collectTargets expands a path into the lintable files beneath it.
func collectTargets(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	found, err := scanner.New(path).Scan()
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(found))
	for _, f := range found {
		files = append(files, f.Path)
	}
	return files, nil
}
