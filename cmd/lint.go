package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/typelint/typelint/formatter"
	"github.com/typelint/typelint/internal"
	tt "github.com/typelint/typelint/internal/types"
	"github.com/typelint/typelint/lint"
)

var (
	ignoreRules    string
	ignorePaths    string
	lintJSONOutput bool
	outPath        string
	useCache       bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Run the normal lint process",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine := newEngine()

		runNormalLintProcess(ctx, logger, engine, args, lintJSONOutput, outPath)
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	lintCmd.Flags().BoolVar(&lintJSONOutput, "json", false, "Output diagnostics in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().BoolVar(&useCache, "cache", false, "Reuse results for files unchanged since the previous run")
}

// newEngine builds the lint engine from the shared flags, exiting on
// configuration errors.
func newEngine() *internal.Engine {
	engine, err := lint.New(".", cfgFile)
	if err != nil {
		logger.Fatal("Failed to initialize lint engine", zap.Error(err))
	}
	engine.SetLogger(logger)

	if ignoreRules != "" {
		for _, rule := range strings.Split(ignoreRules, ",") {
			engine.IgnoreRule(strings.TrimSpace(rule))
		}
	}

	if ignorePaths != "" {
		for _, path := range strings.Split(ignorePaths, ",") {
			engine.IgnorePath(strings.TrimSpace(path))
		}
	}

	if useCache {
		cache, err := internal.NewCache(".typelint-cache")
		if err != nil {
			logger.Warn("Failed to initialize cache, continuing without it", zap.Error(err))
		} else {
			engine.SetCache(cache)
		}
	}

	return engine
}

func runNormalLintProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, isJSON bool, jsonOutput string) {
	diagnostics, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printDiagnostics(logger, diagnostics, isJSON, jsonOutput)

	if len(diagnostics) > 0 {
		os.Exit(1)
	}
}

func printDiagnostics(logger *zap.Logger, diagnostics []tt.Diagnostic, isJSON bool, jsonOutput string) {
	byFile := make(map[string][]tt.Diagnostic)
	for _, d := range diagnostics {
		byFile[d.Filename] = append(byFile[d.Filename], d)
	}

	sortedFiles := make([]string, 0, len(byFile))
	for filename := range byFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJSON {
		// text output
		for _, filename := range sortedFiles {
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			output := formatter.GenerateFormattedIssue(byFile[filename], sourceCode)
			fmt.Println(output)
		}
	} else {
		// JSON output
		d, err := json.Marshal(byFile)
		if err != nil {
			logger.Error("Error marshalling diagnostics to JSON", zap.Error(err))
			return
		}
		if jsonOutput == "" {
			fmt.Println(string(d))
		} else {
			f, err := os.Create(jsonOutput)
			if err != nil {
				logger.Error("Error creating JSON output file", zap.Error(err))
				return
			}
			defer f.Close()
			if _, err := f.Write(d); err != nil {
				logger.Error("Error writing JSON output file", zap.Error(err))
				return
			}
		}
	}
}
