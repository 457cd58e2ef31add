package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/labelscope/labelscope/internal/pipeline"
	"github.com/labelscope/labelscope/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Verify multiple labels from a manifest in parallel",
	Long: `Batch verifies many claim/image pairs concurrently:
- Read pairs from a manifest file, one "claim-file image-file" per line
- Verify pairs in parallel with a configurable worker count
- Throttle OCR calls per endpoint host
- Write one report per pair to the output directory

Example:
  labelscope batch manifest.txt
  labelscope batch manifest.txt --concurrency 8 --output-dir ./reports
  labelscope batch manifest.txt --format markdown --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory for reports (default: output.dir from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&outFormat, "format", "", "output format: json or markdown")
	batchCmd.Flags().StringVar(&strategy, "strategy", "", "matching strategy: fuzzy or exact")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the OCR result cache")

	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "attach LLM summaries to the reports")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if strategy != "" {
		cfg.Matching.Strategy = strategy
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if outFormat != "" {
		cfg.Output.Format = outFormat
	}
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	cfg.Concurrency.Workers = concurrency
	if err := applyLLMFlags(&cfg, llmEnabled, llmProvider, llmModel); err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Manifest: %s\n", manifest)
	fmt.Fprintf(os.Stderr, "Workers:  %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output:   %s\n\n", outputDir)

	processor := worker.NewBatchProcessor(p, concurrency)
	results, err := processor.ProcessManifest(ctx, manifest)
	if err != nil {
		return err
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "x %s: %v\n", result.Entry.ClaimPath, result.Error)
			continue
		}

		path := pipeline.ReportPath(outputDir, result.Entry.ClaimPath, cfg.Output.Format)
		if err := pipeline.WriteReport(result.Report, cfg.Output.Format, path); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "x %s: write report: %v\n", result.Entry.ClaimPath, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "  %s: %d/100 (grade %s) -> %s\n",
			result.Entry.ClaimPath, result.Report.ComplianceScore, result.Report.ComplianceGrade, path)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d verified, %d failed, %d total\n", successCount, failureCount, len(results))

	if failureCount > 0 {
		return fmt.Errorf("%d of %d entries failed", failureCount, len(results))
	}
	return nil
}
