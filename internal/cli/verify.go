package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/labelscope/labelscope/internal/pipeline"
)

var (
	claimPath    string
	evidencePath string
	productType  string
	strategy     string
	outPath      string
	outFormat    string
	timeout      time.Duration
	noCache      bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <image>",
	Short: "Verify one label image against a claim file",
	Long: `Verify runs OCR on a label image and checks every claimed field
against the recognized text, producing per-field verdicts and a
weighted compliance score.

The claim file is YAML or JSON. Its product_type field (spirits, wine,
or beer) selects which category-specific checks run; --type overrides it.

Example:
  labelscope verify label.png --claim claim.yaml
  labelscope verify label.png --claim claim.yaml --type wine --format markdown
  labelscope verify --claim claim.yaml --evidence ocr.json
  labelscope verify label.png --claim claim.yaml --llm --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&claimPath, "claim", "", "claim file (YAML or JSON, required)")
	_ = verifyCmd.MarkFlagRequired("claim")
	verifyCmd.Flags().StringVar(&evidencePath, "evidence", "", "pre-extracted OCR evidence JSON (skips the vision call)")
	verifyCmd.Flags().StringVar(&productType, "type", "", "product type override: spirits, wine, or beer")
	verifyCmd.Flags().StringVar(&strategy, "strategy", "", "matching strategy: fuzzy or exact")
	verifyCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the report to a file instead of stdout")
	verifyCmd.Flags().StringVar(&outFormat, "format", "", "output format: json or markdown")
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall verification timeout")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the OCR result cache")

	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "attach an LLM summary to the report")
	verifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && evidencePath == "" {
		return fmt.Errorf("either a label image argument or --evidence is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
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
	if err := applyLLMFlags(&cfg, llmEnabled, llmProvider, llmModel); err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		ClaimPath:    claimPath,
		EvidencePath: evidencePath,
		ProductType:  productType,
	}
	if len(args) > 0 {
		opts.ImagePath = args[0]
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Claim:  %s\n", claimPath)
		if opts.ImagePath != "" {
			fmt.Fprintf(os.Stderr, "Image:  %s\n", opts.ImagePath)
		}
		if evidencePath != "" {
			fmt.Fprintf(os.Stderr, "Evidence: %s\n", evidencePath)
		}
		fmt.Fprintln(os.Stderr)
	}

	report, err := p.Verify(ctx, opts)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	if outPath != "" {
		if err := pipeline.WriteReport(report, cfg.Output.Format, outPath); err != nil {
			return err
		}
		pipeline.RenderSummary(os.Stderr, report)
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote report: %s\n", outPath)
		}
		return nil
	}

	data, err := pipeline.Render(report, cfg.Output.Format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
