// Package pipeline orchestrates one verification: load the claim, obtain
// OCR evidence for the label image (through the cache when enabled), run
// the field verifiers, and optionally attach an LLM summary.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/labelscope/labelscope/internal/cache"
	"github.com/labelscope/labelscope/internal/llm"
	"github.com/labelscope/labelscope/internal/match"
	"github.com/labelscope/labelscope/internal/model"
	"github.com/labelscope/labelscope/internal/ocr"
	"github.com/labelscope/labelscope/internal/verify"
	"github.com/labelscope/labelscope/internal/worker"
)

// Pipeline wires the verification stages together
type Pipeline struct {
	verifier   *verify.Verifier
	ocr        ocr.Provider // nil when no OCR endpoint is configured
	store      cache.Store  // nil when caching is disabled
	limiter    *worker.Limiter
	summarizer llm.Provider // nil when LLM summaries are disabled
	config     model.Config
}

// New creates a pipeline from configuration
func New(cfg model.Config) (*Pipeline, error) {
	scorer, err := match.NewScorer(cfg.Matching.Strategy)
	if err != nil {
		return nil, err
	}
	if scorer.Name() == match.StrategyExact {
		fmt.Fprintln(os.Stderr, "Warning: exact matching is sensitive to OCR noise; fuzzy is recommended")
	}

	var store cache.Store
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = filepath.Join(home, ".labelscope", "cache")
		}
		store = cache.NewLayeredStore(cfg.Cache.TTL, dir, cfg.Cache.TTL)
	}

	var summarizer llm.Provider
	if cfg.LLM.Provider != "" {
		s, err := llm.NewProvider(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summaries disabled: %v\n", err)
		} else {
			summarizer = s
		}
	}

	// Built eagerly so batch workers share one client; images are only
	// required to have an endpoint when OCR actually runs
	var provider ocr.Provider
	if cfg.OCR.Endpoint != "" {
		provider, err = ocr.NewProvider(cfg.OCR)
		if err != nil {
			return nil, err
		}
	}

	return &Pipeline{
		verifier:   verify.New(scorer),
		ocr:        provider,
		store:      store,
		limiter:    worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst),
		summarizer: summarizer,
		config:     cfg,
	}, nil
}

// Options selects the inputs for one verification
type Options struct {
	// ClaimPath is the YAML or JSON claim file
	ClaimPath string

	// ImagePath is the label image to OCR. Ignored when EvidencePath is set.
	ImagePath string

	// EvidencePath is a pre-extracted OCR evidence JSON file. It bypasses
	// preprocessing, the cache, and the vision call entirely.
	EvidencePath string

	// ProductType overrides the product_type from the claim file
	ProductType string
}

// claimFile is the on-disk claim format: the claim fields plus the
// product category
type claimFile struct {
	ProductType string `yaml:"product_type" json:"product_type"`
	model.Claim `yaml:",inline"`
}

// Verify runs one claim/label verification end to end
func (p *Pipeline) Verify(ctx context.Context, opts Options) (*model.Report, error) {
	claim, productType, err := p.loadClaim(opts)
	if err != nil {
		return nil, err
	}

	var evidence *model.Evidence
	switch {
	case opts.EvidencePath != "":
		evidence, err = LoadEvidence(opts.EvidencePath)
	case opts.ImagePath != "":
		evidence, err = p.recognize(ctx, opts.ImagePath)
	default:
		return nil, fmt.Errorf("either an image or an evidence file is required")
	}
	if err != nil {
		return nil, err
	}

	report := p.verifier.Verify(claim, evidence, productType)

	// LLM summary runs AFTER scoring and never affects it
	if p.summarizer != nil {
		p.attachSummary(ctx, report, claim, productType)
	}

	return report, nil
}

// VerifyEntry implements worker.Runner for batch processing
func (p *Pipeline) VerifyEntry(ctx context.Context, entry worker.Entry) (*model.Report, error) {
	return p.Verify(ctx, Options{ClaimPath: entry.ClaimPath, ImagePath: entry.ImagePath})
}

// loadClaim reads and validates the claim file, resolving the product type
// from the override or the file
func (p *Pipeline) loadClaim(opts Options) (*model.Claim, model.ProductType, error) {
	data, err := os.ReadFile(opts.ClaimPath)
	if err != nil {
		return nil, "", fmt.Errorf("read claim: %w", err)
	}

	var cf claimFile
	if strings.EqualFold(filepath.Ext(opts.ClaimPath), ".json") {
		err = json.Unmarshal(data, &cf)
	} else {
		err = yaml.Unmarshal(data, &cf)
	}
	if err != nil {
		return nil, "", fmt.Errorf("parse claim: %w", err)
	}

	if err := cf.Claim.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid claim: %w", err)
	}

	typeName := opts.ProductType
	if typeName == "" {
		typeName = cf.ProductType
	}
	productType, err := model.ParseProductType(typeName)
	if err != nil {
		return nil, "", err
	}

	return &cf.Claim, productType, nil
}

// recognize obtains OCR evidence for a label image, serving repeats from
// the cache. The cache key is the hash of the preprocessed bytes.
func (p *Pipeline) recognize(ctx context.Context, imagePath string) (*model.Evidence, error) {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	prepared, err := ocr.Preprocess(raw, p.config.OCR.MaxImageSide)
	if err != nil {
		return nil, fmt.Errorf("preprocess %s: %w", imagePath, err)
	}

	key := cache.Key(prepared)
	if p.store != nil {
		if ev, found := p.store.Get(key); found {
			return ev, nil
		}
	}

	if p.ocr == nil {
		return nil, fmt.Errorf("OCR endpoint is required to read %s (set ocr.endpoint, or supply pre-extracted evidence)", imagePath)
	}

	if err := p.limiter.Wait(ctx, p.config.OCR.Endpoint); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	evidence, err := p.ocr.Recognize(ctx, prepared)
	if err != nil {
		return nil, fmt.Errorf("ocr %s: %w", imagePath, err)
	}
	if err := evidence.Validate(); err != nil {
		return nil, fmt.Errorf("ocr evidence for %s: %w", imagePath, err)
	}

	if p.store != nil {
		if err := p.store.Set(key, evidence, p.config.Cache.TTL); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
		}
	}

	return evidence, nil
}

func (p *Pipeline) attachSummary(ctx context.Context, report *model.Report, claim *model.Claim, productType model.ProductType) {
	resp, err := p.summarizer.Summarize(ctx, llm.SummarizeRequest{
		Report:      report,
		BrandName:   claim.BrandName,
		ProductType: productType,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM summary failed: %v\n", err)
		return
	}

	report.LLM = &model.LLMSummary{
		Enabled:   true,
		Provider:  p.summarizer.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
		Warnings:  resp.Warnings,
	}
}

// LoadEvidence reads pre-extracted OCR evidence from a JSON file
func LoadEvidence(path string) (*model.Evidence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read evidence: %w", err)
	}

	var ev model.Evidence
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("parse evidence: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return nil, fmt.Errorf("invalid evidence: %w", err)
	}

	return &ev, nil
}

// ReportPath derives the output file for a claim: the claim's base name
// with the render format's extension, under the output directory.
func ReportPath(dir, claimPath, format string) string {
	base := strings.TrimSuffix(filepath.Base(claimPath), filepath.Ext(claimPath))
	ext := ".json"
	if format == FormatMarkdown {
		ext = ".md"
	}
	return filepath.Join(dir, base+ext)
}
