package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/labelscope/labelscope/internal/model"
)

// Entry is one claim/image pair from a batch manifest
type Entry struct {
	ClaimPath string
	ImagePath string
}

// Runner verifies a single claim/image pair
type Runner interface {
	VerifyEntry(ctx context.Context, entry Entry) (*model.Report, error)
}

// VerifyJob wraps one manifest entry for the pool
type VerifyJob struct {
	Entry  Entry
	Runner Runner
}

// Execute runs the verification for this entry
func (j *VerifyJob) Execute(ctx context.Context) Result {
	report, err := j.Runner.VerifyEntry(ctx, j.Entry)
	return &VerifyResult{
		Entry:  j.Entry,
		Report: report,
		Error:  err,
	}
}

// VerifyResult is the outcome of one manifest entry
type VerifyResult struct {
	Entry  Entry
	Report *model.Report
	Error  error
}

// GetError returns the error from the verification, if any
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple claim/image pairs concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessEntries verifies the entries concurrently
func (b *BatchProcessor) ProcessEntries(ctx context.Context, entries []Entry) []*VerifyResult {
	if len(entries) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, entry := range entries {
		pool.Submit(&VerifyJob{Entry: entry, Runner: b.runner})
	}

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, len(results))
	for i, result := range results {
		verifyResults[i] = result.(*VerifyResult)
	}

	return verifyResults
}

// ProcessManifest reads a manifest file and verifies its entries
func (b *BatchProcessor) ProcessManifest(ctx context.Context, path string) ([]*VerifyResult, error) {
	entries, err := ReadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessEntries(ctx, entries), nil
}

// ReadManifest reads a batch manifest: one "claim-file image-file" pair
// per whitespace-separated line. Blank lines and # comments are skipped;
// duplicate pairs are processed once.
func ReadManifest(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []Entry
	seen := make(map[Entry]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("manifest line %d: want \"claim-file image-file\", got %q", lineNo, line)
		}

		entry := Entry{ClaimPath: fields[0], ImagePath: fields[1]}
		if !seen[entry] {
			seen[entry] = true
			entries = append(entries, entry)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}

	return entries, nil
}
