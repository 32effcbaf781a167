// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/docx-recase/internal/cache"
	"github.com/pdiddy/docx-recase/internal/retry"
	"github.com/pdiddy/docx-recase/pkg/types"
)

// Cache stores recased paragraphs between runs. *cache.Store implements it.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, model, result string) error
}

// Result is the outcome for one paragraph.
type Result struct {
	// Index is the 0-based position of the paragraph in the input slice.
	Index  int
	Source string
	Text   string
	Err    error
	Cached bool
}

// Number returns the 1-based paragraph number.
func (r Result) Number() int { return r.Index + 1 }

// OK reports whether the paragraph was recased.
func (r Result) OK() bool { return r.Err == nil }

// Summary holds counts from a ProcessDocument run.
type Summary struct {
	Total     int
	Succeeded int
	Cached    int
	Failed    int
}

// HasFailures reports whether any paragraph failed.
func (s Summary) HasFailures() bool { return s.Failed > 0 }

// Summarize counts results by outcome. Cached results count as succeeded.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Cached:
			s.Cached++
			s.Succeeded++
		default:
			s.Succeeded++
		}
	}
	return s
}

// Processor recases paragraphs through a Backend.
type Processor struct {
	backend  Backend
	cache    Cache
	model    string
	progress io.Writer
	log      *zap.SugaredLogger

	batchSize  int
	batchDelay time.Duration
	maxRetries int
	baseDelay  time.Duration
}

// Option configures a Processor.
type Option func(*Processor)

// WithCache makes the processor consult and fill c.
func WithCache(c Cache) Option {
	return func(p *Processor) { p.cache = c }
}

// WithProgress sets the writer receiving one line per completed batch.
func WithProgress(w io.Writer) Option {
	return func(p *Processor) { p.progress = w }
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Processor) { p.log = log }
}

// NewProcessor returns a Processor for backend. Zero batch size, retry
// count and base delay fall back to the package defaults; a zero batch
// delay disables the pause between batches.
func NewProcessor(backend Backend, cfg types.ProcessConfig, opts ...Option) *Processor {
	p := &Processor{
		backend:    backend,
		model:      cfg.Bedrock.ModelID,
		progress:   io.Discard,
		log:        zap.NewNop().Sugar(),
		batchSize:  cfg.BatchSize,
		batchDelay: cfg.BatchDelay,
		maxRetries: cfg.Bedrock.MaxRetries,
		baseDelay:  cfg.Bedrock.RetryBaseDelay,
	}
	if p.batchSize <= 0 {
		p.batchSize = types.DefaultBatchSize
	}
	if p.maxRetries <= 0 {
		p.maxRetries = types.DefaultMaxRetries
	}
	if p.baseDelay <= 0 {
		p.baseDelay = types.DefaultRetryBaseDelay
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RecaseOne recases a single text, retrying throttled requests with
// exponential backoff. When every retry is throttled the error wraps
// ErrRateLimitExceeded.
func (p *Processor) RecaseOne(ctx context.Context, text string) (string, error) {
	policy := retry.Policy{
		MaxRetries: p.maxRetries,
		BaseDelay:  p.baseDelay,
		Retryable:  func(err error) bool { return errors.Is(err, ErrThrottled) },
		OnRetry: func(n int, delay time.Duration, _ error) {
			p.log.Warnf("Rate limit hit. Retrying in %v (retry %d/%d)...", delay, n, p.maxRetries)
		},
	}

	out, err := retry.Do(ctx, policy, func(ctx context.Context) (string, error) {
		return p.backend.Recase(ctx, text)
	})
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, retry.ErrExhausted):
		return "", fmt.Errorf("%w: %w", ErrRateLimitExceeded, err)
	case ctx.Err() != nil:
		return "", err
	default:
		p.log.Errorf("Model error: %v", err)
		return "", err
	}
}

// recase handles one paragraph, serving it from the cache when possible.
func (p *Processor) recase(ctx context.Context, index int, text string) Result {
	r := Result{Index: index, Source: text}

	var key string
	if p.cache != nil {
		key = cache.Key(p.model, text)
		cached, ok, err := p.cache.Get(ctx, key)
		if err != nil {
			p.log.Warnf("Cache lookup failed for paragraph %d: %v", r.Number(), err)
		} else if ok {
			r.Text, r.Cached = cached, true
			return r
		}
	}

	r.Text, r.Err = p.RecaseOne(ctx, text)
	if r.Err == nil && p.cache != nil {
		if err := p.cache.Put(ctx, key, p.model, r.Text); err != nil {
			p.log.Warnf("Cache write failed for paragraph %d: %v", r.Number(), err)
		}
	}
	return r
}

// ProcessDocument recases paragraphs in consecutive batches of the
// configured size, running each batch concurrently. Results are returned
// in input order, one per paragraph; a failed paragraph carries its error
// and does not stop the run. A cancelled context stops the run after the
// current batch and returns the partial results with ctx.Err().
func (p *Processor) ProcessDocument(ctx context.Context, paragraphs []string) ([]Result, error) {
	n := len(paragraphs)
	p.log.Infof("Processing document with %d paragraphs", n)

	results := make([]Result, n)
	batches := (n + p.batchSize - 1) / p.batchSize

	for b := 0; b < batches; b++ {
		start := b * p.batchSize
		end := min(start+p.batchSize, n)

		var g errgroup.Group
		g.SetLimit(p.batchSize)
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = p.recase(ctx, i, paragraphs[i])
				return nil
			})
		}
		g.Wait()

		for _, r := range results[start:end] {
			if r.Err != nil {
				p.log.Errorf("Error processing paragraph %d: %v", r.Number(), r.Err)
			}
		}
		fmt.Fprintf(p.progress, "Processing document: batch %d/%d (%d/%d paragraphs)\n", b+1, batches, end, n)

		if err := ctx.Err(); err != nil {
			return results, err
		}
		if b < batches-1 && p.batchDelay > 0 {
			if err := retry.Sleep(ctx, p.batchDelay); err != nil {
				return results, err
			}
		}
	}

	return results, nil
}

// ProcessParagraph recases the paragraph with the given 1-based number.
func (p *Processor) ProcessParagraph(ctx context.Context, paragraphs []string, number int) (string, error) {
	n := len(paragraphs)
	if number < 1 || number > n {
		return "", fmt.Errorf("%w. Document has %d paragraphs. Please provide a number between 1 and %d.",
			ErrInvalidParagraph, n, n)
	}

	p.log.Infof("Processing paragraph %d of %d", number, n)
	r := p.recase(ctx, number-1, paragraphs[number-1])
	if r.Err != nil {
		return "", fmt.Errorf("processing paragraph %d: %w", number, r.Err)
	}
	return r.Text, nil
}
