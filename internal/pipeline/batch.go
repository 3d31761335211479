package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kyamamoto/scopecrawl/internal/scope"
)

// defaultConcurrency is the goroutine limit when none is configured.
const defaultConcurrency = 10

// Result is the verdict for a single candidate URL.
type Result struct {
	// URL is the candidate as given, untrimmed of its fragment.
	URL string

	// Valid reports whether the URL is crawlable.
	Valid bool

	// Rule names the first rejecting rule when Valid is false.
	Rule string
}

// BatchClassifier classifies many URLs concurrently.
//
// Design decision: We keep this separate from scope.Classifier because the
// classifier is a pure predicate; concurrency, ordering, and logging are
// batch concerns, not classification concerns.
type BatchClassifier struct {
	// classifier is the shared rule chain. It is stateless, so all
	// goroutines use the same instance.
	classifier *scope.Classifier

	// concurrency is the maximum number of concurrent classifications.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchClassifier.
type BatchOption func(*BatchClassifier)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchClassifier) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent classifications.
// Default is 10 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchClassifier) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchClassifier creates a BatchClassifier over the given rule chain.
func NewBatchClassifier(classifier *scope.Classifier, opts ...BatchOption) *BatchClassifier {
	b := &BatchClassifier{
		classifier:  classifier,
		concurrency: defaultConcurrency,
		logger:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Classify classifies all URLs and returns one Result per input, in input
// order.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because each URL is independent and errgroup keeps the concurrency
// bookkeeping out of our code. Results are written by index, so no mutex
// is needed on the output slice.
func (b *BatchClassifier) Classify(ctx context.Context, urls []string) ([]Result, error) {
	b.logger.Debug("starting batch classification",
		"total_urls", len(urls),
		"concurrency", b.concurrency,
	)

	start := time.Now()
	results := make([]Result, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, rawURL := range urls {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			valid, rule := b.classifier.Explain(rawURL)
			results[i] = Result{
				URL:   rawURL,
				Valid: valid,
				Rule:  rule,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.logger.Debug("batch classification complete",
		"total_urls", len(urls),
		"duration", time.Since(start),
	)

	return results, nil
}
