package content

import (
	"regexp"
	"strings"

	"github.com/kyamamoto/scopecrawl/internal/config"
)

// Reason identifies why a page was rejected by the filter.
type Reason string

// Rejection reasons. Stable strings, usable as log attributes and metric
// labels.
const (
	// ReasonOversized marks bodies past the size cap.
	ReasonOversized Reason = "oversized"

	// ReasonLowInformation marks pages below the minimum filtered word count.
	ReasonLowInformation Reason = "low-information"

	// ReasonLinkDensity marks navigation/index pages whose anchor-to-word
	// ratio is too high.
	ReasonLinkDensity Reason = "link-density"
)

// Evaluation is the explicit outcome of filtering a page.
// When Accepted is false, Reason says why; Words and WordCount are only
// meaningful on acceptance.
type Evaluation struct {
	// Accepted reports whether the page passed the quality bar.
	Accepted bool

	// Reason is set when Accepted is false.
	Reason Reason

	// Words are the filtered (non stop-word) tokens in document order.
	Words []string

	// WordCount is len(Words), kept for convenience.
	WordCount int

	// LinkDensity is the anchor-to-filtered-word ratio that was evaluated.
	LinkDensity float64
}

// A word is a run of at least two lowercase letters bounded by word breaks.
// Single letters and anything with digits or punctuation inside carry no
// analytical value.
var wordRegexp = regexp.MustCompile(`\b[a-z]{2,}\b`)

// Filter applies the content-quality heuristics to extracted page text.
// It is stateless and safe for concurrent use.
type Filter struct {
	maxBodySize    int64
	minWordCount   int
	maxLinkDensity float64
}

// NewFilter builds a Filter from configuration thresholds.
func NewFilter(cfg *config.Config) *Filter {
	return &Filter{
		maxBodySize:    cfg.MaxBodySize,
		minWordCount:   cfg.MinWordCount,
		maxLinkDensity: cfg.MaxLinkDensity,
	}
}

// Tokenize lower-cases text, extracts words, and drops stop words.
// The returned slice preserves document order and repetitions.
func Tokenize(text string) []string {
	raw := wordRegexp.FindAllString(strings.ToLower(text), -1)
	filtered := make([]string, 0, len(raw))
	for _, w := range raw {
		if !IsStopWord(w) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// EvaluateSize checks a raw body against the size cap before any parsing is
// done. Kept separate from Evaluate so the extractor can short-circuit
// without paying for a parse.
func (f *Filter) EvaluateSize(bodyLen int64) Evaluation {
	if bodyLen > f.maxBodySize {
		return Evaluation{Reason: ReasonOversized}
	}
	return Evaluation{Accepted: true}
}

// Evaluate applies the low-information and link-density heuristics to the
// visible text of a page. anchorCount is the number of anchor tags the
// parser saw, whether or not their targets are in scope.
func (f *Filter) Evaluate(text string, anchorCount int) Evaluation {
	words := Tokenize(text)

	if len(words) < f.minWordCount {
		return Evaluation{
			Reason:    ReasonLowInformation,
			WordCount: len(words),
		}
	}

	density := float64(anchorCount) / float64(len(words))
	if density > f.maxLinkDensity {
		return Evaluation{
			Reason:      ReasonLinkDensity,
			WordCount:   len(words),
			LinkDensity: density,
		}
	}

	return Evaluation{
		Accepted:    true,
		Words:       words,
		WordCount:   len(words),
		LinkDensity: density,
	}
}
