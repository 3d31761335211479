package analytics

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
)

// LongestPage records the page with the maximum filtered word count seen so
// far.
type LongestPage struct {
	URL       string `json:"url"`
	WordCount int    `json:"word_count"`
}

// Snapshot is the persisted shape of the analytics state. The field names
// are the on-disk keys; they round-trip through Save/Load without loss of
// counts.
type Snapshot struct {
	// UniquePages lists the fragment-stripped URLs of accepted pages.
	UniquePages []string `json:"unique_pages"`

	// WordCounts maps each accepted page to its filtered token count.
	WordCounts map[string]int `json:"word_counts"`

	// AllWords is the global word histogram over all accepted pages.
	AllWords map[string]int `json:"all_words"`

	// Subdomains counts accepted pages per host, restricted to hosts
	// ending in the target academic suffix.
	Subdomains map[string]int `json:"subdomains"`

	// LongestPage is the running word-count maximum.
	LongestPage LongestPage `json:"longest_page"`
}

// WordCount is a word together with its global occurrence count.
type WordCount struct {
	Word  string
	Count int
}

// SubdomainCount is a hostname together with its accepted-page count.
type SubdomainCount struct {
	Host  string
	Count int
}

// Store is the mutable analytics aggregate plus its durable snapshot file.
//
// Recording the same URL twice double-counts the histograms; at-most-once
// recording per physical page is the caller's responsibility, which the
// content filter guarantees upstream by accepting each extraction at most
// once. The unique-page set itself keeps set semantics regardless.
type Store struct {
	path string

	uniquePages map[string]struct{}
	wordCounts  map[string]int
	allWords    map[string]int
	subdomains  map[string]int
	longest     LongestPage

	targetSuffix string
}

// NewStore creates an empty Store that persists to path and counts
// subdomains whose host ends with targetSuffix.
func NewStore(path, targetSuffix string) *Store {
	return &Store{
		path:         path,
		uniquePages:  make(map[string]struct{}),
		wordCounts:   make(map[string]int),
		allWords:     make(map[string]int),
		subdomains:   make(map[string]int),
		targetSuffix: targetSuffix,
	}
}

// Load rehydrates the store from its snapshot file. A missing file is not
// an error: the store starts empty, which is exactly the first-run case.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read analytics snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse analytics snapshot: %w", err)
	}

	s.restore(&snap)
	return nil
}

// restore rebuilds the in-memory maps from the plain keyed-count shape on
// disk.
func (s *Store) restore(snap *Snapshot) {
	s.uniquePages = make(map[string]struct{}, len(snap.UniquePages))
	for _, u := range snap.UniquePages {
		s.uniquePages[u] = struct{}{}
	}

	s.wordCounts = make(map[string]int, len(snap.WordCounts))
	for k, v := range snap.WordCounts {
		s.wordCounts[k] = v
	}

	s.allWords = make(map[string]int, len(snap.AllWords))
	for k, v := range snap.AllWords {
		s.allWords[k] = v
	}

	s.subdomains = make(map[string]int, len(snap.Subdomains))
	for k, v := range snap.Subdomains {
		s.subdomains[k] = v
	}

	s.longest = snap.LongestPage
}

// Save overwrites the snapshot file with the full current state.
// A full overwrite rather than an append log is fine because the store is
// the sole writer; a crash mid-write loses at most the increments since the
// previous checkpoint.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize analytics snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write analytics snapshot: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current state in its persisted shape.
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{
		UniquePages: make([]string, 0, len(s.uniquePages)),
		WordCounts:  make(map[string]int, len(s.wordCounts)),
		AllWords:    make(map[string]int, len(s.allWords)),
		Subdomains:  make(map[string]int, len(s.subdomains)),
		LongestPage: s.longest,
	}

	for u := range s.uniquePages {
		snap.UniquePages = append(snap.UniquePages, u)
	}
	sort.Strings(snap.UniquePages)

	for k, v := range s.wordCounts {
		snap.WordCounts[k] = v
	}
	for k, v := range s.allWords {
		snap.AllWords[k] = v
	}
	for k, v := range s.subdomains {
		snap.Subdomains[k] = v
	}

	return snap
}

// Record folds an accepted page into the aggregate. url must already be
// fragment-stripped; words are its filtered tokens.
func (s *Store) Record(pageURL string, words []string) {
	s.uniquePages[pageURL] = struct{}{}
	s.wordCounts[pageURL] = len(words)

	for _, w := range words {
		s.allWords[w]++
	}

	if len(words) > s.longest.WordCount {
		s.longest = LongestPage{URL: pageURL, WordCount: len(words)}
	}

	if u, err := url.Parse(pageURL); err == nil {
		host := strings.ToLower(u.Hostname())
		if host != "" && strings.HasSuffix(host, s.targetSuffix) {
			s.subdomains[host]++
		}
	}
}

// UniquePages returns the number of distinct accepted pages.
func (s *Store) UniquePages() int {
	return len(s.uniquePages)
}

// Longest returns the longest-page record.
func (s *Store) Longest() LongestPage {
	return s.longest
}

// TopWords returns the n most frequent words, count descending. Ties are
// broken alphabetically so the ordering is reproducible across runs; Go map
// iteration has no stable "first encountered" order to preserve.
func (s *Store) TopWords(n int) []WordCount {
	words := make([]WordCount, 0, len(s.allWords))
	for w, c := range s.allWords {
		words = append(words, WordCount{Word: w, Count: c})
	}

	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if n > len(words) {
		n = len(words)
	}
	return words[:n]
}

// SubdomainCounts returns the per-subdomain counts sorted lexicographically
// by hostname.
func (s *Store) SubdomainCounts() []SubdomainCount {
	hosts := make([]SubdomainCount, 0, len(s.subdomains))
	for h, c := range s.subdomains {
		hosts = append(hosts, SubdomainCount{Host: h, Count: c})
	}

	sort.Slice(hosts, func(i, j int) bool {
		return hosts[i].Host < hosts[j].Host
	})
	return hosts
}
