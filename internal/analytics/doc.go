// Package analytics maintains the running corpus statistics of a crawl:
// unique accepted pages, per-page and global word counts, the longest page,
// and the per-subdomain distribution.
//
// The Store is the single in-process owner of this state. It is rehydrated
// from a JSON snapshot at start-up, mutated as pages are accepted, and
// checkpointed by full-snapshot overwrite. There is no multi-writer
// coordination; persistence is checkpointing, not synchronization.
package analytics
