// Package content decides whether a fetched page is worth analyzing at all.
//
// The Filter tokenizes the visible text of a page, drops English stop words,
// and rejects pages that are oversized, carry too few informative words, or
// whose anchor-to-word ratio marks them as navigation or index pages.
// Rejections are reported as explicit reasons rather than exceptions, so the
// extractor and the tests can inspect why a page was dropped.
package content
