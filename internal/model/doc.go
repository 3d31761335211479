// Package model defines the data structures shared across scopecrawl.
// The central type is Response, the fetched-page shape handed to the scraper
// by the host crawler runtime.
package model
