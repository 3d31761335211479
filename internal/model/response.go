package model

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
)

// Response is the fetched-page shape the host crawler hands to the scraper.
// The scraper never fetches; everything it knows about a page is in here.
//
// Design decision: we keep this deliberately small. The host runtime carries
// headers, timing, and error details, but the scope layer only ever inspects
// the status code and the raw body, so only those cross the boundary.
type Response struct {
	// Status is the HTTP response status code.
	Status int `json:"status"`

	// URL is the final URL of the page after any redirects.
	URL string `json:"url"`

	// Raw is the raw response body. Nil when the fetch failed or the
	// server returned no content.
	Raw []byte `json:"-"`
}

// Ok reports whether the response carries trustworthy content: a 200 status
// and a non-empty body. Everything else contributes no links and no
// analytics.
func (r *Response) Ok() bool {
	return r != nil && r.Status == http.StatusOK && len(r.Raw) > 0
}

// HasContent reports whether the response carries any body at all,
// regardless of status. Error pages sometimes have bodies worth logging
// even though Ok is false.
func (r *Response) HasContent() bool {
	return r != nil && len(r.Raw) > 0
}

// Hash returns the SHA-256 hex digest of the raw content, or the empty
// string when there is no content. Used by the page log for change
// detection across runs.
func (r *Response) Hash() string {
	if r == nil || len(r.Raw) == 0 {
		return ""
	}
	sum := sha256.Sum256(r.Raw)
	return hex.EncodeToString(sum[:])
}
