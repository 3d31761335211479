package scraper

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Parser extracts visible text and anchors from HTML content.
//
// Design decision: We use golang.org/x/net/html rather than regex because
// it correctly handles the malformed HTML that is routine on university
// sites and gives us a proper tree to walk in a single pass.
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving
	// relative hrefs.
	baseURL *url.URL
}

// ParseResult contains everything a single parsing pass extracts from a
// page. Text and AnchorCount feed the content filter; Links feed the
// scope classifier.
type ParseResult struct {
	// Text is the visible text of the page with element boundaries
	// collapsed to single spaces.
	Text string

	// Links contains the resolved absolute URLs of all usable hrefs,
	// fragments included, in tree order. Malformed markup can make the
	// tree builder reconstruct an anchor, so the same href may appear
	// more than once; link selection deduplicates later.
	Links []string

	// AnchorCount is the number of anchor elements in the tree carrying
	// an href attribute, whether or not the target survived resolution
	// and including reconstructed anchors. Link density is computed
	// against this, not against len(Links).
	AnchorCount int
}

// NewParser creates a parser that resolves relative links against baseURL.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse walks the HTML tree once, collecting visible text and anchors.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Links: make([]string, 0),
	}

	var text strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			// Script and style bodies are code, not prose; counting
			// them as words would inflate every page past the
			// low-information bar.
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			case "a":
				if _, ok := lookupAttr(n, "href"); ok {
					result.AnchorCount++
				}
				if href := getAttr(n, "href"); href != "" {
					if resolved := p.resolveURL(href); resolved != "" {
						result.Links = append(result.Links, resolved)
					}
				}
			}
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	result.Text = text.String()
	return result, nil
}

// resolveURL resolves a relative href against the base URL. Non-navigational
// schemes and bare fragment links resolve to the empty string.
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" ||
		href == "#" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return p.baseURL.ResolveReference(u).String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

// lookupAttr retrieves an attribute value and reports whether the attribute
// is present at all. An empty href still counts as an anchor.
func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
