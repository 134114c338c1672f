// Package links extracts the crawlable same-domain outbound links of a
// fetched page.
package links

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seocheck-go-crawler/internal/urlutil"
)

// Extract returns the outbound links of doc, resolved against base and
// restricted to host. Fragment links, PDFs, preview URLs and
// index.html duplicates are dropped; survivors get their trailing
// slash normalized. The result is deduplicated in document order.
func Extract(base, host string, doc *goquery.Document) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	doc.Find("a, frame, iframe").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			href = strings.TrimSpace(s.AttrOr("src", ""))
		}
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := baseURL.ResolveReference(ref)
		if strings.HasSuffix(strings.ToLower(abs.Path), "index.html") {
			return
		}
		absStr := abs.String()
		if abs.Host != host ||
			urlutil.IsAnchor(absStr) ||
			strings.HasSuffix(strings.ToLower(absStr), ".pdf") ||
			urlutil.IsPreview(absStr) {
			return
		}
		trimmed := strings.TrimRight(absStr, "/")
		if !strings.HasSuffix(strings.ToLower(trimmed), ".html") {
			trimmed += "/"
		}
		if _, dup := seen[trimmed]; dup {
			return
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	})
	return out
}
