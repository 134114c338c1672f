// Package urlutil canonicalizes URLs so that equivalent spellings of
// the same page collapse to one frontier entry and one report.
package urlutil

import (
	"net/url"
	"strings"
)

// Normalize returns the canonical form of raw: percent-decoded, with a
// trailing index.html folded into its directory, and exactly one
// trailing slash unless the path ends in .html. Normalize is
// idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}
	if strings.HasSuffix(strings.ToLower(decoded), "index.html") {
		// the preceding slash, if any, stays: .../foo/index.html -> .../foo/
		decoded = decoded[:len(decoded)-len("index.html")]
	}
	if strings.HasSuffix(strings.ToLower(decoded), ".html") {
		return decoded
	}
	if !strings.HasSuffix(decoded, "/") {
		return decoded + "/"
	}
	return decoded
}

// IsAnchor reports whether the URL carries a fragment.
func IsAnchor(raw string) bool {
	return strings.Contains(raw, "#")
}

// previewParams are the WordPress draft-preview query keys.
var previewParams = []string{"preview", "preview_id", "preview_nonce", "_thumbnail_id"}

// IsPreview reports whether the URL carries CMS draft-preview query
// parameters. Preview pages get a skipped report and are never
// analyzed.
func IsPreview(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	q := u.Query()
	for _, p := range previewParams {
		if _, ok := q[p]; ok {
			return true
		}
	}
	return false
}

// SameHost reports whether raw parses to the given host.
func SameHost(raw, host string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Host == host
}
