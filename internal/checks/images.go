package checks

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seocheck-go-crawler/internal/models"
)

// ImageAlt audits every qualifying <img> for alt text. Blog and
// category pages are skipped wholesale; data URLs and PDF sources
// never qualify. Outcomes: skipped, no-images, ok, or a numbered list
// of absolute image URLs missing alt text (deduplicated, in document
// order).
func ImageAlt(doc *goquery.Document, pageURL string) models.Field {
	if strings.Contains(pageURL, "/blog/") || strings.Contains(pageURL, "/category/") {
		return models.Skipped()
	}

	origin := originOf(pageURL)
	total := 0
	seen := make(map[string]struct{})
	var missing []string

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			if srcset := s.AttrOr("srcset", ""); srcset != "" {
				first := strings.TrimSpace(strings.Split(srcset, ",")[0])
				if fields := strings.Fields(first); len(fields) > 0 {
					src = fields[0]
				}
			}
		}
		if src == "" || strings.HasPrefix(src, "data:") || strings.HasSuffix(strings.ToLower(src), ".pdf") {
			return
		}
		total++
		if strings.TrimSpace(s.AttrOr("alt", "")) != "" {
			return
		}
		full := resolveImageSrc(origin, src)
		if _, dup := seen[full]; dup {
			return
		}
		seen[full] = struct{}{}
		missing = append(missing, full)
	})

	if total == 0 {
		return models.Field{Status: models.StatusNoImages}
	}
	numbered := make([]string, 0, len(missing))
	for i, u := range missing {
		numbered = append(numbered, fmt.Sprintf("%d: %s", i+1, u))
	}
	return models.WithIssues(numbered)
}

// originOf returns scheme://host with no trailing slash.
func originOf(pageURL string) string {
	parts := strings.SplitN(pageURL, "/", 4)
	if len(parts) < 3 {
		return strings.TrimSuffix(pageURL, "/")
	}
	return strings.Join(parts[:3], "/")
}

// resolveImageSrc resolves src against the page origin, not the page
// directory: root-relative appends to the origin, ../-relative drops
// its one leading step, bare-relative gets a slash.
func resolveImageSrc(origin, src string) string {
	switch {
	case strings.HasPrefix(src, "/"):
		return origin + src
	case strings.HasPrefix(src, "../"):
		parts := strings.Split(src, "/")
		return origin + "/" + strings.Join(parts[1:], "/")
	case !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://"):
		return origin + "/" + src
	default:
		return src
	}
}
