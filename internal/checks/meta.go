// Package checks holds the five on-page heuristics. Every check is a
// pure function of the parsed page (or its raw markup) and degrades to
// a documented default on missing input instead of failing.
package checks

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"seocheck-go-crawler/internal/models"
)

const (
	maxTitleRunes       = 50
	maxDescriptionRunes = 140

	// NoTitle is reported when the page has no <title> element.
	NoTitle = "no title"
)

// Title extracts the page title and checks its length and keyword
// repetition.
func Title(doc *goquery.Document, cfg *KeywordConfig) models.MetaTag {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = NoTitle
	}
	return checkMetaText(title, maxTitleRunes, cfg)
}

// Description extracts the meta description, falling back to
// og:description when the description tag is absent or empty, and
// checks it the same way as Title. An absent description comes back
// empty with an ok status; emptiness is not itself an issue here.
func Description(doc *goquery.Document, cfg *KeywordConfig) models.MetaTag {
	var desc string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if name, _ := s.Attr("name"); strings.EqualFold(name, "description") {
			desc = strings.TrimSpace(s.AttrOr("content", ""))
			return desc == "" // keep looking if the tag was empty
		}
		return true
	})
	if desc == "" {
		desc = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}
	return checkMetaText(desc, maxDescriptionRunes, cfg)
}

func checkMetaText(text string, maxRunes int, cfg *KeywordConfig) models.MetaTag {
	length := utf8.RuneCountInString(text)
	var issues []string
	if length > maxRunes {
		issues = append(issues, fmt.Sprintf("too long: %d characters (max %d)", length, maxRunes))
	}
	issues = append(issues, Keywords(text, cfg)...)
	return models.MetaTag{Text: text, Length: length, Check: models.WithIssues(issues)}
}
