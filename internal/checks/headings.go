package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seocheck-go-crawler/internal/models"
)

var (
	// Hiragana, Katakana and CJK Unified Ideographs
	japaneseRe  = regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}]`)
	asciiTextRe = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.,!?]*$`)
)

// Headings walks h1..h6 in document order and flags hierarchy
// violations: a first heading that is not h1, and forward jumps of
// more than one level (decreasing levels never flag). Issues come back
// numbered in emission order. The second result lists every non-empty
// heading containing no Japanese script and only ASCII-ish characters,
// formatted "{tag}: {text}".
func Headings(doc *goquery.Document) (issues, englishOnly models.Field) {
	var found, english []string
	prev := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(i int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		level := int(name[1] - '0')
		text := strings.TrimSpace(s.Text())

		if prev > 0 {
			if level > prev && level-prev > 1 {
				found = append(found, fmt.Sprintf("jumps from h%d to h%d (%s)", prev, level, text))
			}
		} else if i == 0 && level != 1 {
			found = append(found, fmt.Sprintf("first heading is h%d, not h1 (%s)", level, text))
		}

		if text != "" && !japaneseRe.MatchString(text) && asciiTextRe.MatchString(text) {
			english = append(english, fmt.Sprintf("%s: %s", name, text))
		}
		prev = level
	})

	numbered := make([]string, 0, len(found))
	for i, issue := range found {
		numbered = append(numbered, fmt.Sprintf("%d: %s", i+1, issue))
	}
	return models.WithIssues(numbered), models.WithIssues(english)
}
