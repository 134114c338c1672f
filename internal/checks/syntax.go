package checks

import (
	"fmt"
	"regexp"
	"strings"

	"seocheck-go-crawler/internal/models"
)

var (
	phpBlockRe = regexp.MustCompile(`(?s)<\?php.*?\?>`)
	entityRe   = regexp.MustCompile(`&[a-zA-Z]+;`)
)

const syntaxPlaceholder = "__SEOCHECK__"

// contextWindow is how many characters around an opening tag are
// inspected for false-positive markers and kept as the snippet.
const contextWindow = 25

// falsePositiveMarkers in the context window disqualify a candidate:
// PHP delimiters, comment markers, shortcode brackets and the &copy;
// entity all confuse the line-based count.
var falsePositiveMarkers = []string{"<?php", "?>", "<!--", "-->", "[", "]", "&copy;"}

type watchedTag struct {
	name  string
	open  *regexp.Regexp
	close *regexp.Regexp
}

var watchedTags = buildWatchedTags("div", "p", "section", "article", "main", "header", "footer", "nav", "aside")

func buildWatchedTags(names ...string) []watchedTag {
	tags := make([]watchedTag, 0, len(names))
	for _, n := range names {
		tags = append(tags, watchedTag{
			name:  n,
			open:  regexp.MustCompile(`<` + n + `[^>]*>`),
			close: regexp.MustCompile(`</` + n + `>`),
		})
	}
	return tags
}

// HTMLSyntax counts opening versus closing occurrences of a fixed set
// of block tags and reports openings left over beyond the paired
// count. This is a line-based regex scan, not a tree balance check;
// the context-window filters keep its false positives down, and the
// snippet always comes from the original (pre-placeholder) text.
func HTMLSyntax(htmlContent string) models.Field {
	processed := entityRe.ReplaceAllString(
		phpBlockRe.ReplaceAllString(htmlContent, syntaxPlaceholder), syntaxPlaceholder)
	lines := strings.Split(processed, "\n")
	originalLines := strings.Split(htmlContent, "\n")

	var warnings []string
	for _, tag := range watchedTags {
		type opening struct {
			line int // 1-based
			col  int
			text string
		}
		var opens []opening
		closes := 0
		for i, line := range lines {
			for _, loc := range tag.open.FindAllStringIndex(line, -1) {
				opens = append(opens, opening{line: i + 1, col: loc[0], text: line[loc[0]:loc[1]]})
			}
			closes += len(tag.close.FindAllString(line, -1))
		}
		if len(opens) <= closes {
			continue
		}

		for idx := closes; idx < len(opens); idx++ {
			op := opens[idx]
			if op.line-1 >= len(originalLines) {
				continue
			}
			orig := originalLines[op.line-1]
			start := op.col - contextWindow
			if start < 0 {
				start = 0
			}
			if start > len(orig) {
				start = len(orig)
			}
			end := op.col + contextWindow
			if end > len(orig) {
				end = len(orig)
			}
			if end < start {
				end = start
			}
			context := orig[start:end]

			if containsAny(context, falsePositiveMarkers) {
				continue
			}
			if strings.Contains(orig, "</"+tag.name+">") {
				continue
			}
			snippet := op.text
			if m := tag.open.FindString(context); m != "" {
				snippet = m
			}
			warnings = append(warnings, fmt.Sprintf("%s tag appears unclosed (line %d): %s", tag.name, op.line, snippet))
		}
	}
	return models.WithIssues(warnings)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
