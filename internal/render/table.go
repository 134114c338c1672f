// Package render prints crawl results as terminal tables, one table
// per check family plus the 404 list.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/rodaine/table"

	"seocheck-go-crawler/internal/models"
)

// Summary writes the tabulated results to w.
func Summary(w io.Writer, result *models.CrawlResult) {
	fmt.Fprintf(w, "checked %d pages", len(result.Reports))
	if len(result.NotFound) > 0 {
		fmt.Fprintf(w, ", %d returned 404", len(result.NotFound))
	}
	fmt.Fprintln(w)

	section(w, "Title / Description")
	meta := table.New("URL", "TITLE", "DESCRIPTION", "STATUS").WithWriter(w)
	for _, r := range result.Reports {
		meta.AddRow(r.URL,
			fmt.Sprintf("%s (%d)", clip(r.Title.Text, 40), r.Title.Length),
			fmt.Sprintf("%s (%d)", clip(r.Description.Text, 40), r.Description.Length),
			"title: "+fieldText(r.Title.Check)+" / description: "+fieldText(r.Description.Check))
	}
	meta.Print()

	section(w, "Heading structure")
	headings := table.New("URL", "ISSUES", "ENGLISH-ONLY HEADINGS").WithWriter(w)
	for _, r := range result.Reports {
		headings.AddRow(r.URL, fieldText(r.Headings), fieldText(r.EnglishHeadings))
	}
	headings.Print()

	section(w, "Image alt attributes")
	images := table.New("URL", "RESULT").WithWriter(w)
	for _, r := range result.Reports {
		images.AddRow(r.URL, fieldText(r.ImageAlt))
	}
	images.Print()

	section(w, "HTML syntax")
	syntax := table.New("URL", "RESULT").WithWriter(w)
	for _, r := range result.Reports {
		syntax.AddRow(r.URL, fieldText(r.HTMLSyntax))
	}
	syntax.Print()

	section(w, "404 pages")
	if len(result.NotFound) == 0 {
		fmt.Fprintln(w, "none found")
		return
	}
	notFound := table.New("URL").WithWriter(w)
	for _, r := range result.NotFound {
		notFound.AddRow(r.URL)
	}
	notFound.Print()
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}

func fieldText(f models.Field) string {
	switch f.Status {
	case models.StatusOK:
		return "OK"
	case models.StatusSkipped:
		return "skipped"
	case models.StatusError:
		return "check failed"
	case models.StatusNoImages:
		return "no images"
	default:
		return strings.Join(f.Issues, "; ")
	}
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
