// Package analyzer runs the per-page pipeline: fetch, classify, then
// every heuristic check, each isolated so one failing check cannot
// take the rest of the report down.
package analyzer

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"seocheck-go-crawler/internal/checks"
	"seocheck-go-crawler/internal/fetch"
	"seocheck-go-crawler/internal/links"
	"seocheck-go-crawler/internal/models"
	"seocheck-go-crawler/internal/urlutil"
)

type Analyzer struct {
	client *fetch.HTTPClient
	cfg    *checks.KeywordConfig
	log    *zap.SugaredLogger
}

func New(client *fetch.HTTPClient, cfg *checks.KeywordConfig, log *zap.SugaredLogger) *Analyzer {
	if cfg == nil {
		cfg = checks.DefaultKeywordConfig()
	}
	return &Analyzer{client: client, cfg: cfg, log: log}
}

// Result couples one page report with the outbound links discovered on
// that page. Links is empty for 404 and unreachable pages.
type Result struct {
	Report models.PageReport
	Links  []string
}

// Analyze runs the full pipeline for one URL. The report always comes
// back with its URL in normalized form; transport failures and 404s
// produce uniform reports rather than errors so the crawl never stops.
func (a *Analyzer) Analyze(ctx context.Context, rawURL, host string) Result {
	normalized := urlutil.Normalize(rawURL)

	// Draft previews are never analyzed, but the page is still fetched
	// once so its outbound links keep the site graph connected.
	if urlutil.IsPreview(rawURL) {
		res := Result{Report: uniformReport(normalized, 0, models.ClassPreviewSkipped, models.StatusSkipped)}
		if page, err := a.client.Fetch(ctx, rawURL); err == nil {
			if doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body)); err == nil {
				res.Links = links.Extract(rawURL, host, doc)
			}
		}
		return res
	}

	page, err := a.client.Fetch(ctx, rawURL)
	if err != nil {
		a.log.Warnw("fetch failed", "url", normalized, "error", err)
		return Result{Report: uniformReport(normalized, 0, models.ClassConnectionError, models.StatusError)}
	}
	if page.StatusCode == http.StatusNotFound {
		return Result{Report: uniformReport(normalized, http.StatusNotFound, models.ClassNotFound, models.StatusError)}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		a.log.Warnw("parse failed", "url", normalized, "error", err)
		return Result{Report: uniformReport(normalized, page.StatusCode, models.ClassConnectionError, models.StatusError)}
	}

	rep := models.PageReport{
		URL:        normalized,
		StatusCode: page.StatusCode,
		Class:      models.ClassNormal,
		// every field starts as an error marker and is overwritten by
		// its check; a panicking check leaves only its own marker behind
		Title:           models.MetaTag{Check: models.Errored()},
		Description:     models.MetaTag{Check: models.Errored()},
		Headings:        models.Errored(),
		EnglishHeadings: models.Errored(),
		ImageAlt:        models.Errored(),
		HTMLSyntax:      models.Errored(),
	}
	a.runCheck("title", normalized, func() { rep.Title = checks.Title(doc, a.cfg) })
	a.runCheck("description", normalized, func() { rep.Description = checks.Description(doc, a.cfg) })
	a.runCheck("headings", normalized, func() { rep.Headings, rep.EnglishHeadings = checks.Headings(doc) })
	a.runCheck("image-alt", normalized, func() { rep.ImageAlt = checks.ImageAlt(doc, rawURL) })
	a.runCheck("html-syntax", normalized, func() { rep.HTMLSyntax = checks.HTMLSyntax(page.Body) })

	return Result{Report: rep, Links: links.Extract(rawURL, host, doc)}
}

// runCheck isolates one heuristic so a panic on malformed input marks
// only its own field.
func (a *Analyzer) runCheck(name, url string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorw("check failed", "check", name, "url", url, "panic", r)
		}
	}()
	fn()
}

// uniformReport marks every analytic field with the same status; used
// for connection errors, 404s and preview skips.
func uniformReport(url string, code int, class models.Classification, fs models.Status) models.PageReport {
	f := models.Field{Status: fs}
	return models.PageReport{
		URL:             url,
		StatusCode:      code,
		Class:           class,
		Title:           models.MetaTag{Check: f},
		Description:     models.MetaTag{Check: f},
		Headings:        f,
		EnglishHeadings: f,
		ImageAlt:        f,
		HTMLSyntax:      f,
	}
}
