// Package crawler walks every same-domain page reachable from a seed
// URL and collects one PageReport per distinct normalized URL.
package crawler

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"seocheck-go-crawler/internal/analyzer"
	"seocheck-go-crawler/internal/models"
	"seocheck-go-crawler/internal/urlutil"
)

// ProgressFunc receives the crawl's completion fraction after every
// page, clamped to 1.
type ProgressFunc func(fraction float64)

type Crawler struct {
	analyzer *analyzer.Analyzer
	log      *zap.SugaredLogger
	progress ProgressFunc
}

type Option func(*Crawler)

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Crawler) { c.progress = fn }
}

func New(a *analyzer.Analyzer, log *zap.SugaredLogger, opts ...Option) *Crawler {
	c := &Crawler{analyzer: a, log: log}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run crawls the site rooted at seed until the frontier empties. Pages
// are fetched strictly sequentially and each URL is analyzed at most
// once; pop order is unspecified (set semantics). On context
// cancellation the partial result is returned along with the ctx
// error.
func (c *Crawler) Run(ctx context.Context, seed string) (*models.CrawlResult, error) {
	seedURL, err := url.Parse(seed)
	if err != nil || seedURL.Scheme == "" || seedURL.Host == "" {
		return nil, fmt.Errorf("invalid seed url %q", seed)
	}
	host := seedURL.Host

	visited := make(map[string]struct{})
	frontier := map[string]struct{}{seed: {}}
	result := &models.CrawlResult{}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var current string
		for u := range frontier {
			current = u
			break
		}
		delete(frontier, current)

		normalized := urlutil.Normalize(current)
		if _, seen := visited[normalized]; seen {
			continue
		}
		visited[normalized] = struct{}{}

		c.log.Infow("checking page", "url", normalized)
		res := c.analyzer.Analyze(ctx, current, host)

		if res.Report.Class == models.ClassNotFound {
			result.NotFound = append(result.NotFound, res.Report)
		} else {
			result.Reports = append(result.Reports, res.Report)
		}

		for _, link := range res.Links {
			if _, seen := visited[urlutil.Normalize(link)]; !seen {
				frontier[link] = struct{}{}
			}
		}

		if c.progress != nil {
			fraction := float64(len(visited)) / float64(len(visited)+len(frontier))
			if fraction > 1 {
				fraction = 1
			}
			c.progress(fraction)
		}
	}

	c.log.Infow("crawl finished", "pages", len(result.Reports), "notFound", len(result.NotFound))
	return result, nil
}
