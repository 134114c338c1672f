package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seocheck-go-crawler/internal/analyzer"
	"seocheck-go-crawler/internal/fetch"
	"seocheck-go-crawler/internal/models"
)

// testSite serves a small site: the root links to two internal pages,
// a fragment, an off-domain page, a PDF and a 404.
func testSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	page := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<html><body><a href="/ghost/">never crawled</a></body></html>`))
			return
		}
		page(`<html><head><title>トップ</title></head><body>
			<a href="/about/">会社概要</a>
			<a href="/contact.html">お問い合わせ</a>
			<a href="#section">アンカー</a>
			<a href="https://elsewhere.example/">外部</a>
			<a href="/files/brochure.pdf">PDF</a>
			<a href="/gone/">リンク切れ</a>
		</body></html>`)(w, r)
	})
	mux.HandleFunc("/about/", page(`<html><head><title>会社概要</title></head><body>
		<a href="/">トップ</a>
		<a href="/about">自己リンク</a>
	</body></html>`))
	mux.HandleFunc("/contact.html", page(`<html><head><title>お問い合わせ</title></head><body></body></html>`))
	return httptest.NewServer(mux)
}

func newCrawler(opts ...Option) *Crawler {
	client := fetch.NewHTTPClient(5*time.Second, 0, 1<<20)
	an := analyzer.New(client, nil, zap.NewNop().Sugar())
	return New(an, zap.NewNop().Sugar(), opts...)
}

func reportURLs(reports []models.PageReport) []string {
	urls := make([]string, 0, len(reports))
	for _, r := range reports {
		urls = append(urls, r.URL)
	}
	sort.Strings(urls)
	return urls
}

func TestRunCrawlsWholeSite(t *testing.T) {
	ts := testSite(t)
	defer ts.Close()

	result, err := newCrawler().Run(context.Background(), ts.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		ts.URL + "/",
		ts.URL + "/about/",
		ts.URL + "/contact.html",
	}, reportURLs(result.Reports))

	require.Len(t, result.NotFound, 1)
	assert.Equal(t, ts.URL+"/gone/", result.NotFound[0].URL)
	assert.Equal(t, models.ClassNotFound, result.NotFound[0].Class)

	// the 404 page's outbound link never entered the frontier
	assert.NotContains(t, reportURLs(result.Reports), ts.URL+"/ghost/")
}

func TestRunDedupsEncodedVariants(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body>
			<a href="/%E6%AD%AF%E7%A7%91/">encoded</a>
			<a href="/歯科/">decoded</a>
		</body></html>`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	result, err := newCrawler().Run(context.Background(), ts.URL+"/")
	require.NoError(t, err)

	// one report for the seed plus exactly one for the two spellings
	assert.Len(t, result.Reports, 2)
}

func TestRunRepeatedCrawlIsSetEqual(t *testing.T) {
	ts := testSite(t)
	defer ts.Close()

	first, err := newCrawler().Run(context.Background(), ts.URL+"/")
	require.NoError(t, err)
	second, err := newCrawler().Run(context.Background(), ts.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, reportURLs(first.Reports), reportURLs(second.Reports))
	assert.Equal(t, reportURLs(first.NotFound), reportURLs(second.NotFound))
}

func TestRunProgress(t *testing.T) {
	ts := testSite(t)
	defer ts.Close()

	var fractions []float64
	c := newCrawler(WithProgress(func(f float64) { fractions = append(fractions, f) }))
	_, err := c.Run(context.Background(), ts.URL+"/")
	require.NoError(t, err)

	require.NotEmpty(t, fractions)
	for _, f := range fractions {
		assert.LessOrEqual(t, f, 1.0)
		assert.Greater(t, f, 0.0)
	}
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
}

func TestRunInvalidSeed(t *testing.T) {
	_, err := newCrawler().Run(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestRunContextCancelled(t *testing.T) {
	ts := testSite(t)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := newCrawler().Run(ctx, ts.URL+"/")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Reports)
}
