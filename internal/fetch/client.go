// Package fetch performs the blocking page GETs the crawl driver
// depends on and hands back bodies decoded to UTF-8.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 10 * time.Second

// userAgent is a realistic desktop browser signature; some CMS hosts
// serve bots a stripped page.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Page is one fetched document with its body decoded to UTF-8.
type Page struct {
	StatusCode int
	Body       string
}

// HTTPClient fetches pages for analysis. A zero requestsPerSecond
// disables pacing, which is the default crawl behavior.
type HTTPClient struct {
	client  *http.Client
	limiter *rate.Limiter
	sizeCap int64
}

func NewHTTPClient(timeout time.Duration, requestsPerSecond float64, sizeCap int64) *HTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		limiter: limiter,
		sizeCap: sizeCap,
	}
}

// Fetch GETs rawURL and decodes the response body. The declared
// charset is honored unless it is missing or the generic Latin-1
// default, in which case the encoding is detected from the content.
// Any transport failure, including timeout, comes back as an error;
// non-2xx statuses do not (the caller classifies them).
func (h *HTTPClient) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.sizeCap))
	if err != nil {
		return nil, err
	}

	decoded, err := decodeBody(data, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	return &Page{StatusCode: resp.StatusCode, Body: decoded}, nil
}

func decodeBody(data []byte, contentType string) (string, error) {
	declared := ""
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		declared = strings.ToLower(params["charset"])
	}
	if declared == "" || declared == "iso-8859-1" || declared == "latin-1" {
		// the generic default is almost never the real encoding; sniff instead
		contentType = ""
	}
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return "", err
		}
		decoded = data
	}
	return string(decoded), nil
}
