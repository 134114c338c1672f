package links

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractFilters(t *testing.T) {
	doc := parse(t, `<html><body>
		<a href="/about">About</a>
		<a href="/contact.html">Contact</a>
		<a href="#section">Anchor</a>
		<a href="https://other.com/page">Off-domain</a>
		<a href="/files/report.pdf">PDF</a>
		<a href="/index.html">Root duplicate</a>
		<a href="/?preview=true&p=3">Draft preview</a>
	</body></html>`)

	got := Extract("https://x.com/", "x.com", doc)
	assert.ElementsMatch(t, []string{
		"https://x.com/about/",
		"https://x.com/contact.html",
	}, got)
}

func TestExtractRelativeResolution(t *testing.T) {
	doc := parse(t, `<a href="sub/page">rel</a><a href="../up">up</a>`)
	got := Extract("https://x.com/dir/inner/", "x.com", doc)
	assert.ElementsMatch(t, []string{
		"https://x.com/dir/inner/sub/page/",
		"https://x.com/dir/up/",
	}, got)
}

func TestExtractFrames(t *testing.T) {
	doc := parse(t, `<frameset>
		<frame src="/menu">
		<iframe src="/embedded.html"></iframe>
	</frameset>`)
	got := Extract("https://x.com/", "x.com", doc)
	assert.ElementsMatch(t, []string{
		"https://x.com/menu/",
		"https://x.com/embedded.html",
	}, got)
}

func TestExtractDedupsSlashVariants(t *testing.T) {
	doc := parse(t, `<a href="/about">a</a><a href="/about/">b</a>`)
	got := Extract("https://x.com/", "x.com", doc)
	assert.Equal(t, []string{"https://x.com/about/"}, got)
}

func TestExtractEmptyAndInvalid(t *testing.T) {
	doc := parse(t, `<a>no href</a><a href="">empty</a>`)
	assert.Empty(t, Extract("https://x.com/", "x.com", doc))
	assert.Nil(t, Extract("://bad", "x.com", doc))
}
