package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seocheck-go-crawler/internal/models"
)

func TestImageAltSkipsBlogAndCategory(t *testing.T) {
	d := doc(t, `<img src="a.png">`)
	assert.Equal(t, models.StatusSkipped, ImageAlt(d, "https://x.com/blog/2024/post/").Status)
	assert.Equal(t, models.StatusSkipped, ImageAlt(d, "https://x.com/category/news/").Status)
}

func TestImageAltNoImages(t *testing.T) {
	got := ImageAlt(doc(t, `<p>画像なし</p>`), "https://x.com/p/")
	assert.Equal(t, models.StatusNoImages, got.Status)
}

func TestImageAltAllTagged(t *testing.T) {
	got := ImageAlt(doc(t, `<img src="/a.png" alt="院内の様子">`), "https://x.com/p/")
	assert.Equal(t, models.StatusOK, got.Status)
}

func TestImageAltResolution(t *testing.T) {
	d := doc(t, `<img src="/root.png"><img src="../up.png"><img src="bare.png">`)
	got := ImageAlt(d, "https://x.com/p/")
	require.Equal(t, models.StatusIssues, got.Status)
	assert.Equal(t, []string{
		"1: https://x.com/root.png",
		"2: https://x.com/up.png",
		"3: https://x.com/bare.png",
	}, got.Issues)
}

func TestImageAltAbsoluteSourceKept(t *testing.T) {
	got := ImageAlt(doc(t, `<img src="https://cdn.x.com/pic.jpg">`), "https://x.com/p/")
	require.Equal(t, models.StatusIssues, got.Status)
	assert.Equal(t, []string{"1: https://cdn.x.com/pic.jpg"}, got.Issues)
}

func TestImageAltSrcsetFallback(t *testing.T) {
	got := ImageAlt(doc(t, `<img srcset="/small.png 480w, /big.png 1080w">`), "https://x.com/p/")
	require.Equal(t, models.StatusIssues, got.Status)
	assert.Equal(t, []string{"1: https://x.com/small.png"}, got.Issues)
}

func TestImageAltExclusions(t *testing.T) {
	d := doc(t, `<img src="data:image/png;base64,AAAA"><img src="/doc.pdf"><img src="/doc.PDF">`)
	got := ImageAlt(d, "https://x.com/p/")
	// nothing qualified, so the page counts as having no images
	assert.Equal(t, models.StatusNoImages, got.Status)
}

func TestImageAltEmptyAltCountsAsMissing(t *testing.T) {
	got := ImageAlt(doc(t, `<img src="/a.png" alt="  ">`), "https://x.com/p/")
	require.Equal(t, models.StatusIssues, got.Status)
	assert.Equal(t, []string{"1: https://x.com/a.png"}, got.Issues)
}

func TestImageAltDedups(t *testing.T) {
	got := ImageAlt(doc(t, `<img src="/a.png"><img src="/a.png">`), "https://x.com/p/")
	require.Equal(t, models.StatusIssues, got.Status)
	assert.Equal(t, []string{"1: https://x.com/a.png"}, got.Issues)
}
