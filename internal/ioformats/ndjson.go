// Package ioformats serializes crawl results for machine consumers.
package ioformats

import (
	"encoding/json"
	"io"

	"seocheck-go-crawler/internal/models"
)

// WriteNDJSON writes every report as one JSON object per line, normal
// reports first, then the 404 collection (distinguishable by class).
func WriteNDJSON(w io.Writer, result *models.CrawlResult) error {
	enc := json.NewEncoder(w)
	for i := range result.Reports {
		if err := enc.Encode(&result.Reports[i]); err != nil {
			return err
		}
	}
	for i := range result.NotFound {
		if err := enc.Encode(&result.NotFound[i]); err != nil {
			return err
		}
	}
	return nil
}
