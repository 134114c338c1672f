package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"seocheck-go-crawler/internal/analyzer"
	"seocheck-go-crawler/internal/checks"
	"seocheck-go-crawler/internal/crawler"
	"seocheck-go-crawler/internal/fetch"
	"seocheck-go-crawler/internal/ioformats"
	"seocheck-go-crawler/internal/render"
	"seocheck-go-crawler/pkg/logger"
)

var (
	output     string
	timeoutSec int
	rps        float64
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seocheck <url>",
		Short: "Crawl a site and run on-page SEO checks",
		Long: `seocheck crawls every same-domain page reachable from the given URL
and checks titles, meta descriptions, heading structure, image alt
text, unclosed HTML tags and broken (404) pages.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&output, "output", "o", "", "also write reports as NDJSON to this file")
	rootCmd.Flags().IntVar(&timeoutSec, "timeout", 10, "per-request timeout in seconds")
	rootCmd.Flags().Float64Var(&rps, "rate", 0, "max requests per second (0 = unpaced)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logger.New(verbose)
	defer func() { _ = log.Sync() }()

	client := fetch.NewHTTPClient(time.Duration(timeoutSec)*time.Second, rps, 5*1024*1024)
	an := analyzer.New(client, checks.DefaultKeywordConfig(), log)
	c := crawler.New(an, log, crawler.WithProgress(func(fraction float64) {
		fmt.Fprintf(os.Stderr, "\rprogress: %3.0f%%", fraction*100)
	}))

	result, err := c.Run(cmd.Context(), args[0])
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	if len(result.Reports) == 0 && len(result.NotFound) == 0 {
		fmt.Println("no crawlable pages found")
		return nil
	}
	render.Summary(os.Stdout, result)

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		if err := ioformats.WriteNDJSON(f, result); err != nil {
			return fmt.Errorf("write ndjson: %w", err)
		}
		log.Infow("wrote ndjson", "path", output)
	}
	return nil
}
