package commands

import (
	"fmt"

	"beerwatch-backend/lib/scrapers/skaupat"
	"beerwatch-backend/services/pricewatch"
	pricewatchdb "beerwatch-backend/services/pricewatch/db"

	"github.com/spf13/cobra"
)

var crawlSource string
var crawlDate string

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Scrape the catalogue and append today's price snapshot to the store.",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := config.Database.OpenDB(pricewatchdb.Schema)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer database.Close()

		opts := pricewatch.CrawlerOptions{Date: crawlDate}
		var source pricewatch.Source
		switch crawlSource {
		case "html":
			source, err = skaupat.NewCatalogueSource(config.Catalogue.URL)
			if err != nil {
				return err
			}
			// markup pagination serves the last page for any larger page
			// number, duplicates are the only end-of-data signal left
			opts.StopOnStalePage = true
		case "api":
			source = skaupat.NewAPISource(config.API)
		default:
			return fmt.Errorf("unknown source %q, expected html or api", crawlSource)
		}

		result, err := pricewatch.
			NewCrawler(pricewatch.NewStore(database), source, opts).
			Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf(
			"%s: %d pages, %d new, %d duplicate, %d skipped (%s)\n",
			result.Date,
			result.Pages,
			result.Inserted,
			result.Duplicates,
			result.Skipped,
			result.Reason,
		)
		return nil
	},
}

func init() {
	crawlCmd.Flags().StringVar(&crawlSource, "source", "html", "upstream variant to crawl: html or api")
	crawlCmd.Flags().StringVar(&crawlDate, "date", "", "override the snapshot date (YYYY-MM-DD)")
	rootCmd.AddCommand(crawlCmd)
}
