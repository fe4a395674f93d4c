package commands

import (
	"fmt"
	"os"

	"beerwatch-backend/lib/restyutil"
	"beerwatch-backend/services/pricewatch"
	pricewatchdb "beerwatch-backend/services/pricewatch/db"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var reportAll bool
var reportFromURL bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render price movement across the most recent snapshots.",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		if reportFromURL {
			if config.Snapshot.URL == "" {
				return fmt.Errorf("snapshot.url is not configured")
			}
			client := resty.New()
			restyutil.InstrumentClient(client, nil)
			err := config.Database.RefreshFromURL(client, config.Snapshot.URL)
			if err != nil {
				return fmt.Errorf("refresh snapshot: %w", err)
			}
		}

		database, err := config.Database.OpenDB(pricewatchdb.Schema)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer database.Close()

		observations, err := pricewatch.NewStore(database).QueryAll(cmd.Context())
		if err != nil {
			return err
		}

		matrix := pricewatch.BuildMatrix(observations, config.Report.Window)
		rows := matrix.Flagged()
		if reportAll {
			rows = matrix.Rows
		}
		if len(rows) == 0 {
			fmt.Println("Ei muutoksia olutvalikoimassa")
			return nil
		}
		pricewatch.RenderTable(os.Stdout, matrix, rows)
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportAll, "all", false, "include stable rows, not just flagged ones")
	reportCmd.Flags().BoolVar(&reportFromURL, "from-url", false, "download a fresh store copy from snapshot.url first")
	rootCmd.AddCommand(reportCmd)
}
