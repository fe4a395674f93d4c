package commands

import (
	"context"
	"fmt"
	"os"

	"beerwatch-backend/lib/configutil"
	configsqlite "beerwatch-backend/lib/configutil/sqlite"
	"beerwatch-backend/lib/scrapers/skaupat"
	"beerwatch-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

type Config struct {
	Database  configsqlite.Struct `json:"database"`
	Catalogue struct {
		URL string `json:"url"`
	} `json:"catalogue"`
	API    skaupat.APIConfig `json:"api"`
	Report struct {
		// number of most recent snapshot dates in the change window
		Window int `json:"window"`
	} `json:"report"`
	Snapshot struct {
		Port int    `json:"port"`
		URL  string `json:"url"`
	} `json:"snapshot"`
}

var configPath string
var debug bool

func loadConfig() (Config, error) {
	config, err := configutil.ReadConfig[Config](configPath)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", configPath, err)
	}
	return config, nil
}

var rootCmd = &cobra.Command{
	Use:   "beerwatch",
	Short: "beerwatch crawls a storefront's beer catalogue into dated price snapshots and reports movement.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			telemetry.InitSlog(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
