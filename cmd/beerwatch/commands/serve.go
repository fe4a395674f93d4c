package commands

import (
	"fmt"
	"net/http"

	"beerwatch-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve-snapshot",
	Short: "Serve the snapshot database file over HTTP for dashboard consumers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		if config.Snapshot.Port == 0 {
			return fmt.Errorf("snapshot.port is not configured")
		}

		mux := http.NewServeMux()
		mux.HandleFunc("/beerprices.db", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, config.Database.File)
		})
		go serviceutil.StartHttpServer(config.Snapshot.Port, mux)

		<-cmd.Context().Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
