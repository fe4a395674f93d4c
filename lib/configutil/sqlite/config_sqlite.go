package configsqlite

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	_ "modernc.org/sqlite"
)

type Struct struct {
	File string `json:"file"`
}

// OpenDB opens the sqlite database at the configured path, creating the
// file if it does not exist yet, and applies `schema` idempotently.
func (config Struct) OpenDB(schema string) (*sql.DB, error) {
	if config.File == "" {
		return nil, fmt.Errorf("a path was not specified")
	}

	_, statErr := os.Stat(config.File)
	if os.IsNotExist(statErr) {
		f, err := os.Create(config.File)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	db, err := sql.Open("sqlite", config.File)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return nil, err
	}

	return db, nil
}

// RefreshFromURL replaces the configured database file with a copy pulled
// over HTTP. any existing file is kept around under a timestamped name so a
// bad download never destroys the only local copy.
func (config Struct) RefreshFromURL(client *resty.Client, url string) error {
	if config.File == "" {
		return fmt.Errorf("a path was not specified")
	}

	res, err := client.R().Get(url)
	if err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("download %s: status %s", url, res.Status())
	}

	_, statErr := os.Stat(config.File)
	if statErr == nil {
		backup := fmt.Sprintf(
			"%s.%s.bak",
			config.File,
			time.Now().Format("20060102_150405"),
		)
		err = os.Rename(config.File, backup)
		if err != nil {
			return err
		}
	}

	return os.WriteFile(config.File, res.Body(), 0o644)
}
