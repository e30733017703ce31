package storage

import (
	_ "github.com/mattn/go-sqlite3"

	"visitor-reception/internal/config"
)

type SQLiteProvider struct {
	SQLProvider
}

func NewSQLiteProvider(config *config.Storage) (*SQLiteProvider, error) {
	sql, err := NewSQLProvider(config, "sqlite3", config.SQLite.Path)
	if err != nil {
		return nil, err
	}
	return &SQLiteProvider{SQLProvider: *sql}, nil
}
