package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/accountstore/internal/flagx"
	"github.com/dmitrijs2005/accountstore/internal/timex"
)

// JSONConfig is the on-disk form of Config. Absent fields keep the value
// already in Config.
type JSONConfig struct {
	Storage          *string         `json:"storage"`
	DatabaseDSN      *string         `json:"database_dsn"`
	MongoURI         *string         `json:"mongo_uri"`
	MongoDatabase    *string         `json:"mongo_database"`
	SQLitePath       *string         `json:"sqlite_path"`
	OperationTimeout *timex.Duration `json:"operation_timeout"`
	LogLevel         *string         `json:"log_level"`
	LogFormat        *string         `json:"log_format"`
}

// parseJSON overlays the file given with -c or -config, if any.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.Storage, c.Storage)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.SQLitePath, c.SQLitePath)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	if c.OperationTimeout != nil {
		config.OperationTimeout = c.OperationTimeout.Duration
	}

	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
