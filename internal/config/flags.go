package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/accountstore/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-s string     storage backend: postgres, mongo, sqlite
//	-d string     PostgreSQL DSN
//	-m string     MongoDB URI
//	-n string     MongoDB database name
//	-f string     SQLite file path
//	-t duration   per-operation timeout (e.g. "5s")
//	-l string     log level
//	-o string     log format: text or json
//
// Arguments are filtered first so -c/-config does not trip the parser.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-s", "-d", "-m", "-n", "-f", "-t", "-l", "-o"})

	fs := flag.NewFlagSet("accountctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.Storage, "s", config.Storage, "storage backend (postgres, mongo, sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "MongoDB database name")
	fs.StringVar(&config.SQLitePath, "f", config.SQLitePath, "SQLite file path")
	fs.DurationVar(&config.OperationTimeout, "t", config.OperationTimeout, "per-operation timeout")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "o", config.LogFormat, "log format (text, json)")

	return fs.Parse(args)
}
