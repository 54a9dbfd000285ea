package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/shopcart/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   backend base URL
//	-s string   session store: sqlite, memory or redis
//	-p string   SQLite session file
//	-r string   Redis URL for the redis store
//	-l string   log level
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-p", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.StringVar(&cfg.StoreKind, "s", cfg.StoreKind, "session store (sqlite|memory|redis)")
	fs.StringVar(&cfg.StorePath, "p", cfg.StorePath, "session database file")
	fs.StringVar(&cfg.RedisURL, "r", cfg.RedisURL, "redis URL")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
