// Package config loads runtime configuration for the shopcart CLI.
//
// Sources, in order of precedence (lowest first):
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given with -c or -config. YAML when the name ends
//     in .yaml/.yml, JSON otherwise.
//  3. Command-line flags.
//
// Flags
//
//	-a string   backend base URL (default http://localhost:8080)
//	-s string   session store: sqlite, memory, redis (default sqlite)
//	-p string   SQLite session file (default session.db)
//	-r string   Redis URL, used with -s redis
//	-l string   log level (default warn)
//
// Example file:
//
//	server_url: http://shop.internal:8080
//	store: redis
//	redis_url: redis://cache:6379/2
//	redis_prefix: "shopcart:alice:"
package config
