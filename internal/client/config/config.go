package config

// Config holds runtime settings for the shopcart CLI.
type Config struct {
	ServerURL   string
	StoreKind   string
	StorePath   string
	RedisURL    string
	RedisPrefix string
	LogLevel    string
	DateLayout  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.StoreKind = "sqlite"
	c.StorePath = "session.db"
	c.RedisURL = "redis://localhost:6379/0"
	c.RedisPrefix = "shopcart:session:"
	c.LogLevel = "warn"
	c.DateLayout = "1/2/2006"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
