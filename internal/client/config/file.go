package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/shopcart/internal/flagx"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of Config. Empty fields leave the current
// value in place.
type FileConfig struct {
	ServerURL   string `json:"server_url" yaml:"server_url"`
	StoreKind   string `json:"store" yaml:"store"`
	StorePath   string `json:"store_path" yaml:"store_path"`
	RedisURL    string `json:"redis_url" yaml:"redis_url"`
	RedisPrefix string `json:"redis_prefix" yaml:"redis_prefix"`
	LogLevel    string `json:"log_level" yaml:"log_level"`
	DateLayout  string `json:"date_layout" yaml:"date_layout"`
}

// parseFile overlays cfg with the file named by -c/-config. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON. Panics on read or
// decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	overlay(&cfg.ServerURL, fc.ServerURL)
	overlay(&cfg.StoreKind, fc.StoreKind)
	overlay(&cfg.StorePath, fc.StorePath)
	overlay(&cfg.RedisURL, fc.RedisURL)
	overlay(&cfg.RedisPrefix, fc.RedisPrefix)
	overlay(&cfg.LogLevel, fc.LogLevel)
	overlay(&cfg.DateLayout, fc.DateLayout)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
