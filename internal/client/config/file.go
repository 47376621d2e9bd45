package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/socialfeed/internal/flagx"
	"github.com/dmitrijs2005/socialfeed/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for unmarshalling config files.
type FileConfig struct {
	APIBaseURL     string         `json:"api_base_url" yaml:"api_base_url"`
	StatePath      string         `json:"state_path" yaml:"state_path"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// parseFile overlays Config with the non-empty values of the file named by
// -c/-config. It panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFile()
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

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.StatePath != "" {
		cfg.StatePath = fc.StatePath
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}
