package client

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the practice client configuration.
type Config struct {
	Server ServerConnection `hcl:"server,block"`
	UI     UISettings       `hcl:"ui,block"`
}

// ServerConnection contains server connection settings.
type ServerConnection struct {
	URL            string `hcl:"url,optional"`
	RequestTimeout int    `hcl:"request_timeout,optional"`
}

// UISettings contains user interface settings.
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// DefaultConfig returns default client configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConnection{
			URL:            "http://localhost:8080",
			RequestTimeout: 10,
		},
		UI: UISettings{
			LogLevel: "warn",
			LogFile:  "rangedrill.log",
		},
	}
}

// LoadConfig loads client configuration from an HCL file. A missing
// file yields pure defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.URL == "" {
		config.Server.URL = defaults.Server.URL
	}
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = defaults.Server.RequestTimeout
	}
	if config.UI.LogLevel == "" {
		config.UI.LogLevel = defaults.UI.LogLevel
	}
	if config.UI.LogFile == "" {
		config.UI.LogFile = defaults.UI.LogFile
	}

	return &config, nil
}
