package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// AppConfig holds the verification runner configuration.
type AppConfig struct {
	Version     string           `yaml:"version"`
	Debug       bool             `yaml:"debug"`
	Headless    bool             `yaml:"headless"`
	TargetURL   string           `yaml:"target-url"`
	OutputDir   string           `yaml:"output-dir"`
	ScenarioDir string           `yaml:"scenario-dir"`
	Scenarios   []string         `yaml:"scenarios"`
	Browser     AppConfigBrowser `yaml:"browser"`
	Report      AppConfigReport  `yaml:"report"`
}

type AppConfigBrowser struct {
	ChromiumPath string   `yaml:"chromium-path"`
	Args         []string `yaml:"args"`
	UserDataDir  string   `yaml:"user-data-dir,omitempty"`
}

// AppConfigReport configures the optional artifact report server.
type AppConfigReport struct {
	Enabled bool   `yaml:"enabled"`
	Port    string `yaml:"port"`
}

// LoadConfig loads configuration from the given YAML file.
func LoadConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config AppConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	if config.TargetURL == "" {
		return nil, fmt.Errorf("target-url is required")
	}
	if config.OutputDir == "" {
		config.OutputDir = "verification"
	}
	if config.ScenarioDir == "" {
		config.ScenarioDir = "verify"
	}
	if config.Report.Enabled && config.Report.Port == "" {
		config.Report.Port = "8081"
	}

	return &config, nil
}
