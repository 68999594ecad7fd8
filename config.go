package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration file. Every setting in it has an equivalent
// command-line flag, and a flag that is given explicitly takes precedence.
//
//	url: http://localhost:9090/api/v3
//	run: ["^Pet/"]
//	skip: ["inventory"]
//	report_dir: allure-results
//	summary: build/summary.json
//	debug: true
type fileConfig struct {
	URL       string   `yaml:"url"`
	Run       []string `yaml:"run"`
	Skip      []string `yaml:"skip"`
	ReportDir string   `yaml:"report_dir"`
	Summary   string   `yaml:"summary"`
	Debug     bool     `yaml:"debug"`
	DebugAll  bool     `yaml:"debug_all"`
	NoWait    bool     `yaml:"no_wait"`
}

func loadConfigFile(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
