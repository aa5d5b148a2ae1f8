package main

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// cliConfig holds the subset of settings a config file may override,
// layered under whatever flags the user passed explicitly (§6: the core
// itself takes no config file or flags — only external collaborators map
// those onto orchestrator.Options).
type cliConfig struct {
	Workers   int    `yaml:"workers"`
	Threshold int    `yaml:"threshold"`
	CachePath string `yaml:"cachePath"`
	Recursive bool   `yaml:"recursive"`
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		Workers:   runtime.NumCPU(),
		Threshold: 5,
		Recursive: true,
	}
}

// loadCLIConfig reads path as YAML into the defaults. An empty path is not
// an error: it simply means "use the defaults", mirroring the teacher's
// config loader behavior for its own default config file.
func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is an explicit CLI flag
	if err != nil {
		return cliConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cliConfig{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
