// Package config loads .xclogparser.yaml and merges it with CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CliFlags holds the values of command-line flags, with Set markers so
// an explicit flag can override the config file.
type CliFlags struct {
	Reporter    string
	Output      string
	Theme       string
	MachineName string
	DerivedData string
	Redacted    bool
	NoColor     bool

	RedactedSet bool
	NoColorSet  bool
}

// AppConfig represents the application's configuration from
// .xclogparser.yaml.
type AppConfig struct {
	Reporter    string `yaml:"reporter"`
	Theme       string `yaml:"theme"`
	MachineName string `yaml:"machine_name"`
	DerivedData string `yaml:"derived_data"`
	Redacted    bool   `yaml:"redacted"`
	NoColor     bool   `yaml:"no_color"`
	Debug       bool   `yaml:"debug"`
}

const (
	DefaultReporter = "json"
	DefaultTheme    = "default"

	configFileName = ".xclogparser.yaml"
)

// LoadConfig loads .xclogparser.yaml from the working directory or the
// user config dir. Missing or broken files fall back to defaults with a
// warning, never an error.
func LoadConfig() *AppConfig {
	appCfg := &AppConfig{
		Reporter: DefaultReporter,
		Theme:    DefaultTheme,
	}

	configPath := getConfigPath()
	if configPath == "" {
		return appCfg
	}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file %s: %v. Using defaults.\n", configPath, err)
		}
		return appCfg
	}

	var fileCfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &fileCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error unmarshalling config file %s: %v. Using defaults.\n", configPath, err)
		return appCfg
	}

	if fileCfg.Reporter != "" {
		appCfg.Reporter = fileCfg.Reporter
	}
	if fileCfg.Theme != "" {
		appCfg.Theme = fileCfg.Theme
	}
	appCfg.MachineName = fileCfg.MachineName
	appCfg.DerivedData = fileCfg.DerivedData
	appCfg.Redacted = fileCfg.Redacted
	appCfg.NoColor = fileCfg.NoColor
	appCfg.Debug = fileCfg.Debug

	if appCfg.Debug || os.Getenv("XCLOGPARSER_DEBUG") != "" {
		fmt.Fprintf(os.Stderr, "[DEBUG LoadConfig] Loaded config from %s. Reporter: %s.\n", configPath, appCfg.Reporter)
	}
	return appCfg
}

// getConfigPath checks the local directory first, then the XDG user
// config dir.
func getConfigPath() string {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "xclogparser", configFileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}

// MergeWithFlags applies environment and CLI flag overrides on top of
// the loaded config. Precedence is flags, then environment, then file.
func MergeWithFlags(appCfg *AppConfig, cliFlags CliFlags) *AppConfig {
	merged := *appCfg

	// Per the NO_COLOR convention, any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		merged.NoColor = true
	}

	if cliFlags.Reporter != "" {
		merged.Reporter = cliFlags.Reporter
	}
	if cliFlags.Theme != "" {
		merged.Theme = cliFlags.Theme
	}
	if cliFlags.MachineName != "" {
		merged.MachineName = cliFlags.MachineName
	}
	if cliFlags.DerivedData != "" {
		merged.DerivedData = cliFlags.DerivedData
	}
	if cliFlags.RedactedSet {
		merged.Redacted = cliFlags.Redacted
	}
	if cliFlags.NoColorSet {
		merged.NoColor = cliFlags.NoColor
	}

	if merged.NoColor {
		merged.Theme = "mono"
	}
	return &merged
}
