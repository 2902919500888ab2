package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// CliFlags holds the values of command-line flags, with companion booleans
// recording which the user set explicitly.
type CliFlags struct {
	Culture string
	NoColor bool
	Debug   bool

	CultureSet bool
	NoColorSet bool
	DebugSet   bool
}

// AppConfig represents the application's overall configuration from
// .spanfmt.yaml.
type AppConfig struct {
	Culture      string            `yaml:"culture,omitempty"`
	CultureFiles []string          `yaml:"culture_files,omitempty"`
	Patterns     map[string]string `yaml:"patterns,omitempty"`
	NoColor      bool              `yaml:"no_color"`
	Debug        bool              `yaml:"debug"`
}

// LoadConfig loads the .spanfmt.yaml configuration, falling back to defaults
// when no file is found or a file cannot be read.
func LoadConfig() *AppConfig {
	appCfg := &AppConfig{}

	initialDebug := os.Getenv("SPANFMT_DEBUG") != ""

	configPath := getConfigPath()
	if configPath == "" {
		if initialDebug {
			fmt.Fprintln(os.Stderr, "[DEBUG LoadConfig] No .spanfmt.yaml found, using defaults only.")
		}
		return appCfg
	}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file %s: %v. Using defaults.\n", configPath, err)
		} else if initialDebug {
			fmt.Fprintf(os.Stderr, "[DEBUG LoadConfig] Config file %s not found. Using defaults.\n", configPath)
		}
		return appCfg
	}

	if err := yaml.Unmarshal(yamlFile, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error unmarshalling config file %s: %v. Using defaults.\n", configPath, err)
		return &AppConfig{}
	}

	if appCfg.Debug || initialDebug {
		fmt.Fprintf(os.Stderr, "[DEBUG LoadConfig] Loaded config from %s. Culture: %q, %d culture file(s).\n",
			configPath, appCfg.Culture, len(appCfg.CultureFiles))
	}
	return appCfg
}

// getConfigPath tries to find the .spanfmt.yaml configuration file.
// It checks the local directory first, then XDG UserConfigDir (if valid).
func getConfigPath() string {
	localPath := ".spanfmt.yaml"
	if _, err := os.Stat(localPath); err == nil {
		if os.Getenv("SPANFMT_DEBUG") != "" {
			absLocalPath, _ := filepath.Abs(localPath)
			fmt.Fprintf(os.Stderr, "[DEBUG getConfigPath] Using local config file: %s\n", absLocalPath)
		}
		return localPath
	}

	configHome, err := os.UserConfigDir()
	if err == nil && configHome != "" && configHome != "/" {
		xdgPath := filepath.Join(configHome, "spanfmt", ".spanfmt.yaml")
		if _, errStat := os.Stat(xdgPath); errStat == nil {
			if os.Getenv("SPANFMT_DEBUG") != "" {
				fmt.Fprintf(os.Stderr, "[DEBUG getConfigPath] Using XDG config file: %s\n", xdgPath)
			}
			return xdgPath
		}
		if os.Getenv("SPANFMT_DEBUG") != "" {
			fmt.Fprintf(os.Stderr, "[DEBUG getConfigPath] XDG config file not found at: %s\n", xdgPath)
		}
	} else if os.Getenv("SPANFMT_DEBUG") != "" {
		fmt.Fprintf(os.Stderr, "[DEBUG getConfigPath] UserConfigDir error or unsuitable path. Error: %v, Path: '%s'\n", err, configHome)
	}

	return ""
}

// envBool reads the named environment variables in order and returns the
// first parseable boolean, or fallback when none is set.
func envBool(fallback bool, names ...string) bool {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			if bVal, err := strconv.ParseBool(v); err == nil {
				return bVal
			}
			// NO_COLOR convention: any non-empty value disables color.
			if name == "NO_COLOR" {
				return true
			}
		}
	}
	return fallback
}
