// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded into the binary. Renaming the tool is a matter of
// editing that file; nothing else in the tree hardcodes the CLI name or the
// environment prefix.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	EnvPrefix   string `yaml:"env_prefix"`
	ConfigFile  string `yaml:"config_file"`
	GoModule    string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "stationkit",
			DisplayName: "StationKit",
			Description: "Asset pipeline driver and metadata validator",
			EnvPrefix:   "STATIONKIT",
			ConfigFile:  ".stationkit.yaml",
			GoModule:    "github.com/mrbrandonmills/Cinematic-3d-site",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "stationkit").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "STATIONKIT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ConfigFile returns the project-level config file name (e.g., ".stationkit.yaml").
func ConfigFile() string { load(); return defaults.ConfigFile }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("root") → "STATIONKIT_ROOT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
