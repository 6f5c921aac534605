package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mrbrandonmills/Cinematic-3d-site/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileType = "yaml"
	envFile  = ".env"
)

// Default values. Paths are relative to the project root.
const (
	DefaultAssetsDir       = "assets"
	DefaultManifest        = "assets/meta/asset-list.json"
	DefaultSchema          = "assets/meta/asset-schema.json"
	DefaultGeneratorScript = "tools/blender-scripts/generate_asset_template.py"
	DefaultRuntime         = "blender"
	DefaultBlenderBinary   = "blender"
	DefaultMinVersion      = "4.0.0"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
)

// Settings is the effective configuration for one invocation.
type Settings struct {
	Root      string            `mapstructure:"-" yaml:"root"`
	AssetsDir string            `mapstructure:"assets_dir" yaml:"assets_dir"`
	Manifest  string            `mapstructure:"manifest" yaml:"manifest"`
	Schema    string            `mapstructure:"schema" yaml:"schema"`
	Generator GeneratorSettings `mapstructure:"generator" yaml:"generator"`
	Log       LogSettings       `mapstructure:"log" yaml:"log"`

	// File is the config file that was read, empty when none existed.
	File string `mapstructure:"-" yaml:"config_file,omitempty"`

	v *viper.Viper
}

// GeneratorSettings selects and parameterizes the external asset generator.
type GeneratorSettings struct {
	Runtime    string `mapstructure:"runtime" yaml:"runtime"`
	Script     string `mapstructure:"script" yaml:"script"`
	Binary     string `mapstructure:"binary" yaml:"binary"`
	MinVersion string `mapstructure:"min_version" yaml:"min_version"`
}

// LogSettings configures the structured logger.
type LogSettings struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("assets_dir", DefaultAssetsDir)
	v.SetDefault("manifest", DefaultManifest)
	v.SetDefault("schema", DefaultSchema)
	v.SetDefault("generator.runtime", DefaultRuntime)
	v.SetDefault("generator.script", DefaultGeneratorScript)
	v.SetDefault("generator.binary", DefaultBlenderBinary)
	v.SetDefault("generator.min_version", DefaultMinVersion)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}

// Load reads settings for the project rooted at root.
func Load(root string) (*Settings, error) {
	// Seed the environment from the project's .env. Existing variables win.
	if err := godotenv.Load(filepath.Join(root, envFile)); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	s := &Settings{Root: root, v: v}

	configFile := filepath.Join(root, branding.ConfigFile())
	if _, err := os.Stat(configFile); err == nil {
		v.SetConfigFile(configFile)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
		s.File = configFile
	}

	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

// Get returns a config value by key (e.g., "generator.runtime").
// Returns empty string if not set.
func (s *Settings) Get(key string) string {
	if s.v == nil {
		return ""
	}
	return s.v.GetString(key)
}

// IsSet reports whether the key has a value from any layer.
func (s *Settings) IsSet(key string) bool {
	return s.v != nil && s.v.IsSet(key)
}

// Resolve joins a relative path onto the project root. Absolute paths are
// returned unchanged.
func (s *Settings) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.Root, path)
}

// AssetsRoot returns the absolute directory that metadata file references
// are resolved against.
func (s *Settings) AssetsRoot() string { return s.Resolve(s.AssetsDir) }

// ManifestPath returns the resolved asset list path.
func (s *Settings) ManifestPath() string { return s.Resolve(s.Manifest) }

// SchemaPath returns the resolved metadata schema path.
func (s *Settings) SchemaPath() string { return s.Resolve(s.Schema) }

// GeneratorScript returns the resolved default generator script path.
func (s *Settings) GeneratorScript() string { return s.Resolve(s.Generator.Script) }

// GeneratorBinary returns the Blender executable. A bare name is left for
// PATH lookup; anything with a directory part is resolved against the root,
// since the generator runs with the root as its working directory.
func (s *Settings) GeneratorBinary() string {
	bin := s.Generator.Binary
	if bin == "" || !strings.ContainsAny(bin, `/\`) {
		return bin
	}
	return s.Resolve(bin)
}

// ResolveRoot determines the project root. It checks, in order: the explicit
// flag value, the STATIONKIT_ROOT environment variable, the enclosing git
// work tree, and finally the current directory.
func ResolveRoot(flagValue string) (string, error) {
	candidate := flagValue
	if candidate == "" {
		candidate = os.Getenv(branding.EnvVar("ROOT"))
	}
	if candidate == "" {
		candidate = gitTopLevel()
	}
	if candidate == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		candidate = wd
	}

	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", fmt.Errorf("resolving project root %s: %w", candidate, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project root %s is not a directory", abs)
	}
	return abs, nil
}

func gitTopLevel() string {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
