package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()
	s, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if s.Manifest != DefaultManifest {
		t.Errorf("Manifest = %q, want %q", s.Manifest, DefaultManifest)
	}
	if s.Generator.Runtime != DefaultRuntime {
		t.Errorf("Generator.Runtime = %q, want %q", s.Generator.Runtime, DefaultRuntime)
	}
	if s.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", s.Log.Level, DefaultLogLevel)
	}
	if s.File != "" {
		t.Errorf("File = %q, want empty when no config file exists", s.File)
	}
	if got, want := s.ManifestPath(), filepath.Join(root, "assets", "meta", "asset-list.json"); got != want {
		t.Errorf("ManifestPath() = %q, want %q", got, want)
	}
	if got, want := s.AssetsRoot(), filepath.Join(root, "assets"); got != want {
		t.Errorf("AssetsRoot() = %q, want %q", got, want)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".stationkit.yaml"), `assets_dir: public/assets
generator:
  runtime: exec
  script: bin/fake-generator
log:
  format: json
`)

	s, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.AssetsDir != "public/assets" {
		t.Errorf("AssetsDir = %q, want public/assets", s.AssetsDir)
	}
	if s.Generator.Runtime != "exec" {
		t.Errorf("Generator.Runtime = %q, want exec", s.Generator.Runtime)
	}
	if s.Generator.Binary != DefaultBlenderBinary {
		t.Errorf("Generator.Binary = %q, want default %q", s.Generator.Binary, DefaultBlenderBinary)
	}
	if s.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", s.Log.Format)
	}
	if s.File == "" {
		t.Error("File is empty, want the config file path")
	}
	if got := s.Get("generator.script"); got != "bin/fake-generator" {
		t.Errorf("Get(generator.script) = %q, want bin/fake-generator", got)
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".stationkit.yaml"), "generator: [unterminated\n")

	if _, err := Load(root); err == nil {
		t.Fatal("expected error for malformed config file, got nil")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".stationkit.yaml"), "generator:\n  binary: /opt/blender/blender\n")
	t.Setenv("STATIONKIT_GENERATOR_BINARY", "/usr/local/bin/blender")
	t.Setenv("STATIONKIT_MANIFEST", "/abs/asset-list.json")

	s, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Generator.Binary != "/usr/local/bin/blender" {
		t.Errorf("Generator.Binary = %q, want env override", s.Generator.Binary)
	}
	if got := s.ManifestPath(); got != "/abs/asset-list.json" {
		t.Errorf("ManifestPath() = %q, absolute paths must not be joined onto the root", got)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".env"), "STATIONKIT_LOG_LEVEL=debug\n")
	t.Cleanup(func() { os.Unsetenv("STATIONKIT_LOG_LEVEL") })

	s, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug from .env", s.Log.Level)
	}
}

func TestResolveRoot_FlagWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STATIONKIT_ROOT", t.TempDir())

	got, err := ResolveRoot(dir)
	if err != nil {
		t.Fatalf("ResolveRoot() error: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Errorf("ResolveRoot() = %q, want %q", got, want)
	}
}

func TestResolveRoot_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STATIONKIT_ROOT", dir)

	got, err := ResolveRoot("")
	if err != nil {
		t.Fatalf("ResolveRoot() error: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Errorf("ResolveRoot() = %q, want %q", got, want)
	}
}

func TestResolveRoot_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, file, "x")

	if _, err := ResolveRoot(file); err == nil {
		t.Fatal("expected error when root is a file, got nil")
	}
}

func TestResolve(t *testing.T) {
	s := &Settings{Root: "/project"}
	tests := []struct {
		in   string
		want string
	}{
		{"assets", filepath.Join("/project", "assets")},
		{"/abs/path", "/abs/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := s.Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeneratorBinary(t *testing.T) {
	tests := []struct {
		binary string
		want   string
	}{
		{"blender", "blender"},
		{"", ""},
		{"./tools/blender", filepath.Join("/project", "tools", "blender")},
		{"tools/blender", filepath.Join("/project", "tools", "blender")},
		{"/opt/blender/blender", "/opt/blender/blender"},
	}
	for _, tt := range tests {
		s := &Settings{Root: "/project", Generator: GeneratorSettings{Binary: tt.binary}}
		if got := s.GeneratorBinary(); got != tt.want {
			t.Errorf("GeneratorBinary() with %q = %q, want %q", tt.binary, got, tt.want)
		}
	}
}
