//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mrbrandonmills/Cinematic-3d-site/internal/config"
	"github.com/qmuntal/gltf"
)

// testEnv holds the paths of an isolated project.
type testEnv struct {
	Root       string // project root
	FixtureGLB string // model copied by the fake generator
	Settings   *config.Settings
}

// fakeGenerator parses --id/--section, copies the fixture model into the
// assets directory and writes a matching metadata document. The asset
// "station-broken" always fails.
const fakeGenerator = `#!/bin/sh
while [ $# -gt 0 ]; do
  case "$1" in
    --id) id="$2"; shift 2 ;;
    --section) section="$2"; shift 2 ;;
    *) shift ;;
  esac
done

echo "generating $id for $section"
if [ "$id" = "station-broken" ]; then
  echo "scene build failed" >&2
  exit 3
fi

mkdir -p "$STATIONKIT_ASSETS_DIR/models" "$STATIONKIT_ASSETS_DIR/meta"
glb="$STATIONKIT_ASSETS_DIR/models/$id.glb"
cp "$FIXTURE_GLB" "$glb"
size=$(wc -c < "$glb" | tr -d ' ')
cat > "$STATIONKIT_ASSETS_DIR/meta/$id.json" <<JSON
{
  "id": "$id",
  "category": "station",
  "file": "models/$id.glb",
  "section": "$section",
  "metadata": {"polycount": 12, "fileSize": $size, "version": "1.0.0"}
}
JSON
`

const assetList = `{
  "version": "1.0.0",
  "project": "cinematic-station",
  "assets": [
    {"id": "station-home", "section": "home", "status": "planned", "description": "Home hub"},
    {"id": "station-broken", "section": "lab"},
    {"id": "station-store", "section": "store", "status": "complete", "completed_at": "2025-01-14T10:22:31.512093"},
    {"id": "station-gallery", "section": "gallery", "status": "planned"}
  ]
}
`

const metadataSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "category", "file", "section"],
  "properties": {
    "metadata": {
      "type": "object",
      "properties": {
        "polycount": {"type": "integer", "minimum": 0},
        "fileSize": {"type": "integer", "minimum": 0}
      }
    }
  }
}
`

// setupTestEnv creates a project that generates through the exec runtime.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("the fake generator is a shell script")
	}

	env := &testEnv{Root: t.TempDir()}
	env.FixtureGLB = filepath.Join(t.TempDir(), "fixture.glb")
	writeCube(t, env.FixtureGLB)

	writeFile(t, filepath.Join(env.Root, "assets/meta/asset-list.json"), assetList)
	writeFile(t, filepath.Join(env.Root, "assets/meta/asset-schema.json"), metadataSchema)
	writeFile(t, filepath.Join(env.Root, "bin/fake-generator"), fakeGenerator)
	if err := os.Chmod(filepath.Join(env.Root, "bin/fake-generator"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(env.Root, ".stationkit.yaml"), `generator:
  runtime: exec
  script: bin/fake-generator
`)

	s, err := config.Load(env.Root)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	env.Settings = s
	return env
}

// writeCube saves a GLB holding one indexed mesh of 12 triangles.
func writeCube(t *testing.T, path string) {
	t.Helper()
	doc := &gltf.Document{
		Asset:     gltf.Asset{Generator: "integration-test", Version: "2.0"},
		Accessors: []*gltf.Accessor{{Count: 24}, {Count: 36}},
		Meshes: []*gltf.Mesh{{Name: "cube", Primitives: []*gltf.Primitive{
			{Attributes: map[string]int{"POSITION": 0}, Indices: gltf.Index(1)},
		}}},
		Nodes:  []*gltf.Node{{Name: "cube", Mesh: gltf.Index(0)}},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("writing fixture GLB: %v", err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
