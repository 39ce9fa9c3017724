package config

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/TanTanDev/shrubbery/pkg/errors"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
	"github.com/TanTanDev/shrubbery/pkg/shrub/shape"
	"github.com/TanTanDev/shrubbery/pkg/shrub/transform"
	"github.com/TanTanDev/shrubbery/pkg/voxel"
)

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	s, err := p.Shape()
	if err != nil {
		t.Fatal(err)
	}
	if s != (shape.Box{X: 15, Y: 10, Z: 15}) {
		t.Errorf("Shape() = %+v", s)
	}

	vs, err := p.VoxelSettings()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := vs.Leaves.(voxel.NoLeaves); !ok {
		t.Errorf("Leaves = %T, want NoLeaves", vs.Leaves)
	}
	if vs.RootSizeIncreaser == nil || *vs.RootSizeIncreaser != (voxel.RootSizeIncreaser{Height: 2, AdditionalSize: 2}) {
		t.Errorf("RootSizeIncreaser = %+v", vs.RootSizeIncreaser)
	}
	if got := vs.BranchSize.Threshold(7); got != 1 {
		t.Errorf("BranchSize.Threshold(7) = %v, want 1", got)
	}
}

func TestDecodeTOML(t *testing.T) {
	src := `
seed = 7
iterations = 3

[growth]
kill_distance = 1.0
branch_length = 1.0
leaf_attraction_distance = 5.0
min_trunk_height = 2.0

[[post_process]]
kind = "gravity"
amount = 1.0

[[post_process]]
kind = "spin"
amount = 1.5

[voxelize]
branch_size = 0.75

[voxelize.leaves]
policy = "sphere"
classifier = "non-root"
radius = 2.0
`
	p, err := Decode(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if p.Seed != 7 || p.Iterations != 3 {
		t.Errorf("seed/iterations = %d/%d", p.Seed, p.Iterations)
	}
	if p.Growth != (shrub.Settings{KillDistance: 1, BranchLength: 1, LeafAttractionDistance: 5, MinTrunkHeight: 2}) {
		t.Errorf("Growth = %+v", p.Growth)
	}
	want := []transform.Step{{Kind: "gravity", Amount: 1}, {Kind: "spin", Amount: 1.5}}
	if !reflect.DeepEqual(p.PostProcess, want) {
		t.Errorf("PostProcess = %+v", p.PostProcess)
	}
	// Untouched sections keep their defaults.
	if p.Attractors.Size != (Vec{X: 15, Y: 10, Z: 15}) {
		t.Errorf("Attractors.Size = %+v", p.Attractors.Size)
	}

	vs, err := p.VoxelSettings()
	if err != nil {
		t.Fatal(err)
	}
	if vs.BranchSize != (voxel.UniformSize{Distance: 0.75}) {
		t.Errorf("BranchSize = %+v", vs.BranchSize)
	}
	if vs.Leaves != (voxel.SphereFoliage{Radius: 2, Classifier: shrub.NonRootBranch}) {
		t.Errorf("Leaves = %+v", vs.Leaves)
	}
}

func TestDecodeYAML(t *testing.T) {
	src := `
iterations: 12
root:
  position: {x: 1, y: 0, z: -1}
  direction: {x: 0, y: 2, z: 0}
attractors:
  shape: box
  origin: {x: 0, y: 20, z: 0}
  size: {x: 8, y: 6, z: 8}
  density: 0.5
voxelize:
  generation_sizes: [2, 1]
  root_size:
    height: 3
    additional: 0
  leaves:
    policy: branch
drop_leaves: 0.5
`
	p, err := Decode(strings.NewReader(src), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if p.Iterations != 12 || p.DropLeaves != 0.5 || p.Attractors.Density != 0.5 {
		t.Errorf("decoded = %+v", p)
	}
	if p.Root.Position != (Vec{X: 1, Z: -1}) {
		t.Errorf("Root.Position = %+v", p.Root.Position)
	}
	if !reflect.DeepEqual(p.Voxelize.GenerationSizes, []float32{2, 1}) {
		t.Errorf("GenerationSizes = %v, want [2 1]", p.Voxelize.GenerationSizes)
	}

	vs, err := p.VoxelSettings()
	if err != nil {
		t.Fatal(err)
	}
	if vs.RootSizeIncreaser != nil {
		t.Errorf("RootSizeIncreaser = %+v, want disabled", vs.RootSizeIncreaser)
	}
	if vs.Leaves != (voxel.BranchIsLeaf{Classifier: shrub.LastBranch}) {
		t.Errorf("Leaves = %+v", vs.Leaves)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format Format
		code   errors.Code
	}{
		{"malformed toml", "seed = = 1", FormatTOML, errors.ErrCodeInvalidFormat},
		{"unknown json field", `{"sprouts": 3}`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"unknown format", "", Format("ini"), errors.ErrCodeInvalidFormat},
		{"kill beyond attraction", "growth:\n  kill_distance: 9\n", FormatYAML, errors.ErrCodeInvalidConfig},
		{"zero direction", `{"root": {"direction": {"x": 0, "y": 0, "z": 0}}}`, FormatJSON, errors.ErrCodeInvalidConfig},
		{"unknown shape", "[attractors]\nshape = \"cone\"\n", FormatTOML, errors.ErrCodeInvalidShape},
		{"unknown step", "post_process:\n  - kind: shake\n    amount: 1\n", FormatYAML, errors.ErrCodeInvalidConfig},
		{"unknown leaves", "[voxelize.leaves]\npolicy = \"moss\"\n", FormatTOML, errors.ErrCodeInvalidConfig},
		{"drop above one", `{"drop_leaves": 2}`, FormatJSON, errors.ErrCodeInvalidConfig},
		{"negative iterations", "iterations: -1\n", FormatYAML, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Decode() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	p := Default()
	p.PostProcess = []transform.Step{{Kind: transform.KindGravity, Amount: 1}}

	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, p, format); err != nil {
				t.Fatal(err)
			}
			got, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode() error = %v\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(got, p) {
				t.Errorf("round trip = %+v, want %+v", got, p)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "bush.yml")
	if err := os.WriteFile(path, []byte("iterations: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Iterations != 4 {
		t.Errorf("Iterations = %d, want 4", p.Iterations)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v", err)
	}
	if _, err := Load(filepath.Join(dir, "bush.ini")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(.ini) error = %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"drop_leaves": -1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(bad) error = %v, want INVALID_CONFIG", err)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"toml": FormatTOML, "YAML": FormatYAML, "yml": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(xml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestExamplePresets(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "presets", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example presets")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			p, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if p.Iterations == 0 {
				t.Error("example preset grows nothing")
			}
		})
	}
}
