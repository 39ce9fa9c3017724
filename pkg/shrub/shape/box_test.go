package shape

import (
	"math/rand/v2"
	"testing"

	"github.com/TanTanDev/shrubbery/pkg/errors"
	"github.com/TanTanDev/shrubbery/pkg/geom"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
)

func collect(t *testing.T, b Box, origin geom.Vec3, growth shrub.Settings, gen shrub.GeneratorSettings) ([]geom.Vec3, error) {
	t.Helper()
	var out []geom.Vec3
	err := b.Generate(rand.New(rand.NewPCG(3, 4)), origin, growth, gen, func(p geom.Vec3) {
		out = append(out, p)
	})
	return out, err
}

func TestBoxLatticeCount(t *testing.T) {
	growth := shrub.Settings{KillDistance: 2, BranchLength: 2, LeafAttractionDistance: 6}
	gen := shrub.GeneratorSettings{Density: 1}

	// spacing = 0.5*(6-2)/1 = 2: 15/2 -> 7, 10/2 -> 5.
	pts, err := collect(t, Box{X: 15, Y: 10, Z: 15}, geom.V3(0, 13, 0), growth, gen)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 7*5*7 {
		t.Errorf("attractors = %d, want %d", len(pts), 7*5*7)
	}

	gen.Density = 2
	pts, err = collect(t, Box{X: 15, Y: 10, Z: 15}, geom.Vec3{}, growth, gen)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 15*10*15 {
		t.Errorf("density 2 attractors = %d, want %d", len(pts), 15*10*15)
	}
}

func TestBoxStaysWithinJitteredVolume(t *testing.T) {
	growth := shrub.Settings{KillDistance: 1, BranchLength: 1, LeafAttractionDistance: 5}
	gen := shrub.GeneratorSettings{Density: 1}
	origin := geom.V3(3, 10, -2)
	b := Box{X: 8, Y: 6, Z: 4}

	pts, err := collect(t, b, origin, growth, gen)
	if err != nil {
		t.Fatal(err)
	}
	// Cell centres sit inside the box; jitter moves each by at most
	// half a cell, so every point stays within the box.
	volume := geom.Box{
		Min: origin.Sub(geom.V3(b.X, b.Y, b.Z).Scale(0.5)),
		Max: origin.Add(geom.V3(b.X, b.Y, b.Z).Scale(0.5)),
	}
	for _, p := range pts {
		if !volume.Contains(p) {
			t.Fatalf("attractor %+v outside %+v", p, volume)
		}
	}
}

func TestBoxDeterministic(t *testing.T) {
	growth := shrub.DefaultSettings()
	gen := shrub.DefaultGeneratorSettings()
	a, _ := collect(t, Box{X: 5, Y: 5, Z: 5}, geom.Vec3{}, growth, gen)
	b, _ := collect(t, Box{X: 5, Y: 5, Z: 5}, geom.Vec3{}, growth, gen)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("lengths %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("attractor %d differs between runs with one seed", i)
		}
	}
}

func TestBoxDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		box    Box
		growth shrub.Settings
		gen    shrub.GeneratorSettings
	}{
		{"kill at attraction", Box{X: 10, Y: 10, Z: 10}, shrub.Settings{KillDistance: 5, LeafAttractionDistance: 5}, shrub.GeneratorSettings{Density: 1}},
		{"kill beyond attraction", Box{X: 10, Y: 10, Z: 10}, shrub.Settings{KillDistance: 6, LeafAttractionDistance: 5}, shrub.GeneratorSettings{Density: 1}},
		{"zero density", Box{X: 10, Y: 10, Z: 10}, shrub.DefaultSettings(), shrub.GeneratorSettings{}},
		{"flat box", Box{X: 10, Y: 0, Z: 10}, shrub.DefaultSettings(), shrub.GeneratorSettings{Density: 1}},
		{"smaller than a cell", Box{X: 1, Y: 1, Z: 1}, shrub.Settings{KillDistance: 1, LeafAttractionDistance: 9}, shrub.GeneratorSettings{Density: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := collect(t, tt.box, geom.Vec3{}, tt.growth, tt.gen)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Generate() error = %v, want INVALID_CONFIG", err)
			}
			if len(pts) != 0 {
				t.Errorf("Generate() emitted %d attractors on error", len(pts))
			}
		})
	}
}
