package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/TanTanDev/shrubbery/pkg/geom"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
	"github.com/TanTanDev/shrubbery/pkg/voxel"
)

func trunk(t *testing.T) *shrub.Shrubbery {
	t.Helper()
	s, err := shrub.New(geom.Vec3{}, geom.V3(0, 1, 0), shrub.DefaultSettings(), shrub.DefaultGeneratorSettings())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRenderJSON(t *testing.T) {
	s := trunk(t)
	voxels := []voxel.Voxel{
		{Pos: geom.IVec3{X: 0, Y: 0, Z: 0}, Kind: voxel.Branch},
		{Pos: geom.IVec3{X: 0, Y: 1, Z: 0}, Kind: voxel.Greenery},
	}

	data, err := RenderJSON(s, voxels, WithJSONRunID("abc"), WithJSONSeed(42))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.RunID != "abc" || out.Seed != 42 {
		t.Errorf("run metadata = %q/%d", out.RunID, out.Seed)
	}
	if len(out.Branches) != 1 || out.Branches[0].Parent != shrub.NoParent {
		t.Errorf("Branches = %+v, want the root only", out.Branches)
	}
	if len(out.Voxels) != 2 || out.Voxels[1].Kind != voxel.Greenery {
		t.Errorf("Voxels = %+v", out.Voxels)
	}
	if out.Counts["branch"] != 1 || out.Counts["greenery"] != 1 {
		t.Errorf("Counts = %v", out.Counts)
	}
	if out.Attractors != nil {
		t.Error("attractors should be omitted by default")
	}
	if !strings.Contains(string(data), `"kind": "greenery"`) {
		t.Error("voxel kinds should be written by name")
	}
}

func TestRenderJSONAttractors(t *testing.T) {
	s := trunk(t)
	data, err := RenderJSON(s, nil, WithJSONAttractors())
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["voxels"]) != "[]" {
		t.Errorf("nil voxels should render as [], got %s", raw["voxels"])
	}
}

func TestRenderSummary(t *testing.T) {
	voxels := []voxel.Voxel{
		{Pos: geom.IVec3{X: -1, Y: 0, Z: 0}, Kind: voxel.Branch},
		{Pos: geom.IVec3{X: 0, Y: 3, Z: 0}, Kind: voxel.Branch},
		{Pos: geom.IVec3{X: 1, Y: 4, Z: 2}, Kind: voxel.Greenery},
	}

	got := RenderSummary(voxels)
	for _, want := range []string{
		"voxels:   3",
		"branch:   2",
		"greenery: 1",
		"extent:   (-1,0,0) .. (1,4,2)",
		"size:     3 x 5 x 3",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}

	if empty := RenderSummary(nil); !strings.Contains(empty, "extent:   empty") {
		t.Errorf("empty summary = %q", empty)
	}
}
