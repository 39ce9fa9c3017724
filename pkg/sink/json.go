package sink

import (
	"encoding/json"

	"github.com/TanTanDev/shrubbery/pkg/geom"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
	"github.com/TanTanDev/shrubbery/pkg/voxel"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	attractors bool
	runID      string
	seed       uint64
}

// WithJSONAttractors includes the attractors that were still live when the
// shrub was exported.
func WithJSONAttractors() JSONOption { return func(r *jsonRenderer) { r.attractors = true } }

// WithJSONRunID records the pipeline run that produced the shrub.
func WithJSONRunID(id string) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

// WithJSONSeed records the preset seed so the shrub can be regrown.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

type jsonOutput struct {
	RunID      string         `json:"run_id,omitempty"`
	Seed       uint64         `json:"seed,omitempty"`
	Bounds     jsonBounds     `json:"bounds"`
	Branches   []jsonBranch   `json:"branches"`
	Attractors []geom.Vec3    `json:"attractors,omitempty"`
	Counts     map[string]int `json:"counts"`
	Voxels     []voxel.Voxel  `json:"voxels"`
}

type jsonBounds struct {
	Min geom.Vec3 `json:"min"`
	Max geom.Vec3 `json:"max"`
}

type jsonBranch struct {
	Position   geom.Vec3 `json:"position"`
	Parent     int       `json:"parent"` // -1 for the root
	Generation int       `json:"generation"`
	Leaf       bool      `json:"leaf,omitempty"`
}

// RenderJSON exports the skeleton of s and voxels as a pretty-printed JSON
// document. Branches are listed in arena order, so every parent index refers
// to an earlier entry. Leaves are flagged with the last-branch classifier.
//
// RenderJSON does not modify s and is safe to call concurrently with other
// readers.
func RenderJSON(s *shrub.Shrubbery, voxels []voxel.Voxel, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	bounds := s.Bounds()
	out := jsonOutput{
		RunID:    r.runID,
		Seed:     r.seed,
		Bounds:   jsonBounds{Min: bounds.Min, Max: bounds.Max},
		Branches: buildJSONBranches(s.Branches()),
		Counts:   buildJSONCounts(voxels),
		Voxels:   voxels,
	}
	if out.Voxels == nil {
		out.Voxels = []voxel.Voxel{}
	}

	if r.attractors {
		live := s.Attractors()
		out.Attractors = make([]geom.Vec3, len(live))
		for i, a := range live {
			out.Attractors[i] = a.Position
		}
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONBranches(branches []shrub.Branch) []jsonBranch {
	out := make([]jsonBranch, len(branches))
	for i, b := range branches {
		out[i] = jsonBranch{
			Position:   b.Position,
			Parent:     b.Parent,
			Generation: b.Generation,
			Leaf:       b.IsLeaf(shrub.LastBranch),
		}
	}
	return out
}

func buildJSONCounts(voxels []voxel.Voxel) map[string]int {
	counts := make(map[string]int)
	for k, n := range voxel.Count(voxels) {
		counts[k.String()] = n
	}
	return counts
}
