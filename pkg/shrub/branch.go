package shrub

import "github.com/TanTanDev/shrubbery/pkg/geom"

// NoParent is the parent index of the root branch.
const NoParent = -1

// Attractor is a point that pulls nearby branch growth toward it until a
// branch comes within the kill distance.
type Attractor struct {
	Position geom.Vec3
	Reached  bool
}

// Branch is a single node of the skeleton. The segment it describes runs
// from its parent's position to its own.
type Branch struct {
	Position geom.Vec3
	// Parent indexes into the owning arena, or NoParent for the root.
	Parent int
	// Direction accumulates pulls during a grow step and is reset to
	// OriginalDirection afterwards.
	Direction         geom.Vec3
	OriginalDirection geom.Vec3
	PulledAttractors  int
	ChildCount        int
	// Generation counts attraction-driven spawns between this branch and
	// the trunk. Trunk segments are generation 0.
	Generation int
}

// HasParent reports whether b is attached to another branch.
func (b Branch) HasParent() bool { return b.Parent != NoParent }

// next returns a child of b, the branch at index, extended by length along
// b's current direction.
func (b Branch) next(index int, length float32, newGeneration bool) Branch {
	gen := b.Generation
	if newGeneration {
		gen++
	}
	return Branch{
		Position:          b.Position.Add(b.Direction.Scale(length)),
		Parent:            index,
		Direction:         b.Direction,
		OriginalDirection: b.Direction,
		Generation:        gen,
	}
}

func (b *Branch) reset() {
	b.PulledAttractors = 0
	b.Direction = b.OriginalDirection
}
