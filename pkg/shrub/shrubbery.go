package shrub

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/chewxy/math32"

	"github.com/TanTanDev/shrubbery/pkg/errors"
	"github.com/TanTanDev/shrubbery/pkg/geom"
)

// MaxTrunkIterations caps the search for the first attractor in range during
// [Shrubbery.BuildTrunk].
const MaxTrunkIterations = 1000

// ErrTrunkBuilt is returned by [Shrubbery.BuildTrunk] on a second call.
var ErrTrunkBuilt = errors.New(errors.ErrCodeInvalidState, "trunk already built")

// Shrubbery is a growing skeleton together with the attractors that drive it.
//
// The zero value is not usable; create one with [New]. A Shrubbery is not
// safe for concurrent mutation. Read-only queries such as
// [Shrubbery.DistanceToBranch] may run concurrently with each other.
type Shrubbery struct {
	branches   []Branch
	attractors []Attractor
	settings   Settings
	generator  GeneratorSettings
	bounds     geom.Box
	trunkBuilt bool
	logger     *log.Logger
}

// Option configures a [Shrubbery].
type Option func(*Shrubbery)

// WithLogger routes growth diagnostics to l. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(s *Shrubbery) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a shrub with a single root branch at root pointing along
// direction. The direction is normalized; a zero direction and invalid
// settings are reported as configuration errors.
func New(root, direction geom.Vec3, s Settings, g GeneratorSettings, opts ...Option) (*Shrubbery, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if !root.IsFinite() {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "root position must be finite, got %+v", root)
	}
	dir, ok := direction.Normalize()
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "growth direction must be non-zero, got %+v", direction)
	}

	sh := &Shrubbery{
		branches: []Branch{{
			Position:          root,
			Parent:            NoParent,
			Direction:         dir,
			OriginalDirection: dir,
		}},
		settings:  s,
		generator: g,
		bounds:    geom.PointBox(root),
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(sh)
	}
	return sh, nil
}

// SpawnAttractors asks shape to scatter attractors around origin and adds
// them to the live set. It returns the number of attractors added.
func (s *Shrubbery) SpawnAttractors(rng *rand.Rand, origin geom.Vec3, shape Shape) (int, error) {
	if shape == nil {
		return 0, errors.New(errors.ErrCodeInvalidShape, "attractor shape is nil")
	}
	if rng == nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "random source is nil")
	}
	before := len(s.attractors)
	err := shape.Generate(rng, origin, s.settings, s.generator, func(p geom.Vec3) {
		s.attractors = append(s.attractors, Attractor{Position: p})
	})
	if err != nil {
		s.attractors = s.attractors[:before]
		return 0, err
	}
	added := len(s.attractors) - before
	s.logger.Debug("spawned attractors", "count", added, "origin", origin)
	return added, nil
}

// TrunkResult describes what [Shrubbery.BuildTrunk] appended.
type TrunkResult struct {
	// Height is the total trunk length grown along the root direction.
	Height float32
	// Branches is the number of branches appended.
	Branches int
	// CapReached is set when no attractor came into range within
	// MaxTrunkIterations steps.
	CapReached bool
}

// BuildTrunk extends the root along its direction in branch-length steps
// until the tip is strictly within the attraction distance of an attractor,
// and appends that length as one generation-0 branch. Further branch-length
// segments are then chained on while the height is below MinTrunkHeight.
//
// BuildTrunk must run once, before the first [Shrubbery.Grow].
func (s *Shrubbery) BuildTrunk() (TrunkResult, error) {
	if s.trunkBuilt {
		return TrunkResult{}, ErrTrunkBuilt
	}
	s.trunkBuilt = true

	root := s.branches[0]
	step := s.settings.BranchLength
	tip := root.Position
	var height float32
	capReached := true
	for range MaxTrunkIterations {
		height += step
		tip = tip.Add(root.Direction.Scale(step))
		if s.attractorInRange(tip) {
			capReached = false
			break
		}
	}
	if capReached {
		s.logger.Warn("trunk iteration cap reached before any attractor came into range",
			"iterations", MaxTrunkIterations, "height", height)
	}

	before := len(s.branches)
	s.branches[0].ChildCount++
	s.appendBranch(root.next(0, height, false))

	for height < s.settings.MinTrunkHeight {
		height += step
		last := len(s.branches) - 1
		s.branches[last].ChildCount++
		s.appendBranch(s.branches[last].next(last, step, false))
	}

	res := TrunkResult{
		Height:     height,
		Branches:   len(s.branches) - before,
		CapReached: capReached,
	}
	s.logger.Debug("built trunk", "height", res.Height, "branches", res.Branches)
	return res, nil
}

func (s *Shrubbery) attractorInRange(p geom.Vec3) bool {
	for _, a := range s.attractors {
		if p.Distance(a.Position) < s.settings.LeafAttractionDistance {
			return true
		}
	}
	return false
}

// GrowResult summarizes one [Shrubbery.Grow] step.
type GrowResult struct {
	Reached    int // attractors consumed and purged
	Spawned    int // branches appended
	Attractors int // live attractors left
	Branches   int // total branches after the step
}

// Grow runs one space colonization step.
func (s *Shrubbery) Grow() GrowResult {
	kill := s.settings.KillDistance
	reach := s.settings.LeafAttractionDistance

	for ai := range s.attractors {
		a := &s.attractors[ai]
		closest := -1
		closestDist := float32(math32.MaxFloat32)
		for bi := range s.branches {
			d := a.Position.Distance(s.branches[bi].Position)
			if d < kill {
				a.Reached = true
				closest = -1
				break
			}
			if d > reach {
				continue
			}
			if d < closestDist {
				closest = bi
				closestDist = d
			}
		}
		if closest < 0 {
			continue
		}
		b := &s.branches[closest]
		pull, ok := a.Position.Sub(b.Position).Normalize()
		if !ok {
			continue
		}
		b.Direction = b.Direction.Add(pull)
		b.PulledAttractors++
	}

	live := s.attractors[:0]
	for _, a := range s.attractors {
		if !a.Reached {
			live = append(live, a)
		}
	}
	reached := len(s.attractors) - len(live)
	clear(s.attractors[len(live):])
	s.attractors = live

	spawned := 0
	existing := len(s.branches)
	for i := 0; i < existing; i++ {
		if s.branches[i].PulledAttractors == 0 {
			continue
		}
		b := &s.branches[i]
		if dir, ok := b.Direction.Normalize(); ok {
			b.Direction = dir
		} else {
			b.Direction = b.OriginalDirection
		}
		child := b.next(i, s.settings.BranchLength, true)
		b.ChildCount++
		b.reset()
		s.appendBranch(child)
		spawned++
	}

	res := GrowResult{
		Reached:    reached,
		Spawned:    spawned,
		Attractors: len(s.attractors),
		Branches:   len(s.branches),
	}
	s.logger.Debug("grow step", "reached", res.Reached, "spawned", res.Spawned,
		"attractors", res.Attractors, "branches", res.Branches)
	return res
}

// DistanceToBranch returns the distance from p to the nearest branch segment
// and the index of the branch owning it. Parentless branches have no segment
// and are skipped. When no segment exists it returns (math32.MaxFloat32, -1).
func (s *Shrubbery) DistanceToBranch(p geom.Vec3) (float32, int) {
	closest := float32(math32.MaxFloat32)
	index := -1
	for i, b := range s.branches {
		if !b.HasParent() {
			continue
		}
		d := geom.DistToSegment(p, s.branches[b.Parent].Position, b.Position)
		if d < closest {
			closest = d
			index = i
		}
	}
	return closest, index
}

// Deform replaces every branch position with fn's result and recomputes the
// bounds. Topology is left untouched.
func (s *Shrubbery) Deform(fn func(i int, b Branch) geom.Vec3) {
	for i := range s.branches {
		s.branches[i].Position = fn(i, s.branches[i])
	}
	s.recomputeBounds()
}

func (s *Shrubbery) appendBranch(b Branch) {
	s.bounds.Extend(b.Position)
	s.branches = append(s.branches, b)
}

func (s *Shrubbery) recomputeBounds() {
	s.bounds = geom.PointBox(s.branches[0].Position)
	for _, b := range s.branches[1:] {
		s.bounds.Extend(b.Position)
	}
}

// Branches returns the branch arena. The slice must not be modified.
func (s *Shrubbery) Branches() []Branch { return s.branches }

// Branch returns the branch at index i.
func (s *Shrubbery) Branch(i int) Branch { return s.branches[i] }

// Attractors returns the live attractors. The slice must not be modified.
func (s *Shrubbery) Attractors() []Attractor { return s.attractors }

// Bounds returns the box enclosing every branch position.
func (s *Shrubbery) Bounds() geom.Box { return s.bounds }

// BoundingSize returns the integer extent of the bounds, computed from the
// ceiled corners.
func (s *Shrubbery) BoundingSize() geom.IVec3 {
	lo, hi := s.bounds.Ceil()
	return hi.Sub(lo)
}

// PlaneHalfSize returns half of the larger horizontal extent.
func (s *Shrubbery) PlaneHalfSize() float32 {
	size := s.BoundingSize()
	return float32(max(size.X, size.Z)) * 0.5
}

// Settings returns the growth settings.
func (s *Shrubbery) Settings() Settings { return s.settings }

// GeneratorSettings returns the attractor generation settings.
func (s *Shrubbery) GeneratorSettings() GeneratorSettings { return s.generator }

// TrunkBuilt reports whether [Shrubbery.BuildTrunk] has run.
func (s *Shrubbery) TrunkBuilt() bool { return s.trunkBuilt }

// Logger returns the logger diagnostics are written to.
func (s *Shrubbery) Logger() *log.Logger { return s.logger }
