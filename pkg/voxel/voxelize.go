package voxel

import (
	"context"
	"runtime"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"

	"github.com/TanTanDev/shrubbery/pkg/errors"
	"github.com/TanTanDev/shrubbery/pkg/geom"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
)

// Voxelize classifies the grid around s. See [VoxelizeContext].
func Voxelize(s *shrub.Shrubbery, settings Settings) ([]Voxel, error) {
	return VoxelizeContext(context.Background(), s, settings)
}

// VoxelizeContext samples every cell of [Extent] and returns the non-air
// cells ordered by x, then y, then z. The skeleton is only read, so it must
// not be mutated until VoxelizeContext returns.
func VoxelizeContext(ctx context.Context, s *shrub.Shrubbery, settings Settings) ([]Voxel, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "shrub is nil")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	c := newClassifier(s, settings)
	lo, hi := Extent(s, settings)
	if hi.X <= lo.X || hi.Y <= lo.Y || hi.Z <= lo.Z {
		return nil, nil
	}

	workers := settings.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	slabs := make([][]Voxel, hi.X-lo.X)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for x := lo.X; x < hi.X; x++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slabs[x-lo.X] = c.slab(x, lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, slab := range slabs {
		total += len(slab)
	}
	out := make([]Voxel, 0, total)
	for _, slab := range slabs {
		out = append(out, slab...)
	}
	return out, nil
}

// Extent returns the half-open grid [lo, hi) that [Voxelize] samples.
//
// Horizontally the grid spans [-half, half) around the world origin with
// half = ceil(size/2) of the ceiled bounds, and at least 1 so the trunk
// column is sampled even when the skeleton has no horizontal extent.
// Vertically it spans the bounds' height starting at the ceiled minimum.
// Sphere foliage pads the low side by ceil(radius) and the high side by one
// more cell, so the closed sphere around a tip on the upper bound is kept.
func Extent(s *shrub.Shrubbery, settings Settings) (lo, hi geom.IVec3) {
	minB, maxB := s.Bounds().Ceil()
	size := maxB.Sub(minB)
	halfX := max((size.X+1)/2, 1)
	halfZ := max((size.Z+1)/2, 1)

	pad, upper := 0, 0
	if sphere, ok := settings.Leaves.(SphereFoliage); ok {
		pad = int(math32.Ceil(sphere.Radius))
		upper = pad + 1
	}

	lo = geom.IVec3{X: -halfX - pad, Y: minB.Y - pad, Z: -halfZ - pad}
	hi = geom.IVec3{X: halfX + upper, Y: minB.Y + size.Y + upper, Z: halfZ + upper}
	return lo, hi
}

// classifier holds the read-only state shared by all slabs.
type classifier struct {
	s        *shrub.Shrubbery
	size     BranchSize
	root     *RootSizeIncreaser
	recolour *shrub.LeafClassifier
	radius   float32
	tips     []geom.Vec3
}

func newClassifier(s *shrub.Shrubbery, settings Settings) *classifier {
	c := &classifier{
		s:    s,
		size: settings.BranchSize,
		root: settings.RootSizeIncreaser,
	}
	switch leaves := settings.Leaves.(type) {
	case BranchIsLeaf:
		cls := leaves.Classifier
		c.recolour = &cls
	case SphereFoliage:
		c.radius = leaves.Radius
		for _, b := range s.Branches() {
			if b.IsLeaf(leaves.Classifier) {
				c.tips = append(c.tips, b.Position)
			}
		}
	}
	return c
}

func (c *classifier) slab(x int, lo, hi geom.IVec3) []Voxel {
	var out []Voxel
	for y := lo.Y; y < hi.Y; y++ {
		for z := lo.Z; z < hi.Z; z++ {
			cell := geom.IVec3{X: x, Y: y, Z: z}
			if kind := c.classify(cell); kind != Air {
				out = append(out, Voxel{Pos: cell, Kind: kind})
			}
		}
	}
	return out
}

func (c *classifier) classify(cell geom.IVec3) Kind {
	p := cell.Float()
	for _, tip := range c.tips {
		if p.Distance(tip) <= c.radius {
			return Greenery
		}
	}

	d, idx := c.s.DistanceToBranch(p)
	if idx < 0 {
		return Air
	}
	b := c.s.Branch(idx)
	threshold := c.size.Threshold(b.Generation)
	if c.root != nil {
		threshold += c.root.Bonus(p.Y)
	}
	if d >= threshold {
		return Air
	}
	if c.recolour != nil && b.IsLeaf(*c.recolour) {
		return Greenery
	}
	return Branch
}
