package sink

import (
	"fmt"
	"strings"

	"github.com/TanTanDev/shrubbery/pkg/geom"
	"github.com/TanTanDev/shrubbery/pkg/voxel"
)

// RenderSummary returns a plain-text report of voxel counts per kind and the
// grid extent they occupy.
func RenderSummary(voxels []voxel.Voxel) string {
	var b strings.Builder
	counts := voxel.Count(voxels)
	fmt.Fprintf(&b, "voxels:   %d\n", len(voxels))
	for _, k := range []voxel.Kind{voxel.Branch, voxel.Greenery} {
		fmt.Fprintf(&b, "%-9s %d\n", k.String()+":", counts[k])
	}
	if len(voxels) == 0 {
		b.WriteString("extent:   empty\n")
		return b.String()
	}
	lo, hi := extent(voxels)
	size := hi.Sub(lo)
	fmt.Fprintf(&b, "extent:   (%d,%d,%d) .. (%d,%d,%d)\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	fmt.Fprintf(&b, "size:     %d x %d x %d\n", size.X+1, size.Y+1, size.Z+1)
	return b.String()
}

// extent returns the inclusive integer bounds of a non-empty voxel list.
func extent(voxels []voxel.Voxel) (lo, hi geom.IVec3) {
	lo, hi = voxels[0].Pos, voxels[0].Pos
	for _, v := range voxels[1:] {
		p := v.Pos
		lo = geom.IVec3{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = geom.IVec3{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi
}
