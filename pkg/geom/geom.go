package geom

import "github.com/chewxy/math32"

// DistToSegment returns the shortest distance from p to the segment [a, b].
//
// When the projection of p falls before a or past b the distance to that
// endpoint is returned; otherwise the perpendicular distance to the line. A
// degenerate segment (a == b) is treated as the point a.
func DistToSegment(p, a, b Vec3) float32 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	if ap.Dot(ab) <= 0 {
		return ap.Length()
	}
	bp := p.Sub(b)
	if bp.Dot(ab) >= 0 {
		return bp.Length()
	}
	return ab.Cross(ap).Length() / ab.Length()
}

// Rotate2D rotates p around the origin by radians (counter-clockwise).
func Rotate2D(p Vec2, radians float32) Vec2 {
	sin, cos := math32.Sincos(radians)
	return Vec2{
		X: cos*p.X - sin*p.Y,
		Y: sin*p.X + cos*p.Y,
	}
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// PointBox returns the degenerate box containing only p.
func PointBox(p Vec3) Box { return Box{Min: p, Max: p} }

// Extend grows the box so that it contains p.
func (b *Box) Extend(p Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Contains reports whether p lies inside the box (boundary included).
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Size returns the extent of the box along each axis.
func (b Box) Size() Vec3 { return b.Max.Sub(b.Min) }

// Ceil rounds both corners up to integer coordinates.
func (b Box) Ceil() (IVec3, IVec3) {
	return ceilVec(b.Min), ceilVec(b.Max)
}

func ceilVec(v Vec3) IVec3 {
	return IVec3{
		X: int(math32.Ceil(v.X)),
		Y: int(math32.Ceil(v.Y)),
		Z: int(math32.Ceil(v.Z)),
	}
}
