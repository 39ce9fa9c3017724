package geom

import "github.com/chewxy/math32"

// normalizeEpsilon is the smallest length Normalize will divide by.
const normalizeEpsilon = 1e-12

// Vec3 is a float32 point or direction in 3D space. Y is up.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Splat3 returns a vector with every component set to v.
func Splat3(v float32) Vec3 { return Vec3{X: v, Y: v, Z: v} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns the squared Euclidean length of v.
func (v Vec3) LengthSquared() float32 { return v.Dot(v) }

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// Distance returns the Euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float32 { return o.Sub(v).Length() }

// Normalize returns v scaled to unit length. A zero (or vanishingly short)
// vector has no direction: Normalize then returns the zero vector and false.
func (v Vec3) Normalize() (Vec3, bool) {
	l := v.Length()
	if l <= normalizeEpsilon || math32.IsNaN(l) || math32.IsInf(l, 0) {
		return Vec3{}, false
	}
	return v.Scale(1 / l), true
}

// Min returns the componentwise minimum of v and o.
func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{min(v.X, o.X), min(v.Y, o.Y), min(v.Z, o.Z)}
}

// Max returns the componentwise maximum of v and o.
func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{max(v.X, o.X), max(v.Y, o.Y), max(v.Z, o.Z)}
}

// XZ projects v onto the horizontal plane.
func (v Vec3) XZ() Vec2 { return Vec2{X: v.X, Y: v.Z} }

// IsZero reports whether every component is exactly zero.
func (v Vec3) IsZero() bool { return v == Vec3{} }

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Vec2 is a float32 point on a plane.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Length() float32 { return math32.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) Distance(o Vec2) float32 { return o.Sub(v).Length() }

// IVec3 is an integer grid coordinate.
type IVec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (v IVec3) Sub(o IVec3) IVec3 { return IVec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Float converts the coordinate to a Vec3 at the same position.
func (v IVec3) Float() Vec3 { return Vec3{float32(v.X), float32(v.Y), float32(v.Z)} }
