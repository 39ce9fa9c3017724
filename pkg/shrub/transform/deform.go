package transform

import (
	"github.com/chewxy/math32"

	"github.com/TanTanDev/shrubbery/pkg/geom"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
)

// spinBandFrequency sets how quickly the twist weight oscillates with height.
const spinBandFrequency = 0.3

// Gravity lowers every branch by amount scaled by its horizontal distance
// from the origin relative to the plane half size.
func Gravity(s *shrub.Shrubbery, amount float32) {
	half := s.PlaneHalfSize()
	if half <= 0 {
		return
	}
	s.Deform(func(_ int, b shrub.Branch) geom.Vec3 {
		p := b.Position
		p.Y -= planeWeight(p, half) * amount
		return p
	})
}

// Spin rotates every branch around the vertical axis by radians, scaled by
// its horizontal weight and by a height factor cos(y*0.3)*0.5+0.5.
func Spin(s *shrub.Shrubbery, radians float32) {
	half := s.PlaneHalfSize()
	if half <= 0 {
		return
	}
	s.Deform(func(_ int, b shrub.Branch) geom.Vec3 {
		p := b.Position
		band := math32.Cos(p.Y*spinBandFrequency)*0.5 + 0.5
		xz := geom.Rotate2D(p.XZ(), radians*planeWeight(p, half)*band)
		p.X, p.Z = xz.X, xz.Y
		return p
	})
}

func planeWeight(p geom.Vec3, half float32) float32 {
	return p.XZ().Length() / half
}
