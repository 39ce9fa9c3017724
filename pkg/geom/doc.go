// Package geom holds the small float32 vector and box types shared by the
// growth engine and the voxelizer, plus two pure queries: clamped
// point-to-segment distance and planar rotation.
package geom
