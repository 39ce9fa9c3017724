package voxel

import "math/rand/v2"

// DropLeaves removes int(n*fraction) of the n greenery voxels, chosen
// uniformly without replacement from rng. The fraction is clamped to [0, 1].
// Other voxels and the relative order of survivors are preserved.
//
// When nothing is removed the input slice is returned as is; otherwise a new
// slice is returned and voxels is left untouched. A nil rng removes nothing.
func DropLeaves(rng *rand.Rand, voxels []Voxel, fraction float32) []Voxel {
	if rng == nil || !(fraction > 0) {
		return voxels
	}
	fraction = min(fraction, 1)

	var leaves []int
	for i, v := range voxels {
		if v.Kind == Greenery {
			leaves = append(leaves, i)
		}
	}
	k := int(float32(len(leaves)) * fraction)
	if k == 0 {
		return voxels
	}

	drop := make([]bool, len(voxels))
	for range k {
		j := rng.IntN(len(leaves))
		drop[leaves[j]] = true
		leaves[j] = leaves[len(leaves)-1]
		leaves = leaves[:len(leaves)-1]
	}

	out := make([]Voxel, 0, len(voxels)-k)
	for i, v := range voxels {
		if !drop[i] {
			out = append(out, v)
		}
	}
	return out
}
