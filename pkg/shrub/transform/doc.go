// Package transform provides post-growth deformations for shrub skeletons.
//
// # Overview
//
// After growth, these transformations bend the skeleton for a less regular
// silhouette:
//
//   - [Gravity]: sags branches downward, more the farther they are from the
//     vertical axis
//   - [Spin]: twists branches around the vertical axis in height bands
//
// Both weight each branch by its horizontal distance from the world origin
// divided by the shrub's plane half size, so outer branches move most.
// Applying a transformation twice compounds it; there is no undo.
//
// # Configuration
//
// [Apply] runs an ordered list of [Step] values, which is how presets
// describe post-processing:
//
//	err := transform.Apply(s,
//	    transform.Step{Kind: transform.KindGravity, Amount: 1},
//	    transform.Step{Kind: transform.KindSpin, Amount: math.Pi / 2},
//	)
package transform
