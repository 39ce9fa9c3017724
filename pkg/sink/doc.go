// Package sink exports a grown shrub for consumption outside this module.
//
// [RenderJSON] writes the skeleton and its voxels as one pretty-printed
// document that an external renderer or game engine can load. The format is
// write-only: there is no reader, and shrubs are always regrown from their
// preset.
//
// [RenderSummary] prints a short human-readable report of a voxel list.
package sink
