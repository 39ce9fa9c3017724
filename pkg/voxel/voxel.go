package voxel

import (
	"fmt"

	"github.com/TanTanDev/shrubbery/pkg/errors"
	"github.com/TanTanDev/shrubbery/pkg/geom"
)

// Kind classifies a voxel.
type Kind uint8

const (
	Air Kind = iota
	Branch
	Greenery
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Air:
		return "air"
	case Branch:
		return "branch"
	case Greenery:
		return "greenery"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "air":
		return Air, nil
	case "branch":
		return Branch, nil
	case "greenery":
		return Greenery, nil
	}
	return Air, errors.New(errors.ErrCodeInvalidFormat, "unknown voxel kind %q", s)
}

// Voxel is a unit cube at an integer grid coordinate.
type Voxel struct {
	Pos  geom.IVec3 `json:"pos"`
	Kind Kind       `json:"kind"`
}

// Count tallies voxels per kind.
func Count(voxels []Voxel) map[Kind]int {
	counts := make(map[Kind]int, 2)
	for _, v := range voxels {
		counts[v.Kind]++
	}
	return counts
}
