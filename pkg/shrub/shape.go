package shrub

import (
	"math/rand/v2"

	"github.com/TanTanDev/shrubbery/pkg/geom"
)

// Shape scatters attractor positions inside a volume centred on origin.
//
// Implementations call emit once per attractor and draw any jitter from rng.
// Configurations that would produce no attractors must return an error.
type Shape interface {
	Generate(rng *rand.Rand, origin geom.Vec3, growth Settings, gen GeneratorSettings, emit func(geom.Vec3)) error
}
