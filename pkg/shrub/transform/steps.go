package transform

import (
	"strings"

	"github.com/TanTanDev/shrubbery/pkg/errors"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
)

// Step kinds accepted by [Apply].
const (
	KindGravity = "gravity"
	KindSpin    = "spin"
)

// Step is one named post-processing operation. Amount is the sag distance
// for gravity and the angle in radians for spin.
type Step struct {
	Kind   string  `json:"kind" toml:"kind" yaml:"kind"`
	Amount float32 `json:"amount" toml:"amount" yaml:"amount"`
}

// Validate checks that the step kind is known and the amount finite.
func (st Step) Validate() error {
	switch strings.ToLower(st.Kind) {
	case KindGravity, KindSpin:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown post-process step %q (want %s or %s)", st.Kind, KindGravity, KindSpin)
	}
	return errors.ValidateFinite(st.Kind+" amount", st.Amount)
}

// Apply validates every step, then runs them in order on s. Nothing is
// applied if any step is invalid.
func Apply(s *shrub.Shrubbery, steps ...Step) error {
	for _, st := range steps {
		if err := st.Validate(); err != nil {
			return err
		}
	}
	for _, st := range steps {
		switch strings.ToLower(st.Kind) {
		case KindGravity:
			Gravity(s, st.Amount)
		case KindSpin:
			Spin(s, st.Amount)
		}
		s.Logger().Debug("post-process", "step", st.Kind, "amount", st.Amount)
	}
	return nil
}
