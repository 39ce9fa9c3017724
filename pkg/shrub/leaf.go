package shrub

import (
	"strings"

	"github.com/TanTanDev/shrubbery/pkg/errors"
)

// LeafClassifier decides which branches bear leaves.
type LeafClassifier int

const (
	// LastBranch marks branches without children.
	LastBranch LeafClassifier = iota
	// NonRootBranch marks every branch outside the trunk chain.
	NonRootBranch
)

// String returns the configuration name of the classifier.
func (c LeafClassifier) String() string {
	switch c {
	case LastBranch:
		return "last-branch"
	case NonRootBranch:
		return "non-root"
	default:
		return "unknown"
	}
}

// ParseLeafClassifier maps a configuration name to a classifier.
func ParseLeafClassifier(name string) (LeafClassifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "last-branch", "last_branch", "":
		return LastBranch, nil
	case "non-root", "non_root", "non-root-branch":
		return NonRootBranch, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidConfig,
			"unknown leaf classifier %q (want last-branch or non-root)", name)
	}
}

// IsLeaf reports whether b bears leaves under classifier c.
func (b Branch) IsLeaf(c LeafClassifier) bool {
	switch c {
	case NonRootBranch:
		return b.Generation != 0
	default:
		return b.ChildCount == 0
	}
}
