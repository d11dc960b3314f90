// Package plan defines the inputs to the layout engine: floor dimensions,
// the unit-size profile, and project files that bundle them with zone
// annotations.
package plan

import "errors"

// Validation errors for inputs that make geometry undefined. These are the
// only hard failures the engine surfaces; everything else degrades.
var (
	ErrInvalidFloor         = errors.New("plan: floor dimensions must be positive")
	ErrInvalidCorridorWidth = errors.New("plan: corridor width must be positive")
	ErrInvalidBucket        = errors.New("plan: size bucket bounds must be non-negative with min <= max")
)

// Floor describes the usable floor area. The origin is the top-left corner;
// all placement happens within [0,Width] x [0,Height].
type Floor struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Validate rejects non-positive floor dimensions.
func (f Floor) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return ErrInvalidFloor
	}
	return nil
}

// Area returns the total floor area before zone deductions.
func (f Floor) Area() float64 {
	return f.Width * f.Height
}

// SizeBucket is one entry of a unit-size distribution: units with target
// area in [MinSize, MaxSize], making up Percentage percent of the total.
// Percentages are taken at face value and are not normalized; buckets that
// sum to more than 100 overproduce accordingly.
type SizeBucket struct {
	MinSize    float64 `yaml:"min_size" json:"min_size"`
	MaxSize    float64 `yaml:"max_size" json:"max_size"`
	Percentage float64 `yaml:"percentage" json:"percentage"`
}

// Profile is the placement configuration for one generation run.
// A nil SizeDistribution means the caller has not chosen one; the engine
// treats it as empty, so callers wanting the stock mix must inject
// DefaultSizeDistribution explicitly.
type Profile struct {
	Name             string       `yaml:"name" json:"name"`
	SizeDistribution []SizeBucket `yaml:"size_distribution" json:"size_distribution"`
	CorridorWidth    float64      `yaml:"corridor_width" json:"corridor_width"`
}

// Validate rejects profiles whose geometry is undefined. An empty size
// distribution is allowed and yields an empty layout.
func (p Profile) Validate() error {
	if p.CorridorWidth <= 0 {
		return ErrInvalidCorridorWidth
	}
	for _, b := range p.SizeDistribution {
		if b.MinSize < 0 || b.MaxSize < b.MinSize {
			return ErrInvalidBucket
		}
	}
	return nil
}

// DefaultSizeDistribution returns the stock three-bucket mix applied at the
// call boundary when a profile carries no distribution of its own.
func DefaultSizeDistribution() []SizeBucket {
	return []SizeBucket{
		{MinSize: 15, MaxSize: 25, Percentage: 40},
		{MinSize: 25, MaxSize: 35, Percentage: 35},
		{MinSize: 35, MaxSize: 50, Percentage: 25},
	}
}

// Algorithm selects a placement strategy.
type Algorithm string

const (
	AlgorithmGenetic Algorithm = "genetic"
	AlgorithmGreedy  Algorithm = "greedy"
	AlgorithmRandom  Algorithm = "random"
)

// ParseAlgorithm maps a string to an Algorithm. Unknown values fall back
// to the genetic strategy.
func ParseAlgorithm(s string) Algorithm {
	switch Algorithm(s) {
	case AlgorithmGreedy:
		return AlgorithmGreedy
	case AlgorithmRandom:
		return AlgorithmRandom
	default:
		return AlgorithmGenetic
	}
}
