package layout

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hexfoundry/planroom/pkg/plan"
	"github.com/hexfoundry/planroom/pkg/zone"
)

// Options controls one generation run.
type Options struct {
	// Algorithm selects the placement strategy. Unknown values fall back
	// to the genetic search.
	Algorithm plan.Algorithm

	// Seed initializes the run's private random source. Zero means seed
	// from the wall clock; any other value makes the run reproducible.
	Seed int64

	// Logger receives progress output. Nil discards it.
	Logger *log.Logger
}

// generator holds the per-run state shared by every strategy. One generator
// serves exactly one Generate call; nothing survives between calls.
type generator struct {
	floor   plan.Floor
	profile plan.Profile
	zones   zone.Set
	rng     *rand.Rand
	logger  *log.Logger

	// onGeneration, when set, observes the best-ever score after each
	// completed generation of the genetic search.
	onGeneration func(gen int, best float64)
}

// Generate runs one layout optimization and returns the placed units,
// corridors, and quality metrics. It is the package's single entry point.
//
// The context is honored at generation boundaries of the genetic search:
// cancellation stops the evolution early and returns the best layout found
// so far rather than an error. Malformed geometry (non-positive floor
// dimensions or corridor width) is the only error condition; every other
// degenerate input degrades to a smaller or empty layout.
func Generate(ctx context.Context, floor plan.Floor, profile plan.Profile, zones zone.Set, opts Options) (*Result, error) {
	if err := floor.Validate(); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &generator{
		floor:   floor,
		profile: profile,
		zones:   zones,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
	}

	algorithm := opts.Algorithm
	switch algorithm {
	case plan.AlgorithmGreedy, plan.AlgorithmRandom:
	default:
		algorithm = plan.AlgorithmGenetic
	}

	start := time.Now()
	var (
		layout    Layout
		score     float64
		requested int
	)
	switch algorithm {
	case plan.AlgorithmGreedy:
		layout, requested = g.greedyPlacement()
		score = g.evaluateFitness(layout)
	case plan.AlgorithmRandom:
		layout, requested = g.createRandomLayout()
		score = g.evaluateFitness(layout)
	default:
		layout, score, requested = g.geneticSearch(ctx)
	}

	logger.Debug("generation finished",
		"algorithm", algorithm,
		"placed", len(layout.Ilots),
		"requested", requested,
		"score", score,
		"elapsed", time.Since(start).Round(time.Millisecond))

	return g.toResult(layout, score, requested, algorithm), nil
}

// availableArea is the floor area left after subtracting every
// placement-blocking zone, floored at zero.
func (g *generator) availableArea() float64 {
	available := g.floor.Area() - g.zones.BlockedArea()
	if available < 0 {
		return 0
	}
	return available
}

// toResult assembles the public result from a finished layout.
func (g *generator) toResult(l Layout, score float64, requested int, algorithm plan.Algorithm) *Result {
	utilization := 0.0
	if available := g.availableArea(); available > 0 {
		utilization = l.totalIlotArea() / available * 100
	}

	ilots := l.Ilots
	if ilots == nil {
		ilots = []Ilot{}
	}
	corridors := l.Corridors
	if corridors == nil {
		corridors = []Corridor{}
	}

	return &Result{
		ID:                    uuid.NewString(),
		Algorithm:             string(algorithm),
		Ilots:                 ilots,
		Corridors:             corridors,
		UtilizationPercentage: utilization,
		OptimizationScore:     score,
		RequestedUnits:        requested,
		PlacedUnits:           len(ilots),
		GeneratedAt:           time.Now().UTC(),
	}
}
