package layout

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/hexfoundry/planroom/pkg/plan"
	"github.com/hexfoundry/planroom/pkg/zone"
)

func newTestGenerator(floor plan.Floor, profile plan.Profile, zones zone.Set, seed int64) *generator {
	return &generator{
		floor:   floor,
		profile: profile,
		zones:   zones,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  log.New(io.Discard),
	}
}

func singleBucketProfile() plan.Profile {
	return plan.Profile{
		CorridorWidth: 1.5,
		SizeDistribution: []plan.SizeBucket{
			{MinSize: 15, MaxSize: 25, Percentage: 100},
		},
	}
}

func restrictedZone(x, y, w, h float64) zone.Annotation {
	return zone.Annotation{
		Kind: zone.KindRestricted,
		Coordinates: []zone.Coord{
			{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h},
		},
	}
}

func TestGenerateRandomOnOpenFloor(t *testing.T) {
	// Scenario: 100x100 floor, no zones, one [15,25] bucket at 100%.
	floor := plan.Floor{Width: 100, Height: 100}
	res, err := Generate(context.Background(), floor, singleBucketProfile(), zone.Set{}, Options{
		Algorithm: plan.AlgorithmRandom,
		Seed:      7,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(res.Ilots) < 1 || len(res.Ilots) > 100 {
		t.Errorf("expected between 1 and 100 units, got %d", len(res.Ilots))
	}
	if res.UtilizationPercentage <= 0 || res.UtilizationPercentage > 100 {
		t.Errorf("expected utilization in (0,100], got %f", res.UtilizationPercentage)
	}
	if res.OptimizationScore < 0 || res.OptimizationScore > 1 {
		t.Errorf("expected score in [0,1], got %f", res.OptimizationScore)
	}

	report := Verify(res, floor, zone.Set{})
	if !report.Valid {
		t.Errorf("expected valid layout, got: %s", report.Summary)
	}
}

func TestGenerateRespectsRestrictedZone(t *testing.T) {
	// Scenario: the bottom half [0,0]-[50,25] is restricted; no unit may
	// reach below y=25.
	floor := plan.Floor{Width: 50, Height: 50}
	zones := zone.Classify([]zone.Annotation{restrictedZone(0, 0, 50, 25)})

	res, err := Generate(context.Background(), floor, singleBucketProfile(), zones, Options{
		Algorithm: plan.AlgorithmRandom,
		Seed:      11,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, il := range res.Ilots {
		if il.Y < 25 {
			t.Errorf("ilot %q at y=%f intrudes into the restricted half", il.ID, il.Y)
		}
	}

	report := Verify(res, floor, zones)
	if !report.Valid {
		t.Errorf("expected valid layout, got: %s", report.Summary)
	}
}

func TestGenerateOverfullPercentages(t *testing.T) {
	// Scenario: bucket percentages summing to 150 must not error; the
	// engine overproduces the stated per-bucket counts.
	floor := plan.Floor{Width: 100, Height: 100}
	profile := plan.Profile{
		CorridorWidth: 1.5,
		SizeDistribution: []plan.SizeBucket{
			{MinSize: 15, MaxSize: 25, Percentage: 100},
			{MinSize: 25, MaxSize: 35, Percentage: 50},
		},
	}

	res, err := Generate(context.Background(), floor, profile, zone.Set{}, Options{
		Algorithm: plan.AlgorithmRandom,
		Seed:      3,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Budget is min(100, 10000/20) = 100 units; 100% + 50% of it.
	if res.RequestedUnits != 150 {
		t.Errorf("expected 150 requested units, got %d", res.RequestedUnits)
	}
	if res.PlacedUnits != len(res.Ilots) {
		t.Errorf("placed count %d disagrees with ilot list length %d", res.PlacedUnits, len(res.Ilots))
	}
}

func TestGenerateGreedyGridSweep(t *testing.T) {
	// Scenario: 90x90 floor sweeps a 30-unit grid: 3x3 = 9 candidate cells.
	floor := plan.Floor{Width: 90, Height: 90}
	res, err := Generate(context.Background(), floor, singleBucketProfile(), zone.Set{}, Options{
		Algorithm: plan.AlgorithmGreedy,
		Seed:      5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if res.RequestedUnits != 9 {
		t.Errorf("expected 9 candidate cells, got %d", res.RequestedUnits)
	}
	if len(res.Ilots) > 9 {
		t.Errorf("expected at most 9 units, got %d", len(res.Ilots))
	}
	if len(res.Ilots) == 0 {
		t.Error("expected at least one unit on an open floor")
	}

	report := Verify(res, floor, zone.Set{})
	if !report.Valid {
		t.Errorf("expected valid layout, got: %s", report.Summary)
	}
}

func TestGenerateEmptyDistribution(t *testing.T) {
	// Scenario: an empty bucket list yields an empty layout scored 0,
	// never an error.
	floor := plan.Floor{Width: 100, Height: 100}
	profile := plan.Profile{CorridorWidth: 2}

	for _, alg := range []plan.Algorithm{plan.AlgorithmRandom, plan.AlgorithmGenetic} {
		res, err := Generate(context.Background(), floor, profile, zone.Set{}, Options{
			Algorithm: alg,
			Seed:      1,
		})
		if err != nil {
			t.Fatalf("Generate(%s): %v", alg, err)
		}
		if len(res.Ilots) != 0 {
			t.Errorf("%s: expected no units, got %d", alg, len(res.Ilots))
		}
		if res.OptimizationScore != 0 {
			t.Errorf("%s: expected score 0, got %f", alg, res.OptimizationScore)
		}
		if res.UtilizationPercentage != 0 {
			t.Errorf("%s: expected utilization 0, got %f", alg, res.UtilizationPercentage)
		}
	}
}

func TestGenerateInvalidInputs(t *testing.T) {
	profile := singleBucketProfile()

	_, err := Generate(context.Background(), plan.Floor{Width: -10, Height: 50}, profile, zone.Set{}, Options{})
	if !errors.Is(err, plan.ErrInvalidFloor) {
		t.Errorf("expected ErrInvalidFloor, got %v", err)
	}

	bad := plan.Profile{CorridorWidth: 0, SizeDistribution: profile.SizeDistribution}
	_, err = Generate(context.Background(), plan.Floor{Width: 50, Height: 50}, bad, zone.Set{}, Options{})
	if !errors.Is(err, plan.ErrInvalidCorridorWidth) {
		t.Errorf("expected ErrInvalidCorridorWidth, got %v", err)
	}
}

func TestGenerateUnknownAlgorithmFallsBackToGenetic(t *testing.T) {
	floor := plan.Floor{Width: 50, Height: 50}
	profile := plan.Profile{CorridorWidth: 2} // empty distribution keeps the run cheap

	res, err := Generate(context.Background(), floor, profile, zone.Set{}, Options{
		Algorithm: plan.Algorithm("annealed"),
		Seed:      1,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Algorithm != string(plan.AlgorithmGenetic) {
		t.Errorf("expected fallback to genetic, got %q", res.Algorithm)
	}
}

func TestGenerateSeededRunsAreReproducible(t *testing.T) {
	floor := plan.Floor{Width: 80, Height: 60}
	zones := zone.Classify([]zone.Annotation{restrictedZone(0, 0, 20, 20)})

	first, err := Generate(context.Background(), floor, singleBucketProfile(), zones, Options{
		Algorithm: plan.AlgorithmRandom,
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := Generate(context.Background(), floor, singleBucketProfile(), zones, Options{
		Algorithm: plan.AlgorithmRandom,
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !reflect.DeepEqual(first.Ilots, second.Ilots) {
		t.Error("expected identical unit placement for identical seeds")
	}
	if !reflect.DeepEqual(first.Corridors, second.Corridors) {
		t.Error("expected identical corridors for identical seeds")
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	floor := plan.Floor{Width: 60, Height: 60}
	res, err := Generate(ctx, floor, singleBucketProfile(), zone.Set{}, Options{
		Algorithm: plan.AlgorithmGenetic,
		Seed:      9,
	})
	if err != nil {
		t.Fatalf("expected cancellation to degrade, not fail: %v", err)
	}
	// No generation completed, so the best-ever layout is the empty one.
	if res.OptimizationScore != 0 {
		t.Errorf("expected score 0 after immediate cancellation, got %f", res.OptimizationScore)
	}
}
