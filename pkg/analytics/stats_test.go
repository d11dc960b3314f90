package analytics

import (
	"math"
	"testing"

	"github.com/hexfoundry/planroom/pkg/geo"
	"github.com/hexfoundry/planroom/pkg/layout"
	"github.com/hexfoundry/planroom/pkg/plan"
	"github.com/hexfoundry/planroom/pkg/zone"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func testProfile() plan.Profile {
	return plan.Profile{
		CorridorWidth: 2,
		SizeDistribution: []plan.SizeBucket{
			{MinSize: 15, MaxSize: 25, Percentage: 60},
			{MinSize: 25, MaxSize: 35, Percentage: 40},
		},
	}
}

func testResult() *layout.Result {
	return &layout.Result{
		Algorithm: "random",
		Ilots: []layout.Ilot{
			{ID: "1", Rect: geo.NewRect(0, 0, 4, 5), Area: 20},
			{ID: "2", Rect: geo.NewRect(10, 0, 4, 6), Area: 24},
			{ID: "3", Rect: geo.NewRect(20, 0, 5, 6), Area: 30},
			{ID: "4", Rect: geo.NewRect(30, 0, 10, 10), Area: 100},
		},
		Corridors: []layout.Corridor{
			{
				ID:             "h_corridor_1",
				Rect:           geo.NewRect(0, 12, 50, 2),
				CorridorWidth:  2,
				ConnectedIlots: []string{"1", "2"},
			},
		},
		UtilizationPercentage: 8.7,
		OptimizationScore:     0.42,
		RequestedUnits:        100,
		PlacedUnits:           4,
	}
}

func TestSummarizeBucketBreakdown(t *testing.T) {
	floor := plan.Floor{Width: 50, Height: 40}
	stats, _ := Summarize(testResult(), floor, testProfile(), zone.Set{})

	if len(stats.Buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(stats.Buckets))
	}

	// Available area 2000 gives a 100-unit budget: 60 and 40 requested.
	if stats.Buckets[0].Requested != 60 || stats.Buckets[1].Requested != 40 {
		t.Errorf("expected requested 60/40, got %d/%d",
			stats.Buckets[0].Requested, stats.Buckets[1].Requested)
	}
	if stats.Buckets[0].Placed != 2 || stats.Buckets[1].Placed != 1 {
		t.Errorf("expected placed 2/1, got %d/%d",
			stats.Buckets[0].Placed, stats.Buckets[1].Placed)
	}
	if !approxEqual(stats.Buckets[0].AverageArea, 22, 1e-9) {
		t.Errorf("expected average area 22 in first bucket, got %f", stats.Buckets[0].AverageArea)
	}
	if !approxEqual(stats.Buckets[0].ActualPercentage, 50, 1e-9) {
		t.Errorf("expected 50%% actual share in first bucket, got %f", stats.Buckets[0].ActualPercentage)
	}
	if stats.UnmatchedUnits != 1 {
		t.Errorf("expected 1 unmatched unit, got %d", stats.UnmatchedUnits)
	}
}

func TestSummarizeCirculationAndAreas(t *testing.T) {
	floor := plan.Floor{Width: 50, Height: 40}
	zones := zone.Set{Restricted: []geo.Rect{geo.NewRect(0, 30, 50, 10)}}

	stats, _ := Summarize(testResult(), floor, testProfile(), zones)

	if !approxEqual(stats.FloorArea, 2000, 1e-9) {
		t.Errorf("expected floor area 2000, got %f", stats.FloorArea)
	}
	if !approxEqual(stats.BlockedArea, 500, 1e-9) {
		t.Errorf("expected blocked area 500, got %f", stats.BlockedArea)
	}
	if !approxEqual(stats.AvailableArea, 1500, 1e-9) {
		t.Errorf("expected available area 1500, got %f", stats.AvailableArea)
	}
	if !approxEqual(stats.TotalIlotArea, 174, 1e-9) {
		t.Errorf("expected total unit area 174, got %f", stats.TotalIlotArea)
	}
	if stats.CorridorCount != 1 || !approxEqual(stats.TotalCorridorArea, 100, 1e-9) {
		t.Errorf("expected 1 corridor of area 100, got %d of %f",
			stats.CorridorCount, stats.TotalCorridorArea)
	}
	if stats.ConnectedUnits != 2 || !approxEqual(stats.AccessibilityRate, 0.5, 1e-9) {
		t.Errorf("expected 2 connected units at rate 0.5, got %d at %f",
			stats.ConnectedUnits, stats.AccessibilityRate)
	}
}

func TestSummarizeFlagsShortfalls(t *testing.T) {
	floor := plan.Floor{Width: 50, Height: 40}
	_, report := Summarize(testResult(), floor, testProfile(), zone.Set{})

	// Placement rate 4/100 and accessibility 0.5 (at the threshold, not
	// below it): exactly one warning plus the unmatched-unit note.
	if !report.Valid {
		t.Error("analytical findings must not invalidate the report")
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %+v", len(report.Warnings), report.Warnings)
	}
	if report.Warnings[0].Path != "stats.placement_rate" {
		t.Errorf("expected a placement shortfall warning, got %q", report.Warnings[0].Path)
	}
	if len(report.Info) != 1 {
		t.Errorf("expected 1 info note for the unmatched unit, got %d", len(report.Info))
	}
}

func TestSummarizeEmptyResult(t *testing.T) {
	floor := plan.Floor{Width: 50, Height: 40}
	res := &layout.Result{Ilots: []layout.Ilot{}, Corridors: []layout.Corridor{}}

	stats, report := Summarize(res, floor, testProfile(), zone.Set{})

	if stats.PlacementRate != 0 || stats.AccessibilityRate != 0 {
		t.Errorf("expected zero rates for an empty result, got %f and %f",
			stats.PlacementRate, stats.AccessibilityRate)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("expected no warnings when nothing was requested, got %d", len(report.Warnings))
	}
}
