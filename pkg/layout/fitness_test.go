package layout

import (
	"testing"

	"github.com/hexfoundry/planroom/pkg/geo"
	"github.com/hexfoundry/planroom/pkg/plan"
	"github.com/hexfoundry/planroom/pkg/zone"
)

func fitnessTestGenerator(floor plan.Floor, profile plan.Profile, zones zone.Set) *generator {
	return newTestGenerator(floor, profile, zones, 1)
}

func TestEvaluateFitnessEmptyLayout(t *testing.T) {
	g := fitnessTestGenerator(
		plan.Floor{Width: 100, Height: 100},
		singleBucketProfile(),
		zone.Set{},
	)
	if score := g.evaluateFitness(Layout{}); score != 0 {
		t.Errorf("expected empty layout to score 0, got %f", score)
	}
}

func TestEvaluateFitnessKnownLayout(t *testing.T) {
	g := fitnessTestGenerator(
		plan.Floor{Width: 100, Height: 100},
		singleBucketProfile(),
		zone.Set{},
	)

	// Two aligned 20-area units, no corridors. Term by term:
	//   utilization   40/10000 = 0.004
	//   corridor      1.0  (no corridor area)
	//   accessibility 0.0  (no corridors to connect)
	//   distribution  1.0  (both units in the only bucket)
	//   regularity    1.0  (the one pair shares y=0)
	// Weighted: 0.004*0.30 + 1*0.20 + 0 + 1*0.15 + 1*0.10 = 0.4512.
	l := Layout{Ilots: []Ilot{
		{ID: "1", Rect: geoRect(0, 0, 4, 5), Area: 20},
		{ID: "2", Rect: geoRect(20, 0, 4, 5), Area: 20},
	}}

	if score := g.evaluateFitness(l); !approxEqual(score, 0.4512, 1e-9) {
		t.Errorf("expected score 0.4512, got %f", score)
	}
}

func TestEvaluateFitnessClampedToOne(t *testing.T) {
	// Restricting most of the floor shrinks the available area to 10 while
	// the single unit declares area 100, driving the raw utilization term
	// to 10. The final score still may not exceed 1.
	g := fitnessTestGenerator(
		plan.Floor{Width: 10, Height: 10},
		singleBucketProfile(),
		zone.Set{Restricted: []geo.Rect{geo.NewRect(0, 0, 9, 10)}},
	)

	l := Layout{Ilots: []Ilot{
		{ID: "1", Rect: geoRect(0, 0, 10, 10), Area: 100},
	}}

	if score := g.evaluateFitness(l); score != 1.0 {
		t.Errorf("expected score clamped to 1.0, got %f", score)
	}
}

func TestSizeDistributionScoreMatchedDenominator(t *testing.T) {
	g := fitnessTestGenerator(
		plan.Floor{Width: 100, Height: 100},
		plan.Profile{
			CorridorWidth: 2,
			SizeDistribution: []plan.SizeBucket{
				{MinSize: 15, MaxSize: 25, Percentage: 50},
				{MinSize: 25, MaxSize: 35, Percentage: 50},
			},
		},
		zone.Set{},
	)

	// One unit per bucket plus one unmatched outlier. The outlier is
	// excluded from the denominator, so each bucket's actual share is
	// exactly its 50% target.
	ilots := []Ilot{
		{ID: "1", Area: 20},
		{ID: "2", Area: 30},
		{ID: "3", Area: 100},
	}

	if score := g.sizeDistributionScore(ilots); !approxEqual(score, 1.0, 1e-9) {
		t.Errorf("expected perfect distribution score, got %f", score)
	}
}

func TestSizeDistributionScoreNoUnitsMatched(t *testing.T) {
	g := fitnessTestGenerator(
		plan.Floor{Width: 100, Height: 100},
		singleBucketProfile(),
		zone.Set{},
	)

	// No unit falls in the bucket: actual share 0 against target 1 yields
	// max(0, 1-2) = 0 for the bucket.
	ilots := []Ilot{{ID: "1", Area: 100}}
	if score := g.sizeDistributionScore(ilots); score != 0 {
		t.Errorf("expected score 0 when nothing matches, got %f", score)
	}
}

func TestRegularityScore(t *testing.T) {
	cases := []struct {
		name  string
		ilots []Ilot
		want  float64
	}{
		{"no units", nil, 1.0},
		{"single unit", []Ilot{{Rect: geoRect(0, 0, 5, 5)}}, 1.0},
		{
			"aligned pair",
			[]Ilot{
				{Rect: geoRect(0, 0, 5, 5)},
				{Rect: geoRect(20, 0, 5, 5)},
			},
			1.0,
		},
		{
			"near-aligned within tolerance",
			[]Ilot{
				{Rect: geoRect(0, 0, 5, 5)},
				{Rect: geoRect(1.5, 20, 5, 5)},
			},
			1.0,
		},
		{
			"unaligned pair",
			[]Ilot{
				{Rect: geoRect(0, 0, 5, 5)},
				{Rect: geoRect(10, 10, 5, 5)},
			},
			0.0,
		},
		{
			"one of three pairs aligned",
			[]Ilot{
				{Rect: geoRect(0, 0, 5, 5)},
				{Rect: geoRect(20, 0, 5, 5)},
				{Rect: geoRect(10, 10, 5, 5)},
			},
			1.0 / 3.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := regularityScore(tc.ilots); !approxEqual(got, tc.want, 1e-9) {
				t.Errorf("expected %f, got %f", tc.want, got)
			}
		})
	}
}
