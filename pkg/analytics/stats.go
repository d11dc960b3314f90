// Package analytics derives summary statistics from a generated layout:
// placement rates against the profile's targets, space and circulation
// breakdowns, and accessibility figures.
package analytics

import (
	"github.com/hexfoundry/planroom/pkg/layout"
	"github.com/hexfoundry/planroom/pkg/plan"
	"github.com/hexfoundry/planroom/pkg/validation"
	"github.com/hexfoundry/planroom/pkg/zone"
)

const (
	// areaPerUnit and maxUnits mirror the generator's unit budget so the
	// per-bucket targets reported here match what the run aimed for.
	areaPerUnit = 20.0
	maxUnits    = 100
)

// BucketStats compares one size band's target against what was placed.
type BucketStats struct {
	MinSize          float64 `json:"min_size"`
	MaxSize          float64 `json:"max_size"`
	TargetPercentage float64 `json:"target_percentage"`
	Requested        int     `json:"requested"`
	Placed           int     `json:"placed"`
	ActualPercentage float64 `json:"actual_percentage"`
	AverageArea      float64 `json:"average_area"`
}

// Stats holds the computed summary for one generation run.
type Stats struct {
	TotalRequested    int     `json:"total_requested"`
	TotalPlaced       int     `json:"total_placed"`
	PlacementRate     float64 `json:"placement_rate"`
	UtilizationPct    float64 `json:"utilization_percentage"`
	OptimizationScore float64 `json:"optimization_score"`

	FloorArea     float64 `json:"floor_area"`
	BlockedArea   float64 `json:"blocked_area"`
	AvailableArea float64 `json:"available_area"`
	TotalIlotArea float64 `json:"total_ilot_area"`

	CorridorCount     int     `json:"corridor_count"`
	TotalCorridorArea float64 `json:"total_corridor_area"`
	ConnectedUnits    int     `json:"connected_units"`
	AccessibilityRate float64 `json:"accessibility_rate"`

	Buckets        []BucketStats `json:"buckets"`
	UnmatchedUnits int           `json:"unmatched_units"`
}

// Summarize computes statistics for a finished result and flags analytical
// concerns (placement shortfalls, unreachable units, off-target size mix)
// in the returned report.
func Summarize(res *layout.Result, floor plan.Floor, profile plan.Profile, zones zone.Set) (*Stats, *validation.Report) {
	report := validation.NewReport()

	// 1. Area breakdown
	blocked := zones.BlockedArea()
	available := floor.Area() - blocked
	if available < 0 {
		available = 0
	}

	totalIlotArea := 0.0
	for _, il := range res.Ilots {
		totalIlotArea += il.Area
	}

	// 2. Per-bucket placement against target
	buckets, unmatched := resolveBuckets(res.Ilots, profile, available)

	// 3. Circulation
	totalCorridorArea := 0.0
	reachable := make(map[string]struct{})
	for _, c := range res.Corridors {
		totalCorridorArea += c.Rect.Area()
		for _, id := range c.ConnectedIlots {
			reachable[id] = struct{}{}
		}
	}

	accessibility := 0.0
	if len(res.Ilots) > 0 {
		accessibility = float64(len(reachable)) / float64(len(res.Ilots))
	}

	placementRate := 0.0
	if res.RequestedUnits > 0 {
		placementRate = float64(res.PlacedUnits) / float64(res.RequestedUnits)
	}

	stats := &Stats{
		TotalRequested:    res.RequestedUnits,
		TotalPlaced:       res.PlacedUnits,
		PlacementRate:     placementRate,
		UtilizationPct:    res.UtilizationPercentage,
		OptimizationScore: res.OptimizationScore,
		FloorArea:         floor.Area(),
		BlockedArea:       blocked,
		AvailableArea:     available,
		TotalIlotArea:     totalIlotArea,
		CorridorCount:     len(res.Corridors),
		TotalCorridorArea: totalCorridorArea,
		ConnectedUnits:    len(reachable),
		AccessibilityRate: accessibility,
		Buckets:           buckets,
		UnmatchedUnits:    unmatched,
	}

	// 4. Analytical validation
	validateStats(stats, report)

	return stats, report
}

// resolveBuckets re-derives the per-bucket targets from the available area
// and tallies the placed units into their bands. A unit counts toward the
// first band whose [min,max] range contains its area; units matching no band
// are reported separately.
func resolveBuckets(ilots []layout.Ilot, profile plan.Profile, available float64) ([]BucketStats, int) {
	budget := int(available / areaPerUnit)
	if budget > maxUnits {
		budget = maxUnits
	}

	buckets := make([]BucketStats, len(profile.SizeDistribution))
	areaSums := make([]float64, len(profile.SizeDistribution))
	for i, b := range profile.SizeDistribution {
		buckets[i] = BucketStats{
			MinSize:          b.MinSize,
			MaxSize:          b.MaxSize,
			TargetPercentage: b.Percentage,
			Requested:        int(float64(budget) * b.Percentage / 100),
		}
	}

	unmatched := 0
	for _, il := range ilots {
		placed := false
		for i, b := range profile.SizeDistribution {
			if b.MinSize <= il.Area && il.Area <= b.MaxSize {
				buckets[i].Placed++
				areaSums[i] += il.Area
				placed = true
				break
			}
		}
		if !placed {
			unmatched++
		}
	}

	for i := range buckets {
		if buckets[i].Placed > 0 {
			buckets[i].ActualPercentage = float64(buckets[i].Placed) / float64(len(ilots)) * 100
			buckets[i].AverageArea = areaSums[i] / float64(buckets[i].Placed)
		}
	}

	return buckets, unmatched
}
