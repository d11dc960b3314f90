package analytics

import (
	"fmt"

	"github.com/hexfoundry/planroom/pkg/validation"
)

const (
	// placementWarningRate is the placed/requested ratio below which the
	// run is flagged as a shortfall.
	placementWarningRate = 0.5

	// accessWarningRate is the fraction of corridor-reachable units below
	// which circulation is flagged.
	accessWarningRate = 0.5
)

// validateStats flags analytical concerns in the summary. None of these are
// hard errors: a sparse or poorly connected layout is still a layout.
func validateStats(s *Stats, report *validation.Report) {
	if s.TotalRequested > 0 && s.PlacementRate < placementWarningRate {
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("placed %d of %d requested units", s.TotalPlaced, s.TotalRequested),
			Path:        "stats.placement_rate",
			ActualValue: s.PlacementRate,
			Expected:    fmt.Sprintf(">= %.0f%% of requested units placed", placementWarningRate*100),
		})
	}

	if s.TotalPlaced > 0 && s.AccessibilityRate < accessWarningRate {
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("%d of %d units have no corridor access", s.TotalPlaced-s.ConnectedUnits, s.TotalPlaced),
			Path:        "stats.accessibility_rate",
			ActualValue: s.AccessibilityRate,
		})
	}

	if s.UnmatchedUnits > 0 {
		report.AddInfo(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("%d units fall outside every profile size band", s.UnmatchedUnits),
			Path:        "stats.unmatched_units",
			ActualValue: s.UnmatchedUnits,
		})
	}

	if s.AvailableArea == 0 {
		report.AddWarning(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "zones block the entire floor; no area available for placement",
			Path:    "stats.available_area",
		})
	}
}
