package layout

import (
	"fmt"

	"github.com/hexfoundry/planroom/pkg/plan"
	"github.com/hexfoundry/planroom/pkg/validation"
	"github.com/hexfoundry/planroom/pkg/zone"
)

// Verify performs structural validation on a generated result. It checks
// unit id uniqueness, floor-bounds enclosure, the pairwise no-overlap
// invariant, zone clearance, and corridor connectivity references.
func Verify(r *Result, floor plan.Floor, zones zone.Set) *validation.Report {
	report := validation.NewReport()

	if r == nil {
		report.AddError(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "result is nil",
		})
		return report
	}

	verifyIlotIDs(r, report)
	verifyBounds(r, floor, report)
	verifyNoOverlap(r, report)
	verifyZoneClearance(r, zones, report)
	verifyCorridorReferences(r, report)

	return report
}

func verifyIlotIDs(r *Result, report *validation.Report) {
	seen := make(map[string]int, len(r.Ilots))
	for i, il := range r.Ilots {
		if il.ID == "" {
			report.AddError(validation.Result{
				Level:    validation.LevelSpatial,
				Message:  fmt.Sprintf("ilot at index %d has empty id", i),
				Path:     fmt.Sprintf("ilots[%d].id", i),
				Expected: "non-empty string",
			})
			continue
		}
		if prev, exists := seen[il.ID]; exists {
			report.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("duplicate ilot id %q at indices %d and %d", il.ID, prev, i),
				Path:        fmt.Sprintf("ilots[%d].id", i),
				ActualValue: il.ID,
			})
		}
		seen[il.ID] = i
	}
}

func verifyBounds(r *Result, floor plan.Floor, report *validation.Report) {
	for _, il := range r.Ilots {
		if il.X < 0 || il.Y < 0 ||
			il.X+il.Width > floor.Width || il.Y+il.Height > floor.Height {
			report.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("ilot %q extends outside floor bounds %gx%g", il.ID, floor.Width, floor.Height),
				Path:        "ilots",
				ActualValue: fmt.Sprintf("(%.2f,%.2f) %.2fx%.2f", il.X, il.Y, il.Width, il.Height),
			})
		}
	}
}

func verifyNoOverlap(r *Result, report *validation.Report) {
	for i := 0; i < len(r.Ilots); i++ {
		for j := i + 1; j < len(r.Ilots); j++ {
			if r.Ilots[i].Rect.Intersects(r.Ilots[j].Rect) {
				report.AddError(validation.Result{
					Level:   validation.LevelSpatial,
					Message: fmt.Sprintf("ilots %q and %q overlap", r.Ilots[i].ID, r.Ilots[j].ID),
					Path:    "ilots",
				})
			}
		}
	}
}

func verifyZoneClearance(r *Result, zones zone.Set, report *validation.Report) {
	for _, il := range r.Ilots {
		for _, restricted := range zones.Restricted {
			if il.Rect.Intersects(restricted) {
				report.AddError(validation.Result{
					Level:   validation.LevelSpatial,
					Message: fmt.Sprintf("ilot %q intersects a restricted zone", il.ID),
					Path:    "ilots",
				})
			}
		}
		for _, entrance := range zones.Entrances {
			if il.Rect.Intersects(entrance) {
				report.AddError(validation.Result{
					Level:   validation.LevelSpatial,
					Message: fmt.Sprintf("ilot %q intersects an entrance zone", il.ID),
					Path:    "ilots",
				})
			}
		}
	}
}

func verifyCorridorReferences(r *Result, report *validation.Report) {
	ids := make(map[string]bool, len(r.Ilots))
	for _, il := range r.Ilots {
		ids[il.ID] = true
	}

	for _, c := range r.Corridors {
		for _, id := range c.ConnectedIlots {
			if !ids[id] {
				report.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("corridor %q references non-existent ilot %q", c.ID, id),
					Path:        "corridors",
					ActualValue: id,
					Expected:    "existing ilot id",
				})
			}
		}
	}

	if len(r.Ilots) > 0 && len(r.Corridors) == 0 {
		report.AddInfo(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "layout has units but no corridors (no qualifying gaps)",
		})
	}
}
