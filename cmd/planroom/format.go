package main

import (
	"fmt"

	"github.com/hexfoundry/planroom/pkg/analytics"
	"github.com/hexfoundry/planroom/pkg/ingest"
	"github.com/hexfoundry/planroom/pkg/layout"
	"github.com/hexfoundry/planroom/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResultSummary(res *layout.Result, stats *analytics.Stats) {
	fmt.Printf("Layout %s (%s)\n", res.ID, res.Algorithm)
	fmt.Printf("  Units:       %d placed / %d requested\n", res.PlacedUnits, res.RequestedUnits)
	fmt.Printf("  Utilization: %.1f%%\n", res.UtilizationPercentage)
	fmt.Printf("  Score:       %.3f\n", res.OptimizationScore)
	fmt.Printf("  Corridors:   %d\n", len(res.Corridors))

	if stats == nil || len(stats.Buckets) == 0 {
		return
	}
	fmt.Println("  Size mix:")
	for _, b := range stats.Buckets {
		fmt.Printf("    %5.0f-%-5.0f target %3.0f%%  placed %3d (%.1f%%)\n",
			b.MinSize, b.MaxSize, b.TargetPercentage, b.Placed, b.ActualPercentage)
	}
}

func printDrawingSummary(dr *ingest.Drawing) {
	fmt.Printf("Floor: %.1f x %.1f (origin offset %.1f, %.1f)\n",
		dr.Floor.Width, dr.Floor.Height, dr.Origin.X, dr.Origin.Y)
	fmt.Printf("Entities: %d (%d lines, %d polylines, %d circles)\n",
		dr.Entities, dr.Lines, dr.Polylines, dr.Circles)
	fmt.Printf("Walls detected: %d\n", len(dr.Walls))
	fmt.Printf("Rooms detected: %d\n", len(dr.Rooms))
	for _, w := range dr.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}
