package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hexfoundry/planroom/pkg/analytics"
	"github.com/hexfoundry/planroom/pkg/layout"
)

const (
	sheetUnits     = "Units"
	sheetCorridors = "Corridors"
	sheetSummary   = "Summary"
)

// WriteXLSX writes the unit schedule: one row per placed unit, one row per
// corridor, and a summary sheet with the per-bucket adherence figures.
func WriteXLSX(path string, res *layout.Result, stats *analytics.Stats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeUnitsSheet(f, res); err != nil {
		return err
	}
	if err := writeCorridorsSheet(f, res); err != nil {
		return err
	}
	if err := writeSummarySheet(f, res, stats); err != nil {
		return err
	}

	// Replace the default sheet with ours.
	if idx, err := f.GetSheetIndex(sheetUnits); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	return f.SaveAs(path)
}

func writeUnitsSheet(f *excelize.File, res *layout.Result) error {
	if _, err := f.NewSheet(sheetUnits); err != nil {
		return err
	}

	headers := []string{"ID", "X", "Y", "Width", "Height", "Area", "Room Type"}
	if err := writeRow(f, sheetUnits, 1, headers); err != nil {
		return err
	}

	for i, il := range res.Ilots {
		row := []any{il.ID, il.X, il.Y, il.Width, il.Height, il.Area, il.RoomType}
		if err := writeRowValues(f, sheetUnits, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCorridorsSheet(f *excelize.File, res *layout.Result) error {
	if _, err := f.NewSheet(sheetCorridors); err != nil {
		return err
	}

	headers := []string{"ID", "X", "Y", "Width", "Height", "Connected Units"}
	if err := writeRow(f, sheetCorridors, 1, headers); err != nil {
		return err
	}

	for i, c := range res.Corridors {
		row := []any{c.ID, c.X, c.Y, c.Width, c.Height, len(c.ConnectedIlots)}
		if err := writeRowValues(f, sheetCorridors, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, res *layout.Result, stats *analytics.Stats) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}

	rows := [][]any{
		{"Layout ID", res.ID},
		{"Algorithm", res.Algorithm},
		{"Requested Units", res.RequestedUnits},
		{"Placed Units", res.PlacedUnits},
		{"Utilization %", res.UtilizationPercentage},
		{"Optimization Score", res.OptimizationScore},
	}
	for i, row := range rows {
		if err := writeRowValues(f, sheetSummary, i+1, row); err != nil {
			return err
		}
	}

	if stats == nil {
		return nil
	}

	base := len(rows) + 2
	if err := writeRow(f, sheetSummary, base, []string{"Bucket", "Target %", "Requested", "Placed", "Actual %"}); err != nil {
		return err
	}
	for i, b := range stats.Buckets {
		row := []any{
			fmt.Sprintf("%.0f-%.0f", b.MinSize, b.MaxSize),
			b.TargetPercentage, b.Requested, b.Placed, b.ActualPercentage,
		}
		if err := writeRowValues(f, sheetSummary, base+1+i, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return writeRowValues(f, sheet, row, vals)
}

func writeRowValues(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
