// Package export writes generated layouts to exchange formats: a PDF plan
// sheet, an XLSX unit schedule, and plain JSON for persistence.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/hexfoundry/planroom/pkg/analytics"
	"github.com/hexfoundry/planroom/pkg/geo"
	"github.com/hexfoundry/planroom/pkg/layout"
	"github.com/hexfoundry/planroom/pkg/plan"
	"github.com/hexfoundry/planroom/pkg/zone"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 24.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

type rgb struct{ r, g, b int }

var (
	colorFloor      = rgb{250, 250, 245}
	colorWall       = rgb{60, 60, 60}
	colorRestricted = rgb{173, 216, 230}
	colorEntrance   = rgb{244, 67, 54}
	colorIlot       = rgb{76, 175, 80}
	colorCorridor   = rgb{224, 224, 224}
)

// WritePDF renders the layout as a one-page plan sheet: the scaled floor
// with zones, corridors, and units, followed by a statistics block.
func WritePDF(path string, res *layout.Result, floor plan.Floor, zones zone.Set, stats *analytics.Stats) error {
	if err := floor.Validate(); err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Layout %s (%s, %.0f x %.0f)", res.ID, res.Algorithm, floor.Width, floor.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Fit the floor into the drawing area.
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/floor.Width, drawHeight/floor.Height)

	canvasW := floor.Width * scale
	canvasH := floor.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Floor background
	pdf.SetFillColor(colorFloor.r, colorFloor.g, colorFloor.b)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawRects := func(rects []geo.Rect, col rgb) {
		pdf.SetFillColor(col.r, col.g, col.b)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		for _, r := range rects {
			pdf.Rect(offsetX+r.X*scale, offsetY+r.Y*scale, r.Width*scale, r.Height*scale, "FD")
		}
	}
	drawRects(zones.Restricted, colorRestricted)
	drawRects(zones.Entrances, colorEntrance)
	drawRects(zones.Walls, colorWall)

	// Corridors under the units
	pdf.SetFillColor(colorCorridor.r, colorCorridor.g, colorCorridor.b)
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)
	for _, c := range res.Corridors {
		pdf.Rect(offsetX+c.X*scale, offsetY+c.Y*scale, c.Width*scale, c.Height*scale, "FD")
	}

	pdf.SetFont("Helvetica", "", 6)
	for _, il := range res.Ilots {
		px := offsetX + il.X*scale
		py := offsetY + il.Y*scale
		pw := il.Width * scale
		ph := il.Height * scale

		pdf.SetFillColor(colorIlot.r, colorIlot.g, colorIlot.b)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 6 && ph > 3 {
			pdf.SetTextColor(255, 255, 255)
			pdf.SetXY(px, py+ph/2-1.5)
			pdf.CellFormat(pw, 3, il.ID, "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)

	renderStatsBlock(pdf, res, stats, offsetY+canvasH)

	return pdf.OutputFileAndClose(path)
}

func renderStatsBlock(pdf *fpdf.Fpdf, res *layout.Result, stats *analytics.Stats, top float64) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, top+4)

	line := fmt.Sprintf("Units: %d/%d placed | Utilization: %.1f%% | Score: %.3f | Corridors: %d",
		res.PlacedUnits, res.RequestedUnits, res.UtilizationPercentage,
		res.OptimizationScore, len(res.Corridors))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 2, "L", false, 0, "")

	if stats == nil {
		return
	}
	for _, b := range stats.Buckets {
		bucket := fmt.Sprintf("  %.0f-%.0f: target %.0f%%, placed %d (%.1f%%)",
			b.MinSize, b.MaxSize, b.TargetPercentage, b.Placed, b.ActualPercentage)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, bucket, "", 2, "L", false, 0, "")
	}
}
