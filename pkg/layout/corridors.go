package layout

import (
	"fmt"
	"sort"

	"github.com/hexfoundry/planroom/pkg/geo"
)

const (
	// corridorGapFactor is the minimum gap size, as a multiple of the
	// corridor width, that qualifies for a corridor.
	corridorGapFactor = 1.5

	// maxCorridorsPerAxis caps how many corridors each sweep may emit.
	maxCorridorsPerAxis = 3

	// connectivityBuffer expands a corridor when testing which units it
	// touches.
	connectivityBuffer = 2.0
)

// generateCorridors derives circulation strips from the gaps between placed
// units. Each axis is swept independently: horizontal corridors span the
// full floor width at a derived y offset, vertical corridors the full
// height at a derived x offset.
func (g *generator) generateCorridors(ilots []Ilot) []Corridor {
	var corridors []Corridor
	cw := g.profile.CorridorWidth

	corridorID := 1
	for _, y := range g.corridorOffsets(ilots, false) {
		rect := geo.NewRect(0, y, g.floor.Width, cw)
		corridors = append(corridors, Corridor{
			ID:             fmt.Sprintf("h_corridor_%d", corridorID),
			Rect:           rect,
			CorridorWidth:  cw,
			ConnectedIlots: connectedIlots(rect, ilots),
		})
		corridorID++
	}
	for _, x := range g.corridorOffsets(ilots, true) {
		rect := geo.NewRect(x, 0, cw, g.floor.Height)
		corridors = append(corridors, Corridor{
			ID:             fmt.Sprintf("v_corridor_%d", corridorID),
			Rect:           rect,
			CorridorWidth:  cw,
			ConnectedIlots: connectedIlots(rect, ilots),
		})
		corridorID++
	}

	return corridors
}

// corridorOffsets scans the sorted unit boundary coordinates on one axis
// and returns the offsets of the first qualifying gaps: a gap qualifies
// when it is at least corridorGapFactor times the corridor width, and the
// corridor is centered inside it.
func (g *generator) corridorOffsets(ilots []Ilot, vertical bool) []float64 {
	cw := g.profile.CorridorWidth

	coords := make([]float64, 0, 2*len(ilots))
	for _, il := range ilots {
		if vertical {
			coords = append(coords, il.X, il.X+il.Width)
		} else {
			coords = append(coords, il.Y, il.Y+il.Height)
		}
	}
	sort.Float64s(coords)

	var offsets []float64
	for i := 0; i+1 < len(coords); i++ {
		gap := coords[i+1] - coords[i]
		if gap >= cw*corridorGapFactor {
			offsets = append(offsets, coords[i]+gap/2-cw/2)
			if len(offsets) == maxCorridorsPerAxis {
				break
			}
		}
	}
	return offsets
}

// connectedIlots returns the ids of every unit whose footprint touches the
// corridor expanded by the connectivity buffer.
func connectedIlots(corridor geo.Rect, ilots []Ilot) []string {
	expanded := corridor.Expand(connectivityBuffer)

	var connected []string
	for _, il := range ilots {
		if expanded.Intersects(il.Rect) {
			connected = append(connected, il.ID)
		}
	}
	return connected
}
