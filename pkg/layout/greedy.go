package layout

import (
	"strconv"

	"github.com/hexfoundry/planroom/pkg/geo"
)

const (
	// greedyGridStep is the cell size of the placement sweep.
	greedyGridStep = 30

	// greedyMaxUnits stops the sweep once this many units are placed.
	greedyMaxUnits = 50

	greedyMinSize = 15.0
	greedyMaxSize = 25.0
)

// greedyPlacement sweeps a fixed grid over the floor in row-major order and
// attempts one randomly sized placement per cell. It ignores the profile's
// size distribution; every unit is drawn from the [15,25] band. Returns the
// layout and the number of candidate cells considered.
func (g *generator) greedyPlacement() (Layout, int) {
	var ilots []Ilot

	requested := 0
	for y := 0; y < int(g.floor.Height); y += greedyGridStep {
		if len(ilots) >= greedyMaxUnits {
			break
		}
		for x := 0; x < int(g.floor.Width); x += greedyGridStep {
			if len(ilots) >= greedyMaxUnits {
				break
			}
			requested++

			width := greedyMinSize + g.rng.Float64()*(greedyMaxSize-greedyMinSize)
			height := greedyMinSize + g.rng.Float64()*(greedyMaxSize-greedyMinSize)
			rect := geo.NewRect(float64(x), float64(y), width, height)

			if g.isValidPlacement(rect, ilots) {
				ilots = append(ilots, Ilot{
					ID:       strconv.Itoa(len(ilots) + 1),
					Rect:     rect,
					Area:     width * height,
					RoomType: "standard",
					MinSize:  greedyMinSize,
					MaxSize:  greedyMaxSize,
				})
			}
		}
	}

	return Layout{
		Ilots:     ilots,
		Corridors: g.generateCorridors(ilots),
	}, requested
}
