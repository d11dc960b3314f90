package layout

import (
	"math"
	"strconv"

	"github.com/hexfoundry/planroom/pkg/geo"
)

const (
	// maxPlacementAttempts bounds the retry loop for a single unit. A unit
	// that cannot be placed within this budget is dropped, not an error.
	maxPlacementAttempts = 100

	// areaPerUnit sizes the target unit count from the available area.
	areaPerUnit = 20.0

	// maxUnits caps the target unit count regardless of floor size.
	maxUnits = 100

	minAspectRatio = 0.7
	maxAspectRatio = 1.8
)

// targetUnitCounts derives the per-bucket unit counts from the available
// area and the profile's size distribution. Percentages are applied
// independently per bucket: a distribution summing over 100 overproduces
// rather than being normalized.
func (g *generator) targetUnitCounts() (total int, perBucket []int) {
	budget := int(g.availableArea() / areaPerUnit)
	if budget > maxUnits {
		budget = maxUnits
	}

	perBucket = make([]int, len(g.profile.SizeDistribution))
	for i, b := range g.profile.SizeDistribution {
		perBucket[i] = int(float64(budget) * b.Percentage / 100)
		total += perBucket[i]
	}
	return total, perBucket
}

// createRandomLayout builds a full layout from scratch by repeated random
// placement. It is both the random strategy's body and the genetic search's
// population seeder. Returns the layout and the requested unit count.
func (g *generator) createRandomLayout() (Layout, int) {
	var ilots []Ilot

	requested, perBucket := g.targetUnitCounts()

	ilotID := 1
	for bi, b := range g.profile.SizeDistribution {
		for n := 0; n < perBucket[bi]; n++ {
			il, ok := g.placeRandomIlot(strconv.Itoa(ilotID), b.MinSize, b.MaxSize, ilots)
			if ok {
				ilots = append(ilots, il)
				ilotID++
			}
		}
	}

	return Layout{
		Ilots:     ilots,
		Corridors: g.generateCorridors(ilots),
	}, requested
}

// placeRandomIlot attempts to place a single unit with a uniformly sampled
// area in [minSize, maxSize] and aspect ratio in [0.7, 1.8]. The first valid
// candidate wins; after the attempt budget is exhausted the unit is dropped.
func (g *generator) placeRandomIlot(id string, minSize, maxSize float64, existing []Ilot) (Ilot, bool) {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		area := minSize + g.rng.Float64()*(maxSize-minSize)
		aspect := minAspectRatio + g.rng.Float64()*(maxAspectRatio-minAspectRatio)
		width := math.Sqrt(area * aspect)
		height := area / width

		x := g.rng.Float64() * (g.floor.Width - width)
		y := g.rng.Float64() * (g.floor.Height - height)

		rect := geo.NewRect(x, y, width, height)
		if g.isValidPlacement(rect, existing) {
			return Ilot{
				ID:       id,
				Rect:     rect,
				Area:     area,
				RoomType: "standard",
				MinSize:  minSize,
				MaxSize:  maxSize,
			}, true
		}
	}
	return Ilot{}, false
}
