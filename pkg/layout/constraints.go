package layout

import "github.com/hexfoundry/planroom/pkg/geo"

// isValidPlacement decides whether a candidate rectangle may be placed given
// the units already on the floor. A placement is admissible when it lies
// fully inside the floor bounds and intersects no existing unit, restricted
// zone, or entrance zone. Walls deliberately do not participate: wall zones
// describe the drawing, not keep-out areas.
func (g *generator) isValidPlacement(rect geo.Rect, placed []Ilot) bool {
	if rect.X < 0 || rect.Y < 0 ||
		rect.X+rect.Width > g.floor.Width ||
		rect.Y+rect.Height > g.floor.Height {
		return false
	}

	for _, il := range placed {
		if rect.Intersects(il.Rect) {
			return false
		}
	}
	for _, r := range g.zones.Restricted {
		if rect.Intersects(r) {
			return false
		}
	}
	for _, e := range g.zones.Entrances {
		if rect.Intersects(e) {
			return false
		}
	}

	return true
}
