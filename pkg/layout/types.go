// Package layout implements the space-planning core: it places unit
// rectangles ("ilots") on a bounded floor under zone constraints, derives
// circulation corridors from the gaps between them, and scores the result
// with a multi-objective fitness function. Three strategies are available:
// a single-pass random placer, a grid-sweep greedy placer, and a genetic
// search that evolves whole layouts.
package layout

import (
	"time"

	"github.com/hexfoundry/planroom/pkg/geo"
)

// Ilot is one placed unit. The embedded rectangle is the unit's footprint;
// MinSize and MaxSize record the profile band the unit was generated from.
type Ilot struct {
	ID string `json:"id"`
	geo.Rect
	Area     float64 `json:"area"`
	RoomType string  `json:"room_type"`
	MinSize  float64 `json:"-"`
	MaxSize  float64 `json:"-"`
}

// Corridor is one circulation strip. It spans the full floor width
// (horizontal) or full floor height (vertical) at a derived offset.
type Corridor struct {
	ID string `json:"id"`
	geo.Rect
	CorridorWidth  float64  `json:"corridor_width"`
	ConnectedIlots []string `json:"connected_ilot_ids"`
}

// Layout is one candidate solution: the placed units plus their corridors.
// Layouts are treated as immutable values; the genetic search copies them
// rather than mutating in place.
type Layout struct {
	Ilots     []Ilot     `json:"ilots"`
	Corridors []Corridor `json:"corridors"`
}

// clone returns a deep copy of the layout.
func (l Layout) clone() Layout {
	c := Layout{
		Ilots:     make([]Ilot, len(l.Ilots)),
		Corridors: make([]Corridor, len(l.Corridors)),
	}
	copy(c.Ilots, l.Ilots)
	for i, cor := range l.Corridors {
		ids := make([]string, len(cor.ConnectedIlots))
		copy(ids, cor.ConnectedIlots)
		cor.ConnectedIlots = ids
		c.Corridors[i] = cor
	}
	return c
}

// totalIlotArea sums the declared areas of all units.
func (l Layout) totalIlotArea() float64 {
	total := 0.0
	for _, il := range l.Ilots {
		total += il.Area
	}
	return total
}

// Result is the output of one generation run.
type Result struct {
	ID                    string     `json:"id"`
	Algorithm             string     `json:"algorithm"`
	Ilots                 []Ilot     `json:"ilots"`
	Corridors             []Corridor `json:"corridors"`
	UtilizationPercentage float64    `json:"utilization_percentage"`
	OptimizationScore     float64    `json:"optimization_score"`
	RequestedUnits        int        `json:"requested_units"`
	PlacedUnits           int        `json:"placed_units"`
	GeneratedAt           time.Time  `json:"generated_at"`
}
