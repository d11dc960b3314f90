// Package zone converts caller-supplied zone annotations into the tagged
// bounding rectangles the layout engine consumes. Zone polygons arrive in
// two coordinate forms ({x,y} records or [x,y] pairs, depending on which
// upstream tool produced them); both decode into the same Coord.
package zone

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hexfoundry/planroom/pkg/geo"
)

// Kind tags what a zone means for placement.
type Kind string

const (
	KindWall       Kind = "wall"
	KindRestricted Kind = "restricted"
	KindEntrance   Kind = "entrance"
	KindExit       Kind = "exit"
)

// Coord is one vertex of a zone polygon.
type Coord struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// UnmarshalJSON accepts both {"x":1,"y":2} and [1,2].
func (c *Coord) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("zone: coordinate pair has %d elements, want 2", len(pair))
		}
		c.X, c.Y = pair[0], pair[1]
		return nil
	}

	var obj struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("zone: coordinate is neither a pair nor an {x,y} record: %w", err)
	}
	c.X, c.Y = obj.X, obj.Y
	return nil
}

// UnmarshalYAML accepts both {x: 1, y: 2} and [1, 2].
func (c *Coord) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var pair []float64
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("zone: coordinate pair has %d elements, want 2", len(pair))
		}
		c.X, c.Y = pair[0], pair[1]
		return nil
	}

	var obj struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	}
	if err := node.Decode(&obj); err != nil {
		return fmt.Errorf("zone: coordinate is neither a pair nor an {x,y} record: %w", err)
	}
	c.X, c.Y = obj.X, obj.Y
	return nil
}

// Annotation is one zone as supplied by the caller: a kind tag plus the
// polygon vertices. Color is carried through for rendering only.
type Annotation struct {
	Kind        Kind    `json:"kind" yaml:"kind"`
	Color       string  `json:"color,omitempty" yaml:"color,omitempty"`
	Coordinates []Coord `json:"coordinates" yaml:"coordinates"`
}

// BoundingRect computes the axis-aligned bounding rectangle of the
// annotation's vertices. Annotations with fewer than 4 points produce no
// rectangle; they are skipped silently rather than rejected.
func (a Annotation) BoundingRect() (geo.Rect, bool) {
	if len(a.Coordinates) < 4 {
		return geo.Rect{}, false
	}
	pts := make([]geo.Point, len(a.Coordinates))
	for i, c := range a.Coordinates {
		pts[i] = geo.Pt(c.X, c.Y)
	}
	return geo.BoundsOf(pts), true
}

// Set groups the classified zone rectangles by role. Walls are retained for
// rendering and exports but do not block placement; only Restricted and
// Entrances participate in admissibility checks.
type Set struct {
	Walls      []geo.Rect `json:"walls"`
	Restricted []geo.Rect `json:"restricted"`
	Entrances  []geo.Rect `json:"entrances"`
}

// Classify buckets annotations into a Set. Entrance and exit zones share
// one list; unknown kinds are ignored.
func Classify(annotations []Annotation) Set {
	var s Set
	for _, a := range annotations {
		rect, ok := a.BoundingRect()
		if !ok {
			continue
		}
		switch a.Kind {
		case KindWall:
			s.Walls = append(s.Walls, rect)
		case KindRestricted:
			s.Restricted = append(s.Restricted, rect)
		case KindEntrance, KindExit:
			s.Entrances = append(s.Entrances, rect)
		}
	}
	return s
}

// BlockedArea returns the summed area of every placement-blocking zone.
func (s Set) BlockedArea() float64 {
	total := 0.0
	for _, r := range s.Restricted {
		total += r.Area()
	}
	for _, r := range s.Entrances {
		total += r.Area()
	}
	return total
}
