// Package ingest reads CAD floor plans and turns them into plan inputs:
// the floor envelope from the drawing extents, wall zone annotations from
// long line entities, and candidate rooms from closed polylines.
package ingest

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/hexfoundry/planroom/pkg/geo"
	"github.com/hexfoundry/planroom/pkg/plan"
	"github.com/hexfoundry/planroom/pkg/zone"
)

const (
	// wallLengthThreshold is the minimum line length considered a wall.
	wallLengthThreshold = 10.0

	// minRoomArea filters out closed polylines too small to be rooms.
	minRoomArea = 100.0

	// wallThickness is the footprint width given to a zero-width wall line.
	wallThickness = 0.2
)

// Room is a closed region detected in the drawing. Rooms are reported for
// inspection; they do not constrain placement.
type Room struct {
	Outline []geo.Point `json:"outline"`
	Area    float64     `json:"area"`
}

// Drawing is the extracted content of one CAD file. All coordinates are
// normalized so the drawing's minimum corner sits at the origin, matching
// the floor coordinate convention.
type Drawing struct {
	Floor  plan.Floor `json:"floor"`
	Origin geo.Point  `json:"origin"` // pre-normalization minimum corner

	Entities  int `json:"entities"`
	Lines     int `json:"lines"`
	Polylines int `json:"polylines"`
	Circles   int `json:"circles"`

	Walls []zone.Annotation `json:"walls"`
	Rooms []Room            `json:"rooms"`

	Warnings []string `json:"warnings,omitempty"`
}

// ReadDXF parses a DXF file and extracts the floor envelope, wall
// annotations, and candidate rooms.
func ReadDXF(path string) (*Drawing, error) {
	d, err := dxf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dxf: %w", err)
	}

	entities := d.Entities()
	if len(entities) == 0 {
		return nil, fmt.Errorf("dxf %s contains no entities", path)
	}

	dr := &Drawing{Entities: len(entities)}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	extend := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	type lineSeg struct{ x1, y1, x2, y2 float64 }
	var lines []lineSeg
	var polylines [][]geo.Point

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			lines = append(lines, lineSeg{e.Start[0], e.Start[1], e.End[0], e.End[1]})
			extend(e.Start[0], e.Start[1])
			extend(e.End[0], e.End[1])
			dr.Lines++

		case *entity.LwPolyline:
			pts := make([]geo.Point, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				pts = append(pts, geo.Pt(v[0], v[1]))
				extend(v[0], v[1])
			}
			polylines = append(polylines, pts)
			dr.Polylines++

		case *entity.Circle:
			extend(e.Center[0]-e.Radius, e.Center[1]-e.Radius)
			extend(e.Center[0]+e.Radius, e.Center[1]+e.Radius)
			dr.Circles++

		default:
			// Unsupported entity types are skipped.
		}
	}

	if math.IsInf(minX, 1) {
		return nil, fmt.Errorf("dxf %s contains no measurable geometry", path)
	}

	dr.Origin = geo.Pt(minX, minY)
	dr.Floor = plan.Floor{Width: maxX - minX, Height: maxY - minY}
	if err := dr.Floor.Validate(); err != nil {
		return nil, fmt.Errorf("dxf %s: degenerate extents %gx%g: %w",
			path, dr.Floor.Width, dr.Floor.Height, err)
	}

	// Wall heuristic: long straight lines. Coordinates shift so the
	// drawing's minimum corner becomes the origin.
	for _, l := range lines {
		wall, ok := wallFromLine(l.x1-minX, l.y1-minY, l.x2-minX, l.y2-minY)
		if ok {
			dr.Walls = append(dr.Walls, wall)
		}
	}

	// Room heuristic: closed polylines with enough enclosed area.
	for _, pts := range polylines {
		room, ok := roomFromOutline(normalize(pts, minX, minY))
		if ok {
			dr.Rooms = append(dr.Rooms, room)
		} else if len(pts) <= 3 {
			dr.Warnings = append(dr.Warnings,
				fmt.Sprintf("skipped polyline with %d vertices", len(pts)))
		}
	}

	return dr, nil
}

// wallFromLine turns a line segment into a wall annotation when it is long
// enough. The wall footprint is the segment's bounding box, inflated to the
// wall thickness on its degenerate axis.
func wallFromLine(x1, y1, x2, y2 float64) (zone.Annotation, bool) {
	dx, dy := x2-x1, y2-y1
	if math.Hypot(dx, dy) <= wallLengthThreshold {
		return zone.Annotation{}, false
	}

	minX, maxX := math.Min(x1, x2), math.Max(x1, x2)
	minY, maxY := math.Min(y1, y2), math.Max(y1, y2)
	if maxX-minX < wallThickness {
		maxX = minX + wallThickness
	}
	if maxY-minY < wallThickness {
		maxY = minY + wallThickness
	}

	return zone.Annotation{
		Kind: zone.KindWall,
		Coordinates: []zone.Coord{
			{X: minX, Y: minY},
			{X: maxX, Y: minY},
			{X: maxX, Y: maxY},
			{X: minX, Y: maxY},
		},
	}, true
}

// roomFromOutline accepts a closed polyline as a room when it has more than
// three vertices and encloses at least the minimum room area.
func roomFromOutline(pts []geo.Point) (Room, bool) {
	if len(pts) <= 3 {
		return Room{}, false
	}
	area := shoelaceArea(pts)
	if area <= minRoomArea {
		return Room{}, false
	}
	return Room{Outline: pts, Area: area}, true
}

// shoelaceArea is the absolute polygon area of the point sequence.
func shoelaceArea(pts []geo.Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X * pts[j].Y
		area -= pts[j].X * pts[i].Y
	}
	return math.Abs(area) / 2
}

func normalize(pts []geo.Point, minX, minY float64) []geo.Point {
	out := make([]geo.Point, len(pts))
	for i, p := range pts {
		out[i] = geo.Pt(p.X-minX, p.Y-minY)
	}
	return out
}
