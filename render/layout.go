package render

import "math"

// Terminal cells are roughly twice as tall as wide; horizontal radii are doubled to look circular
const cellAspect = 2

const (
	minLabelWidth = 3
	maxLabelWidth = 18

	// Rows reserved for the title and help lines
	chromeRows = 2
)

// Point is a cell position
type Point struct {
	X, Y int
}

// DialLayout places prizes evenly around an ellipse, starting at the top and going clockwise
type DialLayout struct {
	Center     Point
	RadiusX    int
	RadiusY    int
	LabelWidth int
	Slots      []Point
}

// ComputeLayout lays out count prizes in a width×height screen
func ComputeLayout(count, width, height int) DialLayout {
	ry := (height - chromeRows - 2) / 2
	rx := ry * cellAspect
	// Leave room for half a label on each side
	if limit := width/2 - maxLabelWidth/2 - 1; rx > limit {
		rx = limit
		ry = rx / cellAspect
	}
	ry = max(ry, 2)
	rx = max(rx, 4)

	l := DialLayout{
		Center:  Point{X: width / 2, Y: 1 + (height-chromeRows)/2},
		RadiusX: rx,
		RadiusY: ry,
	}

	step := 2 * math.Pi
	if count > 0 {
		step = 2 * math.Pi / float64(count)
	}
	chord := float64(2 * rx)
	if count > 1 {
		chord = 2 * float64(rx) * math.Sin(step/2)
	}
	l.LabelWidth = max(minLabelWidth, min(int(chord*0.65), maxLabelWidth))

	l.Slots = make([]Point, count)
	for i := range l.Slots {
		angle := step*float64(i) - math.Pi/2
		l.Slots[i] = Point{
			X: l.Center.X + int(math.Round(float64(rx)*math.Cos(angle))),
			Y: l.Center.Y + int(math.Round(float64(ry)*math.Sin(angle))),
		}
	}
	return l
}

// RingPoints samples the dial outline at a resolution suited to its size
func (l DialLayout) RingPoints() []Point {
	n := max(24, 4*(l.RadiusX+l.RadiusY))
	seen := make(map[Point]bool, n)
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		p := Point{
			X: l.Center.X + int(math.Round(float64(l.RadiusX)*math.Cos(angle))),
			Y: l.Center.Y + int(math.Round(float64(l.RadiusY)*math.Sin(angle))),
		}
		if !seen[p] {
			seen[p] = true
			points = append(points, p)
		}
	}
	return points
}
