package transform

import (
	"math"

	"github.com/paulmach/orb"
)

func add(a, b orb.Point) orb.Point {
	return orb.Point{a[0] + b[0], a[1] + b[1]}
}

func sub(a, b orb.Point) orb.Point {
	return orb.Point{a[0] - b[0], a[1] - b[1]}
}

func dot(a, b orb.Point) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// normalize returns v scaled to unit length. The zero vector is returned unchanged.
func normalize(v orb.Point) orb.Point {
	l := math.Hypot(v[0], v[1])
	if l == 0 {
		return v
	}
	return orb.Point{v[0] / l, v[1] / l}
}

// cross returns the z component of (a-o) x (b-o). It is positive when o, a, b
// turn counter-clockwise.
func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

// halfPlane is the closed side of the line through origin along dir that
// contains a reference point.
type halfPlane struct {
	origin orb.Point
	dir    orb.Point
	sign   float64
}

// newHalfPlane returns the side of the line origin->origin+dir that holds ref.
func newHalfPlane(origin, dir, ref orb.Point) halfPlane {
	s := 1.0
	if cross(origin, add(origin, dir), ref) < 0 {
		s = -1
	}
	return halfPlane{origin: origin, dir: dir, sign: s}
}

// opposite returns the closed half plane on the other side of the same line.
func (h halfPlane) opposite() halfPlane {
	return halfPlane{origin: h.origin, dir: h.dir, sign: -h.sign}
}

// holds reports whether p lies in the half plane. Points within rounding
// distance of the line count as inside, so neighbouring faces overlap on
// their shared edges instead of leaving a gap.
func (h halfPlane) holds(p orb.Point) bool {
	d := sub(p, h.origin)
	c := h.dir[0]*d[1] - h.dir[1]*d[0]
	tol := 1e-12 * (math.Abs(h.dir[0]) + math.Abs(h.dir[1])) * (math.Abs(d[0]) + math.Abs(d[1]))
	return h.sign*c >= -tol
}
