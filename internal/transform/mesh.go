package transform

import (
	"math"

	"github.com/paulmach/orb"
)

// boundaryKind describes how a face of a tie point mesh meets the convex hull.
type boundaryKind int

const (
	// closedTriangle faces lie strictly inside the hull and cover their triangle only.
	closedTriangle boundaryKind = iota

	// wedge faces share one or two edges with the hull. Besides their triangle
	// they cover the unbounded region beyond those edges, between the
	// outward rays of the hull vertices.
	wedge

	// interior is the single face of a one-triangle mesh. It covers the whole plane.
	interior
)

func (k boundaryKind) String() string {
	switch k {
	case closedTriangle:
		return "closed triangle"
	case wedge:
		return "wedge"
	case interior:
		return "interior"
	default:
		return "unknown"
	}
}

// topology is the connectivity of a tie point mesh. It is computed once on the
// raster points and applied to both raster and model points, so face i of
// one mesh corresponds to face i of the other.
type topology struct {
	// triangles are vertex indices, counter-clockwise in raster space.
	triangles [][3]int

	// onHull[t][k] reports whether edge triangles[t][k] -> triangles[t][(k+1)%3]
	// is an edge of the convex hull.
	onHull [][3]bool

	// hull lists the hull vertices in counter-clockwise raster order.
	hull []int
}

// face is one cell of a mesh.
type face struct {
	kind boundaryKind

	// support are the triangle corners used for barycentric coordinates.
	support [3]orb.Point

	// boundary holds the hull edge chain of a wedge (2 or 3 points, in hull
	// order) or the closed outline of a triangle (4 points, first repeated).
	boundary []orb.Point

	// rays holds the outward bisector at every wedge chain point.
	rays []orb.Point

	// triangle are the three closed half planes whose intersection is the triangle.
	triangle [3]halfPlane

	// pieces are the convex regions beyond each hull edge of a wedge.
	pieces [][3]halfPlane

	envelope orb.Bound
}

// fromRay returns the ray at the first point of a wedge chain.
func (f *face) fromRay() orb.Point { return f.rays[0] }

// toRay returns the ray at the last point of a wedge chain.
func (f *face) toRay() orb.Point { return f.rays[len(f.rays)-1] }

// contains reports whether p lies in the closed region covered by the face.
func (f *face) contains(p orb.Point) bool {
	if f.kind == interior {
		return true
	}
	if holdsAll(f.triangle, p) {
		return true
	}
	for _, piece := range f.pieces {
		if holdsAll(piece, p) {
			return true
		}
	}
	return false
}

func holdsAll(planes [3]halfPlane, p orb.Point) bool {
	return planes[0].holds(p) && planes[1].holds(p) && planes[2].holds(p)
}

// barycentric returns (u, v) such that p = (1-u-v)*A + u*B + v*C for the
// support points A, B, C of the face.
func (f *face) barycentric(p orb.Point) (u, v float64) {
	a, b, c := f.support[0], f.support[1], f.support[2]
	d := (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
	u = ((p[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(p[1]-a[1])) / d
	v = ((b[0]-a[0])*(p[1]-a[1]) - (p[0]-a[0])*(b[1]-a[1])) / d
	return u, v
}

// interpolate evaluates barycentric coordinates against the support points.
func (f *face) interpolate(u, v float64) orb.Point {
	a, b, c := f.support[0], f.support[1], f.support[2]
	w := 1 - u - v
	return orb.Point{
		w*a[0] + u*b[0] + v*c[0],
		w*a[1] + u*b[1] + v*c[1],
	}
}

// buildMesh lays the topology over points and returns one face per triangle.
func buildMesh(points []orb.Point, topo *topology) []face {
	if len(topo.triangles) == 1 {
		t := topo.triangles[0]
		f := face{kind: interior, envelope: infiniteBound()}
		f.support = [3]orb.Point{points[t[0]], points[t[1]], points[t[2]]}
		return []face{f}
	}

	rays := hullRays(points, topo.hull)

	faces := make([]face, len(topo.triangles))
	for i, t := range topo.triangles {
		faces[i] = newFace(points, t, topo.onHull[i], rays)
	}
	return faces
}

func newFace(points []orb.Point, t [3]int, onHull [3]bool, rays map[int]orb.Point) face {
	var f face
	for k := 0; k < 3; k++ {
		f.support[k] = points[t[k]]
	}
	for k := 0; k < 3; k++ {
		from, to, opp := f.support[k], f.support[(k+1)%3], f.support[(k+2)%3]
		f.triangle[k] = newHalfPlane(from, sub(to, from), opp)
	}

	var chain []int
	switch hullEdges(onHull) {
	case 0:
		f.kind = closedTriangle
		f.boundary = []orb.Point{f.support[0], f.support[1], f.support[2], f.support[0]}
		f.envelope = orb.MultiPoint(f.boundary).Bound()
		return f
	case 1:
		for k := 0; k < 3; k++ {
			if onHull[k] {
				chain = []int{t[k], t[(k+1)%3]}
			}
		}
	default:
		// Two hull edges meet at a vertex; the chain starts after the inner edge.
		for k := 0; k < 3; k++ {
			if !onHull[k] {
				chain = []int{t[(k+1)%3], t[(k+2)%3], t[k]}
			}
		}
	}

	f.kind = wedge
	for _, v := range chain {
		f.boundary = append(f.boundary, points[v])
		f.rays = append(f.rays, rays[v])
	}

	for i := 0; i+1 < len(chain); i++ {
		a, b := points[chain[i]], points[chain[i+1]]
		ra, rb := rays[chain[i]], rays[chain[i+1]]
		opp := points[thirdVertex(t, chain[i], chain[i+1])]
		f.pieces = append(f.pieces, [3]halfPlane{
			newHalfPlane(a, sub(b, a), opp).opposite(),
			newHalfPlane(a, ra, b),
			newHalfPlane(b, rb, a),
		})
	}

	f.envelope = wedgeEnvelope(f.support, f.rays)
	return f
}

func hullEdges(onHull [3]bool) int {
	n := 0
	for _, h := range onHull {
		if h {
			n++
		}
	}
	return n
}

func thirdVertex(t [3]int, a, b int) int {
	for _, v := range t {
		if v != a && v != b {
			return v
		}
	}
	return t[0]
}

// hullRays computes the outward bisector at every hull vertex. The bisector is
// normalize(unit(v-prev) + unit(v-next)). Where that sum vanishes or points
// back into the hull (collinear or, after mapping to model space, reflex
// vertices) the normalised sum of the two outward edge normals is used.
func hullRays(points []orb.Point, hull []int) map[int]orb.Point {
	ccw := signedArea(points, hull) >= 0
	n := len(hull)

	rays := make(map[int]orb.Point, n)
	for i, vi := range hull {
		prev := points[hull[(i+n-1)%n]]
		next := points[hull[(i+1)%n]]
		v := points[vi]

		bisector := normalize(add(normalize(sub(v, prev)), normalize(sub(v, next))))

		nIn := outwardNormal(prev, v, ccw)
		nOut := outwardNormal(v, next, ccw)
		outward := normalize(add(nIn, nOut))
		if outward == (orb.Point{}) {
			outward = nIn
		}

		if dot(bisector, outward) < 0.5 {
			bisector = outward
		}
		rays[vi] = bisector
	}
	return rays
}

// outwardNormal returns the unit normal of edge a->b pointing away from a
// polygon with the given winding.
func outwardNormal(a, b orb.Point, ccw bool) orb.Point {
	d := normalize(sub(b, a))
	if ccw {
		return orb.Point{d[1], -d[0]}
	}
	return orb.Point{-d[1], d[0]}
}

func signedArea(points []orb.Point, ring []int) float64 {
	var area float64
	for i, vi := range ring {
		a := points[vi]
		b := points[ring[(i+1)%len(ring)]]
		area += a[0]*b[1] - b[0]*a[1]
	}
	return area / 2
}

// wedgeEnvelope bounds a wedge: the box of its whole triangle, opened to
// infinity on every side a ray has a component towards. The box may be looser
// than the minimal one but always holds the wedge.
func wedgeEnvelope(support [3]orb.Point, rays []orb.Point) orb.Bound {
	b := orb.MultiPoint(support[:]).Bound()
	for _, r := range rays {
		if r[0] > 0 {
			b.Max[0] = math.Inf(1)
		} else if r[0] < 0 {
			b.Min[0] = math.Inf(-1)
		}
		if r[1] > 0 {
			b.Max[1] = math.Inf(1)
		} else if r[1] < 0 {
			b.Min[1] = math.Inf(-1)
		}
	}
	return b
}

func infiniteBound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Inf(-1), math.Inf(-1)},
		Max: orb.Point{math.Inf(1), math.Inf(1)},
	}
}
