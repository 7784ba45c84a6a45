package transform

import (
	"math"

	"github.com/fogleman/delaunay"
	"github.com/paulmach/orb"
)

// Triangulated maps between raster and model space through a mesh of tie
// points. The raster points are Delaunay triangulated and the same triangles
// are laid over the model points. Points inside a triangle are interpolated
// linearly; points outside the convex hull are extrapolated from the nearest
// hull triangle, so the mapping is defined for every point of the plane.
type Triangulated struct {
	rasterMesh  []face
	rasterIndex *faceIndex
	modelMesh   []face
	modelIndex  *faceIndex
}

// Space selects one side of a Triangulated transformation.
type Space int

const (
	RasterSpace Space = iota
	ModelSpace
)

func (s Space) String() string {
	if s == ModelSpace {
		return "model"
	}
	return "raster"
}

// NewTriangulated builds a mesh from tie point groups (I, J, K, X, Y, Z).
// At least three raster points that are not collinear are required, and the
// model points must not fold the mesh over itself.
func NewTriangulated(tiePoints []float64) (*Triangulated, error) {
	n := len(tiePoints) / 6
	raster := make([]orb.Point, n)
	model := make([]orb.Point, n)
	for i := 0; i < n; i++ {
		g := tiePoints[i*6 : i*6+6]
		raster[i] = orb.Point{g[0], g[1]}
		model[i] = orb.Point{g[3], g[4]}
	}

	topo, err := triangulate(raster)
	if err != nil {
		return nil, err
	}
	if err := checkFolding(model, topo); err != nil {
		return nil, err
	}

	t := &Triangulated{
		rasterMesh: buildMesh(raster, topo),
		modelMesh:  buildMesh(model, topo),
	}
	t.rasterIndex = newFaceIndex(t.rasterMesh)
	t.modelIndex = newFaceIndex(t.modelMesh)
	return t, nil
}

// triangulate computes the Delaunay topology of the raster points.
func triangulate(points []orb.Point) (*topology, error) {
	input := make([]delaunay.Point, len(points))
	for i, p := range points {
		input[i] = delaunay.Point{X: p[0], Y: p[1]}
	}

	tri, err := delaunay.Triangulate(input)
	if err != nil || len(tri.Triangles) == 0 {
		return nil, formatErrorf(ModelTiepointTag, "%d tie points do not span a triangle", len(points))
	}

	nt := len(tri.Triangles) / 3
	topo := &topology{
		triangles: make([][3]int, nt),
		onHull:    make([][3]bool, nt),
	}

	// Directed hull edges, keyed by start vertex, in counter-clockwise order.
	hullNext := make(map[int]int)

	for t := 0; t < nt; t++ {
		v := [3]int{tri.Triangles[3*t], tri.Triangles[3*t+1], tri.Triangles[3*t+2]}
		h := [3]bool{
			tri.Halfedges[3*t] == -1,
			tri.Halfedges[3*t+1] == -1,
			tri.Halfedges[3*t+2] == -1,
		}

		if cross(points[v[0]], points[v[1]], points[v[2]]) < 0 {
			// Reverse to counter-clockwise. Edge 0 becomes the old edge 2
			// reversed, edge 2 the old edge 0 reversed.
			v = [3]int{v[0], v[2], v[1]}
			h = [3]bool{h[2], h[1], h[0]}
		}

		topo.triangles[t] = v
		topo.onHull[t] = h
		for k := 0; k < 3; k++ {
			if h[k] {
				hullNext[v[k]] = v[(k+1)%3]
			}
		}
	}

	start := topo.triangles[0][0]
	for v := range hullNext {
		start = v
		break
	}
	for v := start; ; {
		topo.hull = append(topo.hull, v)
		v = hullNext[v]
		if v == start || len(topo.hull) > len(hullNext) {
			break
		}
	}

	return topo, nil
}

// checkFolding rejects model points that turn some triangles over or
// collapse them. A folded mesh has overlapping faces in model space and no
// well-defined inverse.
func checkFolding(model []orb.Point, topo *topology) error {
	var orientation float64
	for _, t := range topo.triangles {
		area := cross(model[t[0]], model[t[1]], model[t[2]])
		if area == 0 || math.IsNaN(area) {
			return formatErrorf(ModelTiepointTag, "model points of triangle %v are collinear", t)
		}
		if orientation == 0 {
			orientation = math.Copysign(1, area)
			continue
		}
		if math.Copysign(1, area) != orientation {
			return formatErrorf(ModelTiepointTag, "model points fold the tie point mesh at triangle %v", t)
		}
	}
	return nil
}

// ToModel maps a raster coordinate to model space.
func (t *Triangulated) ToModel(p orb.Point) orb.Point {
	return transformPoint(t.rasterIndex, t.rasterMesh, t.modelMesh, p)
}

// ToRaster maps a model coordinate to raster space.
func (t *Triangulated) ToRaster(p orb.Point) orb.Point {
	return transformPoint(t.modelIndex, t.modelMesh, t.rasterMesh, p)
}

func (*Triangulated) isCoordinateTransform() {}

// FaceCount returns the number of faces of each mesh.
func (t *Triangulated) FaceCount() int {
	return len(t.rasterMesh)
}

// FacesContaining returns the positions of the faces whose region holds p
// in the given space. Away from shared face boundaries it has exactly one
// element.
func (t *Triangulated) FacesContaining(space Space, p orb.Point) []int {
	if space == ModelSpace {
		return t.modelIndex.containing(t.modelMesh, p)
	}
	return t.rasterIndex.containing(t.rasterMesh, p)
}

func transformPoint(idx *faceIndex, source, target []face, p orb.Point) orb.Point {
	if !isFinite(p[0]) || !isFinite(p[1]) {
		return orb.Point{math.NaN(), math.NaN()}
	}
	i := idx.locate(source, p)
	u, v := source[i].barycentric(p)
	return target[i].interpolate(u, v)
}
