package transform

import (
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// R-tree fan-out, same as the chart indexes.
const (
	indexMinChildren = 25
	indexMaxChildren = 50
)

// faceIndex provides O(log n) point location over the faces of a mesh.
type faceIndex struct {
	rtree *rtreego.Rtree
}

// indexedFace wraps a face position and its envelope for R-tree storage.
type indexedFace struct {
	face   int
	bounds rtreego.Rect
}

// Bounds implements rtreego.Spatial interface.
func (f *indexedFace) Bounds() rtreego.Rect {
	return f.bounds
}

// newFaceIndex bulk loads the envelopes of faces into an R-tree.
func newFaceIndex(faces []face) *faceIndex {
	objs := make([]rtreego.Spatial, len(faces))
	for i := range faces {
		env := faces[i].envelope
		rect, _ := rtreego.NewRectFromPoints(
			rtreego.Point{env.Min[0], env.Min[1]},
			rtreego.Point{env.Max[0], env.Max[1]},
		)
		objs[i] = &indexedFace{face: i, bounds: rect}
	}
	return &faceIndex{rtree: rtreego.NewTree(2, indexMinChildren, indexMaxChildren, objs...)}
}

// queryRect returns a tiny rectangle around p. The R-tree intersection test
// is strict, so a degenerate rectangle would miss faces whose envelope edge
// passes through p.
func queryRect(p orb.Point) rtreego.Rect {
	tol := 1e-9 * (1 + math.Abs(p[0]) + math.Abs(p[1]))
	return rtreego.Point{p[0], p[1]}.ToRect(tol)
}

// locate returns the position of the first face of mesh that contains p.
// Meshes cover the whole plane, so a miss is an internal error and panics.
func (idx *faceIndex) locate(mesh []face, p orb.Point) int {
	contains := func(_ []rtreego.Spatial, obj rtreego.Spatial) (refuse, abort bool) {
		return !mesh[obj.(*indexedFace).face].contains(p), false
	}

	hits := idx.rtree.SearchIntersect(queryRect(p), rtreego.LimitFilter(1), contains)
	if len(hits) == 0 {
		panic(fmt.Sprintf("transform: no mesh face contains point %v", p))
	}
	return hits[0].(*indexedFace).face
}

// containing returns the positions of every face of mesh that contains p.
func (idx *faceIndex) containing(mesh []face, p orb.Point) []int {
	var faces []int
	for _, obj := range idx.rtree.SearchIntersect(queryRect(p)) {
		i := obj.(*indexedFace).face
		if mesh[i].contains(p) {
			faces = append(faces, i)
		}
	}
	return faces
}
