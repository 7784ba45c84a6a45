package transform

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
)

// Benchmark R-tree point location vs linear scan over the faces of a large
// tie point mesh. This demonstrates the improvement from O(n) to O(log n).

// createGridTiePoints returns n x n jittered tie points mapped to a UTM-like
// model space with 30 m pixels.
func createGridTiePoints(n int) []float64 {
	rng := rand.New(rand.NewSource(1))
	tp := make([]float64, 0, n*n*6)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			x := float64(i*100) + 30*rng.Float64()
			y := float64(j*100) + 30*rng.Float64()
			tp = append(tp, x, y, 0, 500000+30*x, 4000000-30*y, 0)
		}
	}
	return tp
}

func locateLinear(mesh []face, p orb.Point) int {
	for i := range mesh {
		if mesh[i].contains(p) {
			return i
		}
	}
	return -1
}

// BenchmarkToModel_Rtree benchmarks raster to model queries through the face index.
func BenchmarkToModel_Rtree(b *testing.B) {
	tr := newTriangulated(b, createGridTiePoints(40))
	p := orb.Point{1234.5, 2345.6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tr.ToModel(p)
	}
}

// BenchmarkToModel_Linear benchmarks the same query with a linear face scan.
func BenchmarkToModel_Linear(b *testing.B) {
	tr := newTriangulated(b, createGridTiePoints(40))
	p := orb.Point{1234.5, 2345.6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f := locateLinear(tr.rasterMesh, p)
		u, v := tr.rasterMesh[f].barycentric(p)
		_ = tr.modelMesh[f].interpolate(u, v)
	}
}

// BenchmarkToRaster_Rtree_Outside benchmarks extrapolation far outside the hull.
func BenchmarkToRaster_Rtree_Outside(b *testing.B) {
	tr := newTriangulated(b, createGridTiePoints(40))
	p := orb.Point{-1e6, 9e6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tr.ToRaster(p)
	}
}

// BenchmarkNewTriangulated benchmarks mesh construction, including both R-trees.
func BenchmarkNewTriangulated(b *testing.B) {
	tp := createGridTiePoints(40)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewTriangulated(tp); err != nil {
			b.Fatal(err)
		}
	}
}
