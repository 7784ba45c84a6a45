package main

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/geotiff/pkg/geotiff"
)

func main() {
	// Open and decode the image
	g, err := geotiff.Open("dem.tif")
	if err != nil {
		log.Fatal(err)
	}

	// Print image info
	fmt.Printf("Size: %d x %d pixels\n", g.RasterWidth(), g.RasterHeight())
	fmt.Printf("Samples per pixel: %d (%s)\n", g.NumSamples(), g.SampleKind())

	if mt := g.GeoKeys().ModelType; mt != nil {
		fmt.Printf("Model type: %s\n", *mt)
	}

	// Upper left corner in model space
	origin := g.ToModel(orb.Point{0, 0})
	fmt.Printf("Origin: %.4f, %.4f\n", origin[0], origin[1])

	// Get model extent
	extent := g.ModelExtent()
	fmt.Printf("Extent: [%.4f,%.4f] to [%.4f,%.4f]\n",
		extent.Min[0], extent.Min[1],
		extent.Max[0], extent.Max[1])
}
