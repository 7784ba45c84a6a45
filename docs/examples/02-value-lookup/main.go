package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/geotiff/pkg/geotiff"
)

func main() {
	path := flag.String("file", "dem.tif", "Path to GeoTIFF file")
	x := flag.Float64("x", 10.2, "Model x coordinate")
	y := flag.Float64("y", 47.5, "Model y coordinate")
	flag.Parse()

	g, err := geotiff.Open(*path)
	if err != nil {
		log.Fatal(err)
	}

	p := orb.Point{*x, *y}

	// Where does the point land in the raster?
	r := g.ToRaster(p)
	fmt.Printf("Model %v is raster %.3f, %.3f\n", p, r[0], r[1])

	// Raw value with its storage type, for every band
	for sample := 0; sample < g.NumSamples(); sample++ {
		v, ok := g.ValueAt(p, sample)
		if !ok {
			fmt.Println("Point is outside the raster")
			return
		}
		fmt.Printf("  band %d: %s (%s)\n", sample, v, v.Kind())
	}

	// Converted to the type the application works in
	elevation, ok := geotiff.SampleAt[float64](g, p, 0)
	if nodata, has := g.NoData(); ok && has && elevation == nodata {
		fmt.Println("No data at this point")
		return
	}
	if ok {
		fmt.Printf("Elevation: %.2f\n", elevation)
	}
}
