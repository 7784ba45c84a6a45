package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/geotiff/pkg/geotiff"
)

func main() {
	dir := flag.String("dir", ".", "Directory containing GeoTIFF files")
	flag.Parse()

	// Find all images in the tree
	paths, err := geotiff.DiscoverFiles(*dir)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Found %d files\n", len(paths))

	// Load them with a worker pool, skipping files that fail
	opts := geotiff.DefaultLoadOptions()
	opts.ErrorLog = os.Stderr
	opts.Progress = func(loaded, total int) {
		fmt.Printf("\rLoading: %d/%d", loaded, total)
	}
	set, errs := geotiff.LoadFilesParallel(paths, opts)
	fmt.Printf("\nLoaded %d images, skipped %d\n", len(set.Images), len(errs))

	// Index by model extent
	idx := geotiff.BuildIndex(set)
	bounds := idx.Bounds()
	fmt.Printf("Coverage: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.Min[0], bounds.Min[1], bounds.Max[0], bounds.Max[1])

	// Images covering a location, finest resolution first
	p := orb.Point{10.2, 47.5}
	for _, e := range idx.At(p) {
		v, ok := e.Image.ValueAt(p, 0)
		if !ok {
			continue
		}
		fmt.Printf("  %s (pixel size %g): %s\n", e.Path, e.PixelSize, v)
	}

	// Images intersecting a viewport
	viewport := orb.Bound{Min: orb.Point{10.0, 47.0}, Max: orb.Point{11.0, 48.0}}
	fmt.Printf("Images in viewport: %d\n", len(idx.Query(viewport)))
}
