package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/geotiff/pkg/geotiff"
)

func main() {
	dir := flag.String("dir", ".", "Directory containing GeoTIFF files")
	flag.Parse()

	paths, err := geotiff.DiscoverFiles(*dir)
	if err != nil {
		log.Fatal(err)
	}

	// Keep at most 256MB of decoded samples in memory
	cache := geotiff.NewImageCache(256 * 1024 * 1024)

	p := orb.Point{10.2, 47.5}
	for pass := 1; pass <= 2; pass++ {
		for _, path := range paths {
			// Second pass is served from memory
			g, err := cache.Get(path, func() (*geotiff.GeoTiff, error) {
				return geotiff.Open(path)
			})
			if err != nil {
				log.Printf("Skipping %s: %v", path, err)
				continue
			}
			if v, ok := geotiff.SampleAt[float64](g, p, 0); ok {
				fmt.Printf("pass %d: %s = %g\n", pass, path, v)
			}
		}
	}

	stats := cache.Stats()
	fmt.Printf("Cached %d images, %.1f MB of %.1f MB, %d accesses\n",
		stats.ImageCount,
		float64(stats.UsedMemory)/(1024*1024),
		float64(stats.MaxMemory)/(1024*1024),
		stats.TotalAccess)
}
