// Package geotiff reads GeoTIFF raster images and converts between their
// raster and model coordinate systems.
//
// An image is decoded completely when it is opened: the georeferencing
// GeoKeys, the coordinate transformation and every raster sample. The
// resulting GeoTiff is immutable and can be shared between goroutines.
//
// # Basic Usage
//
//	g, err := geotiff.Open("dem.tif")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%dx%d pixels covering %v\n", g.RasterWidth(), g.RasterHeight(), g.ModelExtent())
//
// # Coordinate Transformations
//
// The transformation is built from whichever georeferencing tags the file
// carries:
//
//   - ModelTransformationTag: an affine matrix.
//   - One tie point plus ModelPixelScaleTag: scale and offset.
//   - Several tie points: a triangulated mesh, piecewise linear inside the
//     tie points and extrapolated from the nearest triangle outside.
//
// Files without any of these tags use raster coordinates as model
// coordinates.
//
//	model := g.ToModel(orb.Point{0, 0})   // upper left corner of the image
//	pixel := g.ToRaster(orb.Point{10.2, 47.5})
//
// # Reading Values
//
// ValueAt returns a sample together with its storage type. SampleAt converts
// it to any numeric type and reports false if the value does not fit:
//
//	v, ok := g.ValueAt(orb.Point{10.2, 47.5}, 0)
//	if ok {
//	    fmt.Println(v, v.Kind())
//	}
//
//	elevation, ok := geotiff.SampleAt[float64](g, orb.Point{10.2, 47.5}, 0)
//
// With GTRasterTypeGeoKey set to PixelIsPoint the model position of a pixel
// is its centre, so lookups and ModelExtent are shifted by half a pixel.
//
// # Working with Many Images
//
// LoadFilesParallel reads a set of files with a bounded worker pool and
// BuildIndex puts them into an R-tree keyed by model extent:
//
//	paths, _ := geotiff.DiscoverFiles("/data/dem")
//	set, errs := geotiff.LoadFilesParallel(paths, geotiff.DefaultLoadOptions())
//	idx := geotiff.BuildIndex(set)
//
//	for _, e := range idx.At(orb.Point{10.2, 47.5}) {
//	    // finest pixel size first
//	}
//
// ImageCache keeps recently used images in memory up to a byte limit.
//
// # Limitations
//
// Only the first image of a file is read. Compressed and planar pixel data
// fail with an error wrapping ErrUnsupported. Model coordinates are not
// reprojected: the GeoKeys describe the coordinate reference system but
// this package does not interpret it.
package geotiff
