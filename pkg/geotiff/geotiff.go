package geotiff

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/beetlebugorg/geotiff/internal/geokeys"
	"github.com/beetlebugorg/geotiff/internal/raster"
	"github.com/beetlebugorg/geotiff/internal/tiff"
	"github.com/beetlebugorg/geotiff/internal/transform"
)

// Types shared with the internal packages.
type (
	// GeoKeys is the decoded GeoKeyDirectory.
	GeoKeys = geokeys.Directory

	// RasterType tells whether pixel values describe areas or points.
	RasterType = geokeys.RasterType

	// CoordinateTransform converts points between raster and model space.
	CoordinateTransform = transform.CoordinateTransform

	// Value is a single raster sample with its storage type.
	Value = raster.Value

	// Number is any integer or floating point type a sample converts to.
	Number = raster.Number
)

const (
	PixelIsArea  = geokeys.PixelIsArea
	PixelIsPoint = geokeys.PixelIsPoint
)

// ErrUnsupported is wrapped by errors for valid files that use features this
// package does not decode, such as compressed pixel data.
var ErrUnsupported = errors.New("unsupported GeoTIFF feature")

// GeoTiff is a decoded GeoTIFF image: georeferencing metadata plus all raster
// samples. It is immutable and safe for concurrent use.
type GeoTiff struct {
	path       string
	width      int
	height     int
	numSamples int

	geoKeys   *geokeys.Directory
	transform transform.CoordinateTransform
	data      raster.Data

	noData   *float64
	metadata []MetadataItem
}

// Open reads the GeoTIFF file at path with default options.
func Open(path string) (*GeoTiff, error) {
	return OpenWithOptions(path, DefaultReadOptions())
}

// OpenWithOptions reads the GeoTIFF file at path.
func OpenWithOptions(path string, opts ReadOptions) (*GeoTiff, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := ReadWithOptions(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	g.path = path
	return g, nil
}

// Read decodes a GeoTIFF with default options.
func Read(r io.ReadSeeker) (*GeoTiff, error) {
	return ReadWithOptions(r, DefaultReadOptions())
}

// ReadWithOptions decodes a GeoTIFF: the first image of the file, its
// GeoKeys, its coordinate transformation and all of its samples.
//
// Example:
//
//	g, err := geotiff.ReadWithOptions(f, geotiff.ReadOptions{
//	    TiePointMeshes: true,
//	    ErrorLog:       os.Stderr,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	elevation, ok := geotiff.SampleAt[float32](g, orb.Point{10.2, 47.5}, 0)
func ReadWithOptions(r io.ReadSeeker, opts ReadOptions) (*GeoTiff, error) {
	f, err := tiff.Decode(r, tiff.Options{ErrorLog: opts.ErrorLog})
	if err != nil {
		return nil, wrapUnsupported(err)
	}

	keys, err := readGeoKeys(f, opts)
	if err != nil {
		return nil, err
	}
	ct, err := readTransform(f, opts)
	if err != nil {
		return nil, wrapUnsupported(err)
	}

	layout, err := f.Layout()
	if err != nil {
		return nil, wrapUnsupported(err)
	}
	data, err := f.ReadSamples()
	if err != nil {
		return nil, wrapUnsupported(err)
	}

	g := &GeoTiff{
		width:      layout.Width,
		height:     layout.Height,
		numSamples: layout.SamplesPerPixel,
		geoKeys:    keys,
		transform:  ct,
		data:       data,
	}
	if s, ok := f.String(tiff.GDALNoData); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			g.noData = &v
		} else if opts.ErrorLog != nil {
			fmt.Fprintf(opts.ErrorLog, "geotiff: ignoring GDAL_NODATA %q: %v\n", s, err)
		}
	}
	if s, ok := f.String(tiff.GDALMetadata); ok {
		items, err := parseMetadata(s)
		if err != nil && opts.ErrorLog != nil {
			fmt.Fprintf(opts.ErrorLog, "geotiff: ignoring GDAL_METADATA: %v\n", err)
		}
		g.metadata = items
	}
	return g, nil
}

func wrapUnsupported(err error) error {
	if errors.Is(err, tiff.ErrUnsupported) || errors.Is(err, transform.ErrUnsupported) {
		return fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return err
}

// readGeoKeys parses the GeoKeyDirectory, or returns the default directory
// when the file has none.
func readGeoKeys(f *tiff.File, opts ReadOptions) (*geokeys.Directory, error) {
	if !f.Has(tiff.GeoKeyDirectory) {
		return geokeys.Default(), nil
	}
	raw, ok := f.Uints(tiff.GeoKeyDirectory)
	if !ok {
		return nil, &tiff.FormatError{Tag: tiff.GeoKeyDirectory, Reason: "expected SHORT values"}
	}
	directory := make([]uint16, len(raw))
	for i, v := range raw {
		if v > math.MaxUint16 {
			return nil, &tiff.FormatError{Tag: tiff.GeoKeyDirectory, Reason: fmt.Sprintf("value %d out of range", v)}
		}
		directory[i] = uint16(v)
	}

	var doubles []float64
	if f.Has(tiff.GeoDoubleParams) {
		if doubles, ok = f.Floats(tiff.GeoDoubleParams); !ok {
			return nil, &tiff.FormatError{Tag: tiff.GeoDoubleParams, Reason: "expected DOUBLE values"}
		}
	}
	ascii, _ := f.ASCII(tiff.GeoAsciiParams)

	return geokeys.Parse(directory, doubles, ascii, geokeys.Options{
		SkipUnknownKeys: opts.SkipUnknownGeoKeys,
		ErrorLog:        opts.ErrorLog,
	})
}

func readTransform(f *tiff.File, opts ReadOptions) (transform.CoordinateTransform, error) {
	var data [3][]float64
	for i, tag := range []tiff.Tag{tiff.ModelPixelScale, tiff.ModelTiepoint, tiff.ModelTransformation} {
		if !f.Has(tag) {
			continue
		}
		v, ok := f.Floats(tag)
		if !ok {
			return nil, &tiff.FormatError{Tag: tag, Reason: "expected numeric values"}
		}
		data[i] = v
	}
	return transform.FromTagData(data[0], data[1], data[2], transform.Options{
		TiePointMeshes: opts.TiePointMeshes,
	})
}

// Path returns the file the image was opened from, or "" when it was read
// from a stream.
func (g *GeoTiff) Path() string { return g.path }

// RasterWidth returns the image width in pixels.
func (g *GeoTiff) RasterWidth() int { return g.width }

// RasterHeight returns the image height in pixels.
func (g *GeoTiff) RasterHeight() int { return g.height }

// NumSamples returns the number of samples per pixel.
func (g *GeoTiff) NumSamples() int { return g.numSamples }

// SampleKind returns the storage type of the samples.
func (g *GeoTiff) SampleKind() raster.Kind { return g.data.Kind() }

// GeoKeys returns the GeoKey directory. Files without one report the
// default directory with every key absent.
func (g *GeoTiff) GeoKeys() *GeoKeys { return g.geoKeys }

// Transform returns the coordinate transformation, or nil when the file has
// no georeferencing tags and raster coordinates are model coordinates.
func (g *GeoTiff) Transform() CoordinateTransform { return g.transform }

// NoData returns the GDAL_NODATA value, if the file has one.
func (g *GeoTiff) NoData() (float64, bool) {
	if g.noData == nil {
		return 0, false
	}
	return *g.noData, true
}

// ToModel converts raster coordinates to model coordinates.
func (g *GeoTiff) ToModel(p orb.Point) orb.Point {
	if g.transform == nil {
		return p
	}
	return g.transform.ToModel(p)
}

// ToRaster converts model coordinates to raster coordinates.
func (g *GeoTiff) ToRaster(p orb.Point) orb.Point {
	if g.transform == nil {
		return p
	}
	return g.transform.ToRaster(p)
}

// rasterOffset is the shift from raster coordinates to pixel indices.
// With PixelIsPoint the pixel centres sit on integer coordinates.
func (g *GeoTiff) rasterOffset() float64 {
	if g.geoKeys.PixelIsPoint() {
		return -0.5
	}
	return 0
}

// ModelExtent returns the bounding box of the image in model space: the
// four raster corners mapped through the transformation.
func (g *GeoTiff) ModelExtent() orb.Bound {
	off := g.rasterOffset()
	w, h := float64(g.width)+off, float64(g.height)+off
	corners := orb.MultiPoint{
		g.ToModel(orb.Point{off, off}),
		g.ToModel(orb.Point{w, off}),
		g.ToModel(orb.Point{off, h}),
		g.ToModel(orb.Point{w, h}),
	}
	return corners.Bound()
}

// ValueAt returns a sample of the pixel at model coordinates p. It reports
// false when p falls outside the raster. It panics if sample is not in
// [0, NumSamples()).
func (g *GeoTiff) ValueAt(p orb.Point, sample int) (Value, bool) {
	i, ok := g.index(p, sample)
	if !ok {
		return Value{}, false
	}
	return g.data.At(i), true
}

// SampleAt returns a sample of the pixel at model coordinates p converted to
// T. It reports false when p falls outside the raster or the value cannot
// be represented as T. It panics if sample is out of range.
func SampleAt[T Number](g *GeoTiff, p orb.Point, sample int) (T, bool) {
	v, ok := g.ValueAt(p, sample)
	if !ok {
		var zero T
		return zero, false
	}
	return raster.Convert[T](v)
}

func (g *GeoTiff) index(p orb.Point, sample int) (int, bool) {
	if sample < 0 || sample >= g.numSamples {
		panic(fmt.Sprintf("geotiff: sample %d out of range [0, %d)", sample, g.numSamples))
	}

	r := g.ToRaster(p)
	off := g.rasterOffset()
	x, y := r[0]-off, r[1]-off

	// Written so that NaN fails every comparison.
	if !(x >= 0 && x < float64(g.width) && y >= 0 && y < float64(g.height)) {
		return 0, false
	}
	return (int(y)*g.width+int(x))*g.numSamples + sample, true
}
