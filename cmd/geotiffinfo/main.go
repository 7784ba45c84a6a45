// Command geotiffinfo prints the georeferencing of GeoTIFF files and looks up
// raster values at model coordinates.
//
// Usage:
//
//	geotiffinfo -file dem.tif -at 10.2,47.5 -at 10.3,47.5
//	geotiffinfo -file dem.tif -geojson
//	geotiffinfo -dir /data/dem -at 10.2,47.5 -format yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"golang.org/x/term"

	"github.com/beetlebugorg/geotiff/pkg/geotiff"
)

// pointList collects repeated -at flags.
type pointList []orb.Point

func (l *pointList) String() string {
	parts := make([]string, len(*l))
	for i, p := range *l {
		parts[i] = fmt.Sprintf("%g,%g", p[0], p[1])
	}
	return strings.Join(parts, " ")
}

func (l *pointList) Set(s string) error {
	p, err := parsePoint(s)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func parsePoint(s string) (orb.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return orb.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return orb.Point{x, y}, nil
}

func main() {
	file := flag.String("file", "", "Path to a GeoTIFF file")
	dir := flag.String("dir", "", "Directory of GeoTIFF files to index")
	asGeoJSON := flag.Bool("geojson", false, "Print model extents as a GeoJSON FeatureCollection")
	format := flag.String("format", "text", "Output format: text, json or yaml")
	sample := flag.Int("sample", 0, "Sample (band) index for -at lookups")
	workers := flag.Int("workers", 0, "Loader goroutines for -dir (0 = number of CPUs)")
	skipUnknown := flag.Bool("skip-unknown-keys", false, "Ignore GeoKeys outside GeoTIFF 1.1")
	var points pointList
	flag.Var(&points, "at", "Model coordinate x,y to sample (repeatable)")
	flag.Parse()

	if (*file == "") == (*dir == "") {
		log.Fatal("Please provide exactly one of -file or -dir")
	}

	readOpts := geotiff.DefaultReadOptions()
	readOpts.SkipUnknownGeoKeys = *skipUnknown
	readOpts.ErrorLog = os.Stderr

	var err error
	if *file != "" {
		err = describeFile(os.Stdout, *file, readOpts, points, *sample, *format, *asGeoJSON)
	} else {
		err = describeDir(os.Stdout, *dir, readOpts, *workers, points, *sample, *format, *asGeoJSON)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func describeFile(w io.Writer, path string, opts geotiff.ReadOptions, points []orb.Point, sample int, format string, asGeoJSON bool) error {
	g, err := geotiff.OpenWithOptions(path, opts)
	if err != nil {
		return err
	}
	if sample < 0 || sample >= g.NumSamples() {
		return fmt.Errorf("sample %d out of range, image has %d", sample, g.NumSamples())
	}

	if asGeoJSON {
		return writeGeoJSON(w, []*geotiff.GeoTiff{g})
	}
	r := newImageReport(g, points, sample)
	return writeReport(w, format, r, r.writeText)
}

// indexReport summarises a directory of images.
type indexReport struct {
	Images  int           `json:"images" yaml:"images"`
	Skipped int           `json:"skipped" yaml:"skipped"`
	Extent  [4]float64    `json:"extent" yaml:"extent,flow"`
	Files   []fileReport  `json:"files" yaml:"files"`
	Values  []valueReport `json:"values,omitempty" yaml:"values,omitempty"`
}

type fileReport struct {
	Path      string     `json:"path" yaml:"path"`
	Extent    [4]float64 `json:"extent" yaml:"extent,flow"`
	PixelSize float64    `json:"pixel_size" yaml:"pixel_size"`
}

func describeDir(w io.Writer, root string, opts geotiff.ReadOptions, workers int, points []orb.Point, sample int, format string, asGeoJSON bool) error {
	paths, err := geotiff.DiscoverFiles(root)
	if err != nil {
		return err
	}

	loadOpts := geotiff.DefaultLoadOptions()
	loadOpts.Read = opts
	loadOpts.Workers = workers
	loadOpts.ErrorLog = os.Stderr
	if term.IsTerminal(int(os.Stderr.Fd())) {
		loadOpts.Progress = func(loaded, total int) {
			fmt.Fprintf(os.Stderr, "\rLoading: %d/%d", loaded, total)
			if loaded == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}
	set, errs := geotiff.LoadFilesParallel(paths, loadOpts)

	if asGeoJSON {
		return writeGeoJSON(w, set.Images)
	}

	idx := geotiff.BuildIndex(set)
	r := indexReport{
		Images:  idx.Count(),
		Skipped: len(errs) + len(set.Images) - idx.Count(),
		Extent:  boundArray(idx.Bounds()),
	}
	for _, e := range idx.All() {
		r.Files = append(r.Files, fileReport{Path: e.Path, Extent: boundArray(e.Extent), PixelSize: e.PixelSize})
	}
	for _, p := range points {
		r.Values = append(r.Values, lookupIndex(idx, p, sample))
	}
	return writeReport(w, format, r, r.writeText)
}

// lookupIndex samples the finest image covering p. Images without the
// requested sample are passed over.
func lookupIndex(idx *geotiff.ImageIndex, p orb.Point, sample int) valueReport {
	for _, e := range idx.At(p) {
		if sample >= e.Image.NumSamples() {
			continue
		}
		if vr := lookup(e.Image, p, sample); vr.Value != nil {
			vr.Source = e.Path
			return vr
		}
	}
	return valueReport{X: p[0], Y: p[1]}
}

func (r indexReport) writeText(w io.Writer) {
	fmt.Fprintf(w, "Images: %d (skipped %d)\n", r.Images, r.Skipped)
	fmt.Fprintf(w, "Extent: x %.6f to %.6f, y %.6f to %.6f\n\n", r.Extent[0], r.Extent[2], r.Extent[1], r.Extent[3])
	for _, f := range r.Files {
		fmt.Fprintf(w, "%-40s %12.6g %v\n", f.Path, f.PixelSize, f.Extent)
	}
	if len(r.Values) > 0 {
		fmt.Fprintf(w, "\n=== Values ===\n")
		writeValuesText(w, r.Values)
	}
}

func writeGeoJSON(w io.Writer, images []*geotiff.GeoTiff) error {
	data, err := extentFeatures(images).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
