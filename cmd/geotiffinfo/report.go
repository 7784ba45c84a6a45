package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v3"

	"github.com/beetlebugorg/geotiff/internal/transform"
	"github.com/beetlebugorg/geotiff/pkg/geotiff"
)

// imageReport is everything printed for one image.
type imageReport struct {
	Path       string        `json:"path,omitempty" yaml:"path,omitempty"`
	Width      int           `json:"width" yaml:"width"`
	Height     int           `json:"height" yaml:"height"`
	Samples    int           `json:"samples" yaml:"samples"`
	SampleKind string        `json:"sample_kind" yaml:"sample_kind"`
	Transform  string        `json:"transform" yaml:"transform"`
	// min x, min y, max x, max y
	Extent     [4]float64    `json:"extent" yaml:"extent,flow"`
	NoData     *float64      `json:"nodata,omitempty" yaml:"nodata,omitempty"`
	GeoKeys    []keyReport   `json:"geokeys" yaml:"geokeys"`
	Metadata   []metaReport  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Values     []valueReport `json:"values,omitempty" yaml:"values,omitempty"`
}

type keyReport struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

type metaReport struct {
	Name   string `json:"name" yaml:"name"`
	Value  string `json:"value" yaml:"value"`
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Sample *int   `json:"sample,omitempty" yaml:"sample,omitempty"`
}

type valueReport struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Source string  `json:"source,omitempty" yaml:"source,omitempty"`
	Value  *string `json:"value" yaml:"value"` // nil outside the raster
}

// transformName describes which georeferencing the image uses.
func transformName(t geotiff.CoordinateTransform) string {
	switch t.(type) {
	case *transform.Affine:
		return "affine"
	case *transform.ScaleOffset:
		return "scale-offset"
	case *transform.Triangulated:
		return "tie-point mesh"
	default:
		return "none"
	}
}

func boundArray(b orb.Bound) [4]float64 {
	return [4]float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]}
}

func newImageReport(g *geotiff.GeoTiff, points []orb.Point, sample int) imageReport {
	r := imageReport{
		Path:       g.Path(),
		Width:      g.RasterWidth(),
		Height:     g.RasterHeight(),
		Samples:    g.NumSamples(),
		SampleKind: g.SampleKind().String(),
		Transform:  transformName(g.Transform()),
		Extent:     boundArray(g.ModelExtent()),
	}
	if v, ok := g.NoData(); ok {
		r.NoData = &v
	}

	keys := g.GeoKeys()
	r.GeoKeys = append(r.GeoKeys, keyReport{
		Key:   "Version",
		Value: fmt.Sprintf("%d.%d.%d", keys.KeyDirectoryVersion, keys.KeyRevision, keys.MinorRevision),
	})
	for _, kv := range keys.Values() {
		r.GeoKeys = append(r.GeoKeys, keyReport{Key: kv.ID.String(), Value: fmt.Sprint(kv.Value)})
	}

	for _, item := range g.Metadata() {
		m := metaReport{Name: item.Name, Value: item.Value, Domain: item.Domain}
		if item.Sample >= 0 {
			s := item.Sample
			m.Sample = &s
		}
		r.Metadata = append(r.Metadata, m)
	}

	for _, p := range points {
		r.Values = append(r.Values, lookup(g, p, sample))
	}
	return r
}

func lookup(g *geotiff.GeoTiff, p orb.Point, sample int) valueReport {
	vr := valueReport{X: p[0], Y: p[1]}
	if v, ok := g.ValueAt(p, sample); ok {
		s := v.String()
		vr.Value = &s
	}
	return vr
}

// writeReport prints a value in the requested format.
func writeReport(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "text":
		text(w)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (r imageReport) writeText(w io.Writer) {
	if r.Path != "" {
		fmt.Fprintf(w, "=== %s ===\n", r.Path)
	}
	fmt.Fprintf(w, "Size: %d x %d pixels, %d %s sample(s) per pixel\n", r.Width, r.Height, r.Samples, r.SampleKind)
	fmt.Fprintf(w, "Transform: %s\n", r.Transform)
	fmt.Fprintf(w, "Extent: x %.6f to %.6f, y %.6f to %.6f\n", r.Extent[0], r.Extent[2], r.Extent[1], r.Extent[3])
	if r.NoData != nil {
		fmt.Fprintf(w, "NoData: %g\n", *r.NoData)
	}

	fmt.Fprintf(w, "\n=== GeoKeys ===\n")
	for _, k := range r.GeoKeys {
		fmt.Fprintf(w, "%-28s: %s\n", k.Key, k.Value)
	}

	if len(r.Metadata) > 0 {
		fmt.Fprintf(w, "\n=== Metadata ===\n")
		for _, m := range r.Metadata {
			name := m.Name
			if m.Sample != nil {
				name = fmt.Sprintf("%s[%d]", name, *m.Sample)
			}
			if m.Domain != "" {
				name = m.Domain + ":" + name
			}
			fmt.Fprintf(w, "%-28s: %s\n", name, m.Value)
		}
	}

	if len(r.Values) > 0 {
		fmt.Fprintf(w, "\n=== Values ===\n")
		writeValuesText(w, r.Values)
	}
}

func writeValuesText(w io.Writer, values []valueReport) {
	for _, v := range values {
		var b strings.Builder
		fmt.Fprintf(&b, "(%g, %g): ", v.X, v.Y)
		if v.Value == nil {
			b.WriteString("outside raster")
		} else {
			b.WriteString(*v.Value)
		}
		if v.Source != "" {
			fmt.Fprintf(&b, " [%s]", v.Source)
		}
		fmt.Fprintln(w, b.String())
	}
}

// extentFeatures returns the model extents as GeoJSON polygons.
func extentFeatures(images []*geotiff.GeoTiff) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, g := range images {
		f := geojson.NewFeature(g.ModelExtent().ToPolygon())
		if g.Path() != "" {
			f.Properties["path"] = g.Path()
		}
		f.Properties["width"] = g.RasterWidth()
		f.Properties["height"] = g.RasterHeight()
		fc.Append(f)
	}
	return fc
}
