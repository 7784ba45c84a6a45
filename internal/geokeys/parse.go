// Package geokeys decodes the GeoKeyDirectoryTag of a GeoTIFF file into
// named georeferencing parameters.
//
// The directory is an array of SHORT values: a four value header (version,
// revision, minor revision, number of keys) followed by one four value
// entry per key (key ID, TIFF tag location, count, value or offset). A key
// with location 0 stores its SHORT value inline. Other keys point into the
// GeoDoubleParamsTag or GeoAsciiParamsTag arrays.
package geokeys

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"

	"github.com/beetlebugorg/geotiff/internal/tiff"
)

// Options controls parsing.
type Options struct {
	// SkipUnknownKeys ignores keys outside GeoTIFF 1.1 instead of failing.
	SkipUnknownKeys bool

	// ErrorLog receives one line per skipped key. Nil discards them.
	ErrorLog io.Writer
}

// Parse decodes a GeoKeyDirectory. doubles and ascii are the payloads of
// GeoDoubleParamsTag and GeoAsciiParamsTag and may be nil when the file
// has no such tag.
func Parse(directory []uint16, doubles []float64, ascii []byte, opts Options) (*Directory, error) {
	if len(directory) < 4 {
		return nil, formatErrorf(0, "%d values, need at least 4", len(directory))
	}

	d := &Directory{
		KeyDirectoryVersion: directory[0],
		KeyRevision:         directory[1],
		MinorRevision:       directory[2],
	}
	numKeys := int(directory[3])
	if len(directory)-4 != 4*numKeys {
		return nil, formatErrorf(0, "%d values do not hold %d keys", len(directory), numKeys)
	}

	for i := 4; i < len(directory); i += 4 {
		e := entry{
			id:       KeyID(directory[i]),
			location: tiff.Tag(directory[i+1]),
			count:    directory[i+2],
			value:    directory[i+3],
		}

		var err error
		switch p := d.slot(e.id).(type) {
		case **uint16:
			*p, err = decode[uint16](e.short())
		case **float64:
			*p, err = decode[float64](e.double(doubles))
		case **string:
			*p, err = decode[string](e.ascii(ascii))
		case **ModelType:
			var v uint16
			if v, err = e.short(); err == nil {
				m := ModelType(v)
				*p = &m
			}
		case **RasterType:
			var v uint16
			if v, err = e.short(); err == nil {
				r := RasterType(v)
				if r != PixelIsArea && r != PixelIsPoint {
					return nil, formatErrorf(e.id, "unknown raster type %d", v)
				}
				*p = &r
			}
		default:
			if !opts.SkipUnknownKeys {
				return nil, formatErrorf(e.id, "unknown key")
			}
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "geokeys: skipping unknown key %d\n", uint16(e.id))
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

func decode[T any](v T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type entry struct {
	id       KeyID
	location tiff.Tag
	count    uint16
	value    uint16
}

func (e entry) short() (uint16, error) {
	if e.location != 0 {
		return 0, formatErrorf(e.id, "expected SHORT value, found location %v", e.location)
	}
	if e.count != 1 {
		return 0, formatErrorf(e.id, "expected count 1, got %d", e.count)
	}
	return e.value, nil
}

func (e entry) double(doubles []float64) (float64, error) {
	if e.location != tiff.GeoDoubleParams {
		return 0, formatErrorf(e.id, "expected DOUBLE value, found location %v", e.location)
	}
	if e.count != 1 {
		return 0, formatErrorf(e.id, "expected count 1, got %d", e.count)
	}
	if int(e.value) >= len(doubles) {
		return 0, formatErrorf(e.id, "offset %d out of bounds for %d double params", e.value, len(doubles))
	}
	return doubles[e.value], nil
}

// ascii returns count bytes at offset, less the trailing "|" separator.
func (e entry) ascii(ascii []byte) (string, error) {
	if e.location != tiff.GeoAsciiParams {
		return "", formatErrorf(e.id, "expected ASCII value, found location %v", e.location)
	}
	start, end := int(e.value), int(e.value)+int(e.count)
	if e.count == 0 || start >= len(ascii) || end > len(ascii) {
		return "", formatErrorf(e.id, "range [%d, %d) out of bounds for %d ascii params", start, end, len(ascii))
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(bytes.TrimSuffix(ascii[start:end], []byte("|")))
	if err != nil {
		return "", formatErrorf(e.id, "%v", err)
	}
	return string(s), nil
}
