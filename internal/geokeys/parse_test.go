package geokeys

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T { return &v }

// directory builds a GeoKeyDirectory for the given four value key entries.
func directory(keys ...[4]uint16) []uint16 {
	d := []uint16{1, 1, 1, uint16(len(keys))}
	for _, k := range keys {
		d = append(d, k[:]...)
	}
	return d
}

// TestParse tests a typical projected CRS directory with all three value types
func TestParse(t *testing.T) {
	doubles := []float64{6378137, 298.257223563, 0.9996}
	ascii := []byte("WGS 84 / UTM zone 33N|WGS 84|\x00")

	d, err := Parse(directory(
		[4]uint16{1024, 0, 1, 1},
		[4]uint16{1025, 0, 1, 2},
		[4]uint16{1026, 34737, 22, 0},
		[4]uint16{2049, 34737, 7, 22},
		[4]uint16{2057, 34736, 1, 0},
		[4]uint16{2059, 34736, 1, 1},
		[4]uint16{3072, 0, 1, 32633},
		[4]uint16{3076, 0, 1, 9001},
		[4]uint16{3092, 34736, 1, 2},
		[4]uint16{4096, 0, 1, 5773},
	), doubles, ascii, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &Directory{
		KeyDirectoryVersion:  1,
		KeyRevision:          1,
		MinorRevision:        1,
		ModelType:            ptr(ModelTypeProjected),
		RasterType:           ptr(PixelIsPoint),
		Citation:             ptr("WGS 84 / UTM zone 33N"),
		GeogCitation:         ptr("WGS 84"),
		GeogSemiMajorAxis:    ptr(6378137.0),
		GeogInvFlattening:    ptr(298.257223563),
		ProjectedType:        ptr(uint16(32633)),
		ProjLinearUnits:      ptr(uint16(9001)),
		ProjScaleAtNatOrigin: ptr(0.9996),
		Vertical:             ptr(uint16(5773)),
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	if !d.PixelIsPoint() {
		t.Error("PixelIsPoint() = false")
	}
}

// TestParseEveryKey tests that every GeoTIFF 1.1 key is decoded into a field
func TestParseEveryKey(t *testing.T) {
	var keys [][4]uint16
	for _, id := range allKeys {
		var e [4]uint16
		switch d := Default(); d.slot(id).(type) {
		case **float64:
			e = [4]uint16{uint16(id), 34736, 1, 0}
		case **string:
			e = [4]uint16{uint16(id), 34737, 2, 0}
		case **RasterType:
			e = [4]uint16{uint16(id), 0, 1, 1}
		default:
			e = [4]uint16{uint16(id), 0, 1, 7}
		}
		keys = append(keys, e)
	}

	d, err := Parse(directory(keys...), []float64{1.5}, []byte("x|"), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	values := d.Values()
	if len(values) != len(allKeys) {
		t.Fatalf("Values() has %d keys, want %d", len(values), len(allKeys))
	}
	for i, kv := range values {
		if kv.ID != allKeys[i] {
			t.Errorf("Values()[%d].ID = %v, want %v", i, kv.ID, allKeys[i])
		}
		if strings.HasPrefix(kv.ID.String(), "GeoKey(") {
			t.Errorf("key %d has no name", uint16(kv.ID))
		}
	}
}

// TestParseDefault tests the directory of a file without GeoKeys
func TestParseDefault(t *testing.T) {
	d := Default()
	if d.KeyDirectoryVersion != 1 || d.KeyRevision != 1 || d.MinorRevision != 1 {
		t.Errorf("Default() version = %d.%d.%d", d.KeyDirectoryVersion, d.KeyRevision, d.MinorRevision)
	}
	if len(d.Values()) != 0 {
		t.Errorf("Default() has keys %v", d.Values())
	}
	if d.PixelIsPoint() {
		t.Error("Default().PixelIsPoint() = true")
	}

	empty, err := Parse(directory(), nil, nil, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(Default(), empty); diff != "" {
		t.Errorf("empty directory mismatch (-want +got):\n%s", diff)
	}
}

// TestParseErrors tests malformed directories and key values
func TestParseErrors(t *testing.T) {
	doubles := []float64{1}
	ascii := []byte("abc|\x00")

	tests := []struct {
		name      string
		directory []uint16
		key       KeyID
	}{
		{name: "short header", directory: []uint16{1, 1, 0}},
		{name: "key count mismatch", directory: []uint16{1, 1, 0, 2, 1024, 0, 1, 1}},
		{name: "unknown key", directory: directory([4]uint16{5000, 0, 1, 1}), key: 5000},
		{name: "short with location", directory: directory([4]uint16{1024, 34736, 1, 0}), key: GTModelTypeGeoKey},
		{name: "short with count 2", directory: directory([4]uint16{1024, 0, 2, 1}), key: GTModelTypeGeoKey},
		{name: "unknown raster type", directory: directory([4]uint16{1025, 0, 1, 3}), key: GTRasterTypeGeoKey},
		{name: "double inline", directory: directory([4]uint16{2057, 0, 1, 0}), key: GeogSemiMajorAxisGeoKey},
		{name: "double count", directory: directory([4]uint16{2057, 34736, 2, 0}), key: GeogSemiMajorAxisGeoKey},
		{name: "double offset", directory: directory([4]uint16{2057, 34736, 1, 1}), key: GeogSemiMajorAxisGeoKey},
		{name: "ascii in doubles", directory: directory([4]uint16{1026, 34736, 1, 0}), key: GTCitationGeoKey},
		{name: "ascii start", directory: directory([4]uint16{1026, 34737, 1, 5}), key: GTCitationGeoKey},
		{name: "ascii end", directory: directory([4]uint16{1026, 34737, 6, 2}), key: GTCitationGeoKey},
		{name: "ascii empty", directory: directory([4]uint16{1026, 34737, 0, 0}), key: GTCitationGeoKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.directory, doubles, ascii, Options{})
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Parse() error = %v, want *FormatError", err)
			}
			if fe.Key != tt.key {
				t.Errorf("FormatError.Key = %v, want %v", fe.Key, tt.key)
			}
		})
	}
}

// TestParseASCIISlicing tests that each string takes count bytes and drops its separator
func TestParseASCIISlicing(t *testing.T) {
	ascii := []byte("NAD83|M\xfcnchen|\x00")
	d, err := Parse(directory(
		[4]uint16{1026, 34737, 6, 0},
		[4]uint16{2049, 34737, 8, 6},
		[4]uint16{4097, 34737, 1, 14},
	), nil, ascii, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := *d.Citation; got != "NAD83" {
		t.Errorf("Citation = %q", got)
	}
	if got := *d.GeogCitation; got != "München" {
		t.Errorf("GeogCitation = %q", got)
	}
	if got := *d.VerticalCitation; got != "\x00" {
		t.Errorf("VerticalCitation = %q", got)
	}
}

// TestParseSkipUnknownKeys tests that unknown keys are logged and ignored when requested
func TestParseSkipUnknownKeys(t *testing.T) {
	var log strings.Builder
	d, err := Parse(directory(
		[4]uint16{1024, 0, 1, 2},
		[4]uint16{5000, 0, 1, 1},
		[4]uint16{60000, 34737, 3, 0},
	), nil, nil, Options{SkipUnknownKeys: true, ErrorLog: &log})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.ModelType == nil || *d.ModelType != ModelTypeGeographic {
		t.Errorf("ModelType = %v", d.ModelType)
	}
	if got := strings.Count(log.String(), "skipping unknown key"); got != 2 {
		t.Errorf("ErrorLog = %q, want 2 lines", log.String())
	}
}

// TestFormatErrorMessage tests that messages name the key
func TestFormatErrorMessage(t *testing.T) {
	err := formatErrorf(GeogSemiMajorAxisGeoKey, "expected count 1, got %d", 2)
	if got, want := err.Error(), "invalid GeogSemiMajorAxisGeoKey: expected count 1, got 2"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := (&FormatError{Reason: "x"}).Error(); got != "invalid GeoKeyDirectory: x" {
		t.Errorf("Error() = %q", got)
	}
	if got := ModelType(32767).String(); got != "UserDefined" {
		t.Errorf("ModelType String() = %q", got)
	}
	if got := RasterType(9).String(); got != "RasterType(9)" {
		t.Errorf("RasterType String() = %q", got)
	}
}
