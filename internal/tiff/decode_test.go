package tiff_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/beetlebugorg/geotiff/internal/tiff"
	"github.com/beetlebugorg/geotiff/internal/tiff/tifftest"
)

type variant struct {
	name    string
	order   binary.ByteOrder
	bigTIFF bool
}

var variants = []variant{
	{"little endian", binary.LittleEndian, false},
	{"big endian", binary.BigEndian, false},
	{"little endian BigTIFF", binary.LittleEndian, true},
	{"big endian BigTIFF", binary.BigEndian, true},
}

func decode(t *testing.T, data []byte) *tiff.File {
	t.Helper()
	f, err := tiff.Decode(bytes.NewReader(data), tiff.Options{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return f
}

// TestDecodeHeaderErrors tests that malformed headers are rejected with a FormatError
func TestDecodeHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", []byte("II")},
		{"bad byte order", []byte("XX*\x00\x08\x00\x00\x00")},
		{"bad identifier", []byte("II\x29\x00\x08\x00\x00\x00")},
		{"bad BigTIFF bytesize", []byte("II\x2b\x00\x04\x00\x00\x00\x10\x00\x00\x00\x00\x00\x00\x00")},
		{"zero IFD offset", []byte("II*\x00\x00\x00\x00\x00")},
		{"IFD offset past end", []byte("II*\x00\xff\x00\x00\x00")},
		{"IFD entry count past end", []byte("II*\x00\x08\x00\x00\x00\xff\xff")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tiff.Decode(bytes.NewReader(tt.data), tiff.Options{})
			var fe *tiff.FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Decode() error = %v, want *FormatError", err)
			}
		})
	}
}

// TestDecodeEntries tests every field type in both byte orders and both
// container variants, inline and out of line.
func TestDecodeEntries(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			enc := tifftest.New(v.order, v.bigTIFF).
				Shorts(tiff.BitsPerSample, 8, 8, 8).
				Longs(tiff.ImageWidth, 640).
				Doubles(tiff.ModelPixelScale, 0.5, 0.25, 0).
				Rationals(tiff.Tag(282), 300, 1, 1, 3).
				ASCII(tiff.Software, "geotiff test")
			f := decode(t, enc.Bytes())

			if f.BigTIFF != v.bigTIFF {
				t.Errorf("BigTIFF = %v, want %v", f.BigTIFF, v.bigTIFF)
			}
			if f.ByteOrder != v.order {
				t.Errorf("ByteOrder = %v, want %v", f.ByteOrder, v.order)
			}

			if got, _ := f.Uints(tiff.BitsPerSample); !cmp.Equal(got, []uint64{8, 8, 8}) {
				t.Errorf("BitsPerSample = %v", got)
			}
			if got, ok := f.Uint(tiff.ImageWidth); !ok || got != 640 {
				t.Errorf("ImageWidth = %d, %v", got, ok)
			}
			if got, _ := f.Floats(tiff.ModelPixelScale); !cmp.Equal(got, []float64{0.5, 0.25, 0}) {
				t.Errorf("ModelPixelScale = %v", got)
			}
			got, _ := f.Floats(tiff.Tag(282))
			if diff := cmp.Diff([]float64{300, 1.0 / 3}, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("rational mismatch (-want +got):\n%s", diff)
			}
			if s, ok := f.String(tiff.Software); !ok || s != "geotiff test" {
				t.Errorf("Software = %q, %v", s, ok)
			}
		})
	}
}

// TestValueAccessors tests that accessors reject payloads of the wrong type
func TestValueAccessors(t *testing.T) {
	enc := tifftest.New(binary.LittleEndian, false).
		Doubles(tiff.ModelTiepoint, 0, 0, 0, 1, 2, 3).
		Rationals(tiff.Tag(282), 72, 1).
		ASCII(tiff.ImageDescription, "x").
		Raw(tiff.Tag(50000), tiff.SShort, 2, []byte{0xff, 0xff, 0x02, 0x00})
	f := decode(t, enc.Bytes())

	if _, ok := f.Uints(tiff.ModelTiepoint); ok {
		t.Error("Uints() accepted DOUBLE entry")
	}
	if _, ok := f.Uints(tiff.Tag(282)); ok {
		t.Error("Uints() accepted RATIONAL entry")
	}
	if _, ok := f.Floats(tiff.ImageDescription); ok {
		t.Error("Floats() accepted ASCII entry")
	}
	if _, ok := f.String(tiff.ModelTiepoint); ok {
		t.Error("String() accepted DOUBLE entry")
	}
	if got, _ := f.Floats(tiff.Tag(50000)); !cmp.Equal(got, []float64{-1, 2}) {
		t.Errorf("SSHORT Floats() = %v, want [-1 2]", got)
	}
	if _, ok := f.Uints(tiff.GeoKeyDirectory); ok {
		t.Error("Uints() reported missing entry")
	}

	v, ok := f.Value(tiff.ImageDescription)
	if !ok || v.Type != tiff.ASCII || v.Count != 2 {
		t.Errorf("Value() = %+v, %v", v, ok)
	}
	if b, ok := v.Bytes(); !ok || string(b) != "x\x00" {
		t.Errorf("Bytes() = %q, %v", b, ok)
	}
}

// TestASCIILatin1 tests that bytes above 127 decode as ISO 8859-1
func TestASCIILatin1(t *testing.T) {
	enc := tifftest.New(binary.BigEndian, false).ASCII(tiff.GeoAsciiParams, "Caf\xe9 M\xfcnchen|")
	f := decode(t, enc.Bytes())

	s, ok := f.String(tiff.GeoAsciiParams)
	if !ok || s != "Café München|" {
		t.Errorf("String() = %q, %v", s, ok)
	}
	raw, _ := f.ASCII(tiff.GeoAsciiParams)
	if len(raw) != 14 || raw[len(raw)-1] != 0 {
		t.Errorf("ASCII() = %q, want 14 bytes ending in NUL", raw)
	}
}

// TestDecodeSkipsUnknownFieldType tests that an unknown field type is logged and skipped
func TestDecodeSkipsUnknownFieldType(t *testing.T) {
	enc := tifftest.New(binary.LittleEndian, false).
		Longs(tiff.ImageWidth, 1).
		Raw(tiff.Tag(50001), tiff.FieldType(99), 1, []byte{1, 2, 3, 4})

	var log strings.Builder
	f, err := tiff.Decode(bytes.NewReader(enc.Bytes()), tiff.Options{ErrorLog: &log})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if f.Has(tiff.Tag(50001)) {
		t.Error("entry with unknown type was kept")
	}
	if !f.Has(tiff.ImageWidth) {
		t.Error("ImageWidth missing")
	}
	if !strings.Contains(log.String(), "unknown field type 99") {
		t.Errorf("ErrorLog = %q", log.String())
	}
}

// TestDecodeEntryOutOfRange tests that payloads pointing outside the file are rejected
func TestDecodeEntryOutOfRange(t *testing.T) {
	ifd := func(typ tiff.FieldType, count, offset uint32) []byte {
		b := []byte("II*\x00\x08\x00\x00\x00\x01\x00")
		b = binary.LittleEndian.AppendUint16(b, uint16(tiff.ImageWidth))
		b = binary.LittleEndian.AppendUint16(b, uint16(typ))
		b = binary.LittleEndian.AppendUint32(b, count)
		b = binary.LittleEndian.AppendUint32(b, offset)
		return binary.LittleEndian.AppendUint32(b, 0)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"count exceeds file", ifd(tiff.Long, 1000, 8)},
		{"offset past end", ifd(tiff.Long, 2, 1000)},
		{"huge count", ifd(tiff.Double, math.MaxUint32, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tiff.Decode(bytes.NewReader(tt.data), tiff.Options{})
			var fe *tiff.FormatError
			if !errors.As(err, &fe) || fe.Tag != tiff.ImageWidth {
				t.Fatalf("Decode() error = %v, want FormatError for ImageWidth", err)
			}
		})
	}
}

// TestTagsAndSummary tests tag enumeration order and the summary line
func TestTagsAndSummary(t *testing.T) {
	enc := tifftest.New(binary.LittleEndian, true).
		Doubles(tiff.ModelPixelScale, 1, 1, 0).
		Longs(tiff.ImageWidth, 1).
		Shorts(tiff.GeoKeyDirectory, 1, 1, 0, 0)
	f := decode(t, enc.Bytes())

	want := []tiff.Tag{tiff.ImageWidth, tiff.ModelPixelScale, tiff.GeoKeyDirectory}
	if diff := cmp.Diff(want, f.Tags()); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}
	if s := f.Summary(); !strings.HasPrefix(s, "BigTIFF") || !strings.Contains(s, "3 entries") {
		t.Errorf("Summary() = %q", s)
	}
	if got := tiff.GeoKeyDirectory.String(); got != "GeoKeyDirectoryTag" {
		t.Errorf("String() = %q", got)
	}
}
