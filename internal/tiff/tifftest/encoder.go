// Package tifftest builds small TIFF files in memory for tests.
package tifftest

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/beetlebugorg/geotiff/internal/tiff"
)

type entry struct {
	tag   tiff.Tag
	typ   tiff.FieldType
	count uint64
	raw   []byte
	blobs [][]byte // when set, raw is replaced by the file offsets of the blobs
}

// Encoder collects IFD entries and pixel data and lays them out as a
// single-IFD TIFF or BigTIFF file.
type Encoder struct {
	Order   binary.ByteOrder
	BigTIFF bool

	entries map[tiff.Tag]*entry
}

// New returns an encoder for the given byte order and container variant.
func New(order binary.ByteOrder, bigTIFF bool) *Encoder {
	return &Encoder{Order: order, BigTIFF: bigTIFF, entries: make(map[tiff.Tag]*entry)}
}

// Raw adds an entry with an already encoded payload.
func (e *Encoder) Raw(tag tiff.Tag, typ tiff.FieldType, count uint64, raw []byte) *Encoder {
	e.entries[tag] = &entry{tag: tag, typ: typ, count: count, raw: raw}
	return e
}

// Shorts adds a SHORT entry.
func (e *Encoder) Shorts(tag tiff.Tag, v ...uint16) *Encoder {
	raw := make([]byte, 2*len(v))
	for i, x := range v {
		e.Order.PutUint16(raw[2*i:], x)
	}
	return e.Raw(tag, tiff.Short, uint64(len(v)), raw)
}

// Longs adds a LONG entry.
func (e *Encoder) Longs(tag tiff.Tag, v ...uint32) *Encoder {
	raw := make([]byte, 4*len(v))
	for i, x := range v {
		e.Order.PutUint32(raw[4*i:], x)
	}
	return e.Raw(tag, tiff.Long, uint64(len(v)), raw)
}

// Doubles adds a DOUBLE entry.
func (e *Encoder) Doubles(tag tiff.Tag, v ...float64) *Encoder {
	raw := make([]byte, 8*len(v))
	for i, x := range v {
		e.Order.PutUint64(raw[8*i:], math.Float64bits(x))
	}
	return e.Raw(tag, tiff.Double, uint64(len(v)), raw)
}

// Rationals adds a RATIONAL entry from numerator, denominator pairs.
func (e *Encoder) Rationals(tag tiff.Tag, v ...uint32) *Encoder {
	raw := make([]byte, 4*len(v))
	for i, x := range v {
		e.Order.PutUint32(raw[4*i:], x)
	}
	return e.Raw(tag, tiff.Rational, uint64(len(v)/2), raw)
}

// ASCII adds a NUL terminated ASCII entry. s is written byte for byte.
func (e *Encoder) ASCII(tag tiff.Tag, s string) *Encoder {
	raw := append([]byte(s), 0)
	return e.Raw(tag, tiff.ASCII, uint64(len(raw)), raw)
}

// Blobs adds an offsets entry (such as StripOffsets) whose values point at
// the given data blocks, which are written into the file.
func (e *Encoder) Blobs(tag tiff.Tag, blobs ...[]byte) *Encoder {
	typ := tiff.Long
	if e.BigTIFF {
		typ = tiff.Long8
	}
	e.entries[tag] = &entry{tag: tag, typ: typ, count: uint64(len(blobs)), blobs: blobs}
	return e
}

// Strips adds ImageWidth, ImageLength, RowsPerStrip, StripOffsets and
// StripByteCounts for pixel data already encoded in file byte order.
func (e *Encoder) Strips(width, height, rowsPerStrip, pixelSize int, pixels []byte) *Encoder {
	rowSize := width * pixelSize
	var blobs [][]byte
	var counts []uint32
	for y := 0; y < height; y += rowsPerStrip {
		end := min(y+rowsPerStrip, height)
		blobs = append(blobs, pixels[y*rowSize:end*rowSize])
		counts = append(counts, uint32((end-y)*rowSize))
	}
	e.Longs(tiff.ImageWidth, uint32(width))
	e.Longs(tiff.ImageLength, uint32(height))
	e.Longs(tiff.RowsPerStrip, uint32(rowsPerStrip))
	e.Longs(tiff.StripByteCounts, counts...)
	return e.Blobs(tiff.StripOffsets, blobs...)
}

// Tiles adds ImageWidth, ImageLength, TileWidth, TileLength, TileOffsets
// and TileByteCounts. Edge tiles are padded with zeros.
func (e *Encoder) Tiles(width, height, tileWidth, tileHeight, pixelSize int, pixels []byte) *Encoder {
	rowSize := width * pixelSize
	tileRow := tileWidth * pixelSize
	var blobs [][]byte
	var counts []uint32
	for ty := 0; ty < height; ty += tileHeight {
		for tx := 0; tx < width; tx += tileWidth {
			tile := make([]byte, tileRow*tileHeight)
			for r := 0; r < tileHeight && ty+r < height; r++ {
				cols := min(tileWidth, width-tx)
				src := (ty+r)*rowSize + tx*pixelSize
				copy(tile[r*tileRow:], pixels[src:src+cols*pixelSize])
			}
			blobs = append(blobs, tile)
			counts = append(counts, uint32(len(tile)))
		}
	}
	e.Longs(tiff.ImageWidth, uint32(width))
	e.Longs(tiff.ImageLength, uint32(height))
	e.Longs(tiff.TileWidth, uint32(tileWidth))
	e.Longs(tiff.TileLength, uint32(tileHeight))
	e.Longs(tiff.TileByteCounts, counts...)
	return e.Blobs(tiff.TileOffsets, blobs...)
}

// Bytes lays out the file: header, data blocks, IFD, out-of-line values.
func (e *Encoder) Bytes() []byte {
	headerLen, entryLen, inlineLen, countLen := 8, 12, 4, 2
	if e.BigTIFF {
		headerLen, entryLen, inlineLen, countLen = 16, 20, 8, 8
	}

	entries := make([]*entry, 0, len(e.entries))
	for _, ent := range e.entries {
		entries = append(entries, ent)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].tag < entries[j].tag })

	out := make([]byte, headerLen)

	// Data blocks, then fill in the offsets entries.
	for _, ent := range entries {
		if ent.blobs == nil {
			continue
		}
		ent.raw = nil
		for _, b := range ent.blobs {
			off := uint64(len(out))
			out = append(out, b...)
			ent.raw = e.appendOffset(ent.raw, off)
		}
	}
	if len(out)%2 == 1 {
		out = append(out, 0)
	}

	ifdOffset := uint64(len(out))
	valuesStart := int(ifdOffset) + countLen + entryLen*len(entries) + inlineLen

	ifd := make([]byte, countLen)
	if e.BigTIFF {
		e.Order.PutUint64(ifd, uint64(len(entries)))
	} else {
		e.Order.PutUint16(ifd, uint16(len(entries)))
	}

	var values []byte
	for _, ent := range entries {
		rec := make([]byte, entryLen)
		e.Order.PutUint16(rec[0:], uint16(ent.tag))
		e.Order.PutUint16(rec[2:], uint16(ent.typ))
		field := rec[8:]
		if e.BigTIFF {
			e.Order.PutUint64(rec[4:], ent.count)
			field = rec[12:]
		} else {
			e.Order.PutUint32(rec[4:], uint32(ent.count))
		}

		if len(ent.raw) <= inlineLen {
			copy(field, ent.raw)
		} else {
			off := uint64(valuesStart + len(values))
			if e.BigTIFF {
				e.Order.PutUint64(field, off)
			} else {
				e.Order.PutUint32(field, uint32(off))
			}
			values = append(values, ent.raw...)
			if len(values)%2 == 1 {
				values = append(values, 0)
			}
		}
		ifd = append(ifd, rec...)
	}
	ifd = append(ifd, make([]byte, inlineLen)...) // no next IFD

	// Header
	if e.Order == binary.ByteOrder(binary.BigEndian) {
		copy(out, "MM")
	} else {
		copy(out, "II")
	}
	if e.BigTIFF {
		e.Order.PutUint16(out[2:], 43)
		e.Order.PutUint16(out[4:], 8)
		e.Order.PutUint16(out[6:], 0)
		e.Order.PutUint64(out[8:], ifdOffset)
	} else {
		e.Order.PutUint16(out[2:], 42)
		e.Order.PutUint32(out[4:], uint32(ifdOffset))
	}

	out = append(out, ifd...)
	return append(out, values...)
}

func (e *Encoder) appendOffset(raw []byte, off uint64) []byte {
	if e.BigTIFF {
		return e.Order.(binary.AppendByteOrder).AppendUint64(raw, off)
	}
	return e.Order.(binary.AppendByteOrder).AppendUint32(raw, uint32(off))
}
