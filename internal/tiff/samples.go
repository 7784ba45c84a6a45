package tiff

import (
	"github.com/beetlebugorg/geotiff/internal/raster"
)

// Layout describes how pixel samples are stored in a file.
type Layout struct {
	Width, Height   int
	SamplesPerPixel int
	Kind            raster.Kind
}

// Layout reads the image dimensions and sample type.
func (f *File) Layout() (Layout, error) {
	var l Layout

	width, ok := f.Uint(ImageWidth)
	if !ok {
		return l, formatErrorf(ImageWidth, "missing")
	}
	height, ok := f.Uint(ImageLength)
	if !ok {
		return l, formatErrorf(ImageLength, "missing")
	}
	spp := uint64(1)
	if v, ok := f.Uint(SamplesPerPixel); ok {
		spp = v
	}
	if width == 0 || height == 0 || spp == 0 {
		return l, formatErrorf(0, "empty image %dx%d with %d samples per pixel", width, height, spp)
	}
	if width > uint64(f.size) || height > uint64(f.size) || spp > 64 || width > uint64(f.size)/height/spp {
		return l, formatErrorf(0, "image %dx%d does not fit in file of %d bytes", width, height, f.size)
	}

	bits, err := f.uniform(BitsPerSample, 1, spp)
	if err != nil {
		return l, err
	}
	format, err := f.uniform(SampleFormat, SampleFormatUint, spp)
	if err != nil {
		return l, err
	}
	kind, ok := sampleKind(format, bits)
	if !ok {
		return l, unsupportedf("%d bit samples of format %d", bits, format)
	}

	l = Layout{Width: int(width), Height: int(height), SamplesPerPixel: int(spp), Kind: kind}
	return l, nil
}

// uniform returns the single value shared by all samples of a per-sample
// entry, or def when the entry is absent.
func (f *File) uniform(tag Tag, def, spp uint64) (uint64, error) {
	vals, ok := f.Uints(tag)
	if !ok || len(vals) == 0 {
		if f.Has(tag) {
			return 0, formatErrorf(tag, "expected unsigned integer values")
		}
		return def, nil
	}
	if uint64(len(vals)) != spp && len(vals) != 1 {
		return 0, formatErrorf(tag, "has %d values for %d samples per pixel", len(vals), spp)
	}
	for _, v := range vals[1:] {
		if v != vals[0] {
			return 0, unsupportedf("%v differs between samples %v", tag, vals)
		}
	}
	return vals[0], nil
}

func sampleKind(format, bits uint64) (raster.Kind, bool) {
	switch format {
	case SampleFormatUint:
		switch bits {
		case 8:
			return raster.Uint8, true
		case 16:
			return raster.Uint16, true
		case 32:
			return raster.Uint32, true
		case 64:
			return raster.Uint64, true
		}
	case SampleFormatInt:
		switch bits {
		case 8:
			return raster.Int8, true
		case 16:
			return raster.Int16, true
		case 32:
			return raster.Int32, true
		case 64:
			return raster.Int64, true
		}
	case SampleFormatFloat:
		switch bits {
		case 32:
			return raster.Float32, true
		case 64:
			return raster.Float64, true
		}
	}
	return raster.Invalid, false
}

// ReadSamples decodes all pixel samples of the image in pixel interleaved
// order. Only uncompressed, chunky (PlanarConfiguration 1) images with 8,
// 16, 32 or 64 bit samples are supported; anything else returns an error
// wrapping ErrUnsupported.
func (f *File) ReadSamples() (raster.Data, error) {
	l, err := f.Layout()
	if err != nil {
		return nil, err
	}

	if c, ok := f.Uint(Compression); ok && c != CompressionNone {
		return nil, unsupportedf("compression %d", c)
	}
	if p, ok := f.Uint(PlanarConfiguration); ok && p != 1 {
		return nil, unsupportedf("planar configuration %d", p)
	}

	pixelSize := l.SamplesPerPixel * l.Kind.Size()
	rowSize := l.Width * pixelSize
	buf := make([]byte, rowSize*l.Height)

	if f.Has(TileOffsets) {
		err = f.readTiles(l, pixelSize, buf)
	} else {
		err = f.readStrips(l, rowSize, buf)
	}
	if err != nil {
		return nil, err
	}

	return raster.Decode(l.Kind, f.ByteOrder, buf)
}

func (f *File) readStrips(l Layout, rowSize int, buf []byte) error {
	offsets, ok := f.Uints(StripOffsets)
	if !ok {
		return formatErrorf(StripOffsets, "missing")
	}
	rowsPerStrip := uint64(l.Height)
	if v, ok := f.Uint(RowsPerStrip); ok && v > 0 && v < rowsPerStrip {
		rowsPerStrip = v
	}

	strips := (uint64(l.Height) + rowsPerStrip - 1) / rowsPerStrip
	if uint64(len(offsets)) < strips {
		return formatErrorf(StripOffsets, "has %d values, need %d strips", len(offsets), strips)
	}

	for s := uint64(0); s < strips; s++ {
		first := s * rowsPerStrip
		rows := min(rowsPerStrip, uint64(l.Height)-first)
		want := rows * uint64(rowSize)

		data, err := f.readAt(offsets[s], want)
		if err != nil {
			return formatErrorf(StripOffsets, "strip %d: %v", s, err)
		}
		copy(buf[first*uint64(rowSize):], data)
	}
	return nil
}

func (f *File) readTiles(l Layout, pixelSize int, buf []byte) error {
	offsets, ok := f.Uints(TileOffsets)
	if !ok {
		return formatErrorf(TileOffsets, "expected unsigned integer values")
	}
	tw, ok := f.Uint(TileWidth)
	if !ok || tw == 0 {
		return formatErrorf(TileWidth, "missing")
	}
	th, ok := f.Uint(TileLength)
	if !ok || th == 0 {
		return formatErrorf(TileLength, "missing")
	}
	if tw > uint64(f.size) || th > uint64(f.size) || tw*th > uint64(f.size) {
		return formatErrorf(TileWidth, "tile %dx%d does not fit in file", tw, th)
	}

	across := (uint64(l.Width) + tw - 1) / tw
	down := (uint64(l.Height) + th - 1) / th
	if uint64(len(offsets)) < across*down {
		return formatErrorf(TileOffsets, "has %d values, need %d tiles", len(offsets), across*down)
	}

	tileRow := tw * uint64(pixelSize)
	rowSize := uint64(l.Width * pixelSize)
	for ty := uint64(0); ty < down; ty++ {
		for tx := uint64(0); tx < across; tx++ {
			i := ty*across + tx
			data, err := f.readAt(offsets[i], tileRow*th)
			if err != nil {
				return formatErrorf(TileOffsets, "tile %d: %v", i, err)
			}

			// Tiles on the right and bottom edges are padded.
			cols := min(tw, uint64(l.Width)-tx*tw)
			rows := min(th, uint64(l.Height)-ty*th)
			for r := uint64(0); r < rows; r++ {
				dst := (ty*th+r)*rowSize + tx*tw*uint64(pixelSize)
				src := r * tileRow
				copy(buf[dst:dst+cols*uint64(pixelSize)], data[src:])
			}
		}
	}
	return nil
}
