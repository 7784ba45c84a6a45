// Package tiff decodes the header and first image file directory of classic
// and BigTIFF files, and reads uncompressed pixel samples.
package tiff

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

const (
	littleEndian = 0x4949 // "II"
	bigEndian    = 0x4d4d // "MM"

	tiffIdentifier    = 42
	bigTiffIdentifier = 43
	bigTiffBytesize   = 8
)

// Options controls decoding.
type Options struct {
	// ErrorLog receives one line per skipped entry. Nil discards them.
	ErrorLog io.Writer
}

// head represents the TIFF file header information
type head struct {
	byteOrder binary.ByteOrder
	isBigTIFF bool
	ifdOffset uint64
}

// File is a decoded TIFF header and first IFD. It keeps the reader for
// ReadSamples; the reader must stay valid while samples are read.
type File struct {
	ByteOrder binary.ByteOrder
	BigTIFF   bool

	entries map[Tag]Value
	r       io.ReadSeeker
	size    int64
}

// Decode reads the header and the first IFD of a TIFF file. Entries with
// unknown field types are skipped and reported to opts.ErrorLog.
func Decode(r io.ReadSeeker, opts Options) (*File, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to determine file size: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if h.ifdOffset == 0 || h.ifdOffset >= uint64(size) {
		return nil, formatErrorf(0, "first IFD offset %d outside file of %d bytes", h.ifdOffset, size)
	}

	f := &File{
		ByteOrder: h.byteOrder,
		BigTIFF:   h.isBigTIFF,
		entries:   make(map[Tag]Value),
		r:         r,
		size:      size,
	}
	if err := f.readIFD(h.ifdOffset, opts); err != nil {
		return nil, err
	}
	return f, nil
}

func readHeader(r io.Reader) (head, error) {
	var h head

	var byteOrderBytes uint16
	if err := binary.Read(r, binary.BigEndian, &byteOrderBytes); err != nil {
		return h, formatErrorf(0, "reading byte order: %v", err)
	}
	switch byteOrderBytes {
	case littleEndian:
		h.byteOrder = binary.LittleEndian
	case bigEndian:
		h.byteOrder = binary.BigEndian
	default:
		return h, formatErrorf(0, "invalid byte order %#04x", byteOrderBytes)
	}

	var identifier uint16
	if err := binary.Read(r, h.byteOrder, &identifier); err != nil {
		return h, formatErrorf(0, "reading identifier: %v", err)
	}

	switch identifier {
	case tiffIdentifier:
		var offset32 uint32
		if err := binary.Read(r, h.byteOrder, &offset32); err != nil {
			return h, formatErrorf(0, "reading IFD offset: %v", err)
		}
		h.ifdOffset = uint64(offset32)
	case bigTiffIdentifier:
		h.isBigTIFF = true
		var bytesize, reserved uint16
		if err := binary.Read(r, h.byteOrder, &bytesize); err != nil {
			return h, formatErrorf(0, "reading BigTIFF bytesize: %v", err)
		}
		if bytesize != bigTiffBytesize {
			return h, formatErrorf(0, "invalid BigTIFF bytesize %d", bytesize)
		}
		if err := binary.Read(r, h.byteOrder, &reserved); err != nil {
			return h, formatErrorf(0, "reading BigTIFF header: %v", err)
		}
		if err := binary.Read(r, h.byteOrder, &h.ifdOffset); err != nil {
			return h, formatErrorf(0, "reading IFD offset: %v", err)
		}
	default:
		return h, formatErrorf(0, "invalid identifier %d", identifier)
	}
	return h, nil
}

func (f *File) readIFD(offset uint64, opts Options) error {
	if _, err := f.r.Seek(int64(offset), io.SeekStart); err != nil {
		return err
	}

	var numEntries uint64
	if f.BigTIFF {
		if err := binary.Read(f.r, f.ByteOrder, &numEntries); err != nil {
			return formatErrorf(0, "reading IFD entry count: %v", err)
		}
	} else {
		var n16 uint16
		if err := binary.Read(f.r, f.ByteOrder, &n16); err != nil {
			return formatErrorf(0, "reading IFD entry count: %v", err)
		}
		numEntries = uint64(n16)
	}

	entryLen, inlineLen := 12, 4
	if f.BigTIFF {
		entryLen, inlineLen = 20, 8
	}
	if numEntries > uint64(f.size) || numEntries*uint64(entryLen) > uint64(f.size) {
		return formatErrorf(0, "IFD with %d entries exceeds file size", numEntries)
	}

	block := make([]byte, int(numEntries)*entryLen)
	if _, err := io.ReadFull(f.r, block); err != nil {
		return formatErrorf(0, "reading IFD block: %v", err)
	}

	for i := 0; i < int(numEntries); i++ {
		e := block[i*entryLen : (i+1)*entryLen]
		tag := Tag(f.ByteOrder.Uint16(e[0:]))
		typ := FieldType(f.ByteOrder.Uint16(e[2:]))

		var count uint64
		var field []byte
		if f.BigTIFF {
			count = f.ByteOrder.Uint64(e[4:])
			field = e[12:20]
		} else {
			count = uint64(f.ByteOrder.Uint32(e[4:]))
			field = e[8:12]
		}

		size := typ.Size()
		if size == 0 {
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "tiff: skipping entry %v with unknown field type %d\n", tag, uint16(typ))
			}
			continue
		}

		total := count * uint64(size)
		if count > uint64(f.size) || total > uint64(f.size) {
			return formatErrorf(tag, "%d values of type %v exceed file size", count, typ)
		}

		var raw []byte
		if total <= uint64(inlineLen) {
			raw = append([]byte(nil), field[:total]...)
		} else {
			var off uint64
			if f.BigTIFF {
				off = f.ByteOrder.Uint64(field)
			} else {
				off = uint64(f.ByteOrder.Uint32(field))
			}
			var err error
			if raw, err = f.readAt(off, total); err != nil {
				return formatErrorf(tag, "reading %d values: %v", count, err)
			}
		}

		f.entries[tag] = Value{Type: typ, Count: count, raw: raw, order: f.ByteOrder}
	}
	return nil
}

// readAt reads n bytes at offset, rejecting ranges outside the file.
func (f *File) readAt(offset, n uint64) ([]byte, error) {
	if offset > uint64(f.size) || n > uint64(f.size)-offset {
		return nil, fmt.Errorf("range [%d, %d) outside file of %d bytes", offset, offset+n, f.size)
	}
	if _, err := f.r.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(f.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Has reports whether the IFD contains tag.
func (f *File) Has(tag Tag) bool {
	_, ok := f.entries[tag]
	return ok
}

// Value returns the raw entry for tag.
func (f *File) Value(tag Tag) (Value, bool) {
	v, ok := f.entries[tag]
	return v, ok
}

// Tags returns the tags of the IFD in ascending order.
func (f *File) Tags() []Tag {
	tags := make([]Tag, 0, len(f.entries))
	for t := range f.entries {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Uints returns the values of an unsigned integer entry.
func (f *File) Uints(tag Tag) ([]uint64, bool) {
	v, ok := f.entries[tag]
	if !ok {
		return nil, false
	}
	return v.Uints()
}

// Uint returns the first value of an unsigned integer entry.
func (f *File) Uint(tag Tag) (uint64, bool) {
	vals, ok := f.Uints(tag)
	if !ok || len(vals) == 0 {
		return 0, false
	}
	return vals[0], true
}

// Floats returns the values of a numeric entry widened to float64.
func (f *File) Floats(tag Tag) ([]float64, bool) {
	v, ok := f.entries[tag]
	if !ok {
		return nil, false
	}
	return v.Floats()
}

// ASCII returns the raw bytes of an ASCII entry, including NUL terminators.
func (f *File) ASCII(tag Tag) ([]byte, bool) {
	v, ok := f.entries[tag]
	if !ok || v.Type != ASCII {
		return nil, false
	}
	return v.raw, true
}

// String returns an ASCII entry decoded as ISO 8859-1 without its NUL terminator.
func (f *File) String(tag Tag) (string, bool) {
	v, ok := f.entries[tag]
	if !ok || v.Type != ASCII {
		return "", false
	}
	return v.Text(), true
}

// Summary returns a short human-readable description of the IFD.
func (f *File) Summary() string {
	kind := "TIFF"
	if f.BigTIFF {
		kind = "BigTIFF"
	}
	return fmt.Sprintf("%s, %v, %d entries", kind, f.ByteOrder, len(f.entries))
}
