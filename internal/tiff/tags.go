package tiff

import "fmt"

// Tag identifies an IFD entry.
type Tag uint16

// Baseline, extension and GeoTIFF tags read by this package.
const (
	NewSubfileType            Tag = 254
	ImageWidth                Tag = 256
	ImageLength               Tag = 257
	BitsPerSample             Tag = 258
	Compression               Tag = 259
	PhotometricInterpretation Tag = 262
	ImageDescription          Tag = 270
	StripOffsets              Tag = 273
	SamplesPerPixel           Tag = 277
	RowsPerStrip              Tag = 278
	StripByteCounts           Tag = 279
	PlanarConfiguration       Tag = 284
	Software                  Tag = 305
	DateTime                  Tag = 306
	Predictor                 Tag = 317
	TileWidth                 Tag = 322
	TileLength                Tag = 323
	TileOffsets               Tag = 324
	TileByteCounts            Tag = 325
	SampleFormat              Tag = 339
	Copyright                 Tag = 33432
	ModelPixelScale           Tag = 33550
	ModelTiepoint             Tag = 33922
	ModelTransformation       Tag = 34264
	GeoKeyDirectory           Tag = 34735
	GeoDoubleParams           Tag = 34736
	GeoAsciiParams            Tag = 34737
	GDALMetadata              Tag = 42112
	GDALNoData                Tag = 42113
)

var tagNames = map[Tag]string{
	NewSubfileType:            "NewSubfileType",
	ImageWidth:                "ImageWidth",
	ImageLength:               "ImageLength",
	BitsPerSample:             "BitsPerSample",
	Compression:               "Compression",
	PhotometricInterpretation: "PhotometricInterpretation",
	ImageDescription:          "ImageDescription",
	StripOffsets:              "StripOffsets",
	SamplesPerPixel:           "SamplesPerPixel",
	RowsPerStrip:              "RowsPerStrip",
	StripByteCounts:           "StripByteCounts",
	PlanarConfiguration:       "PlanarConfiguration",
	Software:                  "Software",
	DateTime:                  "DateTime",
	Predictor:                 "Predictor",
	TileWidth:                 "TileWidth",
	TileLength:                "TileLength",
	TileOffsets:               "TileOffsets",
	TileByteCounts:            "TileByteCounts",
	SampleFormat:              "SampleFormat",
	Copyright:                 "Copyright",
	ModelPixelScale:           "ModelPixelScaleTag",
	ModelTiepoint:             "ModelTiepointTag",
	ModelTransformation:       "ModelTransformationTag",
	GeoKeyDirectory:           "GeoKeyDirectoryTag",
	GeoDoubleParams:           "GeoDoubleParamsTag",
	GeoAsciiParams:            "GeoAsciiParamsTag",
	GDALMetadata:              "GDAL_METADATA",
	GDALNoData:                "GDAL_NODATA",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(%d)", uint16(t))
}

// FieldType is the TIFF data type of an IFD entry.
type FieldType uint16

const (
	Byte      FieldType = 1
	ASCII     FieldType = 2
	Short     FieldType = 3
	Long      FieldType = 4
	Rational  FieldType = 5
	SByte     FieldType = 6
	Undefined FieldType = 7
	SShort    FieldType = 8
	SLong     FieldType = 9
	SRational FieldType = 10
	Float     FieldType = 11
	Double    FieldType = 12
	IFD       FieldType = 13
	Long8     FieldType = 16
	SLong8    FieldType = 17
	IFD8      FieldType = 18
)

// fieldSizes is the length of every field type in bytes. Reserved and
// unknown types have size 0.
var fieldSizes = [...]int{
	Byte: 1, ASCII: 1, Short: 2, Long: 4, Rational: 8,
	SByte: 1, Undefined: 1, SShort: 2, SLong: 4, SRational: 8,
	Float: 4, Double: 8, IFD: 4,
	Long8: 8, SLong8: 8, IFD8: 8,
}

// Size returns the number of bytes of one value, or 0 for unknown types.
func (f FieldType) Size() int {
	if int(f) >= len(fieldSizes) {
		return 0
	}
	return fieldSizes[f]
}

var fieldTypeNames = map[FieldType]string{
	Byte: "BYTE", ASCII: "ASCII", Short: "SHORT", Long: "LONG", Rational: "RATIONAL",
	SByte: "SBYTE", Undefined: "UNDEFINED", SShort: "SSHORT", SLong: "SLONG",
	SRational: "SRATIONAL", Float: "FLOAT", Double: "DOUBLE", IFD: "IFD",
	Long8: "LONG8", SLong8: "SLONG8", IFD8: "IFD8",
}

func (f FieldType) String() string {
	if name, ok := fieldTypeNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", uint16(f))
}

// Compression schemes. Only CompressionNone is decoded.
const (
	CompressionNone     = 1
	CompressionLZW      = 5
	CompressionDeflate  = 8
	CompressionPackBits = 32773
)

// SampleFormat values.
const (
	SampleFormatUint  = 1
	SampleFormatInt   = 2
	SampleFormatFloat = 3
)
