// Package transform maps coordinates between the raster space of a GeoTIFF
// image and the model space its georeferencing tags describe.
//
// Three strategies are supported, chosen from the tags that are present:
//
//   - ModelTransformationTag: an affine matrix (Affine).
//   - One ModelTiepointTag group plus ModelPixelScaleTag: translation and
//     scale (ScaleOffset).
//   - Several ModelTiepointTag groups: a triangulated mesh with linear
//     interpolation inside and extrapolation outside (Triangulated).
//
// Transformations are immutable once built and safe for concurrent use.
package transform

import (
	"github.com/paulmach/orb"
	"golang.org/x/image/math/f64"
)

// CoordinateTransform converts points between raster and model space.
//
// Both directions are total: they accept any point and never fail. The only
// implementations are *Affine, *ScaleOffset and *Triangulated.
type CoordinateTransform interface {
	ToModel(p orb.Point) orb.Point
	ToRaster(p orb.Point) orb.Point

	isCoordinateTransform()
}

var (
	_ CoordinateTransform = (*Affine)(nil)
	_ CoordinateTransform = (*ScaleOffset)(nil)
	_ CoordinateTransform = (*Triangulated)(nil)
)

// Options controls which transformations FromTagData may build.
type Options struct {
	// TiePointMeshes enables transformations from more than one tie point.
	// When false such tag data is rejected with an error wrapping ErrUnsupported.
	TiePointMeshes bool
}

// DefaultOptions returns options with every transformation enabled.
func DefaultOptions() Options {
	return Options{TiePointMeshes: true}
}

// FromTagData builds a transformation from the raw payloads of
// ModelPixelScaleTag, ModelTiepointTag and ModelTransformationTag. A nil
// slice means the tag is absent.
//
// When all three tags are absent FromTagData returns (nil, nil): the image
// has no georeferencing and callers should treat raster coordinates as model
// coordinates.
//
// Example:
//
//	t, err := transform.FromTagData(
//	    []float64{2, 2, 0},
//	    []float64{0, 0, 0, 100, 200, 0},
//	    nil,
//	    transform.DefaultOptions(),
//	)
//	if err != nil {
//	    return err
//	}
//	p := t.ToModel(orb.Point{10, 10}) // (120, 180)
func FromTagData(pixelScale, tiePoints, matrix []float64, opts Options) (CoordinateTransform, error) {
	if pixelScale != nil && len(pixelScale) != 3 {
		return nil, formatErrorf(ModelPixelScaleTag, "must contain 3 values, got %d", len(pixelScale))
	}
	if tiePoints != nil {
		if len(tiePoints) == 0 {
			return nil, formatErrorf(ModelTiepointTag, "must contain at least one tie point")
		}
		if len(tiePoints)%6 != 0 {
			return nil, formatErrorf(ModelTiepointTag, "number of values must be divisible by 6, got %d", len(tiePoints))
		}
	}
	if matrix != nil && len(matrix) != 16 {
		return nil, formatErrorf(ModelTransformationTag, "must contain 16 values, got %d", len(matrix))
	}

	switch {
	case matrix != nil:
		if pixelScale != nil {
			return nil, formatErrorf(ModelPixelScaleTag, "must not be present when %s is present", ModelTransformationTag)
		}
		if tiePoints != nil {
			return nil, formatErrorf(ModelTiepointTag, "must not be present when %s is present", ModelTransformationTag)
		}
		var m f64.Mat4
		copy(m[:], matrix)
		a, err := NewAffine(m)
		if err != nil {
			return nil, err
		}
		return a, nil

	case tiePoints != nil:
		if len(tiePoints) == 6 {
			if pixelScale == nil {
				return nil, formatErrorf(ModelPixelScaleTag, "must be present when %s holds a single tie point", ModelTiepointTag)
			}
			if pixelScale[0] == 0 || pixelScale[1] == 0 {
				return nil, formatErrorf(ModelPixelScaleTag, "scale must be non-zero, got %v", pixelScale[:2])
			}
			return NewScaleOffset(tiePoints, pixelScale), nil
		}
		if !opts.TiePointMeshes {
			return nil, &FormatError{
				Tag:    ModelTiepointTag,
				Reason: "transformation by multiple tie points is not supported",
				Err:    ErrUnsupported,
			}
		}
		t, err := NewTriangulated(tiePoints)
		if err != nil {
			return nil, err
		}
		return t, nil

	case pixelScale != nil:
		return nil, formatErrorf(ModelTiepointTag, "must be present when %s is missing", ModelTransformationTag)

	default:
		return nil, nil
	}
}
