package transform

import (
	"math"

	"github.com/paulmach/orb"
	"golang.org/x/image/math/f64"
)

// minDeterminant is the smallest determinant magnitude accepted for an
// invertible transformation matrix.
const minDeterminant = 1e-15

// Affine maps raster to model space with a 2D affine transformation taken
// from a 4x4 ModelTransformationTag matrix. The z row and column of the
// matrix are ignored.
//
// Coefficients follow the f64.Aff3 layout [a, b, c, d, e, f]:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Affine struct {
	forward f64.Aff3
	inverse f64.Aff3
}

// NewAffine builds an affine transformation from a row-major 4x4 matrix.
// It fails when the 2D part of the matrix is not invertible.
func NewAffine(m f64.Mat4) (*Affine, error) {
	t := f64.Aff3{m[0], m[1], m[3], m[4], m[5], m[7]}

	det := t[0]*t[4] - t[1]*t[3]
	if math.Abs(det) < minDeterminant {
		return nil, formatErrorf(ModelTransformationTag, "matrix is not invertible (determinant %g)", det)
	}

	inv := f64.Aff3{
		t[4] / det,
		-t[1] / det,
		(t[1]*t[5] - t[2]*t[4]) / det,
		-t[3] / det,
		t[0] / det,
		(t[2]*t[3] - t[0]*t[5]) / det,
	}

	return &Affine{forward: t, inverse: inv}, nil
}

// Coefficients returns the raster to model coefficients.
func (a *Affine) Coefficients() f64.Aff3 {
	return a.forward
}

// InverseCoefficients returns the model to raster coefficients.
func (a *Affine) InverseCoefficients() f64.Aff3 {
	return a.inverse
}

// ToModel maps a raster coordinate to model space.
func (a *Affine) ToModel(p orb.Point) orb.Point {
	return applyAffine(a.forward, p)
}

// ToRaster maps a model coordinate to raster space.
func (a *Affine) ToRaster(p orb.Point) orb.Point {
	return applyAffine(a.inverse, p)
}

func (*Affine) isCoordinateTransform() {}

func applyAffine(t f64.Aff3, p orb.Point) orb.Point {
	return orb.Point{
		t[0]*p[0] + t[1]*p[1] + t[2],
		t[3]*p[0] + t[4]*p[1] + t[5],
	}
}
