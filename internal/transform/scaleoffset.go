package transform

import "github.com/paulmach/orb"

// ScaleOffset maps raster to model space with a single tie point and a pixel
// scale. Raster rows grow downward while model y grows upward, so the y scale
// is applied negated.
type ScaleOffset struct {
	rasterAnchor orb.Point
	modelAnchor  orb.Point
	pixelScale   orb.Point
}

// NewScaleOffset builds the transformation from one tie point group
// (I, J, K, X, Y, Z) and a pixel scale triple (ScaleX, ScaleY, ScaleZ).
// The K, Z and ScaleZ components are ignored.
func NewScaleOffset(tiePoint, pixelScale []float64) *ScaleOffset {
	return &ScaleOffset{
		rasterAnchor: orb.Point{tiePoint[0], tiePoint[1]},
		modelAnchor:  orb.Point{tiePoint[3], tiePoint[4]},
		pixelScale:   orb.Point{pixelScale[0], pixelScale[1]},
	}
}

// ToModel maps a raster coordinate to model space.
func (s *ScaleOffset) ToModel(p orb.Point) orb.Point {
	return orb.Point{
		(p[0]-s.rasterAnchor[0])*s.pixelScale[0] + s.modelAnchor[0],
		(p[1]-s.rasterAnchor[1])*-s.pixelScale[1] + s.modelAnchor[1],
	}
}

// ToRaster maps a model coordinate to raster space.
func (s *ScaleOffset) ToRaster(p orb.Point) orb.Point {
	return orb.Point{
		(p[0]-s.modelAnchor[0])/s.pixelScale[0] + s.rasterAnchor[0],
		(p[1]-s.modelAnchor[1])/-s.pixelScale[1] + s.rasterAnchor[1],
	}
}

func (*ScaleOffset) isCoordinateTransform() {}
