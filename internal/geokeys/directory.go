package geokeys

// Directory holds the decoded GeoKeyDirectory. A nil field means the key is
// absent from the file.
type Directory struct {
	KeyDirectoryVersion uint16
	KeyRevision         uint16
	MinorRevision       uint16

	ModelType  *ModelType
	RasterType *RasterType
	Citation   *string

	GeographicType        *uint16
	GeogCitation          *string
	GeogGeodeticDatum     *uint16
	GeogPrimeMeridian     *uint16
	GeogLinearUnits       *uint16
	GeogLinearUnitSize    *float64
	GeogAngularUnits      *uint16
	GeogAngularUnitSize   *float64
	GeogEllipsoid         *uint16
	GeogSemiMajorAxis     *float64
	GeogSemiMinorAxis     *float64
	GeogInvFlattening     *float64
	GeogAzimuthUnits      *uint16
	GeogPrimeMeridianLong *float64

	ProjectedType            *uint16
	ProjCitation             *string
	Projection               *uint16
	ProjCoordTrans           *uint16
	ProjLinearUnits          *uint16
	ProjLinearUnitSize       *float64
	ProjStdParallel1         *float64
	ProjStdParallel2         *float64
	ProjNatOriginLong        *float64
	ProjNatOriginLat         *float64
	ProjFalseEasting         *float64
	ProjFalseNorthing        *float64
	ProjFalseOriginLong      *float64
	ProjFalseOriginLat       *float64
	ProjFalseOriginEasting   *float64
	ProjFalseOriginNorthing  *float64
	ProjCenterLong           *float64
	ProjCenterLat            *float64
	ProjCenterEasting        *float64
	ProjCenterNorthing       *float64
	ProjScaleAtNatOrigin     *float64
	ProjScaleAtCenter        *float64
	ProjAzimuthAngle         *float64
	ProjStraightVertPoleLong *float64

	Vertical         *uint16
	VerticalCitation *string
	VerticalDatum    *uint16
	VerticalUnits    *uint16
}

// Default returns the directory of a file without GeoKeys: version 1.1.1
// and every key absent.
func Default() *Directory {
	return &Directory{KeyDirectoryVersion: 1, KeyRevision: 1, MinorRevision: 1}
}

// PixelIsPoint reports whether the raster type is PixelIsPoint.
func (d *Directory) PixelIsPoint() bool {
	return d.RasterType != nil && *d.RasterType == PixelIsPoint
}

// KeyValue is one key present in a directory.
type KeyValue struct {
	ID    KeyID
	Value any // uint16, float64, string, ModelType or RasterType
}

// Values returns the keys present in the directory, ordered by ID.
func (d *Directory) Values() []KeyValue {
	var out []KeyValue
	for _, id := range allKeys {
		var v any
		switch p := d.slot(id).(type) {
		case **uint16:
			if *p != nil {
				v = **p
			}
		case **float64:
			if *p != nil {
				v = **p
			}
		case **string:
			if *p != nil {
				v = **p
			}
		case **ModelType:
			if *p != nil {
				v = **p
			}
		case **RasterType:
			if *p != nil {
				v = **p
			}
		}
		if v != nil {
			out = append(out, KeyValue{ID: id, Value: v})
		}
	}
	return out
}

var allKeys = []KeyID{
	GTModelTypeGeoKey, GTRasterTypeGeoKey, GTCitationGeoKey,
	GeographicTypeGeoKey, GeogCitationGeoKey, GeogGeodeticDatumGeoKey, GeogPrimeMeridianGeoKey,
	GeogLinearUnitsGeoKey, GeogLinearUnitSizeGeoKey, GeogAngularUnitsGeoKey, GeogAngularUnitSizeGeoKey,
	GeogEllipsoidGeoKey, GeogSemiMajorAxisGeoKey, GeogSemiMinorAxisGeoKey, GeogInvFlatteningGeoKey,
	GeogAzimuthUnitsGeoKey, GeogPrimeMeridianLongGeoKey,
	ProjectedCSTypeGeoKey, PCSCitationGeoKey, ProjectionGeoKey, ProjCoordTransGeoKey,
	ProjLinearUnitsGeoKey, ProjLinearUnitSizeGeoKey, ProjStdParallel1GeoKey, ProjStdParallel2GeoKey,
	ProjNatOriginLongGeoKey, ProjNatOriginLatGeoKey, ProjFalseEastingGeoKey, ProjFalseNorthingGeoKey,
	ProjFalseOriginLongGeoKey, ProjFalseOriginLatGeoKey, ProjFalseOriginEastingGeoKey,
	ProjFalseOriginNorthingGeoKey, ProjCenterLongGeoKey, ProjCenterLatGeoKey, ProjCenterEastingGeoKey,
	ProjCenterNorthingGeoKey, ProjScaleAtNatOriginGeoKey, ProjScaleAtCenterGeoKey,
	ProjAzimuthAngleGeoKey, ProjStraightVertPoleLongGeoKey,
	VerticalCSTypeGeoKey, VerticalCitationGeoKey, VerticalDatumGeoKey, VerticalUnitsGeoKey,
}

// slot returns a pointer to the field that stores key id, or nil for an
// unknown key. The pointer's type selects how the key value is decoded.
func (d *Directory) slot(id KeyID) any {
	switch id {
	case GTModelTypeGeoKey:
		return &d.ModelType
	case GTRasterTypeGeoKey:
		return &d.RasterType
	case GTCitationGeoKey:
		return &d.Citation

	case GeographicTypeGeoKey:
		return &d.GeographicType
	case GeogCitationGeoKey:
		return &d.GeogCitation
	case GeogGeodeticDatumGeoKey:
		return &d.GeogGeodeticDatum
	case GeogPrimeMeridianGeoKey:
		return &d.GeogPrimeMeridian
	case GeogLinearUnitsGeoKey:
		return &d.GeogLinearUnits
	case GeogLinearUnitSizeGeoKey:
		return &d.GeogLinearUnitSize
	case GeogAngularUnitsGeoKey:
		return &d.GeogAngularUnits
	case GeogAngularUnitSizeGeoKey:
		return &d.GeogAngularUnitSize
	case GeogEllipsoidGeoKey:
		return &d.GeogEllipsoid
	case GeogSemiMajorAxisGeoKey:
		return &d.GeogSemiMajorAxis
	case GeogSemiMinorAxisGeoKey:
		return &d.GeogSemiMinorAxis
	case GeogInvFlatteningGeoKey:
		return &d.GeogInvFlattening
	case GeogAzimuthUnitsGeoKey:
		return &d.GeogAzimuthUnits
	case GeogPrimeMeridianLongGeoKey:
		return &d.GeogPrimeMeridianLong

	case ProjectedCSTypeGeoKey:
		return &d.ProjectedType
	case PCSCitationGeoKey:
		return &d.ProjCitation
	case ProjectionGeoKey:
		return &d.Projection
	case ProjCoordTransGeoKey:
		return &d.ProjCoordTrans
	case ProjLinearUnitsGeoKey:
		return &d.ProjLinearUnits
	case ProjLinearUnitSizeGeoKey:
		return &d.ProjLinearUnitSize
	case ProjStdParallel1GeoKey:
		return &d.ProjStdParallel1
	case ProjStdParallel2GeoKey:
		return &d.ProjStdParallel2
	case ProjNatOriginLongGeoKey:
		return &d.ProjNatOriginLong
	case ProjNatOriginLatGeoKey:
		return &d.ProjNatOriginLat
	case ProjFalseEastingGeoKey:
		return &d.ProjFalseEasting
	case ProjFalseNorthingGeoKey:
		return &d.ProjFalseNorthing
	case ProjFalseOriginLongGeoKey:
		return &d.ProjFalseOriginLong
	case ProjFalseOriginLatGeoKey:
		return &d.ProjFalseOriginLat
	case ProjFalseOriginEastingGeoKey:
		return &d.ProjFalseOriginEasting
	case ProjFalseOriginNorthingGeoKey:
		return &d.ProjFalseOriginNorthing
	case ProjCenterLongGeoKey:
		return &d.ProjCenterLong
	case ProjCenterLatGeoKey:
		return &d.ProjCenterLat
	case ProjCenterEastingGeoKey:
		return &d.ProjCenterEasting
	case ProjCenterNorthingGeoKey:
		return &d.ProjCenterNorthing
	case ProjScaleAtNatOriginGeoKey:
		return &d.ProjScaleAtNatOrigin
	case ProjScaleAtCenterGeoKey:
		return &d.ProjScaleAtCenter
	case ProjAzimuthAngleGeoKey:
		return &d.ProjAzimuthAngle
	case ProjStraightVertPoleLongGeoKey:
		return &d.ProjStraightVertPoleLong

	case VerticalCSTypeGeoKey:
		return &d.Vertical
	case VerticalCitationGeoKey:
		return &d.VerticalCitation
	case VerticalDatumGeoKey:
		return &d.VerticalDatum
	case VerticalUnitsGeoKey:
		return &d.VerticalUnits
	}
	return nil
}
