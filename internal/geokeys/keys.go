package geokeys

import "fmt"

// KeyID identifies a GeoKey.
type KeyID uint16

// GeoTIFF configuration keys
const (
	GTModelTypeGeoKey  KeyID = 1024
	GTRasterTypeGeoKey KeyID = 1025
	GTCitationGeoKey   KeyID = 1026
)

// Geodetic CRS parameter keys
const (
	GeographicTypeGeoKey KeyID = 2048 + iota
	GeogCitationGeoKey
	GeogGeodeticDatumGeoKey
	GeogPrimeMeridianGeoKey
	GeogLinearUnitsGeoKey
	GeogLinearUnitSizeGeoKey
	GeogAngularUnitsGeoKey
	GeogAngularUnitSizeGeoKey
	GeogEllipsoidGeoKey
	GeogSemiMajorAxisGeoKey
	GeogSemiMinorAxisGeoKey
	GeogInvFlatteningGeoKey
	GeogAzimuthUnitsGeoKey
	GeogPrimeMeridianLongGeoKey
)

// Projected CRS parameter keys
const (
	ProjectedCSTypeGeoKey KeyID = 3072 + iota
	PCSCitationGeoKey
	ProjectionGeoKey
	ProjCoordTransGeoKey
	ProjLinearUnitsGeoKey
	ProjLinearUnitSizeGeoKey
	ProjStdParallel1GeoKey
	ProjStdParallel2GeoKey
	ProjNatOriginLongGeoKey
	ProjNatOriginLatGeoKey
	ProjFalseEastingGeoKey
	ProjFalseNorthingGeoKey
	ProjFalseOriginLongGeoKey
	ProjFalseOriginLatGeoKey
	ProjFalseOriginEastingGeoKey
	ProjFalseOriginNorthingGeoKey
	ProjCenterLongGeoKey
	ProjCenterLatGeoKey
	ProjCenterEastingGeoKey
	ProjCenterNorthingGeoKey
	ProjScaleAtNatOriginGeoKey
	ProjScaleAtCenterGeoKey
	ProjAzimuthAngleGeoKey
	ProjStraightVertPoleLongGeoKey
)

// Vertical CRS parameter keys
const (
	VerticalCSTypeGeoKey KeyID = 4096 + iota
	VerticalCitationGeoKey
	VerticalDatumGeoKey
	VerticalUnitsGeoKey
)

var keyNames = map[KeyID]string{
	GTModelTypeGeoKey:              "GTModelTypeGeoKey",
	GTRasterTypeGeoKey:             "GTRasterTypeGeoKey",
	GTCitationGeoKey:               "GTCitationGeoKey",
	GeographicTypeGeoKey:           "GeographicTypeGeoKey",
	GeogCitationGeoKey:             "GeogCitationGeoKey",
	GeogGeodeticDatumGeoKey:        "GeogGeodeticDatumGeoKey",
	GeogPrimeMeridianGeoKey:        "GeogPrimeMeridianGeoKey",
	GeogLinearUnitsGeoKey:          "GeogLinearUnitsGeoKey",
	GeogLinearUnitSizeGeoKey:       "GeogLinearUnitSizeGeoKey",
	GeogAngularUnitsGeoKey:         "GeogAngularUnitsGeoKey",
	GeogAngularUnitSizeGeoKey:      "GeogAngularUnitSizeGeoKey",
	GeogEllipsoidGeoKey:            "GeogEllipsoidGeoKey",
	GeogSemiMajorAxisGeoKey:        "GeogSemiMajorAxisGeoKey",
	GeogSemiMinorAxisGeoKey:        "GeogSemiMinorAxisGeoKey",
	GeogInvFlatteningGeoKey:        "GeogInvFlatteningGeoKey",
	GeogAzimuthUnitsGeoKey:         "GeogAzimuthUnitsGeoKey",
	GeogPrimeMeridianLongGeoKey:    "GeogPrimeMeridianLongGeoKey",
	ProjectedCSTypeGeoKey:          "ProjectedCSTypeGeoKey",
	PCSCitationGeoKey:              "PCSCitationGeoKey",
	ProjectionGeoKey:               "ProjectionGeoKey",
	ProjCoordTransGeoKey:           "ProjCoordTransGeoKey",
	ProjLinearUnitsGeoKey:          "ProjLinearUnitsGeoKey",
	ProjLinearUnitSizeGeoKey:       "ProjLinearUnitSizeGeoKey",
	ProjStdParallel1GeoKey:         "ProjStdParallel1GeoKey",
	ProjStdParallel2GeoKey:         "ProjStdParallel2GeoKey",
	ProjNatOriginLongGeoKey:        "ProjNatOriginLongGeoKey",
	ProjNatOriginLatGeoKey:         "ProjNatOriginLatGeoKey",
	ProjFalseEastingGeoKey:         "ProjFalseEastingGeoKey",
	ProjFalseNorthingGeoKey:        "ProjFalseNorthingGeoKey",
	ProjFalseOriginLongGeoKey:      "ProjFalseOriginLongGeoKey",
	ProjFalseOriginLatGeoKey:       "ProjFalseOriginLatGeoKey",
	ProjFalseOriginEastingGeoKey:   "ProjFalseOriginEastingGeoKey",
	ProjFalseOriginNorthingGeoKey:  "ProjFalseOriginNorthingGeoKey",
	ProjCenterLongGeoKey:           "ProjCenterLongGeoKey",
	ProjCenterLatGeoKey:            "ProjCenterLatGeoKey",
	ProjCenterEastingGeoKey:        "ProjCenterEastingGeoKey",
	ProjCenterNorthingGeoKey:       "ProjCenterNorthingGeoKey",
	ProjScaleAtNatOriginGeoKey:     "ProjScaleAtNatOriginGeoKey",
	ProjScaleAtCenterGeoKey:        "ProjScaleAtCenterGeoKey",
	ProjAzimuthAngleGeoKey:         "ProjAzimuthAngleGeoKey",
	ProjStraightVertPoleLongGeoKey: "ProjStraightVertPoleLongGeoKey",
	VerticalCSTypeGeoKey:           "VerticalCSTypeGeoKey",
	VerticalCitationGeoKey:         "VerticalCitationGeoKey",
	VerticalDatumGeoKey:            "VerticalDatumGeoKey",
	VerticalUnitsGeoKey:            "VerticalUnitsGeoKey",
}

// String returns the GeoTIFF name of the key.
func (k KeyID) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("GeoKey(%d)", uint16(k))
}

// ModelType is the value of GTModelTypeGeoKey.
type ModelType uint16

const (
	ModelTypeProjected  ModelType = 1
	ModelTypeGeographic ModelType = 2
	ModelTypeGeocentric ModelType = 3
)

func (m ModelType) String() string {
	switch m {
	case ModelTypeProjected:
		return "Projected"
	case ModelTypeGeographic:
		return "Geographic"
	case ModelTypeGeocentric:
		return "Geocentric"
	case 32767:
		return "UserDefined"
	default:
		return fmt.Sprintf("ModelType(%d)", uint16(m))
	}
}

// RasterType is the value of GTRasterTypeGeoKey. It decides whether a pixel
// value refers to the area of the pixel or to its top-left point.
type RasterType uint16

const (
	PixelIsArea  RasterType = 1
	PixelIsPoint RasterType = 2
)

func (r RasterType) String() string {
	switch r {
	case PixelIsArea:
		return "PixelIsArea"
	case PixelIsPoint:
		return "PixelIsPoint"
	default:
		return fmt.Sprintf("RasterType(%d)", uint16(r))
	}
}
