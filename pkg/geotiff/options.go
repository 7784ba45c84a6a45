package geotiff

import "io"

// ReadOptions configures reading.
type ReadOptions struct {
	// TiePointMeshes enables the triangulated transform for files with
	// more than one tie point. When false such files fail with an error
	// wrapping ErrUnsupported.
	TiePointMeshes bool

	// SkipUnknownGeoKeys ignores GeoKeys outside GeoTIFF 1.1 instead of
	// failing.
	SkipUnknownGeoKeys bool

	// ErrorLog receives one line per skipped TIFF entry, skipped GeoKey or
	// unreadable GDAL metadata. Nil discards them.
	ErrorLog io.Writer
}

// DefaultReadOptions returns default options.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		TiePointMeshes:     true,
		SkipUnknownGeoKeys: false,
		ErrorLog:           nil,
	}
}
