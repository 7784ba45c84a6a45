package geotiff

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// DiscoverFiles finds all files with a .tif or .tiff extension (any case)
// in a directory tree, in lexical order.
//
// Example:
//
//	paths, err := geotiff.DiscoverFiles("/data/dem")
//	fmt.Printf("Found %d images\n", len(paths))
func DiscoverFiles(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".tif", ".tiff":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	return paths, nil
}
