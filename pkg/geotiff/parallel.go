package geotiff

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ImageSet is a collection of loaded images in the order their paths were given.
type ImageSet struct {
	Images []*GeoTiff
}

// LoadOptions controls parallel loading behavior and error handling.
type LoadOptions struct {
	// Read is passed to OpenWithOptions for every file.
	Read ReadOptions

	// Parallel enables concurrent loading.
	Parallel bool

	// Workers specifies the number of loader goroutines.
	// If 0, defaults to runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// SkipErrors causes loading to continue when individual files fail.
	// Failed files are skipped and their errors collected. When false, the
	// first error stops loading: files not yet started are not opened and
	// only that error is returned.
	SkipErrors bool

	// Progress is an optional callback called after each file is processed,
	// successfully or not, with the number processed so far.
	Progress func(loaded, total int)

	// ErrorLog receives one line per file that fails to load.
	ErrorLog io.Writer
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Read:       DefaultReadOptions(),
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

// LoadFilesParallel loads many GeoTIFF files with a bounded worker pool.
//
// Each worker decodes its files independently, including their coordinate
// transformations, so nothing is shared between goroutines while loading.
//
// Example:
//
//	set, errs := geotiff.LoadFilesParallel(paths, geotiff.LoadOptions{
//	    Read:       geotiff.DefaultReadOptions(),
//	    Parallel:   true,
//	    Workers:    8,
//	    SkipErrors: true,
//	    Progress: func(loaded, total int) {
//	        fmt.Printf("\rLoading: %d/%d", loaded, total)
//	    },
//	    ErrorLog: os.Stderr,
//	})
//	fmt.Printf("\nLoaded %d images, skipped %d\n", len(set.Images), len(errs))
func LoadFilesParallel(paths []string, opts LoadOptions) (*ImageSet, []error) {
	if len(paths) == 0 {
		return &ImageSet{Images: []*GeoTiff{}}, nil
	}
	if !opts.Parallel {
		return loadFilesSerial(paths, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(paths))

	images := make([]*GeoTiff, len(paths))
	failed := make([]error, len(paths))

	var mu sync.Mutex
	loaded := 0

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			img, err := OpenWithOptions(path, opts.Read)

			mu.Lock()
			loaded++
			if opts.Progress != nil {
				opts.Progress(loaded, len(paths))
			}
			if err != nil && opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error loading image: %v\n", err)
			}
			mu.Unlock()

			if err != nil {
				failed[i] = err
				if !opts.SkipErrors {
					return err
				}
				return nil
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, []error{err}
	}

	set := &ImageSet{Images: make([]*GeoTiff, 0, len(paths))}
	var errs []error
	for i := range paths {
		if failed[i] != nil {
			errs = append(errs, failed[i])
			continue
		}
		set.Images = append(set.Images, images[i])
	}
	return set, errs
}

// loadFilesSerial loads files one at a time (used when Parallel is false).
func loadFilesSerial(paths []string, opts LoadOptions) (*ImageSet, []error) {
	set := &ImageSet{Images: make([]*GeoTiff, 0, len(paths))}
	var errs []error

	for i, path := range paths {
		img, err := OpenWithOptions(path, opts.Read)
		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}
		if err != nil {
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error loading image: %v\n", err)
			}
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		set.Images = append(set.Images, img)
	}
	return set, errs
}
