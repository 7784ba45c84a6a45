package geotiff

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// ImageIndex provides fast spatial queries over a collection of images.
//
// Each image is indexed by its model extent, so all images in one index
// should share a model coordinate system.
//
// Example:
//
//	set, errs := geotiff.LoadFilesParallel(paths, geotiff.DefaultLoadOptions())
//	if len(errs) > 0 {
//	    log.Printf("skipped %d files", len(errs))
//	}
//	idx := geotiff.BuildIndex(set)
//	for _, e := range idx.At(orb.Point{10.2, 47.5}) {
//	    v, _ := e.Image.ValueAt(orb.Point{10.2, 47.5}, 0)
//	    fmt.Println(e.Path, v)
//	}
type ImageIndex struct {
	images []*ImageEntry
	rtree  *rtreego.Rtree
}

// ImageEntry contains indexed metadata for a single image.
type ImageEntry struct {
	Path      string    // Source file, empty for images read from a stream
	Extent    orb.Bound // Model space coverage
	PixelSize float64   // Mean model units per pixel
	Image     *GeoTiff

	sequence  int
	rtreeRect rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *ImageEntry) Bounds() rtreego.Rect {
	return e.rtreeRect
}

// extentRect converts an extent to an R-tree rectangle, padded by a small
// relative margin. R-tree rectangles need non-zero size and intersection
// tests are strict, so edges that only touch would otherwise be missed.
func extentRect(b orb.Bound) rtreego.Rect {
	lo := rtreego.Point{b.Min[0], b.Min[1]}
	hi := rtreego.Point{b.Max[0], b.Max[1]}
	for i := range lo {
		pad := 1e-9 * math.Max(1, math.Max(math.Abs(lo[i]), math.Abs(hi[i])))
		lo[i] -= pad
		hi[i] += pad
	}
	rect, _ := rtreego.NewRectFromPoints(lo, hi)
	return rect
}

// usable reports whether an extent can be indexed.
func usable(b orb.Bound) bool {
	for _, v := range []float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// BuildIndex creates an index from a loaded ImageSet. Images whose extent
// is not finite are left out.
func BuildIndex(set *ImageSet) *ImageIndex {
	entries := make([]*ImageEntry, 0, len(set.Images))
	objs := make([]rtreego.Spatial, 0, len(set.Images))

	for i, img := range set.Images {
		extent := img.ModelExtent()
		if !usable(extent) {
			continue
		}
		e := &ImageEntry{
			Path:      img.Path(),
			Extent:    extent,
			PixelSize: pixelSize(extent, img),
			Image:     img,
			sequence:  i,
			rtreeRect: extentRect(extent),
		}
		entries = append(entries, e)
		objs = append(objs, e)
	}

	return &ImageIndex{
		images: entries,
		rtree:  rtreego.NewTree(2, 25, 50, objs...),
	}
}

func pixelSize(extent orb.Bound, img *GeoTiff) float64 {
	area := (extent.Max[0] - extent.Min[0]) * (extent.Max[1] - extent.Min[1])
	return math.Sqrt(area / float64(img.RasterWidth()*img.RasterHeight()))
}

// Query returns the images whose extent intersects bound, finest pixel size
// first. Images with equal pixel size keep their load order.
func (idx *ImageIndex) Query(bound orb.Bound) []*ImageEntry {
	if len(idx.images) == 0 {
		return nil
	}
	spatials := idx.rtree.SearchIntersect(extentRect(bound), func(results []rtreego.Spatial, object rtreego.Spatial) (bool, bool) {
		return !object.(*ImageEntry).Extent.Intersects(bound), false
	})

	result := make([]*ImageEntry, 0, len(spatials))
	for _, s := range spatials {
		result = append(result, s.(*ImageEntry))
	}
	sortByPriority(result)
	return result
}

// At returns the images whose extent contains p, finest pixel size first.
func (idx *ImageIndex) At(p orb.Point) []*ImageEntry {
	return idx.Query(orb.Bound{Min: p, Max: p})
}

func sortByPriority(entries []*ImageEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].PixelSize != entries[j].PixelSize {
			return entries[i].PixelSize < entries[j].PixelSize
		}
		return entries[i].sequence < entries[j].sequence
	})
}

// Count returns the number of indexed images.
func (idx *ImageIndex) Count() int {
	return len(idx.images)
}

// Bounds returns the union of all image extents in the index.
func (idx *ImageIndex) Bounds() orb.Bound {
	if len(idx.images) == 0 {
		return orb.Bound{}
	}

	bounds := idx.images[0].Extent
	for _, e := range idx.images[1:] {
		bounds = bounds.Union(e.Extent)
	}
	return bounds
}

// All returns all entries in load order.
func (idx *ImageIndex) All() []*ImageEntry {
	return idx.images
}
