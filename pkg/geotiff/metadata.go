package geotiff

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// MetadataItem is one entry of the GDAL_METADATA tag.
type MetadataItem struct {
	Name   string
	Value  string
	Domain string // empty for the default domain
	Role   string // e.g. "offset", "scale", "description"
	Sample int    // band index, -1 for dataset level items
}

// Metadata returns the items of the GDAL_METADATA tag in file order.
func (g *GeoTiff) Metadata() []MetadataItem {
	return g.metadata
}

// MetadataValue returns the value of the named dataset level item in the
// default domain.
func (g *GeoTiff) MetadataValue(name string) (string, bool) {
	for _, item := range g.metadata {
		if item.Name == name && item.Sample < 0 && item.Domain == "" {
			return item.Value, true
		}
	}
	return "", false
}

// GDAL writes the tag as:
//
//	<GDALMetadata>
//	  <Item name="STATISTICS_MAXIMUM" sample="0">2834</Item>
//	</GDALMetadata>
type xmlGDALMetadata struct {
	XMLName xml.Name  `xml:"GDALMetadata"`
	Items   []xmlItem `xml:"Item"`
}

type xmlItem struct {
	Name   string `xml:"name,attr"`
	Domain string `xml:"domain,attr"`
	Role   string `xml:"role,attr"`
	Sample string `xml:"sample,attr"`
	Value  string `xml:",chardata"`
}

func parseMetadata(s string) ([]MetadataItem, error) {
	var doc xmlGDALMetadata
	if err := xml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("parse XML: %w", err)
	}

	items := make([]MetadataItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		sample := -1
		if it.Sample != "" {
			n, err := strconv.Atoi(it.Sample)
			if err != nil || n < 0 {
				return items, fmt.Errorf("item %q: invalid sample %q", it.Name, it.Sample)
			}
			sample = n
		}
		items = append(items, MetadataItem{
			Name:   it.Name,
			Value:  strings.TrimSpace(it.Value),
			Domain: it.Domain,
			Role:   it.Role,
			Sample: sample,
		})
	}
	return items, nil
}
