package entities

import (
	"encoding/json"
	"strings"

	"github.com/geosat/sat-catalog/common"
)

// LandsatLocator identifies a WRS-2 path/row cell
type LandsatLocator struct {
	Path string `json:"path"`
	Row  string `json:"row"`
	Full bool   `json:"full,omitempty"`
}

// SentinelLocator identifies a MGRS tile (UTM zone, latitude band, grid square)
type SentinelLocator struct {
	UTMZone      string `json:"utm"`
	LatitudeBand string `json:"lat"`
	GridSquare   string `json:"grid"`
	Full         bool   `json:"full,omitempty"`
}

// CbersLocator identifies a CBERS path/row cell
type CbersLocator struct {
	Path string `json:"path"`
	Row  string `json:"row"`
}

// Normalized returns the locator with path/row zero-padded to 3 digits
func (l LandsatLocator) Normalized() LandsatLocator {
	l.Path = common.ZeroPad(l.Path, 3)
	l.Row = common.ZeroPad(l.Row, 3)
	return l
}

// Normalized returns the locator with path/row zero-padded to 3 digits
func (l CbersLocator) Normalized() CbersLocator {
	l.Path = common.ZeroPad(l.Path, 3)
	l.Row = common.ZeroPad(l.Row, 3)
	return l
}

// PathZone returns the UTM zone as it appears in the tile key (no leading zero)
func (l SentinelLocator) PathZone() string {
	return strings.TrimLeft(l.UTMZone, "0")
}

// SceneRecord is the normalized description of one discovered scene.
// Only the fields of the scene's satellite are set; the enrichment fields
// (cloud coverage, geometry, sun angles...) are absent unless a metadata
// document has been fetched and merged.
type SceneRecord struct {
	SceneID         string `json:"scene_id"`
	AcquisitionDate string `json:"acquisition_date,omitempty"`
	BrowseURL       string `json:"browseURL,omitempty"`
	ThumbURL        string `json:"thumbURL,omitempty"`

	// Landsat / CBERS
	Path            string `json:"path,omitempty"`
	Row             string `json:"row,omitempty"`
	Sensor          string `json:"sensor,omitempty"`
	Satellite       string `json:"satellite,omitempty"`
	CorrectionLevel string `json:"correction_level,omitempty"`
	Collection      string `json:"collection,omitempty"`
	Category        string `json:"category,omitempty"`

	// Sentinel-2
	UTMZone      string `json:"utm_zone,omitempty"`
	LatitudeBand string `json:"latitude_band,omitempty"`
	GridSquare   string `json:"grid_square,omitempty"`
	Num          string `json:"num,omitempty"`
	Sat          string `json:"sat,omitempty"`

	// CBERS
	Version         string `json:"version,omitempty"`
	ProcessingLevel string `json:"processing_level,omitempty"`

	// Enrichment (full=true only)
	Date          string          `json:"date,omitempty"`
	CloudCoverage *float64        `json:"cloud_coverage,omitempty"`
	Coverage      *float64        `json:"coverage,omitempty"`
	SunAzimuth    *float64        `json:"sun_azimuth,omitempty"`
	SunElevation  *float64        `json:"sun_elevation,omitempty"`
	Geometry      json.RawMessage `json:"geometry,omitempty"`
}

// SceneMetadata is the patch extracted from a per-scene metadata document.
// A failed fetch yields the zero value: merging it is a no-op, so a record
// always keeps the fields derivable from the identifier alone.
type SceneMetadata struct {
	Satellite     string
	Date          string
	CloudCoverage *float64
	Coverage      *float64
	SunAzimuth    *float64
	SunElevation  *float64
	Geometry      json.RawMessage
}

// MergeLandsat merges an MTL metadata patch into the record
func (r *SceneRecord) MergeLandsat(md SceneMetadata) {
	r.CloudCoverage = md.CloudCoverage
	r.SunAzimuth = md.SunAzimuth
	r.SunElevation = md.SunElevation
	r.Geometry = md.Geometry
}

// MergeSentinel merges a tileInfo metadata patch into the record.
// The satellite code recovered from the product name replaces the provisional
// S2A in the scene identifier (the only identifier-derived field enrichment
// is allowed to touch).
func (r *SceneRecord) MergeSentinel(md SceneMetadata) {
	r.CloudCoverage = md.CloudCoverage
	r.Coverage = md.Coverage
	r.Geometry = md.Geometry
	r.Date = md.Date
	if len(md.Satellite) == 3 {
		r.Sat = md.Satellite
		r.SceneID = md.Satellite + r.SceneID[3:]
	}
}

// Meta carries the result count of a query
type Meta struct {
	Found int `json:"found"`
}

// Response is the envelope returned to the caller: the normalized locator,
// the number of records found and the records themselves.
type Response struct {
	Request interface{}   `json:"request"`
	Meta    Meta          `json:"meta"`
	Results []SceneRecord `json:"results"`
}

// NewResponse builds the envelope for a locator and its records
func NewResponse(request interface{}, results []SceneRecord) Response {
	if results == nil {
		results = []SceneRecord{}
	}
	return Response{Request: request, Meta: Meta{Found: len(results)}, Results: results}
}
