package catalog

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/geosat/sat-catalog/catalog/entities"
	"github.com/geosat/sat-catalog/common"
	"github.com/geosat/sat-catalog/service/log"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Both Landsat-8 eras live in the same bucket, under separate roots.
var landsatRoots = [2]string{"L8", "c1/L8"}

const landsatBaseURL = "https://landsat-pds.s3.amazonaws.com/"

// Landsat discovers the Landsat-8 scenes of a WRS-2 path/row cell, across
// the pre-collection and Collection-1 roots.
func (c *Catalog) Landsat(ctx context.Context, loc entities.LandsatLocator) ([]entities.SceneRecord, error) {
	loc = loc.Normalized()

	prefixes := make([]string, 0, len(landsatRoots))
	for _, root := range landsatRoots {
		prefixes = append(prefixes, root+"/"+loc.Path+"/"+loc.Row+"/")
	}
	leaves := c.listAll(ctx, LandsatBucket, prefixes)

	records := make([]entities.SceneRecord, len(leaves))
	wg, wctx := errgroup.WithContext(ctx)
	for i, leaf := range leaves {
		wg.Go(func() error {
			records[i] = c.landsatRecord(wctx, leaf, loc.Full)
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return records, err
	}
	return records, ctx.Err()
}

func (c *Catalog) landsatRecord(ctx context.Context, leaf string, full bool) entities.SceneRecord {
	segments := strings.Split(strings.TrimSuffix(leaf, "/"), "/")
	sceneID := segments[len(segments)-1]
	info := common.LandsatInfo(sceneID)

	base := landsatBaseURL + info["KEY_ROOT"] + "/" + info["PATH"] + "/" + info["ROW"] + "/" + sceneID + "/" + sceneID
	record := entities.SceneRecord{
		SceneID:         sceneID,
		AcquisitionDate: info["DATE"],
		BrowseURL:       base + "_thumb_large.jpg",
		ThumbURL:        base + "_thumb_small.jpg",
		Path:            info["PATH"],
		Row:             info["ROW"],
		Sensor:          info["SENSOR"],
		Satellite:       info["SATELLITE"],
		CorrectionLevel: info["CORRECTION_LEVEL"],
		Collection:      info["COLLECTION"],
		Category:        info["CATEGORY"],
	}
	if full {
		record.MergeLandsat(c.landsatMetadata(ctx, leaf, sceneID))
	}
	return record
}

// l8MTL maps the fields of interest of a <scene>_MTL.json document
type l8MTL struct {
	Metadata struct {
		Product struct {
			CornerURLat *float64 `json:"CORNER_UR_LAT_PRODUCT"`
			CornerURLon *float64 `json:"CORNER_UR_LON_PRODUCT"`
			CornerULLat *float64 `json:"CORNER_UL_LAT_PRODUCT"`
			CornerULLon *float64 `json:"CORNER_UL_LON_PRODUCT"`
			CornerLLLat *float64 `json:"CORNER_LL_LAT_PRODUCT"`
			CornerLLLon *float64 `json:"CORNER_LL_LON_PRODUCT"`
			CornerLRLat *float64 `json:"CORNER_LR_LAT_PRODUCT"`
			CornerLRLon *float64 `json:"CORNER_LR_LON_PRODUCT"`
		} `json:"PRODUCT_METADATA"`
		Image struct {
			CloudCover   *float64 `json:"CLOUD_COVER"`
			SunAzimuth   *float64 `json:"SUN_AZIMUTH"`
			SunElevation *float64 `json:"SUN_ELEVATION"`
		} `json:"IMAGE_ATTRIBUTES"`
	} `json:"L1_METADATA_FILE"`
}

// landsatMetadata fetches and parses the MTL document of a scene. Any
// failure yields an empty patch: the scene is still reported, without the
// enrichment fields.
func (c *Catalog) landsatMetadata(ctx context.Context, leaf, sceneID string) entities.SceneMetadata {
	data, err := c.Store.GetObject(ctx, LandsatBucket, leaf+sceneID+"_MTL.json")
	if err != nil {
		log.Logger(ctx).Debug("landsatMetadata", zap.String("scene", sceneID), zap.Error(err))
		return entities.SceneMetadata{}
	}
	mtl := l8MTL{}
	if err := json.Unmarshal(data, &mtl); err != nil {
		log.Logger(ctx).Debug("landsatMetadata.Unmarshal", zap.String("scene", sceneID), zap.Error(err))
		return entities.SceneMetadata{}
	}

	md := entities.SceneMetadata{
		CloudCoverage: mtl.Metadata.Image.CloudCover,
		SunAzimuth:    mtl.Metadata.Image.SunAzimuth,
		SunElevation:  mtl.Metadata.Image.SunElevation,
	}
	product := mtl.Metadata.Product
	if product.CornerURLat != nil && product.CornerURLon != nil &&
		product.CornerULLat != nil && product.CornerULLon != nil &&
		product.CornerLLLat != nil && product.CornerLLLon != nil &&
		product.CornerLRLat != nil && product.CornerLRLon != nil {
		// closed ring UR, UL, LL, LR, UR
		footprint := geom.Polygon{{
			{*product.CornerURLon, *product.CornerURLat},
			{*product.CornerULLon, *product.CornerULLat},
			{*product.CornerLLLon, *product.CornerLLLat},
			{*product.CornerLRLon, *product.CornerLRLat},
			{*product.CornerURLon, *product.CornerURLat},
		}}
		if raw, err := json.Marshal(geojson.Geometry{Geometry: footprint}); err == nil {
			md.Geometry = raw
		}
	}
	return md
}
