package catalog

import (
	"context"
	"strings"

	"github.com/geosat/sat-catalog/catalog/entities"
	"github.com/geosat/sat-catalog/common"
)

const (
	cbersRoot    = "CBERS4/MUX/"
	cbersBaseURL = "https://s3.amazonaws.com/cbers-meta-pds/"
)

// Cbers discovers the CBERS-4 MUX scenes of a path/row cell. A single
// listing level, no metadata enrichment.
func (c *Catalog) Cbers(ctx context.Context, loc entities.CbersLocator) ([]entities.SceneRecord, error) {
	loc = loc.Normalized()

	leaves := c.listChildren(ctx, CbersBucket, cbersRoot+loc.Path+"/"+loc.Row+"/")

	records := make([]entities.SceneRecord, len(leaves))
	for i, leaf := range leaves {
		records[i] = cbersRecord(leaf)
	}
	return records, ctx.Err()
}

func cbersRecord(leaf string) entities.SceneRecord {
	segments := strings.Split(strings.TrimSuffix(leaf, "/"), "/")
	sceneID := segments[len(segments)-1]
	info := common.CbersInfo(sceneID)

	return entities.SceneRecord{
		SceneID:         sceneID,
		AcquisitionDate: info["ACQUISITION_DATE"],
		BrowseURL:       cbersBaseURL + leaf + info["PREVIEW_ID"] + "_small.jpeg",
		Path:            info["PATH"],
		Row:             info["ROW"],
		Sensor:          info["SENSOR"],
		Satellite:       info["SATELLITE"],
		Version:         info["VERSION"],
		ProcessingLevel: info["PROCESSING_LEVEL"],
	}
}
