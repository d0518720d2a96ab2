package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/geosat/sat-catalog/catalog/entities"
	"github.com/geosat/sat-catalog/common"
	"github.com/geosat/sat-catalog/service/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// sentinelFirstYear is the first year with data in the archive
	sentinelFirstYear = 2015

	sentinelBaseURL = "https://sentinel-s2-l1c.s3.amazonaws.com/"
)

// Sentinel discovers the Sentinel-2 scenes of a MGRS tile. The tile subtree
// is walked level by level (year, month, day, sequence number), listing all
// the prefixes of a level in parallel.
func (c *Catalog) Sentinel(ctx context.Context, loc entities.SentinelLocator) ([]entities.SceneRecord, error) {
	root := "tiles/" + loc.PathZone() + "/" + loc.LatitudeBand + "/" + loc.GridSquare + "/"

	var prefixes []string
	for year := sentinelFirstYear; year <= time.Now().Year(); year++ {
		prefixes = append(prefixes, root+strconv.Itoa(year)+"/")
	}
	// month, day, sequence number
	for i := 0; i < 3; i++ {
		prefixes = c.listAll(ctx, SentinelBucket, prefixes)
	}

	records := make([]entities.SceneRecord, len(prefixes))
	wg, wctx := errgroup.WithContext(ctx)
	for i, leaf := range prefixes {
		wg.Go(func() error {
			records[i] = c.sentinelRecord(wctx, leaf, loc.Full)
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return records, err
	}
	return records, ctx.Err()
}

// sentinelRecord derives a record from the path segments of a leaf prefix
// (tiles/<utm>/<lat>/<grid>/<year>/<month>/<day>/<num>/). The scene
// identifier is synthesized with a provisional S2A satellite code,
// corrected from tileInfo when full metadata is requested.
func (c *Catalog) sentinelRecord(ctx context.Context, leaf string, full bool) entities.SceneRecord {
	segments := strings.Split(strings.TrimSuffix(leaf, "/"), "/")
	if len(segments) < 8 {
		log.Logger(ctx).Debug("sentinelRecord: malformed prefix", zap.String("prefix", leaf))
		return entities.SceneRecord{}
	}
	utm, lat, grid := segments[1], segments[2], segments[3]
	date := segments[4] + common.ZeroPad(segments[5], 2) + common.ZeroPad(segments[6], 2)
	num := segments[7]

	record := entities.SceneRecord{
		SceneID:         "S2A_tile_" + date + "_" + common.ZeroPad(utm, 2) + lat + grid + "_" + num,
		AcquisitionDate: date,
		BrowseURL:       sentinelBaseURL + leaf + "preview.jpg",
		UTMZone:         utm,
		LatitudeBand:    lat,
		GridSquare:      grid,
		Num:             num,
	}
	if full {
		record.MergeSentinel(c.sentinelMetadata(ctx, leaf))
	}
	return record
}

// s2TileInfo maps the fields of interest of a tileInfo.json document
type s2TileInfo struct {
	ProductName           string          `json:"productName"`
	Timestamp             string          `json:"timestamp"`
	CloudyPixelPercentage *float64        `json:"cloudyPixelPercentage"`
	DataCoveragePercent   *float64        `json:"dataCoveragePercentage"`
	TileGeometry          json.RawMessage `json:"tileGeometry"`
}

// sentinelMetadata fetches and parses the tileInfo document of a scene.
// Any failure yields an empty patch.
func (c *Catalog) sentinelMetadata(ctx context.Context, leaf string) entities.SceneMetadata {
	data, err := c.Store.GetObject(ctx, SentinelBucket, leaf+"tileInfo.json")
	if err != nil {
		log.Logger(ctx).Debug("sentinelMetadata", zap.String("prefix", leaf), zap.Error(err))
		return entities.SceneMetadata{}
	}
	ti := s2TileInfo{}
	if err := json.Unmarshal(data, &ti); err != nil {
		log.Logger(ctx).Debug("sentinelMetadata.Unmarshal", zap.String("prefix", leaf), zap.Error(err))
		return entities.SceneMetadata{}
	}

	md := entities.SceneMetadata{
		CloudCoverage: ti.CloudyPixelPercentage,
		Coverage:      ti.DataCoveragePercent,
		Geometry:      ti.TileGeometry,
	}
	if len(ti.ProductName) >= 3 {
		md.Satellite = ti.ProductName[:3]
	}
	if t, err := dateparse.ParseAny(ti.Timestamp); err == nil {
		md.Date = t.Format("2006-01-02")
	}
	return md
}
