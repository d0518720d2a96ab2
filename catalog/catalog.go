package catalog

import (
	"context"
	"sync"

	"github.com/geosat/sat-catalog/interface/store"
	"github.com/geosat/sat-catalog/service/log"
	"go.uber.org/zap"
)

const (
	// LandsatBucket is the public Landsat-8 PDS archive
	LandsatBucket = "landsat-pds"
	// SentinelBucket is the Sentinel-2 L1C archive (requester pays)
	SentinelBucket = "sentinel-s2-l1c"
	// CbersBucket is the CBERS-4 metadata archive
	CbersBucket = "cbers-meta-pds"

	landsatRegion  = "us-west-2"
	sentinelRegion = "eu-central-1"
	cbersRegion    = "us-east-1"
)

// DefaultBuckets returns the access options of the public scene archives
func DefaultBuckets() map[string]store.Options {
	return map[string]store.Options{
		LandsatBucket:  {Region: landsatRegion},
		SentinelBucket: {Region: sentinelRegion, RequestPayer: true},
		CbersBucket:    {Region: cbersRegion},
	}
}

// Catalog discovers scenes in the archive buckets
type Catalog struct {
	Store store.Store
}

// listChildren lists the direct children of a prefix. A listing failure is
// absorbed: the prefix contributes no children and the query goes on.
func (c *Catalog) listChildren(ctx context.Context, bucket, prefix string) []string {
	children, err := c.Store.ListChildren(ctx, bucket, prefix)
	if err != nil {
		log.Logger(ctx).Debug("listChildren", zap.String("prefix", prefix), zap.Error(err))
		return nil
	}
	return children
}

// listAll expands each prefix into its children, in parallel, and returns
// the concatenation in the order of the input prefixes. Failures are already
// absorbed by listChildren, so the fan-out cannot fail.
func (c *Catalog) listAll(ctx context.Context, bucket string, prefixes []string) []string {
	var wg sync.WaitGroup
	results := make([][]string, len(prefixes))
	for i, prefix := range prefixes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.listChildren(ctx, bucket, prefix)
		}()
	}
	wg.Wait()

	var children []string
	for _, r := range results {
		children = append(children, r...)
	}
	return children
}
