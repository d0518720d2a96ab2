package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geosat/sat-catalog/catalog"
	"github.com/geosat/sat-catalog/catalog/entities"
	"github.com/geosat/sat-catalog/common"
	"github.com/geosat/sat-catalog/interface/store"
	"github.com/geosat/sat-catalog/service/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type config struct {
	AppPort         string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string

	// one-shot query (no server)
	Satellite string
	Path      string
	Row       string
	UTM       string
	Lat       string
	Grid      string
	Full      bool
}

func newAppConfig() (*config, error) {
	appPort := flag.String("port", "8080", "api port to use")
	accessKeyID := flag.String("aws-key", "", "AWS access key id (required for the requester-pays sentinel bucket)")
	secretAccessKey := flag.String("aws-secret", "", "AWS secret access key")
	endpoint := flag.String("s3-endpoint", "", "S3 endpoint override (local usage)")

	satellite := flag.String("satellite", "", "run a single query for this constellation (landsat8|sentinel2|cbers4) and print the result instead of serving")
	path := flag.String("path", "", "path of the landsat/cbers query")
	row := flag.String("row", "", "row of the landsat/cbers query")
	utm := flag.String("utm", "", "UTM zone of the sentinel query")
	lat := flag.String("lat", "", "latitude band of the sentinel query")
	grid := flag.String("grid", "", "grid square of the sentinel query")
	full := flag.Bool("full", false, "fetch the scene metadata documents")
	flag.Parse()

	if *appPort == "" {
		return nil, fmt.Errorf("failed to initialize port application flag")
	}
	return &config{
		AppPort:         *appPort,
		AccessKeyID:     *accessKeyID,
		SecretAccessKey: *secretAccessKey,
		Endpoint:        *endpoint,
		Satellite:       *satellite,
		Path:            *path,
		Row:             *row,
		UTM:             *utm,
		Lat:             *lat,
		Grid:            *grid,
		Full:            *full,
	}, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := run(ctx); err != nil {
		log.Fatal("error", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	config, err := newAppConfig()
	if err != nil {
		return err
	}

	buckets := catalog.DefaultBuckets()
	for bucket, opts := range buckets {
		opts.AccessKeyID = config.AccessKeyID
		opts.SecretAccessKey = config.SecretAccessKey
		opts.Endpoint = config.Endpoint
		buckets[bucket] = opts
	}
	cat := &catalog.Catalog{Store: store.NewS3Store(buckets)}

	if config.Satellite != "" {
		return query(ctx, cat, config, os.Stdout)
	}

	router := mux.NewRouter()
	cat.AddHandler(router)
	headersOk := handlers.AllowedHeaders([]string{"*"})
	originsOk := handlers.AllowedOrigins([]string{"*"})
	methodsOk := handlers.AllowedMethods([]string{"GET", "OPTIONS"})
	s := http.Server{
		Addr:    ":" + config.AppPort,
		Handler: handlers.CORS(originsOk, headersOk, methodsOk)(router),
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(sctx); err != nil {
			log.Logger(ctx).Warn("shutdown", zap.Error(err))
		}
	}()

	log.Logger(ctx).Debug("sat-catalog starts on :" + config.AppPort)
	if err := s.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// query runs one discovery and prints the envelope on w
func query(ctx context.Context, cat *catalog.Catalog, config *config, w io.Writer) error {
	var locator interface{}
	var records []entities.SceneRecord

	constellation, err := common.ConstellationString(config.Satellite)
	if err != nil {
		return fmt.Errorf("query: unknown satellite %q", config.Satellite)
	}
	switch constellation {
	case common.Landsat8:
		if config.Path == "" || config.Row == "" {
			return fmt.Errorf("query: %s needs -path and -row", constellation)
		}
		loc := entities.LandsatLocator{Path: config.Path, Row: config.Row, Full: config.Full}.Normalized()
		locator = loc
		records, err = cat.Landsat(ctx, loc)
	case common.Sentinel2:
		if config.UTM == "" || config.Lat == "" || config.Grid == "" {
			return fmt.Errorf("query: %s needs -utm, -lat and -grid", constellation)
		}
		loc := entities.SentinelLocator{UTMZone: config.UTM, LatitudeBand: config.Lat, GridSquare: config.Grid, Full: config.Full}
		locator = loc
		records, err = cat.Sentinel(ctx, loc)
	case common.Cbers4:
		if config.Path == "" || config.Row == "" {
			return fmt.Errorf("query: %s needs -path and -row", constellation)
		}
		loc := entities.CbersLocator{Path: config.Path, Row: config.Row}.Normalized()
		locator = loc
		records, err = cat.Cbers(ctx, loc)
	default:
		return fmt.Errorf("query: %s is not served", constellation)
	}
	if err != nil {
		return fmt.Errorf("query.%w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entities.NewResponse(locator, records))
}
