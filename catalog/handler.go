package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/geosat/sat-catalog/catalog/entities"
	"github.com/geosat/sat-catalog/service/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func (c *Catalog) AddHandler(r *mux.Router) {
	r.HandleFunc("/landsat", c.LandsatHandler).Methods("GET")
	r.HandleFunc("/sentinel", c.SentinelHandler).Methods("GET")
	r.HandleFunc("/cbers", c.CbersHandler).Methods("GET")
}

func requestContext(req *http.Request) context.Context {
	return log.With(req.Context(), "request_id", uuid.New().String())
}

func fullParam(req *http.Request) bool {
	full, _ := strconv.ParseBool(req.FormValue("full"))
	return full
}

// writeResponse encodes the envelope. The count and the normalized locator
// are derived here, not by the engines.
func writeResponse(ctx context.Context, w http.ResponseWriter, locator interface{}, records []entities.SceneRecord) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entities.NewResponse(locator, records)); err != nil {
		log.Logger(ctx).Sugar().Warnf("writeResponse: %v", err)
	}
}

func apiError(ctx context.Context, w http.ResponseWriter, handler string, err error) {
	log.Logger(ctx).Sugar().Warnf("%s: %v", handler, err)
	w.WriteHeader(500)
	fmt.Fprintf(w, "API Error")
}

// LandsatHandler lists the Landsat-8 scenes of a path/row cell
func (c *Catalog) LandsatHandler(w http.ResponseWriter, req *http.Request) {
	ctx := requestContext(req)

	loc := entities.LandsatLocator{
		Path: req.FormValue("path"),
		Row:  req.FormValue("row"),
		Full: fullParam(req),
	}
	if loc.Row == "" {
		w.WriteHeader(400)
		fmt.Fprintf(w, "ROW param missing!")
		return
	}
	if loc.Path == "" {
		w.WriteHeader(400)
		fmt.Fprintf(w, "PATH param missing!")
		return
	}
	loc = loc.Normalized()

	records, err := c.Landsat(ctx, loc)
	if err != nil {
		apiError(ctx, w, "LandsatHandler", err)
		return
	}
	writeResponse(ctx, w, loc, records)
}

// SentinelHandler lists the Sentinel-2 scenes of a MGRS tile
func (c *Catalog) SentinelHandler(w http.ResponseWriter, req *http.Request) {
	ctx := requestContext(req)

	loc := entities.SentinelLocator{
		UTMZone:      req.FormValue("utm"),
		LatitudeBand: req.FormValue("lat"),
		GridSquare:   req.FormValue("grid"),
		Full:         fullParam(req),
	}
	if loc.UTMZone == "" {
		w.WriteHeader(400)
		fmt.Fprintf(w, "UTM param missing!")
		return
	}
	if loc.GridSquare == "" {
		w.WriteHeader(400)
		fmt.Fprintf(w, "GRID param missing!")
		return
	}
	if loc.LatitudeBand == "" {
		w.WriteHeader(400)
		fmt.Fprintf(w, "LAT param missing!")
		return
	}

	records, err := c.Sentinel(ctx, loc)
	if err != nil {
		apiError(ctx, w, "SentinelHandler", err)
		return
	}
	writeResponse(ctx, w, loc, records)
}

// CbersHandler lists the CBERS-4 MUX scenes of a path/row cell
func (c *Catalog) CbersHandler(w http.ResponseWriter, req *http.Request) {
	ctx := requestContext(req)

	loc := entities.CbersLocator{
		Path: req.FormValue("path"),
		Row:  req.FormValue("row"),
	}
	if loc.Row == "" {
		w.WriteHeader(400)
		fmt.Fprintf(w, "ROW param missing!")
		return
	}
	if loc.Path == "" {
		w.WriteHeader(400)
		fmt.Fprintf(w, "PATH param missing!")
		return
	}
	loc = loc.Normalized()

	records, err := c.Cbers(ctx, loc)
	if err != nil {
		apiError(ctx, w, "CbersHandler", err)
		return
	}
	writeResponse(ctx, w, loc, records)
}
