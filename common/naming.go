package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

//go:generate go run github.com/dmarkham/enumer -json -type Constellation

// Constellation defines the kind of satellites
type Constellation int

const (
	Unknown   Constellation = iota
	Landsat8                // LXSPPPRRRYYYYDDDGSIVV or LXSS_LLLL_PPPRRR_YYYYMMDD_yyyymmdd_CC_TX
	Sentinel2               // S2X_tile_YYYYMMDD_UULSS_N (synthesized from the tile key)
	Cbers4                  // CBERS_4_SSS_YYYYMMDD_PPP_RRR_LL
)

// Collection-1 Landsat product id, e.g. LC08_L1TP_001001_20170101_20170110_01_T1
var landsatC1Regexp = regexp.MustCompile(`^L[COTEM]08_L\d[A-Z]{2}_\d{6}_\d{8}_\d{8}_\d{2}_(T1|RT)$`)

// GetConstellationFromSceneID returns the constellation of a scene identifier
func GetConstellationFromSceneID(sceneID string) Constellation {
	if strings.HasPrefix(sceneID, "CBERS") {
		return Cbers4
	}
	if strings.HasPrefix(sceneID, "S2") {
		return Sentinel2
	}
	if strings.HasPrefix(sceneID, "L") {
		return Landsat8
	}
	return Unknown
}

// IsCollection1Landsat reports whether the identifier follows the Collection-1
// naming. Identifiers that do not match are assumed to be pre-collection: the
// classification is total and every Landsat identifier lands in exactly one era.
func IsCollection1Landsat(sceneID string) bool {
	return landsatC1Regexp.MatchString(sceneID)
}

// LandsatInfo splits a Landsat-8 scene identifier into its positional fields.
// Both historical naming eras are supported:
//
//	pre-collection  LC80010012017001LGN00 (fixed-width slicing)
//	Collection-1    LC08_L1TP_001001_20170101_20170110_01_T1
//
// The parsing is purely positional and never fails: malformed identifiers
// yield nonsensical field splits, which is the historical behaviour and is
// kept on purpose (no validation beyond the era regexp).
func LandsatInfo(sceneID string) map[string]string {
	if IsCollection1Landsat(sceneID) {
		fields := strings.Split(sceneID, "_")
		info := map[string]string{
			"SCENE":            sceneID,
			"SENSOR":           slice(fields[0], 1, 2),
			"SATELLITE":        slice(fields[0], 2, 4),
			"CORRECTION_LEVEL": fields[1],
			"PATH":             slice(fields[2], 0, 3),
			"ROW":              slice(fields[2], 3, 6),
			"ACQUISITION_DATE": fields[3],
			"PROCESSING_DATE":  fields[4],
			"COLLECTION":       fields[5],
			"CATEGORY":         fields[6],
			"KEY_ROOT":         "c1/L8",
		}
		info["DATE"] = fmt.Sprintf("%s-%s-%s", slice(fields[3], 0, 4), slice(fields[3], 4, 6), slice(fields[3], 6, 8))
		return info
	}

	info := map[string]string{
		"SCENE":            sceneID,
		"SENSOR":           slice(sceneID, 1, 2),
		"SATELLITE":        slice(sceneID, 2, 3),
		"PATH":             slice(sceneID, 3, 6),
		"ROW":              slice(sceneID, 6, 9),
		"ACQUISITION_YEAR": slice(sceneID, 9, 13),
		"JULIAN_DAY":       slice(sceneID, 13, 16),
		"GROUND_STATION":   slice(sceneID, 16, 19),
		"ARCHIVE_VERSION":  slice(sceneID, 19, 21),
		"KEY_ROOT":         "L8",
	}
	info["DATE"] = julianDate(info["ACQUISITION_YEAR"], info["JULIAN_DAY"])
	info["ACQUISITION_DATE"] = info["DATE"]
	return info
}

// CbersInfo splits a CBERS-4 scene identifier into its positional fields,
// e.g. CBERS_4_MUX_20180101_100_100_L2. Same leniency as LandsatInfo.
func CbersInfo(sceneID string) map[string]string {
	fields := strings.Split(sceneID, "_")
	return map[string]string{
		"SCENE":            sceneID,
		"SATELLITE":        token(fields, 0),
		"VERSION":          token(fields, 1),
		"SENSOR":           token(fields, 2),
		"ACQUISITION_DATE": token(fields, 3),
		"PATH":             token(fields, 4),
		"ROW":              token(fields, 5),
		"PROCESSING_LEVEL": token(fields, 6),
		// the preview image is named after the identifier minus the processing level
		"PREVIEW_ID": strings.Join(fields[:max(len(fields)-1, 0)], "_"),
	}
}

// ZeroPad left-pads s with zeros up to n characters
func ZeroPad(s string, n int) string {
	for len(s) < n {
		s = "0" + s
	}
	return s
}

// julianDate resolves a (year, day-of-year) pair into a YYYY-MM-DD date
func julianDate(year, julianDay string) string {
	y, erry := strconv.Atoi(year)
	d, errd := strconv.Atoi(julianDay)
	if erry != nil || errd != nil {
		return ""
	}
	return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d-1).Format("2006-01-02")
}

// slice is s[i:j] clamped to the length of s
func slice(s string, i, j int) string {
	if i > len(s) {
		i = len(s)
	}
	if j > len(s) {
		j = len(s)
	}
	return s[i:j]
}

// token is fields[i], or "" past the end
func token(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return fields[i]
}
