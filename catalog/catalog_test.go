package catalog_test

import (
	"context"
	"encoding/json"

	"github.com/geosat/sat-catalog/catalog"
	"github.com/geosat/sat-catalog/catalog/entities"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Catalog", func() {
	var ctx context.Context
	var st *MokeStore
	var cat *catalog.Catalog

	BeforeEach(func() {
		ctx = context.Background()
		st = NewMokeStore()
		cat = &catalog.Catalog{Store: st}
	})

	Describe("Landsat", func() {
		It("discovers a collection-1 scene under the c1 root", func() {
			st.children["landsat-pds/c1/L8/001/001/"] = []string{
				"c1/L8/001/001/LC08_L1TP_001001_20170101_20170110_01_T1/",
			}

			records, err := cat.Landsat(ctx, entities.LandsatLocator{Path: "1", Row: "1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))

			record := records[0]
			Expect(record.SceneID).To(Equal("LC08_L1TP_001001_20170101_20170110_01_T1"))
			Expect(record.Category).To(Equal("T1"))
			Expect(record.CorrectionLevel).To(Equal("L1TP"))
			Expect(record.Collection).To(Equal("01"))
			Expect(record.Path).To(Equal("001"))
			Expect(record.Row).To(Equal("001"))
			Expect(record.AcquisitionDate).To(Equal("2017-01-01"))
			Expect(record.BrowseURL).To(Equal("https://landsat-pds.s3.amazonaws.com/c1/L8/001/001/LC08_L1TP_001001_20170101_20170110_01_T1/LC08_L1TP_001001_20170101_20170110_01_T1_thumb_large.jpg"))
			Expect(record.ThumbURL).To(Equal("https://landsat-pds.s3.amazonaws.com/c1/L8/001/001/LC08_L1TP_001001_20170101_20170110_01_T1/LC08_L1TP_001001_20170101_20170110_01_T1_thumb_small.jpg"))
		})

		It("flattens both naming-era roots into one result set", func() {
			st.children["landsat-pds/L8/016/037/"] = []string{
				"L8/016/037/LC80160372017224LGN00/",
			}
			st.children["landsat-pds/c1/L8/016/037/"] = []string{
				"c1/L8/016/037/LC08_L1TP_016037_20170812_20170824_01_T1/",
			}

			records, err := cat.Landsat(ctx, entities.LandsatLocator{Path: "16", Row: "37"})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))

			ids := []string{records[0].SceneID, records[1].SceneID}
			Expect(ids).To(ContainElement("LC80160372017224LGN00"))
			Expect(ids).To(ContainElement("LC08_L1TP_016037_20170812_20170824_01_T1"))
			for _, record := range records {
				Expect(record.Path).To(Equal("016"))
				Expect(record.Row).To(Equal("037"))
			}
		})

		It("resolves the julian day of a pre-collection scene", func() {
			st.children["landsat-pds/L8/016/037/"] = []string{
				"L8/016/037/LC80160372017224LGN00/",
			}

			records, err := cat.Landsat(ctx, entities.LandsatLocator{Path: "016", Row: "037"})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].AcquisitionDate).To(Equal("2017-08-12"))
			Expect(records[0].BrowseURL).To(HavePrefix("https://landsat-pds.s3.amazonaws.com/L8/016/037/"))
		})

		It("absorbs listing failures into an empty result", func() {
			st.failing["landsat-pds/L8/001/001/"] = true
			st.failing["landsat-pds/c1/L8/001/001/"] = true

			records, err := cat.Landsat(ctx, entities.LandsatLocator{Path: "1", Row: "1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		It("merges the MTL document when full is requested", func() {
			prefix := "c1/L8/001/001/LC08_L1TP_001001_20170101_20170110_01_T1/"
			st.children["landsat-pds/c1/L8/001/001/"] = []string{prefix}
			st.objects["landsat-pds/"+prefix+"LC08_L1TP_001001_20170101_20170110_01_T1_MTL.json"] = []byte(`{
				"L1_METADATA_FILE": {
					"PRODUCT_METADATA": {
						"CORNER_UR_LAT_PRODUCT": 2.0, "CORNER_UR_LON_PRODUCT": 1.0,
						"CORNER_UL_LAT_PRODUCT": 2.0, "CORNER_UL_LON_PRODUCT": 0.0,
						"CORNER_LL_LAT_PRODUCT": 0.0, "CORNER_LL_LON_PRODUCT": 0.0,
						"CORNER_LR_LAT_PRODUCT": 0.0, "CORNER_LR_LON_PRODUCT": 1.0
					},
					"IMAGE_ATTRIBUTES": {
						"CLOUD_COVER": 12.34, "SUN_AZIMUTH": 150.5, "SUN_ELEVATION": 45.2
					}
				}
			}`)

			records, err := cat.Landsat(ctx, entities.LandsatLocator{Path: "1", Row: "1", Full: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))

			record := records[0]
			Expect(record.CloudCoverage).NotTo(BeNil())
			Expect(*record.CloudCoverage).To(Equal(12.34))
			Expect(record.SunAzimuth).NotTo(BeNil())
			Expect(*record.SunAzimuth).To(Equal(150.5))
			Expect(record.SunElevation).NotTo(BeNil())
			Expect(*record.SunElevation).To(Equal(45.2))

			footprint := struct {
				Type        string         `json:"type"`
				Coordinates [][][2]float64 `json:"coordinates"`
			}{}
			Expect(json.Unmarshal(record.Geometry, &footprint)).To(Succeed())
			Expect(footprint.Type).To(Equal("Polygon"))
			Expect(footprint.Coordinates).To(HaveLen(1))
			ring := footprint.Coordinates[0]
			Expect(ring).To(HaveLen(5))
			Expect(ring[0]).To(Equal(ring[4]))
			Expect(ring[0]).To(Equal([2]float64{1.0, 2.0}))
		})

		It("surfaces a cancelled context as a query error", func() {
			st.children["landsat-pds/c1/L8/001/001/"] = []string{
				"c1/L8/001/001/LC08_L1TP_001001_20170101_20170110_01_T1/",
			}
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := cat.Landsat(cctx, entities.LandsatLocator{Path: "1", Row: "1"})
			Expect(err).To(HaveOccurred())
		})

		It("still reports the scene when the MTL fetch fails", func() {
			st.children["landsat-pds/c1/L8/001/001/"] = []string{
				"c1/L8/001/001/LC08_L1TP_001001_20170101_20170110_01_T1/",
			}

			records, err := cat.Landsat(ctx, entities.LandsatLocator{Path: "1", Row: "1", Full: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].SceneID).To(Equal("LC08_L1TP_001001_20170101_20170110_01_T1"))
			Expect(records[0].CloudCoverage).To(BeNil())
			Expect(records[0].Geometry).To(BeNil())
		})
	})

	Describe("Sentinel", func() {
		It("returns an empty result for a tile with no data", func() {
			records, err := cat.Sentinel(ctx, entities.SentinelLocator{UTMZone: "33", LatitudeBand: "N", GridSquare: "UB"})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		It("walks the year/month/day/sequence levels of a tile", func() {
			st.children["sentinel-s2-l1c/tiles/33/N/UB/2017/"] = []string{"tiles/33/N/UB/2017/1/"}
			st.children["sentinel-s2-l1c/tiles/33/N/UB/2017/1/"] = []string{"tiles/33/N/UB/2017/1/2/"}
			st.children["sentinel-s2-l1c/tiles/33/N/UB/2017/1/2/"] = []string{"tiles/33/N/UB/2017/1/2/0/"}

			records, err := cat.Sentinel(ctx, entities.SentinelLocator{UTMZone: "33", LatitudeBand: "N", GridSquare: "UB"})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))

			record := records[0]
			Expect(record.SceneID).To(Equal("S2A_tile_20170102_33NUB_0"))
			Expect(record.AcquisitionDate).To(Equal("20170102"))
			Expect(record.UTMZone).To(Equal("33"))
			Expect(record.LatitudeBand).To(Equal("N"))
			Expect(record.GridSquare).To(Equal("UB"))
			Expect(record.Num).To(Equal("0"))
			Expect(record.BrowseURL).To(Equal("https://sentinel-s2-l1c.s3.amazonaws.com/tiles/33/N/UB/2017/1/2/0/preview.jpg"))
		})

		It("strips the leading zero of the UTM zone in the tile key", func() {
			st.children["sentinel-s2-l1c/tiles/8/C/ER/2016/"] = []string{"tiles/8/C/ER/2016/12/"}
			st.children["sentinel-s2-l1c/tiles/8/C/ER/2016/12/"] = []string{"tiles/8/C/ER/2016/12/5/"}
			st.children["sentinel-s2-l1c/tiles/8/C/ER/2016/12/5/"] = []string{"tiles/8/C/ER/2016/12/5/0/"}

			records, err := cat.Sentinel(ctx, entities.SentinelLocator{UTMZone: "08", LatitudeBand: "C", GridSquare: "ER"})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].SceneID).To(Equal("S2A_tile_20161205_08CER_0"))
			Expect(records[0].UTMZone).To(Equal("8"))
		})

		It("re-synthesizes the identifier from tileInfo when full is requested", func() {
			leaf := "tiles/33/N/UB/2017/1/2/0/"
			st.children["sentinel-s2-l1c/tiles/33/N/UB/2017/"] = []string{"tiles/33/N/UB/2017/1/"}
			st.children["sentinel-s2-l1c/tiles/33/N/UB/2017/1/"] = []string{"tiles/33/N/UB/2017/1/2/"}
			st.children["sentinel-s2-l1c/tiles/33/N/UB/2017/1/2/"] = []string{leaf}
			st.objects["sentinel-s2-l1c/"+leaf+"tileInfo.json"] = []byte(`{
				"productName": "S2B_MSIL1C_20170102T103442_N0204_R108_T33NUB_20170102T103441",
				"timestamp": "2017-01-02T10:34:41.000Z",
				"cloudyPixelPercentage": 5.5,
				"dataCoveragePercentage": 100,
				"tileGeometry": {"type": "Polygon", "coordinates": [[[300000,100000],[300000,200000],[400000,200000],[300000,100000]]]}
			}`)

			records, err := cat.Sentinel(ctx, entities.SentinelLocator{UTMZone: "33", LatitudeBand: "N", GridSquare: "UB", Full: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))

			record := records[0]
			Expect(record.SceneID).To(Equal("S2B_tile_20170102_33NUB_0"))
			Expect(record.Sat).To(Equal("S2B"))
			Expect(record.Date).To(Equal("2017-01-02"))
			Expect(record.AcquisitionDate).To(Equal("20170102"))
			Expect(record.CloudCoverage).NotTo(BeNil())
			Expect(*record.CloudCoverage).To(Equal(5.5))
			Expect(record.Coverage).NotTo(BeNil())
			Expect(*record.Coverage).To(Equal(100.0))
			Expect(record.Geometry).To(MatchJSON(`{"type": "Polygon", "coordinates": [[[300000,100000],[300000,200000],[400000,200000],[300000,100000]]]}`))
		})
	})

	Describe("Cbers", func() {
		It("discovers the scenes of a path/row cell", func() {
			st.children["cbers-meta-pds/CBERS4/MUX/100/100/"] = []string{
				"CBERS4/MUX/100/100/CBERS_4_MUX_20180101_100_100_L2/",
			}

			records, err := cat.Cbers(ctx, entities.CbersLocator{Path: "100", Row: "100"})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))

			record := records[0]
			Expect(record.SceneID).To(Equal("CBERS_4_MUX_20180101_100_100_L2"))
			Expect(record.ProcessingLevel).To(Equal("L2"))
			Expect(record.Satellite).To(Equal("CBERS"))
			Expect(record.Version).To(Equal("4"))
			Expect(record.Sensor).To(Equal("MUX"))
			Expect(record.AcquisitionDate).To(Equal("20180101"))
			Expect(record.BrowseURL).To(Equal("https://s3.amazonaws.com/cbers-meta-pds/CBERS4/MUX/100/100/CBERS_4_MUX_20180101_100_100_L2/CBERS_4_MUX_20180101_100_100_small.jpeg"))
		})

		It("pads the locator to three digits", func() {
			st.children["cbers-meta-pds/CBERS4/MUX/063/095/"] = []string{
				"CBERS4/MUX/063/095/CBERS_4_MUX_20180315_063_095_L4/",
			}

			records, err := cat.Cbers(ctx, entities.CbersLocator{Path: "63", Row: "95"})
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].ProcessingLevel).To(Equal("L4"))
		})
	})
})
