package handler

import (
	"net/http"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/service/point"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/metrics"
	"github.com/Temutjin2k/agro-insurance/pkg/validator"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const geoJSONContentType = "application/geo+json"

// pointFeature converts p to a GeoJSON feature; false when p has no coordinates.
func pointFeature(p models.Point) (*geojson.Feature, bool) {
	c, ok := point.Coordinate(p)
	if !ok {
		return nil, false
	}

	f := geojson.NewFeature(orb.Point{c.Longitude, c.Latitude})
	f.ID = p.ID
	f.Properties["name"] = p.Name
	if p.ElevationM != nil {
		f.Properties["elevation_m"] = *p.ElevationM
	}
	return f, true
}

// GeoJSON godoc
// @Summary      Points as GeoJSON
// @Description  FeatureCollection of every point that has coordinates.
// @Tags         Points
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /points.geojson [get]
func (h *Point) GeoJSON(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "points_geojson")

	points, err := h.service.All(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to load points", err)
		serviceErrorResponse(w, err)
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		if f, ok := pointFeature(p); ok {
			fc.Append(f)
		}
	}

	if err := writeJSON(w, http.StatusOK, fc, http.Header{"Content-Type": {geoJSONContentType}}); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// NearestGeoJSON is Nearest rendered as a single GeoJSON feature.
func (h *Point) NearestGeoJSON(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "nearest_point_geojson")

	v := validator.New()
	query := readQueryCoordinate(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	nearest, err := h.service.Nearest(ctx, query)
	metrics.RecordNearestLookup("http", err)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "nearest point lookup failed", "error", err.Error())
		serviceErrorResponse(w, err)
		return
	}

	f, ok := pointFeature(nearest.Nearest)
	if !ok {
		internalErrorResponse(w, internalErrorMessage)
		return
	}
	f.Properties["distance_km"] = nearest.DistanceKm

	if err := writeJSON(w, http.StatusOK, f, http.Header{"Content-Type": {geoJSONContentType}}); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}
