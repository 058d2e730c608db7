package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/agro-insurance/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/service/locator"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/metrics"
	"github.com/Temutjin2k/agro-insurance/pkg/validator"
)

type PointService interface {
	Create(ctx context.Context, p *models.Point) error
	Get(ctx context.Context, id int64) (*models.Point, error)
	List(ctx context.Context, filters models.Filters) ([]models.Point, models.Metadata, error)
	All(ctx context.Context) ([]models.Point, error)
	Update(ctx context.Context, p *models.Point) error
	Delete(ctx context.Context, id int64) error
	Nearest(ctx context.Context, query locator.Coordinate) (models.NearestPoint, error)
}

type Point struct {
	service PointService
	l       logger.Logger
}

func NewPoint(service PointService, l logger.Logger) *Point {
	return &Point{
		service: service,
		l:       l,
	}
}

var pointSortSafelist = sortSafelist("id", "name", "created_at")

func (h *Point) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "create_point")

	var req dto.PointRequest
	if err := readJSON(w, r, &req); err != nil {
		h.l.Warn(ctx, "failed to read request JSON data", "error", err.Error())
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	point := req.ToModel()
	if err := h.service.Create(ctx, point); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to create point", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, point, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Point) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_points")

	v := validator.New()
	filters := readFilters(r.URL.Query(), pointSortSafelist, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	points, metadata, err := h.service.List(ctx, filters)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list points", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"points": points, "metadata": metadata}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Point) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_point")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	point, err := h.service.Get(ctx, id)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to get point", "error", err.Error())
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, point, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Point) Update(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_point")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var req dto.PointRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	point := req.ToModel()
	point.ID = id
	if err := h.service.Update(ctx, point); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update point", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, point, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// Delete removes the point and, with it, its climate records.
func (h *Point) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "delete_point")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to delete point", err)
		serviceErrorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readQueryCoordinate reads the required lat and lon query parameters.
func readQueryCoordinate(r *http.Request, v *validator.Validator) locator.Coordinate {
	qs := r.URL.Query()

	c := locator.Coordinate{
		Latitude:  readFloat(qs, "lat", v),
		Longitude: readFloat(qs, "lon", v),
	}
	if _, ok := v.Errors["lat"]; !ok {
		v.Check(validator.Latitude(c.Latitude), "lat", "must be between -90 and 90")
	}
	if _, ok := v.Errors["lon"]; !ok {
		v.Check(validator.Longitude(c.Longitude), "lon", "must be between -180 and 180")
	}
	return c
}

// Nearest godoc
// @Summary      Nearest point
// @Description  Returns the stored point closest to the given coordinate (haversine distance in km).
// @Description  Points without coordinates are ignored and listed in skipped_point_ids.
// @Tags         Points
// @Produce      json
// @Param        lat  query     number  true  "Latitude in degrees"
// @Param        lon  query     number  true  "Longitude in degrees"
// @Success      200  {object}  models.NearestPoint
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]any
// @Router       /points/nearest [get]
func (h *Point) Nearest(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "nearest_point")

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

	if err := writeJSON(w, http.StatusOK, nearest, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}
