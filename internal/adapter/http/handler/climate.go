package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Temutjin2k/agro-insurance/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/service/locator"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/metrics"
	"github.com/Temutjin2k/agro-insurance/pkg/validator"
)

type ClimateService interface {
	Create(ctx context.Context, c *models.ClimateRecord) error
	CreateBulk(ctx context.Context, records []models.ClimateRecord) error
	Get(ctx context.Context, id int64) (*models.ClimateRecord, error)
	List(ctx context.Context, pointID int64, filters models.Filters) ([]models.ClimateRecord, models.Metadata, error)
	Update(ctx context.Context, c *models.ClimateRecord) error
	Delete(ctx context.Context, id int64) error
	History(ctx context.Context, pointID int64, year int) (models.ClimateHistory, error)
	NearestHistory(ctx context.Context, query locator.Coordinate, year int) (models.ClimateHistory, error)
}

type Climate struct {
	service ClimateService
	l       logger.Logger
}

func NewClimate(service ClimateService, l logger.Logger) *Climate {
	return &Climate{
		service: service,
		l:       l,
	}
}

var climateSortSafelist = sortSafelist("record_date", "id", "created_at")

func (h *Climate) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "create_climate_record")

	var req dto.ClimateRecordRequest
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

	record := req.ToModel()
	if err := h.service.Create(ctx, &record); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to create climate record", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, record, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// CreateBulk godoc
// @Summary      Import climate records
// @Description  Inserts every record in one transaction; nothing is stored if any record fails.
// @Tags         Climate
// @Accept       json
// @Produce      json
// @Param        records  body      dto.BulkClimateRequest  true  "Records"
// @Success      201      {object}  map[string]any
// @Failure      422      {object}  map[string]any
// @Router       /climate-records/bulk [post]
func (h *Climate) CreateBulk(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "import_climate_records")

	var req dto.BulkClimateRequest
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

	records := req.ToModels()
	if err := h.service.CreateBulk(ctx, records); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to import climate records", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, envelope{"inserted": len(records), "records": records}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// List returns a page of climate records, optionally of one point (?point_id=).
func (h *Climate) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_climate_records")

	v := validator.New()
	qs := r.URL.Query()
	pointID := readInt(qs, "point_id", 0, v)
	v.Check(pointID >= 0, "point_id", "must not be negative")
	filters := readFilters(qs, climateSortSafelist, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	records, metadata, err := h.service.List(ctx, int64(pointID), filters)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list climate records", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"climate_records": records, "metadata": metadata}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Climate) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_climate_record")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	record, err := h.service.Get(ctx, id)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to get climate record", "error", err.Error())
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, record, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Climate) Update(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_climate_record")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var req dto.ClimateRecordRequest
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

	record := req.ToModel()
	record.ID = id
	if err := h.service.Update(ctx, &record); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update climate record", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, record, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Climate) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "delete_climate_record")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to delete climate record", err)
		serviceErrorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readYear reads the optional year query parameter, 0 when absent.
func readYear(r *http.Request, v *validator.Validator) int {
	year := readInt(r.URL.Query(), "year", 0, v)
	if year != 0 {
		v.Check(year >= 1900 && year <= time.Now().Year()+1, "year", "must be a valid year")
	}
	return year
}

// PointHistory godoc
// @Summary      Climate history of a point
// @Tags         Climate
// @Produce      json
// @Param        id    path      int  true   "Point ID"
// @Param        year  query     int  false  "Only records of this year"
// @Success      200   {object}  models.ClimateHistory
// @Failure      404   {object}  map[string]string
// @Router       /points/{id}/climate [get]
func (h *Climate) PointHistory(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "point_climate_history")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	year := readYear(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	history, err := h.service.History(ctx, id, year)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to get climate history", "error", err.Error())
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, history, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// NearestHistory godoc
// @Summary      Climate history of the nearest point
// @Tags         Climate
// @Produce      json
// @Param        lat   query     number  true   "Latitude in degrees"
// @Param        lon   query     number  true   "Longitude in degrees"
// @Param        year  query     int     false  "Only records of this year"
// @Success      200   {object}  models.ClimateHistory
// @Failure      404   {object}  map[string]string
// @Router       /climate/nearest [get]
func (h *Climate) NearestHistory(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "nearest_climate_history")

	v := validator.New()
	query := readQueryCoordinate(r, v)
	year := readYear(r, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	history, err := h.service.NearestHistory(ctx, query, year)
	metrics.RecordNearestLookup("http", err)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to get nearest climate history", "error", err.Error())
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, history, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}
