package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/agro-insurance/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/validator"
)

type CropService interface {
	Create(ctx context.Context, c *models.Crop) error
	Get(ctx context.Context, id int64) (*models.Crop, error)
	List(ctx context.Context, filters models.Filters) ([]models.Crop, models.Metadata, error)
	Update(ctx context.Context, c *models.Crop) error
	Delete(ctx context.Context, id int64) error
}

type Crop struct {
	service CropService
	l       logger.Logger
}

func NewCrop(service CropService, l logger.Logger) *Crop {
	return &Crop{
		service: service,
		l:       l,
	}
}

var cropSortSafelist = sortSafelist("id", "name", "created_at")

// Create godoc
// @Summary      Create crop
// @Tags         Crops
// @Accept       json
// @Produce      json
// @Param        crop  body      dto.CropRequest  true  "Crop"
// @Success      201     {object}  models.Crop
// @Failure      422     {object}  map[string]any
// @Router       /crops [post]
func (h *Crop) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "create_crop")

	var req dto.CropRequest
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

	crop := req.ToModel()
	if err := h.service.Create(ctx, crop); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to create crop", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, crop, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// List godoc
// @Summary      List crops
// @Tags         Crops
// @Produce      json
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Param        sort       query  string  false  "Sort column, '-' prefix for descending"
// @Success      200  {object}  map[string]any
// @Router       /crops [get]
func (h *Crop) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_crops")

	v := validator.New()
	filters := readFilters(r.URL.Query(), cropSortSafelist, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	crops, metadata, err := h.service.List(ctx, filters)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list crops", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"crops": crops, "metadata": metadata}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Crop) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_crop")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	crop, err := h.service.Get(ctx, id)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to get crop", "error", err.Error())
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, crop, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Crop) Update(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_crop")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var req dto.CropRequest
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

	crop := req.ToModel()
	crop.ID = id
	if err := h.service.Update(ctx, crop); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update crop", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, crop, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Crop) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "delete_crop")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to delete crop", err)
		serviceErrorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
