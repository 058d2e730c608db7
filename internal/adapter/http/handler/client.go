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

type ClientService interface {
	Create(ctx context.Context, c *models.Client) error
	Get(ctx context.Context, id int64) (*models.Client, error)
	List(ctx context.Context, filters models.Filters) ([]models.Client, models.Metadata, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id int64) error
}

type Client struct {
	service ClientService
	l       logger.Logger
}

func NewClient(service ClientService, l logger.Logger) *Client {
	return &Client{
		service: service,
		l:       l,
	}
}

var clientSortSafelist = sortSafelist("id", "full_name", "document_id", "created_at")

// Create godoc
// @Summary      Create client
// @Tags         Clients
// @Accept       json
// @Produce      json
// @Param        client  body      dto.ClientRequest  true  "Client"
// @Success      201     {object}  models.Client
// @Failure      409     {object}  map[string]string
// @Failure      422     {object}  map[string]any
// @Router       /clients [post]
func (h *Client) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "create_client")

	var req dto.ClientRequest
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

	client := req.ToModel()
	if err := h.service.Create(ctx, client); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to create client", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, client, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// List godoc
// @Summary      List clients
// @Tags         Clients
// @Produce      json
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Param        sort       query  string  false  "Sort column, '-' prefix for descending"
// @Success      200  {object}  map[string]any
// @Router       /clients [get]
func (h *Client) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_clients")

	v := validator.New()
	filters := readFilters(r.URL.Query(), clientSortSafelist, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	clients, metadata, err := h.service.List(ctx, filters)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list clients", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"clients": clients, "metadata": metadata}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Client) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_client")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	client, err := h.service.Get(ctx, id)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to get client", "error", err.Error())
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, client, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Client) Update(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_client")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var req dto.ClientRequest
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

	client := req.ToModel()
	client.ID = id
	if err := h.service.Update(ctx, client); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update client", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, client, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Client) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "delete_client")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to delete client", err)
		serviceErrorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
