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

type PolicyService interface {
	Create(ctx context.Context, p *models.Policy) error
	Get(ctx context.Context, id int64) (*models.Policy, error)
	List(ctx context.Context, clientID int64, filters models.Filters) ([]models.Policy, models.Metadata, error)
	Update(ctx context.Context, p *models.Policy) error
	Delete(ctx context.Context, id int64) error
}

type Policy struct {
	service PolicyService
	l       logger.Logger
}

func NewPolicy(service PolicyService, l logger.Logger) *Policy {
	return &Policy{
		service: service,
		l:       l,
	}
}

var policySortSafelist = sortSafelist("id", "policy_number", "start_date", "end_date", "status", "created_at")

// Create godoc
// @Summary      Create policy
// @Description  Dates accept YYYY-MM-DD, YYYY/MM/DD, DD-MM-YYYY, DD/MM/YYYY and RFC 3339.
// @Tags         Policies
// @Accept       json
// @Produce      json
// @Param        policy  body      dto.PolicyRequest  true  "Policy"
// @Success      201     {object}  models.Policy
// @Failure      409     {object}  map[string]string
// @Failure      422     {object}  map[string]any
// @Router       /policies [post]
func (h *Policy) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "create_policy")

	var req dto.PolicyRequest
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

	policy := req.ToModel()
	if err := h.service.Create(ctx, policy); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to create policy", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, policy, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// List returns a page of policies, optionally those of one client (?client_id=).
func (h *Policy) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_policies")

	v := validator.New()
	qs := r.URL.Query()
	clientID := readInt(qs, "client_id", 0, v)
	v.Check(clientID >= 0, "client_id", "must not be negative")
	filters := readFilters(qs, policySortSafelist, v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	policies, metadata, err := h.service.List(ctx, int64(clientID), filters)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list policies", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"policies": policies, "metadata": metadata}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Policy) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_policy")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	policy, err := h.service.Get(ctx, id)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to get policy", "error", err.Error())
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, policy, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Policy) Update(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_policy")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var req dto.PolicyRequest
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

	policy := req.ToModel()
	policy.ID = id
	if err := h.service.Update(ctx, policy); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update policy", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, policy, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

func (h *Policy) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "delete_policy")

	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to delete policy", err)
		serviceErrorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
