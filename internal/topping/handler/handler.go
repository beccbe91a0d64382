package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/fekuna/omnipos-catalog-service/internal/topping"
	"github.com/fekuna/omnipos-catalog-service/internal/topping/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var toppingMessages = validation.Messages{
	"name.required":     {ID: "ToppingNameRequired", Text: "Topping name is required"},
	"name.min":          {ID: "ToppingNameRequired", Text: "Topping name is required"},
	"name.type":         {ID: "ToppingNameString", Text: "Topping name should be a string"},
	"price.required":    {ID: "ToppingPriceRequired", Text: "Price is required"},
	"price.type":        {ID: "ToppingPriceNumber", Text: "Price should be a number"},
	"price.gte":         {ID: "ToppingPricePositive", Text: "Price must be a positive number"},
	"image.required":    {ID: "ToppingImageRequired", Text: "Image is required"},
	"image.min":         {ID: "ToppingImageRequired", Text: "Image is required"},
	"tenantId.required": {ID: "ToppingTenantRequired", Text: "Tenant id is required"},
	"tenantId.min":      {ID: "ToppingTenantRequired", Text: "Tenant id is required"},
	"isPublish.type":    {ID: "ToppingIsPublishBoolean", Text: "isPublish should be a boolean"},
}

var (
	errNotFound        = apperror.NotFound("ToppingNotFound", "Topping not found")
	errTenantRequired  = apperror.Validation("TenantIDRequired", "Tenant id is required")
	errTenantForbidden = apperror.ForbiddenWith("TenantForbidden", "You are not allowed to manage toppings of this tenant")
)

type ToppingHandler struct {
	uc        topping.UseCase
	validator *validation.Validator
	rs        *response.Responder
	logger    logger.ZapLogger
}

func NewToppingHandler(uc topping.UseCase, vd *validation.Validator, rs *response.Responder, log logger.ZapLogger) *ToppingHandler {
	return &ToppingHandler{
		uc:        uc,
		validator: vd,
		rs:        rs,
		logger:    log,
	}
}

// Routes builds the /toppings router. Admins manage every tenant, managers
// only their own.
func (h *ToppingHandler) Routes(authn func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{toppingId}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authn, auth.CanAccess(h.rs.Error, auth.RoleAdmin, auth.RoleManager))
		r.Post("/", h.Create)
		r.Patch("/{toppingId}", h.Update)
		r.Delete("/{toppingId}", h.Delete)
	})
	return r
}

func (h *ToppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateToppingRequest
	if err := h.validator.Decode(r.Body, &req, toppingMessages); err != nil {
		h.rs.Error(w, r, err)
		return
	}
	if !h.canManage(r, req.TenantID) {
		h.rs.Error(w, r, errTenantForbidden)
		return
	}

	t, err := h.uc.CreateTopping(r.Context(), req.ToInput())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusCreated, dto.IDResponse{ID: t.ID})
}

func (h *ToppingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tenantID := q.Get("tenantId")
	if tenantID == "" {
		h.rs.Error(w, r, errTenantRequired)
		return
	}

	filters := &dto.ToppingFilters{
		TenantID: tenantID,
		Page:     queryInt(q.Get("page")),
		Limit:    queryInt(q.Get("limit")),
		Query:    q.Get("q"),
	}
	page, err := h.uc.ListToppings(r.Context(), filters)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, page)
}

func (h *ToppingHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.uc.GetTopping(r.Context(), chi.URLParam(r, "toppingId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, t)
}

func (h *ToppingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateToppingRequest
	if err := h.validator.Decode(r.Body, &req, toppingMessages); err != nil {
		h.rs.Error(w, r, err)
		return
	}

	id := chi.URLParam(r, "toppingId")
	existing, err := h.uc.GetTopping(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !h.canManage(r, existing.TenantID) || (req.TenantID != nil && !h.canManage(r, *req.TenantID)) {
		h.rs.Error(w, r, errTenantForbidden)
		return
	}

	t, err := h.uc.UpdateTopping(r.Context(), req.ToInput(id))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, t)
}

// Delete answers 200 even when the topping is already gone.
func (h *ToppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "toppingId")
	existing, err := h.uc.GetTopping(r.Context(), id)
	switch {
	case errors.Is(err, topping.ErrNotFound):
		h.rs.JSON(w, http.StatusOK, struct{}{})
		return
	case err != nil:
		h.fail(w, r, err)
		return
	}
	if !h.canManage(r, existing.TenantID) {
		h.rs.Error(w, r, errTenantForbidden)
		return
	}

	if err := h.uc.DeleteTopping(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, struct{}{})
}

func (h *ToppingHandler) canManage(r *http.Request, tenantID string) bool {
	user, ok := auth.UserFromContext(r.Context())
	return ok && auth.CanManageTenant(user, tenantID)
}

func (h *ToppingHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, topping.ErrNotFound) {
		h.rs.Error(w, r, errNotFound)
		return
	}
	h.logger.Error("topping request failed", zap.Error(err), zap.String("path", r.URL.Path))
	h.rs.Error(w, r, err)
}

// queryInt returns 0 for a missing or malformed value so the defaults apply.
func queryInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
