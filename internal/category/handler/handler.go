package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var categoryMessages = validation.Messages{
	"name.required":                         {ID: "CategoryNameRequired", Text: "Category name is required"},
	"name.type":                             {ID: "CategoryNameString", Text: "Category name should be a string"},
	"name.min":                              {ID: "CategoryNameEmpty", Text: "Category name should not be empty"},
	"priceConfiguration.required":           {ID: "PriceConfigurationRequired", Text: "Price configuration is required"},
	"priceConfiguration.type":               {ID: "PriceConfigurationInvalid", Text: "Price configuration should be an object"},
	"priceConfiguration.priceType.required": {ID: "PriceTypeRequired", Text: "Price type is required"},
	"priceConfiguration.priceType.oneof":    {ID: "PriceTypeInvalid", Text: "Price type must be base or aditional"},
	"priceType.type":                        {ID: "PriceTypeInvalid", Text: "Price type must be base or aditional"},
	"availableOptions.type":                 {ID: "AvailableOptionsInvalid", Text: "Available options should map option names to prices"},
	"attributes.required":                   {ID: "AttributesRequired", Text: "Attributes field is required"},
	"attributes.type":                       {ID: "AttributesInvalid", Text: "Attributes should be an array"},
	"attributes.name.required":              {ID: "AttributeNameRequired", Text: "Attribute name is required"},
	"attributes.name.type":                  {ID: "AttributeNameRequired", Text: "Attribute name is required"},
	"attributes.widgetType.oneof":           {ID: "AttributeWidgetTypeInvalid", Text: "Widget type must be switch or radio"},
}

var errNotFound = apperror.NotFound("CategoryNotFound", "Category not found")

type CategoryHandler struct {
	uc        category.UseCase
	validator *validation.Validator
	rs        *response.Responder
	logger    logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, vd *validation.Validator, rs *response.Responder, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:        uc,
		validator: vd,
		rs:        rs,
		logger:    log,
	}
}

// Routes builds the /categories router. Reads are public; mutations run
// authn and then require the admin role.
func (h *CategoryHandler) Routes(authn func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{categoryId}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authn, auth.CanAccess(h.rs.Error, auth.RoleAdmin))
		r.Post("/", h.Create)
		r.Patch("/{categoryId}", h.Update)
		r.Delete("/{categoryId}", h.Delete)
	})
	return r
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := h.validator.Decode(r.Body, &req, categoryMessages); err != nil {
		h.rs.Error(w, r, err)
		return
	}

	cat, err := h.uc.CreateCategory(r.Context(), req.ToInput())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusCreated, dto.IDResponse{ID: cat.ID})
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCategoryRequest
	if err := h.validator.Decode(r.Body, &req, categoryMessages); err != nil {
		h.rs.Error(w, r, err)
		return
	}

	cat, err := h.uc.UpdateCategory(r.Context(), req.ToInput(chi.URLParam(r, "categoryId")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, dto.IDResponse{ID: cat.ID})
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	cat, err := h.uc.GetCategory(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.uc.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteCategory(r.Context(), chi.URLParam(r, "categoryId")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, struct{}{})
}

func (h *CategoryHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, category.ErrNotFound) {
		h.rs.Error(w, r, errNotFound)
		return
	}
	h.logger.Error("category request failed", zap.Error(err), zap.String("path", r.URL.Path))
	h.rs.Error(w, r, err)
}
