package admin

import (
	"net/http"
	"strconv"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/Rakhulsr/rainy-catalog/app/middlewares"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/Rakhulsr/rainy-catalog/app/utils/media"
	"github.com/Rakhulsr/rainy-catalog/app/utils/sessions"
	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/unrolled/render"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const autocompleteLimit = 20

// Credentials identify the single staff account.
type Credentials struct {
	Username     string
	PasswordHash string
}

type AdminHandler struct {
	render      *render.Render
	validator   *validator.Validate
	logger      *zap.Logger
	storage     media.Storage
	sessions    sessions.SessionStore
	credentials Credentials

	contactRepo     repositories.ContactRepositoryImpl
	productRepo     repositories.ProductRepositoryImpl
	specTypeRepo    repositories.SpecificationTypeRepositoryImpl
	productSpecRepo repositories.ProductSpecificationRepositoryImpl
	imageRepo       repositories.ComparisonImageRepositoryImpl
}

type Repositories struct {
	Contacts              repositories.ContactRepositoryImpl
	Products              repositories.ProductRepositoryImpl
	SpecificationTypes    repositories.SpecificationTypeRepositoryImpl
	ProductSpecifications repositories.ProductSpecificationRepositoryImpl
	ComparisonImages      repositories.ComparisonImageRepositoryImpl
}

func NewAdminHandler(
	render *render.Render,
	logger *zap.Logger,
	storage media.Storage,
	store sessions.SessionStore,
	credentials Credentials,
	repos Repositories,
) *AdminHandler {
	return &AdminHandler{
		render:          render,
		validator:       helpers.NewValidator(),
		logger:          logger,
		storage:         storage,
		sessions:        store,
		credentials:     credentials,
		contactRepo:     repos.Contacts,
		productRepo:     repos.Products,
		specTypeRepo:    repos.SpecificationTypes,
		productSpecRepo: repos.ProductSpecifications,
		imageRepo:       repos.ComparisonImages,
	}
}

type navModel struct {
	Name       string `json:"name"`
	PluralName string `json:"plural_name"`
	URL        string `json:"url"`
}

type navGroup struct {
	Name   string     `json:"name"`
	Models []navModel `json:"models"`
}

var navigation = []navGroup{
	{
		Name: "Contact Management",
		Models: []navModel{
			{Name: "Contact", PluralName: "Contacts", URL: "/admin/api/contacts"},
		},
	},
	{
		Name: "Product Management",
		Models: []navModel{
			{Name: "Product", PluralName: "Products", URL: "/admin/api/products"},
			{Name: "Product Specification", PluralName: "Product Specifications", URL: "/admin/api/product-specifications"},
			{Name: "Specification Type", PluralName: "Specification Types", URL: "/admin/api/specification-types"},
		},
	},
	{
		Name: "Product Images Management",
		Models: []navModel{
			{Name: "Product Series Comparison Image", PluralName: "Product Series Comparison Images", URL: "/admin/api/comparison-images"},
		},
	},
}

// Index lists the admin sections grouped for navigation.
func (h *AdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"user":   middlewares.StaffUser(r),
		"groups": navigation,
	})
}

func (h *AdminHandler) respondError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	_ = h.render.JSON(w, status, helpers.NewAPIError(code, message, details))
}

func (h *AdminHandler) notFound(w http.ResponseWriter, entity string) {
	h.respondError(w, http.StatusNotFound, helpers.CodeNotFound, entity+" not found.", nil)
}

func (h *AdminHandler) invalidInput(w http.ResponseWriter, err error) {
	h.respondError(w, http.StatusBadRequest, helpers.CodeInvalidInput, "Malformed request body.", err.Error())
}

func (h *AdminHandler) validationFailed(w http.ResponseWriter, fieldErrs map[string][]string) {
	h.respondError(w, http.StatusBadRequest, helpers.CodeValidation, "Invalid input.", fieldErrs)
}

// databaseError reports storage failures, constraint violations included.
func (h *AdminHandler) databaseError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op+": database error", zap.Error(err))
	sentry.CaptureException(err)
	h.respondError(w, http.StatusInternalServerError, helpers.CodeDatabase, "Database error.", errors.Cause(err).Error())
}

// deleteResult maps a repository delete error to a response.
func (h *AdminHandler) deleteResult(w http.ResponseWriter, op, entity string, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, gorm.ErrRecordNotFound):
		h.notFound(w, entity)
	default:
		h.databaseError(w, op, err)
	}
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// validate runs struct validation and merges the payload's type errors.
func (h *AdminHandler) validate(form interface{}, typeErrors map[string][]string) map[string][]string {
	fieldErrs := map[string][]string{}
	if err := h.validator.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fieldErrs = helpers.FormatValidationErrors(validationErrors)
		} else {
			fieldErrs["non_field_errors"] = []string{err.Error()}
		}
	}
	for field, msgs := range typeErrors {
		fieldErrs[field] = msgs
	}
	return fieldErrs
}

func (h *AdminHandler) assetURLs(r *http.Request) func(string) string {
	return media.AssetURLs(h.storage, helpers.RequestBaseURL(r))
}
