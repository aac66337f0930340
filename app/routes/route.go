package routes

import (
	"net/http"
	"strings"

	"github.com/Rakhulsr/rainy-catalog/app/configs"
	"github.com/Rakhulsr/rainy-catalog/app/handlers"
	"github.com/Rakhulsr/rainy-catalog/app/handlers/admin"
	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/Rakhulsr/rainy-catalog/app/middlewares"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/Rakhulsr/rainy-catalog/app/services"
	"github.com/Rakhulsr/rainy-catalog/app/utils/media"
	"github.com/Rakhulsr/rainy-catalog/app/utils/metrics"
	"github.com/Rakhulsr/rainy-catalog/app/utils/sessions"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options carries the collaborators built at startup.
type Options struct {
	Render   *render.Render
	Storage  media.Storage
	Notifier services.ContactNotifier
	Sessions sessions.SessionStore
	CSRFKey  []byte
}

func NewRouter(db *gorm.DB, env configs.ENV, logger *zap.Logger, opts Options) http.Handler {
	rdr := opts.Render

	productRepo := repositories.NewProductRepository(db)
	imageRepo := repositories.NewComparisonImageRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	specTypeRepo := repositories.NewSpecificationTypeRepository(db)
	productSpecRepo := repositories.NewProductSpecificationRepository(db)

	homeHandler := handlers.NewHomeHandler(rdr, logger)
	productHandler := handlers.NewProductHandler(productRepo, imageRepo, opts.Storage, rdr, logger)
	contactHandler := handlers.NewContactHandler(contactRepo, opts.Notifier, rdr, logger)
	adminHandler := admin.NewAdminHandler(rdr, logger, opts.Storage, opts.Sessions, admin.Credentials{
		Username:     env.AdminUsername,
		PasswordHash: env.AdminPassHash,
	}, admin.Repositories{
		Contacts:              contactRepo,
		Products:              productRepo,
		SpecificationTypes:    specTypeRepo,
		ProductSpecifications: productSpecRepo,
		ComparisonImages:      imageRepo,
	})

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = rdr.JSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = rdr.JSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method \"" + r.Method + "\" not allowed."})
	})
	if env.TrustProxyHeaders {
		router.Use(middlewares.ForwardedProto)
	}
	router.Use(metrics.Middleware)
	router.Use(middlewares.RequestLogger(logger))
	router.Use(middlewares.Recoverer(rdr, logger))

	router.HandleFunc("/", homeHandler.Index).Methods("GET")
	router.HandleFunc("/products/", productHandler.Products).Methods("GET")
	router.HandleFunc("/products", productHandler.Products).Methods("GET")
	router.HandleFunc("/contact/", contactHandler.NewContact).Methods("POST")
	router.HandleFunc("/contact", contactHandler.NewContact).Methods("POST")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	if local, ok := opts.Storage.(*media.LocalStorage); ok && strings.HasPrefix(local.BaseURL, "/") {
		router.PathPrefix(local.BaseURL).Handler(
			http.StripPrefix(local.BaseURL, http.FileServer(http.Dir(local.Root))),
		).Methods("GET", "HEAD")
	}

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(csrf.Protect(opts.CSRFKey,
		csrf.Path("/admin"),
		csrf.Secure(env.IsProduction()),
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("CSRF validation failed", zap.String("path", r.URL.Path), zap.Error(csrf.FailureReason(r)))
			_ = rdr.JSON(w, http.StatusForbidden, helpers.NewAPIError("CSRF_FAILED", "CSRF token missing or incorrect.", nil))
		})),
	))
	adminRouter.HandleFunc("/login", adminHandler.Login).Methods("POST")
	adminRouter.HandleFunc("/logout", adminHandler.Logout).Methods("POST")
	adminRouter.HandleFunc("/csrf", adminHandler.CSRFToken).Methods("GET")

	api := adminRouter.PathPrefix("/api").Subrouter()
	api.Use(middlewares.AdminAuthMiddleware(opts.Sessions, rdr, logger))
	api.HandleFunc("/", adminHandler.Index).Methods("GET")

	api.HandleFunc("/contacts", adminHandler.ListContacts).Methods("GET")
	api.HandleFunc("/contacts", adminHandler.CreateContact).Methods("POST")
	api.HandleFunc("/contacts/{id:[0-9]+}", adminHandler.GetContact).Methods("GET")
	api.HandleFunc("/contacts/{id:[0-9]+}", adminHandler.UpdateContact).Methods("PUT", "PATCH")
	api.HandleFunc("/contacts/{id:[0-9]+}", adminHandler.DeleteContact).Methods("DELETE")

	api.HandleFunc("/products", adminHandler.ListProducts).Methods("GET")
	api.HandleFunc("/products", adminHandler.CreateProduct).Methods("POST")
	api.HandleFunc("/products/{id:[0-9]+}", adminHandler.GetProduct).Methods("GET")
	api.HandleFunc("/products/{id:[0-9]+}", adminHandler.UpdateProduct).Methods("PUT", "PATCH")
	api.HandleFunc("/products/{id:[0-9]+}", adminHandler.DeleteProduct).Methods("DELETE")
	api.HandleFunc("/products/{id:[0-9]+}/specifications", adminHandler.GetProductSpecifications).Methods("GET")
	api.HandleFunc("/products/{id:[0-9]+}/specifications", adminHandler.PutProductSpecifications).Methods("PUT")

	api.HandleFunc("/specification-types", adminHandler.ListSpecificationTypes).Methods("GET")
	api.HandleFunc("/specification-types", adminHandler.CreateSpecificationType).Methods("POST")
	api.HandleFunc("/specification-types/{id:[0-9]+}", adminHandler.GetSpecificationType).Methods("GET")
	api.HandleFunc("/specification-types/{id:[0-9]+}", adminHandler.UpdateSpecificationType).Methods("PUT", "PATCH")
	api.HandleFunc("/specification-types/{id:[0-9]+}", adminHandler.DeleteSpecificationType).Methods("DELETE")

	api.HandleFunc("/product-specifications", adminHandler.ListProductSpecifications).Methods("GET")
	api.HandleFunc("/product-specifications", adminHandler.CreateProductSpecification).Methods("POST")
	api.HandleFunc("/product-specifications/{id:[0-9]+}", adminHandler.GetProductSpecification).Methods("GET")
	api.HandleFunc("/product-specifications/{id:[0-9]+}", adminHandler.UpdateProductSpecification).Methods("PUT", "PATCH")
	api.HandleFunc("/product-specifications/{id:[0-9]+}", adminHandler.DeleteProductSpecification).Methods("DELETE")

	api.HandleFunc("/comparison-images", adminHandler.ListComparisonImages).Methods("GET")
	api.HandleFunc("/comparison-images", adminHandler.CreateComparisonImage).Methods("POST")
	api.HandleFunc("/comparison-images/{id:[0-9]+}", adminHandler.GetComparisonImage).Methods("GET")
	api.HandleFunc("/comparison-images/{id:[0-9]+}", adminHandler.UpdateComparisonImage).Methods("PUT", "PATCH")
	api.HandleFunc("/comparison-images/{id:[0-9]+}", adminHandler.DeleteComparisonImage).Methods("DELETE")

	api.HandleFunc("/autocomplete/products", adminHandler.AutocompleteProducts).Methods("GET")
	api.HandleFunc("/autocomplete/specification-types", adminHandler.AutocompleteSpecificationTypes).Methods("GET")

	var handler http.Handler = middlewares.MethodOverrideMiddleware(router)
	if len(env.CORSOrigins) > 0 {
		handler = cors.Handler(cors.Options{
			AllowedOrigins:   env.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
			ExposedHeaders:   []string{"X-CSRF-Token"},
			AllowCredentials: true,
			MaxAge:           300,
		})(handler)
	}
	return handler
}
