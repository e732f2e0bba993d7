// Package kernel assembles the recipebox HTTP handler from its dependencies.
package kernel

import (
	"context"
	"errors"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/app/controllers"
	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/app/repositories"
	"github.com/shashiranjanraj/recipebox/app/routes"
	"github.com/shashiranjanraj/recipebox/app/services"
	"github.com/shashiranjanraj/recipebox/config"
	"github.com/shashiranjanraj/recipebox/pkg/cache"
	"github.com/shashiranjanraj/recipebox/pkg/metrics"
	"github.com/shashiranjanraj/recipebox/pkg/middleware"
	"github.com/shashiranjanraj/recipebox/pkg/response"
	"github.com/shashiranjanraj/recipebox/pkg/router"
	"github.com/shashiranjanraj/recipebox/pkg/storage"
)

// Deps are the long-lived resources the kernel wires together.
// Cache may be nil; a nil store simply never hits.
type Deps struct {
	DB    *gorm.DB
	Cache *cache.Store
	Disks *storage.Manager
}

// HTTPKernel owns the router and the services behind it.
type HTTPKernel struct {
	router *router.Router
	users  *services.UserService
}

// NewHTTPKernel builds the full handler.
//
// Global middleware, outermost first:
//  1. Prometheus metrics
//  2. Request ID
//  3. Real IP
//  4. Recovery
//  5. Logger
//  6. CORS
func NewHTTPKernel(d Deps) (*HTTPKernel, error) {
	if d.DB == nil {
		return nil, errors.New("kernel: database is required")
	}
	if d.Disks == nil {
		return nil, errors.New("kernel: storage is required")
	}
	files, err := d.Disks.Default()
	if err != nil {
		return nil, err
	}

	userRepo := repositories.NewUserRepository(d.DB)
	tagRepo := repositories.NewLabelRepository[models.Tag](d.DB)
	ingredientRepo := repositories.NewLabelRepository[models.Ingredient](d.DB)
	recipeRepo := repositories.NewRecipeRepository(d.DB)

	users := services.NewUserService(userRepo, d.Cache, files)
	tags := services.NewTagService(tagRepo)
	ingredients := services.NewIngredientService(ingredientRepo)
	recipes := services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, files)
	images := services.NewImageService(recipeRepo, files)

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.CORSOrigins(),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", health(d.DB))

	if local, ok := d.Disks.Local(); ok {
		fs := http.StripPrefix("/storage/", http.FileServer(http.Dir(local.Root())))
		r.Mount("/storage/*", "storage", fs)
	}

	routes.RegisterAPI(r, routes.Controllers{
		Users:       controllers.NewUserController(users),
		Tags:        controllers.NewLabelController(tags),
		Ingredients: controllers.NewLabelController(ingredients),
		Recipes:     controllers.NewRecipeController(recipes, images),
	}, middleware.Authenticate(users.Verify))

	return &HTTPKernel{router: r, users: users}, nil
}

// Handler returns the root http.Handler.
func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists the registered routes.
func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }

// Users exposes the account service for CLI commands.
func (k *HTTPKernel) Users() *services.UserService { return k.users }

func health(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			err = sqlDB.PingContext(ctx)
			cancel()
		}
		if err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}
