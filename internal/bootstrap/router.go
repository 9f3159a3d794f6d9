package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	adminhttp "github.com/ChristianMLux/cml25-backend/internal/admin/http"
	adminservice "github.com/ChristianMLux/cml25-backend/internal/admin/service"
	httpapi "github.com/ChristianMLux/cml25-backend/internal/api/http"
	"github.com/ChristianMLux/cml25-backend/internal/api/http/middleware"
	authhttp "github.com/ChristianMLux/cml25-backend/internal/auth/http"
	authmw "github.com/ChristianMLux/cml25-backend/internal/auth/middleware"
	authrepo "github.com/ChristianMLux/cml25-backend/internal/auth/repository"
	authservice "github.com/ChristianMLux/cml25-backend/internal/auth/service"
	"github.com/ChristianMLux/cml25-backend/internal/contact"
	contentdomain "github.com/ChristianMLux/cml25-backend/internal/content/domain"
	contenthttp "github.com/ChristianMLux/cml25-backend/internal/content/http"
	"github.com/ChristianMLux/cml25-backend/internal/i18n"
	"github.com/ChristianMLux/cml25-backend/internal/locale"
	"github.com/ChristianMLux/cml25-backend/internal/pages"
	reposynchttp "github.com/ChristianMLux/cml25-backend/internal/reposync/http"
)

// BuildRouter mounts every HTTP surface on one engine:
//
//	/health, /healthz          liveness and dependency status
//	/locales/:locale/:ns       translation catalog
//	/{locale}/...              server-rendered pages
//	/api/projects, /api/contact public JSON API
//	/api/auth/...              signed-in user profile
//	/api/admin/...             admin API and editing session
func BuildRouter(app *App) (*gin.Engine, error) {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     app.Config.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID(app.Log))

	resolver := locale.NewResolver(app.Registry)
	r.Use(locale.Middleware(resolver))

	deps := []httpapi.Dependency{{Name: "store", Check: StoreCheck(app.Store)}}
	if app.Redis != nil {
		deps = append(deps, httpapi.Dependency{Name: "redis", Check: func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		}})
	} else {
		deps = append(deps, httpapi.Dependency{Name: "redis"})
	}
	httpapi.NewHealthHandler(app.Config.App.ServiceName, app.Config.App.Version, deps...).RegisterRoutes(r)

	i18n.NewHandler(app.Catalog, app.Registry).Register(r)

	site, err := pages.NewHandler(app.Projects, app.Catalog, app.Registry)
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	site.Register(r)
	r.NoRoute(site.NotFound)

	api := r.Group("/api")
	contenthttp.NewHandler(app.Projects, resolver).Register(api)
	contact.NewHandler(
		contact.NewRepository(app.Store),
		contact.NewLimiter(app.Config.Contact.RatePerMinute),
		resolver,
		app.Catalog,
		app.Log,
	).Register(api)

	if app.Authenticate == nil {
		return r, nil
	}

	authSvc := authservice.NewAuthService(authrepo.NewUserRepository(app.Store), app.Config.Auth)

	authGroup := api.Group("/auth")
	authGroup.Use(app.Authenticate)
	authhttp.NewHandler(authSvc).Register(authGroup)

	admin := api.Group("/admin")
	admin.Use(app.Authenticate, authmw.RequireAdmin(authSvc))

	sessions := adminservice.NewSessionManager(adminservice.Deps{
		Store:    app.Projects,
		Syncer:   app.Runner,
		Uploader: app.Uploader,
		Seeds:    contentdomain.Seeds,
		Log:      app.Log,
	})
	adminhttp.NewHandler(app.Projects, app.Uploader, sessions, app.Log).Register(admin)
	reposynchttp.NewHandler(app.Runner).Register(admin)

	return r, nil
}
