package bootstrap

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ChristianMLux/cml25-backend/config"
	"github.com/ChristianMLux/cml25-backend/internal/auth"
	authmw "github.com/ChristianMLux/cml25-backend/internal/auth/middleware"
	"github.com/ChristianMLux/cml25-backend/internal/blob"
	contentrepo "github.com/ChristianMLux/cml25-backend/internal/content/repository"
	"github.com/ChristianMLux/cml25-backend/internal/docstore"
	"github.com/ChristianMLux/cml25-backend/internal/docstore/rediscache"
	"github.com/ChristianMLux/cml25-backend/internal/i18n"
	"github.com/ChristianMLux/cml25-backend/internal/locale"
	"github.com/ChristianMLux/cml25-backend/internal/platform/logging"
	"github.com/ChristianMLux/cml25-backend/internal/reposync/github"
	"github.com/ChristianMLux/cml25-backend/internal/reposync/llm"
	rsrepo "github.com/ChristianMLux/cml25-backend/internal/reposync/repository"
	rsservice "github.com/ChristianMLux/cml25-backend/internal/reposync/service"
)

// App holds every long-lived component. cmd/api and cmd/worker both build
// one and pick what they need.
type App struct {
	Config   *config.Config
	Log      logging.Logger
	Registry *locale.Registry
	Catalog  *i18n.Catalog
	Store    docstore.Store
	Redis    *redis.Client
	Uploader blob.Uploader
	Projects *contentrepo.ProjectRepository
	Runner   *rsservice.Runner

	// Authenticate verifies the caller. Nil only when neither Firebase nor
	// AUTH_DISABLED is configured; the auth routes are then not mounted.
	Authenticate gin.HandlerFunc
}

// New wires the application from cfg.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	reg, err := locale.NewRegistry(cfg.Locale.Locales, cfg.Locale.Default)
	if err != nil {
		return nil, err
	}
	catalog, err := i18n.Load(reg)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	var fb *firebase.App
	if cfg.Firebase.CredentialsPath != "" || cfg.Firebase.ProjectID != "" {
		fb, err = auth.InitializeFirebase(ctx, cfg.Firebase)
		if err != nil {
			return nil, err
		}
		log.Info(ctx, "firebase initialized", "project_id", cfg.Firebase.ProjectID)
	}

	store, err := OpenStore(ctx, cfg.Store, fb)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "document store ready", "driver", cfg.Store.Driver)

	rdb, err := OpenRedis(ctx, cfg.Redis)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if rdb != nil {
		store = rediscache.New(store, rdb, cfg.Redis.CacheTTL, log, contentrepo.Collection)
		log.Info(ctx, "redis connected", "addr", cfg.Redis.Addr)
	} else {
		log.Warn(ctx, "REDIS_ADDR not set; caching and sync history disabled")
	}

	uploader, err := OpenUploader(ctx, *cfg, fb)
	if err != nil {
		closeAll(store, rdb)
		return nil, err
	}
	if _, off := uploader.(blob.Disabled); off {
		log.Warn(ctx, "image uploads disabled", "driver", cfg.Blob.Driver)
	}

	app := &App{
		Config:   cfg,
		Log:      log,
		Registry: reg,
		Catalog:  catalog,
		Store:    store,
		Redis:    rdb,
		Uploader: uploader,
		Projects: contentrepo.NewProjectRepository(store, catalog, log),
		Runner:   newRunner(ctx, cfg.Sync, rdb, log),
	}

	switch {
	case cfg.Auth.Disabled:
		log.Warn(ctx, "AUTH_DISABLED is set; every request is treated as the development admin")
		app.Authenticate = auth.DevUser(firstOr(cfg.Auth.AdminEmails, "dev@localhost"))
	case fb != nil:
		client, err := auth.AuthClient(ctx, fb)
		if err != nil {
			closeAll(store, rdb)
			return nil, err
		}
		app.Authenticate = authmw.FirebaseAuthMiddleware(client)
	default:
		log.Warn(ctx, "no Firebase project configured; auth and admin routes disabled")
	}

	return app, nil
}

// Close releases the store and the redis client.
func (a *App) Close() {
	closeAll(a.Store, a.Redis)
}

func newRunner(ctx context.Context, cfg config.SyncConfig, rdb *redis.Client, log logging.Logger) *rsservice.Runner {
	repos := github.NewClient(ctx, cfg.GitHubToken, cfg.GitHubAPIURL, cfg.HTTPTimeout)
	model := llm.NewClient(llm.Options{
		APIKey:     cfg.LLMAPIKey,
		BaseURL:    cfg.LLMBaseURL,
		Model:      cfg.LLMModel,
		RatePerSec: cfg.LLMRate,
		Timeout:    cfg.HTTPTimeout,
	})
	job := rsservice.NewJob(rsservice.Credentials{
		GitHubToken: cfg.GitHubToken,
		LLMAPIKey:   cfg.LLMAPIKey,
	}, repos, model, log)

	// runs must stay a nil interface without redis.
	var runs rsservice.RunStore
	if rdb != nil {
		runs = rsrepo.NewRunRepository(rdb)
	}
	return rsservice.NewRunner(job, runs, log)
}

func closeAll(store docstore.Store, rdb *redis.Client) {
	if store != nil {
		_ = store.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}

func firstOr(list []string, def string) string {
	if len(list) > 0 {
		return list[0]
	}
	return def
}
