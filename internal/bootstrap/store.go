package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ChristianMLux/cml25-backend/config"
	"github.com/ChristianMLux/cml25-backend/internal/docstore"
	fsstore "github.com/ChristianMLux/cml25-backend/internal/docstore/firestore"
	pgstore "github.com/ChristianMLux/cml25-backend/internal/docstore/postgres"
)

// OpenStore opens the document store selected by STORE_DRIVER. Postgres
// runs its migrations first.
func OpenStore(ctx context.Context, cfg config.StoreConfig, app *firebase.App) (docstore.Store, error) {
	switch cfg.Driver {
	case "memory":
		return docstore.NewMemory(), nil
	case "firestore":
		if app == nil {
			return nil, fmt.Errorf("firestore store requires a Firebase app")
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Firestore client: %w", err)
		}
		return fsstore.New(client), nil
	case "postgres":
		db, err := pgstore.Open(ctx, pgstore.Options{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return pgstore.New(db), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Driver)
	}
}

// StoreCheck reads a document that never exists; not-found means the
// store answered.
func StoreCheck(store docstore.Store) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := store.Get(ctx, "_health", "ping")
		if err == nil || errors.Is(err, docstore.ErrNotFound) {
			return nil
		}
		return err
	}
}

// OpenRedis returns nil when REDIS_ADDR is empty.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
