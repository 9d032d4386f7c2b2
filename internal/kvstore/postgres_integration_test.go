//go:build integration

package kvstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/suguru-ai/smartclass/internal/kvstore"
	"github.com/suguru-ai/smartclass/internal/platform/database"
)

func setupPostgres(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("smartclass"),
		postgres.WithUsername("smartclass"),
		postgres.WithPassword("smartclass"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := database.New(ctx, url, 4, 1)
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func TestIntegration_PostgresStore(t *testing.T) {
	db := setupPostgres(t)
	if err := db.HealthCheck(t.Context()); err != nil {
		t.Fatalf("HealthCheck() error = %v", err)
	}

	store, err := kvstore.NewPostgresStore(db.Pool, "smartclass")
	if err != nil {
		t.Fatalf("NewPostgresStore() error = %v", err)
	}
	runStoreContract(t, store)
}

func TestIntegration_PostgresStore_NamespaceIsolation(t *testing.T) {
	db := setupPostgres(t)
	ctx := t.Context()

	a, _ := kvstore.NewPostgresStore(db.Pool, "a")
	b, _ := kvstore.NewPostgresStore(db.Pool, "b")

	if err := a.Set(ctx, "userProgress", []byte("from-a")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := b.Get(ctx, "userProgress"); !errors.Is(err, kvstore.ErrNotFound) {
		t.Errorf("namespace b sees key from a, err = %v", err)
	}
	if err := b.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := a.Get(ctx, "userProgress"); err != nil {
		t.Errorf("Clear on b removed key from a: %v", err)
	}
}
