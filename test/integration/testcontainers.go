package integration

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/permauth/permauth-in-go/db"
	"github.com/permauth/permauth-in-go/pkg/authn"
	"github.com/permauth/permauth-in-go/pkg/server"
	"github.com/permauth/permauth-in-go/pkg/server/endpoints"
	gormstore "github.com/permauth/permauth-in-go/pkg/server/store/gorm"
	"github.com/permauth/permauth-in-go/pkg/sync"
)

const serverPort = "18080"

// TestContext holds all the resources needed for integration tests:
// a disposable Postgres, the in-process server, and direct DB access
// for fixture setup.
type TestContext struct {
	DB          *gorm.DB
	Container   testcontainers.Container
	ServerURL   string
	DatabaseURL string
	HTTPClient  *http.Client
	Server      *server.Server
	Syncer      *sync.Syncer
}

// NewTestContext starts a PostgreSQL testcontainer, migrates it, runs
// the catalog sync and serves the API in-process.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("permauth_test"),
		tcpostgres.WithUsername("permauth"),
		tcpostgres.WithPassword("permauth"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://permauth:permauth@%s:%s/permauth_test?sslmode=disable", host, port.Port())

	if err := runMigrations(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	issuer := authn.NewIssuer([]byte("integration-secret"), "permauth", "permauth", time.Hour)
	stores := server.Stores{
		Authz:       gormstore.NewAuthzStore(gormDB),
		Permissions: gormstore.NewPermissionsStore(gormDB),
		Roles:       gormstore.NewRolesStore(gormDB),
		Users:       gormstore.NewUsersStore(gormDB),
		Health:      gormstore.NewHealthStore(gormDB),
	}

	srv := server.NewServer(issuer, stores, gormDB, "127.0.0.1", serverPort)
	endpoints.RegisterAll(srv)

	syncer := sync.NewSyncer(srv.Registry, stores.Permissions)
	if err := syncer.Sync(); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to sync permission catalog: %w", err)
	}

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("server stopped: %v", err)
		}
	}()

	serverURL := "http://127.0.0.1:" + serverPort
	if err := waitForServer(serverURL, 30*time.Second); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return &TestContext{
		DB:          gormDB,
		Container:   pgContainer,
		ServerURL:   serverURL,
		DatabaseURL: connStr,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
		Server:      srv,
		Syncer:      syncer,
	}, nil
}

// Close tears down the container.
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

func runMigrations(dbURL string) error {
	migrationsFS, err := fs.Sub(db.Migrations, "migrations")
	if err != nil {
		return err
	}
	src, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func waitForServer(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("server at %s not ready after %s", url, timeout)
}
