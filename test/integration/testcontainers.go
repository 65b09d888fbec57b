package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	actsdb "github.com/doodlesbykumbi/acts/db"
	"github.com/doodlesbykumbi/acts/pkg/audit"
	"github.com/doodlesbykumbi/acts/pkg/command"
	"github.com/doodlesbykumbi/acts/pkg/config"
	"github.com/doodlesbykumbi/acts/pkg/db"
	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/query"
	"github.com/doodlesbykumbi/acts/pkg/server"
	"github.com/doodlesbykumbi/acts/pkg/server/endpoints"
	gormstore "github.com/doodlesbykumbi/acts/pkg/server/store/gorm"
)

// jwtSecret signs the bearer tokens used by the auth scenarios
var jwtSecret = []byte("integration-test-secret")

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB          *gorm.DB
	RawDB       *sql.DB
	Container   testcontainers.Container
	ServerURL   string
	DatabaseURL string
	HTTPClient  *http.Client
	InlineMode  bool
	BinaryPath  string

	server *ServerInstance
}

// NewTestContext creates a new test context with PostgreSQL testcontainer.
// Modes:
//   - Inline mode (default): the server runs in-process
//   - Binary mode: Set ACTS_BINARY to the path of the actsctl binary
func NewTestContext(ctx context.Context) (*TestContext, error) {
	binaryPath := os.Getenv("ACTS_BINARY")
	inlineMode := binaryPath == ""

	if !inlineMode {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("ACTS_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
	} else {
		log.Println("Using inline server mode")
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("acts_test"),
		tcpostgres.WithUsername("acts"),
		tcpostgres.WithPassword("acts"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	if err := runMigrations(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Connect with GORM for test setup/assertions
	database, err := db.Connect(db.Config{URL: connStr})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}
	rawDB, err := database.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	tc := &TestContext{
		DB:          database,
		RawDB:       rawDB,
		Container:   pgContainer,
		DatabaseURL: connStr,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
		InlineMode:  inlineMode,
		BinaryPath:  binaryPath,
	}

	tc.server, err = StartServer(tc, DefaultServerConfig())
	if err != nil {
		tc.Close(ctx)
		return nil, err
	}
	tc.ServerURL = tc.server.ServerURL

	return tc, nil
}

// newInlineServer wires an in-process server the same way actsctl server does
func newInlineServer(dbURL string, cfg ServerConfig, port string) (*server.Server, func(), error) {
	database, err := db.Connect(db.Config{URL: dbURL})
	if err != nil {
		return nil, nil, err
	}
	auditDB, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, nil, err
	}

	actsCfg := &config.ActsConfig{
		AuditPersistEnabled:  true,
		AuthRequired:         cfg.AuthRequired,
		ServerTimeoutSeconds: 10,
	}
	log := zerolog.Nop()

	recorder := audit.NewRecorder(log, audit.NewStore(auditDB))
	people := gormstore.NewPeopleStore(database)
	duties := gormstore.NewDutiesStore(database)

	m := mediator.New(mediator.Audit(recorder), mediator.Metrics())
	if err := command.Register(m, people, duties, time.Now); err != nil {
		return nil, nil, err
	}
	if err := query.Register(m, people, duties, 0); err != nil {
		return nil, nil, err
	}

	s := server.NewServer(m, gormstore.NewHealthStore(database), database, actsCfg, log, server.Options{
		Host:      "127.0.0.1",
		Port:      port,
		JWTSecret: jwtSecret,
	})
	endpoints.RegisterAll(s)

	closeFn := func() {
		_ = auditDB.Close()
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return s, closeFn, nil
}

// startBinary starts the actsctl server binary
func startBinary(binaryPath, dbURL string, cfg ServerConfig, port string) (*exec.Cmd, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// Use --no-migrate since we already ran migrations in the test setup
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"ACTS_JWT_SECRET="+string(jwtSecret),
		fmt.Sprintf("ACTS_AUTH_REQUIRED=%t", cfg.AuthRequired),
		"ACTS_AUDIT_PERSIST_ENABLED=true",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to start binary: %w", err)
	}

	return cmd, cancel, nil
}

// waitForServer polls the server until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.server != nil {
		tc.server.Stop()
	}
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// Reset empties every table between scenarios
func (tc *TestContext) Reset() error {
	return tc.DB.Exec(`TRUNCATE people, astronaut_details, astronaut_duties, log_entries RESTART IDENTITY CASCADE`).Error
}

// runMigrations applies the embedded migrations
func runMigrations(dbURL string) error {
	migrationsFS, err := fs.Sub(actsdb.Migrations, "migrations")
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

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
