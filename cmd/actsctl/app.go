package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/acts/pkg/audit"
	"github.com/doodlesbykumbi/acts/pkg/command"
	"github.com/doodlesbykumbi/acts/pkg/config"
	"github.com/doodlesbykumbi/acts/pkg/db"
	"github.com/doodlesbykumbi/acts/pkg/identity"
	"github.com/doodlesbykumbi/acts/pkg/logger"
	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/query"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/acts/pkg/server/store/gorm"
)

// app holds everything a database-backed command needs
type app struct {
	cfg      *config.ActsConfig
	log      zerolog.Logger
	db       *gorm.DB
	auditDB  *sql.DB
	audit    *audit.Store
	mediator *mediator.Mediator
	health   store.HealthStore
}

// loadConfig loads and validates the configuration and initialises the
// process logger from it.
func loadConfig() (*config.ActsConfig, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	return cfg, log, nil
}

func newApp() (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, err
	}

	closeDB := func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	// Audit entries go through lib/pq, outside gorm.
	auditDB, err := sql.Open("postgres", db.URL())
	if err != nil {
		closeDB()
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	auditStore := audit.NewStore(auditDB)

	sinks := []audit.Sink{audit.NewLogger(log)}
	if cfg.AuditPersistEnabled {
		sinks = append(sinks, auditStore)
	}
	recorder := audit.NewRecorder(log, sinks...)

	people := gormstore.NewPeopleStore(database)
	duties := gormstore.NewDutiesStore(database)

	m := mediator.New(mediator.Audit(recorder), mediator.Metrics())
	if err := registerHandlers(m, people, duties, cfg.ListLimitMax); err != nil {
		_ = auditDB.Close()
		closeDB()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		db:       database,
		auditDB:  auditDB,
		audit:    auditStore,
		mediator: m,
		health:   gormstore.NewHealthStore(database),
	}, nil
}

func registerHandlers(m *mediator.Mediator, people store.PeopleStore, duties store.DutiesStore, limit int) error {
	if err := command.Register(m, people, duties, time.Now); err != nil {
		return err
	}
	return query.Register(m, people, duties, limit)
}

func (a *app) Close() {
	_ = a.auditDB.Close()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// cliContext returns a context carrying the identity of the local OS user,
// so that audit entries written by CLI commands name who ran them.
func cliContext(ctx context.Context) context.Context {
	name := "unknown"
	if u, err := user.Current(); err == nil {
		name = u.Username
	} else if v := os.Getenv("USER"); v != "" {
		name = v
	}
	id := identity.New(uuid.NewString()).WithUser("cli:"+name, time.Now(), time.Time{})
	return identity.Set(ctx, id)
}
