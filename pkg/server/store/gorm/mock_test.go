package gorm

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// mockDB wraps sqlmock for easier test setup
type mockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

func newMockDB(t *testing.T) *mockDB {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = db.Close()
		t.Fatalf("failed to open gorm: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return &mockDB{DB: db, Mock: mock, GormDB: gormDB}
}

func (m *mockDB) assertExpectations(t *testing.T) {
	t.Helper()
	if err := m.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
