package repository

import (
	"os"
	"testing"

	"campuseats/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB接続文字列を環境変数から読む。
func testDSN() string {
	if v := os.Getenv("TEST_DATABASE_DSN"); v != "" {
		return v
	}
	return "host=localhost port=5432 user=postgres password=postgres dbname=campuseats_test sslmode=disable"
}

// 実DBに繋いでrepositoryのSQLを検証する。DBが無い環境ではskip。
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.Open(testDSN()), &gorm.Config{})
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	return db
}
