package database

import (
	"log/slog"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const postgresPrefix = "postgres:"

// GetDatabase opens PostgreSQL for dsn prefixed with "postgres:" and SQLite otherwise.
func GetDatabase(dsn string, debug bool) (*gorm.DB, error) {
	conf := &gorm.Config{TranslateError: true}

	if !debug {
		conf.Logger = logger.Default.LogMode(logger.Silent)
	} else {
		conf.Logger = logger.Default.LogMode(logger.Info)
	}

	var db *gorm.DB
	var err error

	if strings.HasPrefix(dsn, postgresPrefix) {
		slog.Info("open postgres database")
		db, err = gorm.Open(postgres.Open(strings.TrimPrefix(dsn, postgresPrefix)), conf)
	} else {
		slog.Info("open sqlite database " + dsn)
		db, err = gorm.Open(sqlite.Open(dsn), conf)
	}

	if err != nil {
		slog.Error("db open error", slog.Any("error", err))
		return nil, err
	}

	if db.Dialector.Name() != "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}

		// sqlite has no row locks: a single connection serializes transactions
		// and keeps an in-memory database alive between calls.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	return db, nil
}

// escapeLike escapes LIKE metacharacters so s is matched literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
