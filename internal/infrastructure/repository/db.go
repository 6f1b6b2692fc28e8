package repository

import (
	"errors"
	"strings"
	"time"

	"lmsplatform/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// OpenPostgres connects through gorm's pgx-backed postgres driver.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

// OpenSQLite opens a file database on the pure-Go modernc driver.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	return gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), gormConfig())
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Course{},
		&domain.Module{},
		&domain.Lesson{},
		&domain.Assignment{},
		&domain.Enrollment{},
		&domain.Submission{},
	)
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// notFound maps gorm's missing-row error to the entity's sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// conflict maps unique-constraint violations to the entity's sentinel.
// gorm's sqlite translator cannot read modernc errors, so those are
// matched on their extended result code.
func conflict(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return sentinel
	}
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return sentinel
		}
	}
	return err
}

// deleted turns a zero-row delete into the entity's not-found sentinel.
func deleted(res *gorm.DB, sentinel error) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return sentinel
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern wraps q for a substring match; pair it with likeClause.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// likeClause is a LIKE against a pattern built by likePattern.
const likeClause = `LIKE ? ESCAPE '\'`
