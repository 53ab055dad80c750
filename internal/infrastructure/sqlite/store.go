// Package sqlite implementa el store del libro sobre SQLite (GORM + driver modernc, sin cgo).
// Se usa en desarrollo, en la CLI y en los tests de integración.
package sqlite

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open abre la base SQLite en path con llaves foráneas activas.
// Una sola conexión abierta: SQLite serializa las escrituras y las transacciones no compiten por el lock.
func Open(path string) (*gorm.DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        dsn,
	}, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// RunMigrations aplica las migraciones embebidas.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	goose.SetBaseFS(migrationsFS)
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("migraciones sqlite: %w", err)
	}
	return nil
}

// Close cierra la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func formatDate(t time.Time) string {
	return entity.CalendarDate(t).Format(entity.DateLayout)
}

// parseDate interpreta una fecha guardada; un valor corrupto queda en cero.
func parseDate(s string) time.Time {
	t, err := entity.ParseDate(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// applyRange agrega los límites inclusivos del rango sobre column.
func applyRange(q *gorm.DB, column string, r entity.DateRange) *gorm.DB {
	if r.From != nil {
		q = q.Where(column+" >= ?", formatDate(*r.From))
	}
	if r.To != nil {
		q = q.Where(column+" <= ?", formatDate(*r.To))
	}
	return q
}
