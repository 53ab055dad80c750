// Package store arma los repositorios del libro según STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/jhoicas/Intendencia-api/internal/application/movement"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
	"github.com/jhoicas/Intendencia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Intendencia-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Intendencia-api/pkg/config"
)

// Store repositorios listos para inyectar en los casos de uso.
type Store struct {
	Driver    string
	Bases     repository.BaseRepository
	Equipment repository.EquipmentTypeRepository
	Users     repository.UserRepository
	Movements repository.MovementRepository
	Ledger    repository.LedgerRepository
	TxRunner  movement.TxRunner

	pool *pgxpool.Pool
	db   *gorm.DB
}

// Open conecta con el motor configurado. No aplica migraciones; ver Migrate.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:    config.DriverPostgres,
			Bases:     postgres.NewBaseRepository(pool),
			Equipment: postgres.NewEquipmentTypeRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Ledger:    postgres.NewLedgerRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			pool:      pool,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:    config.DriverSQLite,
			Bases:     sqlite.NewBaseRepository(db),
			Equipment: sqlite.NewEquipmentTypeRepository(db),
			Users:     sqlite.NewUserRepository(db),
			Movements: sqlite.NewMovementRepository(db),
			Ledger:    sqlite.NewLedgerRepository(db),
			TxRunner:  sqlite.NewTxRunner(db),
			db:        db,
		}, nil
	}
	return nil, fmt.Errorf("store: driver desconocido %q", cfg.Store.Driver)
}

// Migrate aplica las migraciones embebidas del motor.
func (s *Store) Migrate(ctx context.Context) error {
	if s.pool != nil {
		return postgres.RunMigrations(ctx, s.pool)
	}
	return sqlite.RunMigrations(ctx, s.db)
}

// Ping verifica la conexión (health check).
func (s *Store) Ping(ctx context.Context) error {
	if s.pool != nil {
		return s.pool.Ping(ctx)
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close libera la conexión.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
		return nil
	}
	return sqlite.Close(s.db)
}
