// Package app assembles the store and service dependencies shared by the
// API server and the maintenance CLI.
package app

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"safeguard-backend/internal/adapter/repository/mongodb"
	"safeguard-backend/internal/adapter/repository/mysql"
	"safeguard-backend/internal/config"
	"safeguard-backend/internal/domain/claim"
	"safeguard-backend/internal/domain/option"
	"safeguard-backend/internal/domain/policy"
	"safeguard-backend/internal/domain/token"
	"safeguard-backend/internal/domain/uow"
	"safeguard-backend/internal/domain/user"
	"safeguard-backend/internal/infrastructure/db"
	"safeguard-backend/internal/seed"
)

// Store bundles the repositories of one backend.
type Store struct {
	Policies policy.Repository
	Claims   claim.Repository
	Options  option.Repository
	Tokens   token.Repository
	Users    user.Repository
	UoW      uow.UnitOfWork

	// Mongo is nil for SQL backends.
	Mongo *mongo.Database

	ping  func(context.Context) error
	close func(context.Context) error
}

// OpenStore connects to the backend named by cfg.StoreDriver. SQL backends
// are migrated on open.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		mc, err := db.ConnectMongo(ctx, db.MongoConfig{
			URI:         cfg.MongoURI,
			DBName:      cfg.MongoDB,
			MaxPoolSize: cfg.MongoMaxPool,
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Policies: mongodb.NewPolicyRepo(mc.Database),
			Claims:   mongodb.NewClaimRepo(mc.Database),
			Options:  mongodb.NewOptionRepo(mc.Database),
			Tokens:   mongodb.NewTokenRepo(mc.Database),
			Users:    mongodb.NewUserRepo(mc.Database),
			UoW:      mongodb.NewUnitOfWork(mc.Client, mc.Database, cfg.MongoTransactions),
			Mongo:    mc.Database,
			ping:     func(ctx context.Context) error { return mc.Client.Ping(ctx, nil) },
			close:    mc.Disconnect,
		}, nil

	case config.StoreMySQL, config.StoreSQLite:
		var (
			gdb *gorm.DB
			err error
		)
		if cfg.StoreDriver == config.StoreMySQL {
			gdb, err = db.OpenMySQL(cfg.MySQLDSN())
		} else {
			gdb, err = db.OpenSQLite(cfg.SQLitePath)
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.StoreDriver, err)
		}
		if err := db.Migrate(gdb); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		return &Store{
			Policies: mysql.NewPolicyRepository(gdb),
			Claims:   mysql.NewClaimRepository(gdb),
			Options:  mysql.NewOptionRepository(gdb),
			Tokens:   mysql.NewTokenRepository(gdb),
			Users:    mysql.NewUserRepository(gdb),
			UoW:      mysql.NewGormUoW(gdb),
			ping:     sqlDB.PingContext,
			close:    func(context.Context) error { return sqlDB.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// SeedRepos exposes the collections the seeder manages.
func (s *Store) SeedRepos() seed.Repos {
	return seed.Repos{Policies: s.Policies, Claims: s.Claims, Options: s.Options, Tokens: s.Tokens}
}
