package db

import (
	"time"

	"go.uber.org/zap/zapcore"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"safeguard-backend/internal/domain/claim"
	"safeguard-backend/internal/domain/option"
	"safeguard-backend/internal/domain/policy"
	"safeguard-backend/internal/domain/token"
	"safeguard-backend/internal/domain/user"
	applog "safeguard-backend/internal/logger"
)

func OpenMySQL(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenSQLite pins the pool to one connection; SQLite serialises writers and
// every ":memory:" connection would otherwise get its own database.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := OpenGormWithDialector(sqlite.Open(path))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)
	return db, nil
}

// OpenGormWithDialector configures the pool and pings before returning.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel()),
		TranslateError: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	applog.Info("gorm: connected")
	return db, nil
}

// gormLogLevel follows the service logger: SQL statements only in debug.
func gormLogLevel() logger.LogLevel {
	if applog.L().Core().Enabled(zapcore.DebugLevel) {
		return logger.Info
	}
	return logger.Warn
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&policy.Policy{},
		&claim.Claim{},
		&option.InsuranceOption{},
		&token.Token{},
		&user.User{},
	)
}
