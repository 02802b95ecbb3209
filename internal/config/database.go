package config

import (
	"fmt"
	"time"

	"genuka-bridge/migrations"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogger пише SQL в logrus; значення параметрів (токени) ніколи не логуються
func gormLogger(cfg *Config) logger.Interface {
	level := logger.Silent
	if cfg.IsDevelopment() {
		level = logger.Info
	}
	return logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	})
}

// OpenDatabase підключається до бази даних через GORM згідно з database.driver
func OpenDatabase(cfg *Config) (*gorm.DB, error) {
	logrus.WithFields(logrus.Fields{
		"driver": cfg.Database.Driver,
		"host":   cfg.Database.Host,
		"port":   cfg.Database.Port,
		"name":   cfg.Database.Name,
	}).Info("🔌 Connecting to database")

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger(cfg),
	}

	db, err := gorm.Open(dialector(cfg), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	connectionMaxLifetime := durationOrDefault("database.connection_max_lifetime", cfg.Database.ConnectionMaxLifetime, 5*time.Minute)

	if cfg.Database.MaxOpenConnections > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConnections)
	}
	if cfg.Database.MaxIdleConnections > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConnections)
	}
	sqlDB.SetConnMaxLifetime(connectionMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Infof("📊 Database connection pool configured: MaxOpen=%d, MaxIdle=%d, MaxLifetime=%v",
		cfg.Database.MaxOpenConnections, cfg.Database.MaxIdleConnections, connectionMaxLifetime)

	return db, nil
}

func dialector(cfg *Config) gorm.Dialector {
	dsn := cfg.GetDatabaseDSN()
	switch cfg.Database.Driver {
	case "mysql":
		return mysql.Open(dsn)
	case "sqlite":
		return sqlite.Open(dsn)
	default:
		return postgres.Open(dsn)
	}
}

// RunMigrations виконує тільки міграції без запуску сервера
func RunMigrations(cfg *Config, rollback bool) error {
	db, err := OpenDatabase(cfg)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	if rollback {
		return migrations.Rollback(db)
	}
	return migrations.Run(db)
}
