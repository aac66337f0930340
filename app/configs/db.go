package configs

import (
	"fmt"
	"net"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func dialector(env ENV) (gorm.Dialector, string, error) {
	switch env.DBDriver {
	case "mysql", "":
		cfg := gomysql.NewConfig()
		cfg.User = env.DBUser
		cfg.Passwd = env.DBPassword
		cfg.Net = "tcp"
		port := env.DBPort
		if port == "" {
			port = "3306"
		}
		cfg.Addr = net.JoinHostPort(env.DBHost, port)
		cfg.DBName = env.DBName
		cfg.ParseTime = true
		cfg.Loc = time.Local
		cfg.Params = map[string]string{"charset": "utf8mb4"}
		return mysql.Open(cfg.FormatDSN()), fmt.Sprintf("mysql://%s@%s/%s", env.DBUser, cfg.Addr, env.DBName), nil
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			env.DBHost,
			env.DBUser,
			env.DBPassword,
			env.DBName,
			env.DBPort,
		)
		return postgres.Open(dsn), fmt.Sprintf("postgres://%s@%s:%s/%s", env.DBUser, env.DBHost, env.DBPort, env.DBName), nil
	case "sqlite":
		return sqlite.Open(SqliteDSN(env.DBSqlitePath)), "sqlite://" + env.DBSqlitePath, nil
	default:
		return nil, "", fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

// SqliteDSN enables foreign keys, which the cascade deletes rely on.
func SqliteDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on"
}

// GormConfig routes gorm's own logging through zap.
func GormConfig(logger *zap.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zap.NewStdLog(logger.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func OpenConnection(env ENV, logger *zap.Logger) (*gorm.DB, error) {
	dial, safeDSN, err := dialector(env)
	if err != nil {
		return nil, err
	}

	maxRetries := env.DBMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	retryDelay := 5 * time.Second

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		logger.Info("Attempting to connect to database",
			zap.Int("attempt", i+1), zap.Int("max_attempts", maxRetries), zap.String("dsn", safeDSN))
		db, err := gorm.Open(dial, GormConfig(logger))
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					logger.Info("Database connection successful", zap.String("driver", env.DBDriver))
					return db, nil
				}
			}
			lastErr = pingErr
			logger.Warn("Failed to ping database", zap.Error(pingErr), zap.Duration("retry_in", retryDelay))
		} else {
			lastErr = err
			logger.Warn("Failed to open GORM connection", zap.Error(err), zap.Duration("retry_in", retryDelay))
		}

		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to the database after %d attempts (%s): %w", maxRetries, safeDSN, lastErr)
}
