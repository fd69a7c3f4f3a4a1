package repo

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"personnel-api/internal/core/config"
	"personnel-api/internal/core/database"
	"personnel-api/internal/domain"
)

// Persistent 报告该 driver 的数据是否能活过进程退出
func Persistent(driver string) bool {
	return driver != "memory" && driver != ""
}

// Open 按 db.driver 选择存储后端；返回的 cleanup 负责关闭连接
func Open(ctx context.Context, cfg config.DB, l *zap.Logger) (domain.UserRepository, func(), error) {
	switch cfg.Driver {
	case "memory", "":
		l.Warn("using in-memory user store; data is lost on restart")
		return NewMemoryUserRepo(), func() {}, nil

	case "mongo":
		client, db, err := database.NewMongo(ctx, cfg.DSN, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		r := NewMongoUserRepo(db, l)
		if err := r.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("ensure user indexes: %w", err)
		}
		return r, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.Driver,
			DSN:                cfg.DSN,
			Username:           cfg.Username,
			Password:           cfg.Password,
			MaxOpenConns:       cfg.MaxOpenConns,
			MaxIdleConns:       cfg.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.ConnMaxLifetimeMin,
			LogLevel:           cfg.LogLevel,
		})
		if err != nil {
			return nil, nil, err
		}
		r := NewUserRepo(db, l)
		if cfg.AutoMigrate {
			if err := r.Migrate(); err != nil {
				return nil, nil, fmt.Errorf("automigrate: %w", err)
			}
			l.Info("automigrate done")
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return r, cleanup, nil
	}
}
