package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/config"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/repository"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/database"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/mongo"
)

// OpenRepository store.driver 에 따라 저장소를 연다
// PostgreSQL 이면 마이그레이션까지 적용한다. 반환된 close 는 항상 호출 가능하다
func OpenRepository(cfg *config.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		client, err := mongo.Connect(&cfg.Mongo, logger)
		if err != nil {
			return nil, func() {}, fmt.Errorf("MongoDB 연결 실패: %w", err)
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				logger.Warn("MongoDB 연결 종료 실패", zap.Error(err))
			}
		}
		return repository.NewMongoRepository(client, &cfg.Mongo), closeFn, nil

	default:
		db, err := database.NewDB(&cfg.Database, logger)
		if err != nil {
			return nil, func() {}, fmt.Errorf("데이터베이스 연결 실패: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, func() {}, fmt.Errorf("sql.DB 획득 실패: %w", err)
		}
		closeFn := func() { sqlDB.Close() }
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			closeFn()
			return nil, func() {}, fmt.Errorf("데이터베이스 마이그레이션 실패: %w", err)
		}
		return repository.NewRepository(db), closeFn, nil
	}
}
