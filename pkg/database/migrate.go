package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsTable = "slive_schema_migrations"

// ErrDirtySchema 이전 마이그레이션이 중간에 실패한 상태
// 수동으로 스키마를 확인하고 `migrate force` 로 버전을 맞춰야 한다
var ErrDirtySchema = errors.New("스키마가 dirty 상태입니다")

// RunMigrations 내장된 마이그레이션 적용
// dirty 상태면 아무것도 실행하지 않고 ErrDirtySchema 를 돌려준다
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("마이그레이션 파일 로드 실패: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("마이그레이션 드라이버 생성 실패: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("마이그레이션 인스턴스 초기화 실패: %w", err)
	}
	// 서버와 slivectl 이 동시에 뜨면 한쪽은 잠금을 기다린다
	m.LockTimeout = 30 * time.Second

	from, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		from = 0
	case err != nil:
		return fmt.Errorf("마이그레이션 버전 조회 실패: %w", err)
	case dirty:
		return fmt.Errorf("%w (version %d)", ErrDirtySchema, from)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("스키마 최신 상태", zap.Uint("version", from))
			return nil
		}
		return fmt.Errorf("마이그레이션 실행 실패: %w", err)
	}

	to, _, _ := m.Version()
	logger.Info("마이그레이션 완료", zap.Uint("from", from), zap.Uint("to", to))
	return nil
}
