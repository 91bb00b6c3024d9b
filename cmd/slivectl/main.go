package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/config"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/app"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/jwt"
	applogger "github.com/SNS-EUGENE/s-live-dashboard/pkg/logger"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/redis"
)

// env 명령 실행에 필요한 서비스와 정리 함수
type env struct {
	cfg    *config.Config
	svc    *service.Service
	logger *zap.Logger
	close  func()
}

var (
	configPath string
	verbose    bool
)

// setup 설정·로그·저장소를 열고 서비스 집합을 만든다
// 주기 갱신 작업은 시작하지 않는다
func setup() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	// CLI 는 표준 출력을 결과에 쓰므로 로그는 경고 이상만 콘솔 형식으로
	logCfg := config.LogConfig{Level: "warn", Format: "console"}
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := applogger.NewLogger(&logCfg)
	if err != nil {
		return nil, fmt.Errorf("로그 초기화 실패: %w", err)
	}

	repo, closeStore, err := app.OpenRepository(cfg, logger)
	if err != nil {
		return nil, err
	}

	deps := service.Deps{}
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Debug("Redis 없이 실행", zap.Error(err))
		rdb = nil
	} else {
		deps.HolidayCache = rdb
	}

	svc := service.NewService(cfg, repo, jwt.NewManager(&cfg.Auth), deps, logger)
	return &env{
		cfg:    cfg,
		svc:    svc,
		logger: logger,
		close: func() {
			svc.Board.Stop()
			if rdb != nil {
				rdb.Close()
			}
			closeStore()
			_ = logger.Sync()
		},
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "slivectl",
		Short:         "S-Live 스튜디오 대관 관리 도구",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "설정 파일 경로")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "디버그 로그 출력")

	root.AddCommand(
		newImportCmd(),
		newExportCmd(),
		newStatsCmd(),
		newAdminCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "오류:", err)
		os.Exit(1)
	}
}
