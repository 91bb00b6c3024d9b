package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/config"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/api/handler"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/api/router"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/app"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/jwt"
	applogger "github.com/SNS-EUGENE/s-live-dashboard/pkg/logger"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "설정 파일 경로")
	flag.Parse()

	// 1. 설정
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "로그 초기화 실패: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("애플리케이션 시작",
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 저장소 (postgres 는 마이그레이션 포함)
	repo, closeStore, err := app.OpenRepository(cfg, logger)
	if err != nil {
		logger.Fatal("저장소 초기화 실패", zap.Error(err))
	}
	defer closeStore()

	// 4. Redis (선택: 실패하면 블랙리스트·속도 제한·공휴일 캐시 없이 실행)
	deps := service.Deps{}
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 연결 실패, 관련 기능 없이 실행합니다", zap.Error(err))
		rdb = nil
	} else {
		deps.Blacklist = rdb
		deps.HolidayCache = rdb
		defer rdb.Close()
	}

	// 5. JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Repository → Service → Handler
	svc := service.NewService(cfg, repo, jwtMgr, deps, logger)
	h := handler.NewHandler(svc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Board.Start(ctx); err != nil {
		logger.Fatal("대시보드 갱신 작업 시작 실패", zap.Error(err))
	}
	defer svc.Board.Stop()

	// 7. 라우터
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. HTTP 서버
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 서버 시작", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 서버 오류", zap.Error(err))
		}
	}()

	// 9. 종료 신호 대기
	<-ctx.Done()
	logger.Info("종료 신호 수신, 서버를 정리합니다")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("서버 종료 오류", zap.Error(err))
	}

	logger.Info("서버 종료")
}
