package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/config"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/repository"
)

// ════════════════════════════════════════════════════════════
// Board 대시보드 예약 스냅샷
//
// 전체 예약을 한 번에 읽어 통째로 교체한다.
// 동시에 하나의 적재만 허용하고, 진행 중에 들어온 요청은
// 진행 중인 적재가 끝난 뒤 한 번으로 합쳐 다시 적재한다.
// 쓰기 후 갱신 요청은 debounce 로 묶는다.
// ════════════════════════════════════════════════════════════

const boardLoadTimeout = 30 * time.Second

// BookingSnapshot 캘린더가 읽는 예약 목록
type BookingSnapshot interface {
	Snapshot() (bookings []model.Booking, loadedAt time.Time)
}

// Board 대시보드 상태
type Board struct {
	repo   *repository.Repository
	logger *zap.Logger

	mu       sync.RWMutex
	bookings []model.Booking
	loadedAt time.Time

	busy    atomic.Bool
	pending atomic.Bool

	debounce   time.Duration
	debounceMu sync.Mutex
	timer      *time.Timer

	refreshSpec string
	cron        *cron.Cron
}

// NewBoard Board 생성
func NewBoard(repo *repository.Repository, cfg *config.BoardConfig, logger *zap.Logger) *Board {
	return &Board{
		repo:        repo,
		logger:      logger,
		debounce:    cfg.Debounce,
		refreshSpec: cfg.RefreshSpec,
	}
}

// Snapshot 마지막으로 적재한 예약 목록 (복사본)
func (b *Board) Snapshot() ([]model.Booking, time.Time) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	list := make([]model.Booking, len(b.bookings))
	copy(list, b.bookings)
	return list, b.loadedAt
}

// Load 전체 예약 재적재
// 다른 적재가 진행 중이면 재적재 요청만 남기고 false 를 반환한다.
// 진행 중인 적재는 끝난 뒤 남은 요청을 한 번 더 처리한다.
// 실패하면 이전 스냅샷을 유지한다.
func (b *Board) Load(ctx context.Context) (bool, error) {
	b.pending.Store(true)

	var (
		loaded bool
		err    error
	)
	for b.pending.Load() {
		if !b.busy.CompareAndSwap(false, true) {
			b.logger.Debug("예약 적재 진행 중, 완료 후 재적재")
			return loaded, err
		}
		for b.pending.Swap(false) {
			loaded, err = b.loadOnce(ctx)
		}
		b.busy.Store(false)
	}
	return loaded, err
}

func (b *Board) loadOnce(ctx context.Context) (bool, error) {
	list, err := b.repo.Booking.List(ctx)
	if err != nil {
		b.logger.Error("예약 적재 실패, 이전 스냅샷 유지", zap.Error(err))
		return false, err
	}

	b.mu.Lock()
	b.bookings = list
	b.loadedAt = time.Now()
	b.mu.Unlock()

	b.logger.Debug("예약 적재 완료", zap.Int("count", len(list)))
	return true, nil
}

// NotifyChanged 쓰기 후 갱신 요청, debounce 시간 안의 요청은 하나로 합친다
func (b *Board) NotifyChanged() {
	b.debounceMu.Lock()
	defer b.debounceMu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.debounce, b.reload)
}

func (b *Board) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), boardLoadTimeout)
	defer cancel()
	_, _ = b.Load(ctx)
}

// Start 최초 적재 후 주기 갱신 시작
func (b *Board) Start(ctx context.Context) error {
	if _, err := b.Load(ctx); err != nil {
		// 저장소가 늦게 뜨는 경우 주기 갱신이 다시 시도한다
		b.logger.Warn("최초 예약 적재 실패", zap.Error(err))
	}
	if b.refreshSpec == "" {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(b.refreshSpec, b.reload); err != nil {
		return err
	}
	c.Start()
	b.cron = c

	b.logger.Info("대시보드 주기 갱신 시작", zap.String("spec", b.refreshSpec))
	return nil
}

// Stop 주기 갱신과 대기 중인 debounce 중지
func (b *Board) Stop() {
	b.debounceMu.Lock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.debounceMu.Unlock()

	if b.cron != nil {
		<-b.cron.Stop().Done()
	}
}
