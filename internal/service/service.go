package service

import (
	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/config"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/repository"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/jwt"
)

// Service 모든 Service 의 집합
type Service struct {
	Auth       AuthService
	Booking    BookingService
	Import     ImportService
	Survey     SurveyService
	Statistics StatisticsService
	Calendar   CalendarService
	Export     ExportService

	// Board 대시보드 스냅샷, 쓰기 후 debounce 갱신
	Board *Board
}

// Deps 외부 의존성 (nil 가능)
type Deps struct {
	Blacklist    TokenBlacklist
	HolidayCache HolidayCache
}

// NewService Service 집합 생성
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	deps Deps,
	logger *zap.Logger,
) *Service {
	board := NewBoard(repo, &cfg.Board, logger.Named("board"))
	holidays := NewHolidayClient(&cfg.Holiday, deps.HolidayCache, logger.Named("holiday"))
	bookings := NewBookingService(repo, cfg.Studio.Names, board, logger)

	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, deps.Blacklist, logger),
		Booking:    bookings,
		Import:     NewImportService(repo, board, logger),
		Survey:     NewSurveyService(repo, board, logger),
		Statistics: NewStatisticsService(repo, holidays, cfg.Studio.Names, logger),
		Calendar:   NewCalendarService(board, cfg.Studio.Names, cfg.Studio.DailyCapacity, logger),
		Export:     NewExportService(bookings, logger),
		Board:      board,
	}
}
