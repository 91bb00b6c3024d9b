package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/repository"
	apperrors "github.com/SNS-EUGENE/s-live-dashboard/pkg/errors"
)

// ── 예약 모듈 오류 ──

var (
	ErrBookingNotFound  = errors.New("예약을 찾을 수 없습니다")
	ErrBookingOverlap   = errors.New("선택한 시간대에 이미 다른 예약이 있습니다")
	ErrUnknownStudio    = errors.New("등록되지 않은 스튜디오입니다")
	ErrInvalidDateRange = errors.New("조회 기간이 올바르지 않습니다")
	ErrInvalidFilter    = errors.New("필터 값이 올바르지 않습니다")
)

// defaultRangeDays 기간을 지정하지 않았을 때 오늘 앞뒤로 조회할 일수
const defaultRangeDays = 7

// ChangeNotifier 예약 데이터 변경 알림 수신자
type ChangeNotifier interface {
	NotifyChanged()
}

type nopNotifier struct{}

func (nopNotifier) NotifyChanged() {}

// BookingService 예약 CRUD
type BookingService interface {
	List(ctx context.Context, q *dto.BookingQuery) (*dto.BookingListResponse, error)
	// Filtered 필터·정렬을 적용한 모델 목록 (내보내기용)
	Filtered(ctx context.Context, q *dto.BookingQuery) ([]model.Booking, error)
	Get(ctx context.Context, id string) (*dto.BookingResponse, error)
	Create(ctx context.Context, req *dto.BookingRequest) (*dto.BookingResponse, error)
	Update(ctx context.Context, id string, req *dto.BookingRequest) (*dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo     *repository.Repository
	studios  map[string]struct{}
	notifier ChangeNotifier
	now      func() time.Time
	logger   *zap.Logger
}

// NewBookingService BookingService 생성
func NewBookingService(repo *repository.Repository, studios []string, notifier ChangeNotifier, logger *zap.Logger) BookingService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	set := make(map[string]struct{}, len(studios))
	for _, s := range studios {
		set[s] = struct{}{}
	}
	return &bookingService{
		repo:     repo,
		studios:  set,
		notifier: notifier,
		now:      time.Now,
		logger:   logger,
	}
}

// ────────────────────── List ──────────────────────

// resolveRange 조회 기간 결정: date > from/to > 오늘±7일
func resolveRange(q *dto.BookingQuery, now time.Time) (string, string, error) {
	if q.Date != "" {
		if _, err := model.ParseDate(q.Date); err != nil {
			return "", "", ErrInvalidDateRange
		}
		return q.Date, q.Date, nil
	}

	today := model.Today(now)
	from, to := q.From, q.To
	if from == "" {
		from, _ = model.AddDays(today, -defaultRangeDays)
	}
	if to == "" {
		to, _ = model.AddDays(today, defaultRangeDays)
	}
	if _, err := model.ParseDate(from); err != nil {
		return "", "", ErrInvalidDateRange
	}
	if _, err := model.ParseDate(to); err != nil {
		return "", "", ErrInvalidDateRange
	}
	if from > to {
		return "", "", ErrInvalidDateRange
	}
	return from, to, nil
}

func validateFilter(q *dto.BookingQuery) error {
	if q.Status != "" && !model.ValidStatus(q.Status) {
		return ErrInvalidFilter
	}
	switch q.Survey {
	case "", dto.SurveyFilterCompleted, dto.SurveyFilterPending:
	default:
		return ErrInvalidFilter
	}
	return nil
}

func (s *bookingService) load(ctx context.Context, q *dto.BookingQuery) (from, to string, list []model.Booking, err error) {
	if err := validateFilter(q); err != nil {
		return "", "", nil, err
	}
	from, to, err = resolveRange(q, s.now())
	if err != nil {
		return "", "", nil, err
	}
	list, err = s.repo.Booking.ListByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("예약 목록 조회 실패", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return "", "", nil, err
	}
	return from, to, list, nil
}

func (s *bookingService) List(ctx context.Context, q *dto.BookingQuery) (*dto.BookingListResponse, error) {
	from, to, list, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}

	now := s.now()
	visible := FilterBookings(list, q, now)
	SortBookings(visible, now)

	result := make([]dto.BookingResponse, 0, len(visible))
	for i := range visible {
		result = append(result, *toBookingResponse(&visible[i], now))
	}

	return &dto.BookingListResponse{
		From:     from,
		To:       to,
		Bookings: result,
		Summary:  Summarize(list, now),
	}, nil
}

func (s *bookingService) Filtered(ctx context.Context, q *dto.BookingQuery) ([]model.Booking, error) {
	_, _, list, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	now := s.now()
	visible := FilterBookings(list, q, now)
	SortBookings(visible, now)
	return visible, nil
}

// ────────────────────── Get ──────────────────────

func (s *bookingService) getBooking(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.repo.Booking.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("예약 조회 실패", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return b, nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*dto.BookingResponse, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookingResponse(b, s.now()), nil
}

// ────────────────────── Create / Update ──────────────────────

// checkBooking 필수 항목·시간 범위·스튜디오·중복 검증 (쓰기 전)
func (s *bookingService) checkBooking(ctx context.Context, b *model.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, ok := s.studios[b.Studio]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStudio, b.Studio)
	}

	sameDay, err := s.repo.Booking.ListByDateRange(ctx, b.Date, b.Date)
	if err != nil {
		s.logger.Error("중복 확인용 예약 조회 실패", zap.String("date", b.Date), zap.Error(err))
		return err
	}
	for i := range sameDay {
		other := &sameDay[i]
		if other.ID == b.ID && b.ID != "" {
			continue
		}
		if b.Overlaps(other) {
			return ErrBookingOverlap
		}
	}
	return nil
}

func (s *bookingService) Create(ctx context.Context, req *dto.BookingRequest) (*dto.BookingResponse, error) {
	b := req.ToModel()
	if err := s.checkBooking(ctx, b); err != nil {
		return nil, err
	}

	if err := s.repo.Booking.Create(ctx, b); err != nil {
		s.logger.Error("예약 추가 실패", zap.Error(err))
		return nil, err
	}

	s.logger.Info("예약 추가",
		zap.String("id", b.ID),
		zap.String("date", b.Date),
		zap.String("studio", b.Studio),
	)
	s.notifier.NotifyChanged()
	return toBookingResponse(b, s.now()), nil
}

func (s *bookingService) Update(ctx context.Context, id string, req *dto.BookingRequest) (*dto.BookingResponse, error) {
	existing, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	next := req.ToModel()
	existing.Date = next.Date
	existing.Studio = next.Studio
	existing.Company = next.Company
	existing.Product = next.Product
	existing.Purpose = next.Purpose
	existing.Start = next.Start
	existing.End = next.End

	if err := s.checkBooking(ctx, existing); err != nil {
		return nil, err
	}

	if err := s.repo.Booking.Update(ctx, existing); err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("예약 수정 실패", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.notifier.NotifyChanged()
	return toBookingResponse(existing, s.now()), nil
}

// ────────────────────── Delete ──────────────────────

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("예약 삭제 실패", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("예약 삭제", zap.String("id", id))
	s.notifier.NotifyChanged()
	return nil
}

// ── 변환 ──

func toBookingResponse(b *model.Booking, now time.Time) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:        b.ID,
		Date:      b.Date,
		Studio:    b.Studio,
		Company:   b.Company,
		Product:   b.Product,
		Purpose:   b.Purpose,
		Start:     b.Start,
		End:       b.End,
		Status:    string(b.Status(now)),
		HasSurvey: b.HasSurvey(),
		Survey:    b.Survey,
	}
}
