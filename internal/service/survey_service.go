package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/repository"
	apperrors "github.com/SNS-EUGENE/s-live-dashboard/pkg/errors"
)

// ── 설문 모듈 오류 ──

var (
	ErrSurveyNotFound     = errors.New("삭제할 설문이 없습니다")
	ErrSurveyNotDeletable = errors.New("완료된 설문만 삭제할 수 있습니다")
	ErrInvalidRating      = errors.New("평가 값이 올바르지 않습니다")
)

// SurveyService 예약별 만족도 설문
type SurveyService interface {
	Form(ctx context.Context, bookingID string) (*dto.SurveyForm, error)
	Submit(ctx context.Context, bookingID string, req *dto.SurveyRequest) (*model.Survey, error)
	Delete(ctx context.Context, bookingID string) error
}

type surveyService struct {
	repo     *repository.Repository
	notifier ChangeNotifier
	now      func() time.Time
	logger   *zap.Logger
}

// NewSurveyService SurveyService 생성
func NewSurveyService(repo *repository.Repository, notifier ChangeNotifier, logger *zap.Logger) SurveyService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &surveyService{repo: repo, notifier: notifier, now: time.Now, logger: logger}
}

func (s *surveyService) booking(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.repo.Booking.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("설문 대상 예약 조회 실패", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return b, nil
}

// ────────────────────── Form ──────────────────────

func (s *surveyService) Form(ctx context.Context, bookingID string) (*dto.SurveyForm, error) {
	b, err := s.booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	survey := b.Survey
	if survey == nil {
		survey = &model.Survey{}
	}

	form := &dto.SurveyForm{
		BookingID:       b.ID,
		Date:            b.Date,
		Studio:          b.Studio,
		Company:         b.Company,
		Product:         b.Product,
		Purpose:         b.Purpose,
		Start:           b.Start,
		End:             b.End,
		Ratings:         make([]dto.SurveyRatingField, 0, len(model.RatingKeys)),
		Scale:           model.RatingScale,
		DiscoveryPath:   survey.DiscoveryPath,
		StudioBenefits:  survey.StudioBenefits,
		Feedback:        survey.Feedback,
		AmountsEnabled:  b.IsLiveCommerce(),
		RevenueStep:     RevenueStep,
		ViewerCountStep: ViewerCountStep,
		Completed:       survey.Completed,
		Deletable:       b.SurveyCompleted(),
		SubmittedAt:     survey.SubmittedAt,
	}
	for _, key := range model.RatingKeys {
		form.Ratings = append(form.Ratings, dto.SurveyRatingField{
			Key:   key,
			Label: model.FieldLabel(key),
			Value: survey.Rating(key),
		})
	}
	if form.AmountsEnabled {
		form.Revenue = FormatAmountField(survey.Revenue)
		form.ViewerCount = FormatAmountField(survey.ViewerCount)
	}
	return form, nil
}

// ────────────────────── Submit ──────────────────────

// validateRatings 첫 번째 누락 항목을 이름과 함께 반환
func validateRatings(sv *model.Survey) error {
	for _, key := range model.RatingKeys {
		value := sv.Rating(key)
		if value == "" {
			return &model.FieldError{Field: key, Label: model.FieldLabel(key)}
		}
		if _, ok := model.RatingScore(value); !ok {
			return fmt.Errorf("%w: %s (%s)", ErrInvalidRating, model.FieldLabel(key), value)
		}
	}
	return nil
}

func (s *surveyService) Submit(ctx context.Context, bookingID string, req *dto.SurveyRequest) (*model.Survey, error) {
	b, err := s.booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	submittedAt := s.now()
	survey := &model.Survey{
		FacilityRating:          strings.TrimSpace(req.FacilityRating),
		StaffKindness:           strings.TrimSpace(req.StaffKindness),
		EquipmentExpertise:      strings.TrimSpace(req.EquipmentExpertise),
		ReservationSatisfaction: strings.TrimSpace(req.ReservationSatisfaction),
		Cleanliness:             strings.TrimSpace(req.Cleanliness),
		EquipmentSatisfaction:   strings.TrimSpace(req.EquipmentSatisfaction),
		DiscoveryPath:           req.DiscoveryPath,
		StudioBenefits:          req.StudioBenefits,
		Feedback:                req.Feedback,
		Completed:               true,
		SubmittedAt:             &submittedAt,
	}
	if err := validateRatings(survey); err != nil {
		return nil, err
	}

	// 라이브커머스가 아니면 매출/시청자 수는 0
	if b.IsLiveCommerce() {
		survey.Revenue = ParseAmount(string(req.Revenue))
		survey.ViewerCount = ParseAmount(string(req.ViewerCount))
	}

	if err := s.repo.Booking.SetSurvey(ctx, b.ID, survey); err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("설문 저장 실패", zap.String("booking_id", b.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("설문 저장", zap.String("booking_id", b.ID))
	s.notifier.NotifyChanged()
	return survey, nil
}

// ────────────────────── Delete ──────────────────────

func (s *surveyService) Delete(ctx context.Context, bookingID string) error {
	b, err := s.booking(ctx, bookingID)
	if err != nil {
		return err
	}
	if !b.HasSurvey() {
		return ErrSurveyNotFound
	}
	if !b.Survey.Completed {
		return ErrSurveyNotDeletable
	}

	if err := s.repo.Booking.SetSurvey(ctx, b.ID, nil); err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("설문 삭제 실패", zap.String("booking_id", b.ID), zap.Error(err))
		return err
	}

	s.logger.Info("설문 삭제", zap.String("booking_id", b.ID))
	s.notifier.NotifyChanged()
	return nil
}
