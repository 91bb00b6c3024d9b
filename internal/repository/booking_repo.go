package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	apperrors "github.com/SNS-EUGENE/s-live-dashboard/pkg/errors"
)

// BookingRepository 예약 문서 저장소
type BookingRepository interface {
	// Create ID 를 발급하고 저장한다
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	// Update 본 필드만 병합 저장 (설문은 건드리지 않음)
	Update(ctx context.Context, b *model.Booking) error
	// SetSurvey 설문 필드 교체, nil 이면 필드 삭제
	SetSurvey(ctx context.Context, id string, s *model.Survey) error
	Delete(ctx context.Context, id string) error
	// ListByDateRange from ≤ date ≤ to
	ListByDateRange(ctx context.Context, from, to string) ([]model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
	// CommitImport 추가와 교체를 하나의 트랜잭션으로 반영
	// 교체 대상은 설문까지 그대로 덮어쓴다
	CommitImport(ctx context.Context, adds, replacements []model.Booking) error
}

// bookingCoreColumns 병합 저장 대상 컬럼
var bookingCoreColumns = []string{"date", "studio", "company", "product", "purpose", "start_hour", "end_hour", "updated_at"}

// bookingRepo BookingRepository 의 GORM 구현
type bookingRepo struct {
	db *gorm.DB
}

// NewBookingRepo BookingRepository 생성
func NewBookingRepo(db *gorm.DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, b *model.Booking) error {
	b.ID = uuid.NewString()
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) Update(ctx context.Context, b *model.Booking) error {
	b.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", b.ID).
		Select(bookingCoreColumns).
		Updates(b)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func (r *bookingRepo) SetSurvey(ctx context.Context, id string, s *model.Survey) error {
	var value interface{}
	if s != nil {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("설문 직렬화 실패: %w", err)
		}
		value = string(data)
	}

	result := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"survey":     value,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func (r *bookingRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Booking{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func (r *bookingRepo) ListByDateRange(ctx context.Context, from, to string) ([]model.Booking, error) {
	var list []model.Booking
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, start_hour ASC").
		Find(&list).Error
	return list, err
}

func (r *bookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	var list []model.Booking
	err := r.db.WithContext(ctx).
		Order("date ASC, start_hour ASC").
		Find(&list).Error
	return list, err
}

func (r *bookingRepo) CommitImport(ctx context.Context, adds, replacements []model.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range adds {
			adds[i].ID = uuid.NewString()
		}
		if len(adds) > 0 {
			if err := tx.CreateInBatches(adds, 100).Error; err != nil {
				return fmt.Errorf("예약 추가 실패: %w", err)
			}
		}

		columns := append(append([]string{}, bookingCoreColumns...), "survey")
		for i := range replacements {
			rep := &replacements[i]
			rep.UpdatedAt = time.Now()
			result := tx.Model(&model.Booking{}).
				Where("id = ?", rep.ID).
				Select(columns).
				Updates(rep)
			if result.Error != nil {
				return fmt.Errorf("예약 갱신 실패 (id=%s): %w", rep.ID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("예약 갱신 실패 (id=%s): %w", rep.ID, apperrors.ErrRecordNotFound)
			}
		}
		return nil
	})
}
