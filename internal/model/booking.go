package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Booking 스튜디오 예약 (schedules)
//
// ID 가 비어 있으면 아직 저장되지 않은 예약이다.
// Survey 가 nil 이면 설문이 없는 예약이다.
type Booking struct {
	ID      string  `gorm:"type:uuid;primaryKey"          json:"id,omitempty" bson:"_id"`
	Date    string  `gorm:"type:char(10);not null;index"  json:"date"         bson:"date"`
	Studio  string  `gorm:"type:varchar(50);not null"     json:"studio"       bson:"studio"`
	Company string  `gorm:"type:varchar(200);not null"    json:"company"      bson:"company"`
	Product string  `gorm:"type:varchar(200);not null"    json:"product"      bson:"product"`
	Purpose string  `gorm:"type:varchar(50);not null"     json:"purpose"      bson:"purpose"`
	Start   int     `gorm:"column:start_hour;not null"    json:"start"        bson:"start"`
	End     int     `gorm:"column:end_hour;not null"      json:"end"          bson:"end"`
	Survey  *Survey `gorm:"type:jsonb;serializer:json"    json:"survey,omitempty" bson:"survey,omitempty"`
	BaseModel
}

func (Booking) TableName() string { return "schedules" }

// ── 상태 ──

// BookingStatus 현재 시각 기준 파생 상태 (저장하지 않음)
type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
)

// ValidStatus 필터 값 검증
func ValidStatus(s string) bool {
	switch BookingStatus(s) {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Interval 예약 시작/종료 시각 (KST)
func (b *Booking) Interval() (start, end time.Time, err error) {
	day, err := ParseDate(b.Date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = day.Add(time.Duration(b.Start) * time.Hour)
	end = day.Add(time.Duration(b.End) * time.Hour)
	return start, end, nil
}

// Status now < 시작 → upcoming, 시작 ≤ now ≤ 종료 → active, 그 외 completed
// 날짜를 해석할 수 없으면 completed
func (b *Booking) Status(now time.Time) BookingStatus {
	start, end, err := b.Interval()
	if err != nil {
		return StatusCompleted
	}
	switch {
	case now.Before(start):
		return StatusUpcoming
	case !now.After(end):
		return StatusActive
	default:
		return StatusCompleted
	}
}

// HasSurvey 설문 존재 여부
func (b *Booking) HasSurvey() bool {
	return b.Survey != nil
}

// SurveyCompleted 완료된 설문 보유 여부
func (b *Booking) SurveyCompleted() bool {
	return b.Survey != nil && b.Survey.Completed
}

// IsLiveCommerce 라이브커머스 예약 여부
func (b *Booking) IsLiveCommerce() bool {
	return b.Purpose == PurposeLiveCommerce
}

// Hours 예약 시간 길이
func (b *Booking) Hours() int {
	return b.End - b.Start
}

// Overlaps 같은 날짜·스튜디오에서 [start,end) 가 겹치는지
func (b *Booking) Overlaps(other *Booking) bool {
	if b.Date != other.Date || b.Studio != other.Studio {
		return false
	}
	return !(other.End <= b.Start || other.Start >= b.End)
}

// CollisionKey 가져오기 충돌 판정 키 (종료 시간은 포함하지 않음)
func (b *Booking) CollisionKey() string {
	return fmt.Sprintf("%s|%s|%d", b.Date, b.Studio, b.Start)
}

// ── 검증 ──

var (
	ErrInvalidTimeRange  = errors.New("종료 시간은 시작 시간보다 늦어야 합니다")
	ErrInvalidDateFormat = errors.New("날짜 형식이 올바르지 않습니다")
)

// FieldError 필수 항목 누락
type FieldError struct {
	Field string
	Label string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s 항목은 필수입니다", e.Label)
}

func missing(field string) error {
	return &FieldError{Field: field, Label: FieldLabel(field)}
}

// Validate 필수 항목(date, studio, company, start, end, purpose, product)과 시간 범위 검증
// start/end 의 존재 여부는 요청 단계에서 확인한다
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.Date) == "" {
		return missing("date")
	}
	if strings.TrimSpace(b.Studio) == "" {
		return missing("studio")
	}
	if strings.TrimSpace(b.Company) == "" {
		return missing("company")
	}
	if strings.TrimSpace(b.Purpose) == "" {
		return missing("purpose")
	}
	if strings.TrimSpace(b.Product) == "" {
		return missing("product")
	}
	return b.ValidateSchedule()
}

// ValidateSchedule 날짜 형식과 0 ≤ start < end ≤ 24 검증
func (b *Booking) ValidateSchedule() error {
	if _, err := ParseDate(b.Date); err != nil {
		return fmt.Errorf("%w (%s)", ErrInvalidDateFormat, b.Date)
	}
	if b.Start < 0 || b.End > 24 || b.Start >= b.End {
		return ErrInvalidTimeRange
	}
	return nil
}

// ── 필드 이름 ──

var fieldLabels = map[string]string{
	"date":    "날짜",
	"studio":  "스튜디오",
	"company": "업체명",
	"start":   "시작 시간",
	"end":     "종료 시간",
	"purpose": "이용 목적",
	"product": "제품명",

	"facilityRating":          "시설 만족도",
	"staffKindness":           "직원 친절도",
	"equipmentExpertise":      "장비 전문성",
	"reservationSatisfaction": "예약 만족도",
	"cleanliness":             "청결 상태",
	"equipmentSatisfaction":   "비품 만족도",
}

// FieldLabel 필드 키의 한글 이름, 모르는 키는 그대로
func FieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}
