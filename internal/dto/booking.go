package dto

import "github.com/SNS-EUGENE/s-live-dashboard/internal/model"

// ── 예약 DTO ──

// BookingRequest 예약 추가/수정 요청
// start/end 는 0시가 유효하므로 포인터로 존재 여부를 구분한다
type BookingRequest struct {
	Date    string `json:"date"    binding:"required"`
	Studio  string `json:"studio"  binding:"required"`
	Company string `json:"company" binding:"required,max=200"`
	Start   *int   `json:"start"   binding:"required,min=0,max=23"`
	End     *int   `json:"end"     binding:"required,min=1,max=24"`
	Purpose string `json:"purpose" binding:"required,max=50"`
	Product string `json:"product" binding:"required,max=200"`
}

// ToModel 요청을 예약 모델로 변환
func (r *BookingRequest) ToModel() *model.Booking {
	b := &model.Booking{
		Date:    r.Date,
		Studio:  r.Studio,
		Company: r.Company,
		Purpose: r.Purpose,
		Product: r.Product,
	}
	if r.Start != nil {
		b.Start = *r.Start
	}
	if r.End != nil {
		b.End = *r.End
	}
	return b
}

// BookingQuery 목록 조회 조건
type BookingQuery struct {
	From   string `form:"from"`   // 시작일 (포함)
	To     string `form:"to"`     // 종료일 (포함)
	Date   string `form:"date"`   // 단일 날짜, From/To 보다 우선
	Search string `form:"search"` // 업체명/제품명 부분 일치
	Studio string `form:"studio"`
	Status string `form:"status"` // upcoming | active | completed
	Survey string `form:"survey"` // completed | pending
}

// SurveyFilter 값
const (
	SurveyFilterCompleted = "completed"
	SurveyFilterPending   = "pending"
)

// BookingResponse 예약 응답 (파생 상태 포함)
type BookingResponse struct {
	ID        string        `json:"id"`
	Date      string        `json:"date"`
	Studio    string        `json:"studio"`
	Company   string        `json:"company"`
	Product   string        `json:"product"`
	Purpose   string        `json:"purpose"`
	Start     int           `json:"start"`
	End       int           `json:"end"`
	Status    string        `json:"status"`
	HasSurvey bool          `json:"has_survey"`
	Survey    *model.Survey `json:"survey,omitempty"`
}

// ConsoleSummary 콘솔 상단 요약
type ConsoleSummary struct {
	Today            int `json:"today"`
	ThisWeek         int `json:"this_week"`
	Companies        int `json:"companies"`
	SurveyRate       int `json:"survey_rate"` // %
	TotalBookings    int `json:"total_bookings"`
	CompletedSurveys int `json:"completed_surveys"`
}

// BookingListResponse 필터·정렬된 목록과 요약
type BookingListResponse struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Bookings []BookingResponse `json:"bookings"`
	Summary  ConsoleSummary    `json:"summary"`
}
