package dto

import (
	"bytes"
	"encoding/json"
	"time"
)

// ── 설문 DTO ──

// AmountInput 숫자 또는 "1,234,000" 같은 문자열을 모두 받는 금액 입력
type AmountInput string

// UnmarshalJSON 문자열과 숫자 모두 허용
func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = AmountInput(n.String())
	return nil
}

// SurveyRequest 설문 제출
// 평가 항목 누락은 서비스에서 항목 이름과 함께 거절한다
type SurveyRequest struct {
	FacilityRating          string      `json:"facilityRating"`
	StaffKindness           string      `json:"staffKindness"`
	EquipmentExpertise      string      `json:"equipmentExpertise"`
	ReservationSatisfaction string      `json:"reservationSatisfaction"`
	Cleanliness             string      `json:"cleanliness"`
	EquipmentSatisfaction   string      `json:"equipmentSatisfaction"`
	DiscoveryPath           string      `json:"discoveryPath"  binding:"max=200"`
	StudioBenefits          string      `json:"studioBenefits" binding:"max=500"`
	Revenue                 AmountInput `json:"revenue"`
	ViewerCount             AmountInput `json:"viewerCount"`
	Feedback                string      `json:"feedback"       binding:"max=2000"`
}

// SurveyRatingField 평가 항목 한 줄
type SurveyRatingField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// SurveyForm 설문 편집 화면 상태
type SurveyForm struct {
	BookingID string `json:"booking_id"`
	Date      string `json:"date"`
	Studio    string `json:"studio"`
	Company   string `json:"company"`
	Product   string `json:"product"`
	Purpose   string `json:"purpose"`
	Start     int    `json:"start"`
	End       int    `json:"end"`

	Ratings        []SurveyRatingField `json:"ratings"`
	Scale          []string            `json:"scale"`
	DiscoveryPath  string              `json:"discovery_path"`
	StudioBenefits string              `json:"studio_benefits"`
	Feedback       string              `json:"feedback"`

	// 라이브커머스가 아니면 비활성·빈 값
	AmountsEnabled  bool   `json:"amounts_enabled"`
	Revenue         string `json:"revenue"`
	ViewerCount     string `json:"viewer_count"`
	RevenueStep     int64  `json:"revenue_step"`
	ViewerCountStep int64  `json:"viewer_count_step"`

	Completed   bool       `json:"completed"`
	Deletable   bool       `json:"deletable"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}
