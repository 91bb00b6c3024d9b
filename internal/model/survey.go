package model

import "time"

// PurposeLiveCommerce 매출/시청자 항목이 열리는 이용 목적
const PurposeLiveCommerce = "라이브커머스"

// PurposeGeneral 이용 목적이 비어 있을 때의 기본값
const PurposeGeneral = "일반"

// Survey 이용 후 만족도 설문 (예약과 1:1)
type Survey struct {
	FacilityRating          string     `json:"facilityRating"          bson:"facilityRating"`
	StaffKindness           string     `json:"staffKindness"           bson:"staffKindness"`
	EquipmentExpertise      string     `json:"equipmentExpertise"      bson:"equipmentExpertise"`
	ReservationSatisfaction string     `json:"reservationSatisfaction" bson:"reservationSatisfaction"`
	Cleanliness             string     `json:"cleanliness"             bson:"cleanliness"`
	EquipmentSatisfaction   string     `json:"equipmentSatisfaction"   bson:"equipmentSatisfaction"`
	DiscoveryPath           string     `json:"discoveryPath"           bson:"discoveryPath"`
	StudioBenefits          string     `json:"studioBenefits"          bson:"studioBenefits"`
	Revenue                 int64      `json:"revenue"                 bson:"revenue"`
	ViewerCount             int64      `json:"viewerCount"             bson:"viewerCount"`
	Feedback                string     `json:"feedback"                bson:"feedback"`
	Completed               bool       `json:"completed"               bson:"completed"`
	SubmittedAt             *time.Time `json:"submittedAt,omitempty"   bson:"submittedAt,omitempty"`
}

// RatingKeys 필수 평가 항목 (표시/검증 순서)
var RatingKeys = []string{
	"facilityRating",
	"staffKindness",
	"equipmentExpertise",
	"reservationSatisfaction",
	"cleanliness",
	"equipmentSatisfaction",
}

// Rating 항목 키로 평가값 조회
func (s *Survey) Rating(key string) string {
	switch key {
	case "facilityRating":
		return s.FacilityRating
	case "staffKindness":
		return s.StaffKindness
	case "equipmentExpertise":
		return s.EquipmentExpertise
	case "reservationSatisfaction":
		return s.ReservationSatisfaction
	case "cleanliness":
		return s.Cleanliness
	case "equipmentSatisfaction":
		return s.EquipmentSatisfaction
	}
	return ""
}

// ── 5점 척도 ──

// RatingScale 평가 라벨 (높은 점수부터)
var RatingScale = []string{"매우 만족", "만족", "보통", "불만족", "매우 불만족"}

var ratingScores = map[string]int{
	"매우 만족":  5,
	"만족":     4,
	"보통":     3,
	"불만족":    2,
	"매우 불만족": 1,
}

// RatingScore 라벨의 점수, 척도에 없으면 false
func RatingScore(label string) (int, bool) {
	score, ok := ratingScores[label]
	return score, ok
}
