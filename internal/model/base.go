package model

import "time"

// KST 예약 날짜 해석에 쓰는 고정 UTC+9 시간대
var KST = time.FixedZone("Asia/Seoul", 9*60*60)

// DateLayout 예약 날짜 형식 (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// BaseModel 공통 감사 필드
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-" bson:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-" bson:"updatedAt"`
}

// Today now 기준 KST 날짜 문자열
func Today(now time.Time) string {
	return now.In(KST).Format(DateLayout)
}

// ParseDate YYYY-MM-DD 를 KST 자정으로 해석
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, KST)
}

// AddDays 날짜 문자열에 일수를 더한다
func AddDays(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}

// WeekRange date 가 속한 주의 월요일~금요일
// 일요일은 직전 월요일이 속한 주로 본다
func WeekRange(date time.Time) (monday, friday time.Time) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, KST)
	offset := int(d.Weekday()) - int(time.Monday)
	if d.Weekday() == time.Sunday {
		offset = 6
	}
	monday = d.AddDate(0, 0, -offset)
	friday = monday.AddDate(0, 0, 4)
	return monday, friday
}
