package dto

import "time"

// ── 캘린더 DTO ──

// CalendarQuery 월 달력 조회 조건
type CalendarQuery struct {
	Month    string `form:"month"`    // YYYY-MM, 비우면 이번 달
	Selected string `form:"selected"` // YYYY-MM-DD, 비우면 오늘(이번 달) 또는 1일
}

// StudioCapacity 스튜디오별 남은 시간
type StudioCapacity struct {
	Studio    string `json:"studio"`
	Remaining int    `json:"remaining"`
}

// CalendarCell 달력 한 칸, 빈 칸이면 Date 가 비어 있다
type CalendarCell struct {
	Date           string           `json:"date,omitempty"`
	Day            int              `json:"day,omitempty"`
	Today          bool             `json:"today,omitempty"`
	Selected       bool             `json:"selected,omitempty"`
	InSelectedWeek bool             `json:"in_selected_week,omitempty"`
	Capacity       []StudioCapacity `json:"capacity,omitempty"`
}

// MonthGrid 평일(월~금) 5칸 주 단위 달력
type MonthGrid struct {
	Month    string           `json:"month"`
	Title    string           `json:"title"`
	Selected string           `json:"selected"`
	Weeks    [][]CalendarCell `json:"weeks"`
	LoadedAt time.Time        `json:"loaded_at"`
}

// DayBooking 일별 예약 한 건
type DayBooking struct {
	ID        string `json:"id"`
	Company   string `json:"company"`
	Product   string `json:"product"`
	Purpose   string `json:"purpose"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	TimeLabel string `json:"time_label"` // 09-12시
}

// StudioSchedule 스튜디오별 예약 묶음
type StudioSchedule struct {
	Studio   string       `json:"studio"`
	Bookings []DayBooking `json:"bookings"`
}

// DaySchedule 선택한 날짜의 예약
type DaySchedule struct {
	Date    string           `json:"date"`
	Title   string           `json:"title"`
	Studios []StudioSchedule `json:"studios"`
}
