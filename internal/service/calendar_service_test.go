package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
)

type staticSnapshot struct {
	bookings []model.Booking
}

func (s *staticSnapshot) Snapshot() ([]model.Booking, time.Time) {
	list := make([]model.Booking, len(s.bookings))
	copy(list, s.bookings)
	return list, fixedClock()
}

func setupTestCalendarService(bookings ...model.Booking) CalendarService {
	svc := NewCalendarService(&staticSnapshot{bookings: bookings}, testStudios, 12, zap.NewNop())
	svc.(*calendarService).now = fixedClock
	return svc
}

func withID(b model.Booking, id string) model.Booking {
	b.ID = id
	return b
}

// ── MonthGrid ──

func TestCalendarService_MonthGrid_LeadingBlanks(t *testing.T) {
	svc := setupTestCalendarService()

	grid, err := svc.MonthGrid(context.Background(), &dto.CalendarQuery{Month: "2024-03"})
	if err != nil {
		t.Fatalf("달력 생성 실패: %v", err)
	}
	if grid.Title != "2024년 3월" {
		t.Errorf("제목: %s", grid.Title)
	}
	if len(grid.Weeks) != 5 {
		t.Fatalf("주 수: 기대 5, 실제 %d", len(grid.Weeks))
	}
	// 2024-03-01 은 금요일
	first := grid.Weeks[0]
	for i := 0; i < 4; i++ {
		if first[i].Date != "" {
			t.Errorf("빈 칸이어야 함: %d번째 %+v", i, first[i])
		}
	}
	if first[4].Date != "2024-03-01" || first[4].Day != 1 {
		t.Errorf("첫 평일: %+v", first[4])
	}
	if last := grid.Weeks[4]; last[0].Date != "2024-03-25" || last[4].Date != "2024-03-29" {
		t.Errorf("마지막 주: %s ~ %s", last[0].Date, last[4].Date)
	}
	for _, week := range grid.Weeks {
		if len(week) != 5 {
			t.Errorf("한 주는 5칸: %d", len(week))
		}
	}
}

func TestCalendarService_MonthGrid_TrailingBlanks(t *testing.T) {
	svc := setupTestCalendarService()

	grid, err := svc.MonthGrid(context.Background(), &dto.CalendarQuery{Month: "2024-04"})
	if err != nil {
		t.Fatalf("달력 생성 실패: %v", err)
	}
	// 다른 달은 1일이 선택일
	if grid.Selected != "2024-04-01" {
		t.Errorf("기본 선택일: %s", grid.Selected)
	}
	last := grid.Weeks[len(grid.Weeks)-1]
	if last[0].Date != "2024-04-29" || last[1].Date != "2024-04-30" {
		t.Errorf("마지막 주 시작: %+v", last[:2])
	}
	for _, c := range last[2:] {
		if c.Date != "" {
			t.Errorf("뒤쪽 빈 칸: %+v", c)
		}
	}
}

func TestCalendarService_MonthGrid_SelectedWeekCapacity(t *testing.T) {
	svc := setupTestCalendarService(
		booking("2024-03-13", "스튜디오 메인", "A", 10, 12),
		booking("2024-03-13", "스튜디오 메인", "B", 13, 18),
		booking("2024-03-13", "스튜디오 키친", "C", 0, 14),
		booking("2024-03-20", "스튜디오 메인", "D", 9, 18),
	)

	grid, err := svc.MonthGrid(context.Background(), &dto.CalendarQuery{Month: "2024-03"})
	if err != nil {
		t.Fatalf("달력 생성 실패: %v", err)
	}
	if grid.Selected != "2024-03-13" {
		t.Errorf("이번 달 기본 선택일은 오늘: %s", grid.Selected)
	}

	var inWeek []dto.CalendarCell
	for _, week := range grid.Weeks {
		for _, c := range week {
			if c.InSelectedWeek {
				inWeek = append(inWeek, c)
			} else if len(c.Capacity) != 0 {
				t.Errorf("선택 주 밖에는 남은 시간 없음: %+v", c)
			}
			if c.Date == "2024-03-13" && (!c.Today || !c.Selected) {
				t.Errorf("오늘/선택 표시: %+v", c)
			}
		}
	}
	if len(inWeek) != 5 || inWeek[0].Date != "2024-03-11" || inWeek[4].Date != "2024-03-15" {
		t.Fatalf("선택 주 월~금: %+v", inWeek)
	}

	wed := inWeek[2]
	want := []dto.StudioCapacity{
		{Studio: "스튜디오 메인", Remaining: 5},
		{Studio: "스튜디오 키친", Remaining: 0},
		{Studio: "스튜디오 소형", Remaining: 12},
	}
	for i := range want {
		if wed.Capacity[i] != want[i] {
			t.Errorf("남은 시간 %d: 기대 %+v, 실제 %+v", i, want[i], wed.Capacity[i])
		}
	}
}

func TestCalendarService_MonthGrid_SelectedOtherWeek(t *testing.T) {
	svc := setupTestCalendarService()

	// 일요일을 고르면 직전 월요일 주
	grid, err := svc.MonthGrid(context.Background(), &dto.CalendarQuery{Month: "2024-03", Selected: "2024-03-24"})
	if err != nil {
		t.Fatalf("달력 생성 실패: %v", err)
	}
	for _, week := range grid.Weeks {
		for _, c := range week {
			in := c.Date >= "2024-03-18" && c.Date <= "2024-03-22"
			if c.Date != "" && c.InSelectedWeek != in {
				t.Errorf("%s 선택 주 여부: %v", c.Date, c.InSelectedWeek)
			}
		}
	}

	if _, err := svc.MonthGrid(context.Background(), &dto.CalendarQuery{Selected: "3/24"}); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("기대 ErrInvalidDate, 실제 %v", err)
	}
}

func TestRemainingHours(t *testing.T) {
	list := []model.Booking{
		booking("2024-03-13", "스튜디오 메인", "A", 9, 13),
		booking("2024-03-13", "스튜디오 메인", "B", 14, 16),
	}
	if got := RemainingHours(list, "2024-03-13", "스튜디오 메인", 12); got != 6 {
		t.Errorf("기대 6, 실제 %d", got)
	}
	if got := RemainingHours(list, "2024-03-13", "스튜디오 메인", 5); got != 0 {
		t.Errorf("0 미만 금지: 실제 %d", got)
	}
}

// ── Day ──

func TestCalendarService_Day(t *testing.T) {
	svc := setupTestCalendarService(
		withID(booking("2024-03-13", "스튜디오 키친", "K", 9, 10), "k"),
		withID(booking("2024-03-13", "스튜디오 메인", "late", 13, 15), "m2"),
		withID(booking("2024-03-13", "스튜디오 메인", "early", 9, 12), "m1"),
		withID(booking("2024-03-14", "스튜디오 소형", "other day", 9, 10), "s"),
	)

	day, err := svc.Day(context.Background(), "2024-03-13")
	if err != nil {
		t.Fatalf("일별 예약 조회 실패: %v", err)
	}
	if day.Title != "3월 13일 (수) 대관 스케줄" {
		t.Errorf("제목: %s", day.Title)
	}
	if len(day.Studios) != 2 {
		t.Fatalf("예약 없는 스튜디오 제외: %+v", day.Studios)
	}
	if day.Studios[0].Studio != "스튜디오 메인" || day.Studios[1].Studio != "스튜디오 키친" {
		t.Errorf("스튜디오 순서: %s, %s", day.Studios[0].Studio, day.Studios[1].Studio)
	}
	main := day.Studios[0].Bookings
	if main[0].Company != "early" || main[1].Company != "late" || main[0].TimeLabel != "09-12시" {
		t.Errorf("시작 시간 순: %+v", main)
	}

	empty, err := svc.Day(context.Background(), "2024-03-16")
	if err != nil || len(empty.Studios) != 0 {
		t.Errorf("예약 없는 날: %+v %v", empty, err)
	}
}

// ── Feed ──

func TestCalendarService_Feed(t *testing.T) {
	svc := setupTestCalendarService(
		withID(booking("2024-03-13", "스튜디오 메인", "A", 10, 12), "bk-1"),
		withID(booking("bad-date", "스튜디오 메인", "B", 10, 12), "bk-2"),
	)

	data, err := svc.Feed(context.Background())
	if err != nil {
		t.Fatalf("iCalendar 생성 실패: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"UID:bk-1@slive-studio",
		"DTSTART:20240313T010000Z",
		"DTEND:20240313T030000Z",
		"SUMMARY:[스튜디오 메인] A",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("%q 누락", want)
		}
	}
	if strings.Contains(text, "bk-2") {
		t.Error("날짜를 해석할 수 없는 예약은 제외")
	}
}
