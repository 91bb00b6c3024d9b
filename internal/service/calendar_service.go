package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
)

// ── 캘린더 모듈 오류 ──

var ErrInvalidDate = errors.New("날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)")

const calendarProductID = "-//S-Live Studio//Booking Calendar//KO"

var koWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// CalendarService 대시보드 달력과 일별 예약
type CalendarService interface {
	MonthGrid(ctx context.Context, q *dto.CalendarQuery) (*dto.MonthGrid, error)
	Day(ctx context.Context, date string) (*dto.DaySchedule, error)
	Feed(ctx context.Context) ([]byte, error)
}

type calendarService struct {
	snapshot BookingSnapshot
	studios  []string
	capacity int
	now      func() time.Time
	logger   *zap.Logger
}

// NewCalendarService CalendarService 생성
// capacity 는 스튜디오 하루 운영 시간
func NewCalendarService(snapshot BookingSnapshot, studios []string, capacity int, logger *zap.Logger) CalendarService {
	return &calendarService{
		snapshot: snapshot,
		studios:  studios,
		capacity: capacity,
		now:      time.Now,
		logger:   logger,
	}
}

// ────────────────────── MonthGrid ──────────────────────

// selectedDate 선택일이 없으면 이번 달은 오늘, 다른 달은 1일
func selectedDate(q *dto.CalendarQuery, first time.Time, today string) (time.Time, error) {
	if q.Selected != "" {
		t, err := model.ParseDate(q.Selected)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		return t, nil
	}
	if today[:7] == first.Format("2006-01") {
		return model.ParseDate(today)
	}
	return first, nil
}

func (s *calendarService) MonthGrid(ctx context.Context, q *dto.CalendarQuery) (*dto.MonthGrid, error) {
	now := s.now()
	today := model.Today(now)

	month := q.Month
	if month == "" {
		month = today[:7]
	}
	first, last, err := monthBounds(month)
	if err != nil {
		return nil, err
	}
	selected, err := selectedDate(q, first, today)
	if err != nil {
		return nil, err
	}
	monday, friday := model.WeekRange(selected)
	weekFrom, weekTo := monday.Format(model.DateLayout), friday.Format(model.DateLayout)
	selectedStr := selected.Format(model.DateLayout)

	bookings, loadedAt := s.snapshot.Snapshot()
	used := usedHours(bookings)

	grid := &dto.MonthGrid{
		Month:    month,
		Title:    fmt.Sprintf("%d년 %d월", first.Year(), int(first.Month())),
		Selected: selectedStr,
		Weeks:    make([][]dto.CalendarCell, 0, 6),
		LoadedAt: loadedAt,
	}

	row := make([]dto.CalendarCell, 0, 5)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		// 월초가 화요일 이후면 앞을 빈 칸으로 채운다
		if len(row) == 0 && len(grid.Weeks) == 0 {
			for i := time.Monday; i < wd; i++ {
				row = append(row, dto.CalendarCell{})
			}
		}

		date := d.Format(model.DateLayout)
		cell := dto.CalendarCell{
			Date:     date,
			Day:      d.Day(),
			Today:    date == today,
			Selected: date == selectedStr,
		}
		if date >= weekFrom && date <= weekTo {
			cell.InSelectedWeek = true
			cell.Capacity = s.remaining(used, date)
		}
		row = append(row, cell)

		if len(row) == 5 {
			grid.Weeks = append(grid.Weeks, row)
			row = make([]dto.CalendarCell, 0, 5)
		}
	}
	if len(row) > 0 {
		for len(row) < 5 {
			row = append(row, dto.CalendarCell{})
		}
		grid.Weeks = append(grid.Weeks, row)
	}
	return grid, nil
}

// usedHours 날짜|스튜디오 별 예약 시간 합계
func usedHours(bookings []model.Booking) map[string]int {
	used := make(map[string]int)
	for i := range bookings {
		b := &bookings[i]
		used[b.Date+"|"+b.Studio] += b.Hours()
	}
	return used
}

// remaining 스튜디오별 남은 시간, 0 미만은 0
func (s *calendarService) remaining(used map[string]int, date string) []dto.StudioCapacity {
	list := make([]dto.StudioCapacity, 0, len(s.studios))
	for _, studio := range s.studios {
		left := s.capacity - used[date+"|"+studio]
		if left < 0 {
			left = 0
		}
		list = append(list, dto.StudioCapacity{Studio: studio, Remaining: left})
	}
	return list
}

// RemainingHours 하루 운영 시간에서 해당 날짜·스튜디오 예약 시간을 뺀 값 (0 이상)
func RemainingHours(bookings []model.Booking, date, studio string, capacity int) int {
	left := capacity - usedHours(bookings)[date+"|"+studio]
	if left < 0 {
		return 0
	}
	return left
}

// ────────────────────── Day ──────────────────────

func (s *calendarService) Day(ctx context.Context, date string) (*dto.DaySchedule, error) {
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	bookings, _ := s.snapshot.Snapshot()
	byStudio := make(map[string][]model.Booking)
	for i := range bookings {
		if bookings[i].Date == date {
			byStudio[bookings[i].Studio] = append(byStudio[bookings[i].Studio], bookings[i])
		}
	}

	result := &dto.DaySchedule{
		Date:    date,
		Title:   fmt.Sprintf("%d월 %d일 (%s) 대관 스케줄", int(day.Month()), day.Day(), koWeekdays[day.Weekday()]),
		Studios: make([]dto.StudioSchedule, 0, len(s.studios)),
	}
	// 설정된 스튜디오 순서, 예약 없는 스튜디오는 생략
	for _, studio := range s.studios {
		list := byStudio[studio]
		if len(list) == 0 {
			continue
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].Start < list[j].Start })

		group := dto.StudioSchedule{Studio: studio, Bookings: make([]dto.DayBooking, 0, len(list))}
		for _, b := range list {
			group.Bookings = append(group.Bookings, dto.DayBooking{
				ID:        b.ID,
				Company:   b.Company,
				Product:   b.Product,
				Purpose:   b.Purpose,
				Start:     b.Start,
				End:       b.End,
				TimeLabel: fmt.Sprintf("%02d-%02d시", b.Start, b.End),
			})
		}
		result.Studios = append(result.Studios, group)
	}
	return result, nil
}

// ────────────────────── Feed ──────────────────────

// Feed 전체 예약을 iCalendar 로 내보낸다
func (s *calendarService) Feed(ctx context.Context) ([]byte, error) {
	bookings, loadedAt := s.snapshot.Snapshot()
	SortBookingsByTime(bookings)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName("S-Live 스튜디오 예약")
	cal.SetXWRTimezone("Asia/Seoul")

	for i := range bookings {
		b := &bookings[i]
		start, end, err := b.Interval()
		if err != nil {
			s.logger.Debug("날짜를 해석할 수 없는 예약 제외", zap.String("id", b.ID), zap.String("date", b.Date))
			continue
		}

		event := cal.AddEvent(b.ID + "@slive-studio")
		event.SetDtStampTime(loadedAt)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("[%s] %s", b.Studio, b.Company))
		event.SetLocation(b.Studio)
		event.SetDescription(fmt.Sprintf("제품: %s\n이용 목적: %s", b.Product, b.Purpose))
	}
	return []byte(cal.Serialize()), nil
}

// SortBookingsByTime 날짜, 시작 시간, 스튜디오 순
func SortBookingsByTime(list []model.Booking) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		if list[i].Start != list[j].Start {
			return list[i].Start < list[j].Start
		}
		return list[i].Studio < list[j].Studio
	})
}
