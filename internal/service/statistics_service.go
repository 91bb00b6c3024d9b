package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/repository"
)

// ── 통계 모듈 오류 ──

var ErrInvalidMonth = errors.New("조회 월 형식이 올바르지 않습니다 (YYYY-MM)")

const (
	defaultTopCompanies = 10
	categoryTotal       = "총 이용률"
)

var hundred = decimal.NewFromInt(100)

// StatisticsService 월간 통계
type StatisticsService interface {
	MonthlyReport(ctx context.Context, q *dto.StatisticsQuery) (*dto.MonthlyReport, error)
	UsageTrend(ctx context.Context, year int) (*dto.UsageTrend, error)
}

type statisticsService struct {
	repo     *repository.Repository
	holidays HolidayProvider
	studios  []string
	now      func() time.Time
	logger   *zap.Logger
}

// NewStatisticsService StatisticsService 생성
func NewStatisticsService(repo *repository.Repository, holidays HolidayProvider, studios []string, logger *zap.Logger) StatisticsService {
	return &statisticsService{
		repo:     repo,
		holidays: holidays,
		studios:  studios,
		now:      time.Now,
		logger:   logger,
	}
}

// monthBounds "YYYY-MM" → 첫날, 마지막 날
func monthBounds(month string) (first, last time.Time, err error) {
	first, err = time.ParseInLocation("2006-01", month, model.KST)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	last = first.AddDate(0, 1, -1)
	return first, last, nil
}

// ── 영업일 ──

// BusinessDays 평일 중 공휴일이 아닌 날 수
func BusinessDays(first time.Time, holidays HolidaySet) int {
	count := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if holidays.Has(d.Format(model.DateLayout)) {
			continue
		}
		count++
	}
	return count
}

// monthHolidays 공휴일 조회, 실패하면 빈 목록(주말만 제외)
func (s *statisticsService) monthHolidays(ctx context.Context, first time.Time) (HolidaySet, HolidaySource) {
	set, source, err := s.holidays.Holidays(ctx, first.Year(), first.Month())
	if err != nil {
		s.logger.Warn("공휴일 조회 불가, 주말만 제외", zap.String("month", first.Format("2006-01")), zap.Error(err))
		return HolidaySet{}, HolidaySourceNone
	}
	return set, source
}

// UsageRate usage/business*100 을 소수 둘째 자리로, business=0 이면 "0.00"
func UsageRate(usage, business int, places int32) string {
	if business <= 0 {
		return decimal.Zero.StringFixed(places)
	}
	return decimal.NewFromInt(int64(usage)).
		Div(decimal.NewFromInt(int64(business))).
		Mul(hundred).
		StringFixed(places)
}

// ────────────────────── MonthlyReport ──────────────────────

func (s *statisticsService) MonthlyReport(ctx context.Context, q *dto.StatisticsQuery) (*dto.MonthlyReport, error) {
	month := q.Month
	if month == "" {
		month = s.now().In(model.KST).Format("2006-01")
	}
	first, last, err := monthBounds(month)
	if err != nil {
		return nil, err
	}
	top := q.Top
	if top <= 0 {
		top = defaultTopCompanies
	}

	bookings, err := s.repo.Booking.ListByDateRange(ctx, first.Format(model.DateLayout), last.Format(model.DateLayout))
	if err != nil {
		s.logger.Error("통계용 예약 조회 실패", zap.String("month", month), zap.Error(err))
		return nil, err
	}

	holidays, source := s.monthHolidays(ctx, first)
	business := BusinessDays(first, holidays)

	report := &dto.MonthlyReport{
		Month:         month,
		Period:        fmt.Sprintf("%s ~ %s", first.Format("2006.01.02"), last.Format("2006.01.02")),
		BusinessDays:  business,
		Holidays:      holidays.Sorted(),
		HolidaySource: string(source),
		Usage:         s.usage(bookings, holidays, business),
		TopCompanies:  TopCompanies(bookings, top),
		LiveCommerce:  LiveCommerceTotals(bookings),
		Satisfaction:  SatisfactionAverages(bookings),
	}
	for i := range bookings {
		if bookings[i].SurveyCompleted() {
			report.CompletedSurveys++
		}
	}
	return report, nil
}

// usage 목적(라이브커머스/일반)·스튜디오·전체별 이용일과 건수, 공휴일 예약은 제외
func (s *statisticsService) usage(bookings []model.Booking, holidays HolidaySet, business int) []dto.UsageRow {
	categories := append([]string{model.PurposeLiveCommerce, model.PurposeGeneral}, s.studios...)
	categories = append(categories, categoryTotal)

	days := make(map[string]map[string]struct{}, len(categories))
	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		days[c] = make(map[string]struct{})
	}
	mark := func(category, date string) {
		if _, ok := days[category]; !ok {
			return
		}
		days[category][date] = struct{}{}
		counts[category]++
	}

	for i := range bookings {
		b := &bookings[i]
		if holidays.Has(b.Date) {
			continue
		}
		purpose := b.Purpose
		if purpose == "" {
			purpose = model.PurposeGeneral
		}
		mark(purpose, b.Date)
		mark(b.Studio, b.Date)
		mark(categoryTotal, b.Date)
	}

	rows := make([]dto.UsageRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, dto.UsageRow{
			Category:      c,
			OperatingDays: business,
			UsageDays:     len(days[c]),
			UsageRate:     UsageRate(len(days[c]), business, 2),
			TotalBookings: counts[c],
		})
	}
	return rows
}

// TopCompanies 예약 건수 내림차순 상위 n개, 동점은 먼저 등장한 업체 우선
// 목적은 업체가 처음 등장한 예약의 값
func TopCompanies(bookings []model.Booking, n int) []dto.CompanyRank {
	order := make([]string, 0)
	stats := make(map[string]*dto.CompanyRank)
	for i := range bookings {
		b := &bookings[i]
		st, ok := stats[b.Company]
		if !ok {
			purpose := b.Purpose
			if purpose == "" {
				purpose = model.PurposeGeneral
			}
			st = &dto.CompanyRank{Company: b.Company, Purpose: purpose}
			stats[b.Company] = st
			order = append(order, b.Company)
		}
		st.Count++
	}

	ranked := make([]dto.CompanyRank, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, *stats[name])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	for i := range ranked {
		if i > 0 && ranked[i-1].Count == ranked[i].Count {
			continue // 동점은 순위 비움
		}
		ranked[i].Rank = i + 1
	}
	return ranked
}

// LiveCommerceTotals 완료 설문이 있는 라이브커머스 예약의 시청자·매출 합계
func LiveCommerceTotals(bookings []model.Booking) dto.LiveCommerceStats {
	var stats dto.LiveCommerceStats
	for i := range bookings {
		b := &bookings[i]
		if !b.IsLiveCommerce() || !b.SurveyCompleted() {
			continue
		}
		stats.Sessions++
		stats.TotalViewers += b.Survey.ViewerCount
		stats.TotalRevenue += b.Survey.Revenue
	}
	if stats.TotalViewers > 0 {
		stats.AvgRevenue = decimal.NewFromInt(stats.TotalRevenue).
			Div(decimal.NewFromInt(stats.TotalViewers)).
			Round(0).
			IntPart()
	}
	stats.ViewersLabel = FormatAmount(stats.TotalViewers) + "명"
	stats.RevenueLabel = FormatAmount(stats.TotalRevenue) + "원"
	stats.AvgRevenueText = FormatAmount(stats.AvgRevenue) + "원"
	return stats
}

// SatisfactionAverages 완료 설문 항목별 평균 점수(소수 첫째 자리)와 응답 수
func SatisfactionAverages(bookings []model.Booking) []dto.SatisfactionStat {
	result := make([]dto.SatisfactionStat, 0, len(model.RatingKeys))
	for _, key := range model.RatingKeys {
		total, count := 0, 0
		for i := range bookings {
			b := &bookings[i]
			if !b.SurveyCompleted() {
				continue
			}
			if score, ok := model.RatingScore(b.Survey.Rating(key)); ok {
				total += score
				count++
			}
		}

		avg := decimal.Zero
		if count > 0 {
			avg = decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(count)))
		}
		result = append(result, dto.SatisfactionStat{
			Key:       key,
			Label:     model.FieldLabel(key),
			Average:   avg.StringFixed(1),
			Responses: count,
		})
	}
	return result
}

// ────────────────────── UsageTrend ──────────────────────

// UsageTrend 월별 라이브커머스/그 외 이용률 (소수 첫째 자리)
func (s *statisticsService) UsageTrend(ctx context.Context, year int) (*dto.UsageTrend, error) {
	if year == 0 {
		year = s.now().In(model.KST).Year()
	}

	first := time.Date(year, time.January, 1, 0, 0, 0, 0, model.KST)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, model.KST)
	bookings, err := s.repo.Booking.ListByDateRange(ctx, first.Format(model.DateLayout), last.Format(model.DateLayout))
	if err != nil {
		s.logger.Error("추이용 예약 조회 실패", zap.Int("year", year), zap.Error(err))
		return nil, err
	}

	liveDays := make([]map[string]struct{}, 12)
	generalDays := make([]map[string]struct{}, 12)
	for m := 0; m < 12; m++ {
		liveDays[m] = make(map[string]struct{})
		generalDays[m] = make(map[string]struct{})
	}
	for i := range bookings {
		b := &bookings[i]
		day, err := model.ParseDate(b.Date)
		if err != nil {
			continue
		}
		m := int(day.Month()) - 1
		if b.IsLiveCommerce() {
			liveDays[m][b.Date] = struct{}{}
		} else {
			generalDays[m][b.Date] = struct{}{}
		}
	}

	trend := &dto.UsageTrend{
		Year:         year,
		Labels:       make([]string, 12),
		LiveCommerce: make([]string, 12),
		General:      make([]string, 12),
	}
	for m := 0; m < 12; m++ {
		monthFirst := first.AddDate(0, m, 0)
		holidays, _ := s.monthHolidays(ctx, monthFirst)
		business := BusinessDays(monthFirst, holidays)

		trend.Labels[m] = fmt.Sprintf("%d월", m+1)
		trend.LiveCommerce[m] = UsageRate(len(liveDays[m]), business, 1)
		trend.General[m] = UsageRate(len(generalDays[m]), business, 1)
	}
	return trend, nil
}
