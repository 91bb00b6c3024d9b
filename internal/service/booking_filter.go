package service

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
)

// ════════════════════════════════════════════════════════════
// 필터 / 정렬
// ════════════════════════════════════════════════════════════

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// sanitizeSearch 태그 제거 후 소문자화
func sanitizeSearch(q string) string {
	return strings.ToLower(strings.TrimSpace(htmlTagPattern.ReplaceAllString(q, "")))
}

// FilterBookings 검색어·스튜디오·상태·설문 조건을 AND 로 적용
func FilterBookings(list []model.Booking, q *dto.BookingQuery, now time.Time) []model.Booking {
	search := sanitizeSearch(q.Search)

	result := make([]model.Booking, 0, len(list))
	for i := range list {
		b := &list[i]
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Company), search) &&
			!strings.Contains(strings.ToLower(b.Product), search) {
			continue
		}
		if q.Studio != "" && b.Studio != q.Studio {
			continue
		}
		if q.Status != "" && string(b.Status(now)) != q.Status {
			continue
		}
		switch q.Survey {
		case dto.SurveyFilterCompleted:
			if !b.SurveyCompleted() {
				continue
			}
		case dto.SurveyFilterPending:
			if b.SurveyCompleted() {
				continue
			}
		}
		result = append(result, *b)
	}
	return result
}

// ── 정렬 우선순위 ──
//
//	1 진행 중                    시작 시간 ↑
//	2 예정 (내일까지)            날짜 ↑, 시작 ↑
//	3 종료 (최근 2일)            날짜 ↓, 시작 ↓
//	4 예정 (그 이후)             날짜 ↑, 시작 ↑
//	5 종료 (2일 이전)            날짜 ↓, 시작 ↓
//	6 기타

// SortPriority 예약의 정렬 구간 (1~6)
func SortPriority(b *model.Booking, now time.Time) int {
	today := model.Today(now)
	tomorrow, _ := model.AddDays(today, 1)
	twoDaysAgo, _ := model.AddDays(today, -2)

	switch b.Status(now) {
	case model.StatusActive:
		return 1
	case model.StatusUpcoming:
		if b.Date <= tomorrow {
			return 2
		}
		return 4
	case model.StatusCompleted:
		if b.Date >= twoDaysAgo {
			return 3
		}
		return 5
	}
	return 6
}

// SortBookings 6단계 우선순위로 안정 정렬 (제자리)
func SortBookings(list []model.Booking, now time.Time) {
	keys := make([]int, len(list))
	idx := make([]int, len(list))
	for i := range list {
		keys[i] = SortPriority(&list[i], now)
		idx[i] = i
	}
	sort.SliceStable(idx, func(x, y int) bool {
		a, b := &list[idx[x]], &list[idx[y]]
		pa, pb := keys[idx[x]], keys[idx[y]]
		if pa != pb {
			return pa < pb
		}
		switch pa {
		case 1:
			return a.Start < b.Start
		case 2, 4:
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			return a.Start < b.Start
		case 3, 5:
			if a.Date != b.Date {
				return a.Date > b.Date
			}
			return a.Start > b.Start
		}
		return false
	})

	sorted := make([]model.Booking, len(list))
	for i, j := range idx {
		sorted[i] = list[j]
	}
	copy(list, sorted)
}

// ── 콘솔 요약 ──

// Summarize 오늘/이번 주(월~금) 건수, 업체 수, 설문 완료율
func Summarize(list []model.Booking, now time.Time) dto.ConsoleSummary {
	today := model.Today(now)
	monday, friday := model.WeekRange(now.In(model.KST))
	weekStart, weekEnd := monday.Format(model.DateLayout), friday.Format(model.DateLayout)

	summary := dto.ConsoleSummary{TotalBookings: len(list)}
	companies := make(map[string]struct{})
	for i := range list {
		b := &list[i]
		if b.Date == today {
			summary.Today++
		}
		if b.Date >= weekStart && b.Date <= weekEnd {
			summary.ThisWeek++
		}
		companies[b.Company] = struct{}{}
		if b.SurveyCompleted() {
			summary.CompletedSurveys++
		}
	}
	summary.Companies = len(companies)
	if len(list) > 0 {
		summary.SurveyRate = int(math.Round(float64(summary.CompletedSurveys) / float64(len(list)) * 100))
	}
	return summary
}
