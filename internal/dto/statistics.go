package dto

// ── 통계 DTO ──

// StatisticsQuery 월간 통계 조회 조건
type StatisticsQuery struct {
	Month string `form:"month"` // YYYY-MM, 비우면 이번 달
	Top   int    `form:"top"   binding:"omitempty,min=1,max=50"`
}

// TrendQuery 연간 추이 조회 조건
type TrendQuery struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// UsageRow 구분별 이용률
type UsageRow struct {
	Category      string `json:"category"`
	OperatingDays int    `json:"operating_days"`
	UsageDays     int    `json:"usage_days"`
	UsageRate     string `json:"usage_rate"` // 소수 둘째 자리까지 (%)
	TotalBookings int    `json:"total_bookings"`
}

// CompanyRank 업체별 이용 순위
// 앞 순위와 건수가 같으면 Rank 는 0 (표시하지 않음)
type CompanyRank struct {
	Rank    int    `json:"rank,omitempty"`
	Company string `json:"company"`
	Purpose string `json:"purpose"`
	Count   int    `json:"count"`
}

// LiveCommerceStats 라이브커머스 매출/시청자 합계
type LiveCommerceStats struct {
	Sessions       int    `json:"sessions"`
	TotalViewers   int64  `json:"total_viewers"`
	TotalRevenue   int64  `json:"total_revenue"`
	AvgRevenue     int64  `json:"avg_revenue"` // 시청자 1인당
	ViewersLabel   string `json:"viewers_label"`
	RevenueLabel   string `json:"revenue_label"`
	AvgRevenueText string `json:"avg_revenue_label"`
}

// SatisfactionStat 설문 항목별 평균
type SatisfactionStat struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Average   string `json:"average"` // 소수 첫째 자리
	Responses int    `json:"responses"`
}

// MonthlyReport 월간 통계
type MonthlyReport struct {
	Month            string             `json:"month"`
	Period           string             `json:"period"` // 2024.01.01 ~ 2024.01.31
	BusinessDays     int                `json:"business_days"`
	Holidays         []string           `json:"holidays"`
	HolidaySource    string             `json:"holiday_source"`
	Usage            []UsageRow         `json:"usage"`
	TopCompanies     []CompanyRank      `json:"top_companies"`
	LiveCommerce     LiveCommerceStats  `json:"live_commerce"`
	Satisfaction     []SatisfactionStat `json:"satisfaction"`
	CompletedSurveys int                `json:"completed_surveys"`
}

// UsageTrend 월별 이용률 추이 (라이브커머스 / 그 외)
type UsageTrend struct {
	Year         int      `json:"year"`
	Labels       []string `json:"labels"`
	LiveCommerce []string `json:"live_commerce"`
	General      []string `json:"general"`
}
