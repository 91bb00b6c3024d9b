package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/response"
)

// StatisticsHandler 통계 HTTP 처리
type StatisticsHandler struct {
	svc service.StatisticsService
}

// NewStatisticsHandler StatisticsHandler 생성
func NewStatisticsHandler(svc service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{svc: svc}
}

// Monthly 월간 통계
// GET /api/v1/statistics/monthly?month=2024-03&top=10
func (h *StatisticsHandler) Monthly(c *gin.Context) {
	var q dto.StatisticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "조회 조건이 올바르지 않습니다")
		return
	}

	report, err := h.svc.MonthlyReport(c.Request.Context(), &q)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMonth) {
			response.BadRequest(c, 15001, err.Error())
			return
		}
		response.StoreUnavailable(c, msgStoreUnavailable)
		return
	}
	response.OK(c, report)
}

// Trend 연간 월별 이용 추이
// GET /api/v1/statistics/trend?year=2024
func (h *StatisticsHandler) Trend(c *gin.Context) {
	var q dto.TrendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "조회 연도가 올바르지 않습니다")
		return
	}

	trend, err := h.svc.UsageTrend(c.Request.Context(), q.Year)
	if err != nil {
		response.StoreUnavailable(c, msgStoreUnavailable)
		return
	}
	response.OK(c, trend)
}
