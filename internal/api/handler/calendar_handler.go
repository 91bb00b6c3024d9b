package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/response"
)

// CalendarHandler 운영 달력 HTTP 처리
type CalendarHandler struct {
	svc service.CalendarService
}

// NewCalendarHandler CalendarHandler 생성
func NewCalendarHandler(svc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

// Month 평일 달력과 선택 주 남은 시간
// GET /api/v1/calendar/month?month=2024-03&selected=2024-03-13
func (h *CalendarHandler) Month(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "조회 조건이 올바르지 않습니다")
		return
	}

	grid, err := h.svc.MonthGrid(c.Request.Context(), &q)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, grid)
}

// Day 하루 스튜디오별 예약
// GET /api/v1/calendar/days/:date
func (h *CalendarHandler) Day(c *gin.Context) {
	day, err := h.svc.Day(c.Request.Context(), c.Param("date"))
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, day)
}

// Feed 전체 예약 iCalendar 구독
// GET /api/v1/calendar/feed.ics
func (h *CalendarHandler) Feed(c *gin.Context) {
	data, err := h.svc.Feed(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.File(c, "slive_schedule.ics", "text/calendar; charset=utf-8", data, true)
}

func handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidMonth):
		response.BadRequest(c, 16001, err.Error())
	default:
		response.InternalError(c)
	}
}
