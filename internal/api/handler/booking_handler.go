package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/response"
)

const msgStoreUnavailable = "데이터를 처리하는 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"

// BookingHandler 예약 HTTP 처리
type BookingHandler struct {
	svc service.BookingService
}

// NewBookingHandler BookingHandler 생성
func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// List 필터·정렬된 예약 목록과 요약
// GET /api/v1/bookings?from=&to=&date=&search=&studio=&status=&survey=
func (h *BookingHandler) List(c *gin.Context) {
	var q dto.BookingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "조회 조건이 올바르지 않습니다")
		return
	}

	result, err := h.svc.List(c.Request.Context(), &q)
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.OK(c, result)
}

// Get 예약 단건
// GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.OK(c, result)
}

// Create 예약 추가
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "필수 항목을 모두 입력해주세요")
		return
	}

	result, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.Created(c, result)
}

// Update 예약 수정 (설문은 유지)
// PUT /api/v1/bookings/:id
func (h *BookingHandler) Update(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "필수 항목을 모두 입력해주세요")
		return
	}

	result, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 예약 삭제
// DELETE /api/v1/bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleBookingError(c, err)
		return
	}
	response.OK(c, nil)
}

func handleBookingError(c *gin.Context, err error) {
	var fieldErr *model.FieldError
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrBookingOverlap):
		response.Conflict(c, 12002, err.Error())
	case errors.As(err, &fieldErr),
		errors.Is(err, model.ErrInvalidTimeRange),
		errors.Is(err, model.ErrInvalidDateFormat),
		errors.Is(err, service.ErrUnknownStudio):
		response.BadRequest(c, 12003, err.Error())
	case errors.Is(err, service.ErrInvalidDateRange), errors.Is(err, service.ErrInvalidFilter):
		response.BadRequest(c, 12004, err.Error())
	default:
		response.StoreUnavailable(c, msgStoreUnavailable)
	}
}
