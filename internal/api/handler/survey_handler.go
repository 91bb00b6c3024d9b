package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/response"
)

// SurveyHandler 만족도 설문 HTTP 처리
type SurveyHandler struct {
	svc service.SurveyService
}

// NewSurveyHandler SurveyHandler 생성
func NewSurveyHandler(svc service.SurveyService) *SurveyHandler {
	return &SurveyHandler{svc: svc}
}

// Form 설문 편집 화면 데이터
// GET /api/v1/bookings/:id/survey
func (h *SurveyHandler) Form(c *gin.Context) {
	form, err := h.svc.Form(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleSurveyError(c, err)
		return
	}
	response.OK(c, form)
}

// Submit 설문 저장
// PUT /api/v1/bookings/:id/survey
func (h *SurveyHandler) Submit(c *gin.Context) {
	var req dto.SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "설문 입력값이 올바르지 않습니다")
		return
	}

	survey, err := h.svc.Submit(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleSurveyError(c, err)
		return
	}
	response.OK(c, survey)
}

// Delete 완료된 설문 삭제
// DELETE /api/v1/bookings/:id/survey
func (h *SurveyHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleSurveyError(c, err)
		return
	}
	response.OK(c, nil)
}

func handleSurveyError(c *gin.Context, err error) {
	var fieldErr *model.FieldError
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, 14001, err.Error())
	case errors.Is(err, service.ErrSurveyNotFound):
		response.NotFound(c, 14002, err.Error())
	case errors.Is(err, service.ErrSurveyNotDeletable):
		response.Conflict(c, 14003, err.Error())
	case errors.As(err, &fieldErr):
		response.BadRequest(c, 14004, fieldErr.Label+" 항목을 선택해주세요")
	case errors.Is(err, service.ErrInvalidRating):
		response.BadRequest(c, 14005, err.Error())
	default:
		response.StoreUnavailable(c, msgStoreUnavailable)
	}
}
