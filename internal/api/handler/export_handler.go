package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/response"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler 내보내기 HTTP 처리
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler ExportHandler 생성
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportJSON 현재 필터 결과를 JSON 파일로
// GET /api/v1/exports/json?<BookingQuery>
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	var q dto.BookingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "조회 조건이 올바르지 않습니다")
		return
	}

	buf, filename, err := h.exportSvc.ExportJSON(c.Request.Context(), &q)
	if err != nil {
		handleExportError(c, err)
		return
	}
	response.File(c, filename, contentTypeJSON, buf.Bytes(), false)
}

// ExportXLSX 현재 필터 결과를 엑셀 파일로
// GET /api/v1/exports/xlsx?<BookingQuery>
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	var q dto.BookingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "조회 조건이 올바르지 않습니다")
		return
	}

	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), &q)
	if err != nil {
		handleExportError(c, err)
		return
	}
	response.File(c, filename, contentTypeXLSX, buf.Bytes(), false)
}

func handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportEmpty):
		response.BadRequest(c, 16101, err.Error())
	case errors.Is(err, service.ErrInvalidDateRange), errors.Is(err, service.ErrInvalidFilter):
		response.BadRequest(c, 12004, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.StoreUnavailable(c, msgStoreUnavailable)
	}
}
