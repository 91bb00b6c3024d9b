package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/response"
)

// ImportHandler 예약 가져오기 HTTP 처리
//
// HTTP 에서는 대화형 질문을 할 수 없으므로 미리보기로 충돌 목록을 받고,
// 충돌 번호별 결정을 "resolution" 필드에 담아 다시 올린다.
// 결정에 충돌 key 를 함께 담으면 그 사이 예약이 바뀐 경우 409 로 거절한다
type ImportHandler struct {
	svc service.ImportService
}

// NewImportHandler ImportHandler 생성
func NewImportHandler(svc service.ImportService) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// readUpload multipart "file" 필드를 예약 후보로 변환, 실패하면 응답을 쓰고 false
func (h *ImportHandler) readUpload(c *gin.Context) ([]model.Booking, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(c, "파일이 너무 큽니다")
			return nil, false
		}
		response.BadRequest(c, 13000, "가져올 파일을 선택해주세요")
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, 13000, "파일을 열 수 없습니다")
		return nil, false
	}
	defer f.Close()

	candidates, err := service.ParseImportFile(fh.Filename, f)
	if err != nil {
		handleImportError(c, err)
		return nil, false
	}
	return candidates, true
}

// Preview 충돌 확인 (쓰기 없음)
// POST /api/v1/imports/preview   multipart: file
func (h *ImportHandler) Preview(c *gin.Context) {
	candidates, ok := h.readUpload(c)
	if !ok {
		return
	}

	preview, err := h.svc.Preview(c.Request.Context(), candidates)
	if err != nil {
		handleImportError(c, err)
		return
	}
	response.OK(c, preview)
}

// Import 결정에 따라 반영
// POST /api/v1/imports   multipart: file, resolution(JSON)
func (h *ImportHandler) Import(c *gin.Context) {
	var req dto.ImportResolutionRequest
	if raw := c.PostForm("resolution"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			response.BadRequest(c, 10001, "resolution 형식이 올바르지 않습니다")
			return
		}
	}
	resolver, err := toResolver(&req)
	if err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	candidates, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.svc.Import(c.Request.Context(), candidates, resolver)
	if err != nil {
		handleImportError(c, err)
		return
	}
	response.OK(c, result)
}

func toResolver(req *dto.ImportResolutionRequest) (*service.ScriptedResolver, error) {
	r := &service.ScriptedResolver{
		Decisions:          make(map[int]service.ConflictDecision, len(req.Decisions)),
		AllowSurveyDiscard: req.AllowSurveyDiscard,
		Commit:             req.Commit,
	}
	if req.Default != "" {
		action, ok := service.ParseConflictAction(req.Default)
		if !ok {
			return nil, errors.New("알 수 없는 기본 처리 방식입니다: " + req.Default)
		}
		r.Default = action
	}
	for idx, d := range req.Decisions {
		// 모르는 값은 서비스에서 건너뛰기로 처리
		r.Decisions[idx] = service.ConflictDecision{
			Action:     service.ConflictAction(d.Action),
			ApplyToAll: d.ApplyToAll,
			Key:        d.Key,
		}
	}
	return r, nil
}

func handleImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrImportUnsupportedFormat):
		response.BadRequest(c, 13001, err.Error())
	case errors.Is(err, service.ErrImportNoData):
		response.BadRequest(c, 13002, err.Error())
	case errors.Is(err, service.ErrImportTooManyRows):
		response.BadRequest(c, 13003, err.Error())
	case errors.Is(err, service.ErrImportParse):
		response.ErrorWithDetails(c, http.StatusBadRequest, 13004, service.ErrImportParse.Error(), err.Error())
	case errors.Is(err, service.ErrImportCommitFailed):
		response.StoreUnavailable(c, service.ErrImportCommitFailed.Error())
	case errors.Is(err, service.ErrImportStale):
		response.Conflict(c, 13005, service.ErrImportStale.Error())
	case errors.Is(err, service.ErrImportAborted):
		response.StoreUnavailable(c, service.ErrImportAborted.Error())
	default:
		response.StoreUnavailable(c, msgStoreUnavailable)
	}
}
