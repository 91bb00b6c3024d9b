package dto

// ── 가져오기 DTO ──

// ImportDecision 충돌 번호별 처리 방식
// Key 는 미리보기 응답의 충돌 key, 다르면 가져오기를 거절한다
type ImportDecision struct {
	Action     string `json:"action"` // overwrite | merge | skip
	ApplyToAll bool   `json:"apply_to_all"`
	Key        string `json:"key"`
}

// ImportResolutionRequest multipart 의 "resolution" 필드 (JSON)
// 결정이 없는 충돌은 Default, Default 도 없으면 건너뛴다
type ImportResolutionRequest struct {
	Decisions          map[int]ImportDecision `json:"decisions"`
	Default            string                 `json:"default"`
	AllowSurveyDiscard bool                   `json:"allow_survey_discard"`
	Commit             bool                   `json:"commit"`
}
