package dto

// ── 인증 응답 ──

// TokenResponse 토큰 쌍
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 유효기간(초)
	User         UserResponse `json:"user"`
}

// UserResponse 관리자 정보 (비밀번호 제외)
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// SessionResponse 세션 확인 결과
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          UserResponse `json:"user"`
}
