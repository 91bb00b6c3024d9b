package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/jwt"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/response"
)

// AuthHandler 관리자 인증 HTTP 처리
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler AuthHandler 생성
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 로그인
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "입력값이 올바르지 않습니다")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Refresh 토큰 갱신
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "refresh_token 값이 필요합니다")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenInvalid),
			errors.Is(err, service.ErrTokenRevoked), errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, 11002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// logoutRequest refresh 토큰은 선택
type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout 로그아웃
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	var req logoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.authSvc.Logout(c.Request.Context(), claims, req.RefreshToken); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Session 현재 세션 확인
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Session(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, 11003, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
