package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/api/middleware"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/jwt"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/response"
)

// MustGetUserID 컨텍스트의 user_id, 없으면 401 을 쓰고 false
// 호출자는 false 일 때 바로 return 한다
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	return s, true
}

// MustGetClaims JWTAuth 가 넣어 둔 토큰 클레임
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ContextClaims)
	if !exists {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return nil, false
	}
	return claims, true
}
