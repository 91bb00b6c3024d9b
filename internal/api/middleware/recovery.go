package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/pkg/response"
)

// Recovery panic 을 잡아 로그를 남기고 공통 500 응답을 내려준다
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// 연결이 끊긴 응답은 다시 쓰지 않는다
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.Error("panic 복구",
				zap.Any("panic", rec),
				zap.String("request_id", RequestIDFrom(c)),
				zap.String("route", c.FullPath()),
				zap.ByteString("stack", debug.Stack()),
			)
			if !c.Writer.Written() {
				response.InternalError(c)
			}
			c.Abort()
		}()

		c.Next()
	}
}
