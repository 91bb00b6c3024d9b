package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SNS-EUGENE/s-live-dashboard/pkg/response"
)

// BodyLimit 요청 본문 크기 제한 (가져오기 업로드가 가장 크다)
// maxBytes 가 0 이하면 제한하지 않는다
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			response.PayloadTooLarge(c, "요청 본문이 너무 큽니다")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		c.Next()

		// 핸들러가 응답을 쓰지 않고 바인딩 오류만 남긴 경우
		if c.IsAborted() || c.Writer.Written() {
			return
		}
		for _, e := range c.Errors {
			var tooLarge *http.MaxBytesError
			if errors.As(e.Err, &tooLarge) {
				response.PayloadTooLarge(c, "요청 본문이 너무 큽니다")
				return
			}
		}
	}
}
