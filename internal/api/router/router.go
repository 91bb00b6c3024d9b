package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/config"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/api/handler"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/api/middleware"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/jwt"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/redis"
)

// Setup Gin 엔진 구성
// rdb 가 nil 이면 로그인 속도 제한과 토큰 블랙리스트 확인을 생략한다
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	var (
		blacklist middleware.Blacklist
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	r := gin.New()

	// ── 전역 미들웨어 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger, "/health"))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Import.MaxUploadBytes))

	// ── 상태 확인 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 인증 (토큰 불필요)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/session", h.Auth.Session)

			writer := middleware.RoleAuth(model.RoleAdmin)

			// 예약
			bookings := authorized.Group("/bookings")
			{
				bookings.GET("", h.Booking.List)
				bookings.GET("/:id", h.Booking.Get)
				bookings.POST("", writer, h.Booking.Create)
				bookings.PUT("/:id", writer, h.Booking.Update)
				bookings.DELETE("/:id", writer, h.Booking.Delete)

				// 설문
				bookings.GET("/:id/survey", h.Survey.Form)
				bookings.PUT("/:id/survey", writer, h.Survey.Submit)
				bookings.DELETE("/:id/survey", writer, h.Survey.Delete)
			}

			// 가져오기
			imports := authorized.Group("/imports", writer)
			{
				imports.POST("/preview", h.Import.Preview)
				imports.POST("", h.Import.Import)
			}

			// 내보내기
			exports := authorized.Group("/exports")
			{
				exports.GET("/json", h.Export.ExportJSON)
				exports.GET("/xlsx", h.Export.ExportXLSX)
			}

			// 통계
			statistics := authorized.Group("/statistics")
			{
				statistics.GET("/monthly", h.Statistics.Monthly)
				statistics.GET("/trend", h.Statistics.Trend)
			}

			// 운영 달력
			calendar := authorized.Group("/calendar")
			{
				calendar.GET("/month", h.Calendar.Month)
				calendar.GET("/days/:date", h.Calendar.Day)
				calendar.GET("/feed.ics", h.Calendar.Feed)
			}
		}
	}

	return r
}
