package handler

import "github.com/SNS-EUGENE/s-live-dashboard/internal/service"

// Handler 모든 Handler 의 집합
type Handler struct {
	Auth       *AuthHandler
	Booking    *BookingHandler
	Survey     *SurveyHandler
	Import     *ImportHandler
	Export     *ExportHandler
	Statistics *StatisticsHandler
	Calendar   *CalendarHandler
}

// NewHandler Handler 집합 생성
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Booking:    NewBookingHandler(svc.Booking),
		Survey:     NewSurveyHandler(svc.Survey),
		Import:     NewImportHandler(svc.Import),
		Export:     NewExportHandler(svc.Export),
		Statistics: NewStatisticsHandler(svc.Statistics),
		Calendar:   NewCalendarHandler(svc.Calendar),
	}
}
