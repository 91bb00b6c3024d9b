package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/api/middleware"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/jwt"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errStore = errors.New("connection refused")

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	logoutToken   string
	sessionResult *dto.SessionResponse
	sessionErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims, refreshToken string) error {
	m.logoutToken = refreshToken
	return m.logoutErr
}
func (m *mockAuthService) Session(_ context.Context, _ string) (*dto.SessionResponse, error) {
	return m.sessionResult, m.sessionErr
}
func (m *mockAuthService) CreateAdmin(_ context.Context, _ *dto.CreateAdminRequest) (*dto.UserResponse, error) {
	return nil, nil
}

// ── Mock BookingService ──

type mockBookingService struct {
	listResult *dto.BookingListResponse
	listErr    error
	getResult  *dto.BookingResponse
	getErr     error
	writeErr   error
	lastQuery  dto.BookingQuery
}

func (m *mockBookingService) List(_ context.Context, q *dto.BookingQuery) (*dto.BookingListResponse, error) {
	m.lastQuery = *q
	return m.listResult, m.listErr
}
func (m *mockBookingService) Filtered(_ context.Context, _ *dto.BookingQuery) ([]model.Booking, error) {
	return nil, m.listErr
}
func (m *mockBookingService) Get(_ context.Context, _ string) (*dto.BookingResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockBookingService) Create(_ context.Context, req *dto.BookingRequest) (*dto.BookingResponse, error) {
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	return &dto.BookingResponse{ID: "bk-1", Date: req.Date, Start: *req.Start, End: *req.End}, nil
}
func (m *mockBookingService) Update(_ context.Context, id string, _ *dto.BookingRequest) (*dto.BookingResponse, error) {
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	return &dto.BookingResponse{ID: id}, nil
}
func (m *mockBookingService) Delete(_ context.Context, _ string) error {
	return m.writeErr
}

// ── Mock SurveyService ──

type mockSurveyService struct {
	formResult *dto.SurveyForm
	err        error
}

func (m *mockSurveyService) Form(_ context.Context, _ string) (*dto.SurveyForm, error) {
	return m.formResult, m.err
}
func (m *mockSurveyService) Submit(_ context.Context, _ string, _ *dto.SurveyRequest) (*model.Survey, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.Survey{Completed: true}, nil
}
func (m *mockSurveyService) Delete(_ context.Context, _ string) error {
	return m.err
}

// ── Mock ImportService ──

type mockImportService struct {
	candidates []model.Booking
	resolver   service.ConflictResolver
	err        error
}

func (m *mockImportService) Preview(_ context.Context, candidates []model.Booking) (*service.ImportPreview, error) {
	m.candidates = candidates
	if m.err != nil {
		return nil, m.err
	}
	return &service.ImportPreview{Candidates: candidates, NewCount: len(candidates)}, nil
}
func (m *mockImportService) Import(_ context.Context, candidates []model.Booking, resolver service.ConflictResolver) (*service.ImportResult, error) {
	m.candidates = candidates
	m.resolver = resolver
	if m.err != nil {
		return nil, m.err
	}
	return &service.ImportResult{Outcome: service.OutcomeCommitted}, nil
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportJSON(_ context.Context, _ *dto.BookingQuery) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportXLSX(_ context.Context, _ *dto.BookingQuery) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock StatisticsService ──

type mockStatisticsService struct {
	err      error
	lastYear int
}

func (m *mockStatisticsService) MonthlyReport(_ context.Context, q *dto.StatisticsQuery) (*dto.MonthlyReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.MonthlyReport{Month: q.Month}, nil
}
func (m *mockStatisticsService) UsageTrend(_ context.Context, year int) (*dto.UsageTrend, error) {
	m.lastYear = year
	return &dto.UsageTrend{}, m.err
}

// ── Mock CalendarService ──

type mockCalendarService struct {
	err error
}

func (m *mockCalendarService) MonthGrid(_ context.Context, q *dto.CalendarQuery) (*dto.MonthGrid, error) {
	return &dto.MonthGrid{Month: q.Month}, m.err
}
func (m *mockCalendarService) Day(_ context.Context, date string) (*dto.DaySchedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.DaySchedule{Date: date}, nil
}
func (m *mockCalendarService) Feed(_ context.Context) ([]byte, error) {
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set(middleware.ContextUserID, "test-user-id")
	c.Set(middleware.ContextRole, model.RoleAdmin)
	c.Set(middleware.ContextClaims, &jwt.Claims{UserID: "test-user-id", Role: model.RoleAdmin, TokenType: jwt.TokenTypeAccess})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(method, route, target string, body io.Reader, contentType string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	r := gin.New()
	r.Handle(method, route, func(c *gin.Context) {
		setAuth(c)
		h(c)
	})
	r.ServeHTTP(w, req)
	return w
}

func intPtr(v int) *int { return &v }

func validBookingRequest() dto.BookingRequest {
	return dto.BookingRequest{
		Date:    "2024-03-13",
		Studio:  "스튜디오 메인",
		Company: "알파",
		Start:   intPtr(0),
		End:     intPtr(2),
		Purpose: model.PurposeGeneral,
		Product: "촬영",
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{loginResult: &dto.TokenResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900}}
	h := NewAuthHandler(mock)

	w := serve("POST", "/auth/login", "/auth/login",
		jsonBody(dto.LoginRequest{Email: "admin@slive.kr", Password: "password123"}), "application/json", h.Login)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("POST", "/auth/login", "/auth/login", strings.NewReader("invalid json"), "application/json", h.Login)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := serve("POST", "/auth/login", "/auth/login",
		jsonBody(dto.LoginRequest{Email: "admin@slive.kr", Password: "wrong"}), "application/json", h.Login)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Refresh_Revoked(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrTokenRevoked})

	w := serve("POST", "/auth/refresh", "/auth/refresh",
		jsonBody(dto.RefreshTokenRequest{RefreshToken: "old"}), "application/json", h.Refresh)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("POST", "/auth/refresh", "/auth/refresh", jsonBody(map[string]string{}), "application/json", h.Refresh)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := serve("POST", "/auth/logout", "/auth/logout",
		jsonBody(map[string]string{"refresh_token": "r-1"}), "application/json", h.Logout)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.logoutToken != "r-1" {
		t.Errorf("refresh 토큰 전달: %q", mock.logoutToken)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, httptest.NewRequest("POST", "/auth/logout", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{sessionResult: &dto.SessionResponse{Authenticated: true}})

	w := serve("GET", "/auth/session", "/auth/session", nil, "", h.Session)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// BookingHandler Tests
// ═══════════════════════════════════════════════════════════

func TestBookingHandler_List_BindsQuery(t *testing.T) {
	mock := &mockBookingService{listResult: &dto.BookingListResponse{}}
	h := NewBookingHandler(mock)

	w := serve("GET", "/bookings", "/bookings?search=%EC%95%8C%ED%8C%8C&status=active&studio=x", nil, "", h.List)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.lastQuery.Search != "알파" || mock.lastQuery.Status != "active" || mock.lastQuery.Studio != "x" {
		t.Errorf("조회 조건: %+v", mock.lastQuery)
	}
}

func TestBookingHandler_List_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode int
	}{
		{"필터 오류", service.ErrInvalidFilter, http.StatusBadRequest, 12004},
		{"기간 오류", service.ErrInvalidDateRange, http.StatusBadRequest, 12004},
		{"저장소 오류", errStore, http.StatusInternalServerError, 50001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBookingHandler(&mockBookingService{listErr: tt.err})
			w := serve("GET", "/bookings", "/bookings", nil, "", h.List)
			if w.Code != tt.wantHTTP {
				t.Errorf("expected %d, got %d", tt.wantHTTP, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestBookingHandler_Create_ZeroStartAccepted(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{})

	w := serve("POST", "/bookings", "/bookings", jsonBody(validBookingRequest()), "application/json", h.Create)
	if w.Code != http.StatusCreated {
		t.Errorf("0시 시작: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestBookingHandler_Create_MissingStart(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{})
	req := validBookingRequest()
	req.Start = nil

	w := serve("POST", "/bookings", "/bookings", jsonBody(req), "application/json", h.Create)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestBookingHandler_Create_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode int
		wantMsg  string
	}{
		{"중복", service.ErrBookingOverlap, http.StatusConflict, 12002, service.ErrBookingOverlap.Error()},
		{"필수 항목", &model.FieldError{Field: "product", Label: "제품명"}, http.StatusBadRequest, 12003, "제품명 항목은 필수입니다"},
		{"시간 범위", model.ErrInvalidTimeRange, http.StatusBadRequest, 12003, model.ErrInvalidTimeRange.Error()},
		{"날짜 형식", fmt.Errorf("%w (13/03)", model.ErrInvalidDateFormat), http.StatusBadRequest, 12003, ""},
		{"스튜디오", fmt.Errorf("%w: 스튜디오 X", service.ErrUnknownStudio), http.StatusBadRequest, 12003, ""},
		{"저장소", errStore, http.StatusInternalServerError, 50001, msgStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBookingHandler(&mockBookingService{writeErr: tt.err})
			w := serve("POST", "/bookings", "/bookings", jsonBody(validBookingRequest()), "application/json", h.Create)
			if w.Code != tt.wantHTTP {
				t.Errorf("expected %d, got %d", tt.wantHTTP, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
			if tt.wantMsg != "" && resp.Message != tt.wantMsg {
				t.Errorf("message: %q", resp.Message)
			}
		})
	}
}

func TestBookingHandler_Delete_NotFound(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{writeErr: service.ErrBookingNotFound})

	w := serve("DELETE", "/bookings/:id", "/bookings/gone", nil, "", h.Delete)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SurveyHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSurveyHandler_Submit_MissingRating(t *testing.T) {
	h := NewSurveyHandler(&mockSurveyService{err: &model.FieldError{Field: "cleanliness", Label: "청결도"}})

	w := serve("PUT", "/bookings/:id/survey", "/bookings/bk-1/survey",
		jsonBody(map[string]string{"facilityRating": "만족"}), "application/json", h.Submit)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Message != "청결도 항목을 선택해주세요" {
		t.Errorf("message: %q", resp.Message)
	}
}

func TestSurveyHandler_Submit_NumericAmount(t *testing.T) {
	h := NewSurveyHandler(&mockSurveyService{})

	w := serve("PUT", "/bookings/:id/survey", "/bookings/bk-1/survey",
		strings.NewReader(`{"revenue": 1234000, "viewerCount": "1,500"}`), "application/json", h.Submit)
	if w.Code != http.StatusOK {
		t.Errorf("숫자·문자열 금액 모두 허용: got %d", w.Code)
	}
}

func TestSurveyHandler_Delete_Errors(t *testing.T) {
	tests := []struct {
		err      error
		wantHTTP int
	}{
		{service.ErrSurveyNotFound, http.StatusNotFound},
		{service.ErrSurveyNotDeletable, http.StatusConflict},
		{service.ErrBookingNotFound, http.StatusNotFound},
		{errStore, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		h := NewSurveyHandler(&mockSurveyService{err: tt.err})
		w := serve("DELETE", "/bookings/:id/survey", "/bookings/bk-1/survey", nil, "", h.Delete)
		if w.Code != tt.wantHTTP {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.wantHTTP, w.Code)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// ImportHandler Tests
// ═══════════════════════════════════════════════════════════

const importCSV = "대관일,장소,신청자명 ( 단체명 ),이용시간,이용목적,행사목적\n" +
	"2024-03-13,스튜디오3(메인),홍길동 (알파),10:00~12:00,라이브커머스,신상품 방송\n"

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (io.Reader, string) {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("multipart 생성 실패: %v", err)
		}
		fw.Write([]byte(content))
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()
	return body, mw.FormDataContentType()
}

func TestImportHandler_Preview(t *testing.T) {
	mock := &mockImportService{}
	h := NewImportHandler(mock)

	body, ct := multipartUpload(t, "schedule.csv", importCSV, nil)
	w := serve("POST", "/imports/preview", "/imports/preview", body, ct, h.Preview)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if len(mock.candidates) != 1 {
		t.Fatalf("후보 수: %d", len(mock.candidates))
	}
	got := mock.candidates[0]
	if got.Company != "알파" || got.Studio != "스튜디오 메인" || got.Start != 10 || got.End != 12 {
		t.Errorf("파싱 결과: %+v", got)
	}
}

func TestImportHandler_Preview_Errors(t *testing.T) {
	h := NewImportHandler(&mockImportService{})

	body, ct := multipartUpload(t, "", "", nil)
	if w := serve("POST", "/imports/preview", "/imports/preview", body, ct, h.Preview); w.Code != http.StatusBadRequest {
		t.Errorf("파일 없음: expected 400, got %d", w.Code)
	}

	body, ct = multipartUpload(t, "schedule.pdf", "%PDF", nil)
	w := serve("POST", "/imports/preview", "/imports/preview", body, ct, h.Preview)
	if resp := parseResponse(w); w.Code != http.StatusBadRequest || resp.Code != 13001 {
		t.Errorf("형식 오류: %d / %d", w.Code, resp.Code)
	}

	body, ct = multipartUpload(t, "schedule.csv", "대관일,장소\n", nil)
	w = serve("POST", "/imports/preview", "/imports/preview", body, ct, h.Preview)
	if resp := parseResponse(w); resp.Code != 13002 {
		t.Errorf("데이터 없음: expected 13002, got %d", resp.Code)
	}

	body, ct = multipartUpload(t, "schedule.json", "{not json", nil)
	w = serve("POST", "/imports/preview", "/imports/preview", body, ct, h.Preview)
	if resp := parseResponse(w); resp.Code != 13004 || resp.Details == "" {
		t.Errorf("해석 실패: expected 13004 with details, got %d %q", resp.Code, resp.Details)
	}
}

func TestImportHandler_Import_Resolution(t *testing.T) {
	mock := &mockImportService{}
	h := NewImportHandler(mock)

	resolution := `{"decisions":{"0":{"action":"merge","apply_to_all":true}},"allow_survey_discard":true,"commit":true}`
	body, ct := multipartUpload(t, "schedule.csv", importCSV, map[string]string{"resolution": resolution})
	w := serve("POST", "/imports", "/imports", body, ct, h.Import)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	resolver, ok := mock.resolver.(*service.ScriptedResolver)
	if !ok {
		t.Fatalf("resolver 타입: %T", mock.resolver)
	}
	d := resolver.Decisions[0]
	if d.Action != service.ActionMerge || !d.ApplyToAll || !resolver.AllowSurveyDiscard || !resolver.Commit {
		t.Errorf("결정 전달: %+v", resolver)
	}

	// 결정이 없는 충돌은 건너뛰기
	skip, _ := resolver.ResolveConflict(context.Background(), service.ImportConflict{Index: 3})
	if skip.Action != service.ActionSkip {
		t.Errorf("기본 결정: %s", skip.Action)
	}
}

func TestImportHandler_Import_DecisionKey(t *testing.T) {
	mock := &mockImportService{}
	h := NewImportHandler(mock)

	resolution := `{"decisions":{"0":{"action":"overwrite","key":"2024-03-14|스튜디오 메인|10"}},"commit":true}`
	body, ct := multipartUpload(t, "schedule.csv", importCSV, map[string]string{"resolution": resolution})
	if w := serve("POST", "/imports", "/imports", body, ct, h.Import); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	resolver := mock.resolver.(*service.ScriptedResolver)

	same := service.ImportConflict{Index: 0, Key: "2024-03-14|스튜디오 메인|10"}
	if d, err := resolver.ResolveConflict(context.Background(), same); err != nil || d.Action != service.ActionOverwrite {
		t.Errorf("키 일치: %+v %v", d, err)
	}

	// 미리보기 이후 0번 충돌이 다른 예약으로 바뀜
	moved := service.ImportConflict{Index: 0, Key: "2024-03-14|스튜디오 메인|13"}
	if _, err := resolver.ResolveConflict(context.Background(), moved); !errors.Is(err, service.ErrImportStale) {
		t.Errorf("키 불일치는 ErrImportStale: %v", err)
	}
}

func TestImportHandler_Import_Stale(t *testing.T) {
	stale := fmt.Errorf("%w: %w", service.ErrImportAborted, service.ErrImportStale)
	h := NewImportHandler(&mockImportService{err: stale})

	body, ct := multipartUpload(t, "schedule.csv", importCSV, map[string]string{"resolution": `{"commit":true}`})
	w := serve("POST", "/imports", "/imports", body, ct, h.Import)
	resp := parseResponse(w)
	if w.Code != http.StatusConflict || resp.Code != 13005 {
		t.Errorf("expected 409/13005, got %d/%d", w.Code, resp.Code)
	}
}

func TestImportHandler_Import_BadResolution(t *testing.T) {
	h := NewImportHandler(&mockImportService{})

	for _, resolution := range []string{`{"decisions":`, `{"default":"replace"}`} {
		body, ct := multipartUpload(t, "schedule.csv", importCSV, map[string]string{"resolution": resolution})
		if w := serve("POST", "/imports", "/imports", body, ct, h.Import); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", resolution, w.Code)
		}
	}
}

func TestImportHandler_Import_CommitFailed(t *testing.T) {
	h := NewImportHandler(&mockImportService{err: fmt.Errorf("%w: %v", service.ErrImportCommitFailed, errStore)})

	body, ct := multipartUpload(t, "schedule.csv", importCSV, map[string]string{"resolution": `{"commit":true}`})
	w := serve("POST", "/imports", "/imports", body, ct, h.Import)
	resp := parseResponse(w)
	if w.Code != http.StatusInternalServerError || resp.Message != service.ErrImportCommitFailed.Error() {
		t.Errorf("반영 실패: %d %q", w.Code, resp.Message)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportJSON(t *testing.T) {
	h := NewExportHandler(&mockExportService{buf: bytes.NewBufferString("[]"), filename: "slive_schedule_2024-03-13.json"})

	w := serve("GET", "/exports/json", "/exports/json?search=a", nil, "", h.ExportJSON)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "slive_schedule_2024-03-13.json") {
		t.Errorf("Content-Disposition: %s", cd)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type: %s", ct)
	}
}

func TestExportHandler_Empty(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportEmpty})

	w := serve("GET", "/exports/xlsx", "/exports/xlsx", nil, "", h.ExportXLSX)
	resp := parseResponse(w)
	if w.Code != http.StatusBadRequest || resp.Code != 16101 {
		t.Errorf("빈 결과: %d / %d", w.Code, resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// StatisticsHandler / CalendarHandler Tests
// ═══════════════════════════════════════════════════════════

func TestStatisticsHandler_Monthly_InvalidMonth(t *testing.T) {
	h := NewStatisticsHandler(&mockStatisticsService{err: service.ErrInvalidMonth})

	w := serve("GET", "/statistics/monthly", "/statistics/monthly?month=2024-13", nil, "", h.Monthly)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestStatisticsHandler_Trend(t *testing.T) {
	mock := &mockStatisticsService{}
	h := NewStatisticsHandler(mock)

	if w := serve("GET", "/statistics/trend", "/statistics/trend?year=2024", nil, "", h.Trend); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.lastYear != 2024 {
		t.Errorf("연도 전달: %d", mock.lastYear)
	}
	if w := serve("GET", "/statistics/trend", "/statistics/trend?year=99", nil, "", h.Trend); w.Code != http.StatusBadRequest {
		t.Errorf("범위 밖 연도: expected 400, got %d", w.Code)
	}
}

func TestCalendarHandler_Day_InvalidDate(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{err: service.ErrInvalidDate})

	w := serve("GET", "/calendar/days/:date", "/calendar/days/13-03", nil, "", h.Day)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalendarHandler_Feed(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	w := serve("GET", "/calendar/feed.ics", "/calendar/feed.ics", nil, "", h.Feed)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type: %s", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("본문: %q", w.Body.String())
	}
}
