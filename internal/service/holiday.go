package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/config"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
)

// ════════════════════════════════════════════════════════════
// 공휴일 조회 (공공데이터포털 특일 정보)
// ════════════════════════════════════════════════════════════

// HolidaySource 공휴일 목록 출처
type HolidaySource string

const (
	HolidaySourceAPI      HolidaySource = "api"
	HolidaySourceCache    HolidaySource = "cache"
	HolidaySourceFallback HolidaySource = "fallback"
	HolidaySourceNone     HolidaySource = "none" // 주말만 제외
)

// HolidaySet YYYY-MM-DD 집합
type HolidaySet map[string]struct{}

// Has 공휴일 여부
func (h HolidaySet) Has(date string) bool {
	_, ok := h[date]
	return ok
}

// Sorted 정렬된 날짜 목록
func (h HolidaySet) Sorted() []string {
	list := make([]string, 0, len(h))
	for d := range h {
		list = append(list, d)
	}
	sort.Strings(list)
	return list
}

// HolidayProvider 월별 공휴일 조회
type HolidayProvider interface {
	Holidays(ctx context.Context, year int, month time.Month) (HolidaySet, HolidaySource, error)
}

// HolidayCache 조회 결과 캐시 (Redis)
type HolidayCache interface {
	GetCache(ctx context.Context, key string) (string, error)
	SetCache(ctx context.Context, key, value string, ttl time.Duration) error
}

// fixedHolidays 양력 고정 공휴일 (API 실패 시 대체)
var fixedHolidays = map[time.Month][]int{
	time.January:  {1},     // 신정
	time.March:    {1},     // 삼일절
	time.May:      {5},     // 어린이날
	time.June:     {6},     // 현충일
	time.August:   {15},    // 광복절
	time.October:  {3, 9},  // 개천절, 한글날
	time.December: {25},    // 성탄절
}

// FallbackHolidays 고정 공휴일만으로 만든 목록
func FallbackHolidays(year int, month time.Month) HolidaySet {
	set := make(HolidaySet)
	for _, day := range fixedHolidays[month] {
		set[fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)] = struct{}{}
	}
	return set
}

type holidayClient struct {
	cfg    *config.HolidayConfig
	http   *http.Client
	cache  HolidayCache
	logger *zap.Logger
}

// NewHolidayClient 공휴일 API 클라이언트, cache 는 nil 가능
func NewHolidayClient(cfg *config.HolidayConfig, cache HolidayCache, logger *zap.Logger) HolidayProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &holidayClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		cache:  cache,
		logger: logger,
	}
}

func holidayCacheKey(year int, month time.Month) string {
	return fmt.Sprintf("holiday:%04d-%02d", year, int(month))
}

// Holidays API → 실패 시 고정 공휴일. 오류는 입력이 잘못된 경우에만 반환한다
func (c *holidayClient) Holidays(ctx context.Context, year int, month time.Month) (HolidaySet, HolidaySource, error) {
	if month < time.January || month > time.December {
		return nil, HolidaySourceNone, fmt.Errorf("잘못된 월: %d", month)
	}

	key := holidayCacheKey(year, month)
	if c.cache != nil {
		if raw, err := c.cache.GetCache(ctx, key); err == nil {
			var dates []string
			if err := json.Unmarshal([]byte(raw), &dates); err == nil {
				return toHolidaySet(dates), HolidaySourceCache, nil
			}
		}
	}

	if c.cfg.ServiceKey == "" {
		return FallbackHolidays(year, month), HolidaySourceFallback, nil
	}

	set, err := c.fetch(ctx, year, month)
	if err != nil {
		c.logger.Warn("공휴일 API 조회 실패, 고정 공휴일로 대체",
			zap.Int("year", year),
			zap.Int("month", int(month)),
			zap.Error(err),
		)
		return FallbackHolidays(year, month), HolidaySourceFallback, nil
	}

	if c.cache != nil {
		if data, err := json.Marshal(set.Sorted()); err == nil {
			if err := c.cache.SetCache(ctx, key, string(data), c.cfg.CacheTTL); err != nil {
				c.logger.Debug("공휴일 캐시 저장 실패", zap.Error(err))
			}
		}
	}
	return set, HolidaySourceAPI, nil
}

func toHolidaySet(dates []string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

// requestURL 발급 키는 이미 URL 인코딩된 형태로 배포되므로 다시 인코딩하지 않는다
func (c *holidayClient) requestURL(year int, month time.Month) string {
	key := c.cfg.ServiceKey
	if !strings.Contains(key, "%") {
		key = url.QueryEscape(key)
	}
	return fmt.Sprintf("%s?serviceKey=%s&solYear=%04d&solMonth=%02d&_type=json&numOfRows=50",
		c.cfg.APIURL, key, year, int(month))
}

func (c *holidayClient) fetch(ctx context.Context, year int, month time.Month) (HolidaySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(year, month), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP 상태 %d", resp.StatusCode)
	}

	var body holidayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("응답 해석 실패: %w", err)
	}

	set := make(HolidaySet)
	for _, item := range body.Response.Body.Items {
		date, err := locdateToDate(item.Locdate.String())
		if err != nil {
			continue
		}
		set[date] = struct{}{}
	}
	return set, nil
}

// locdateToDate 20240101 → 2024-01-01
func locdateToDate(locdate string) (string, error) {
	t, err := time.ParseInLocation("20060102", locdate, model.KST)
	if err != nil {
		return "", err
	}
	return t.Format(model.DateLayout), nil
}

// ── 응답 형식 ──

type holidayResponse struct {
	Response struct {
		Body struct {
			Items holidayItems `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

type holidayItem struct {
	Locdate   json.Number `json:"locdate"`
	DateName  string      `json:"dateName"`
	IsHoliday string      `json:"isHoliday"`
}

// holidayItems 결과가 없으면 "", 하나면 객체, 여럿이면 배열로 온다
type holidayItems []holidayItem

func (h *holidayItems) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == '"' || bytes.Equal(data, []byte("null")) {
		*h = nil
		return nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	raw := bytes.TrimSpace(wrapper.Item)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*h = nil
		return nil
	}

	if raw[0] == '[' {
		var list []holidayItem
		if err := json.Unmarshal(raw, &list); err != nil {
			return err
		}
		*h = list
		return nil
	}

	var single holidayItem
	if err := json.Unmarshal(raw, &single); err != nil {
		return err
	}
	*h = holidayItems{single}
	return nil
}
