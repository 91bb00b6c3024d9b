package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
)

// ════════════════════════════════════════════════════════════
// 가져오기 파일 파싱
// ════════════════════════════════════════════════════════════

const maxImportRows = 5000

var (
	ErrImportUnsupportedFormat = errors.New("지원하지 않는 파일 형식입니다")
	ErrImportNoData            = errors.New("파일에서 가져올 유효한 데이터가 없습니다")
	ErrImportTooManyRows       = fmt.Errorf("데이터 행 수가 최대 %d 행을 넘었습니다", maxImportRows)
	ErrImportParse             = errors.New("파일을 해석할 수 없습니다")
)

// 대관 신청 양식의 열 이름
const (
	colCompany = "신청자명 ( 단체명 )"
	colTime    = "이용시간"
	colStudio  = "장소"
	colDate    = "대관일"
	colPurpose = "이용목적"
	colProduct = "행사목적"
)

// ImportColumns 표 형식 가져오기/내보내기 열 순서
var ImportColumns = []string{colDate, colStudio, colCompany, colTime, colPurpose, colProduct}

// studioAliases 신청 양식의 장소 표기 → 스튜디오 이름
var studioAliases = []struct{ raw, name string }{
	{"스튜디오3(메인)", "스튜디오 메인"},
	{"스튜디오2(주방)", "스튜디오 키친"},
	{"스튜디오1(소형)", "스튜디오 소형"},
}

// StudioAlias 스튜디오 이름의 신청 양식 표기, 없으면 이름 그대로
func StudioAlias(name string) string {
	for _, a := range studioAliases {
		if a.name == name {
			return a.raw
		}
	}
	return name
}

var (
	parenPattern = regexp.MustCompile(`\(([^)]+)\)`)
	isoDateRe    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	leadingInt   = regexp.MustCompile(`^\s*(\d+)`)
)

// importRow 표 형식 한 행이 예약 후보가 되기 위한 최소 조건
// 신청 양식에서 0 은 시간 칸을 해석하지 못했다는 뜻이다
type importRow struct {
	Date    string `validate:"required"`
	Company string `validate:"required"`
	Studio  string `validate:"required"`
	Start   int    `validate:"required"`
	End     int    `validate:"required"`
}

// jsonRow JSON 은 내보낸 값 그대로이므로 0시 시작을 허용한다
type jsonRow struct {
	Date    string `validate:"required"`
	Company string `validate:"required"`
	Studio  string `validate:"required"`
}

var rowValidator = validator.New()

// keepRow 필수 값이 있고 날짜·시간 범위가 올바른 행만 남긴다
func keepRow(b *model.Booking, row interface{}) bool {
	if rowValidator.Struct(row) != nil {
		return false
	}
	return b.ValidateSchedule() == nil
}

func keepTabularRow(b *model.Booking) bool {
	return keepRow(b, importRow{
		Date:    b.Date,
		Company: b.Company,
		Studio:  b.Studio,
		Start:   b.Start,
		End:     b.End,
	})
}

func keepJSONRow(b *model.Booking) bool {
	return keepRow(b, jsonRow{
		Date:    b.Date,
		Company: b.Company,
		Studio:  b.Studio,
	})
}

// ParseImportFile 확장자에 따라 JSON/CSV/XLS/XLSX 를 예약 후보 목록으로 변환
// 필수 값이 빠졌거나 날짜·시간 범위가 잘못된 행은 조용히 버린다
func ParseImportFile(name string, reader io.Reader) ([]model.Booking, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")

	var (
		candidates []model.Booking
		err        error
	)
	switch ext {
	case "json":
		candidates, err = parseJSONImport(reader)
	case "csv":
		candidates, err = parseTabular(reader, readCSVRows)
	case "xlsx":
		candidates, err = parseTabular(reader, readXLSXRows)
	case "xls":
		candidates, err = parseTabular(reader, readXLSRows)
	default:
		return nil, ErrImportUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrImportNoData
	}
	if len(candidates) > maxImportRows {
		return nil, ErrImportTooManyRows
	}
	return candidates, nil
}

// ── JSON ──

func parseJSONImport(reader io.Reader) ([]model.Booking, error) {
	var raw []model.Booking
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w (JSON): %v", ErrImportParse, err)
	}

	result := make([]model.Booking, 0, len(raw))
	for i := range raw {
		b := raw[i]
		b.ID = "" // 파일의 ID 는 신뢰하지 않는다
		if !keepJSONRow(&b) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

// ── 표 형식 ──

type rowReader func(data []byte) ([][]string, error)

func parseTabular(reader io.Reader, read rowReader) ([]model.Booking, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportParse, err)
	}
	rows, err := read(data)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrImportNoData
	}

	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[strings.TrimSpace(h)] = i
	}
	cell := func(row []string, col string) string {
		i, ok := header[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := make([]model.Booking, 0, len(rows)-1)
	for _, row := range rows[1:] {
		b := mapImportRow(func(col string) string { return cell(row, col) })
		if !keepTabularRow(&b) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

// mapImportRow 신청 양식 한 행을 예약 후보로 변환
func mapImportRow(get func(col string) string) model.Booking {
	start, end := parseTimeRange(get(colTime))
	purpose := get(colPurpose)
	if purpose == "" {
		purpose = model.PurposeGeneral
	}
	return model.Booking{
		Company: extractCompany(get(colCompany)),
		Date:    parseImportDate(get(colDate)),
		Start:   start,
		End:     end,
		Studio:  NormalizeStudio(get(colStudio)),
		Purpose: purpose,
		Product: get(colProduct),
	}
}

// extractCompany 괄호 안의 단체명이 있으면 그것을, 없으면 원문
func extractCompany(raw string) string {
	if m := parenPattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

// NormalizeStudio 신청 양식 표기를 스튜디오 이름으로, 모르는 값은 그대로
func NormalizeStudio(raw string) string {
	name := strings.TrimSpace(raw)
	for _, a := range studioAliases {
		if strings.Contains(name, a.raw) {
			return a.name
		}
	}
	return name
}

// parseTimeRange "10:00~12:00" 또는 "10~12" → (10, 12), 해석 불가 값은 0
func parseTimeRange(raw string) (start, end int) {
	parts := strings.Split(raw, "~")
	hour := func(s string) int {
		s = strings.SplitN(s, ":", 2)[0]
		m := leadingInt.FindStringSubmatch(s)
		if m == nil {
			return 0
		}
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if len(parts) > 0 {
		start = hour(parts[0])
	}
	if len(parts) > 1 {
		end = hour(parts[1])
	}
	return start, end
}

// parseImportDate 스프레드시트 일련번호 또는 YYYY-MM-DD 포함 문자열 → 날짜
func parseImportDate(raw string) string {
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 1 {
			return ""
		}
		days := int64(math.Floor(serial - 25569))
		return time.Unix(days*86400, 0).UTC().Format(model.DateLayout)
	}
	return isoDateRe.FindString(raw)
}

// ── 형식별 행 읽기 ──

func readCSVRows(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		// 한글 윈도우에서 저장한 CSV
		src = transform.NewReader(src, korean.EUCKR.NewDecoder())
	}

	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w (CSV): %v", ErrImportParse, err)
	}
	return rows, nil
}

func readXLSXRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w (XLSX): %v", ErrImportParse, err)
	}
	defer f.Close()

	// 날짜 셀은 서식 대신 일련번호로 읽는다
	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w (시트): %v", ErrImportParse, err)
	}
	return rows, nil
}

func readXLSRows(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w (XLS): %v", ErrImportParse, err)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrImportNoData
	}
	return wb.ReadAllCells(maxImportRows + 1), nil
}
