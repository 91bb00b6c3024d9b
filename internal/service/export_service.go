package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
)

// ── 내보내기 모듈 오류 ──

var (
	ErrExportEmpty        = errors.New("내보낼 데이터가 없습니다. 필터를 확인해주세요")
	ErrExportGenerateFail = errors.New("내보내기 파일 생성 실패")
)

const exportSheetName = "대관 일정"

// ExportService 현재 필터 결과 내보내기
//
//   - JSON: 예약 배열, 저장소 ID 제외, 파일명 slive_schedule_<오늘>.json
//   - XLSX: 가져오기와 같은 열 이름을 쓰므로 그대로 다시 가져올 수 있다
type ExportService interface {
	ExportJSON(ctx context.Context, q *dto.BookingQuery) (*bytes.Buffer, string, error)
	ExportXLSX(ctx context.Context, q *dto.BookingQuery) (*bytes.Buffer, string, error)
}

type exportService struct {
	bookings BookingService
	now      func() time.Time
	logger   *zap.Logger
}

// NewExportService ExportService 생성
func NewExportService(bookings BookingService, logger *zap.Logger) ExportService {
	return &exportService{bookings: bookings, now: time.Now, logger: logger}
}

func (s *exportService) filtered(ctx context.Context, q *dto.BookingQuery) ([]model.Booking, error) {
	list, err := s.bookings.Filtered(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrExportEmpty
	}
	return list, nil
}

// ═══════════════════════════════════════════════════════════
// ExportJSON
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportJSON(ctx context.Context, q *dto.BookingQuery) (*bytes.Buffer, string, error) {
	list, err := s.filtered(ctx, q)
	if err != nil {
		return nil, "", err
	}
	for i := range list {
		list[i].ID = ""
	}

	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		s.logger.Error("JSON 내보내기 실패", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("slive_schedule_%s.json", model.Today(s.now()))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportXLSX
// ═══════════════════════════════════════════════════════════
//
// 열: 대관일 | 장소 | 신청자명 ( 단체명 ) | 이용시간 | 이용목적 | 행사목적
// 장소는 신청 양식 표기로, 이용시간은 "10:00~12:00" 으로 쓴다

func (s *exportService) ExportXLSX(ctx context.Context, q *dto.BookingQuery) (*bytes.Buffer, string, error) {
	list, err := s.filtered(ctx, q)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(exportSheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	widths := []float64{12, 18, 28, 14, 14, 30}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(exportSheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range ImportColumns {
		f.SetCellValue(exportSheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(exportSheetName, "A1", cell(colName(len(ImportColumns)-1), 1), headerStyle)

	row := 2
	for i := range list {
		b := &list[i]
		values := map[string]string{
			colDate:    b.Date,
			colStudio:  StudioAlias(b.Studio),
			colCompany: b.Company,
			colTime:    fmt.Sprintf("%02d:00~%02d:00", b.Start, b.End),
			colPurpose: b.Purpose,
			colProduct: b.Product,
		}
		for c, h := range ImportColumns {
			f.SetCellStr(exportSheetName, cell(colName(c), row), values[h])
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("엑셀 내보내기 실패", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("slive_schedule_%s.xlsx", model.Today(s.now()))
	return buf, filename, nil
}

// ── 보조 함수 ──

// colName 0부터 시작하는 열 번호 → A, B, ...
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
