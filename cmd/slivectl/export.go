package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		outDir string
		q      dto.BookingQuery
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "필터 조건에 맞는 예약을 JSON 또는 XLSX 로 내보내기",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			var export func(context.Context, *dto.BookingQuery) (*bytes.Buffer, string, error)
			switch format {
			case "json":
				export = e.svc.Export.ExportJSON
			case "xlsx":
				export = e.svc.Export.ExportXLSX
			default:
				return fmt.Errorf("--format 값은 json 또는 xlsx 여야 합니다: %q", format)
			}

			buf, filename, err := export(cmd.Context(), &q)
			if err != nil {
				return err
			}

			path := filepath.Join(outDir, filename)
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "출력 형식 (json|xlsx)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "저장 폴더")
	cmd.Flags().StringVar(&q.From, "from", "", "시작일 YYYY-MM-DD")
	cmd.Flags().StringVar(&q.To, "to", "", "종료일 YYYY-MM-DD")
	cmd.Flags().StringVar(&q.Date, "date", "", "단일 날짜 YYYY-MM-DD")
	cmd.Flags().StringVar(&q.Search, "search", "", "업체명/제품명 검색")
	cmd.Flags().StringVar(&q.Studio, "studio", "", "스튜디오")
	cmd.Flags().StringVar(&q.Status, "status", "", "upcoming|active|completed")
	cmd.Flags().StringVar(&q.Survey, "survey", "", "completed|pending")
	return cmd
}
