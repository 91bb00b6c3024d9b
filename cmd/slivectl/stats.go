package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "이용 통계",
	}
	cmd.AddCommand(newMonthlyCmd(), newTrendCmd())
	return cmd
}

func newMonthlyCmd() *cobra.Command {
	var (
		q      dto.StatisticsQuery
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "월간 이용률·업체 순위·만족도",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			report, err := e.svc.Statistics.MonthlyReport(cmd.Context(), &q)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printMonthly(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Month, "month", "m", "", "조회 월 YYYY-MM (기본: 이번 달)")
	cmd.Flags().IntVar(&q.Top, "top", 0, "업체 순위 개수 (기본 10)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON 으로 출력")
	return cmd
}

func newTrendCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "연간 월별 이용 추이",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			trend, err := e.svc.Statistics.UsageTrend(cmd.Context(), year)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), trend)
		},
	}
	cmd.Flags().IntVarP(&year, "year", "y", 0, "조회 연도 (기본: 올해)")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printMonthly(w io.Writer, r *dto.MonthlyReport) {
	fmt.Fprintf(w, "%s (%s) 영업일 %d일, 공휴일 출처 %s\n\n", r.Month, r.Period, r.BusinessDays, r.HolidaySource)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "구분\t운영일\t이용일\t이용률\t예약 수")
	for _, u := range r.Usage {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s%%\t%d\n", u.Category, u.OperatingDays, u.UsageDays, u.UsageRate, u.TotalBookings)
	}
	tw.Flush()

	fmt.Fprintln(w, "\n업체 순위")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range r.TopCompanies {
		rank := ""
		if c.Rank > 0 {
			rank = fmt.Sprintf("%d", c.Rank)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d건\n", rank, c.Company, c.Purpose, c.Count)
	}
	tw.Flush()

	lc := r.LiveCommerce
	fmt.Fprintf(w, "\n라이브커머스 %d회: 시청자 %s, 매출 %s, 1인당 %s\n", lc.Sessions, lc.ViewersLabel, lc.RevenueLabel, lc.AvgRevenueText)

	fmt.Fprintln(w, "\n만족도")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range r.Satisfaction {
		fmt.Fprintf(tw, "%s\t%s\t(%d명)\n", s.Label, s.Average, s.Responses)
	}
	tw.Flush()
}
