package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
)

func newImportCmd() *cobra.Command {
	var (
		dryRun  bool
		yes     bool
		onConfl string
		discard bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "JSON/CSV/XLS/XLSX 파일의 예약 가져오기",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			candidates, err := service.ParseImportFile(args[0], f)
			if err != nil {
				return err
			}

			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()
			out := cmd.OutOrStdout()

			if dryRun {
				preview, err := e.svc.Import.Preview(cmd.Context(), candidates)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "후보 %d건: 신규 %d건, 충돌 %d건, 시간 겹침 %d건\n",
					len(preview.Candidates), preview.NewCount, len(preview.Conflicts), len(preview.Overlaps))
				for _, c := range preview.Conflicts {
					fmt.Fprintf(out, "  [%d] 기존 %s / 신규 %s\n", c.Index+1, describe(c.Existing), describe(c.Candidate))
				}
				for _, b := range preview.Overlaps {
					fmt.Fprintf(out, "  [겹침] %s\n", describe(b))
				}
				return nil
			}

			var resolver service.ConflictResolver = newTerminalResolver(cmd.InOrStdin(), out)
			if yes {
				action, ok := service.ParseConflictAction(onConfl)
				if !ok {
					return fmt.Errorf("--on-conflict 값은 overwrite, merge, skip 중 하나여야 합니다: %q", onConfl)
				}
				resolver = &service.ScriptedResolver{Default: action, AllowSurveyDiscard: discard, Commit: true}
			}

			result, err := e.svc.Import.Import(cmd.Context(), candidates, resolver)
			if err != nil {
				return err
			}

			switch result.Outcome {
			case service.OutcomeNothingToApply:
				fmt.Fprintln(out, "반영할 변경 사항이 없습니다.")
			case service.OutcomeCancelled:
				fmt.Fprintln(out, "가져오기를 취소했습니다.")
			default:
				fmt.Fprintf(out, "가져오기 완료: 추가 %d건, 업데이트 %d건, 건너뜀 %d건, 시간 겹침 제외 %d건\n",
					result.Summary.Added, result.Summary.Updated, result.Summary.Skipped, result.Summary.Overlapping)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "저장하지 않고 충돌만 확인")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "묻지 않고 --on-conflict 방식으로 반영")
	cmd.Flags().StringVar(&onConfl, "on-conflict", string(service.ActionSkip), "--yes 일 때 충돌 처리 (overwrite|merge|skip)")
	cmd.Flags().BoolVar(&discard, "discard-surveys", false, "--yes 로 덮어쓸 때 완료된 설문 삭제 허용")
	return cmd
}
