package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/service"
)

// terminalResolver 충돌마다 터미널에서 처리 방식을 묻는다
type terminalResolver struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalResolver(in io.Reader, out io.Writer) *terminalResolver {
	return &terminalResolver{in: bufio.NewReader(in), out: out}
}

func (r *terminalResolver) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *terminalResolver) confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := r.ask(ctx, prompt+" (y/N): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "예":
		return true, nil
	}
	return false, nil
}

func describe(b model.Booking) string {
	return fmt.Sprintf("%s %s %02d-%02d시 %s (%s)", b.Date, b.Studio, b.Start, b.End, b.Company, b.Purpose)
}

func (r *terminalResolver) ResolveConflict(ctx context.Context, c service.ImportConflict) (service.ConflictDecision, error) {
	fmt.Fprintf(r.out, "\n[충돌 %d]\n  기존: %s\n  신규: %s\n", c.Index+1, describe(c.Existing), describe(c.Candidate))
	if c.Existing.SurveyCompleted() {
		fmt.Fprintln(r.out, "  * 기존 예약에 완료된 설문이 있습니다")
	}

	answer, err := r.ask(ctx, "  1) 덮어쓰기  2) 병합(설문 유지)  3) 건너뛰기 > ")
	if err != nil {
		return service.ConflictDecision{}, err
	}
	var action service.ConflictAction
	switch strings.ToLower(answer) {
	case "1", "overwrite":
		action = service.ActionOverwrite
	case "2", "merge":
		action = service.ActionMerge
	case "3", "skip", "":
		action = service.ActionSkip
	default:
		action = service.ConflictAction(answer)
	}

	all, err := r.confirm(ctx, "  남은 충돌에도 같은 방식을 적용할까요?")
	if err != nil {
		return service.ConflictDecision{}, err
	}
	return service.ConflictDecision{Action: action, ApplyToAll: all}, nil
}

func (r *terminalResolver) ConfirmSurveyDiscard(ctx context.Context, c service.ImportConflict) (bool, error) {
	return r.confirm(ctx, fmt.Sprintf("  %s 예약의 완료된 설문이 삭제됩니다. 계속할까요?", c.Existing.Company))
}

func (r *terminalResolver) ConfirmCommit(ctx context.Context, s service.ImportSummary) (bool, error) {
	fmt.Fprintf(r.out, "\n추가 %d건, 업데이트 %d건, 건너뜀 %d건\n", s.Added, s.Updated, s.Skipped)
	if s.Overlapping > 0 {
		fmt.Fprintf(r.out, "다른 예약과 시간이 겹쳐 제외 %d건\n", s.Overlapping)
	}
	return r.confirm(ctx, "반영할까요?")
}
