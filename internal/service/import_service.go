package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/repository"
)

// ════════════════════════════════════════════════════════════
// 가져오기 충돌 해결
// ════════════════════════════════════════════════════════════

var (
	ErrImportCommitFailed = errors.New("데이터 저장 중 오류가 발생했습니다")
	ErrImportAborted      = errors.New("가져오기가 중단되었습니다")
	ErrImportStale        = errors.New("충돌 목록이 미리보기 이후 바뀌었습니다. 다시 미리보기 해주세요")
)

// ConflictAction 충돌 처리 방식
type ConflictAction string

const (
	ActionOverwrite ConflictAction = "overwrite" // 후보로 교체, 설문 삭제
	ActionMerge     ConflictAction = "merge"     // 후보로 교체, 기존 설문 유지
	ActionSkip      ConflictAction = "skip"      // 기존 예약 유지
)

// ParseConflictAction 문자열 → 처리 방식, 모르는 값은 false
func ParseConflictAction(s string) (ConflictAction, bool) {
	switch ConflictAction(s) {
	case ActionOverwrite, ActionMerge, ActionSkip:
		return ConflictAction(s), true
	}
	return "", false
}

// ImportConflict 날짜·스튜디오·시작 시간이 같은 기존 예약과 후보
type ImportConflict struct {
	Index     int           `json:"index"` // 발견 순서
	Key       string        `json:"key"`   // 충돌 판정 키, 결정과 함께 되돌려 받는다
	Existing  model.Booking `json:"existing"`
	Candidate model.Booking `json:"candidate"`
}

// ConflictDecision 한 충돌에 대한 결정
type ConflictDecision struct {
	Action     ConflictAction `json:"action"`
	ApplyToAll bool           `json:"apply_to_all"`  // 남은 충돌에 같은 방식 적용
	Key        string         `json:"key,omitempty"` // 있으면 같은 번호 충돌의 키와 일치해야 한다
}

// ImportSummary 반영 전 요약
type ImportSummary struct {
	Added       int `json:"added"`
	Updated     int `json:"updated"`
	Skipped     int `json:"skipped"`
	Overlapping int `json:"overlapping"` // 다른 예약과 시간이 겹쳐 제외됨
}

// ConflictResolver 가져오기 중 사용자 판단을 묻는 창구
// 한 번에 하나의 질문만 하며 응답을 받은 뒤 다음으로 진행한다
type ConflictResolver interface {
	ResolveConflict(ctx context.Context, c ImportConflict) (ConflictDecision, error)
	// ConfirmSurveyDiscard 완료된 설문이 있는 예약을 덮어쓸 때 재확인
	ConfirmSurveyDiscard(ctx context.Context, c ImportConflict) (bool, error)
	ConfirmCommit(ctx context.Context, s ImportSummary) (bool, error)
}

// ImportOutcome 가져오기 결과 종류
type ImportOutcome string

const (
	OutcomeCommitted      ImportOutcome = "committed"
	OutcomeNothingToApply ImportOutcome = "nothing_to_apply"
	OutcomeCancelled      ImportOutcome = "cancelled"
)

// ConflictResolution 충돌별 처리 기록
type ConflictResolution struct {
	Index   int            `json:"index"`
	Action  ConflictAction `json:"action"`
	Applied bool           `json:"applied"` // false 면 건너뜀
	Auto    bool           `json:"auto"`    // 일괄 적용으로 처리됨
	Overlap bool           `json:"overlap"` // 교체할 값이 다른 예약과 겹쳐 미적용
}

// ImportResult 가져오기 결과
type ImportResult struct {
	Outcome     ImportOutcome        `json:"outcome"`
	Summary     ImportSummary        `json:"summary"`
	Resolutions []ConflictResolution `json:"resolutions"`
	Overlaps    []model.Booking      `json:"overlaps"` // 겹쳐서 추가하지 않은 후보
}

// ImportPreview 쓰기 없이 충돌만 확인한 결과
type ImportPreview struct {
	Candidates []model.Booking  `json:"candidates"`
	Conflicts  []ImportConflict `json:"conflicts"`
	Overlaps   []model.Booking  `json:"overlaps"`
	NewCount   int              `json:"new_count"`
}

// ImportService 예약 가져오기
type ImportService interface {
	Preview(ctx context.Context, candidates []model.Booking) (*ImportPreview, error)
	Import(ctx context.Context, candidates []model.Booking, resolver ConflictResolver) (*ImportResult, error)
}

type importService struct {
	repo     *repository.Repository
	notifier ChangeNotifier
	logger   *zap.Logger
}

// NewImportService ImportService 생성
func NewImportService(repo *repository.Repository, notifier ChangeNotifier, logger *zap.Logger) ImportService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &importService{repo: repo, notifier: notifier, logger: logger}
}

// importPlan 현재 예약과 대조한 결과
type importPlan struct {
	current   []model.Booking
	adds      []model.Booking
	overlaps  []model.Booking // 충돌은 아니지만 시간이 겹치는 후보
	conflicts []ImportConflict
}

// overlapsAny list 중 b 와 시간이 겹치는 예약이 있는지 (같은 ID 는 제외)
func overlapsAny(b *model.Booking, list []model.Booking) bool {
	for i := range list {
		if b.ID != "" && list[i].ID == b.ID {
			continue
		}
		if b.Overlaps(&list[i]) {
			return true
		}
	}
	return false
}

// detect 현재 예약과 대조해 신규 목록과 충돌 큐를 만든다
// 충돌이 아닌 후보가 기존 예약이나 앞선 신규 후보와 겹치면 제외한다
func (s *importService) detect(ctx context.Context, candidates []model.Booking) (*importPlan, error) {
	from, to := candidates[0].Date, candidates[0].Date
	for i := range candidates {
		if candidates[i].Date < from {
			from = candidates[i].Date
		}
		if candidates[i].Date > to {
			to = candidates[i].Date
		}
	}

	current, err := s.repo.Booking.ListByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("가져오기 대조용 예약 조회 실패", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return nil, err
	}

	// 키가 같은 기존 예약이 여럿이면 먼저 나온 것
	index := make(map[string]*model.Booking, len(current))
	for i := range current {
		key := current[i].CollisionKey()
		if _, ok := index[key]; !ok {
			index[key] = &current[i]
		}
	}

	plan := &importPlan{
		current:   current,
		adds:      make([]model.Booking, 0, len(candidates)),
		overlaps:  make([]model.Booking, 0),
		conflicts: make([]ImportConflict, 0),
	}
	for i := range candidates {
		c := candidates[i]
		c.ID = ""
		key := c.CollisionKey()
		if existing, ok := index[key]; ok {
			plan.conflicts = append(plan.conflicts, ImportConflict{
				Index:     len(plan.conflicts),
				Key:       key,
				Existing:  *existing,
				Candidate: c,
			})
			continue
		}
		if overlapsAny(&c, current) || overlapsAny(&c, plan.adds) {
			plan.overlaps = append(plan.overlaps, c)
			continue
		}
		plan.adds = append(plan.adds, c)
	}
	if len(plan.overlaps) > 0 {
		s.logger.Warn("시간이 겹치는 가져오기 후보 제외", zap.Int("count", len(plan.overlaps)))
	}
	return plan, nil
}

func (s *importService) Preview(ctx context.Context, candidates []model.Booking) (*ImportPreview, error) {
	if len(candidates) == 0 {
		return nil, ErrImportNoData
	}
	plan, err := s.detect(ctx, candidates)
	if err != nil {
		return nil, err
	}
	return &ImportPreview{
		Candidates: candidates,
		Conflicts:  plan.conflicts,
		Overlaps:   plan.overlaps,
		NewCount:   len(plan.adds),
	}, nil
}

func (s *importService) Import(ctx context.Context, candidates []model.Booking, resolver ConflictResolver) (*ImportResult, error) {
	if len(candidates) == 0 {
		return nil, ErrImportNoData
	}

	plan, err := s.detect(ctx, candidates)
	if err != nil {
		return nil, err
	}
	adds, queue := plan.adds, plan.conflicts

	result := &ImportResult{
		Resolutions: make([]ConflictResolution, 0, len(queue)),
		Overlaps:    plan.overlaps,
	}
	replacements := make([]model.Booking, 0, len(queue))
	skipped, overlapping := 0, len(plan.overlaps)

	// 교체가 반영된 뒤의 예약 상태, 교체 값의 겹침 판정에 쓴다
	occupied := append([]model.Booking(nil), plan.current...)
	position := make(map[string]int, len(occupied))
	for i := range occupied {
		position[occupied[i].ID] = i
	}
	fits := func(rep *model.Booking) bool {
		return !overlapsAny(rep, occupied) && !overlapsAny(rep, adds)
	}
	accept := func(rep model.Booking) {
		replacements = append(replacements, rep)
		if i, ok := position[rep.ID]; ok {
			occupied[i] = rep
		}
	}

	// 충돌은 발견 순서대로 하나씩 처리
	var applyAll ConflictAction
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		res := ConflictResolution{Index: c.Index}
		action := applyAll
		if action != "" {
			res.Auto = true
		} else {
			decision, err := resolver.ResolveConflict(ctx, c)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrImportAborted, err)
			}
			var ok bool
			if action, ok = ParseConflictAction(string(decision.Action)); !ok {
				action = ActionSkip
			}
			if decision.ApplyToAll {
				applyAll = action
			}
		}
		res.Action = action

		if action == ActionSkip {
			skipped++
			result.Resolutions = append(result.Resolutions, res)
			continue
		}

		rep := c.Candidate
		rep.ID = c.Existing.ID
		rep.CreatedAt = c.Existing.CreatedAt
		if !fits(&rep) {
			overlapping++
			res.Overlap = true
			result.Resolutions = append(result.Resolutions, res)
			continue
		}

		if action == ActionOverwrite && c.Existing.SurveyCompleted() {
			confirmed, err := resolver.ConfirmSurveyDiscard(ctx, c)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrImportAborted, err)
			}
			if !confirmed {
				skipped++
				result.Resolutions = append(result.Resolutions, res)
				continue
			}
		}
		if action == ActionMerge {
			rep.Survey = c.Existing.Survey
		}
		accept(rep)
		res.Applied = true
		result.Resolutions = append(result.Resolutions, res)
	}

	result.Summary = ImportSummary{
		Added:       len(adds),
		Updated:     len(replacements),
		Skipped:     skipped,
		Overlapping: overlapping,
	}

	if len(adds) == 0 && len(replacements) == 0 {
		result.Outcome = OutcomeNothingToApply
		return result, nil
	}

	confirmed, err := resolver.ConfirmCommit(ctx, result.Summary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportAborted, err)
	}
	if !confirmed {
		result.Outcome = OutcomeCancelled
		return result, nil
	}

	if err := s.repo.Booking.CommitImport(ctx, adds, replacements); err != nil {
		s.logger.Error("가져오기 일괄 저장 실패",
			zap.Int("added", len(adds)),
			zap.Int("updated", len(replacements)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrImportCommitFailed, err)
	}

	s.logger.Info("가져오기 완료",
		zap.Int("added", result.Summary.Added),
		zap.Int("updated", result.Summary.Updated),
		zap.Int("skipped", result.Summary.Skipped),
		zap.Int("overlapping", result.Summary.Overlapping),
	)
	s.notifier.NotifyChanged()
	result.Outcome = OutcomeCommitted
	return result, nil
}

// ── 미리 정한 결정으로 응답하는 Resolver ──

// ScriptedResolver 충돌 번호별 결정을 미리 받아 두고 순서대로 응답한다
// 결정이 없는 충돌은 Default, Default 도 없으면 건너뛴다
// 결정에 Key 가 있으면 미리보기 이후 충돌 목록이 바뀌지 않았는지 확인한다
type ScriptedResolver struct {
	Decisions          map[int]ConflictDecision
	Default            ConflictAction
	AllowSurveyDiscard bool
	Commit             bool
}

func (r *ScriptedResolver) ResolveConflict(_ context.Context, c ImportConflict) (ConflictDecision, error) {
	if d, ok := r.Decisions[c.Index]; ok {
		if d.Key != "" && d.Key != c.Key {
			return ConflictDecision{}, fmt.Errorf("%w: #%d %s → %s", ErrImportStale, c.Index, d.Key, c.Key)
		}
		return d, nil
	}
	if r.Default != "" {
		return ConflictDecision{Action: r.Default}, nil
	}
	return ConflictDecision{Action: ActionSkip}, nil
}

func (r *ScriptedResolver) ConfirmSurveyDiscard(_ context.Context, _ ImportConflict) (bool, error) {
	return r.AllowSurveyDiscard, nil
}

func (r *ScriptedResolver) ConfirmCommit(_ context.Context, _ ImportSummary) (bool, error) {
	return r.Commit, nil
}
