package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/repository"
	apperrors "github.com/SNS-EUGENE/s-live-dashboard/pkg/errors"
)

var errStoreDown = errors.New("store unavailable")

// ── Mock BookingRepository ──

type mockBookingRepo struct {
	bookings map[string]*model.Booking
	seq      int

	writes     int // 모든 쓰기 호출 수
	commits    int
	failCommit bool
	failList   bool
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*model.Booking)}
}

func cloneBooking(b *model.Booking) model.Booking {
	c := *b
	if b.Survey != nil {
		sv := *b.Survey
		c.Survey = &sv
	}
	return c
}

// seed ID 를 발급해 저장하고 복사본을 돌려준다
func (m *mockBookingRepo) seed(b model.Booking) model.Booking {
	m.seq++
	if b.ID == "" {
		b.ID = fmt.Sprintf("bk-%03d", m.seq)
	}
	c := cloneBooking(&b)
	m.bookings[b.ID] = &c
	return cloneBooking(&c)
}

func (m *mockBookingRepo) Create(_ context.Context, b *model.Booking) error {
	m.writes++
	m.seq++
	b.ID = fmt.Sprintf("bk-%03d", m.seq)
	b.CreatedAt = time.Now()
	c := cloneBooking(b)
	m.bookings[b.ID] = &c
	return nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*model.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	c := cloneBooking(b)
	return &c, nil
}

func (m *mockBookingRepo) Update(_ context.Context, b *model.Booking) error {
	m.writes++
	cur, ok := m.bookings[b.ID]
	if !ok {
		return apperrors.ErrRecordNotFound
	}
	survey := cur.Survey
	c := cloneBooking(b)
	c.Survey = survey
	c.CreatedAt = cur.CreatedAt
	m.bookings[b.ID] = &c
	return nil
}

func (m *mockBookingRepo) SetSurvey(_ context.Context, id string, s *model.Survey) error {
	m.writes++
	cur, ok := m.bookings[id]
	if !ok {
		return apperrors.ErrRecordNotFound
	}
	if s == nil {
		cur.Survey = nil
		return nil
	}
	sv := *s
	cur.Survey = &sv
	return nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id string) error {
	m.writes++
	if _, ok := m.bookings[id]; !ok {
		return apperrors.ErrRecordNotFound
	}
	delete(m.bookings, id)
	return nil
}

func (m *mockBookingRepo) sorted(keep func(*model.Booking) bool) []model.Booking {
	list := make([]model.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		if keep(b) {
			list = append(list, cloneBooking(b))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		if list[i].Start != list[j].Start {
			return list[i].Start < list[j].Start
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (m *mockBookingRepo) ListByDateRange(_ context.Context, from, to string) ([]model.Booking, error) {
	if m.failList {
		return nil, errStoreDown
	}
	return m.sorted(func(b *model.Booking) bool { return b.Date >= from && b.Date <= to }), nil
}

func (m *mockBookingRepo) List(_ context.Context) ([]model.Booking, error) {
	if m.failList {
		return nil, errStoreDown
	}
	return m.sorted(func(*model.Booking) bool { return true }), nil
}

func (m *mockBookingRepo) CommitImport(_ context.Context, adds, replacements []model.Booking) error {
	m.commits++
	if m.failCommit {
		return errStoreDown
	}
	for _, r := range replacements {
		if _, ok := m.bookings[r.ID]; !ok {
			return apperrors.ErrRecordNotFound
		}
	}
	for i := range adds {
		m.seq++
		c := cloneBooking(&adds[i])
		c.ID = fmt.Sprintf("bk-%03d", m.seq)
		m.bookings[c.ID] = &c
	}
	for i := range replacements {
		c := cloneBooking(&replacements[i])
		m.bookings[c.ID] = &c
	}
	m.writes++
	return nil
}

// ── Mock AdminUserRepository ──

type mockAdminRepo struct {
	users map[string]*model.AdminUser // key: id
	seq   int
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{users: make(map[string]*model.AdminUser)}
}

func (m *mockAdminRepo) Create(_ context.Context, u *model.AdminUser) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return apperrors.ErrDuplicateRecord
		}
	}
	m.seq++
	if u.UserID == "" {
		u.UserID = fmt.Sprintf("admin-%d", m.seq)
	}
	c := *u
	m.users[u.UserID] = &c
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.AdminUser, error) {
	if u, ok := m.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, apperrors.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*model.AdminUser, error) {
	for _, u := range m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, apperrors.ErrRecordNotFound
}

// ── 공통 ──

func newTestRepo() (*repository.Repository, *mockBookingRepo, *mockAdminRepo) {
	bookings := newMockBookingRepo()
	admins := newMockAdminRepo()
	return &repository.Repository{Booking: bookings, Admin: admins}, bookings, admins
}

// countingNotifier NotifyChanged 호출 수 기록
type countingNotifier struct {
	calls int
}

func (n *countingNotifier) NotifyChanged() { n.calls++ }

// fixedClock 2024-03-13(수) 11:00 KST
func fixedClock() time.Time {
	return time.Date(2024, time.March, 13, 11, 0, 0, 0, model.KST)
}

func booking(date, studio, company string, start, end int) model.Booking {
	return model.Booking{
		Date:    date,
		Studio:  studio,
		Company: company,
		Product: "상품",
		Purpose: model.PurposeGeneral,
		Start:   start,
		End:     end,
	}
}

func completedSurvey() *model.Survey {
	return &model.Survey{
		FacilityRating:          "매우 만족",
		StaffKindness:           "만족",
		EquipmentExpertise:      "보통",
		ReservationSatisfaction: "만족",
		Cleanliness:             "매우 만족",
		EquipmentSatisfaction:   "불만족",
		Completed:               true,
	}
}
