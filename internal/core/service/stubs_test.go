package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/expensetracker/expense-service/internal/core/domain"
	"github.com/expensetracker/expense-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

type stubStore struct {
	users    map[int64]*domain.User
	expenses map[int64]*domain.Expense
	nextID   int64
	doErr    error // if set, Do returns this error without calling fn
	calls    int   // number of units of work started
}

func newStubStore() *stubStore {
	return &stubStore{
		users:    make(map[int64]*domain.User),
		expenses: make(map[int64]*domain.Expense),
	}
}

func (s *stubStore) Do(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	s.calls++
	if s.doErr != nil {
		return s.doErr
	}
	return fn(ctx, s)
}

func (s *stubStore) Users() ports.UserRepository       { return stubUsers{s} }
func (s *stubStore) Expenses() ports.ExpenseRepository { return stubExpenses{s} }

func (s *stubStore) id() int64 {
	s.nextID++
	return s.nextID
}

type stubUsers struct{ s *stubStore }

func (r stubUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.s.users {
		if existing.Name == u.Name {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	clone.ID = r.s.id()
	r.s.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r stubUsers) Get(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r stubUsers) FindByName(_ context.Context, name string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Name == name {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r stubUsers) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r stubUsers) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.s.users[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, existing := range r.s.users {
		if existing.Name == u.Name && existing.ID != u.ID {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	r.s.users[u.ID] = &clone
	out := clone
	return &out, nil
}

// Delete mirrors the ON DELETE CASCADE of the real schema.
func (r stubUsers) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	for eid, e := range r.s.expenses {
		if e.UserID == id {
			delete(r.s.expenses, eid)
		}
	}
	return nil
}

type stubExpenses struct{ s *stubStore }

func (r stubExpenses) Create(_ context.Context, e *domain.Expense) (*domain.Expense, error) {
	if _, ok := r.s.users[e.UserID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *e
	clone.ID = r.s.id()
	r.s.expenses[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r stubExpenses) Get(_ context.Context, id int64) (*domain.Expense, error) {
	e, ok := r.s.expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	clone := *e
	return &clone, nil
}

func (r stubExpenses) List(ctx context.Context, page domain.Page) ([]*domain.Expense, error) {
	return r.page(func(*domain.Expense) bool { return true }, page), nil
}

func (r stubExpenses) ListByUser(_ context.Context, userID int64, page domain.Page) ([]*domain.Expense, error) {
	return r.page(func(e *domain.Expense) bool { return e.UserID == userID }, page), nil
}

func (r stubExpenses) page(keep func(*domain.Expense) bool, page domain.Page) []*domain.Expense {
	var matched []*domain.Expense
	for _, e := range r.s.expenses {
		if keep(e) {
			clone := *e
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if page.Offset >= len(matched) {
		return []*domain.Expense{}
	}
	end := page.Offset + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[page.Offset:end]
}

func (r stubExpenses) Update(_ context.Context, e *domain.Expense) (*domain.Expense, error) {
	if _, ok := r.s.expenses[e.ID]; !ok {
		return nil, domain.ErrExpenseNotFound
	}
	clone := *e
	r.s.expenses[e.ID] = &clone
	out := clone
	return &out, nil
}

func (r stubExpenses) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(r.s.expenses, id)
	return nil
}

// ---------------------------------------------------------------------------
// Other stubs
// ---------------------------------------------------------------------------

type stubAudit struct {
	entries []domain.AuditEntry
	err     error
}

func (a *stubAudit) Record(_ context.Context, entry domain.AuditEntry) error {
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, entry)
	return nil
}

type stubRevoker struct {
	revoked  map[string]time.Time
	checkErr error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	r.revoked[id] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	if r.checkErr != nil {
		return false, r.checkErr
	}
	_, ok := r.revoked[id]
	return ok, nil
}

var (
	discardLogger = zerolog.Nop()
	errBoom       = errors.New("boom")
)

func testCredentials() *Credentials {
	return NewCredentials("test-secret", bcrypt.MinCost)
}
