package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/expensetracker/expense-service/internal/core/domain"
	"github.com/expensetracker/expense-service/internal/core/ports"
)

func newUserSvc(store *stubStore, audit *stubAudit) *UserService {
	if audit == nil {
		return NewUserService(store, testCredentials(), nil, discardLogger)
	}
	return NewUserService(store, testCredentials(), audit, discardLogger)
}

func TestUserService_Create_Success(t *testing.T) {
	store := newStubStore()
	audit := &stubAudit{}
	svc := newUserSvc(store, audit)

	user, err := svc.Create(context.Background(), "Tester", "qwerty")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID == 0 || user.Name != "Tester" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "" || user.PasswordHash == "qwerty" {
		t.Fatalf("expected password to be hashed, got %q", user.PasswordHash)
	}
	if !testCredentials().Verify("qwerty", store.users[user.ID].PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Entity != domain.EntityUser || entry.Action != domain.AuditCreate || entry.EntityID != user.ID {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	svc := newUserSvc(newStubStore(), nil)

	if _, err := svc.Create(context.Background(), "bob", "pass"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "bob", "pass2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	store := newStubStore()
	svc := newUserSvc(store, nil)

	if _, err := svc.Create(context.Background(), "", "pass"); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "bob", ""); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("store should not be touched, got %d calls", store.calls)
	}
}

func TestUserService_GetAndList(t *testing.T) {
	svc := newUserSvc(newStubStore(), nil)
	ctx := context.Background()

	first, _ := svc.Create(ctx, "Tester", "a")
	second, _ := svc.Create(ctx, "Lester", "b")

	got, err := svc.Get(ctx, first.ID)
	if err != nil || got.Name != "Tester" {
		t.Fatalf("Get: %+v, %v", got, err)
	}

	byName, err := svc.GetByName(ctx, "Lester")
	if err != nil || byName.ID != second.ID {
		t.Fatalf("GetByName: %+v, %v", byName, err)
	}

	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 || users[0].ID != first.ID || users[1].ID != second.ID {
		t.Fatalf("unexpected list order: %+v", users)
	}

	if _, err := svc.Get(ctx, 999); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update(t *testing.T) {
	store := newStubStore()
	audit := &stubAudit{}
	svc := newUserSvc(store, audit)
	ctx := context.Background()

	user, _ := svc.Create(ctx, "Tester", "old")
	oldHash := store.users[user.ID].PasswordHash

	updated, err := svc.Update(ctx, user.ID, "Lester", "new")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Lester" || updated.ID != user.ID {
		t.Fatalf("unexpected user: %+v", updated)
	}
	stored := store.users[user.ID].PasswordHash
	if stored == oldHash || !testCredentials().Verify("new", stored) {
		t.Fatalf("password was not re-hashed")
	}
	if last := audit.entries[len(audit.entries)-1]; last.Action != domain.AuditUpdate {
		t.Fatalf("expected update audit entry, got %+v", last)
	}

	if _, err := svc.Update(ctx, 999, "x", "y"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_NameTaken(t *testing.T) {
	svc := newUserSvc(newStubStore(), nil)
	ctx := context.Background()

	_, _ = svc.Create(ctx, "Tester", "a")
	other, _ := svc.Create(ctx, "Lester", "b")

	if _, err := svc.Update(ctx, other.ID, "Tester", "c"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Delete_CascadesExpenses(t *testing.T) {
	store := newStubStore()
	svc := newUserSvc(store, nil)
	expenses := NewExpenseService(store, nil, discardLogger)
	ctx := context.Background()

	user, _ := svc.Create(ctx, "Tester", "a")
	e, err := expenses.Create(ctx, ports.ExpenseInput{Amount: 1, UserID: user.ID, Timestamp: time.Now()})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	if err := svc.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := expenses.Get(ctx, e.ID); err != domain.ErrExpenseNotFound {
		t.Fatalf("expected cascaded delete, got %v", err)
	}
	if err := svc.Delete(ctx, user.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ListExpenses(t *testing.T) {
	store := newStubStore()
	svc := newUserSvc(store, nil)
	expenses := NewExpenseService(store, nil, discardLogger)
	ctx := context.Background()

	alice, _ := svc.Create(ctx, "alice", "a")
	bob, _ := svc.Create(ctx, "bob", "b")
	now := time.Now()
	a1, _ := expenses.Create(ctx, ports.ExpenseInput{Amount: 1, UserID: alice.ID, Timestamp: now})
	_, _ = expenses.Create(ctx, ports.ExpenseInput{Amount: 2, UserID: bob.ID, Timestamp: now})
	a2, _ := expenses.Create(ctx, ports.ExpenseInput{Amount: 3, UserID: alice.ID, Timestamp: now})

	got, err := svc.ListExpenses(ctx, alice.ID, domain.DefaultPage())
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(got) != 2 || got[0].ID != a1.ID || got[1].ID != a2.ID {
		t.Fatalf("unexpected expenses: %+v", got)
	}

	if _, err := svc.ListExpenses(ctx, 999, domain.DefaultPage()); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.ListExpenses(ctx, alice.ID, domain.Page{Offset: -1, Limit: 1}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_AuditFailureIsNotFatal(t *testing.T) {
	audit := &stubAudit{err: errBoom}
	svc := newUserSvc(newStubStore(), audit)

	if _, err := svc.Create(context.Background(), "Tester", "a"); err != nil {
		t.Fatalf("expected audit failure to be ignored, got %v", err)
	}
}

func TestUserService_AuditCarriesActor(t *testing.T) {
	audit := &stubAudit{}
	svc := newUserSvc(newStubStore(), audit)
	ctx := ports.WithActor(context.Background(), "admin")

	if _, err := svc.Create(ctx, "Tester", "a"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if audit.entries[0].Actor != "admin" {
		t.Fatalf("expected actor admin, got %q", audit.entries[0].Actor)
	}
}

func TestUserService_StoreError(t *testing.T) {
	store := newStubStore()
	store.doErr = errBoom
	svc := newUserSvc(store, nil)

	if _, err := svc.List(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
