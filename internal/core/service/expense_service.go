package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/expensetracker/expense-service/internal/api/metrics"
	"github.com/expensetracker/expense-service/internal/core/domain"
	"github.com/expensetracker/expense-service/internal/core/ports"
)

type ExpenseService struct {
	store ports.Store
	audit ports.AuditLog
	log   zerolog.Logger
}

// NewExpenseService returns an ExpenseService. audit may be nil.
func NewExpenseService(store ports.Store, audit ports.AuditLog, log zerolog.Logger) *ExpenseService {
	return &ExpenseService{store: store, audit: audit, log: log}
}

// Create stores a new expense for an existing user.
func (s *ExpenseService) Create(ctx context.Context, in ports.ExpenseInput) (*domain.Expense, error) {
	if in.Timestamp.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	var created *domain.Expense
	err := s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if _, err := repos.Users().Get(ctx, in.UserID); err != nil {
			return err
		}
		var err error
		created, err = repos.Expenses().Create(ctx, &domain.Expense{
			Amount:    in.Amount,
			UserID:    in.UserID,
			Timestamp: in.Timestamp.UTC(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.ExpensesCreatedTotal.Inc()
	s.log.Info().Int64("expense_id", created.ID).Int64("user_id", created.UserID).Msg("expense created")
	recordAudit(ctx, s.audit, s.log, domain.EntityExpense, created.ID, domain.AuditCreate)
	return created, nil
}

func (s *ExpenseService) Get(ctx context.Context, id int64) (*domain.Expense, error) {
	var expense *domain.Expense
	err := s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		expense, err = repos.Expenses().Get(ctx, id)
		return err
	})
	return expense, err
}

// List returns a page of all expenses in insertion order.
func (s *ExpenseService) List(ctx context.Context, page domain.Page) ([]*domain.Expense, error) {
	if !page.Valid() {
		return nil, domain.ErrInvalidInput
	}

	var expenses []*domain.Expense
	err := s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		expenses, err = repos.Expenses().List(ctx, page)
		return err
	})
	return expenses, err
}

// Update replaces every writable field of an existing expense.
func (s *ExpenseService) Update(ctx context.Context, id int64, in ports.ExpenseInput) (*domain.Expense, error) {
	if in.Timestamp.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	var updated *domain.Expense
	err := s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if _, err := repos.Expenses().Get(ctx, id); err != nil {
			return err
		}
		if _, err := repos.Users().Get(ctx, in.UserID); err != nil {
			return err
		}
		var err error
		updated, err = repos.Expenses().Update(ctx, &domain.Expense{
			ID:        id,
			Amount:    in.Amount,
			UserID:    in.UserID,
			Timestamp: in.Timestamp.UTC(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("expense_id", id).Msg("expense updated")
	recordAudit(ctx, s.audit, s.log, domain.EntityExpense, id, domain.AuditUpdate)
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	err := s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return repos.Expenses().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	metrics.ExpensesDeletedTotal.Inc()
	s.log.Info().Int64("expense_id", id).Msg("expense deleted")
	recordAudit(ctx, s.audit, s.log, domain.EntityExpense, id, domain.AuditDelete)
	return nil
}
