package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/expensetracker/expense-service/internal/api/metrics"
	"github.com/expensetracker/expense-service/internal/core/domain"
	"github.com/expensetracker/expense-service/internal/core/ports"
)

type UserService struct {
	store  ports.Store
	hasher ports.PasswordHasher
	audit  ports.AuditLog
	log    zerolog.Logger
}

// NewUserService returns a UserService. audit may be nil.
func NewUserService(store ports.Store, hasher ports.PasswordHasher, audit ports.AuditLog, log zerolog.Logger) *UserService {
	return &UserService{store: store, hasher: hasher, audit: audit, log: log}
}

// Create registers a user with a freshly hashed password.
func (s *UserService) Create(ctx context.Context, name, password string) (*domain.User, error) {
	if name == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	var created *domain.User
	err = s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		created, err = repos.Users().Create(ctx, &domain.User{Name: name, PasswordHash: hash})
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.log.Info().Int64("user_id", created.ID).Str("name", created.Name).Msg("user created")
	recordAudit(ctx, s.audit, s.log, domain.EntityUser, created.ID, domain.AuditCreate)
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	var user *domain.User
	err := s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		user, err = repos.Users().Get(ctx, id)
		return err
	})
	return user, err
}

func (s *UserService) GetByName(ctx context.Context, name string) (*domain.User, error) {
	var user *domain.User
	err := s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		user, err = repos.Users().FindByName(ctx, name)
		return err
	})
	return user, err
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		users, err = repos.Users().List(ctx)
		return err
	})
	return users, err
}

// Update replaces the name and password of an existing user.
func (s *UserService) Update(ctx context.Context, id int64, name, password string) (*domain.User, error) {
	if name == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("update user: hash password: %w", err)
	}

	var updated *domain.User
	err = s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		updated, err = repos.Users().Update(ctx, &domain.User{ID: id, Name: name, PasswordHash: hash})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Msg("user updated")
	recordAudit(ctx, s.audit, s.log, domain.EntityUser, id, domain.AuditUpdate)
	return updated, nil
}

// Delete removes the user together with every expense it owns.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return repos.Users().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info().Int64("user_id", id).Msg("user deleted")
	recordAudit(ctx, s.audit, s.log, domain.EntityUser, id, domain.AuditDelete)
	return nil
}

// ListExpenses returns a page of the expenses owned by the user.
func (s *UserService) ListExpenses(ctx context.Context, id int64, page domain.Page) ([]*domain.Expense, error) {
	if !page.Valid() {
		return nil, domain.ErrInvalidInput
	}

	var expenses []*domain.Expense
	err := s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if _, err := repos.Users().Get(ctx, id); err != nil {
			return err
		}
		var err error
		expenses, err = repos.Expenses().ListByUser(ctx, id, page)
		return err
	})
	return expenses, err
}

// recordAudit writes an audit entry after a commit. Failures are logged only.
func recordAudit(ctx context.Context, audit ports.AuditLog, log zerolog.Logger, entity string, id int64, action string) {
	if audit == nil {
		return
	}
	entry := domain.AuditEntry{
		Entity:   entity,
		EntityID: id,
		Action:   action,
		Actor:    ports.ActorFrom(ctx),
		At:       time.Now().UTC(),
	}
	if err := audit.Record(ctx, entry); err != nil {
		log.Warn().Err(err).Str("entity", entity).Int64("id", id).Str("action", action).Msg("failed to record audit entry")
	}
}
