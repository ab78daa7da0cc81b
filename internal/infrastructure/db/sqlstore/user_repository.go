package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/expensetracker/expense-service/internal/core/domain"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query :=
		`INSERT INTO users (name, hashed_password)
		 VALUES ($1, $2)
		 RETURNING id`

	created := *user
	err := r.db.QueryRowContext(ctx, query, user.Name, user.PasswordHash).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	query :=
		`SELECT id, name, hashed_password FROM users
		 WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	query :=
		`SELECT id, name, hashed_password FROM users
		 WHERE name = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query :=
		`SELECT id, name, hashed_password FROM users
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u := &domain.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	query :=
		`UPDATE users SET name = $1, hashed_password = $2
		 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, user.Name, user.PasswordHash, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if err := expectOneRow(res, domain.ErrUserNotFound); err != nil {
		return nil, err
	}

	updated := *user
	return &updated, nil
}

// Delete removes the user row. The schema cascades the delete to expenses.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectOneRow(res, domain.ErrUserNotFound)
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// expectOneRow maps "no rows affected" to notFound.
func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
