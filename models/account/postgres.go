package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/grocerly/grocerly/connections"
)

// Postgres is the PostgreSQL repository for accounts
type Postgres struct{}

// Create creates a new account
func (p *Postgres) Create(username, email, passwordHash string) (*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var acc Account
	err := pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password)
		VALUES ($1, lower($2), $3)
		RETURNING id, username, email, created_at, updated_at
	`, username, email, passwordHash).Scan(
		&acc.ID,
		&acc.Username,
		&acc.Email,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return nil, ErrEmailExists
			case "users_username_key":
				return nil, ErrUsernameExists
			}
		}
		return nil, err
	}

	return &acc, nil
}

// FindByUsernameOrEmail finds an account by username or email in one lookup
func (p *Postgres) FindByUsernameOrEmail(login string) (*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var acc Account
	err := pool.QueryRow(ctx, `
		SELECT id, username, email, password, created_at, updated_at
		FROM users
		WHERE username = $1 OR email = lower($1)
	`, login).Scan(
		&acc.ID,
		&acc.Username,
		&acc.Email,
		&acc.Password,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &acc, nil
}

// FindByID finds an account by ID
func (p *Postgres) FindByID(id int) (*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var acc Account
	err := pool.QueryRow(ctx, `
		SELECT id, username, email, password, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&acc.ID,
		&acc.Username,
		&acc.Email,
		&acc.Password,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &acc, nil
}
