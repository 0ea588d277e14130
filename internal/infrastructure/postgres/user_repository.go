package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação da porta UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool      *pgxpool.Pool
	tx        *TxRunner
	locations *LocationRepo
}

// NewUserRepository constrói o adaptador de persistência de usuários.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool, tx: NewTxRunner(pool), locations: NewLocationRepository(pool)}
}

// Create persiste o usuário e seus locais iniciais na mesma transação.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.tx.Run(ctx, func(q Querier) error {
		_, err := q.Exec(ctx, `
			INSERT INTO users (id, name, email, password_hash, active_location, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			user.ID, user.Name, user.Email, user.PasswordHash, user.ActiveLocation,
			user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrEmailAlreadyExists
			}
			return fmt.Errorf("insert user: %w", err)
		}
		for i := range user.Locations {
			loc := &user.Locations[i]
			loc.UserID = user.ID
			if _, err := insertLocation(ctx, q, loc); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID obtém o usuário (sem hash de senha) e seus locais.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validUUID(id) {
		return nil, nil
	}
	var u entity.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, active_location, created_at, updated_at
		FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.ActiveLocation, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	locs, err := r.locations.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	for _, l := range locs {
		u.Locations = append(u.Locations, *l)
	}
	return &u, nil
}

// ExistsByEmail informa se o email já está cadastrado.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return exists, nil
}

// GetCredentialsByEmail é a única leitura que carrega password_hash.
func (r *UserRepo) GetCredentialsByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user credentials: %w", err)
	}
	return &u, nil
}

// SetActiveLocation grava o local ativo numa única instrução, condicionada à existência do local.
func (r *UserRepo) SetActiveLocation(ctx context.Context, userID, name string) error {
	if !validUUID(userID) {
		return domain.ErrUserNotFound
	}
	cmd, err := r.pool.Exec(ctx, `
		UPDATE users SET active_location = $2, updated_at = now()
		WHERE id = $1
		  AND EXISTS (SELECT 1 FROM locations WHERE user_id = $1 AND name = $2)`,
		userID, name,
	)
	if err != nil {
		return fmt.Errorf("set active location: %w", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	var userExists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&userExists); err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !userExists {
		return domain.ErrUserNotFound
	}
	return domain.ErrLocationNotFound
}
