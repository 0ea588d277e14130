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

var _ repository.LocationRepository = (*LocationRepo)(nil)

var locationColumns = []string{"id", "user_id", "name", "description", "icon", "position", "created_at", "updated_at"}

// LocationRepo implementação da porta LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewLocationRepository constrói o adaptador de persistência de locais.
func NewLocationRepository(pool *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{pool: pool, tx: NewTxRunner(pool)}
}

// ListByUser devolve os locais do usuário em ordem de inserção.
func (r *LocationRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Location, error) {
	if !validUUID(userID) {
		return []*entity.Location{}, nil
	}
	query, args, err := psql.Select(locationColumns...).
		From("locations").
		Where("user_id = ?", userID).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list locations: %w", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// GetByName devolve o local do usuário com esse nome; nil se não existir.
func (r *LocationRepo) GetByName(ctx context.Context, userID, name string) (*entity.Location, error) {
	if !validUUID(userID) {
		return nil, nil
	}
	query, args, err := psql.Select(locationColumns...).
		From("locations").
		Where("user_id = ? AND name = ?", userID, name).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get location: %w", err)
	}
	l, err := scanLocation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by name: %w", err)
	}
	return l, nil
}

// AddIfAbsent insere o local; o índice único (user_id, name) torna a operação
// segura contra cadastros simultâneos com o mesmo nome.
func (r *LocationRepo) AddIfAbsent(ctx context.Context, loc *entity.Location) (bool, error) {
	return insertLocation(ctx, r.pool, loc)
}

// Remove apaga o local e, se era o ativo, reinicia o ponteiro. A linha do usuário fica
// bloqueada durante a transação para serializar alterações no catálogo do mesmo usuário.
func (r *LocationRepo) Remove(ctx context.Context, userID, name string) (string, error) {
	if !validUUID(userID) {
		return "", domain.ErrUserNotFound
	}
	var active string
	err := r.tx.Run(ctx, func(q Querier) error {
		if err := q.QueryRow(ctx, `SELECT active_location FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&active); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("lock user: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM locations WHERE user_id = $1 AND name = $2`, userID, name); err != nil {
			return fmt.Errorf("delete location: %w", err)
		}
		if active != name {
			return nil
		}
		err := q.QueryRow(ctx, `
			UPDATE users SET
				active_location = COALESCE(
					(SELECT name FROM locations WHERE user_id = $1 ORDER BY position ASC LIMIT 1),
					$2),
				updated_at = now()
			WHERE id = $1
			RETURNING active_location`,
			userID, entity.FallbackLocationName,
		).Scan(&active)
		if err != nil {
			return fmt.Errorf("reset active location: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return active, nil
}

// Update grava nome, descrição e ícone; o ponteiro ativo acompanha a troca de nome.
func (r *LocationRepo) Update(ctx context.Context, loc *entity.Location) error {
	if !validUUID(loc.UserID) || !validUUID(loc.ID) {
		return domain.ErrLocationNotFound
	}
	return r.tx.Run(ctx, func(q Querier) error {
		var active string
		if err := q.QueryRow(ctx, `SELECT active_location FROM users WHERE id = $1 FOR UPDATE`, loc.UserID).Scan(&active); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrLocationNotFound
			}
			return fmt.Errorf("lock user: %w", err)
		}
		var oldName string
		if err := q.QueryRow(ctx, `SELECT name FROM locations WHERE id = $1 AND user_id = $2`, loc.ID, loc.UserID).Scan(&oldName); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrLocationNotFound
			}
			return fmt.Errorf("get location: %w", err)
		}
		query, args, err := psql.Update("locations").
			Set("name", loc.Name).
			Set("description", loc.Description).
			Set("icon", loc.Icon).
			Set("updated_at", loc.UpdatedAt).
			Where("id = ? AND user_id = ?", loc.ID, loc.UserID).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update location: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return domain.NewValidationError("Já existe um local com esse nome.")
			}
			return fmt.Errorf("update location: %w", err)
		}
		if active == oldName && oldName != loc.Name {
			if _, err := q.Exec(ctx, `UPDATE users SET active_location = $2, updated_at = now() WHERE id = $1`, loc.UserID, loc.Name); err != nil {
				return fmt.Errorf("follow active location: %w", err)
			}
		}
		return nil
	})
}

// insertLocation insere ignorando nome repetido; devolve created=false nesse caso.
func insertLocation(ctx context.Context, q Querier, loc *entity.Location) (bool, error) {
	query, args, err := psql.Insert("locations").
		Columns("id", "user_id", "name", "description", "icon", "created_at", "updated_at").
		Values(loc.ID, loc.UserID, loc.Name, loc.Description, loc.Icon, loc.CreatedAt, loc.UpdatedAt).
		Suffix("ON CONFLICT (user_id, name) DO NOTHING RETURNING position").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert location: %w", err)
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&loc.Position); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		if isForeignKeyViolation(err) {
			return false, domain.ErrUserNotFound
		}
		return false, fmt.Errorf("insert location: %w", err)
	}
	return true, nil
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	if err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.Description, &l.Icon, &l.Position, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
