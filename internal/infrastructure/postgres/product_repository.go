package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const msgAmountOutOfRange = "Preço ou quantidade acima do limite permitido."

// ProductRepo implementação da porta ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository constrói o adaptador de persistência de produtos.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create persiste um produto. O local precisa existir e pertencer ao mesmo usuário.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query, args, err := buildInsertProduct(p)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrLocationNotFound
		}
		if isNumericOutOfRange(err) {
			return domain.NewValidationError(msgAmountOutOfRange)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// List devolve os produtos do usuário no local, do mais recente para o mais antigo.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	if !validUUID(filter.UserID) {
		return []*entity.Product{}, nil
	}
	query, args, err := buildListProducts(filter)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update substitui os campos editáveis numa única instrução condicionada ao dono.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if !validUUID(p.ID) || !validUUID(p.UserID) {
		return nil, domain.ErrProductNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE products p SET
			name = $3, description = $4, price = $5, quantity = $6, category = $7, updated_at = $8
		FROM locations l
		WHERE p.id = $1 AND p.user_id = $2 AND l.id = p.location_id
		RETURNING p.id, p.user_id, p.location_id, l.name, p.name, p.description,
		          p.price, p.quantity, p.category, p.created_at, p.updated_at`,
		p.ID, p.UserID, p.Name, p.Description, p.Price, p.Quantity, p.Category, p.UpdatedAt,
	)
	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		if isNumericOutOfRange(err) {
			return nil, domain.NewValidationError(msgAmountOutOfRange)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

// Delete remove o produto do usuário.
func (r *ProductRepo) Delete(ctx context.Context, userID, id string) error {
	if !validUUID(id) || !validUUID(userID) {
		return domain.ErrProductNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func buildInsertProduct(p *entity.Product) (string, []any, error) {
	query, args, err := psql.Insert("products").
		Columns("id", "user_id", "location_id", "name", "description", "price", "quantity", "category", "created_at", "updated_at").
		Values(p.ID, p.UserID, p.LocationID, p.Name, p.Description, p.Price, p.Quantity, p.Category, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build insert product: %w", err)
	}
	return query, args, nil
}

func buildListProducts(filter repository.ProductFilter) (string, []any, error) {
	b := psql.Select(
		"p.id", "p.user_id", "p.location_id", "l.name", "p.name", "p.description",
		"p.price", "p.quantity", "p.category", "p.created_at", "p.updated_at",
	).
		From("products p").
		Join("locations l ON l.id = p.location_id").
		Where(sq.Eq{"p.user_id": filter.UserID})
	if filter.LocationName != "" {
		b = b.Where(sq.Eq{"l.name": filter.LocationName})
	}
	query, args, err := b.OrderBy("p.created_at DESC", "p.id DESC").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build list products: %w", err)
	}
	return query, args, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(
		&p.ID, &p.UserID, &p.LocationID, &p.LocationName, &p.Name, &p.Description,
		&p.Price, &p.Quantity, &p.Category, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
