package repository

import (
	"context"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// ProductFilter filtra a listagem de produtos. UserID é obrigatório.
type ProductFilter struct {
	UserID       string
	LocationName string
}

// ProductRepository define a porta de persistência de Product (DIP).
// Toda operação é restrita ao dono: id de outro usuário se comporta como inexistente.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// List devolve os produtos do filtro, do mais recente para o mais antigo.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Update substitui os campos editáveis de (ID, UserID) numa única operação atômica e devolve
	// o registro atualizado. domain.ErrProductNotFound se não houver correspondência.
	Update(ctx context.Context, product *entity.Product) (*entity.Product, error)
	// Delete remove (ID, UserID) definitivamente. domain.ErrProductNotFound se não houver correspondência.
	Delete(ctx context.Context, userID, id string) error
}
