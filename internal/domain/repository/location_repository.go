package repository

import (
	"context"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// LocationRepository define a porta de persistência dos locais de estoque de um usuário.
type LocationRepository interface {
	// ListByUser devolve os locais do usuário em ordem de inserção.
	ListByUser(ctx context.Context, userID string) ([]*entity.Location, error)
	// GetByName devolve o local do usuário com esse nome; nil se não existir.
	GetByName(ctx context.Context, userID, name string) (*entity.Location, error)
	// AddIfAbsent insere o local; se o nome já existe para o usuário não faz nada
	// e devolve created=false.
	AddIfAbsent(ctx context.Context, loc *entity.Location) (created bool, err error)
	// Remove apaga o local pelo nome (idempotente) e, se ele era o ativo, reinicia o ponteiro
	// para o primeiro local restante ou para entity.FallbackLocationName. Devolve o local ativo final.
	Remove(ctx context.Context, userID, name string) (active string, err error)
	// Update grava nome/descrição/ícone de um local do usuário; se o nome mudou e era o ativo,
	// o ponteiro acompanha. domain.ErrLocationNotFound se o local não for do usuário;
	// domain.ErrInvalidInput se o novo nome colidir com outro local.
	Update(ctx context.Context, loc *entity.Location) error
}
