package repository

import (
	"context"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// UserRepository define a porta de persistência de User (DIP).
// Nenhum método, exceto GetCredentialsByEmail, devolve PasswordHash.
type UserRepository interface {
	// Create persiste o usuário e seus locais iniciais em uma única operação atômica.
	// Email duplicado → domain.ErrEmailAlreadyExists.
	Create(ctx context.Context, user *entity.User) error
	// GetByID devolve o usuário sem hash de senha, com seus locais ordenados; nil se não existir.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// ExistsByEmail informa se já há usuário com esse email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// GetCredentialsByEmail é a leitura privilegiada usada só na autenticação; nil se não existir.
	GetCredentialsByEmail(ctx context.Context, email string) (*entity.User, error)
	// SetActiveLocation grava o local ativo se ele pertencer ao usuário.
	// Devolve domain.ErrLocationNotFound ou domain.ErrUserNotFound.
	SetActiveLocation(ctx context.Context, userID, name string) error
}
