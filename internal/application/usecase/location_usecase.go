package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

// LocationUseCase casos de uso do catálogo de locais de estoque e do local ativo de cada usuário.
type LocationUseCase struct {
	users     repository.UserRepository
	locations repository.LocationRepository
}

// NewLocationUseCase constrói o caso de uso.
func NewLocationUseCase(users repository.UserRepository, locations repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{users: users, locations: locations}
}

// List devolve os locais do usuário e o local ativo.
func (uc *LocationUseCase) List(ctx context.Context, userID string) (*dto.LocationListResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.LocationListResponse{
		Locations:      toLocationResponses(user.Locations),
		ActiveLocation: user.ResolveActiveLocation(),
	}, nil
}

// Add cria um local. Nome repetido não é erro: devolve a lista atual sem alterações.
func (uc *LocationUseCase) Add(ctx context.Context, userID string, in dto.CreateLocationRequest) ([]dto.LocationResponse, error) {
	loc := &entity.Location{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
	}
	loc.ApplyDefaults()
	if loc.Name == "" {
		return nil, domain.NewValidationError("O nome do local é obrigatório.")
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.HasLocation(loc.Name) {
		return toLocationResponses(user.Locations), nil
	}
	now := time.Now().UTC()
	loc.CreatedAt = now
	loc.UpdatedAt = now
	if _, err := uc.locations.AddIfAbsent(ctx, loc); err != nil {
		return nil, err
	}
	list, err := uc.locations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toLocationResponsesPtr(list), nil
}

// Remove apaga o local pelo nome (idempotente) e devolve o catálogo e o local ativo resultantes.
func (uc *LocationUseCase) Remove(ctx context.Context, userID, name string) (*dto.LocationListResponse, error) {
	name = entity.NormalizeLocationName(name)
	if name != "" {
		if _, err := uc.locations.Remove(ctx, userID, name); err != nil {
			return nil, err
		}
	}
	return uc.List(ctx, userID)
}

// SetActive troca o local ativo. O nome precisa ser um dos locais do usuário.
func (uc *LocationUseCase) SetActive(ctx context.Context, userID, name string) (string, error) {
	name = entity.NormalizeLocationName(name)
	if name == "" {
		return "", domain.NewValidationError("O nome do local ativo é obrigatório.")
	}
	if err := uc.users.SetActiveLocation(ctx, userID, name); err != nil {
		return "", err
	}
	return name, nil
}

// Update renomeia/edita um local. Os produtos continuam ligados pelo ID do local.
func (uc *LocationUseCase) Update(ctx context.Context, userID, locationID string, in dto.UpdateLocationRequest) (*dto.LocationListResponse, error) {
	loc := &entity.Location{
		ID:          locationID,
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		UpdatedAt:   time.Now().UTC(),
	}
	loc.ApplyDefaults()
	if loc.Name == "" {
		return nil, domain.NewValidationError("O nome do local é obrigatório.")
	}
	if err := uc.locations.Update(ctx, loc); err != nil {
		return nil, err
	}
	return uc.List(ctx, userID)
}

func toLocationResponse(l *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Icon:        l.Icon,
	}
}

func toLocationResponses(list []entity.Location) []dto.LocationResponse {
	out := make([]dto.LocationResponse, 0, len(list))
	for i := range list {
		out = append(out, toLocationResponse(&list[i]))
	}
	return out
}

func toLocationResponsesPtr(list []*entity.Location) []dto.LocationResponse {
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLocationResponse(l))
	}
	return out
}
