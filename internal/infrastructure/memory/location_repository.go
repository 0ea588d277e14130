package memory

import (
	"context"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// LocationRepo implementação em memória de repository.LocationRepository.
type LocationRepo struct {
	s *Store
}

// ListByUser devolve os locais do usuário em ordem de inserção.
func (r *LocationRepo) ListByUser(_ context.Context, userID string) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.locationsCopy(userID), nil
}

// GetByName devolve o local do usuário com esse nome.
func (r *LocationRepo) GetByName(_ context.Context, userID, name string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.locations[userID] {
		if l.Name == name {
			c := *l
			return &c, nil
		}
	}
	return nil, nil
}

// AddIfAbsent insere o local se o nome ainda não existir para o usuário.
func (r *LocationRepo) AddIfAbsent(_ context.Context, loc *entity.Location) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[loc.UserID]; !ok {
		return false, domain.ErrUserNotFound
	}
	for _, l := range r.s.locations[loc.UserID] {
		if l.Name == loc.Name {
			return false, nil
		}
	}
	c := *loc
	c.Position = r.s.nextSeq()
	loc.Position = c.Position
	r.s.locations[loc.UserID] = append(r.s.locations[loc.UserID], &c)
	return true, nil
}

// Remove apaga o local (e seus produtos) e reinicia o ponteiro ativo se necessário.
func (r *LocationRepo) Remove(_ context.Context, userID, name string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	kept := r.s.locations[userID][:0]
	var removedID string
	for _, l := range r.s.locations[userID] {
		if l.Name == name {
			removedID = l.ID
			continue
		}
		kept = append(kept, l)
	}
	r.s.locations[userID] = kept
	if removedID != "" {
		for id, p := range r.s.products {
			if p.LocationID == removedID {
				delete(r.s.products, id)
			}
		}
	}
	if u.ActiveLocation == name {
		u.ActiveLocation = entity.FallbackLocationName
		if remaining := r.s.locationsCopy(userID); len(remaining) > 0 {
			u.ActiveLocation = remaining[0].Name
		}
	}
	return u.ActiveLocation, nil
}

// Update grava nome, descrição e ícone do local; o ponteiro ativo acompanha a troca de nome.
func (r *LocationRepo) Update(_ context.Context, loc *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var target *entity.Location
	for _, l := range r.s.locations[loc.UserID] {
		if l.ID == loc.ID {
			target = l
		} else if l.Name == loc.Name {
			return domain.NewValidationError("Já existe um local com esse nome.")
		}
	}
	if target == nil {
		return domain.ErrLocationNotFound
	}
	oldName := target.Name
	target.Name = loc.Name
	target.Description = loc.Description
	target.Icon = loc.Icon
	target.UpdatedAt = loc.UpdatedAt
	if u, ok := r.s.users[loc.UserID]; ok && u.ActiveLocation == oldName {
		u.ActiveLocation = loc.Name
	}
	return nil
}
