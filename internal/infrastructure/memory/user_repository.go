package memory

import (
	"context"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// UserRepo implementação em memória de repository.UserRepository.
type UserRepo struct {
	s *Store
}

// Create persiste o usuário e seus locais iniciais.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	u := *user
	u.Locations = nil
	r.s.users[u.ID] = &u
	r.s.byEmail[u.Email] = u.ID
	locs := make([]*entity.Location, 0, len(user.Locations))
	for _, l := range user.Locations {
		c := l
		c.UserID = u.ID
		c.Position = r.s.nextSeq()
		locs = append(locs, &c)
	}
	r.s.locations[u.ID] = locs
	return nil
}

// GetByID devolve o usuário sem hash de senha e com seus locais.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	out.PasswordHash = ""
	for _, l := range r.s.locationsCopy(id) {
		out.Locations = append(out.Locations, *l)
	}
	return &out, nil
}

// ExistsByEmail informa se o email já está cadastrado.
func (r *UserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.byEmail[email]
	return ok, nil
}

// GetCredentialsByEmail devolve id, email e hash da senha.
func (r *UserRepo) GetCredentialsByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.byEmail[email]
	if !ok {
		return nil, nil
	}
	u := r.s.users[id]
	return &entity.User{ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash}, nil
}

// SetActiveLocation grava o local ativo se ele pertencer ao usuário.
func (r *UserRepo) SetActiveLocation(_ context.Context, userID, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, l := range r.s.locations[userID] {
		if l.Name == name {
			u.ActiveLocation = name
			return nil
		}
	}
	return domain.ErrLocationNotFound
}
