package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

// ProductRepo implementação em memória de repository.ProductRepository.
type ProductRepo struct {
	s *Store
}

// Create persiste um novo produto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	loc := r.s.locationByID(product.LocationID)
	if loc == nil || loc.UserID != product.UserID {
		return domain.ErrLocationNotFound
	}
	c := *product
	c.LocationName = ""
	r.s.products[c.ID] = &c
	return nil
}

// List devolve os produtos do dono no local, mais recentes primeiro.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.UserID != filter.UserID {
			continue
		}
		loc := r.s.locationByID(p.LocationID)
		if loc == nil {
			continue
		}
		if filter.LocationName != "" && loc.Name != filter.LocationName {
			continue
		}
		c := *p
		c.LocationName = loc.Name
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update substitui os campos editáveis de um produto do dono.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[product.ID]
	if !ok || p.UserID != product.UserID {
		return nil, domain.ErrProductNotFound
	}
	p.Name = product.Name
	p.Description = product.Description
	p.Price = product.Price
	p.Quantity = product.Quantity
	p.Category = product.Category
	p.UpdatedAt = product.UpdatedAt
	c := *p
	if loc := r.s.locationByID(p.LocationID); loc != nil {
		c.LocationName = loc.Name
	}
	return &c, nil
}

// Delete remove um produto do dono.
func (r *ProductRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.UserID != userID {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}
