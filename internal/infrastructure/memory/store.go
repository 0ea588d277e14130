// Package memory implementa os repositórios em memória (STORE_DRIVER=memory), usados em
// desenvolvimento local e nos testes. Os dados se perdem ao reiniciar o processo.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
)

// Store guarda todas as tabelas sob um único RWMutex; cada operação de repositório é atômica.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*entity.User // sem Locations; ver locations
	byEmail   map[string]string       // email -> user id
	locations map[string][]*entity.Location
	products  map[string]*entity.Product
	seq       int64
}

// NewStore cria um armazenamento vazio.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]*entity.User),
		byEmail:   make(map[string]string),
		locations: make(map[string][]*entity.Location),
		products:  make(map[string]*entity.Product),
	}
}

// Users devolve o repositório de usuários.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Locations devolve o repositório de locais.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{s: s} }

// Products devolve o repositório de produtos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// locationsCopy devolve cópias dos locais do usuário em ordem de inserção. Requer lock.
func (s *Store) locationsCopy(userID string) []*entity.Location {
	src := s.locations[userID]
	out := make([]*entity.Location, 0, len(src))
	for _, l := range src {
		c := *l
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (s *Store) locationByID(id string) *entity.Location {
	for _, list := range s.locations {
		for _, l := range list {
			if l.ID == id {
				return l
			}
		}
	}
	return nil
}
