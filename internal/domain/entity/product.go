package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCategory é a categoria de produtos importados sem categoria.
	DefaultCategory = "Geral"
	// LowStockThreshold: quantidade abaixo disso conta como estoque baixo.
	LowStockThreshold = 5
)

// Product representa um produto do estoque de um usuário, guardado em um único local.
type Product struct {
	ID           string
	UserID       string
	LocationID   string
	LocationName string // preenchido nas leituras (join com locations)
	Name         string
	Description  string
	Price        decimal.Decimal
	Quantity     int
	Category     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock informa se o produto está abaixo do limite de estoque baixo (zerado inclusive).
func (p *Product) IsLowStock() bool {
	return p.Quantity < LowStockThreshold
}
