package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// Stats agrega os indicadores de um conjunto de produtos já carregado.
type Stats struct {
	TotalItems    int
	TotalValue    decimal.Decimal // Σ preço × quantidade
	LowStockCount int             // quantidade < entity.LowStockThreshold
}

// ComputeStats calcula os indicadores do painel (serviço de domínio puro, sem I/O).
func ComputeStats(products []*entity.Product) Stats {
	s := Stats{TotalValue: decimal.Zero}
	for _, p := range products {
		if p == nil {
			continue
		}
		s.TotalItems++
		s.TotalValue = s.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.IsLowStock() {
			s.LowStockCount++
		}
	}
	return s
}
