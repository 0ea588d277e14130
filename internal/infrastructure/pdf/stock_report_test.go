package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	domaininv "github.com/jhoicas/controle-estoque/internal/domain/inventory"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "R$ 0,00",
		"5":         "R$ 5,00",
		"999.9":     "R$ 999,90",
		"1000":      "R$ 1.000,00",
		"1234567.5": "R$ 1.234.567,50",
		"-42.1":     "-R$ 42,10",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateStockReport_ProducesPDF(t *testing.T) {
	products := []*entity.Product{
		{Name: "Mouse", Category: "perifericos", Price: decimal.NewFromInt(50), Quantity: 3},
		{Name: "Teclado", Category: "perifericos", Price: decimal.RequireFromString("120.90"), Quantity: 10},
	}
	data := inventory.StockReportData{
		OwnerName:   "Ana",
		Location:    "Matriz",
		GeneratedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Products:    products,
		Stats:       domaininv.ComputeStats(products),
	}

	out, err := NewMarotoReportGenerator().GenerateStockReport(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStockReport_EmptyLocation(t *testing.T) {
	out, err := NewMarotoReportGenerator().GenerateStockReport(context.Background(), inventory.StockReportData{
		OwnerName: "Ana", Location: "Vazio", GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
