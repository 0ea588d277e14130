package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	domaininv "github.com/jhoicas/controle-estoque/internal/domain/inventory"
)

// StockReportData dados do relatório de estoque de um local.
type StockReportData struct {
	OwnerName   string
	Location    string
	GeneratedAt time.Time
	Products    []*entity.Product
	Stats       domaininv.Stats
}

// StockReportGenerator gera a representação em PDF do relatório de estoque.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, data StockReportData) ([]byte, error)
}
