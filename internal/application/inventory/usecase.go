package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	domaininv "github.com/jhoicas/controle-estoque/internal/domain/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

const (
	msgCreateIncomplete = "Dados do produto incompletos: Nome, preço, quantidade, categoria e localização são obrigatórios."
	msgUpdateIncomplete = "Dados de atualização incompletos: Nome, preço, quantidade e categoria são necessários."
	msgLocationRequired = "Localização do Estoque (location) é obrigatória"
)

var (
	maxQuantity = decimal.NewFromInt(math.MaxInt32)
	// maxPrice é o primeiro valor que não cabe em NUMERIC(14,2).
	maxPrice = decimal.New(1, 12)
)

// UseCase operações de estoque restritas ao dono: CRUD de produtos por local,
// indicadores e relatório. Todo método recebe o userID já autenticado.
type UseCase struct {
	products  repository.ProductRepository
	locations repository.LocationRepository
	users     repository.UserRepository
	reports   StockReportGenerator
}

// NewUseCase constrói o caso de uso. reports pode ser nil (relatório desativado).
func NewUseCase(
	products repository.ProductRepository,
	locations repository.LocationRepository,
	users repository.UserRepository,
	reports StockReportGenerator,
) *UseCase {
	return &UseCase{products: products, locations: locations, users: users, reports: reports}
}

// ListProducts devolve os produtos do usuário no local, do mais recente ao mais antigo.
func (uc *UseCase) ListProducts(ctx context.Context, userID, location string) ([]dto.ProductResponse, error) {
	list, err := uc.listEntities(ctx, userID, location)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// CreateProduct valida e persiste um produto no local indicado, que precisa ser do usuário.
func (uc *UseCase) CreateProduct(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	locationName := entity.NormalizeLocationName(in.Location)
	if name == "" || in.Price == nil || in.Quantity == nil || category == "" || locationName == "" {
		return nil, domain.NewValidationError(msgCreateIncomplete)
	}
	price, qty, err := coerceAmounts(*in.Price, *in.Quantity)
	if err != nil {
		return nil, err
	}
	loc, err := uc.locations.GetByName(ctx, userID, locationName)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.NewValidationError(fmt.Sprintf("Local de estoque %q não encontrado.", locationName))
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:           uuid.New().String(),
		UserID:       userID,
		LocationID:   loc.ID,
		LocationName: loc.Name,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        price,
		Quantity:     qty,
		Category:     category,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// UpdateProduct substitui nome, descrição, preço, quantidade e categoria de um produto do usuário.
// Produto de outro usuário é indistinguível de inexistente (ErrProductNotFound).
func (uc *UseCase) UpdateProduct(ctx context.Context, userID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || in.Price == nil || in.Quantity == nil || category == "" {
		return nil, domain.NewValidationError(msgUpdateIncomplete)
	}
	price, qty, err := coerceAmounts(*in.Price, *in.Quantity)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(productID) == "" {
		return nil, domain.ErrProductNotFound
	}
	updated, err := uc.products.Update(ctx, &entity.Product{
		ID:          productID,
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Quantity:    qty,
		Category:    category,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(updated)
	return &resp, nil
}

// DeleteProduct remove definitivamente um produto do usuário.
func (uc *UseCase) DeleteProduct(ctx context.Context, userID, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return domain.ErrProductNotFound
	}
	return uc.products.Delete(ctx, userID, productID)
}

// Stats calcula os indicadores do local sobre a listagem atual.
func (uc *UseCase) Stats(ctx context.Context, userID, location string) (*dto.StatsResponse, error) {
	list, err := uc.listEntities(ctx, userID, location)
	if err != nil {
		return nil, err
	}
	return toStatsResponse(domaininv.ComputeStats(list)), nil
}

// StockReport gera o PDF de estoque do local e o nome de arquivo sugerido.
func (uc *UseCase) StockReport(ctx context.Context, userID, location string) ([]byte, string, error) {
	if uc.reports == nil {
		return nil, "", fmt.Errorf("relatório: gerador não configurado")
	}
	list, err := uc.listEntities(ctx, userID, location)
	if err != nil {
		return nil, "", err
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}
	now := time.Now()
	pdf, err := uc.reports.GenerateStockReport(ctx, StockReportData{
		OwnerName:   user.Name,
		Location:    entity.NormalizeLocationName(location),
		GeneratedAt: now,
		Products:    list,
		Stats:       domaininv.ComputeStats(list),
	})
	if err != nil {
		return nil, "", fmt.Errorf("relatório: %w", err)
	}
	return pdf, fmt.Sprintf("estoque-%s.pdf", now.Format("20060102-1504")), nil
}

func (uc *UseCase) listEntities(ctx context.Context, userID, location string) ([]*entity.Product, error) {
	location = entity.NormalizeLocationName(location)
	if location == "" {
		return nil, domain.NewValidationError(msgLocationRequired)
	}
	return uc.products.List(ctx, repository.ProductFilter{UserID: userID, LocationName: location})
}

// coerceAmounts converte preço para decimal não negativo e quantidade para inteiro não negativo.
func coerceAmounts(price, quantity decimal.Decimal) (decimal.Decimal, int, error) {
	if price.IsNegative() {
		return decimal.Zero, 0, domain.NewValidationError("O preço não pode ser negativo.")
	}
	price = price.Round(2)
	if price.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, 0, domain.NewValidationError("Preço acima do limite permitido.")
	}
	if quantity.IsNegative() {
		return decimal.Zero, 0, domain.NewValidationError("A quantidade não pode ser negativa.")
	}
	if !quantity.IsInteger() {
		return decimal.Zero, 0, domain.NewValidationError("A quantidade deve ser um número inteiro.")
	}
	if quantity.GreaterThan(maxQuantity) {
		return decimal.Zero, 0, domain.NewValidationError("Quantidade acima do limite permitido.")
	}
	return price, int(quantity.IntPart()), nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		Location:    p.LocationName,
		LocationID:  p.LocationID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toStatsResponse(s domaininv.Stats) *dto.StatsResponse {
	return &dto.StatsResponse{
		TotalItems:    s.TotalItems,
		TotalValue:    s.TotalValue,
		LowStockCount: s.LowStockCount,
	}
}
