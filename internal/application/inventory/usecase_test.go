package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/controle-estoque/internal/application/auth"
	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/memory"
)

// reportStub captura os dados enviados ao gerador de relatório.
type reportStub struct {
	got inventory.StockReportData
}

func (r *reportStub) GenerateStockReport(_ context.Context, data inventory.StockReportData) ([]byte, error) {
	r.got = data
	return []byte("%PDF-stub"), nil
}

type fixture struct {
	uc      *inventory.UseCase
	reports *reportStub
	alice   string
	bob     string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: "s"}).WithBcryptCost(bcrypt.MinCost)
	register := func(email string) string {
		u, err := authUC.RegisterUser(context.Background(), dto.RegisterRequest{Name: "Usuário", Email: email, Password: "1"})
		require.NoError(t, err)
		return u.ID
	}
	reports := &reportStub{}
	return fixture{
		uc:      inventory.NewUseCase(store.Products(), store.Locations(), store.Users(), reports),
		reports: reports,
		alice:   register("alice@x.com"),
		bob:     register("bob@x.com"),
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func createReq(name, price, qty, location string) dto.CreateProductRequest {
	return dto.CreateProductRequest{Name: name, Price: dec(price), Quantity: dec(qty), Category: "geral", Location: location}
}

func TestCreateProduct_ZeroPriceAndQuantityAreValid(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.CreateProduct(context.Background(), f.alice, createReq("Brinde", "0", "0", "Escritório"))
	require.NoError(t, err)
	assert.True(t, out.Price.IsZero())
	assert.Equal(t, 0, out.Quantity)
	assert.Equal(t, "Escritório", out.Location)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	missing := createReq("X", "1", "1", "Escritório")
	missing.Price = nil
	_, err := f.uc.CreateProduct(ctx, f.alice, missing)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	for _, req := range []dto.CreateProductRequest{
		createReq("", "1", "1", "Escritório"),
		createReq("X", "-1", "1", "Escritório"),
		createReq("X", "1", "-2", "Escritório"),
		createReq("X", "1", "1.5", "Escritório"),
		createReq("X", "1", "1", " "),
		createReq("X", "1", "1", "Local de outra pessoa"),
	} {
		_, err := f.uc.CreateProduct(ctx, f.alice, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", req)
	}
}

func TestCreateProduct_RoundsPrice(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.CreateProduct(context.Background(), f.alice, createReq("Caneta", "1.999", "3", "Escritório"))
	require.NoError(t, err)
	assert.Equal(t, "2", out.Price.String())
}

func TestCreateProduct_PriceLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.CreateProduct(ctx, f.alice, createReq("Caro", "999999999999.99", "1", "Escritório"))
	require.NoError(t, err)
	assert.Equal(t, "999999999999.99", out.Price.String())

	for _, price := range []string{"1000000000000", "999999999999.999"} {
		_, err := f.uc.CreateProduct(ctx, f.alice, createReq("Caro demais", price, "1", "Escritório"))
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr, price)
		assert.Equal(t, "Preço acima do limite permitido.", vErr.Message)
	}

	p, err := f.uc.CreateProduct(ctx, f.alice, createReq("Mouse", "50", "3", "Escritório"))
	require.NoError(t, err)
	_, err = f.uc.UpdateProduct(ctx, f.alice, p.ID, dto.UpdateProductRequest{
		Name: "Mouse", Price: dec("1e12"), Quantity: dec("3"), Category: "perifericos",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListProducts_ScopedByOwnerAndLocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateProduct(ctx, f.alice, createReq("A1", "1", "1", "Escritório"))
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = f.uc.CreateProduct(ctx, f.alice, createReq("A2", "1", "1", "Escritório"))
	require.NoError(t, err)
	_, err = f.uc.CreateProduct(ctx, f.alice, createReq("N1", "1", "1", "Filial Norte"))
	require.NoError(t, err)
	_, err = f.uc.CreateProduct(ctx, f.bob, createReq("B1", "1", "1", "Escritório"))
	require.NoError(t, err)

	list, err := f.uc.ListProducts(ctx, f.alice, "Escritório")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A2", list[0].Name, "mais recente primeiro")
	assert.Equal(t, "A1", list[1].Name)

	list, err = f.uc.ListProducts(ctx, f.bob, "Escritório")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B1", list[0].Name)

	list, err = f.uc.ListProducts(ctx, f.alice, "Inexistente")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.uc.ListProducts(ctx, f.alice, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_OtherOwnerIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.uc.CreateProduct(ctx, f.alice, createReq("Mouse", "50", "3", "Escritório"))
	require.NoError(t, err)

	upd := dto.UpdateProductRequest{Name: "Mouse", Price: dec("50"), Quantity: dec("0"), Category: "perifericos"}
	_, err = f.uc.UpdateProduct(ctx, f.bob, p.ID, upd)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	out, err := f.uc.UpdateProduct(ctx, f.alice, p.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Quantity)
	assert.Equal(t, "perifericos", out.Category)
	assert.Equal(t, "Escritório", out.Location)

	_, err = f.uc.UpdateProduct(ctx, f.alice, p.ID, dto.UpdateProductRequest{Name: "Mouse"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.uc.CreateProduct(ctx, f.alice, createReq("Mouse", "50", "3", "Escritório"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.DeleteProduct(ctx, f.bob, p.ID), domain.ErrProductNotFound)
	require.NoError(t, f.uc.DeleteProduct(ctx, f.alice, p.ID))
	assert.ErrorIs(t, f.uc.DeleteProduct(ctx, f.alice, p.ID), domain.ErrProductNotFound)
}

func TestStatsAndReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.CreateProduct(ctx, f.alice, createReq("A", "10", "2", "Escritório"))
	require.NoError(t, err)
	_, err = f.uc.CreateProduct(ctx, f.alice, createReq("B", "5", "0", "Escritório"))
	require.NoError(t, err)

	stats, err := f.uc.Stats(ctx, f.alice, "Escritório")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalItems)
	assert.True(t, stats.TotalValue.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 2, stats.LowStockCount)

	pdf, filename, err := f.uc.StockReport(ctx, f.alice, "Escritório")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), pdf)
	assert.Regexp(t, `^estoque-\d{8}-\d{4}\.pdf$`, filename)
	assert.Equal(t, "Escritório", f.reports.got.Location)
	assert.Len(t, f.reports.got.Products, 2)
	assert.Equal(t, 2, f.reports.got.Stats.LowStockCount)
}
