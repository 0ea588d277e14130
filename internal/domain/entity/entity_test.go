package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@x.com", "joao.silva@empresa.com.br", "x-y@dominio.org"} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "sem-arroba", "a@b", "a@@x.com", "a@x.company"} {
		assert.False(t, ValidEmail(bad), bad)
	}
	assert.Equal(t, "ana@x.com", NormalizeEmail("  Ana@X.COM "))
}

func TestResolveActiveLocation(t *testing.T) {
	u := &User{ActiveLocation: "Filial Norte"}
	assert.Equal(t, "Filial Norte", u.ResolveActiveLocation())

	u = &User{Locations: []Location{{Name: "Matriz"}, {Name: "Loja"}}}
	assert.Equal(t, "Matriz", u.ResolveActiveLocation())
	assert.True(t, u.HasLocation("Loja"))
	assert.False(t, u.HasLocation("loja"))

	assert.Equal(t, FallbackLocationName, (&User{}).ResolveActiveLocation())
}

func TestNormalizeLocationName_ComposesAccents(t *testing.T) {
	nfd := "Depo\u0301sito Central"
	assert.Equal(t, FallbackLocationName, NormalizeLocationName("  "+nfd+" "))
}

func TestDecodeLegacyLocations(t *testing.T) {
	raw := json.RawMessage(`[
		"Depósito Central",
		{"name": "Filial Norte", "description": "Unidade de distribuição", "icon": "truck"},
		{"name": "  "},
		"Depósito Central",
		{"name": "Escritório"}
	]`)
	locs, err := DecodeLegacyLocations(raw)
	require.NoError(t, err)
	require.Len(t, locs, 3)

	assert.Equal(t, "Depósito Central", locs[0].Name)
	assert.Equal(t, DefaultLocationIcon, locs[0].Icon)
	assert.Equal(t, "truck", locs[1].Icon)
	assert.Equal(t, "Unidade de distribuição", locs[1].Description)
	assert.Equal(t, DefaultLocationIcon, locs[2].Icon)
}

func TestDecodeLegacyLocations_EmptyAndInvalid(t *testing.T) {
	locs, err := DecodeLegacyLocations(nil)
	require.NoError(t, err)
	assert.Empty(t, locs)

	locs, err = DecodeLegacyLocations(json.RawMessage("null"))
	require.NoError(t, err)
	assert.Empty(t, locs)

	_, err = DecodeLegacyLocations(json.RawMessage(`{"name": "x"}`))
	assert.Error(t, err)

	_, err = DecodeLegacyLocations(json.RawMessage(`[42]`))
	assert.Error(t, err)
}

func TestProductIsLowStock(t *testing.T) {
	p := &Product{Quantity: 4, Price: decimal.NewFromInt(1)}
	assert.True(t, p.IsLowStock())
	p.Quantity = LowStockThreshold
	assert.False(t, p.IsLowStock())
	p.Quantity = 0
	assert.True(t, p.IsLowStock())
}
