package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/controle-estoque/internal/domain/repository"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/memory"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

const legacyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

var dump = strings.ReplaceAll(dumpTemplate, "HASH", legacyHash)

const dumpTemplate = `{
  "users": [
    {
      "_id": {"$oid": "u1"},
      "name": "Ana",
      "email": "Ana@X.com",
      "password": "HASH",
      "workspaces": ["Depósito Central", "Loja"],
      "activeWorkspace": "Loja",
      "createdAt": {"$date": "2024-01-02T03:04:05Z"}
    },
    {"_id": "u2", "name": "Sem senha", "email": "x@x.com"},
    {"_id": "u4", "name": "Texto puro", "email": "puro@x.com", "password": "segredo123"},
    {
      "_id": "u3", "name": "Bia", "email": "bia@x.com", "password": "HASH",
      "locations": [{"name": "Matriz", "icon": "store"}],
      "activeLocation": "Fantasma"
    }
  ],
  "products": [
    {"user": {"$oid": "u1"}, "name": "Mouse", "price": 50, "quantity": 3, "category": "perifericos", "location": "Loja"},
    {"user": "u1", "name": "Cabo", "price": "10.555", "quantity": 2.7, "location": "Garagem"},
    {"userId": "u3", "name": "Caneta", "price": 1, "quantity": -4},
    {"user": "u2", "name": "Órfão", "price": 1, "quantity": 1}
  ]
}`

func newImporter(store *memory.Store) *importer {
	return &importer{
		users:     store.Users(),
		locations: store.Locations(),
		products:  store.Products(),
		log:       logger.Nop(),
		now:       func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestImporter_Run(t *testing.T) {
	exp, err := decodeExport(strings.NewReader(dump), false)
	require.NoError(t, err)

	store := memory.NewStore()
	ctx := context.Background()
	rep, err := newImporter(store).run(ctx, exp)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Users)
	assert.Equal(t, 2, rep.SkippedUsers)
	assert.Equal(t, 3, rep.Products)
	assert.Equal(t, 1, rep.SkippedProducts)
	assert.Equal(t, 1, rep.AddedLocations)

	ana, err := store.Users().GetCredentialsByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.NotNil(t, ana)
	full, err := store.Users().GetByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loja", full.ActiveLocation)
	assert.Equal(t, 2024, full.CreatedAt.Year())
	assert.Len(t, full.Locations, 3, "Garagem criado na importação")

	garagem, err := store.Products().List(ctx, repository.ProductFilter{UserID: ana.ID, LocationName: "Garagem"})
	require.NoError(t, err)
	require.Len(t, garagem, 1)
	assert.Equal(t, "10.56", garagem[0].Price.StringFixed(2))
	assert.Equal(t, 2, garagem[0].Quantity)
	assert.Equal(t, "Geral", garagem[0].Category)

	bia, err := store.Users().GetCredentialsByEmail(ctx, "bia@x.com")
	require.NoError(t, err)
	biaFull, err := store.Users().GetByID(ctx, bia.ID)
	require.NoError(t, err)
	assert.Equal(t, "Matriz", biaFull.ActiveLocation, "ativo desconhecido cai para o primeiro local")
	matriz, err := store.Products().List(ctx, repository.ProductFilter{UserID: bia.ID, LocationName: "Matriz"})
	require.NoError(t, err)
	require.Len(t, matriz, 1)
	assert.Equal(t, 0, matriz[0].Quantity)
}

func TestImporter_RerunSkipsExistingEmails(t *testing.T) {
	exp, err := decodeExport(strings.NewReader(dump), false)
	require.NoError(t, err)
	store := memory.NewStore()
	im := newImporter(store)

	_, err = im.run(context.Background(), exp)
	require.NoError(t, err)
	rep, err := im.run(context.Background(), exp)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Users)
	assert.Equal(t, 0, rep.Products)
}

func TestDecodeExport_Latin1(t *testing.T) {
	utf8 := `{"users":[{"_id":"u1","name":"João","email":"j@x.com","password":"` + legacyHash + `","locations":["Escritório"]}]}`
	latin1, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)

	exp, err := decodeExport(bytes.NewReader([]byte(latin1)), true)
	require.NoError(t, err)
	require.Len(t, exp.Users, 1)
	assert.Equal(t, "João", exp.Users[0].Name)

	user, err := buildUser(exp.Users[0], time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Escritório", user.Locations[0].Name)
	assert.Equal(t, "Escritório", user.ActiveLocation)
}

func TestBuildUser_RejectsNonBcryptPassword(t *testing.T) {
	for _, pw := range []string{"segredo123", legacyHash[:40]} {
		_, err := buildUser(legacyUser{Email: "a@x.com", Password: pw}, time.Now())
		assert.Error(t, err, pw)
	}

	user, err := buildUser(legacyUser{Email: "a@x.com", Password: legacyHash}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, legacyHash, user.PasswordHash)
}

func TestLegacyHelpers(t *testing.T) {
	assert.Equal(t, "abc", legacyID([]byte(`"abc"`)))
	assert.Equal(t, "abc", legacyID([]byte(`{"$oid":"abc"}`)))
	assert.Equal(t, "", legacyID(nil))

	fallback := time.Unix(0, 0).UTC()
	assert.Equal(t, fallback, legacyTime([]byte(`"ontem"`), fallback))
	assert.Equal(t, 2023, legacyTime([]byte(`"2023-05-01T00:00:00Z"`), fallback).Year())
}
