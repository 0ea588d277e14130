package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

// legacyExport é o dump JSON das coleções users e products.
type legacyExport struct {
	Users    []legacyUser    `json:"users"`
	Products []legacyProduct `json:"products"`
}

type legacyUser struct {
	ID              json.RawMessage `json:"_id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	Locations       json.RawMessage `json:"locations"`
	Workspaces      json.RawMessage `json:"workspaces"`
	ActiveLocation  string          `json:"activeLocation"`
	ActiveWorkspace string          `json:"activeWorkspace"`
	CreatedAt       json.RawMessage `json:"createdAt"`
}

type legacyProduct struct {
	User        json.RawMessage `json:"user"`
	UserID      json.RawMessage `json:"userId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    decimal.Decimal `json:"quantity"`
	Category    string          `json:"category"`
	Location    string          `json:"location"`
	CreatedAt   json.RawMessage `json:"createdAt"`
}

// decodeExport lê o dump; latin1 converte de ISO-8859-1 para UTF-8 antes do parse.
func decodeExport(r io.Reader, latin1 bool) (*legacyExport, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	var exp legacyExport
	if err := json.NewDecoder(r).Decode(&exp); err != nil {
		return nil, fmt.Errorf("decodificar exportação: %w", err)
	}
	return &exp, nil
}

// legacyID aceita "abc" ou {"$oid": "abc"}.
func legacyID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var oid struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(raw, &oid); err == nil {
		return oid.OID
	}
	return ""
}

// legacyTime aceita RFC 3339 ou {"$date": "..."}; valores ausentes viram fallback.
func legacyTime(raw json.RawMessage, fallback time.Time) time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var d struct {
			Date string `json:"$date"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return fallback
		}
		s = d.Date
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fallback
	}
	return t.UTC()
}

// buildUser converte um usuário antigo; "workspaces"/"activeWorkspace" são os nomes
// mais antigos de "locations"/"activeLocation".
func buildUser(lu legacyUser, now time.Time) (*entity.User, error) {
	email := entity.NormalizeEmail(lu.Email)
	if email == "" || lu.Password == "" {
		return nil, errors.New("usuário sem email ou senha")
	}
	if _, err := bcrypt.Cost([]byte(lu.Password)); err != nil {
		return nil, fmt.Errorf("senha não é um hash bcrypt: %w", err)
	}
	raw := lu.Locations
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		raw = lu.Workspaces
	}
	locs, err := entity.DecodeLegacyLocations(raw)
	if err != nil {
		return nil, err
	}
	if locs == nil {
		locs = entity.DefaultLocations()
	}
	created := legacyTime(lu.CreatedAt, now)
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(lu.Name),
		Email:        email,
		PasswordHash: lu.Password,
		CreatedAt:    created,
		UpdatedAt:    now,
	}
	for i := range locs {
		locs[i].ID = uuid.New().String()
		locs[i].UserID = user.ID
		locs[i].CreatedAt = created
		locs[i].UpdatedAt = now
	}
	user.Locations = locs

	active := entity.NormalizeLocationName(lu.ActiveLocation)
	if active == "" {
		active = entity.NormalizeLocationName(lu.ActiveWorkspace)
	}
	if !user.HasLocation(active) {
		active = ""
	}
	user.ActiveLocation = active
	user.ActiveLocation = user.ResolveActiveLocation()
	return user, nil
}

type importReport struct {
	Users           int
	SkippedUsers    int
	Products        int
	SkippedProducts int
	AddedLocations  int
}

// importer grava o dump pelos repositórios da aplicação.
type importer struct {
	users     repository.UserRepository
	locations repository.LocationRepository
	products  repository.ProductRepository
	log       *logger.Logger
	now       func() time.Time
}

func (im *importer) run(ctx context.Context, exp *legacyExport) (importReport, error) {
	var rep importReport
	now := im.now()
	owners := make(map[string]*entity.User, len(exp.Users))

	for i, lu := range exp.Users {
		user, err := buildUser(lu, now)
		if err != nil {
			rep.SkippedUsers++
			im.log.Warn().Int("index", i).Err(err).Msg("usuário ignorado")
			continue
		}
		if err := im.users.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				rep.SkippedUsers++
				im.log.Warn().Str("email", user.Email).Msg("email já importado")
				continue
			}
			return rep, fmt.Errorf("criar usuário %s: %w", user.Email, err)
		}
		rep.Users++
		if id := legacyID(lu.ID); id != "" {
			owners[id] = user
		}
	}

	for i, lp := range exp.Products {
		ownerID := legacyID(lp.User)
		if ownerID == "" {
			ownerID = legacyID(lp.UserID)
		}
		owner, ok := owners[ownerID]
		name := strings.TrimSpace(lp.Name)
		if !ok || name == "" {
			rep.SkippedProducts++
			im.log.Warn().Int("index", i).Str("owner", ownerID).Msg("produto ignorado")
			continue
		}
		loc, added, err := im.ensureLocation(ctx, owner, lp.Location, now)
		if err != nil {
			return rep, err
		}
		if added {
			rep.AddedLocations++
		}
		qty := lp.Quantity.Floor()
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		price := lp.Price.Round(2)
		if price.IsNegative() {
			price = decimal.Zero
		}
		category := strings.TrimSpace(lp.Category)
		if category == "" {
			category = entity.DefaultCategory
		}
		created := legacyTime(lp.CreatedAt, now)
		err = im.products.Create(ctx, &entity.Product{
			ID:          uuid.New().String(),
			UserID:      owner.ID,
			LocationID:  loc.ID,
			Name:        name,
			Description: strings.TrimSpace(lp.Description),
			Price:       price,
			Quantity:    int(qty.IntPart()),
			Category:    category,
			CreatedAt:   created,
			UpdatedAt:   now,
		})
		if err != nil {
			return rep, fmt.Errorf("criar produto %q: %w", name, err)
		}
		rep.Products++
	}
	return rep, nil
}

// ensureLocation resolve o local do produto; produtos sem local vão para o ativo do dono
// e locais desconhecidos são criados.
func (im *importer) ensureLocation(ctx context.Context, owner *entity.User, name string, now time.Time) (*entity.Location, bool, error) {
	name = entity.NormalizeLocationName(name)
	if name == "" {
		name = owner.ResolveActiveLocation()
	}
	loc, err := im.locations.GetByName(ctx, owner.ID, name)
	if err != nil {
		return nil, false, err
	}
	if loc != nil {
		return loc, false, nil
	}
	loc = &entity.Location{ID: uuid.New().String(), UserID: owner.ID, Name: name, CreatedAt: now, UpdatedAt: now}
	loc.ApplyDefaults()
	created, err := im.locations.AddIfAbsent(ctx, loc)
	if err != nil {
		return nil, false, fmt.Errorf("criar local %q: %w", name, err)
	}
	if !created {
		loc, err = im.locations.GetByName(ctx, owner.ID, name)
		if err != nil || loc == nil {
			return nil, false, fmt.Errorf("reler local %q: %w", name, err)
		}
	}
	return loc, created, nil
}
