package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const (
	// FallbackLocationName é o local ativo quando o usuário não tem nenhum local.
	FallbackLocationName = "Depósito Central"
	// DefaultLocationIcon é o ícone de um local criado sem ícone.
	DefaultLocationIcon = "warehouse"
)

// Location representa um local de estoque (depósito, filial) de um usuário.
// Produtos referenciam o local pelo ID; o nome pode mudar sem órfãos.
type Location struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Icon        string
	Position    int64 // ordem de inserção dentro do usuário
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultLocations são os locais semeados em todo cadastro novo.
func DefaultLocations() []Location {
	return []Location{
		{Name: FallbackLocationName, Description: "Estoque principal", Icon: "warehouse"},
		{Name: "Filial Norte", Description: "Unidade de distribuição", Icon: "truck"},
		{Name: "Escritório", Description: "Itens administrativos", Icon: "briefcase"},
	}
}

// NormalizeLocationName remove espaços das pontas e compõe acentos (NFC), de modo que
// "Depósito" digitado em NFD e em NFC resolvam para o mesmo local.
func NormalizeLocationName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// ApplyDefaults preenche ícone padrão e normaliza o nome.
func (l *Location) ApplyDefaults() {
	l.Name = NormalizeLocationName(l.Name)
	l.Description = strings.TrimSpace(l.Description)
	if strings.TrimSpace(l.Icon) == "" {
		l.Icon = DefaultLocationIcon
	}
}

type legacyLocation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DecodeLegacyLocations converte a lista de locais de documentos antigos, em que cada item
// pode ser uma string simples ("Depósito Central") ou um objeto {name, description, icon},
// para o formato único Location. Itens sem nome e nomes repetidos são descartados.
func DecodeLegacyLocations(raw json.RawMessage) ([]Location, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("locais legados: %w", err)
	}
	out := make([]Location, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		var loc Location
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			loc = Location{Name: name}
		} else {
			var obj legacyLocation
			if err := json.Unmarshal(item, &obj); err != nil {
				return nil, fmt.Errorf("local legado %d: formato desconhecido: %w", i, err)
			}
			loc = Location{Name: obj.Name, Description: obj.Description, Icon: obj.Icon}
		}
		loc.ApplyDefaults()
		if loc.Name == "" {
			continue
		}
		if _, dup := seen[loc.Name]; dup {
			continue
		}
		seen[loc.Name] = struct{}{}
		out = append(out, loc)
	}
	return out, nil
}
