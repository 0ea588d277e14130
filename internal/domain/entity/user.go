package entity

import (
	"regexp"
	"strings"
	"time"
)

// emailPattern é o formato aceito para emails de cadastro.
var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// User representa um usuário dono de locais de estoque e produtos.
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string // hash bcrypt; só é carregado pela leitura de credenciais
	ActiveLocation string // nome do local ativo
	Locations      []Location
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeEmail remove espaços e passa para minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail informa se o email (já normalizado) tem formato aceitável.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ResolveActiveLocation devolve o nome do local ativo, caindo para o primeiro local
// ou para FallbackLocationName quando o ponteiro está vazio.
func (u *User) ResolveActiveLocation() string {
	if u.ActiveLocation != "" {
		return u.ActiveLocation
	}
	if len(u.Locations) > 0 {
		return u.Locations[0].Name
	}
	return FallbackLocationName
}

// HasLocation informa se o usuário possui um local com esse nome.
func (u *User) HasLocation(name string) bool {
	for _, l := range u.Locations {
		if l.Name == name {
			return true
		}
	}
	return false
}
