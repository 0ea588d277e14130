package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
	"github.com/jhoicas/controle-estoque/pkg/jwt"
)

// maxPasswordBytes é o limite de entrada do bcrypt.
const maxPasswordBytes = 72

const msgPasswordTooLong = "A senha deve ter no máximo 72 bytes."

// JWTConfig configuração para geração dos tokens de sessão.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de identidade: cadastro, autenticação, login e sessão atual.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	cost     int
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost}
}

// WithBcryptCost troca o custo do bcrypt (testes usam bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// RegisterUser valida os campos, gera o hash da senha e persiste o usuário com os locais padrão.
// Devolve ErrEmailAlreadyExists se o email já estiver cadastrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := entity.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.NewValidationError("Todos os campos são obrigatórios.")
	}
	if !entity.ValidEmail(email) {
		return nil, domain.NewValidationError("Por favor, insira um email válido.")
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.NewValidationError(msgPasswordTooLong)
	}
	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.NewValidationError(msgPasswordTooLong)
		}
		return nil, fmt.Errorf("gerar hash da senha: %w", err)
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:             uuid.New().String(),
		Name:           name,
		Email:          email,
		PasswordHash:   string(hash),
		ActiveLocation: entity.FallbackLocationName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for i, l := range entity.DefaultLocations() {
		l.ID = uuid.New().String()
		l.UserID = user.ID
		l.Position = int64(i + 1)
		l.CreatedAt = now
		l.UpdatedAt = now
		user.Locations = append(user.Locations, l)
	}
	// A verificação acima não fecha a corrida entre dois cadastros simultâneos;
	// o índice único devolve ErrEmailAlreadyExists para o segundo.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Authenticate confere email e senha. Credenciais inválidas não são erro:
// devolve "" e nil. Só falhas de armazenamento viram erro.
func (uc *AuthUseCase) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil
	}
	user, err := uc.userRepo.GetCredentialsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", nil
		}
		return "", fmt.Errorf("comparar hash: %w", err)
	}
	return user.ID, nil
}

// Login autentica e emite o token de sessão. Credenciais inválidas → ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	userID, err := uc.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me devolve o usuário da sessão atual.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		ActiveLocation: u.ResolveActiveLocation(),
		CreatedAt:      u.CreatedAt,
	}
}
