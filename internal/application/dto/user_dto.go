package dto

import "time"

// RegisterRequest entrada para cadastro (a senha em texto é transformada em hash no use case).
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse saída do cadastro.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// UserResponse saída de um usuário (nunca com senha).
type UserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ActiveLocation string    `json:"activeLocation"`
	CreatedAt      time.Time `json:"createdAt"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse saída do login: o token também vai no cookie de sessão.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
