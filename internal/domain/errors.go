package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrLocationNotFound   = errors.New("local de estoque não encontrado")
	ErrProductNotFound    = errors.New("produto não encontrado")
	ErrEmailAlreadyExists = errors.New("email já cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("não autorizado")
)

// ValidationError descreve uma entrada rejeitada com uma mensagem apresentável ao usuário.
// errors.Is(err, ErrInvalidInput) vale para qualquer ValidationError.
type ValidationError struct {
	Message string
}

// NewValidationError constrói um ValidationError com a mensagem dada.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// IsNotFound informa se err pertence à família "não encontrado".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrLocationNotFound) ||
		errors.Is(err, ErrProductNotFound)
}
