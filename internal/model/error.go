package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeGateway            = "GATEWAY_ERROR"
	ErrCodeUploadRejected     = "UPLOAD_REJECTED"
	ErrCodePersistenceCorrupt = "PERSISTENCE_CORRUPT"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation failure for a required or
// malformed field. Reported before any I/O is attempted.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// NewGatewayError wraps a failed backend call. Local state must be left
// unchanged by the caller.
func NewGatewayError(message string) *DomainError {
	return NewDomainError(ErrCodeGateway, message)
}

// hasCode reports whether err is (or wraps) a DomainError with the given code.
func hasCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsGateway reports whether err is a failed backend call.
func IsGateway(err error) bool { return hasCode(err, ErrCodeGateway) }

// IsUploadRejected reports whether err is an upload precheck failure.
func IsUploadRejected(err error) bool { return hasCode(err, ErrCodeUploadRejected) }

// IsNotFound reports whether err is a missing-product failure.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeProductNotFound) }

// Common domain errors
var (
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Produto não encontrado")
	ErrEmptyCart         = NewValidationError("O carrinho está vazio")
	ErrInvalidWhatsApp   = NewValidationError("Número deve conter apenas dígitos (10-15 caracteres)")
	ErrNotImage          = NewDomainError(ErrCodeUploadRejected, "O arquivo deve ser uma imagem")
	ErrImageTooLarge     = NewDomainError(ErrCodeUploadRejected, "A imagem deve ter no máximo 5MB")
	ErrInvalidCredential = NewDomainError(ErrCodeUnauthorised, "Email ou senha incorretos")
	ErrNotAuthenticated  = NewDomainError(ErrCodeUnauthorised, "Nenhum usuário autenticado")
)
