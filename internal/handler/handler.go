// Package handler binds the storefront and admin controllers to a JSON HTTP
// API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/masknetdesign/mercado-online/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps a domain error to its HTTP status and writes the standard
// error envelope.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	code := model.ErrCodeInternalError
	message := "erro interno"

	var de *model.DomainError
	if errors.As(err, &de) {
		code = de.Code
		message = de.Message
	}

	status := statusFor(code)
	logger.Error().Err(err).Str("code", code).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeInvalidJSON, model.ErrCodeUploadRejected:
		return http.StatusBadRequest
	case model.ErrCodeProductNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON parses the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "corpo da requisição inválido")
	}
	return nil
}

// methodNotAllowed writes the standard 405 response.
func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, model.ErrorResponse{
		Error:   "METHOD_NOT_ALLOWED",
		Message: "método não permitido",
	})
}
