package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func statusFor(e *domain.Error) int {
	switch e.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		switch e.Reason {
		case domain.AuthMalformed, domain.AuthExpired:
			return http.StatusForbidden
		default:
			return http.StatusUnauthorized
		}
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with the status its kind maps to. Only the client-safe
// message is sent; server errors are logged with their cause.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := domain.AsError(err)
	status := statusFor(e)
	if status >= http.StatusInternalServerError {
		h.logInternalServerError(r, err)
	}
	h.errorResponse(w, r, status, e.Message)
}

// badRequest reports a decoding or validation failure as 400.
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxBytesErr *http.MaxBytesError

	msg := err.Error()
	switch {
	case errors.As(err, &validationErrors):
		msg = validationErrors[0].Translate(h.translator)
	case errors.As(err, &typeErr):
		msg = fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		msg = "request body contains malformed JSON"
	case errors.Is(err, io.EOF):
		msg = "request body must not be empty"
	case errors.As(err, &maxBytesErr):
		msg = "request body is too large"
	}

	h.errorResponse(w, r, http.StatusBadRequest, msg)
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.writeError(w, r, domain.InternalError(err))
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

func (h *Handler) createdResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusCreated, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}
