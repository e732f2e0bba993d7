package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/recipebox/pkg/apperr"
	"github.com/shashiranjanraj/recipebox/pkg/logger"
)

type envelope struct {
	Status  int         `json:"status"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// NoContent sends a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Fail renders err. Errors without a known kind are logged and returned as a
// generic 500 so internals never reach the client.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if !ok || e.Kind == apperr.KindInternal {
		logger.WithCtx(r.Context()).Error("request failed",
			"error", err.Error(),
			"method", r.Method,
			"path", r.URL.Path,
		)
		Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	status := StatusFor(e.Kind)
	body := envelope{Status: status, Code: e.Kind.String(), Message: e.Message}
	if len(e.Fields) > 0 {
		body.Errors = e.Fields
	}
	if e.Kind == apperr.KindUnauthenticated {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	}
	write(w, status, body)
}

// Error sends a JSON error response with a bare message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Code: codeFor(status), Message: message})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, apperr.ErrUnauthorized)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, apperr.ErrNotFound)
}

// MethodNotAllowed sends a 405 for the request's method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, apperr.MethodNotAllowed(r.Method))
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return apperr.KindValidation.String()
	case http.StatusUnauthorized:
		return apperr.KindUnauthenticated.String()
	case http.StatusNotFound:
		return apperr.KindNotFound.String()
	case http.StatusMethodNotAllowed:
		return apperr.KindMethodNotAllowed.String()
	}
	return apperr.KindInternal.String()
}
