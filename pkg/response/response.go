// Package response writes the JSON bodies the storefront API speaks.
//
// Success bodies are written verbatim (the product list is a bare array, the
// cart is {"items": [...]}); errors are {"error": msg} with the status from
// the apperr taxonomy.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success writes a 200 response with v as the body.
func Success(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Created writes a 201 response with v as the body.
func Created(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusCreated, v)
}

// Error writes {"error": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// WriteError maps err through the apperr taxonomy and writes it. Internal
// causes are masked behind a generic message.
func WriteError(w http.ResponseWriter, err error) {
	Error(w, apperr.HTTPStatus(err), apperr.Message(err))
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}
