package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shashiranjanraj/vastra/pkg/apperr"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

func body(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	return m
}

func TestSuccessWritesVerbatim(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, []string{"a", "b"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var list []string
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 2 {
		t.Fatalf("body not written verbatim: %s", rec.Body.String())
	}
}

func TestErrorShape(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Error(rec, http.StatusBadRequest, "Invalid quantity")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := body(t, rec)["error"]; got != "Invalid quantity" {
		t.Fatalf("unexpected error body: %v", got)
	}
}

func TestWriteErrorMapsTaxonomy(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.Validation("Token required"), http.StatusBadRequest, "Token required"},
		{apperr.Unauthorized("Invalid token"), http.StatusUnauthorized, "Invalid token"},
		{apperr.Forbidden("Access denied. Admins only."), http.StatusForbidden, "Access denied. Admins only."},
		{apperr.NotFound("Product not found"), http.StatusNotFound, "Product not found"},
		{apperr.InsufficientStock("Insufficient stock"), http.StatusBadRequest, "Insufficient stock"},
		{apperr.EmptyCart("Cart is empty"), http.StatusBadRequest, "Cart is empty"},
		{errors.New("driver exploded"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		response.WriteError(rec, tc.err)
		if rec.Code != tc.status {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
		if got := body(t, rec)["error"]; got != tc.msg {
			t.Errorf("%v: unexpected message %v", tc.err, got)
		}
	}
}

func TestWriteErrorMasksInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WriteError(rec, apperr.Internal("Failed to fetch cart", errors.New("dial tcp: refused")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := body(t, rec)["error"]; msg != "Failed to fetch cart" {
		t.Fatalf("unexpected message %q", msg)
	}
	if strings.Contains(rec.Body.String(), "dial tcp") {
		t.Fatal("wrapped cause leaked to the client")
	}
}

func TestUnauthorizedAndForbiddenHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Unauthorized(rec)
	if rec.Code != http.StatusUnauthorized || body(t, rec)["error"] != "Unauthorized" {
		t.Fatalf("unexpected 401 response: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	response.Forbidden(rec, "Access denied. Admins only.")
	if rec.Code != http.StatusForbidden || body(t, rec)["error"] != "Access denied. Admins only." {
		t.Fatalf("unexpected 403 response: %d %s", rec.Code, rec.Body.String())
	}
}
