// Package controllers binds HTTP requests to the storefront services and
// writes the API's JSON wire bodies. Every service error is mapped through
// the apperr taxonomy; nothing propagates past a handler.
package controllers

import (
	"net/http"
	"sort"

	"github.com/shashiranjanraj/vastra/internal/identity"
)

// callerUID returns the verified caller's uid attached by RequireAuth.
// Empty when the route is public or the middleware did not run.
func callerUID(r *http.Request) string {
	id, _ := identity.FromContext(r.Context())
	return id.UID
}

// validationMessage picks a deterministic single message out of a
// field-error map for APIs that speak one error string at a time.
func validationMessage(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return errs[keys[0]]
}
