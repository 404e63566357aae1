package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/internal/identity"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	"github.com/shashiranjanraj/vastra/pkg/docstore"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

const (
	defaultName = "New User"
)

// AuthService bootstraps user profiles from verified identities. A user
// document is created on first authenticated contact and never hard-deleted.
type AuthService struct {
	users    docstore.Collection
	verifier identity.TokenVerifier
	roles    identity.RoleProvider
}

func NewAuthService(store docstore.Store, verifier identity.TokenVerifier, roles identity.RoleProvider) *AuthService {
	return &AuthService{
		users:    store.Collection("users"),
		verifier: verifier,
		roles:    roles,
	}
}

// AuthResult is the outcome of Authenticate.
type AuthResult struct {
	UserID  string
	Role    string
	Created bool // true on first contact (signup), false on login
}

// Authenticate verifies the identity token and ensures a user document
// exists. role and name only apply on first contact; an existing user's
// stored role wins over whatever the request claims.
func (s *AuthService) Authenticate(ctx context.Context, token, role, name string) (AuthResult, error) {
	if token == "" {
		return AuthResult{}, apperr.Validation("Token required")
	}

	id, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return AuthResult{}, apperr.Unauthorized("Invalid token")
	}

	var existing models.User
	err = s.users.Get(ctx, id.UID, &existing)
	if err == nil {
		return AuthResult{UserID: id.UID, Role: existing.Role}, nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return AuthResult{}, apperr.Internal("Failed to fetch user", err)
	}

	if role == "" {
		role = identity.RoleDefault
	}
	if name == "" {
		name = defaultName
	}

	if err := s.roles.SetRole(ctx, id.UID, role); err != nil {
		return AuthResult{}, apperr.Internal("Failed to store role claim", err)
	}

	user := models.User{Name: name, Email: id.Email, Role: role}
	if err := s.users.Set(ctx, id.UID, user); err != nil {
		return AuthResult{}, apperr.Internal("Failed to register user", err)
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", id.UID, "role", role)
	return AuthResult{UserID: id.UID, Role: role, Created: true}, nil
}

// Profile returns the caller's user document.
func (s *AuthService) Profile(ctx context.Context, uid string) (models.User, error) {
	var user models.User
	err := s.users.Get(ctx, uid, &user)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.User{}, apperr.NotFound("User not found")
	}
	if err != nil {
		return models.User{}, apperr.Internal("Failed to fetch profile", err)
	}
	return user, nil
}

// UpdateProfile overwrites the display name only.
func (s *AuthService) UpdateProfile(ctx context.Context, uid, name string) error {
	if name == "" {
		return apperr.Validation("Name is required")
	}

	if err := s.users.Update(ctx, uid, map[string]interface{}{"name": name}); err != nil {
		return apperr.Internal("Failed to update profile", err)
	}
	return nil
}
