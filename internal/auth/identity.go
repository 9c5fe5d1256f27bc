package auth

import (
	"context"

	apperrors "github.com/AnshuShetty/HotelManagementBackend/pkg/errors"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/model"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the verified requester attached to a request context by the
// authentication middleware. The core never re-derives it.
type Identity struct {
	ID   string
	Role string
}

func (i *Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok && identity != nil
}

// RequireAuthenticated returns the verified identity or an UNAUTHORIZED error.
func RequireAuthenticated(ctx context.Context) (*Identity, error) {
	identity, ok := FromContext(ctx)
	if !ok {
		return nil, apperrors.Unauthorized("Not authenticated")
	}
	return identity, nil
}

// RequireAdmin requires authentication first, then the ADMIN role.
func RequireAdmin(ctx context.Context) (*Identity, error) {
	identity, err := RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() {
		return nil, apperrors.Forbidden("Admin access required")
	}
	return identity, nil
}
