package auth

import (
	"context"

	"github.com/cafepos/backend/internal/domain/checkout"
)

type userContextKey struct{}

// ContextWithUser attaches the resolved session user to the context.
// The HTTP auth middleware calls this after validating the bearer token.
func ContextWithUser(ctx context.Context, user checkout.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the session user, if any.
func UserFromContext(ctx context.Context) (checkout.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(checkout.User)
	return user, ok
}

// ContextUserProvider resolves the current user from the request context.
// It returns (nil, nil) when no one is signed in; the checkout service maps
// that to its unauthenticated condition before any network call is made.
type ContextUserProvider struct{}

// NewContextUserProvider creates a provider backed by the request context.
func NewContextUserProvider() *ContextUserProvider {
	return &ContextUserProvider{}
}

// CurrentUser implements checkout.CurrentUserProvider.
func (p *ContextUserProvider) CurrentUser(ctx context.Context) (*checkout.User, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, nil
	}
	return &user, nil
}
