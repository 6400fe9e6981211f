package shared

import (
	"context"

	"github.com/google/uuid"
)

// Actor is the identity performing a mutation. It is resolved once at the
// request boundary and carried through context, so privileged paths are
// checked explicitly instead of being inferred from an ambient execution role.
type Actor struct {
	UserID          uuid.UUID
	CompanyID       *uuid.UUID
	Email           string
	IsPlatformAdmin bool
	IsSystem        bool
}

// SystemActor is the synthetic platform-admin identity used when a mutation
// is system-initiated rather than end-user-initiated.
var SystemActor = Actor{
	UserID:          uuid.MustParse("00000000-0000-0000-0000-000000000001"),
	Email:           "system@fleetcore.internal",
	IsPlatformAdmin: true,
	IsSystem:        true,
}

type actorContextKey struct{}

// WithActor returns a context carrying the given actor
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the actor stored in the context, falling back to
// the system actor when none is present.
func ActorFromContext(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorContextKey{}).(Actor); ok {
		return actor
	}
	return SystemActor
}

// HasActor reports whether an end-user actor is present in the context
func HasActor(ctx context.Context) bool {
	_, ok := ctx.Value(actorContextKey{}).(Actor)
	return ok
}
