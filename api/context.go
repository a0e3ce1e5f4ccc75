package api

import (
	"context"
	"errors"

	"github.com/tiaraw/portfolio-backend/auth"
)

type keyType string

const (
	sessionIDKey keyType = "sessionID"
	gateKey      keyType = "gate"
)

// ctxWithSession records the authenticated session on the request context.
func ctxWithSession(ctx context.Context, sessionID string, gate *auth.Gate) context.Context {
	ctx = context.WithValue(ctx, sessionIDKey, sessionID)
	return context.WithValue(ctx, gateKey, gate)
}

// ctxGetGate retrieves the session gate from the context.
func ctxGetGate(ctx context.Context) (*auth.Gate, error) {
	value := ctx.Value(gateKey)
	if value == nil {
		return nil, errors.New("no session in context")
	}
	gate, ok := value.(*auth.Gate)
	if !ok {
		return nil, errors.New("value is not of type `*auth.Gate`")
	}
	return gate, nil
}
