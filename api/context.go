package api

import (
	"context"
	"errors"
)

type keyType string

const (
	userIDKey keyType = "userID"
)

// ctxWithUserID adds a user ID to the context
func ctxWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves a user ID from the context
func ctxGetUserID(ctx context.Context) (string, error) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return "", errors.New("key not found in context")
	}
	asString, ok := value.(string)
	if !ok {
		return "", errors.New("value is not of type `string`")
	}
	return asString, nil
}
