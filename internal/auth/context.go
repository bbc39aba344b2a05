package auth

import "context"

type ctxKey int

const userIDCtxKey ctxKey = 0

// ContextWithUserID returns a context carrying the authenticated user ID
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// UserIDFromContext returns the authenticated user ID set by the auth middleware
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDCtxKey).(int)
	return userID, ok
}
