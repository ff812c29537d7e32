package rbac

import "context"

type ctxKey string

const contextAccessKey ctxKey = "access"

func ContextWithAccess(ctx context.Context, access Access) context.Context {
	return context.WithValue(ctx, contextAccessKey, access)
}

func AccessFromContext(ctx context.Context) (Access, bool) {
	a, ok := ctx.Value(contextAccessKey).(Access)
	return a, ok
}
