package httpx

import "context"

type ctxKey string

// CtxKeySession holds the fingerprint of the session cookie that
// authenticated the request.
const CtxKeySession ctxKey = "session"

func WithSession(ctx context.Context, fingerprint string) context.Context {
	return context.WithValue(ctx, CtxKeySession, fingerprint)
}

func SessionFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeySession).(string)
	return v
}
