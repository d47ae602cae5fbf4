package shared

import "context"

// ctxKeySession keys the request's session in the context. Middleware stores
// it once per request; handlers read it back for flash messages and CSRF.
type ctxKeySession struct{}

// ContextWithSession attaches the session to the request context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKeySession{}, sess)
}

// SessionFromContext returns the session, or nil when the request never went
// through the session middleware.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(ctxKeySession{}).(*Session)
	return sess
}
