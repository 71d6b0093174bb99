package server

import "context"

// contextKey is unexported so request-scoped values set by this package
// cannot be shadowed from outside it.
type contextKey int

const (
	ctxRequestID contextKey = iota
	ctxAPIVersion
)

// requestIDFrom returns the request ID stored by the request ID middleware,
// or the empty string when the middleware has not run.
func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

func apiVersionFrom(ctx context.Context) string {
	v, _ := ctx.Value(ctxAPIVersion).(string)
	return v
}
