package request

import (
	"context"
	"net/http"
	"strings"
)

// HeaderKeyUserID caller identity header set by the gateway in front of the api
const HeaderKeyUserID = "X-User-ID"

type key int

const (
	callerKey key = iota
)

// WithCaller context with caller identity
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// Caller caller identity from context
func Caller(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(callerKey).(string)
	return caller, ok && caller != ""
}

// HandleCaller middleware reading the caller identity header
func HandleCaller(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		caller := strings.TrimSpace(r.Header.Get(HeaderKeyUserID))
		if caller == "" {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	}

	return http.HandlerFunc(fn)
}
