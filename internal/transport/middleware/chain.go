package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain folds middleware into one. Order is left to right from the
// outside in: Chain(mw1, mw2)(h) = mw1(mw2(h)), so mw1 sees the request
// first and the response last.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}
