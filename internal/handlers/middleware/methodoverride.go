package middleware

import (
	"net/http"
	"strings"
)

// MethodOverrideMiddleware rewrites the method of POST requests that carry a
// '_method' query parameter, so plain HTML forms can simulate PUT and DELETE.
// Must wrap the router: the rewrite has to happen before routes are matched.
// Only the method is touched, the body is passed through untouched.
func MethodOverrideMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				if m := r.URL.Query().Get("_method"); m != "" {
					r.Method = strings.ToUpper(m)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
