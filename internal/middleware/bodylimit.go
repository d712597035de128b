package middleware

import "net/http"

// LimitBody caps request body sizes at maxBytes. Reads past the cap fail,
// which surfaces as a decode error in the handler. A non-positive limit
// disables the cap.
func LimitBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
