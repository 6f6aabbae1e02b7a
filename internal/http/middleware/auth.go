package middleware

import "net/http"

type contextKey string

const RiderIDKey contextKey = "rider_id"

// RequireAuth rejects requests without a rider in the request context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		riderID := r.Context().Value(RiderIDKey)
		if riderID == nil || riderID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"sign in required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
