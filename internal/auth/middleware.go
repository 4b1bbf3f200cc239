package auth

import (
	"net/http"
)

// XUserId carries the session's user id; the storefront UI sends it on every
// authenticated call.
const XUserId = "X-User-Id"

// Middleware resolves the X-User-Id header against the user store and puts
// the actor on the request context. Requests without a valid session are
// rejected before reaching the handlers.
func Middleware(svc *Service) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(XUserId)
			if userID == "" {
				http.Error(w, "Unauthorized: Missing X-User-Id header", http.StatusUnauthorized)
				return
			}
			user, err := svc.UserByID(userID)
			if err != nil {
				http.Error(w, "Unauthorized: Unknown user", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), user)))
		})
	}
}
