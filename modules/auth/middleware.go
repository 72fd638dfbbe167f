package auth

import (
	"net/http"

	"github.com/taskhub/taskhub/core"
)

// Middleware gates identity-requiring routes. It resolves the caller's
// credential via transport, verifies it, and injects the user ID into the
// request context. Failures short-circuit before any downstream handler or
// store access runs.
func Middleware(svc *Service, transport Transport, errs *core.ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := transport.Extract(r)
			if err != nil {
				errs.Handle(w, r, err)
				return
			}

			userID, err := svc.Verify(raw)
			if err != nil {
				errs.Handle(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
