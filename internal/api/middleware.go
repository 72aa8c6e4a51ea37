package api

import (
	"context"
	"log"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const adminEmailKey ctxKey = iota

// requestLogger logs one line per request with status, duration and the
// request ID set by chi's RequestID middleware.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Printf("HTTP %s %s -> %d (%dms, req=%s)",
				r.Method, r.URL.Path, ww.Status(), time.Since(start).Milliseconds(),
				chimiddleware.GetReqID(r.Context()))
		})
	}
}

// requireToken rejects requests without a valid bearer token and stores the
// token subject in the request context.
func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerFromHeader(r.Header.Get("Authorization"))
		if token == "" {
			h.writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
			return
		}
		email, err := h.tokens.Verify(token)
		if err != nil {
			h.writeError(w, http.StatusUnauthorized, "unauthenticated", "token invalid")
			return
		}
		ctx := context.WithValue(r.Context(), adminEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession rejects tokens whose subject is not the admin currently
// logged in to the store. A logout therefore revokes every issued token.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, _ := r.Context().Value(adminEmailKey).(string)
		sess := h.store.Session()
		if sess == nil || !sess.IsAuthenticated || sess.Email != email {
			h.writeError(w, http.StatusUnauthorized, "session_expired", "admin session is not active")
			return
		}
		next.ServeHTTP(w, r)
	})
}
