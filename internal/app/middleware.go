package app

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

type ctxKey int

const accessEmailKey ctxKey = iota

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (a *Application) LogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.logger.Info("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "latency", time.Since(start))
	})
}

func (a *Application) RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				a.logger.Error(fmt.Sprintf("panic when serving %s: %v", r.URL.Path, v))
				writeJSON(w, http.StatusInternalServerError, message(false, "Internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware allows GET and POST with credentials from the configured origins.
func (a *Application) CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && slices.Contains(a.corsOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware requires a bookings access grant and stores its email in the request context.
func (a *Application) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" || !strings.HasPrefix(token, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, message(false, "Verification required"))
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		email, err := a.jwt.Parse(token, bookingsScope)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, message(false, "Verification required"))
			return
		}
		ctx := context.WithValue(r.Context(), accessEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accessEmail(ctx context.Context) string {
	email, _ := ctx.Value(accessEmailKey).(string)
	return email
}
