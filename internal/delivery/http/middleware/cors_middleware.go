package middleware

import (
	"net/http"
	"slices"
)

type CORSMiddleware struct {
	allowedOrigins []string
}

// NewCORSMiddleware allows every origin when allowedOrigins is empty.
func NewCORSMiddleware(allowedOrigins []string) *CORSMiddleware {
	return &CORSMiddleware{allowedOrigins: allowedOrigins}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if origin := m.allowOrigin(req.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}

func (m *CORSMiddleware) allowOrigin(origin string) string {
	if len(m.allowedOrigins) == 0 {
		return "*"
	}
	if origin != "" && slices.Contains(m.allowedOrigins, origin) {
		return origin
	}
	return ""
}
