package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/elemental-io/elemental/pkg/config"
)

// CORSMiddleware applies cross-origin headers from CORSConfig and answers
// preflight requests.
type CORSMiddleware struct {
	cfg      config.CORSConfig
	allowAll bool
	methods  string
	headers  string
}

func NewCORSMiddleware(cfg config.CORSConfig) *CORSMiddleware {
	allowAll := false
	for _, origin := range cfg.Origins {
		if origin == "*" {
			allowAll = true
			break
		}
	}
	return &CORSMiddleware{
		cfg:      cfg,
		allowAll: allowAll,
		methods:  strings.Join(cfg.AllowMethods, ", "),
		headers:  strings.Join(cfg.AllowHeaders, ", "),
	}
}

// Handler returns the CORS middleware handler.
func (m *CORSMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" && (m.allowAll || m.originAllowed(origin)) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", m.methods)
			h.Set("Access-Control-Allow-Headers", m.headers)
			if m.cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if m.cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(m.cfg.MaxAge))
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *CORSMiddleware) originAllowed(origin string) bool {
	for _, allowed := range m.cfg.Origins {
		if allowed == origin {
			return true
		}
	}
	return false
}
