package web

import (
	"log"
	"net/http"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/identity"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/mw"
	authv1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1/auth"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1/health"
	notev1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1/note"
	sharev1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1/share"
)

func newRouter(
	hh *health.Handler,
	ah *authv1.Handler,
	nh *notev1.Handler,
	sh *sharev1.Handler,
	ident *identity.Service,
	logger *log.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", hh.Liveness)
	mux.HandleFunc("GET /v1/readyz", hh.Readiness)

	// auth
	mux.HandleFunc("POST /v1/auth/login", ah.Login)
	mux.HandleFunc("POST /v1/auth/logout", ah.Logout)

	// notes (гейт по сессии/роли внутри обработчиков)
	mux.HandleFunc("GET /v1/notes", nh.List)
	mux.HandleFunc("POST /v1/notes", limitBody(64<<20, nh.Upload)) // 64MB лимит
	mux.HandleFunc("GET /v1/notes/{id}", nh.Get)
	mux.HandleFunc("GET /v1/notes/{id}/file", nh.File)
	mux.HandleFunc("DELETE /v1/notes/{id}", nh.Delete)

	// share links
	mux.HandleFunc("POST /v1/notes/{id}/links", sh.Create)
	mux.HandleFunc("GET /v1/notes/{id}/links", sh.List)
	mux.HandleFunc("DELETE /v1/links/{token}", sh.Revoke)

	// анонимный доступ по токену — единственный негейченный путь к PDF
	mux.HandleFunc("GET /share/{token}", sh.Fetch)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mw.SessionAuth(ident, mux)))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
