package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/accesslog"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/config"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/identity"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/sharelink"
	authv1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1/auth"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1/health"
	notev1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1/note"
	sharev1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1/share"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(
	logger *log.Logger,
	cfg *config.Config,
	repos Repos,
	ident *identity.Service,
	links *sharelink.Engine,
	recorder *accesslog.Recorder,
	bs domain.BlobStorage,
	cache domain.Cache,
) *Server {
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())
	authLog := log.New(logger.Writer(), logger.Prefix()+"[auth] ", logger.Flags())
	noteLog := log.New(logger.Writer(), logger.Prefix()+"[note] ", logger.Flags())
	shareLog := log.New(logger.Writer(), logger.Prefix()+"[share] ", logger.Flags())

	healthHandler := &health.Handler{Log: healthLog, DB: repos.Users, Cache: cache, Storage: bs}
	authHandler := &authv1.Handler{Log: authLog, Identity: ident}
	noteHandler := &notev1.Handler{Log: noteLog, Notes: repos.Notes, Links: links, Storage: bs, Access: recorder}
	shareHandler := &sharev1.Handler{Log: shareLog, Notes: repos.Notes, Links: links, Storage: bs, Access: recorder}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(healthHandler, authHandler, noteHandler, shareHandler, ident, logger),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second, // отдача PDF крупнее обычного JSON
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
