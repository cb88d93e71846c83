package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/accesslog"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/auth/password"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/auth/session"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/config"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/identity"
	redisx "github.com/Brian-Gachiri/secure-academic-notes/internal/infra/cache/redis"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/infra/database/postgres"
	s3storage "github.com/Brian-Gachiri/secure-academic-notes/internal/infra/storage/s3"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/sharelink"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *log.Logger
	repo   *postgres.PGRepo
	cache  domain.Cache
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	s3Log := log.New(base.Writer(), base.Prefix()+"[s3] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	accessLog := log.New(base.Writer(), base.Prefix()+"[accesslog] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init S3 storage")
	s3cfg := s3storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PathStyle: cfg.S3PathStyle,
	}
	s3, err := s3storage.New(ctx, s3cfg, s3Log)
	if err != nil {
		return nil, fmt.Errorf("failed init s3: %w", err)
	}

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	// сидируем лектора, только если таблица пользователей пуста
	if err := seedUsers(ctx, cfg, pgRepo); err != nil {
		return nil, fmt.Errorf("failed seed users: %w", err)
	}

	// Auth primitives
	sessions := session.New(cfg.SessionSecret, cfg.Production())
	ident := &identity.Service{Users: pgRepo, Sessions: sessions}
	links := sharelink.NewEngine(pgRepo, pgRepo)
	recorder := accesslog.NewRecorder(pgRepo, rc, accessLog)

	base.Println("init Server")
	repos := web.Repos{Users: pgRepo, Notes: pgRepo, Links: pgRepo, Access: pgRepo}
	server := web.New(serverLog, cfg, repos, ident, links, recorder, s3, rc)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		repo:   pgRepo,
		cache:  rc,
	}, nil
}

func seedUsers(ctx context.Context, cfg *config.Config, users domain.UsersRepo) error {
	if cfg.SeedLecturerEmail == "" || cfg.SeedLecturerPassword == "" {
		return nil
	}
	email := strings.ToLower(cfg.SeedLecturerEmail)
	salt, hash, err := password.Hash(cfg.SeedLecturerPassword, "")
	if err != nil {
		return err
	}
	name := cfg.SeedLecturerName
	if name == "" {
		name = "Lecturer"
	}
	return users.InsertIfEmpty(ctx, []domain.User{{
		ID:       email, // id пользователя — email в нижнем регистре
		Name:     name,
		Email:    email,
		Role:     domain.RoleLecturer,
		PassHash: hash,
		PassSalt: salt,
	}})
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
