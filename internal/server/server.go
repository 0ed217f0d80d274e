package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	firebase "firebase.google.com/go/v4"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"studioflow/internal/auth"
	"studioflow/internal/config"
	"studioflow/internal/database"
)

type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	db     database.Service
	auth   *auth.Service
}

func (s *Server) GetDB() database.Service {
	return s.db
}

func (s *Server) GetAuth() *auth.Service {
	return s.auth
}

func NewServer() (*http.Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: cfg.FirebaseDatabaseURL},
		option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	db, err := database.New(ctx, app)
	if err != nil {
		return nil, err
	}

	authService, err := auth.New(ctx, app, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:    cfg,
		logger: logger,
		db:     db,
		auth:   authService,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, nil
}
