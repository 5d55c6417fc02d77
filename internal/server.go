package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo"

	"github.com/matchpoint-app/backend/internal/config"
	mongoClient "github.com/matchpoint-app/backend/internal/datastore/mongo"
	"github.com/matchpoint-app/backend/internal/datastore/postgres"
	redisClient "github.com/matchpoint-app/backend/internal/datastore/redis"
	matchRepo "github.com/matchpoint-app/backend/internal/repository/match"
	messageRepo "github.com/matchpoint-app/backend/internal/repository/message"
	profileRepo "github.com/matchpoint-app/backend/internal/repository/profile"
	quotaRepo "github.com/matchpoint-app/backend/internal/repository/quota"
	swipeRepo "github.com/matchpoint-app/backend/internal/repository/swipe"
	userRepo "github.com/matchpoint-app/backend/internal/repository/user"
	routesV1 "github.com/matchpoint-app/backend/internal/routes/v1"
	authUseCase "github.com/matchpoint-app/backend/internal/usecase/auth"
	chatUseCase "github.com/matchpoint-app/backend/internal/usecase/chat"
	profileUseCase "github.com/matchpoint-app/backend/internal/usecase/profile"
	swipeUseCase "github.com/matchpoint-app/backend/internal/usecase/swipe"
	"github.com/matchpoint-app/backend/pkg/jwt"
)

type Server struct {
	writer     io.Writer
	httpServer *http.Server
}

// Run wires the stores, repositories and usecases once at startup and
// passes them down explicitly; request handlers hold no shared mutable
// state beyond the pooled connections inside the drivers.
func Run(ctx context.Context, w io.Writer, args []string) error {
	env := "dev"
	if len(args) > 0 {
		env = args[len(args)-1]
	}

	cfg, err := config.NewConfig(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := postgres.InitializeDB(
		cfg.Get("POSTGRES_USER"),
		cfg.Get("POSTGRES_PASSWORD"),
		cfg.Get("POSTGRES_DB_NAME"),
		cfg.Get("POSTGRES_HOST"),
		cfg.Get("POSTGRES_PORT"),
	)
	if err != nil {
		return err
	}

	mongoDB, err := mongoClient.InitializeDB(ctx, cfg.Get("MONGO_URI"), cfg.Get("MONGO_DB_NAME"))
	if err != nil {
		return err
	}

	if err := mongoClient.EnsureIndexes(ctx, mongoDB); err != nil {
		return err
	}

	rdb, err := redisClient.InitializeDB(cfg.Get("REDIS_HOST"), cfg.Get("REDIS_PORT"))
	if err != nil {
		return err
	}

	tokens := jwt.NewManager(cfg.Get("JWT_SECRET"), 24*time.Hour)

	users := userRepo.New(db)
	profiles := profileRepo.New(db)
	ledger := swipeRepo.New(mongoDB)
	matches := matchRepo.New(mongoDB)
	messages := messageRepo.New(mongoDB)
	quota := quotaRepo.New(rdb)

	dailyLimit, _ := strconv.Atoi(cfg.Get("DAILY_SWIPE_LIMIT"))

	cases := routesV1.UseCases{
		Auth:    authUseCase.New(users, tokens),
		Swipe:   swipeUseCase.New(ledger, matches, quota, dailyLimit),
		Chat:    chatUseCase.New(messages, matches),
		Profile: profileUseCase.New(profiles, ledger),
	}

	server := NewServer(ctx, w, cfg.Get("PORT"), tokens, users, cases)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.StartServer()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func NewServer(ctx context.Context, w io.Writer, port string, tokens *jwt.Manager, users userRepo.IUserRepo, cases routesV1.UseCases) *Server {
	e := echo.New()

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	server := &Server{
		writer: w,
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: e,
		},
	}

	server.RegisterRoutes(e, tokens, users, cases)
	return server
}

func (s *Server) RegisterRoutes(e *echo.Echo, tokens *jwt.Manager, users userRepo.IUserRepo, cases routesV1.UseCases) {
	e.GET("/healthz", s.handleHealthCheck)
	routesV1.InitV1Routes(e, tokens, users, cases)
}

func (s *Server) StartServer() error {
	fmt.Fprintf(s.writer, "Server starting on %s\n", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
