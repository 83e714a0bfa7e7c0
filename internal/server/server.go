package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"chatboard/config"
	"chatboard/internal/handler"
	"chatboard/internal/middleware"
	"chatboard/internal/transport/httpdto"
	"chatboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Chat *handler.ChatHandler
	User *handler.UserHandler
	Auth *handler.AuthHandler
}

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, resolver middleware.SessionResolver, checks map[string]HealthCheck) {
	cookie := handler.CookieConfig{Name: s.config.CookieName, Secure: s.config.CookieSecure}

	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if err := checks[name](c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(fmt.Sprintf("%s: %s", name, err), "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	withSession := middleware.SessionMiddleware(resolver, cookie)

	// Bodies are wrapped in httpdto.Response: {success, data, error, code}.
	// The payload sits under data, e.g. data.chat or data.messages.
	chats := s.engine.Group("/chats", withSession)
	{
		chats.GET("", handlers.Chat.List)                        // data: [chat]
		chats.GET("/me", handlers.Chat.Current)                  // data.chat
		chats.GET("/:id", handlers.Chat.GetByID)                 // data.chat
		chats.POST("", handlers.Chat.Create)                     // 201 data.chat
		chats.POST("/:id/add/:user", handlers.Chat.AddMember)    // data.chat
		chats.POST("/:id/message/add", handlers.Chat.AddMessage) // data.chat
		chats.GET("/:id/message", handlers.Chat.Messages)        // data.messages
	}

	users := s.engine.Group("/users")
	{
		users.POST("", handlers.User.Register)
		users.GET("", handlers.User.List)
		users.GET("/:id", handlers.User.GetByID)
	}

	auth := s.engine.Group("/auth", withSession)
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", middleware.RequireSession(), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireSession(), handlers.Auth.Me)
		auth.POST("/chat/:id", middleware.RequireSession(), handlers.Auth.SelectChat)
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
