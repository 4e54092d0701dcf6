package main

import (
	"fmt"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/auth"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/handlers"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/idtoken"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/inits"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/middlewares"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"log"
)

func main() {
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	l.Debug("logger initialized")

	db, err := inits.DB(cfg.System.DBConnectionString, cfg.Seed.AdminEmail, cfg.Seed.AdminUsername)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	verifier, err := idtoken.New(cfg.Security.AuthSignatureKey)
	if err != nil {
		l.Fatal("error initializing ID token verifier", zap.Error(err))
	}

	accountStore := store.NewAccounts(db)
	eventStore := store.NewEvents(db)

	authorizer := auth.NewAuthorizer(verifier, accountStore, l)

	app := handlers.NewApp(l, accountStore, eventStore, rdb, verifier)

	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.Secure())

	userGuard := middlewares.SessionAuth(authorizer, l, auth.LevelUser)
	adminGuard := middlewares.SessionAuth(authorizer, l, auth.LevelAdmin)

	e.GET("/healthcheck", app.HealthCheck)

	users := e.Group("/api/users")
	users.POST("", app.UserRegister)
	users.POST("/username-check", app.UsernameCheck)
	users.GET("/me", app.UserMe, userGuard)
	users.PUT("/username", app.UsernameUpdate, userGuard)

	events := e.Group("/api/events")
	events.GET("", app.EventList)
	events.GET("/:id", app.EventGet)
	events.POST("", app.EventCreate, userGuard)
	// level-only guard on update/delete: ownership is not checked
	events.PUT("/:id", app.EventUpdate, userGuard)
	events.DELETE("/:id", app.EventDelete, userGuard)

	admin := e.Group("/api/admin")
	admin.GET("", app.AdminPing, adminGuard)
	admin.GET("/events", app.AdminEventSearch) // public title search, same data as the event routes
	admin.DELETE("/events/:id", app.AdminEventDelete, adminGuard)
	admin.PUT("/events/:id/comments", app.AdminEventCommentRemove, adminGuard)
	admin.GET("/users", app.AdminUserList, adminGuard)
	admin.PUT("/users/:id", app.AdminUserUpdate, adminGuard)

	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
