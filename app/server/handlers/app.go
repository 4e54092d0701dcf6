package handlers

import (
	"context"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/auth"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/constants"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/models"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/store"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AccountStore is the slice of account persistence the handlers depend on,
// mirroring the narrow-seam pattern of auth.AccountStore.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateUsername(ctx context.Context, account *models.Account, username string) error
	UpdateFlags(ctx context.Context, account *models.Account) error
	Search(ctx context.Context, filter string, offset int, limit int) ([]models.Account, int64, error)
}

// EventStore is the slice of event persistence the handlers depend on.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Save(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter string, offset int, limit int) ([]models.Event, int64, error)
}

var _ AccountStore = (*store.Accounts)(nil)
var _ EventStore = (*store.Events)(nil)

type App struct {
	l        *zap.Logger
	accounts AccountStore
	events   EventStore
	rdb      *redis.Client         // event read cache only, never auth state
	verifier auth.IdentityVerifier // used inline by the routes that run before an account exists
}

func NewApp(l *zap.Logger, accounts AccountStore, events EventStore, rdb *redis.Client, verifier auth.IdentityVerifier) *App {
	return &App{
		l:        l,
		accounts: accounts,
		events:   events,
		rdb:      rdb,
		verifier: verifier,
	}
}

// session pulls the guard-computed session off the echo context. Only valid
// on routes behind the SessionAuth middleware.
func (a *App) session(c echo.Context) *auth.Session {
	sess, _ := c.Get(constants.ContextKeySession).(*auth.Session)
	return sess
}
