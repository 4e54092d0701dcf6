// Package auth classifies each request's caller into an authorization level
// by combining the identity provider's token verification with the locally
// stored account flags. Both collaborators are injected as interfaces; the
// package holds no SDK globals and no per-request state.
package auth

import (
	"context"
	"errors"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/models"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/store"
	"go.uber.org/zap"
	"strings"
)

// ErrDependency marks store or verifier infrastructure failures. Guards map
// it to 503 Service Unavailable; it must never be folded into an
// authorization denial, so operators can tell "not allowed" from "broken".
var ErrDependency = errors.New("authorization dependency unavailable")

// VerifiedSubject is the identity provider's claim set after a successful
// token verification. It is valid only for the current request.
type VerifiedSubject struct {
	Email string
}

// IdentityVerifier verifies an opaque bearer token. It must fail for a
// malformed, expired or forged token. An implementation that calls out to a
// remote provider reports infrastructure failures by wrapping
// ErrDependency; any other error means the token itself was rejected.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*VerifiedSubject, error)
}

// AccountStore is the read side of account persistence the authorizer
// needs: a single lookup by verified subject. Implementations return
// store.ErrNotFound when no account matches.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}

// Session is the outcome of one authorization decision. Account is set
// whenever the lookup succeeded, including for a disabled account.
type Session struct {
	Level   Level
	Account *models.Account
}

type Authorizer struct {
	verifier IdentityVerifier
	accounts AccountStore
	l        *zap.Logger
}

func NewAuthorizer(verifier IdentityVerifier, accounts AccountStore, l *zap.Logger) *Authorizer {
	return &Authorizer{
		verifier: verifier,
		accounts: accounts,
		l:        l,
	}
}

// Authorize turns a raw Authorization header value into a Session. The only
// error it can return is a dependency failure; every way a caller can fail
// to present a valid session resolves to a Level, not an error.
func (a *Authorizer) Authorize(ctx context.Context, authHeader string) (*Session, error) {
	// No header is a normal anonymous caller; the verifier is not consulted.
	if authHeader == "" {
		return &Session{Level: LevelAnonymous}, nil
	}

	token := BearerToken(authHeader)
	if token == "" {
		return &Session{Level: LevelAnonymous}, nil
	}

	sub, err := a.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, ErrDependency) {
			a.l.Error("identity verifier unavailable", zap.Error(err))
			return nil, ErrDependency
		}
		// Expired, forged or garbage token: anonymous, not an error.
		a.l.Debug("token verification failed", zap.Error(err))
		return &Session{Level: LevelAnonymous}, nil
	}

	account, err := a.accounts.FindByEmail(ctx, sub.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// A verified subject with no account record means provisioning
			// went wrong somewhere. The caller sees a plain denial, but the
			// log entry must stay distinguishable from anonymous traffic.
			a.l.Warn("verified subject has no account record", zap.String("email", sub.Email))
			return &Session{Level: LevelAnonymous}, nil
		}
		a.l.Error("account lookup failed", zap.String("email", sub.Email), zap.Error(err))
		return nil, ErrDependency
	}

	// Disabled is checked before admin: a disabled admin stays denied.
	if account.IsDisabled {
		return &Session{Level: LevelDeniedDisabled, Account: account}, nil
	}
	if account.IsAdmin {
		return &Session{Level: LevelAdmin, Account: account}, nil
	}
	return &Session{Level: LevelUser, Account: account}, nil
}

// BearerToken extracts the opaque token from an Authorization header value
// of the shape "Bearer <token>". A missing header, missing prefix or empty
// remainder all mean "no token"; none of it ever reaches the verifier.
func BearerToken(header string) string {
	splits := strings.SplitN(header, " ", 2)
	if len(splits) != 2 {
		return ""
	}

	if strings.ToLower(splits[0]) != "bearer" {
		return ""
	}

	return splits[1]
}
