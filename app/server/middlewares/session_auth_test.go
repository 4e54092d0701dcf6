package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/auth"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/constants"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/models"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/store"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier struct {
	subject *auth.VerifiedSubject
	err     error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*auth.VerifiedSubject, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.subject, nil
}

type stubAccounts struct {
	account *models.Account
	err     error
}

func (s *stubAccounts) FindByEmail(_ context.Context, _ string) (*models.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.account == nil {
		return nil, store.ErrNotFound
	}
	return s.account, nil
}

// serve runs one request through an echo route wrapped by the guard and
// reports the response plus whether the handler ran with a session set.
func serve(t *testing.T, verifier auth.IdentityVerifier, accounts auth.AccountStore, required auth.Level, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	authorizer := auth.NewAuthorizer(verifier, accounts, zap.NewNop())

	handlerRan := false
	e := echo.New()
	e.GET("/guarded", func(c echo.Context) error {
		sess, ok := c.Get(constants.ContextKeySession).(*auth.Session)
		require.True(t, ok, "guard must store the session before the handler runs")
		require.NotNil(t, sess.Account)
		handlerRan = true
		return c.NoContent(http.StatusOK)
	}, SessionAuth(authorizer, zap.NewNop(), required))

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec, handlerRan
}

func TestSessionAuth_NoHeader(t *testing.T) {
	t.Parallel()

	for _, required := range []auth.Level{auth.LevelUser, auth.LevelAdmin} {
		rec, ran := serve(t, &stubVerifier{}, &stubAccounts{}, required, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.False(t, ran)
		require.Contains(t, rec.Body.String(), "errorMessage")
	}
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{err: errors.New("bad signature")}
	rec, ran := serve(t, verifier, &stubAccounts{}, auth.LevelUser, "Bearer forged")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, ran)
}

func TestSessionAuth_DisabledAccount(t *testing.T) {
	t.Parallel()

	// Disabled overrides admin: both flags set still denies with the
	// disabled message, on user and admin routes alike.
	verifier := &stubVerifier{subject: &auth.VerifiedSubject{Email: "a@x.com"}}
	accounts := &stubAccounts{account: &models.Account{Email: "a@x.com", IsAdmin: true, IsDisabled: true}}

	for _, required := range []auth.Level{auth.LevelUser, auth.LevelAdmin} {
		rec, ran := serve(t, verifier, accounts, required, "Bearer token")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.False(t, ran)
		require.Contains(t, rec.Body.String(), "disabled")
	}
}

func TestSessionAuth_UserOnAdminRoute(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{subject: &auth.VerifiedSubject{Email: "a@x.com"}}
	accounts := &stubAccounts{account: &models.Account{Email: "a@x.com"}}

	rec, ran := serve(t, verifier, accounts, auth.LevelAdmin, "Bearer token")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, ran)
}

func TestSessionAuth_UserOnUserRoute(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{subject: &auth.VerifiedSubject{Email: "a@x.com"}}
	accounts := &stubAccounts{account: &models.Account{Email: "a@x.com"}}

	rec, ran := serve(t, verifier, accounts, auth.LevelUser, "Bearer token")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ran)
}

func TestSessionAuth_AdminEverywhere(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{subject: &auth.VerifiedSubject{Email: "a@x.com"}}
	accounts := &stubAccounts{account: &models.Account{Email: "a@x.com", IsAdmin: true}}

	// admin satisfies both the admin and the user guard
	for _, required := range []auth.Level{auth.LevelUser, auth.LevelAdmin} {
		rec, ran := serve(t, verifier, accounts, required, "Bearer token")
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, ran)
	}
}

func TestSessionAuth_DesyncReportsAsNoSession(t *testing.T) {
	t.Parallel()

	// Token verifies but no account record exists: externally identical to
	// an anonymous caller.
	verifier := &stubVerifier{subject: &auth.VerifiedSubject{Email: "a@x.com"}}
	rec, ran := serve(t, verifier, &stubAccounts{}, auth.LevelUser, "Bearer token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, ran)
}

func TestSessionAuth_StoreOutage(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{subject: &auth.VerifiedSubject{Email: "a@x.com"}}
	accounts := &stubAccounts{err: errors.New("connection refused")}

	rec, ran := serve(t, verifier, accounts, auth.LevelUser, "Bearer token")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code, "outage must never look like an authorization denial")
	require.False(t, ran)
}
