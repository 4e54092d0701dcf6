package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/auth"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/models"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/store"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type rejectingVerifier struct{}

func (rejectingVerifier) Verify(_ context.Context, _ string) (*auth.VerifiedSubject, error) {
	return nil, errors.New("bad signature")
}

type acceptingVerifier struct{}

func (acceptingVerifier) Verify(_ context.Context, _ string) (*auth.VerifiedSubject, error) {
	return &auth.VerifiedSubject{Email: "alice@example.com"}, nil
}

type fakeAccountStore struct {
	exists      bool
	createErr   error
	gotUsername string
}

func (f *fakeAccountStore) Create(_ context.Context, _ *models.Account) error { return f.createErr }

func (f *fakeAccountStore) FindByID(_ context.Context, _ uuid.UUID) (*models.Account, error) {
	return nil, store.ErrNotFound
}

func (f *fakeAccountStore) UsernameExists(_ context.Context, username string) (bool, error) {
	f.gotUsername = username
	return f.exists, nil
}

func (f *fakeAccountStore) UpdateUsername(_ context.Context, _ *models.Account, _ string) error {
	return nil
}

func (f *fakeAccountStore) UpdateFlags(_ context.Context, _ *models.Account) error { return nil }

func (f *fakeAccountStore) Search(_ context.Context, _ string, _ int, _ int) ([]models.Account, int64, error) {
	return nil, 0, nil
}

func registerRequest(header string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestUserRegister_NoToken(t *testing.T) {
	t.Parallel()

	a := NewApp(zap.NewNop(), nil, nil, nil, rejectingVerifier{})

	rec, c := registerRequest("")
	require.NoError(t, a.UserRegister(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "errorMessage")
}

func TestUserRegister_RejectedToken(t *testing.T) {
	t.Parallel()

	a := NewApp(zap.NewNop(), nil, nil, nil, rejectingVerifier{})

	rec, c := registerRequest("Bearer forged")
	require.NoError(t, a.UserRegister(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserRegister_ConflictNamesTheRightField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		usernameTaken bool
		wantBody      string
	}{
		{"username taken", true, "username"},
		{"subject already registered", false, "email"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			accounts := &fakeAccountStore{createErr: store.ErrDuplicate, exists: tt.usernameTaken}
			a := NewApp(zap.NewNop(), accounts, nil, nil, acceptingVerifier{})

			rec, c := registerRequest("Bearer valid")
			require.NoError(t, a.UserRegister(c))
			require.Equal(t, http.StatusConflict, rec.Code)
			require.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestUsernameCheck_TrimsInput(t *testing.T) {
	t.Parallel()

	accounts := &fakeAccountStore{exists: true}
	a := NewApp(zap.NewNop(), accounts, nil, nil, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users/username-check", strings.NewReader(`{"username":"  alice  "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, a.UsernameCheck(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice", accounts.gotUsername)
	require.Contains(t, rec.Body.String(), `"usernameExists":true`)
}
