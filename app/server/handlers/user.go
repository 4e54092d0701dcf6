package handlers

import (
	"errors"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/auth"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/autherr"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/models"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/store"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

type userRegisterRequest struct {
	Username string `json:"username"`
}

type usernameCheckRequest struct {
	Username string `json:"username"`
}

type usernameCheckResponse struct {
	UsernameExists bool `json:"usernameExists"`
}

type usernameUpdateRequest struct {
	Username string `json:"username"`
}

// UserRegister self-provisions an account for a freshly verified subject.
// This route cannot sit behind the session guard: the caller has a valid
// token but no account record yet, so the token is verified inline and the
// account is created with both flags off.
func (a *App) UserRegister(c echo.Context) error {
	rctx := c.Request().Context()

	token := auth.BearerToken(c.Request().Header.Get("Authorization"))
	if token == "" {
		return a.erk(c, autherr.KindNoSession)
	}

	sub, err := a.verifier.Verify(rctx, token)
	if err != nil {
		a.l.Debug("token verification failed on register", zap.Error(err))
		return a.erk(c, autherr.KindNoSession)
	}

	var req userRegisterRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return a.erm(c, http.StatusBadRequest, "A username is required")
	}

	account := models.Account{
		Email:    sub.Email,
		Username: username,
	}
	if err := a.accounts.Create(rctx, &account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Either unique index can trip here. Re-check the username so the
			// conflict names the field that actually collided; if the
			// username is free, the subject itself registered already.
			if taken, checkErr := a.accounts.UsernameExists(rctx, username); checkErr == nil && !taken {
				return a.erm(c, http.StatusConflict, "An account already exists for this email")
			}
			return a.conflict(c, "username", username)
		}
		a.l.Error("failed to create account", zap.String("email", sub.Email), zap.Error(err))
		return a.erk(c, autherr.KindDependencyUnavailable)
	}

	return c.JSON(http.StatusOK, &account)
}

// UserMe returns the caller's own account record. The guard has already
// resolved and re-validated the session, disabled check included.
func (a *App) UserMe(c echo.Context) error {
	return c.JSON(http.StatusOK, a.session(c).Account)
}

// UsernameCheck is the advisory pre-check the sign-up form runs while the
// user types. Racy by nature; registration still hits the store constraint.
func (a *App) UsernameCheck(c echo.Context) error {
	rctx := c.Request().Context()

	var req usernameCheckRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	exists, err := a.accounts.UsernameExists(rctx, strings.TrimSpace(req.Username))
	if err != nil {
		a.l.Error("failed to check username", zap.Error(err))
		return a.erk(c, autherr.KindDependencyUnavailable)
	}

	return c.JSON(http.StatusOK, &usernameCheckResponse{UsernameExists: exists})
}

// UsernameUpdate changes the caller's own username, subject to global
// uniqueness. Only the owning account can reach this route.
func (a *App) UsernameUpdate(c echo.Context) error {
	rctx := c.Request().Context()
	sess := a.session(c)

	var req usernameUpdateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return a.erm(c, http.StatusBadRequest, "A username is required")
	}

	if err := a.accounts.UpdateUsername(rctx, sess.Account, username); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return a.conflict(c, "username", username)
		}
		a.l.Error("failed to update username", zap.String("id", sess.Account.ID.String()), zap.Error(err))
		return a.erk(c, autherr.KindDependencyUnavailable)
	}

	return c.JSON(http.StatusOK, sess.Account)
}
