package handlers

import (
	"errors"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/autherr"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/models"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/store"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

type accountListParams struct {
	Filter string `query:"filter"`
	Page   *uint  `query:"page"`
	Limit  *uint  `query:"limit"`
}

type accountListResponse struct {
	Limit   int              `json:"limit"`
	PageMax int64            `json:"pageMax"`
	List    []models.Account `json:"list"`
}

type accountFlagsRequest struct {
	IsAdmin    *bool `json:"isAdmin"`
	IsDisabled *bool `json:"isDisabled"`
}

// AdminPing is the admin page gate: it does nothing except pass or fail the
// admin-level guard.
func (a *App) AdminPing(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// AdminUserList searches every registered account by username or email.
// A blank filter lists them all.
func (a *App) AdminUserList(c echo.Context) error {
	rctx := c.Request().Context()

	var params accountListParams
	if err := c.Bind(&params); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	showAll, page, limit := a.parsePagination(params.Page, params.Limit)

	offset := -1
	if !showAll {
		offset = page * limit
	}

	accounts, counter, err := a.accounts.Search(rctx, strings.TrimSpace(params.Filter), offset, limit)
	if err != nil {
		a.l.Error("failed to list accounts", zap.Error(err))
		return a.erm(c, http.StatusServiceUnavailable, "Unable to query database for users")
	}

	return c.JSON(http.StatusOK, &accountListResponse{
		Limit:   limit,
		PageMax: a.calcMaxPage(counter, showAll, limit),
		List:    accounts,
	})
}

// AdminUserUpdate flips an account's admin role or disabled status, or both
// at once. Disabling takes effect on the target's next request: the
// authorizer re-reads these flags every time.
func (a *App) AdminUserUpdate(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	var req accountFlagsRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.IsAdmin == nil && req.IsDisabled == nil {
		return a.er(c, http.StatusBadRequest)
	}

	account, err := a.accounts.FindByID(rctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.erm(c, http.StatusNotFound, "User not found in database")
		}
		a.l.Error("failed to get account", zap.String("id", id.String()), zap.Error(err))
		return a.erk(c, autherr.KindDependencyUnavailable)
	}

	if req.IsAdmin != nil {
		account.IsAdmin = *req.IsAdmin
	}
	if req.IsDisabled != nil {
		account.IsDisabled = *req.IsDisabled
	}

	if err := a.accounts.UpdateFlags(rctx, account); err != nil {
		a.l.Error("failed to update account flags", zap.String("id", id.String()), zap.Error(err))
		return a.erm(c, http.StatusServiceUnavailable, "Unable to query database to update user")
	}

	return c.JSON(http.StatusOK, account)
}
