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

type eventSearchParams struct {
	Filter string `query:"filter"`
	Page   *uint  `query:"page"`
	Limit  *uint  `query:"limit"`
}

type eventListResponse struct {
	Limit   int            `json:"limit"`
	PageMax int64          `json:"pageMax"`
	List    []models.Event `json:"list"`
}

type commentRemoveRequest struct {
	EventCommentIndex *int `json:"eventCommentIndex"`
}

// AdminEventSearch is the moderation dashboard's title search. It sits
// under the admin prefix but is deliberately unguarded: the same event data
// is already public on the event routes.
func (a *App) AdminEventSearch(c echo.Context) error {
	rctx := c.Request().Context()

	var params eventSearchParams
	if err := c.Bind(&params); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	showAll, page, limit := a.parsePagination(params.Page, params.Limit)

	offset := -1
	if !showAll {
		offset = page * limit
	}

	events, counter, err := a.events.Search(rctx, strings.TrimSpace(params.Filter), offset, limit)
	if err != nil {
		a.l.Error("failed to search events", zap.Error(err))
		return a.erm(c, http.StatusServiceUnavailable, "Unable to query database for events")
	}

	return c.JSON(http.StatusOK, &eventListResponse{
		Limit:   limit,
		PageMax: a.calcMaxPage(counter, showAll, limit),
		List:    events,
	})
}

// AdminEventDelete removes any event, regardless of who created it.
func (a *App) AdminEventDelete(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	event, err := a.events.FindByID(rctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.erm(c, http.StatusNotFound, "Event not found")
		}
		a.l.Error("failed to get event", zap.String("id", id.String()), zap.Error(err))
		return a.erk(c, autherr.KindDependencyUnavailable)
	}

	if err := a.events.Delete(rctx, id); err != nil {
		a.l.Error("failed to delete event", zap.String("id", id.String()), zap.Error(err))
		return a.erm(c, http.StatusServiceUnavailable, "Unable to query database to delete event")
	}

	a.eventCacheInvalidate(c, id)

	return c.JSON(http.StatusOK, event)
}

// AdminEventCommentRemove deletes one comment from an event's thread by its
// index, for moderating anyone's comment.
func (a *App) AdminEventCommentRemove(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	var req commentRemoveRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.EventCommentIndex == nil {
		return a.er(c, http.StatusBadRequest)
	}

	event, err := a.events.FindByID(rctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.erm(c, http.StatusNotFound, "Event not found")
		}
		a.l.Error("failed to get event", zap.String("id", id.String()), zap.Error(err))
		return a.erk(c, autherr.KindDependencyUnavailable)
	}

	idx := *req.EventCommentIndex
	if idx < 0 || idx >= len(event.Comments) {
		return a.erm(c, http.StatusBadRequest, "Comment index out of range")
	}
	event.Comments = removeCommentAt(event.Comments, idx)

	if err := a.events.Save(rctx, event); err != nil {
		a.l.Error("failed to update event", zap.String("id", id.String()), zap.Error(err))
		return a.erm(c, http.StatusServiceUnavailable, "Unable to query database to update event")
	}

	a.eventCacheInvalidate(c, id)

	return c.JSON(http.StatusOK, event)
}

// removeCommentAt returns the list with the entry at idx spliced out. The
// caller has already range-checked idx.
func removeCommentAt(comments models.CommentList, idx int) models.CommentList {
	result := make(models.CommentList, 0, len(comments)-1)
	result = append(result, comments[:idx]...)
	return append(result, comments[idx+1:]...)
}
