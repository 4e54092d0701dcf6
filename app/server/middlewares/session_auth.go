package middlewares

import (
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/auth"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/autherr"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/constants"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionAuth guards a route behind a minimum authorization level. The
// decision is recomputed from the Authorization header on every request, so
// a mid-session disable takes effect on the very next call. On success the
// session is stored on the echo context under constants.ContextKeySession;
// the wrapped handler runs unmodified.
func SessionAuth(authorizer *auth.Authorizer, l *zap.Logger, required auth.Level) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := authorizer.Authorize(c.Request().Context(), c.Request().Header.Get("Authorization"))
			if err != nil {
				// Store or verifier outage: 503, never an authorization denial.
				l.Error("authorization dependency failure",
					zap.String("URI", c.Request().RequestURI),
					zap.Error(err),
				)
				return c.JSON(autherr.KindDependencyUnavailable.Status(), autherr.ResponseFor(autherr.KindDependencyUnavailable))
			}

			if sess.Level.Satisfies(required) {
				c.Set(constants.ContextKeySession, sess)
				return next(c)
			}

			var kind autherr.Kind
			switch sess.Level {
			case auth.LevelDeniedDisabled:
				kind = autherr.KindAccountDisabled
			case auth.LevelAnonymous:
				kind = autherr.KindNoSession
			default:
				// Signed in, but the operation needs a higher level.
				kind = autherr.KindInsufficientPrivilege
			}

			return c.JSON(kind.Status(), autherr.ResponseFor(kind))
		}
	}
}
