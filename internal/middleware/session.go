package middleware

import (
	"shoepos/internal/cart"
	"shoepos/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	// SessionHeader carries the POS session id in both directions
	SessionHeader = "X-POS-Session"

	sessionContextKey = "pos_session"
)

// POSSession resolves the register session for the request. A missing,
// malformed or expired id starts a new session; the id in use is always
// echoed back in the response header.
func POSSession(registry *cart.Registry, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := uuid.Parse(c.Request().Header.Get(SessionHeader))
			if err != nil {
				id = uuid.Nil
			}

			session, created := registry.GetOrCreate(id)
			if created {
				logger.Debug("pos session started", zap.String("session_id", session.ID.String()))
			}

			c.Response().Header().Set(SessionHeader, session.ID.String())
			c.Set(sessionContextKey, session)
			c.SetRequest(c.Request().WithContext(common.WithSessionID(c.Request().Context(), session.ID)))

			return next(c)
		}
	}
}

// SessionFrom returns the session resolved by POSSession
func SessionFrom(c echo.Context) (*cart.Session, bool) {
	session, ok := c.Get(sessionContextKey).(*cart.Session)
	return session, ok
}
