package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming
	"time"

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/secure-notes/internal/model"
	"github.com/iliyamo/secure-notes/internal/utils"
)

// identityKey is the context key under which the resolved user is
// stored. Handlers read it via CurrentUser rather than touching the
// key directly.
const identityKey = "identity"

// UserSource resolves a token subject to a live user row. Satisfied
// by *repository.UserRepo; tests substitute an in-memory fake.
type UserSource interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and resolves its subject to a user record before the wrapped handler
// runs.  The token is read from the Authorization header only; there is
// no alternate header or query fallback.  Every failure mode (missing
// header, malformed token, bad signature, expired token, subject row
// gone) produces the same 401 body, so a caller cannot use the response
// to probe which check failed; the distinct cause is logged server-side.
// On success the full user record is stored in the request context and
// handlers can rely on it being present.
func JWTAuth(secret string, users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Signature is verified before any claim is trusted;
			// ParseAccessToken rejects non-HMAC signing methods.
			userID, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				log.Printf("auth: token rejected: %v", err)
				return unauthorized(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			// A valid token whose subject no longer exists must not
			// authenticate; the account is the source of truth.
			u, err := users.GetByID(ctx, userID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					log.Printf("auth: token subject %d not found", userID)
					return unauthorized(c)
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
			}

			c.Set(identityKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user stored by JWTAuth. The
// ok result is false when the middleware did not run, which on a
// protected route means a wiring bug rather than a client error.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(identityKey).(model.User)
	return u, ok
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}
