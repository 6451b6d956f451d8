package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/secure-notes/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/secure-notes/internal/middleware" // import middleware for JWT authentication and rate limiting
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the credential endpoints under /v1/auth.  These
// are the only routes reachable without a token, and the only routes the
// rate limiter guards: register and login are the brute-force surface.
// The limiter may be nil, in which case the routes are unguarded.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)
}

// RegisterProtected registers every route that requires a valid access
// token.  The JWTAuth middleware runs first for all of them and injects
// the resolved user into the context, so handlers never see a request
// without an authenticated identity.
func RegisterProtected(e *echo.Echo, a *handler.AuthHandler, n *handler.NoteHandler, secret string, users middleware.UserSource) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(secret, users))

	// Identity endpoints.
	g.GET("/me", a.Me)
	g.GET("/users", a.ListUsers)

	// Note CRUD. Every operation is scoped to the authenticated owner.
	g.GET("/notes", n.List)
	g.POST("/notes", n.Create)
	g.PUT("/notes/:id", n.Update)
	g.DELETE("/notes/:id", n.Delete)
}
