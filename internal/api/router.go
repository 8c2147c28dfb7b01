package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/najdi/internal/lifecycle"
	"github.com/erazemk/najdi/internal/model"
)

// NewRouter creates the API router with all endpoints registered. Public
// endpoints that reach the owner or create items go through limiter, which
// may be nil.
func NewRouter(db *sql.DB, svc *lifecycle.Service, jwtSecret string, limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	itemsHandler := &ItemsHandler{Service: svc}

	authMW := AuthMiddleware(jwtSecret, db)
	optionalAuth := OptionalAuth(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	limit := limiter.Limit

	// Public: accounts.
	mux.Handle("POST /api/auth/register", limit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", limit(http.HandlerFunc(authHandler.Login)))

	// Authenticated account routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Public: missing items.
	mux.HandleFunc("GET /api/items", itemsHandler.ListMissing)
	mux.Handle("POST /api/search", limit(http.HandlerFunc(itemsHandler.Search)))
	mux.Handle("POST /api/items/{id}/messages", limit(http.HandlerFunc(itemsHandler.SendMessage)))
	mux.Handle("POST /api/reports", limit(optionalAuth(http.HandlerFunc(itemsHandler.CreateMissing))))
	mux.Handle("POST /api/items/{id}/report", limit(optionalAuth(http.HandlerFunc(itemsHandler.Report))))

	// Visible to everyone for missing items, otherwise owner or admin.
	mux.Handle("GET /api/items/{id}", optionalAuth(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("GET /api/items/{id}/images/{pos}", optionalAuth(http.HandlerFunc(itemsHandler.GetImage)))

	// Owner dashboard.
	mux.Handle("GET /api/me/items", authMW(http.HandlerFunc(itemsHandler.ListOwned)))
	mux.Handle("POST /api/me/items", authMW(http.HandlerFunc(itemsHandler.CreateTracked)))

	// Transitions (owner or admin).
	mux.Handle("POST /api/items/{id}/unreport", authMW(http.HandlerFunc(itemsHandler.Unreport)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))

	// Admin dashboard.
	mux.Handle("GET /api/admin/items", authMW(requireAdmin(http.HandlerFunc(itemsHandler.ListAll))))
	mux.Handle("POST /api/admin/items", authMW(requireAdmin(http.HandlerFunc(itemsHandler.CreateMissing))))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))

	return mux
}
