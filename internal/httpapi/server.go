// Package httpapi exposes the application services as a JSON REST API.
package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evenup/evenup/internal/auth"
	"github.com/evenup/evenup/internal/middleware"
	"github.com/evenup/evenup/internal/service"
)

// Server routes HTTP requests to the application services.
type Server struct {
	auths    *service.AuthService
	groups   *service.GroupService
	expenses *service.ExpenseService
	jwt      *auth.JWTManager
}

// NewServer creates a Server over the given services.
func NewServer(auths *service.AuthService, groups *service.GroupService, expenses *service.ExpenseService, jwt *auth.JWTManager) *Server {
	return &Server{
		auths:    auths,
		groups:   groups,
		expenses: expenses,
		jwt:      jwt,
	}
}

// Handler builds the full route table wrapped in logging and metrics
// middleware. Mutating routes require a Bearer token; reads work without
// one so a group link can be shared with people who have no account.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	authed := middleware.RequireAuth(s.jwt)
	readable := middleware.OptionalAuth(s.jwt)

	mux.Handle("POST /api/groups", authed(http.HandlerFunc(s.handleCreateGroup)))
	mux.Handle("GET /api/groups", readable(http.HandlerFunc(s.handleListGroups)))
	mux.Handle("GET /api/groups/{id}", readable(http.HandlerFunc(s.handleGetGroup)))
	mux.Handle("DELETE /api/groups/{id}", authed(http.HandlerFunc(s.handleDeleteGroup)))
	mux.Handle("POST /api/groups/{id}/members", authed(http.HandlerFunc(s.handleAddMembers)))

	mux.Handle("POST /api/groups/{id}/expenses", authed(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("GET /api/groups/{id}/expenses", readable(http.HandlerFunc(s.handleListExpenses)))
	mux.Handle("DELETE /api/expenses/{id}", authed(http.HandlerFunc(s.handleDeleteExpense)))

	mux.Handle("GET /api/groups/{id}/balances", readable(http.HandlerFunc(s.handleGroupBalances)))

	mux.Handle("POST /api/groups/{id}/settlements", authed(http.HandlerFunc(s.handleRecordSettlement)))
	mux.Handle("GET /api/groups/{id}/settlements", readable(http.HandlerFunc(s.handleListSettlements)))
	mux.Handle("DELETE /api/settlements/{id}", authed(http.HandlerFunc(s.handleDeleteSettlement)))

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.Logging(middleware.Metrics(mux))
}
