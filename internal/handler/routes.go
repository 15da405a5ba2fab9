package handler

import (
	"net/http"

	"github.com/msomdec/spartan-directory/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, dir *service.DirectoryService, limiter *service.TokenBucket, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, limiter, cookieSecure)
	dirHandler := NewDirectoryHandler(dir)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Page-level navigation guards. These mirror the client-side router:
	// authenticated users never see the auth pages, anonymous users never
	// see the directory.
	mux.Handle("GET /{$}", OptionalAuth(auth, http.HandlerFunc(HandleRoot)))
	mux.Handle("GET /login", OptionalAuth(auth, http.HandlerFunc(HandleLoginPage)))
	mux.Handle("GET /signup", OptionalAuth(auth, http.HandlerFunc(HandleSignupPage)))
	mux.Handle("GET /directory", OptionalAuth(auth, http.HandlerFunc(HandleDirectoryPage)))

	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/signup", authHandler.HandleSignup)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	mux.Handle("GET /api/spartans", RequireAuth(auth, http.HandlerFunc(dirHandler.HandleList)))
	mux.Handle("GET /api/spartans/counts", RequireAuth(auth, http.HandlerFunc(dirHandler.HandleCounts)))
	mux.Handle("POST /api/spartans/refresh", RequireAuth(auth, http.HandlerFunc(dirHandler.HandleRefresh)))
}
