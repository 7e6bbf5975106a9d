package fakeapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/devfolio/internal/common"
)

type authedHandler func(w http.ResponseWriter, r *http.Request, caller *Claims)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(http.MethodPost+" /api/auth/login", s.handleLogin)
	mux.HandleFunc(http.MethodPost+" /api/auth/register", s.handleRegister)
	mux.HandleFunc(http.MethodPost+" /api/auth/logout", s.authed(s.handleLogout))

	mux.HandleFunc(http.MethodGet+" /api/users/profile", s.authed(s.handleGetProfile))
	mux.HandleFunc(http.MethodPut+" /api/users/profile", s.authed(s.handleUpdateProfile))
	mux.HandleFunc(http.MethodPost+" /api/users/change-password", s.authed(s.handleChangePassword))
	mux.HandleFunc(http.MethodGet+" /api/users/preferences", s.authed(s.handleGetPreferences))
	mux.HandleFunc(http.MethodPut+" /api/users/preferences", s.authed(s.handleUpdatePreferences))
	mux.HandleFunc(http.MethodGet+" /api/users/admin", s.admin(s.handleListUsers))
	mux.HandleFunc(http.MethodPost+" /api/users", s.admin(s.handleCreateUser))
	mux.HandleFunc(http.MethodPut+" /api/users/{id}", s.admin(s.handleAdminUpdateUser))
	mux.HandleFunc(http.MethodDelete+" /api/users/{id}", s.admin(s.handleAdminDeleteUser))
	mux.HandleFunc(http.MethodPut+" /api/users/{id}/preferences", s.admin(s.handleAdminSetPreferences))

	mux.HandleFunc(http.MethodGet+" /api/projects", s.handleListProjects)
	mux.HandleFunc(http.MethodGet+" /api/projects/my", s.authed(s.handleMyProjects))
	mux.HandleFunc(http.MethodGet+" /api/projects/admin", s.admin(s.handleAdminProjects))
	mux.HandleFunc(http.MethodGet+" /api/projects/{id}", s.handleGetProject)
	mux.HandleFunc(http.MethodPost+" /api/projects", s.authed(s.handleCreateProject))
	mux.HandleFunc(http.MethodPut+" /api/projects/{id}", s.authed(s.handleUpdateProject))
	mux.HandleFunc(http.MethodDelete+" /api/projects/{id}", s.authed(s.handleDeleteProject))

	mux.HandleFunc(http.MethodGet+" /api/techstacks", s.handleListStacks)
	mux.HandleFunc(http.MethodGet+" /api/techstacks/admin", s.admin(anyCaller(s.handleListStacks)))
	mux.HandleFunc(http.MethodGet+" /api/techstacks/{id}", s.handleGetStack)
	mux.HandleFunc(http.MethodPost+" /api/techstacks", s.admin(s.handleCreateStack))
	mux.HandleFunc(http.MethodPut+" /api/techstacks/{id}", s.admin(s.handleUpdateStack))
	mux.HandleFunc(http.MethodDelete+" /api/techstacks/{id}", s.admin(s.handleDeleteStack))

	mux.HandleFunc(http.MethodGet+" /api/repositories", s.handleListRepos)
	mux.HandleFunc(http.MethodGet+" /api/repositories/admin", s.admin(anyCaller(s.handleListRepos)))
	mux.HandleFunc(http.MethodGet+" /api/repositories/{id}", s.handleGetRepo)
	mux.HandleFunc(http.MethodPost+" /api/repositories", s.authed(s.handleCreateRepo))
	mux.HandleFunc(http.MethodPut+" /api/repositories/{id}", s.authed(s.handleUpdateRepo))
	mux.HandleFunc(http.MethodDelete+" /api/repositories/{id}", s.authed(s.handleDeleteRepo))
	mux.HandleFunc(http.MethodPost+" /api/repositories/bulk-delete", s.admin(s.handleBulkDeleteRepos))

	return s.intercept(mux)
}

// intercept records the call and serves injected failures before routing.
func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Auth:     r.Header.Get(common.AuthorizationHeaderName),
		})
		f, failing := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if failing {
			writeFail(w, f.status, f.message, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get(common.AuthorizationHeaderName), "Bearer ")
		if !ok || token == "" {
			writeFail(w, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}

		claims, err := ParseToken(token, s.secret)
		if err != nil {
			writeFail(w, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}

		s.mu.Lock()
		_, known := s.accounts[claims.UserID]
		revoked := s.revoked[token]
		s.mu.Unlock()

		if !known || revoked {
			writeFail(w, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		h(w, r, claims)
	}
}

func (s *Server) admin(h authedHandler) http.HandlerFunc {
	return s.authed(func(w http.ResponseWriter, r *http.Request, caller *Claims) {
		if !caller.Role.IsAdmin() {
			writeFail(w, http.StatusForbidden, "Forbidden", nil)
			return
		}
		h(w, r, caller)
	})
}

// anyCaller adapts a public handler to routes that still require a role.
func anyCaller(h http.HandlerFunc) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, _ *Claims) { h(w, r) }
}

func ownsOrAdmin(caller *Claims, ownerID string) bool {
	return caller.UserID == ownerID || caller.Role.IsAdmin()
}

