// Package fakeapi is an in-memory stand-in for the devfolio REST backend. It
// serves the same routes and envelopes over httptest so the client, the
// seed tool and the CLI can be exercised end to end.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/timex"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	tokenValidity   = time.Hour
)

type account struct {
	user     models.User
	password string
	prefs    *models.Preferences
}

// Request is a recorded inbound call.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Auth     string
}

type failure struct {
	status  int
	message string
}

// Server is the fake backend. Create it with New and Close it when done.
type Server struct {
	*httptest.Server

	secret []byte

	mu       sync.Mutex
	accounts map[string]*account
	projects map[int64]models.Project
	stacks   map[int64]models.TechStack
	repos    map[int64]models.Repository
	nextID   int64
	failures map[string]failure
	requests []Request
	revoked  map[string]bool
	noPrefs  bool
}

// New starts a fake backend. Its API root is URL + "/api".
func New() *Server {
	s := &Server{
		secret:   []byte(uuid.NewString()),
		accounts: make(map[string]*account),
		projects: make(map[int64]models.Project),
		stacks:   make(map[int64]models.TechStack),
		repos:    make(map[int64]models.Repository),
		failures: make(map[string]failure),
		revoked:  make(map[string]bool),
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// APIURL is the base URL clients should use.
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

// AddUser registers an account directly and returns it.
func (s *Server) AddUser(u models.User, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAccountLocked(u, password).user
}

func (s *Server) addAccountLocked(u models.User, password string) *account {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	now := timex.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	u.IsActive = true
	acc := &account{user: u, password: password}
	s.accounts[u.ID] = acc
	return acc
}

// SetPreferences stores prefs for the user with id.
func (s *Server) SetPreferences(id string, prefs models.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.accounts[id]; ok {
		acc.prefs = &prefs
	}
}

// DisablePreferences makes the preferences endpoints answer 404, like a
// backend that has not shipped them.
func (s *Server) DisablePreferences() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noPrefs = true
}

// FailOn makes "METHOD /api/path" answer status with message until cleared
// with status 0.
func (s *Server) FailOn(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	if status == 0 {
		delete(s.failures, key)
		return
	}
	s.failures[key] = failure{status: status, message: message}
}

// Requests returns every call received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent call matching method and path.
func (s *Server) LastRequest(method, path string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		r := s.requests[i]
		if r.Method == method && r.Path == path {
			return r, true
		}
	}
	return Request{}, false
}

// Counts reports how many users, tech stacks, repositories and projects
// exist.
func (s *Server) Counts() (users, stacks, repos, projects int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts), len(s.stacks), len(s.repos), len(s.projects)
}

// Projects returns every stored project ordered by id.
func (s *Server) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.projects, func(p models.Project) int64 { return p.ID })
}

// Users returns every account ordered by username.
func (s *Server) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// Repositories returns every stored repository ordered by id.
func (s *Server) Repositories() []models.Repository {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.repos, func(r models.Repository) int64 { return r.ID })
}

// Preferences returns the stored preferences of a user.
func (s *Server) Preferences(id string) (models.Preferences, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok || acc.prefs == nil {
		return models.Preferences{}, false
	}
	return *acc.prefs, true
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func sortedValues[T any](m map[int64]T, key func(T) int64) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}

func paginate[T any](items []T, r *http.Request) models.Page[T] {
	page := queryInt(r, "page", 1)
	size := queryInt(r, "pageSize", defaultPageSize)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}

	total := len(items)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return models.Page[T]{
		Items:      append([]T{}, items[start:end]...),
		TotalCount: total,
		Page:       page,
		PageSize:   size,
		TotalPages: (total + size - 1) / size,
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func writeOK[T any](w http.ResponseWriter, code int, message string, data T) {
	writeJSON(w, code, api.OK(code, message, data))
}

func writeFail(w http.ResponseWriter, code int, message string, fields map[string][]string) {
	writeJSON(w, code, api.Fail(code, message, fields))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	return true
}
