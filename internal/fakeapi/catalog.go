package fakeapi

import (
	"net/http"

	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/timex"
)

func (s *Server) handleListStacks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search, category := q.Get("search"), q.Get("category")

	s.mu.Lock()
	all := sortedValues(s.stacks, func(t models.TechStack) int64 { return t.ID })
	s.mu.Unlock()

	out := make([]models.TechStack, 0, len(all))
	for _, t := range all {
		if search != "" && !contains(t.Name+" "+t.Description, search) {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		out = append(out, t)
	}
	writeOK(w, http.StatusOK, "Tech stacks", paginate(out, r))
}

func (s *Server) handleGetStack(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "Invalid id", nil)
		return
	}
	s.mu.Lock()
	t, found := s.stacks[id]
	s.mu.Unlock()
	if !found {
		writeFail(w, http.StatusNotFound, "Tech stack not found", nil)
		return
	}
	writeOK(w, http.StatusOK, "Tech stack", t)
}

func (s *Server) handleCreateStack(w http.ResponseWriter, r *http.Request, caller *Claims) {
	var in models.TechStackInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	for _, existing := range s.stacks {
		if existing.Name == in.Name {
			s.mu.Unlock()
			writeFail(w, http.StatusConflict, "Tech stack already exists", map[string][]string{"name": {"Name must be unique"}})
			return
		}
	}
	t := models.TechStack{
		ID:          s.id(),
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Color:       in.Color,
		CreatedAt:   timex.Now(),
	}
	s.stacks[t.ID] = t
	s.mu.Unlock()

	writeOK(w, http.StatusCreated, "Tech stack created", t)
}

func (s *Server) handleUpdateStack(w http.ResponseWriter, r *http.Request, caller *Claims) {
	id, ok := pathID(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "Invalid id", nil)
		return
	}
	var in models.TechStackInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, found := s.stacks[id]
	if !found {
		writeFail(w, http.StatusNotFound, "Tech stack not found", nil)
		return
	}
	t.Name, t.Category, t.Description, t.Color = in.Name, in.Category, in.Description, in.Color
	s.stacks[id] = t
	writeOK(w, http.StatusOK, "Tech stack updated", t)
}

func (s *Server) handleDeleteStack(w http.ResponseWriter, r *http.Request, caller *Claims) {
	id, ok := pathID(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "Invalid id", nil)
		return
	}
	s.mu.Lock()
	_, found := s.stacks[id]
	delete(s.stacks, id)
	s.mu.Unlock()
	if !found {
		writeFail(w, http.StatusNotFound, "Tech stack not found", nil)
		return
	}
	writeOK[any](w, http.StatusOK, "Tech stack deleted", nil)
}

func (s *Server) handleListRepos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search, userID := q.Get("search"), q.Get("userId")

	s.mu.Lock()
	all := sortedValues(s.repos, func(r models.Repository) int64 { return r.ID })
	s.mu.Unlock()

	out := make([]models.Repository, 0, len(all))
	for _, repo := range all {
		if search != "" && !contains(repo.Name+" "+repo.Description, search) {
			continue
		}
		if userID != "" && repo.UserID != userID {
			continue
		}
		out = append(out, repo)
	}
	writeOK(w, http.StatusOK, "Repositories", paginate(out, r))
}

func (s *Server) handleGetRepo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "Invalid id", nil)
		return
	}
	s.mu.Lock()
	repo, found := s.repos[id]
	s.mu.Unlock()
	if !found {
		writeFail(w, http.StatusNotFound, "Repository not found", nil)
		return
	}
	writeOK(w, http.StatusOK, "Repository", repo)
}

func (s *Server) handleCreateRepo(w http.ResponseWriter, r *http.Request, caller *Claims) {
	var in models.RepositoryInput
	if !decode(w, r, &in) {
		return
	}
	owner := caller.UserID
	if in.UserID != "" && caller.Role.IsAdmin() {
		owner = in.UserID
	}

	s.mu.Lock()
	if _, ok := s.accounts[owner]; !ok {
		s.mu.Unlock()
		writeFail(w, http.StatusBadRequest, "Unknown user", map[string][]string{"userId": {"User does not exist"}})
		return
	}
	repo := models.Repository{
		ID:          s.id(),
		Name:        in.Name,
		Description: in.Description,
		URL:         in.URL,
		Language:    in.Language,
		Stars:       in.Stars,
		Forks:       in.Forks,
		IsPrivate:   in.IsPrivate,
		UserID:      owner,
		TechStackID: in.TechStackID,
		CreatedAt:   timex.Now(),
	}
	s.repos[repo.ID] = repo
	s.mu.Unlock()

	writeOK(w, http.StatusCreated, "Repository created", repo)
}

func (s *Server) handleUpdateRepo(w http.ResponseWriter, r *http.Request, caller *Claims) {
	id, ok := pathID(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "Invalid id", nil)
		return
	}
	var in models.RepositoryInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	repo, found := s.repos[id]
	if !found {
		writeFail(w, http.StatusNotFound, "Repository not found", nil)
		return
	}
	if !ownsOrAdmin(caller, repo.UserID) {
		writeFail(w, http.StatusForbidden, "Forbidden", nil)
		return
	}
	repo.Name, repo.Description, repo.URL, repo.Language = in.Name, in.Description, in.URL, in.Language
	repo.Stars, repo.Forks, repo.IsPrivate, repo.TechStackID = in.Stars, in.Forks, in.IsPrivate, in.TechStackID
	s.repos[id] = repo
	writeOK(w, http.StatusOK, "Repository updated", repo)
}

func (s *Server) handleDeleteRepo(w http.ResponseWriter, r *http.Request, caller *Claims) {
	id, ok := pathID(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "Invalid id", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	repo, found := s.repos[id]
	if !found {
		writeFail(w, http.StatusNotFound, "Repository not found", nil)
		return
	}
	if !ownsOrAdmin(caller, repo.UserID) {
		writeFail(w, http.StatusForbidden, "Forbidden", nil)
		return
	}
	delete(s.repos, id)
	writeOK[any](w, http.StatusOK, "Repository deleted", nil)
}

func (s *Server) handleBulkDeleteRepos(w http.ResponseWriter, r *http.Request, caller *Claims) {
	var body struct {
		IDs []int64 `json:"ids"`
	}
	if !decode(w, r, &body) {
		return
	}

	s.mu.Lock()
	res := models.BulkDeleteResult{}
	for _, id := range body.IDs {
		if _, ok := s.repos[id]; !ok {
			res.NotFound = append(res.NotFound, id)
			continue
		}
		delete(s.repos, id)
		res.Deleted++
	}
	s.mu.Unlock()

	writeOK(w, http.StatusOK, "Repositories deleted", res)
}
