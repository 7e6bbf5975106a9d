package fakeapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/timex"
)

// projectFilter applies the documented project query parameters.
func projectFilter(r *http.Request) func(models.Project) bool {
	q := r.URL.Query()
	status := q.Get("status")
	search := q.Get("search")
	stackID := q.Get("techStackId")
	featured := q.Get("isFeatured")
	userID := q.Get("userId")

	return func(p models.Project) bool {
		if status != "" && string(p.Status) != status {
			return false
		}
		if search != "" && !contains(p.Title+" "+p.Description, search) {
			return false
		}
		if stackID != "" && (p.TechStackID == nil || strconv.FormatInt(*p.TechStackID, 10) != stackID) {
			return false
		}
		if featured != "" && strconv.FormatBool(p.IsFeatured) != featured {
			return false
		}
		if userID != "" && p.UserID != userID {
			return false
		}
		return true
	}
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request, keep func(models.Project) bool) {
	match := projectFilter(r)

	s.mu.Lock()
	all := sortedValues(s.projects, func(p models.Project) int64 { return p.ID })
	s.mu.Unlock()

	out := make([]models.Project, 0, len(all))
	for _, p := range all {
		if keep(p) && match(p) {
			out = append(out, p)
		}
	}
	writeOK(w, http.StatusOK, "Projects", paginate(out, r))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	s.listProjects(w, r, func(p models.Project) bool { return p.IsPublic })
}

func (s *Server) handleMyProjects(w http.ResponseWriter, r *http.Request, caller *Claims) {
	s.listProjects(w, r, func(p models.Project) bool { return p.UserID == caller.UserID })
}

func (s *Server) handleAdminProjects(w http.ResponseWriter, r *http.Request, caller *Claims) {
	s.listProjects(w, r, func(models.Project) bool { return true })
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "Invalid id", nil)
		return
	}

	s.mu.Lock()
	p, found := s.projects[id]
	s.mu.Unlock()

	if !found {
		writeFail(w, http.StatusNotFound, "Project not found", nil)
		return
	}
	writeOK(w, http.StatusOK, "Project", p)
}

func (s *Server) applyProjectInput(p *models.Project, in models.ProjectInput) {
	p.Title = in.Title
	p.Description = in.Description
	p.Status = in.Status
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.GithubURL = in.GithubURL
	p.DemoURL = in.DemoURL
	p.IsFeatured = in.IsFeatured
	p.IsPublic = in.IsPublic
	p.TechStackID = in.TechStackID
	p.TechStackName = ""
	if in.TechStackID != nil {
		if st, ok := s.stacks[*in.TechStackID]; ok {
			p.TechStackName = st.Name
		}
	}
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request, caller *Claims) {
	var in models.ProjectInput
	if !decode(w, r, &in) {
		return
	}
	if in.Title == "" {
		writeFail(w, http.StatusBadRequest, "Validation failed", map[string][]string{"title": {"Title is required"}})
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
	now := timex.Now()
	p := models.Project{ID: s.id(), UserID: owner, CreatedAt: now, UpdatedAt: now}
	s.applyProjectInput(&p, in)
	s.projects[p.ID] = p
	s.mu.Unlock()

	writeOK(w, http.StatusCreated, "Project created", p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request, caller *Claims) {
	id, ok := pathID(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "Invalid id", nil)
		return
	}
	var in models.ProjectInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.projects[id]
	if !found {
		writeFail(w, http.StatusNotFound, "Project not found", nil)
		return
	}
	if !ownsOrAdmin(caller, p.UserID) {
		writeFail(w, http.StatusForbidden, "Forbidden", nil)
		return
	}
	s.applyProjectInput(&p, in)
	p.UpdatedAt = timex.Now()
	s.projects[id] = p
	writeOK(w, http.StatusOK, "Project updated", p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request, caller *Claims) {
	id, ok := pathID(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "Invalid id", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.projects[id]
	if !found {
		writeFail(w, http.StatusNotFound, "Project not found", nil)
		return
	}
	if !ownsOrAdmin(caller, p.UserID) {
		writeFail(w, http.StatusForbidden, "Forbidden", nil)
		return
	}
	delete(s.projects, id)
	writeOK[any](w, http.StatusOK, "Project deleted", nil)
}
