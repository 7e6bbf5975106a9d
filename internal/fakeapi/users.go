package fakeapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/common"
	"github.com/dmitrijs2005/devfolio/internal/timex"
)

const msgInvalidCredentials = "Invalid credentials"

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decode(w, r, &creds) {
		return
	}

	s.mu.Lock()
	var found *account
	for _, acc := range s.accounts {
		if strings.EqualFold(acc.user.Email, creds.EmailOrUsername) || acc.user.Username == creds.EmailOrUsername {
			found = acc
			break
		}
	}
	if found == nil || found.password != creds.Password || !found.user.IsActive {
		s.mu.Unlock()
		writeFail(w, http.StatusUnauthorized, msgInvalidCredentials, nil)
		return
	}
	now := timex.Now()
	found.user.LastLoginAt = &now
	user := found.user
	s.mu.Unlock()

	s.writeSession(w, http.StatusOK, "Login successful", user)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if !decode(w, r, &reg) {
		return
	}

	acc, fields := s.createAccount(reg, models.RoleUser)
	if fields != nil {
		writeFail(w, http.StatusBadRequest, "Registration failed", fields)
		return
	}
	s.writeSession(w, http.StatusCreated, "Registration successful", acc)
}

func (s *Server) writeSession(w http.ResponseWriter, code int, message string, user models.User) {
	token, exp, err := GenerateToken(user.ID, user.Role, s.secret, tokenValidity)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Token generation failed", nil)
		return
	}
	refresh, err := common.RandomToken(32)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "Token generation failed", nil)
		return
	}
	writeOK(w, code, message, models.Session{
		User:         &user,
		Token:        token,
		RefreshToken: refresh,
		ExpiresAt:    timex.Of(exp.UTC()),
	})
}

// createAccount checks uniqueness and stores the account. A non-nil field
// map means the registration was rejected.
func (s *Server) createAccount(reg models.Registration, defaultRole models.Role) (models.User, map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string][]string{}
	if reg.Username == "" {
		fields["username"] = append(fields["username"], "Username is required")
	}
	if reg.Email == "" {
		fields["email"] = append(fields["email"], "Email is required")
	}
	for _, acc := range s.accounts {
		if acc.user.Username == reg.Username {
			fields["username"] = append(fields["username"], "Username is already taken")
		}
		if strings.EqualFold(acc.user.Email, reg.Email) {
			fields["email"] = append(fields["email"], "Email is already registered")
		}
	}
	if len(fields) > 0 {
		return models.User{}, fields
	}

	role := reg.Role
	if role == "" {
		role = defaultRole
	}
	acc := s.addAccountLocked(models.User{
		Username:  reg.Username,
		Email:     reg.Email,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Role:      role,
	}, reg.Password)
	return acc.user, nil
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, caller *Claims) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	s.revoked[token] = true
	s.mu.Unlock()
	writeOK[any](w, http.StatusOK, "Logged out", nil)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, caller *Claims) {
	s.mu.Lock()
	user := s.accounts[caller.UserID].user
	s.mu.Unlock()
	writeOK(w, http.StatusOK, "Profile", user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, caller *Claims) {
	var patch models.UserPatch
	if !decode(w, r, &patch) {
		return
	}
	// role and activation are admin-only
	patch.Role, patch.IsActive = nil, nil

	s.mu.Lock()
	acc := s.accounts[caller.UserID]
	acc.user = patch.Apply(acc.user)
	acc.user.UpdatedAt = timex.Now()
	user := acc.user
	s.mu.Unlock()

	writeOK(w, http.StatusOK, "Profile updated", user)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request, caller *Claims) {
	var in models.ChangePassword
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accounts[caller.UserID]
	if acc.password != in.CurrentPassword {
		writeFail(w, http.StatusBadRequest, "Current password is incorrect",
			map[string][]string{"currentPassword": {"Current password is incorrect"}})
		return
	}
	acc.password = in.NewPassword
	writeOK[any](w, http.StatusOK, "Password changed", nil)
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request, caller *Claims) {
	s.mu.Lock()
	disabled := s.noPrefs
	acc := s.accounts[caller.UserID]
	prefs := models.DefaultPreferences()
	if acc.prefs != nil {
		prefs = *acc.prefs
	}
	s.mu.Unlock()

	if disabled {
		writeFail(w, http.StatusNotFound, "Not Found", nil)
		return
	}
	writeOK(w, http.StatusOK, "Preferences", prefs)
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request, caller *Claims) {
	var patch models.PreferencesPatch
	if !decode(w, r, &patch) {
		return
	}

	s.mu.Lock()
	if s.noPrefs {
		s.mu.Unlock()
		writeFail(w, http.StatusNotFound, "Not Found", nil)
		return
	}
	acc := s.accounts[caller.UserID]
	current := models.DefaultPreferences()
	if acc.prefs != nil {
		current = *acc.prefs
	}
	updated := patch.Apply(current)
	acc.prefs = &updated
	s.mu.Unlock()

	writeOK(w, http.StatusOK, "Preferences updated", updated)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, caller *Claims) {
	q := r.URL.Query()
	search, role := q.Get("search"), q.Get("role")

	s.mu.Lock()
	users := make([]models.User, 0, len(s.accounts))
	for _, acc := range s.accounts {
		u := acc.user
		if search != "" && !contains(u.Username+" "+u.Email+" "+u.FirstName+" "+u.LastName, search) {
			continue
		}
		if role != "" && string(u.Role) != role {
			continue
		}
		users = append(users, u)
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	writeOK(w, http.StatusOK, "Users", paginate(users, r))
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request, caller *Claims) {
	var reg models.Registration
	if !decode(w, r, &reg) {
		return
	}
	user, fields := s.createAccount(reg, models.RoleUser)
	if fields != nil {
		writeFail(w, http.StatusBadRequest, "User creation failed", fields)
		return
	}
	writeOK(w, http.StatusCreated, "User created", user)
}

func (s *Server) handleAdminUpdateUser(w http.ResponseWriter, r *http.Request, caller *Claims) {
	var patch models.UserPatch
	if !decode(w, r, &patch) {
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[r.PathValue("id")]
	if !ok {
		s.mu.Unlock()
		writeFail(w, http.StatusNotFound, "User not found", nil)
		return
	}
	acc.user = patch.Apply(acc.user)
	acc.user.UpdatedAt = timex.Now()
	user := acc.user
	s.mu.Unlock()

	writeOK(w, http.StatusOK, "User updated", user)
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request, caller *Claims) {
	id := r.PathValue("id")

	s.mu.Lock()
	_, ok := s.accounts[id]
	delete(s.accounts, id)
	s.mu.Unlock()

	if !ok {
		writeFail(w, http.StatusNotFound, "User not found", nil)
		return
	}
	writeOK[any](w, http.StatusOK, "User deleted", nil)
}

func (s *Server) handleAdminSetPreferences(w http.ResponseWriter, r *http.Request, caller *Claims) {
	var prefs models.Preferences
	if !decode(w, r, &prefs) {
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[r.PathValue("id")]
	if ok {
		acc.prefs = &prefs
	}
	s.mu.Unlock()

	if !ok {
		writeFail(w, http.StatusNotFound, "User not found", nil)
		return
	}
	writeOK(w, http.StatusOK, "Preferences updated", prefs)
}
