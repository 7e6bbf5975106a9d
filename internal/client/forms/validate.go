package forms

import (
	"strconv"

	"github.com/dmitrijs2005/devfolio/internal/client/models"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

func ValidateCredentials(c models.Credentials) error {
	return NewValidator().
		Required("emailOrUsername", c.EmailOrUsername).
		Required("password", c.Password).
		Err()
}

func ValidateRegistration(r models.Registration) error {
	v := NewValidator()
	v.Required("username", r.Username).MinLength("username", r.Username, 3).MaxLength("username", r.Username, 50)
	v.Required("email", r.Email).Email("email", r.Email)
	v.Required("password", r.Password).MinLength("password", r.Password, MinPasswordLength)
	v.PasswordMatch("confirmPassword", r.Password, r.ConfirmPassword)
	if r.Role != "" {
		v.OneOf("role", string(r.Role), roleNames()...)
	}
	return v.Err()
}

func ValidateChangePassword(c models.ChangePassword) error {
	v := NewValidator()
	v.Required("currentPassword", c.CurrentPassword)
	v.Required("newPassword", c.NewPassword).MinLength("newPassword", c.NewPassword, MinPasswordLength)
	v.PasswordMatch("confirmPassword", c.NewPassword, c.ConfirmPassword)
	return v.Err()
}

func ValidateUserPatch(p models.UserPatch) error {
	v := NewValidator()
	if p.Username != nil {
		v.Required("username", *p.Username)
	}
	if p.Email != nil {
		v.Required("email", *p.Email).Email("email", *p.Email)
	}
	if p.Website != nil {
		v.URL("website", *p.Website)
	}
	if p.GithubURL != nil {
		v.URL("githubUrl", *p.GithubURL)
	}
	if p.LinkedInURL != nil {
		v.URL("linkedInUrl", *p.LinkedInURL)
	}
	if p.AvatarURL != nil {
		v.URL("avatarUrl", *p.AvatarURL)
	}
	if p.Role != nil {
		v.OneOf("role", string(*p.Role), roleNames()...)
	}
	return v.Err()
}

func ValidateProject(p models.ProjectInput) error {
	v := NewValidator()
	v.Required("title", p.Title).MaxLength("title", p.Title, 200)
	v.MaxLength("description", p.Description, 2000)
	v.Required("status", string(p.Status)).OneOf("status", string(p.Status), statusNames()...)
	v.DateOrder("endDate", p.StartDate.Std(), p.EndDate.Std())
	v.URL("githubUrl", p.GithubURL)
	v.URL("demoUrl", p.DemoURL)
	return v.Err()
}

func ValidateTechStack(t models.TechStackInput) error {
	v := NewValidator()
	v.Required("name", t.Name).MaxLength("name", t.Name, 100)
	v.MaxLength("category", t.Category, 50)
	v.MaxLength("description", t.Description, 500)
	v.MaxLength("color", t.Color, 20)
	return v.Err()
}

func ValidateRepository(r models.RepositoryInput) error {
	v := NewValidator()
	v.Required("name", r.Name).MaxLength("name", r.Name, 100)
	v.Required("url", r.URL).URL("url", r.URL)
	if r.Stars < 0 {
		v.add("stars", "must not be negative")
	}
	if r.Forks < 0 {
		v.add("forks", "must not be negative")
	}
	return v.Err()
}

// ValidatePreferences checks only the fields present in the patch.
func ValidatePreferences(p models.PreferencesPatch) error {
	v := NewValidator()
	if p.Theme != nil {
		v.Required("theme", string(*p.Theme)).OneOf("theme", string(*p.Theme), themeNames()...)
	}
	if p.Language != nil {
		v.Required("language", *p.Language).LanguageTag("language", *p.Language)
	}
	if p.Timezone != nil {
		v.Required("timezone", *p.Timezone).Timezone("timezone", *p.Timezone)
	}
	if p.ProjectVisibilityDefault != nil {
		v.OneOf("projectVisibilityDefault", string(*p.ProjectVisibilityDefault),
			string(models.VisibilityPublic), string(models.VisibilityPrivate))
	}
	return v.Err()
}

// ParseID reads a positive numeric entity id typed by the user.
func ParseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewValidator().add(field, "must be a positive number").Err()
	}
	return id, nil
}

func roleNames() []string {
	out := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		out[i] = string(r)
	}
	return out
}

func statusNames() []string {
	out := make([]string, len(models.ProjectStatuses))
	for i, s := range models.ProjectStatuses {
		out[i] = string(s)
	}
	return out
}

func themeNames() []string {
	out := make([]string, len(models.Themes))
	for i, t := range models.Themes {
		out[i] = string(t)
	}
	return out
}
