package forms

import (
	"strconv"
	"time"

	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/timex"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Widget is how a field is edited.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetTextArea Widget = "textarea"
	WidgetEmail    Widget = "email"
	WidgetURL      Widget = "url"
	WidgetPassword Widget = "password"
	WidgetDate     Widget = "date"
	WidgetSelect   Widget = "select"
	WidgetCheckbox Widget = "checkbox"
	WidgetNumber   Widget = "number"
	WidgetReadOnly Widget = "readonly"
)

// Field describes one displayed property of T. Get renders it as text.
type Field[T any] struct {
	Key      string
	Label    string
	Editable bool
	Widget   Widget
	Options  []string
	Get      func(T) string
}

// Row is a rendered label/value pair.
type Row struct {
	Label string
	Value string
}

// Render evaluates every field against v.
func Render[T any](fields []Field[T], v T) []Row {
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, Row{Label: f.Label, Value: f.Get(v)})
	}
	return rows
}

// Editable filters fields down to the ones a user may change.
func Editable[T any](fields []Field[T]) []Field[T] {
	var out []Field[T]
	for _, f := range fields {
		if f.Editable {
			out = append(out, f)
		}
	}
	return out
}

const dateLayout = "2006-01-02"

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func datePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return date(*t)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// ParseDate reads the date format used by the date widget.
func ParseDate(s string) (*timex.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return timex.Ptr(t), nil
}

// LanguageName renders a language tag in English, falling back to the tag.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}

var UserFields = []Field[models.User]{
	{Key: "username", Label: "Username", Editable: true, Widget: WidgetText, Get: func(u models.User) string { return u.Username }},
	{Key: "email", Label: "Email", Editable: true, Widget: WidgetEmail, Get: func(u models.User) string { return u.Email }},
	{Key: "firstName", Label: "First name", Editable: true, Widget: WidgetText, Get: func(u models.User) string { return u.FirstName }},
	{Key: "lastName", Label: "Last name", Editable: true, Widget: WidgetText, Get: func(u models.User) string { return u.LastName }},
	{Key: "bio", Label: "Bio", Editable: true, Widget: WidgetTextArea, Get: func(u models.User) string { return u.Bio }},
	{Key: "location", Label: "Location", Editable: true, Widget: WidgetText, Get: func(u models.User) string { return u.Location }},
	{Key: "website", Label: "Website", Editable: true, Widget: WidgetURL, Get: func(u models.User) string { return u.Website }},
	{Key: "githubUrl", Label: "GitHub", Editable: true, Widget: WidgetURL, Get: func(u models.User) string { return u.GithubURL }},
	{Key: "linkedInUrl", Label: "LinkedIn", Editable: true, Widget: WidgetURL, Get: func(u models.User) string { return u.LinkedInURL }},
	{Key: "role", Label: "Role", Widget: WidgetReadOnly, Get: func(u models.User) string { return string(u.Role) }},
	{Key: "isActive", Label: "Active", Widget: WidgetReadOnly, Get: func(u models.User) string { return yesNo(u.IsActive) }},
	{Key: "createdAt", Label: "Member since", Widget: WidgetReadOnly, Get: func(u models.User) string { return date(u.CreatedAt.Time) }},
	{Key: "lastLoginAt", Label: "Last login", Widget: WidgetReadOnly, Get: func(u models.User) string { return datePtr(u.LastLoginAt.Std()) }},
}

var ProjectFields = []Field[models.Project]{
	{Key: "id", Label: "ID", Widget: WidgetReadOnly, Get: func(p models.Project) string { return strconv.FormatInt(p.ID, 10) }},
	{Key: "title", Label: "Title", Editable: true, Widget: WidgetText, Get: func(p models.Project) string { return p.Title }},
	{Key: "status", Label: "Status", Editable: true, Widget: WidgetSelect, Options: statusNames(), Get: func(p models.Project) string { return string(p.Status) }},
	{Key: "techStackName", Label: "Tech stack", Editable: true, Widget: WidgetSelect, Get: func(p models.Project) string { return p.TechStackName }},
	{Key: "startDate", Label: "Start", Editable: true, Widget: WidgetDate, Get: func(p models.Project) string { return datePtr(p.StartDate.Std()) }},
	{Key: "endDate", Label: "End", Editable: true, Widget: WidgetDate, Get: func(p models.Project) string { return datePtr(p.EndDate.Std()) }},
	{Key: "isFeatured", Label: "Featured", Editable: true, Widget: WidgetCheckbox, Get: func(p models.Project) string { return yesNo(p.IsFeatured) }},
	{Key: "isPublic", Label: "Public", Editable: true, Widget: WidgetCheckbox, Get: func(p models.Project) string { return yesNo(p.IsPublic) }},
	{Key: "githubUrl", Label: "GitHub", Editable: true, Widget: WidgetURL, Get: func(p models.Project) string { return p.GithubURL }},
	{Key: "demoUrl", Label: "Demo", Editable: true, Widget: WidgetURL, Get: func(p models.Project) string { return p.DemoURL }},
	{Key: "description", Label: "Description", Editable: true, Widget: WidgetTextArea, Get: func(p models.Project) string { return p.Description }},
}

var TechStackFields = []Field[models.TechStack]{
	{Key: "id", Label: "ID", Widget: WidgetReadOnly, Get: func(t models.TechStack) string { return strconv.FormatInt(t.ID, 10) }},
	{Key: "name", Label: "Name", Editable: true, Widget: WidgetText, Get: func(t models.TechStack) string { return t.Name }},
	{Key: "category", Label: "Category", Editable: true, Widget: WidgetText, Get: func(t models.TechStack) string { return t.Category }},
	{Key: "color", Label: "Color", Editable: true, Widget: WidgetText, Get: func(t models.TechStack) string { return t.Color }},
	{Key: "description", Label: "Description", Editable: true, Widget: WidgetTextArea, Get: func(t models.TechStack) string { return t.Description }},
}

var RepositoryFields = []Field[models.Repository]{
	{Key: "id", Label: "ID", Widget: WidgetReadOnly, Get: func(r models.Repository) string { return strconv.FormatInt(r.ID, 10) }},
	{Key: "name", Label: "Name", Editable: true, Widget: WidgetText, Get: func(r models.Repository) string { return r.Name }},
	{Key: "language", Label: "Language", Editable: true, Widget: WidgetText, Get: func(r models.Repository) string { return r.Language }},
	{Key: "stars", Label: "Stars", Editable: true, Widget: WidgetNumber, Get: func(r models.Repository) string { return strconv.Itoa(r.Stars) }},
	{Key: "forks", Label: "Forks", Editable: true, Widget: WidgetNumber, Get: func(r models.Repository) string { return strconv.Itoa(r.Forks) }},
	{Key: "isPrivate", Label: "Private", Editable: true, Widget: WidgetCheckbox, Get: func(r models.Repository) string { return yesNo(r.IsPrivate) }},
	{Key: "url", Label: "URL", Editable: true, Widget: WidgetURL, Get: func(r models.Repository) string { return r.URL }},
}

var PreferenceFields = []Field[models.Preferences]{
	{Key: "theme", Label: "Theme", Editable: true, Widget: WidgetSelect, Options: themeNames(), Get: func(p models.Preferences) string { return string(p.Theme) }},
	{Key: "language", Label: "Language", Editable: true, Widget: WidgetText, Get: func(p models.Preferences) string { return LanguageName(p.Language) }},
	{Key: "timezone", Label: "Timezone", Editable: true, Widget: WidgetText, Get: func(p models.Preferences) string { return p.Timezone }},
	{Key: "emailNotifications", Label: "Email notifications", Editable: true, Widget: WidgetCheckbox, Get: func(p models.Preferences) string { return yesNo(p.EmailNotifications) }},
	{Key: "pushNotifications", Label: "Push notifications", Editable: true, Widget: WidgetCheckbox, Get: func(p models.Preferences) string { return yesNo(p.PushNotifications) }},
	{Key: "projectVisibilityDefault", Label: "Default visibility", Editable: true, Widget: WidgetSelect,
		Options: []string{string(models.VisibilityPublic), string(models.VisibilityPrivate)},
		Get:     func(p models.Preferences) string { return string(p.ProjectVisibilityDefault) }},
}
