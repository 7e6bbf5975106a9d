package models

// Theme is the visual theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Themes lists the accepted theme values.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeAuto}

// Visibility is the default visibility of newly created projects.
type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

// Preferences is the per-user settings object synced with the backend.
type Preferences struct {
	Theme                    Theme      `json:"theme"`
	Language                 string     `json:"language"`
	Timezone                 string     `json:"timezone"`
	EmailNotifications       bool       `json:"emailNotifications"`
	PushNotifications        bool       `json:"pushNotifications"`
	ProjectVisibilityDefault Visibility `json:"projectVisibilityDefault"`
}

// DefaultPreferences is what a fresh account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:                    ThemeAuto,
		Language:                 "en",
		Timezone:                 "UTC",
		EmailNotifications:       true,
		PushNotifications:        false,
		ProjectVisibilityDefault: VisibilityPublic,
	}
}

// PreferencesPatch carries changed preference fields only.
type PreferencesPatch struct {
	Theme                    *Theme      `json:"theme,omitempty"`
	Language                 *string     `json:"language,omitempty"`
	Timezone                 *string     `json:"timezone,omitempty"`
	EmailNotifications       *bool       `json:"emailNotifications,omitempty"`
	PushNotifications        *bool       `json:"pushNotifications,omitempty"`
	ProjectVisibilityDefault *Visibility `json:"projectVisibilityDefault,omitempty"`
}

// Apply returns a copy of p with every non-nil patch field overwritten.
func (pp PreferencesPatch) Apply(p Preferences) Preferences {
	if pp.Theme != nil {
		p.Theme = *pp.Theme
	}
	if pp.Language != nil {
		p.Language = *pp.Language
	}
	if pp.Timezone != nil {
		p.Timezone = *pp.Timezone
	}
	if pp.EmailNotifications != nil {
		p.EmailNotifications = *pp.EmailNotifications
	}
	if pp.PushNotifications != nil {
		p.PushNotifications = *pp.PushNotifications
	}
	if pp.ProjectVisibilityDefault != nil {
		p.ProjectVisibilityDefault = *pp.ProjectVisibilityDefault
	}
	return p
}
