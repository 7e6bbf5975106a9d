package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/devfolio/internal/client/forms"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/common"
)

func (a *App) ask(label string) (string, error) {
	return a.prompt.Line(label)
}

func (a *App) askPassword(label string) (string, error) {
	return a.prompt.Secret(label)
}

// Register prompts for the account fields and creates the account. On
// success the new session is active.
func (a *App) Register(ctx context.Context) error {
	var reg models.Registration
	var err error

	if reg.Username, err = a.ask("Username"); err != nil {
		return err
	}
	if reg.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if reg.FirstName, err = a.ask("First name (optional)"); err != nil {
		return err
	}
	if reg.LastName, err = a.ask("Last name (optional)"); err != nil {
		return err
	}
	if reg.Password, err = a.askPassword("Password"); err != nil {
		return err
	}
	if reg.ConfirmPassword, err = a.askPassword("Confirm password"); err != nil {
		return err
	}

	sess, err := a.svc.Auth.Register(ctx, reg)
	if err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", sess.User.DisplayName())
	return nil
}

// Login prompts for credentials and signs in. A failed login leaves the
// stored session untouched and returns the server's message.
func (a *App) Login(ctx context.Context) error {
	var creds models.Credentials
	var err error

	if creds.EmailOrUsername, err = a.ask("Email or username"); err != nil {
		return err
	}
	if creds.Password, err = a.askPassword("Password"); err != nil {
		return err
	}

	sess, err := a.svc.Auth.Login(ctx, creds)
	if err != nil {
		return err
	}

	a.logger.Info(ctx, "login successful", "user", sess.User.Username)
	a.printf("Signed in as %s (%s)\n", sess.User.DisplayName(), sess.User.Role)
	return nil
}

// Logout signs out. Local state is cleared even when the backend call fails.
func (a *App) Logout(ctx context.Context) error {
	if err := a.svc.Auth.Logout(ctx); err != nil {
		return err
	}
	a.printf("Signed out.\n")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	sess := a.store.Current()
	if !sess.IsAuthenticated() {
		a.printf("Not signed in.\n")
		return nil
	}

	a.printf("%s <%s> %s\n", sess.User.DisplayName(), sess.User.Email, sess.User.Role)
	if !sess.ExpiresAt.IsZero() {
		a.printf("Session expires %s\n", sess.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// Profile fetches the signed-in user's profile and prints it.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.svc.Users.Profile(ctx)
	if err != nil {
		return err
	}
	writeRows(a.out, forms.Render(forms.UserFields, u))
	return nil
}

// Prefs prints the preferences, or updates one of them when called as
// "prefs <key> <value>".
func (a *App) Prefs(ctx context.Context, args []string) error {
	if len(args) == 0 {
		prefs, err := a.svc.Preferences.Get(ctx)
		if err != nil {
			return err
		}
		writeRows(a.out, forms.Render(forms.PreferenceFields, prefs))
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: prefs [<key> <value>]")
	}

	patch, err := preferencesPatch(args[0], args[1])
	if err != nil {
		return err
	}

	prefs, err := a.svc.Preferences.Update(ctx, patch)
	if err != nil {
		return err
	}
	writeRows(a.out, forms.Render(forms.PreferenceFields, prefs))
	return nil
}

func preferencesPatch(key, value string) (models.PreferencesPatch, error) {
	var patch models.PreferencesPatch

	switch key {
	case "theme":
		patch.Theme = models.Ptr(models.Theme(value))
	case "language":
		patch.Language = models.Ptr(value)
	case "timezone":
		patch.Timezone = models.Ptr(value)
	case "emailNotifications", "pushNotifications":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return patch, fmt.Errorf("%s must be true or false", key)
		}
		if key == "emailNotifications" {
			patch.EmailNotifications = &b
		} else {
			patch.PushNotifications = &b
		}
	case "projectVisibilityDefault":
		patch.ProjectVisibilityDefault = models.Ptr(models.Visibility(value))
	default:
		keys := make([]string, 0, len(forms.PreferenceFields))
		for _, f := range forms.PreferenceFields {
			keys = append(keys, f.Key)
		}
		return patch, fmt.Errorf("unknown preference %q, expected one of: %s", key, strings.Join(keys, ", "))
	}
	return patch, nil
}

// SetTheme switches the theme. Signed-in users get the choice saved to
// their preferences; when the backend does not serve preferences the theme
// is still applied locally.
func (a *App) SetTheme(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: theme <light|dark|auto>")
	}
	t := models.Theme(strings.ToLower(args[0]))
	if err := forms.NewValidator().OneOf("theme", string(t), themeOptions()...).Err(); err != nil {
		return err
	}

	if a.isLoggedIn() && !a.isDemo() {
		_, err := a.svc.Preferences.Update(ctx, models.PreferencesPatch{Theme: &t})
		switch {
		case err == nil:
		case errors.Is(err, common.ErrFeatureUnavailable):
			a.theme.Apply(t)
		default:
			return err
		}
	} else {
		a.theme.Apply(t)
	}

	a.printf("Theme: %s (%s)\n", a.theme.Selected(), a.theme.Style(string(a.theme.Active())))
	return nil
}

func themeOptions() []string {
	out := make([]string, len(models.Themes))
	for i, t := range models.Themes {
		out[i] = string(t)
	}
	return out
}
