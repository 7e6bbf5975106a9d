package cli

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_FromPrompts(t *testing.T) {
	ta := newTestApp(t, adminEmail+"\n")
	stubPasswords(t, adminPassword)

	require.NoError(t, ta.Login(context.Background()))
	assert.True(t, ta.isLoggedIn())
	assert.Contains(t, ta.out.String(), "Signed in as ali (Admin)")
}

func TestLogin_WrongPassword_ShowsServerMessage(t *testing.T) {
	ta := newTestApp(t, adminEmail+"\n")
	stubPasswords(t, "wrong")

	err := ta.Login(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"Error: Invalid credentials"}, describeError(err))
	assert.False(t, ta.isLoggedIn())
}

func TestRegister_FromPrompts(t *testing.T) {
	ta := newTestApp(t, "newbie\nnewbie@example.com\nNew\nBie\n")
	stubPasswords(t, "secret1", "secret1")

	require.NoError(t, ta.Register(context.Background()))
	assert.Contains(t, ta.out.String(), "Welcome, New Bie!")
	assert.Equal(t, "newbie", ta.store.User().Username)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	ta := newTestApp(t, "newbie\nnewbie@example.com\n\n\n")
	stubPasswords(t, "secret1", "secret2")

	err := ta.Register(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
	_, called := ta.srv.LastRequest(http.MethodPost, "/api/auth/register")
	assert.False(t, called)
}

func TestLogout_ClearsEvenWhenBackendFails(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t, adminEmail, adminPassword)
	ta.srv.FailOn(http.MethodPost, "/api/auth/logout", http.StatusInternalServerError, "boom")

	require.NoError(t, ta.Logout(context.Background()))
	assert.False(t, ta.isLoggedIn())
	assert.Contains(t, ta.out.String(), "Signed out.")
}

func TestWhoAmI(t *testing.T) {
	ta := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, ta.WhoAmI(ctx))
	assert.Contains(t, ta.out.String(), "Not signed in.")

	ta.login(t, "mia", "member-pass")
	require.NoError(t, ta.WhoAmI(ctx))
	assert.Contains(t, ta.out.String(), "Mia <mia@example.com> User")
	assert.Contains(t, ta.out.String(), "Session expires")
}

func TestProfile_RendersDescriptorRows(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t, "mia", "member-pass")

	require.NoError(t, ta.Profile(context.Background()))
	out := ta.out.String()
	assert.Contains(t, out, "Username:")
	assert.Contains(t, out, "mia")
	assert.Contains(t, out, "Member since:")
}

func TestPrefs_ShowAndUpdate(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t, "mia", "member-pass")
	ctx := context.Background()

	require.NoError(t, ta.Prefs(ctx, nil))
	assert.Contains(t, ta.out.String(), "English")

	require.NoError(t, ta.Prefs(ctx, []string{"timezone", "Europe/Riga"}))
	got, ok := ta.srv.Preferences(ta.member.ID)
	require.True(t, ok)
	assert.Equal(t, "Europe/Riga", got.Timezone)

	require.ErrorIs(t, ta.Prefs(ctx, []string{"timezone", "Mars/Olympus"}), common.ErrValidation)
	require.Error(t, ta.Prefs(ctx, []string{"pushNotifications", "sometimes"}))
	require.Error(t, ta.Prefs(ctx, []string{"fontSize", "12"}))
}

func TestSetTheme_SavedToPreferences(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t, "mia", "member-pass")

	require.NoError(t, ta.SetTheme(context.Background(), []string{"Dark"}))
	assert.Equal(t, models.ThemeDark, ta.theme.Active())

	got, ok := ta.srv.Preferences(ta.member.ID)
	require.True(t, ok)
	assert.Equal(t, models.ThemeDark, got.Theme)
}

func TestSetTheme_LocalWhenPreferencesUnavailable(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login(t, "mia", "member-pass")
	ta.srv.DisablePreferences()

	require.NoError(t, ta.SetTheme(context.Background(), []string{"light"}))
	assert.Equal(t, models.ThemeLight, ta.theme.Active())
	assert.True(t, ta.isLoggedIn())
}

func TestSetTheme_SignedOutAndInvalid(t *testing.T) {
	ta := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, ta.SetTheme(ctx, []string{"dark"}))
	assert.Equal(t, models.ThemeDark, ta.theme.Selected())

	require.ErrorIs(t, ta.SetTheme(ctx, []string{"neon"}), common.ErrValidation)
	require.Error(t, ta.SetTheme(ctx, nil))
	assert.Empty(t, ta.srv.Requests())
}
