package forms

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/common"
	"github.com/dmitrijs2005/devfolio/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Checks(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, 0, -1)

	tests := []struct {
		name     string
		run      func(v *Validator)
		hasError bool
	}{
		{"required ok", func(v *Validator) { v.Required("f", "x") }, false},
		{"required blank", func(v *Validator) { v.Required("f", "  ") }, true},
		{"min length short", func(v *Validator) { v.MinLength("f", "ab", 3) }, true},
		{"min length empty skipped", func(v *Validator) { v.MinLength("f", "", 3) }, false},
		{"min length runes", func(v *Validator) { v.MinLength("f", "äöü", 3) }, false},
		{"max length", func(v *Validator) { v.MaxLength("f", "abcd", 3) }, true},
		{"email ok", func(v *Validator) { v.Email("f", "ali@asafarim.com") }, false},
		{"email bad", func(v *Validator) { v.Email("f", "ali.asafarim.com") }, true},
		{"email display name rejected", func(v *Validator) { v.Email("f", "Ali <ali@asafarim.com>") }, true},
		{"url ok", func(v *Validator) { v.URL("f", "https://github.com/ali") }, false},
		{"url no scheme", func(v *Validator) { v.URL("f", "github.com/ali") }, true},
		{"url ftp", func(v *Validator) { v.URL("f", "ftp://example.com") }, true},
		{"date order ok", func(v *Validator) { v.DateOrder("f", &start, &start) }, false},
		{"date order reversed", func(v *Validator) { v.DateOrder("f", &start, &before) }, true},
		{"date order open end", func(v *Validator) { v.DateOrder("f", &start, nil) }, false},
		{"password mismatch", func(v *Validator) { v.PasswordMatch("f", "a", "b") }, true},
		{"one of ok", func(v *Validator) { v.OneOf("f", "dark", "light", "dark") }, false},
		{"one of bad", func(v *Validator) { v.OneOf("f", "neon", "light", "dark") }, true},
		{"language ok", func(v *Validator) { v.LanguageTag("f", "nl-BE") }, false},
		{"language bad", func(v *Validator) { v.LanguageTag("f", "not a tag!") }, true},
		{"timezone ok", func(v *Validator) { v.Timezone("f", "Europe/Amsterdam") }, false},
		{"timezone bad", func(v *Validator) { v.Timezone("f", "Mars/Olympus") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator()
			tt.run(v)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

func TestValidator_Err_IsAPIValidationError(t *testing.T) {
	err := NewValidator().Required("title", "").Required("status", "").Err()

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, map[string][]string{
		"title":  {"is required"},
		"status": {"is required"},
	}, apiErr.Errors)
}

func TestValidator_NoErrors_NilErr(t *testing.T) {
	require.NoError(t, NewValidator().Required("f", "x").Err())
}

func TestValidateCredentials(t *testing.T) {
	require.NoError(t, ValidateCredentials(models.Credentials{EmailOrUsername: "ali", Password: "x"}))
	require.ErrorIs(t, ValidateCredentials(models.Credentials{EmailOrUsername: "ali"}), common.ErrValidation)
}

func TestValidateRegistration(t *testing.T) {
	ok := models.Registration{Username: "ali", Email: "ali@asafarim.com", Password: "secret", ConfirmPassword: "secret"}
	require.NoError(t, ValidateRegistration(ok))

	short := ok
	short.Password, short.ConfirmPassword = "abc", "abc"
	var apiErr *api.Error
	require.ErrorAs(t, ValidateRegistration(short), &apiErr)
	assert.Contains(t, apiErr.Errors, "password")

	mismatch := ok
	mismatch.ConfirmPassword = "other1"
	require.ErrorAs(t, ValidateRegistration(mismatch), &apiErr)
	assert.Contains(t, apiErr.Errors, "confirmPassword")
}

func TestValidateProject(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)

	err := ValidateProject(models.ProjectInput{
		Title:     "Portfolio",
		Status:    models.ProjectCompleted,
		StartDate: timex.Ptr(start),
		EndDate:   timex.Ptr(end),
		GithubURL: "nope",
	})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Errors, "endDate")
	assert.Contains(t, apiErr.Errors, "githubUrl")
	assert.NotContains(t, apiErr.Errors, "title")
}

func TestValidatePreferences_OnlyGivenFields(t *testing.T) {
	require.NoError(t, ValidatePreferences(models.PreferencesPatch{}))
	require.NoError(t, ValidatePreferences(models.PreferencesPatch{Theme: models.Ptr(models.ThemeDark)}))

	err := ValidatePreferences(models.PreferencesPatch{
		Theme:    models.Ptr(models.Theme("neon")),
		Timezone: models.Ptr("Nowhere/City"),
	})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Len(t, apiErr.Errors, 2)
}

func TestValidateRepository(t *testing.T) {
	require.NoError(t, ValidateRepository(models.RepositoryInput{Name: "r", URL: "https://github.com/a/r"}))
	require.Error(t, ValidateRepository(models.RepositoryInput{Name: "r", URL: "https://github.com/a/r", Stars: -1}))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("id", "42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	_, err = ParseID("id", "-1")
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = ParseID("id", "abc")
	require.ErrorIs(t, err, common.ErrValidation)
}
