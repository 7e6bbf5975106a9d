package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixtures(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(fx.TechStacks), 12)
	for _, r := range fx.Repositories {
		assert.Contains(t, r.URL, "https://github.com/", r.Name)
	}

	var names []string
	for _, ts := range fx.TechStacks {
		names = append(names, ts.Name)
	}
	assert.Contains(t, names, "C#")
}

func TestParseFixtures_EmptyPool(t *testing.T) {
	_, err := ParseFixtures([]byte("first_names: [A]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tech_stacks is empty")
}

func TestParseFixtures_BadYAML(t *testing.T) {
	_, err := ParseFixtures([]byte("first_names: [A\n"))
	require.Error(t, err)
}
