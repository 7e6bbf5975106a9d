package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return home
}

func TestDataDir_CreatedOnceWithOwnerAccess(t *testing.T) {
	home := fakeHome(t)

	first, err := DataDir(".devfolio")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".devfolio"), first)

	second, err := DataDir(".devfolio")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	fi, err := os.Stat(first)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o700), fi.Mode().Perm())
	}
}

func TestDataDir_FileInTheWay(t *testing.T) {
	home := fakeHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".devfolio"), []byte("x"), 0o600))

	_, err := DataDir(".devfolio")
	assert.ErrorContains(t, err, "create data dir")
}

func TestResolveDataFile(t *testing.T) {
	home := fakeHome(t)
	abs := filepath.Join(home, "elsewhere.db")
	rel := filepath.Join("data", "devfolio.db")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare name goes to data dir", in: "devfolio.db", want: filepath.Join(home, ".devfolio", "devfolio.db")},
		{name: "absolute path", in: abs, want: abs},
		{name: "relative path with dir", in: rel, want: rel},
		{name: "in-memory database", in: ":memory:", want: ":memory:"},
		{name: "sqlite uri", in: "file:dev?mode=memory", want: "file:dev?mode=memory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDataFile(".devfolio", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataFile_DirNotCreatedForExplicitPaths(t *testing.T) {
	home := fakeHome(t)

	_, err := ResolveDataFile(".devfolio", ":memory:")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, ".devfolio"))
	assert.True(t, os.IsNotExist(err))
}
