package session

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/devfolio/internal/client/storage"
	"github.com/dmitrijs2005/devfolio/internal/common"
	"github.com/dmitrijs2005/devfolio/internal/logging"
	"github.com/dmitrijs2005/devfolio/internal/timex"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db, logging.NewDiscardLogger()), db
}

func persistedKeys(t *testing.T, db *sql.DB) map[string][]byte {
	t.Helper()
	all, err := metadata.NewTable(db).Snapshot(context.Background())
	require.NoError(t, err)
	return all
}

func sampleUser() models.User {
	return models.User{
		ID:        "u-1",
		Username:  "ali",
		Email:     "ali@asafarim.com",
		FirstName: "Ali",
		LastName:  "Safari",
		Bio:       "builder",
		Role:      models.RoleAdmin,
		IsActive:  true,
		CreatedAt: timex.Of(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
	}
}

func TestStore_SaveThenLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	u := sampleUser()

	require.NoError(t, s.Save(ctx, models.Session{User: &u, Token: "tok", RefreshToken: "ref"}))
	require.True(t, s.IsAuthenticated())
	require.Equal(t, "tok", s.AccessToken())

	fresh := NewStore(db, logging.NewDiscardLogger())
	require.NoError(t, fresh.Load(ctx))

	got := fresh.Current()
	require.NotNil(t, got)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "ref", got.RefreshToken)
	if diff := cmp.Diff(u, *got.User); diff != "" {
		t.Fatalf("user mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Save_OtherUserDropsPreferences(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	u := sampleUser()

	require.NoError(t, s.Save(ctx, models.Session{User: &u, Token: "tok"}))
	require.NoError(t, s.SavePreferences(ctx, models.DefaultPreferences()))

	// same account keeps them
	require.NoError(t, s.Save(ctx, models.Session{User: &u, Token: "tok-2"}))
	assert.NotNil(t, s.Preferences())
	assert.Contains(t, persistedKeys(t, db), common.StorageKeyPreferences)

	other := models.User{ID: "u-2", Username: "mia", Role: models.RoleUser}
	require.NoError(t, s.Save(ctx, models.Session{User: &other, Token: "tok-3"}))
	assert.Nil(t, s.Preferences())

	keys := persistedKeys(t, db)
	assert.NotContains(t, keys, common.StorageKeyPreferences)
	assert.Contains(t, keys, common.StorageKeyUser)
	assert.Contains(t, keys, common.StorageKeyToken)
}

func TestStore_Save_ExpiryFromJWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	s, _ := setupStore(t)
	u := sampleUser()
	require.NoError(t, s.Save(context.Background(), models.Session{User: &u, Token: signed}))

	assert.True(t, s.Current().ExpiresAt.Equal(exp))
}

func TestTokenExpiry_OpaqueToken(t *testing.T) {
	assert.True(t, TokenExpiry("not-a-jwt").IsZero())
	assert.True(t, TokenExpiry("").IsZero())
}

func TestStore_Clear_RemovesAllKeys(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	u := sampleUser()

	require.NoError(t, s.Save(ctx, models.Session{User: &u, Token: "tok"}))
	require.NoError(t, s.SavePreferences(ctx, models.DefaultPreferences()))
	require.Len(t, persistedKeys(t, db), 3)

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, persistedKeys(t, db))
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.Current())
	assert.Nil(t, s.Preferences())

	// idempotent
	require.NoError(t, s.Clear(ctx))
}

func TestStore_Clear_KeepsUnrelatedKeys(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	require.NoError(t, metadata.NewTable(db).Put(ctx, map[string][]byte{"other": []byte("x")}))

	require.NoError(t, s.Clear(ctx))
	assert.Contains(t, persistedKeys(t, db), "other")
}

func TestStore_UpdateUser_IsLocalMerge(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	u := sampleUser()
	require.NoError(t, s.Save(ctx, models.Session{User: &u, Token: "tok"}))

	got, err := s.UpdateUser(ctx, models.UserPatch{
		Bio:      models.Ptr("new bio"),
		Location: models.Ptr("Amsterdam"),
	})
	require.NoError(t, err)

	want := u
	want.Bio = "new bio"
	want.Location = "Amsterdam"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged user mismatch (-want +got):\n%s", diff)
	}

	fresh := NewStore(db, logging.NewDiscardLogger())
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, want, *fresh.User())
}

func TestStore_UpdateUser_NoUser(t *testing.T) {
	s, _ := setupStore(t)
	_, err := s.UpdateUser(context.Background(), models.UserPatch{Bio: models.Ptr("x")})
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestStore_Load_CorruptKeyTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	require.NoError(t, metadata.NewTable(db).Put(ctx, map[string][]byte{
		common.StorageKeyToken: []byte(`{"token":"tok"}`),
		common.StorageKeyUser:  []byte(`{broken`),
	}))

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, "tok", s.AccessToken())
	assert.Nil(t, s.User())
	assert.False(t, s.IsAuthenticated())
}

func TestStore_Invalidate_ClearsPersistedState(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	u := sampleUser()
	require.NoError(t, s.Save(ctx, models.Session{User: &u, Token: "tok"}))

	s.Invalidate(ctx)
	assert.Empty(t, persistedKeys(t, db))
	assert.Empty(t, s.AccessToken())
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)
	u := sampleUser()
	require.NoError(t, s.Save(ctx, models.Session{User: &u, Token: "tok"}))

	got := s.User()
	got.Username = "mutated"
	u.Username = "mutated too"
	assert.Equal(t, "ali", s.User().Username)
}

func TestStore_ConcurrentInvalidateAndRead(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)
	u := sampleUser()
	require.NoError(t, s.Save(ctx, models.Session{User: &u, Token: "tok"}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Invalidate(ctx)
		}()
		go func() {
			defer wg.Done()
			_ = s.AccessToken()
			_ = s.Current()
		}()
	}
	wg.Wait()
	assert.False(t, s.IsAuthenticated())
}
