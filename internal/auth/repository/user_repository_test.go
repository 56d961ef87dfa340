package repository

import (
	"context"
	"testing"

	authdomain "edufeed-backend/internal/auth/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the auth schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.MutedInstructor{},
	))
	return db
}

func createUser(t *testing.T, repo UserRepository, email, role, token string) *authdomain.User {
	t.Helper()

	user := &authdomain.User{
		Email:       email,
		Name:        email,
		Role:        role,
		DeviceToken: token,
	}
	require.NoError(t, repo.Create(user))
	return user
}

func TestSaveDeviceTokenLastWriteWins(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := createUser(t, repo, "a@example.com", authdomain.RoleStandard, "")

	require.NoError(t, repo.SaveDeviceToken(user.ID, "token-one"))
	require.NoError(t, repo.SaveDeviceToken(user.ID, "token-two"))

	got, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "token-two", got.DeviceToken)

	require.NoError(t, repo.ClearDeviceToken(user.ID))
	got, err = repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.DeviceToken)
}

func TestRecipientTokensExcludesAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	author := createUser(t, repo, "teacher@example.com", authdomain.RoleInstructor, "author-token")
	createUser(t, repo, "s1@example.com", authdomain.RoleStandard, "token-1")
	createUser(t, repo, "s2@example.com", authdomain.RoleStandard, "token-2")

	tokens, err := repo.RecipientTokens(context.Background(), author.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"token-1", "token-2"}, tokens)
}

func TestRecipientTokensExcludesEmptyTokens(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	author := createUser(t, repo, "teacher@example.com", authdomain.RoleInstructor, "")
	createUser(t, repo, "s1@example.com", authdomain.RoleStandard, "token-1")
	createUser(t, repo, "s2@example.com", authdomain.RoleStandard, "")

	tokens, err := repo.RecipientTokens(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"token-1"}, tokens)
}

func TestRecipientTokensExcludesMutedUsers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	muteRepo := NewMuteRepository(db)

	author := createUser(t, repo, "teacher@example.com", authdomain.RoleInstructor, "")
	other := createUser(t, repo, "other@example.com", authdomain.RoleInstructor, "")
	muter := createUser(t, repo, "muter@example.com", authdomain.RoleStandard, "muter-token")
	createUser(t, repo, "fan@example.com", authdomain.RoleStandard, "fan-token")

	require.NoError(t, muteRepo.Mute(muter.ID, author.ID))

	tokens, err := repo.RecipientTokens(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fan-token"}, tokens, "muted user must not be selected")

	// The mute only applies to the muted instructor, not to others
	tokens, err = repo.RecipientTokens(context.Background(), other.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"muter-token", "fan-token"}, tokens)
}

func TestRecipientTokensEmptySet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	muteRepo := NewMuteRepository(db)

	author := createUser(t, repo, "teacher@example.com", authdomain.RoleInstructor, "")
	only := createUser(t, repo, "only@example.com", authdomain.RoleStandard, "only-token")
	require.NoError(t, muteRepo.Mute(only.ID, author.ID))

	tokens, err := repo.RecipientTokens(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestPurgeDeviceTokens(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	u1 := createUser(t, repo, "u1@example.com", authdomain.RoleStandard, "bad-token")
	u2 := createUser(t, repo, "u2@example.com", authdomain.RoleStandard, "good-token")

	purged, err := repo.PurgeDeviceTokens(context.Background(), []string{"bad-token"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	got, err := repo.FindByID(u1.ID)
	require.NoError(t, err)
	assert.Empty(t, got.DeviceToken, "rejected token must be cleared")

	got, err = repo.FindByID(u2.ID)
	require.NoError(t, err)
	assert.Equal(t, "good-token", got.DeviceToken, "healthy token must survive")

	// Purged tokens disappear from subsequent recipient selection
	author := createUser(t, repo, "teacher@example.com", authdomain.RoleInstructor, "")
	tokens, err := repo.RecipientTokens(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"good-token"}, tokens)
}

func TestPurgeDeviceTokensIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	createUser(t, repo, "u1@example.com", authdomain.RoleStandard, "bad-token")

	purged, err := repo.PurgeDeviceTokens(context.Background(), []string{"bad-token"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	// Second reconciliation of the same list changes nothing
	purged, err = repo.PurgeDeviceTokens(context.Background(), []string{"bad-token"})
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestPurgeDeviceTokensEmptyList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	purged, err := repo.PurgeDeviceTokens(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestPurgeDeviceTokensUnknownToken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	// A token re-registered away before reconciliation is simply not there
	purged, err := repo.PurgeDeviceTokens(context.Background(), []string{"vanished-token"})
	require.NoError(t, err)
	assert.Zero(t, purged)
}
