package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "backoffice-console/internal/common/errors"
	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/models"
)

func testUser() *models.User {
	return &models.User{ID: "u-1", Email: "admin@example.com", FirstName: "Ada", LastName: "Admin"}
}

func TestService_SignInAndProfile(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := New(store, logger.NewTestLogger(t))

	assert.False(t, svc.IsAuthenticated())

	require.NoError(t, svc.SignInSuccess(ctx, models.Tokens{AccessToken: "a1", RefreshToken: "r1"}))
	assert.False(t, svc.IsAuthenticated(), "token alone is not enough")

	svc.FetchUserStart()
	assert.True(t, svc.User().Loading)

	require.NoError(t, svc.FetchUserSuccess(ctx, testUser()))
	assert.True(t, svc.IsAuthenticated())
	assert.False(t, svc.User().Loading)

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "a1", snap.Auth.AccessToken)
	assert.Equal(t, "u-1", snap.User.ID)
}

func TestService_FetchUserFailureKeepsProfile(t *testing.T) {
	ctx := context.Background()
	svc := New(NewMemoryStore(), logger.NewNoOpLogger())
	require.NoError(t, svc.FetchUserSuccess(ctx, testUser()))

	svc.FetchUserStart()
	svc.FetchUserFailure(apperrors.NewRequestFailedError(500, "profile unavailable"))

	state := svc.User()
	assert.False(t, state.Loading)
	assert.Equal(t, "profile unavailable", state.Error)
	assert.NotNil(t, state.CurrentUser)
}

func TestService_ResetClearsStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := New(store, logger.NewNoOpLogger())

	require.NoError(t, svc.SignInSuccess(ctx, models.Tokens{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, svc.FetchUserSuccess(ctx, testUser()))

	require.NoError(t, svc.ResetAuth(ctx))
	assert.False(t, svc.IsAuthenticated())
	require.NoError(t, svc.ResetUser(ctx))

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap, "empty session is cleared, not saved")
}

func TestService_RehydrateFromFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions", "abc.json")

	first := New(NewFileStore(path), logger.NewNoOpLogger())
	require.NoError(t, first.SignInSuccess(ctx, models.Tokens{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, first.FetchUserSuccess(ctx, testUser()))

	// simulates a reload: new service, same storage
	second := New(NewFileStore(path), logger.NewNoOpLogger())
	assert.False(t, second.IsAuthenticated())
	require.NoError(t, second.Rehydrate(ctx))
	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, models.Tokens{AccessToken: "a", RefreshToken: "r"}, second.Tokens())
	assert.Equal(t, "Ada Admin", second.CurrentUser().FullName())
}

func TestService_RehydrateEmpty(t *testing.T) {
	svc := New(NewFileStore(filepath.Join(t.TempDir(), "missing.json")), logger.NewNoOpLogger())
	require.NoError(t, svc.Rehydrate(context.Background()))
	assert.True(t, svc.Tokens().IsZero())
}

type failingStore struct{ err error }

func (f failingStore) Load(context.Context) (*models.SessionSnapshot, error) { return nil, f.err }
func (f failingStore) Save(context.Context, models.SessionSnapshot) error    { return f.err }
func (f failingStore) Clear(context.Context) error                          { return f.err }

func TestService_StoreErrors(t *testing.T) {
	ctx := context.Background()
	svc := New(failingStore{err: errors.New("disk full")}, logger.NewNoOpLogger())

	err := svc.SignInSuccess(ctx, models.Tokens{AccessToken: "a"})
	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeSessionStoreFailed, stdErr.Code)
	assert.Equal(t, "a", svc.Tokens().AccessToken, "memory state is updated even when persisting fails")

	require.Error(t, svc.Rehydrate(ctx))
	assert.True(t, svc.Tokens().IsZero())
}

func TestService_Claims(t *testing.T) {
	ctx := context.Background()
	svc := New(NewMemoryStore(), logger.NewNoOpLogger())

	_, err := svc.Claims()
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u-1",
		"email": "admin@example.com",
		"role":  "ADMIN",
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	require.NoError(t, svc.SignInSuccess(ctx, models.Tokens{AccessToken: signed}))
	claims, err := svc.Claims()
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.True(t, claims.ExpiresAt.Equal(exp))
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(exp.Add(time.Second)))
}

func TestParseClaims_Malformed(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	assert.Error(t, err)
}
