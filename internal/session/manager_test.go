package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/travelia/travelia-backend/internal/model"
	"github.com/travelia/travelia-backend/internal/session"
)

// fakeAuthAPI implements session.AuthAPI with overridable functions.
type fakeAuthAPI struct {
	loginFn  func(ctx context.Context, email, password string) (*model.LoginResponse, error)
	verifyFn func(ctx context.Context) (*model.Admin, error)
	logoutFn func(ctx context.Context) error
	token    string
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthAPI) Verify(ctx context.Context) (*model.Admin, error) {
	return f.verifyFn(ctx)
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	if f.logoutFn != nil {
		return f.logoutFn(ctx)
	}
	return nil
}

func (f *fakeAuthAPI) SetToken(token string) { f.token = token }

func newStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "credentials.json"))
}

// TestStore_roundTrip verifies credentials persist and clear.
func TestStore_roundTrip(t *testing.T) {
	store := newStore(t)

	_, err := store.Load()
	require.ErrorIs(t, err, session.ErrNoCredentials)

	saved := &session.Credentials{
		Token: "tok-123",
		Admin: model.Admin{ID: 1, Username: "admin"},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-123", loaded.Token)
	require.Equal(t, "admin", loaded.Admin.Username)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	require.ErrorIs(t, err, session.ErrNoCredentials)
}

// TestRestore_noCredentials verifies a cold start stays unauthenticated.
func TestRestore_noCredentials(t *testing.T) {
	api := &fakeAuthAPI{
		verifyFn: func(ctx context.Context) (*model.Admin, error) {
			t.Fatal("verify must not be called without stored credentials")
			return nil, nil
		},
	}
	mgr := session.NewManager(api, newStore(t), zerolog.Nop())

	require.False(t, mgr.Restore(context.Background()))
	require.Equal(t, session.StateUnauthenticated, mgr.State())
	require.Nil(t, mgr.Admin())
}

// TestRestore_validCredentials verifies stored credentials verify and
// the session becomes active with the server's fresh profile.
func TestRestore_validCredentials(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(&session.Credentials{
		Token: "tok-123",
		Admin: model.Admin{ID: 1, Username: "stale-name"},
	}))

	api := &fakeAuthAPI{
		verifyFn: func(ctx context.Context) (*model.Admin, error) {
			return &model.Admin{ID: 1, Username: "fresh-name", Role: "admin"}, nil
		},
	}
	mgr := session.NewManager(api, store, zerolog.Nop())

	require.True(t, mgr.Restore(context.Background()))
	require.Equal(t, session.StateVerified, mgr.State())
	require.Equal(t, "fresh-name", mgr.Admin().Username)
	require.Equal(t, "tok-123", api.token)
}

// TestRestore_revokedToken verifies rejected credentials are cleared so
// a later start does not retry them.
func TestRestore_revokedToken(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(&session.Credentials{
		Token: "tok-revoked",
		Admin: model.Admin{ID: 1},
	}))

	api := &fakeAuthAPI{
		verifyFn: func(ctx context.Context) (*model.Admin, error) {
			return nil, errors.New("token has been revoked")
		},
	}
	mgr := session.NewManager(api, store, zerolog.Nop())

	require.False(t, mgr.Restore(context.Background()))
	require.Equal(t, session.StateUnauthenticated, mgr.State())
	require.Empty(t, api.token)

	_, err := store.Load()
	require.ErrorIs(t, err, session.ErrNoCredentials)
}

// TestLogin verifies a successful login persists credentials.
func TestLogin(t *testing.T) {
	store := newStore(t)
	api := &fakeAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (*model.LoginResponse, error) {
			require.Equal(t, "admin@travelia.test", email)
			return &model.LoginResponse{
				Token: "tok-new",
				Admin: model.Admin{ID: 7, Username: "admin"},
			}, nil
		},
	}
	mgr := session.NewManager(api, store, zerolog.Nop())

	require.NoError(t, mgr.Login(context.Background(), "admin@travelia.test", "secret"))
	require.Equal(t, session.StateVerified, mgr.State())

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-new", loaded.Token)
}

// TestLogout_clearsEvenWhenServerFails verifies local state never
// outlives a logout, even if the revoke call errors.
func TestLogout_clearsEvenWhenServerFails(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(&session.Credentials{Token: "tok", Admin: model.Admin{ID: 1}}))

	api := &fakeAuthAPI{
		logoutFn: func(ctx context.Context) error { return errors.New("network down") },
	}
	mgr := session.NewManager(api, store, zerolog.Nop())

	mgr.Logout(context.Background())
	require.Equal(t, session.StateUnauthenticated, mgr.State())
	require.Nil(t, mgr.Admin())

	_, err := store.Load()
	require.ErrorIs(t, err, session.ErrNoCredentials)
}
