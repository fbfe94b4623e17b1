// Package services coordinates the API client with the client stores. Each
// operation raises the store's loading flag, calls the server, applies the
// result to the store on success and records the error message on failure.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cacutler/recipearchive/internal/client/client"
	"github.com/cacutler/recipearchive/internal/client/models"
	"github.com/cacutler/recipearchive/internal/client/repositories/metadata"
	"github.com/cacutler/recipearchive/internal/client/session"
	"github.com/cacutler/recipearchive/internal/client/store"
	"github.com/cacutler/recipearchive/internal/common"
	"github.com/cacutler/recipearchive/internal/dbx"
	"github.com/cacutler/recipearchive/internal/logging"
)

// AuthService defines account operations for the CLI.
//
// Contract:
//   - Signup: create an account; does not sign in.
//   - Login: authenticate, load the user and publish the session.
//   - Logout: forget the credential and reset the auth store. Never fails.
//   - Restore: resume a persisted session on start-up.
//   - UpdateProfile / DeleteAccount: act on the signed-in user.
//   - Session: claims of the current credential.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context)
	Restore(ctx context.Context) (bool, error)
	UpdateProfile(ctx context.Context, upd models.UserUpdate) (*models.User, error)
	DeleteAccount(ctx context.Context) error
	Session(ctx context.Context) (*session.Claims, error)
}

type authService struct {
	api    client.Client
	tokens client.TokenStore
	db     *sql.DB
	auth   *store.AuthStore
	logger logging.Logger
	now    func() time.Time
}

// NewAuthService wires the service. tokens must be the store the API client
// persists credentials to; db holds the session metadata.
func NewAuthService(api client.Client, tokens client.TokenStore, db *sql.DB, auth *store.AuthStore, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{
		api:    api,
		tokens: tokens,
		db:     db,
		auth:   auth,
		logger: logger,
		now:    time.Now,
	}
}

func (a *authService) metadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	var user *models.User
	err := track(a.auth, func() error {
		if err := validateInput(req); err != nil {
			return err
		}
		u, err := a.api.Signup(ctx, req)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	return user, err
}

// Login authenticates, fetches the user record and publishes both to the
// auth store. The user id is persisted so the session can be restored.
func (a *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user *models.User
	err := track(a.auth, func() error {
		if err := validateInput(models.LoginRequest{Username: username, Password: password}); err != nil {
			return err
		}

		resp, err := a.api.Login(ctx, username, password)
		if err != nil {
			return err
		}
		if resp == nil || resp.Token == "" {
			return errors.New("login returned no credential")
		}

		u, err := a.api.GetUser(ctx, resp.UserID)
		if err != nil {
			a.api.Logout(ctx)
			return fmt.Errorf("load user: %w", err)
		}
		if u == nil {
			u = &models.User{ID: resp.UserID, Username: resp.Username}
		}

		if err := a.saveSession(ctx, resp.UserID, resp.Username); err != nil {
			a.logger.Warn(ctx, "session will not survive restart", "error", err)
		}

		a.auth.SetUser(*u, resp.Token)
		user = u
		return nil
	})
	return user, err
}

func (a *authService) Logout(ctx context.Context) {
	a.api.Logout(ctx)
	if err := a.forgetSession(ctx); err != nil {
		a.logger.Warn(ctx, "clearing session metadata failed", "error", err)
	}
	a.auth.ClearAuth()
}

// Restore publishes a persisted session. It reports false without error when
// there is nothing to restore; a stale or rejected credential is discarded.
func (a *authService) Restore(ctx context.Context) (bool, error) {
	token, ok := a.tokens.Get(ctx)
	if !ok {
		return false, nil
	}

	if _, err := session.Validate(token, a.now()); err != nil {
		a.logger.Info(ctx, "discarding stored credential", "reason", err)
		a.discard(ctx)
		return false, nil
	}

	userID, ok, err := a.loadUserID(ctx)
	if err != nil || !ok {
		a.logger.Info(ctx, "discarding stored credential", "reason", "no user id")
		a.discard(ctx)
		return false, nil
	}

	err = track(a.auth, func() error {
		u, err := a.api.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return client.ErrNotFound
		}
		a.auth.SetUser(*u, token)
		return nil
	})
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, client.ErrNotFound) {
			a.discard(ctx)
		}
		return false, err
	}
	return true, nil
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.UserUpdate) (*models.User, error) {
	var user *models.User
	err := track(a.auth, func() error {
		current := a.auth.Get().User
		if current == nil {
			return ErrNotSignedIn
		}
		if upd.IsEmpty() {
			return fmt.Errorf("%w: nothing to update", ErrValidation)
		}
		if err := validateInput(upd); err != nil {
			return err
		}

		u, err := a.api.UpdateUser(ctx, current.ID, upd)
		if err != nil {
			return err
		}
		if u == nil {
			merged := upd.Apply(*current)
			u = &merged
		}
		a.auth.UpdateUser(*u)
		user = u
		return nil
	})
	return user, err
}

// DeleteAccount removes the signed-in user on the server and then signs out.
func (a *authService) DeleteAccount(ctx context.Context) error {
	err := track(a.auth, func() error {
		current := a.auth.Get().User
		if current == nil {
			return ErrNotSignedIn
		}
		return a.api.DeleteUser(ctx, current.ID)
	})
	if err != nil {
		return err
	}
	a.Logout(ctx)
	return nil
}

func (a *authService) Session(ctx context.Context) (*session.Claims, error) {
	token, ok := a.tokens.Get(ctx)
	if !ok {
		return nil, ErrNotSignedIn
	}
	return session.Parse(token)
}

// discard drops a credential that cannot be restored together with every
// piece of session metadata stored next to it.
func (a *authService) discard(ctx context.Context) {
	a.tokens.Remove(ctx)
	if err := a.metadataRepo().Clear(ctx); err != nil {
		a.logger.Warn(ctx, "clearing session metadata failed", "error", err)
	}
}

func (a *authService) saveSession(ctx context.Context, userID int64, username string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.UserIDStorageKey, []byte(strconv.FormatInt(userID, 10))); err != nil {
			return err
		}
		return repo.Set(ctx, common.UsernameStorageKey, []byte(username))
	})
}

func (a *authService) forgetSession(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.UserIDStorageKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.UsernameStorageKey)
	})
}

func (a *authService) loadUserID(ctx context.Context) (int64, bool, error) {
	raw, ok, err := a.metadataRepo().Get(ctx, common.UserIDStorageKey)
	if err != nil || !ok {
		return 0, false, err
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("stored user id: %w", err)
	}
	return id, true, nil
}
