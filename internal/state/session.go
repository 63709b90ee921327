package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/epeers/fundsight/internal/fundapi"
	"github.com/epeers/fundsight/internal/models"
	"github.com/epeers/fundsight/internal/storage"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// Restore loads a persisted session. Without a stored token the session
// is cleared, including any leftover user object.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.storage.Get(ctx, storage.KeyToken)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if token == "" {
		if err := s.storage.Delete(ctx, storage.KeyToken, storage.KeyUser); err != nil {
			log.Warnf("Failed to clear stale session data: %v", err)
		}
		s.update(func(st *State) { st.Session = loggedOut(st.Session) })
		return nil
	}

	user := s.loadUser(ctx)
	s.update(func(st *State) { st.Session = sessionRestored(st.Session, token, user) })
	log.Debugf("Restored session for %s", user.DisplayName())
	return nil
}

func (s *Store) loadUser(ctx context.Context) *models.User {
	raw, err := s.storage.Get(ctx, storage.KeyUser)
	if err != nil {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Warnf("Ignoring unreadable stored user: %v", err)
		return nil
	}
	return &user
}

// HasSession reports whether a token exists in memory or in durable
// storage. A token found only in storage is loaded into memory.
func (s *Store) HasSession(ctx context.Context) bool {
	if s.Token() != "" {
		return true
	}
	token, err := s.storage.Get(ctx, storage.KeyToken)
	if err != nil || token == "" {
		return false
	}
	user := s.loadUser(ctx)
	s.update(func(st *State) {
		if st.Session.Token == "" {
			st.Session = sessionRestored(st.Session, token, user)
		}
	})
	return true
}

// Login authenticates against the API. On success the token and user are
// kept in memory and persisted, and data fetched under any previous
// session is dropped. On failure the session error is set and the session
// itself is left as it was. Failures are not retried.
func (s *Store) Login(ctx context.Context, email, password string) error {
	creds := models.LoginRequest{Email: strings.TrimSpace(email), Password: password}

	s.update(func(st *State) { st.Session = loginPending(st.Session) })

	if err := s.validate.Struct(creds); err != nil {
		msg := credentialsMessage(err)
		s.update(func(st *State) { st.Session = loginRejected(st.Session, msg) })
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	}

	resp, err := s.client().Login(ctx, creds.Email, creds.Password)
	if err != nil {
		msg := fundapi.UserMessage(err)
		if msg == "" {
			msg = "Login failed"
		}
		s.update(func(st *State) { st.Session = loginRejected(st.Session, msg) })
		log.Infof("Login failed for %s: %v", creds.Email, err)
		return fmt.Errorf("login failed: %w", err)
	}

	if err := s.persistSession(ctx, resp); err != nil {
		// The in-memory session is still usable for this process
		log.Errorf("Failed to persist session: %v", err)
	}

	s.update(func(st *State) {
		st.Session = loginFulfilled(st.Session, resp)
		s.resetPortfolio(st)
	})
	log.Infof("Logged in as %s", resp.User.DisplayName())
	return nil
}

func (s *Store) persistSession(ctx context.Context, resp *models.LoginResponse) error {
	if err := s.storage.Set(ctx, storage.KeyToken, resp.Token); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if resp.User == nil {
		return s.storage.Delete(ctx, storage.KeyUser)
	}
	b, err := json.Marshal(resp.User)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, storage.KeyUser, string(b)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Logout invalidates the token upstream, then clears the local session,
// the fetched portfolio and durable storage whatever the upstream outcome
// was. A failed remote
// call is returned wrapped in ErrRemoteLogout; the local session is gone
// either way.
func (s *Store) Logout(ctx context.Context) error {
	var remoteErr error
	if s.Token() != "" {
		remoteErr = s.client().Logout(ctx)
	}

	storageErr := s.storage.Delete(ctx, storage.KeyToken, storage.KeyUser)
	s.update(func(st *State) {
		st.Session = loggedOut(st.Session)
		s.resetPortfolio(st)
	})

	if storageErr != nil {
		log.Errorf("Failed to clear stored session: %v", storageErr)
		return fmt.Errorf("%w: %v", ErrStorage, storageErr)
	}
	if remoteErr != nil {
		log.Warnf("Remote logout failed, local session cleared anyway: %v", remoteErr)
		return fmt.Errorf("%w: %w", ErrRemoteLogout, remoteErr)
	}
	return nil
}

// ClearError resets the login error message
func (s *Store) ClearError() {
	s.update(func(st *State) { st.Session = errorCleared(st.Session) })
}

func credentialsMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return `Must include "email" and "password".`
		}
	}
	return "Enter a valid email address."
}
