package session

import (
	"errors"
	"fmt"

	"github.com/yigit/studyshare/internal/pkg/apperrors"
	"github.com/yigit/studyshare/internal/pkg/auth"
)

// Manager issues and resolves signed session cookie values backed by Store.
type Manager struct {
	store  *Store
	tokens *auth.TokenService
}

// NewManager creates a new Manager
func NewManager(store *Store, tokens *auth.TokenService) *Manager {
	return &Manager{
		store:  store,
		tokens: tokens,
	}
}

// Login opens a session for userID and returns the cookie value.
func (m *Manager) Login(userID int64) (string, *Session, error) {
	sess := m.store.Create(userID)
	token, err := m.tokens.GenerateToken(sess.ID, userID, sess.CreatedAt)
	if err != nil {
		m.store.Destroy(sess.ID)
		return "", nil, fmt.Errorf("failed to issue session cookie: %w", err)
	}
	return token, sess, nil
}

// Resolve maps a cookie value to its live session.
func (m *Manager) Resolve(token string) (*Session, error) {
	claims, err := m.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.ErrSessionInvalid
	}

	sess, ok := m.store.Get(claims.SessionID())
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if sess.UserID != claims.UserID {
		return nil, apperrors.ErrSessionInvalid
	}
	return sess, nil
}

// Logout destroys the session referenced by the cookie value, if any.
func (m *Manager) Logout(token string) {
	claims, err := m.tokens.ValidateToken(token)
	if err != nil {
		return
	}
	m.store.Destroy(claims.SessionID())
}

// Store exposes the underlying session store.
func (m *Manager) Store() *Store {
	return m.store
}
