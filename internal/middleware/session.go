package middleware

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"

	"lesson-planner/internal/config"
	"lesson-planner/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
)

// SessionStore keeps the logged-in user in a signed and encrypted cookie.
type SessionStore struct {
	store *sessions.CookieStore
	name  string
}

func NewSessionStore(cfg config.SessionConfig) *SessionStore {
	blockKey := sha256.Sum256([]byte(cfg.Secret))
	store := sessions.NewCookieStore([]byte(cfg.Secret), blockKey[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionStore{store: store, name: cfg.Name}
}

// Login records the user in the session cookie.
func (s *SessionStore) Login(c *gin.Context, userID uuid.UUID, username string) error {
	session, _ := s.store.Get(c.Request, s.name)
	session.Values[sessionUserIDKey] = userID.String()
	session.Values[sessionUsernameKey] = username

	if err := session.Save(c.Request, c.Writer); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Logout expires the session cookie.
func (s *SessionStore) Logout(c *gin.Context) error {
	session, _ := s.store.Get(c.Request, s.name)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1

	if err := session.Save(c.Request, c.Writer); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) identity(c *gin.Context) (*Identity, bool) {
	session, err := s.store.Get(c.Request, s.name)
	if err != nil {
		var cookieErr securecookie.Error
		if errors.As(err, &cookieErr) && cookieErr.IsDecode() {
			logger.Debug("Rejected session cookie",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
		}
		return nil, false
	}

	rawID, ok := session.Values[sessionUserIDKey].(string)
	if !ok {
		return nil, false
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, false
	}
	username, _ := session.Values[sessionUsernameKey].(string)

	return &Identity{UserID: userID, Username: username, Method: AuthMethodSession}, true
}
