package sessions

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	sessionCookieName = "rainy-admin-session"

	staffUserSessionKey = "staffUser"
	loginAtSessionKey   = "loginAt"
)

type SessionStore interface {
	GetStaffUser(r *http.Request) string
	SetStaffUser(w http.ResponseWriter, r *http.Request, username string) error
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store  *sessions.CookieStore
	logger *zap.Logger
}

func NewCookieSessionStore(secure bool, logger *zap.Logger, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/admin",
		MaxAge:   int(12 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store, logger: logger}
}

func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		// A stale or tampered cookie still yields a fresh session.
		c.logger.Debug("getSession: invalid session cookie", zap.Error(err))
	}
	return session
}

func (c *CookieSessionStore) GetStaffUser(r *http.Request) string {
	session := c.getSession(r)
	if session == nil {
		return ""
	}
	username, ok := session.Values[staffUserSessionKey].(string)
	if !ok {
		return ""
	}
	return username
}

func (c *CookieSessionStore) SetStaffUser(w http.ResponseWriter, r *http.Request, username string) error {
	session := c.getSession(r)
	session.Values[staffUserSessionKey] = username
	session.Values[loginAtSessionKey] = time.Now().Unix()
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
