package session

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/davidkairu/TaskManagerApp/models"
)

const cookieName = "taskmanager-session"

func init() {
	// Flash values ride the cookie gob-encoded.
	gob.Register(Flash{})
}

// Flash is a one-shot notice carried across a redirect.
type Flash struct {
	Kind    string
	Message string
}

// Manager wraps a signed-cookie session store. Sessions are stateless
// on the server: identity lives in a tamper-evident cookie, so there
// is nothing to look up or revoke server-side.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager builds a Manager signing cookies with secret.
func NewManager(secret []byte) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	return &Manager{store: store}
}

// Issue writes the identity into the session cookie.
func (m *Manager) Issue(w http.ResponseWriter, r *http.Request, identity models.Identity) error {
	session, _ := m.store.Get(r, cookieName)
	session.Values["user_id"] = identity.UserID
	session.Values["username"] = identity.Username
	return session.Save(r, w)
}

// Resolve returns the identity embedded in the request's session
// cookie, or nil when the cookie is missing, invalid, or tampered
// with. Callers treat nil as "not authenticated".
func (m *Manager) Resolve(r *http.Request) *models.Identity {
	session, err := m.store.Get(r, cookieName)
	if err != nil {
		return nil
	}
	userID, ok := session.Values["user_id"].(int64)
	if !ok {
		return nil
	}
	username, ok := session.Values["username"].(string)
	if !ok {
		return nil
	}
	return &models.Identity{UserID: userID, Username: username}
}

// Revoke clears the session values and expires the cookie.
func (m *Manager) Revoke(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, cookieName)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// AddFlash queues a one-shot notice for the next rendered page.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	session, _ := m.store.Get(r, cookieName)
	session.AddFlash(Flash{Kind: kind, Message: message})
	_ = session.Save(r, w)
}

// Flashes drains and returns any queued notices.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	session, err := m.store.Get(r, cookieName)
	if err != nil {
		return nil
	}
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save(r, w)

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
