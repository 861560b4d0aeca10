package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidkairu/TaskManagerApp/models"
)

func issueCookies(t *testing.T, m *Manager, identity models.Identity) []*http.Cookie {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/login", nil)
	require.NoError(t, m.Issue(w, r, identity))
	return w.Result().Cookies()
}

func TestManager_IssueAndResolve(t *testing.T) {
	m := NewManager([]byte("secret"))
	identity := models.Identity{UserID: 42, Username: "alice"}

	cookies := issueCookies(t, m, identity)
	require.NotEmpty(t, cookies)

	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}

	resolved := m.Resolve(r)
	require.NotNil(t, resolved)
	assert.Equal(t, identity, *resolved)
}

func TestManager_ResolveWithoutCookie(t *testing.T) {
	m := NewManager([]byte("secret"))
	r := httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, m.Resolve(r))
}

func TestManager_ResolveTamperedCookie(t *testing.T) {
	m := NewManager([]byte("secret"))
	cookies := issueCookies(t, m, models.Identity{UserID: 1, Username: "alice"})
	require.NotEmpty(t, cookies)

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: cookies[0].Value + "x"})
	assert.Nil(t, m.Resolve(r))
}

func TestManager_ResolveForeignSecret(t *testing.T) {
	// A cookie signed by a different process secret must not resolve.
	issuer := NewManager([]byte("secret-a"))
	verifier := NewManager([]byte("secret-b"))

	cookies := issueCookies(t, issuer, models.Identity{UserID: 1, Username: "alice"})
	require.NotEmpty(t, cookies)

	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	assert.Nil(t, verifier.Resolve(r))
}

func TestManager_Revoke(t *testing.T) {
	m := NewManager([]byte("secret"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/logout", nil)
	require.NoError(t, m.Revoke(w, r))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Negative(t, cookies[0].MaxAge)
}
