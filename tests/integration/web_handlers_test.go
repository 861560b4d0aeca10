package integration

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidkairu/TaskManagerApp/internal/session"
	"github.com/davidkairu/TaskManagerApp/internal/web"
	"github.com/davidkairu/TaskManagerApp/middleware"
	"github.com/davidkairu/TaskManagerApp/tests/testutils"
)

// stubRenderer stands in for the external template renderer: it
// records the requested view and data and echoes the view name.
type stubRenderer struct {
	mu       sync.Mutex
	lastView string
	lastData interface{}
}

func (r *stubRenderer) Render(w io.Writer, view string, data interface{}) error {
	r.mu.Lock()
	r.lastView = view
	r.lastData = data
	r.mu.Unlock()
	_, err := io.WriteString(w, view)
	return err
}

func (r *stubRenderer) LastView() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastView
}

func setupWebServer(t *testing.T) (*testutils.TestServer, *testEnv, *stubRenderer) {
	env := setupEnv(t)
	renderer := &stubRenderer{}
	sessions := session.NewManager([]byte("test-session-secret"))
	handler := web.NewWebHandler(env.authService, env.taskService, sessions, renderer)
	router := handler.SetupRoutes(middleware.NewMiddleware(sessions))
	return testutils.NewTestServer(t, router), env, renderer
}

func loginAs(t *testing.T, ts *testutils.TestServer, username, password string) {
	resp := ts.PostForm("/register", url.Values{
		"username": {username},
		"password": {password},
	})
	testutils.AssertRedirect(t, resp, "/login")

	resp = ts.PostForm("/login", url.Values{
		"username": {username},
		"password": {password},
	})
	testutils.AssertRedirect(t, resp, "/")
}

func TestWebHandlers_Authentication(t *testing.T) {
	ts, _, renderer := setupWebServer(t)

	t.Run("UnauthenticatedRedirectsToLogin", func(t *testing.T) {
		for _, path := range []string{"/", "/edit/1", "/complete/1", "/delete/1"} {
			resp := ts.GET(path)
			testutils.AssertRedirect(t, resp, "/login")
		}
	})

	t.Run("BadCredentialsStayOnLogin", func(t *testing.T) {
		resp := ts.PostForm("/login", url.Values{
			"username": {"ghost"},
			"password": {"boo"},
		})
		testutils.AssertRedirect(t, resp, "/login")
	})

	t.Run("RegisterLoginAndBrowse", func(t *testing.T) {
		loginAs(t, ts, "alice", "pw")

		resp := ts.GET("/")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "index.html", renderer.LastView())
	})

	t.Run("LogoutClearsSession", func(t *testing.T) {
		resp := ts.GET("/logout")
		testutils.AssertRedirect(t, resp, "/login")

		resp = ts.GET("/")
		testutils.AssertRedirect(t, resp, "/login")
	})

	t.Run("TamperedCookieIsRejected", func(t *testing.T) {
		req, err := http.NewRequest("GET", ts.URL+"/", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "taskmanager-session", Value: "tampered-garbage"})

		client := &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
		resp, err := client.Do(req)
		require.NoError(t, err)
		testutils.AssertRedirect(t, resp, "/login")
	})
}

func TestWebHandlers_TaskRoutes(t *testing.T) {
	ts, env, renderer := setupWebServer(t)
	ctx := context.Background()

	loginAs(t, ts, "alice", "pw")
	identity, err := env.authService.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	t.Run("AddTask", func(t *testing.T) {
		resp := ts.PostForm("/", url.Values{
			"task":     {"wash dishes"},
			"priority": {"2"},
		})
		testutils.AssertRedirect(t, resp, "/")

		tasks, err := env.taskService.ListForOwner(ctx, *identity)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "wash dishes", tasks[0].Name)
		assert.False(t, tasks[0].Completed)
	})

	t.Run("InvalidFormRedirectsWithoutInsert", func(t *testing.T) {
		resp := ts.PostForm("/", url.Values{
			"task":     {""},
			"priority": {"not-a-number"},
		})
		testutils.AssertRedirect(t, resp, "/")

		tasks, err := env.taskService.ListForOwner(ctx, *identity)
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})

	t.Run("EditTask", func(t *testing.T) {
		tasks, err := env.taskService.ListForOwner(ctx, *identity)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		id := tasks[0].ID

		resp := ts.GET("/edit/" + formatID(id))
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "edit.html", renderer.LastView())

		resp = ts.PostForm("/edit/"+formatID(id), url.Values{
			"name":     {"dry dishes"},
			"priority": {"1"},
		})
		testutils.AssertRedirect(t, resp, "/")

		got, err := env.taskService.Get(ctx, *identity, id)
		require.NoError(t, err)
		assert.Equal(t, "dry dishes", got.Name)
		assert.Equal(t, 1, got.Priority)
	})

	t.Run("EditSomeoneElsesTaskGoesHome", func(t *testing.T) {
		bob := testutils.CreateTestUser(t, env.userRepo, "bob", "pw")
		foreign := testutils.CreateTestTask(t, env.taskRepo, bob, "bobs task", 1)

		resp := ts.GET("/edit/" + formatID(foreign))
		testutils.AssertRedirect(t, resp, "/")
	})

	t.Run("CompleteAndDelete", func(t *testing.T) {
		tasks, err := env.taskService.ListForOwner(ctx, *identity)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		id := tasks[0].ID

		resp := ts.GET("/complete/" + formatID(id))
		testutils.AssertRedirect(t, resp, "/")

		got, err := env.taskService.Get(ctx, *identity, id)
		require.NoError(t, err)
		assert.True(t, got.Completed)

		resp = ts.GET("/delete/" + formatID(id))
		testutils.AssertRedirect(t, resp, "/")

		remaining, err := env.taskService.ListForOwner(ctx, *identity)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}
