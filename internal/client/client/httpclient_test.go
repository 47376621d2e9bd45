package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/socialfeed/internal/client/models"
	"github.com/dmitrijs2005/socialfeed/internal/client/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler, opts ...Option) (*HTTPClient, storage.Stores) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	stores := storage.NewMemoryStores()
	opts = append([]Option{WithStores(stores)}, opts...)
	c, err := NewHTTPClient(srv.URL+"/api", opts...)
	require.NoError(t, err)
	return c, stores
}

func getKey(t *testing.T, s storage.Store, key string) string {
	t.Helper()
	v, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	return string(v)
}

func loginHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"message":"ok","user_id":3,"username":"alice","is_superuser":false,"avatar_url":null,"token":"t0k"}`)
	}
}

func TestLogin_RememberSelectsStore(t *testing.T) {
	ctx := context.Background()

	t.Run("remember", func(t *testing.T) {
		c, stores := newTestClient(t, loginHandler(t))
		res, err := c.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret"}, true)
		require.NoError(t, err)
		assert.Equal(t, int64(3), res.UserID)
		assert.Equal(t, "t0k", c.Token())
		assert.Equal(t, "t0k", getKey(t, stores.Durable, storage.KeyAuthToken))
		assert.Empty(t, getKey(t, stores.Tab, storage.KeyAuthToken))
	})

	t.Run("session only", func(t *testing.T) {
		c, stores := newTestClient(t, loginHandler(t))
		require.NoError(t, stores.Durable.Set(ctx, storage.KeyAuthToken, []byte("old")))

		_, err := c.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret"}, false)
		require.NoError(t, err)
		assert.Equal(t, "t0k", getKey(t, stores.Tab, storage.KeyAuthToken))
		assert.Empty(t, getKey(t, stores.Durable, storage.KeyAuthToken))
	})
}

func TestLogin_InvalidCredentials(t *testing.T) {
	c, stores := newTestClient(t, loginHandler(t))

	_, err := c.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "wrong"}, true)
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Token())
	assert.Empty(t, getKey(t, stores.Durable, storage.KeyAuthToken))
}

func TestRegister_TokenIsSessionScoped(t *testing.T) {
	c, stores := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register/", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"user_id":8,"username":"bob","token":"reg"}`)
	}))

	res, err := c.Register(context.Background(), models.RegisterRequest{Username: "bob", Password: "p", Email: "b@x.io"})
	require.NoError(t, err)
	assert.Equal(t, "bob", res.Username)
	assert.Equal(t, "reg", getKey(t, stores.Tab, storage.KeyAuthToken))
	assert.Empty(t, getKey(t, stores.Durable, storage.KeyAuthToken))
}

func TestRegister_FieldError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"password":["too short"],"username":["taken"]}`)
	}))

	_, err := c.Register(context.Background(), models.RegisterRequest{Username: "bob", Password: "p", Email: "b@x.io"})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "taken", apiErr.Message)
}

func TestRequest_HeadersAndCSRF(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token abc", r.Header.Get("Authorization"))
		switch r.Method {
		case http.MethodGet:
			assert.Empty(t, r.Header.Get("X-CSRFToken"))
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "c5rf", Path: "/"})
			_, _ = io.WriteString(w, `[]`)
		case http.MethodDelete:
			assert.Equal(t, "c5rf", r.Header.Get("X-CSRFToken"))
			assert.Equal(t, "yes", r.Header.Get("X-Extra"))
			w.WriteHeader(http.StatusNoContent)
		}
	})
	c, _ := newTestClient(t, mux)
	ctx := context.Background()
	c.SetToken(ctx, "abc", false)

	posts, err := c.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	err = c.Request(ctx, "/posts/1/", RequestOptions{
		Method:  http.MethodDelete,
		Headers: http.Header{"X-Extra": {"yes"}},
	}, &struct{}{})
	require.NoError(t, err)
}

func TestRequest_NoTokenNoAuthHeader(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, `[]`)
	}))
	_, err := c.ListPosts(context.Background())
	require.NoError(t, err)
}

func TestRequest_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url + "/api")
	require.NoError(t, err)
	_, err = c.ListPosts(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreatePost_Multipart(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "hello", r.FormValue("content"))

		f, hdr, err := r.FormFile("image_file")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "cat.png", hdr.Filename)
		assert.Equal(t, "PNG", string(b))

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":5,"content":"hello","author_id":3}`)
	}))

	p, err := c.CreatePost(context.Background(), "hello", &FormFile{Name: "cat.png", Content: strings.NewReader("PNG")})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
}

func TestResourcePaths(t *testing.T) {
	var seen []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.RequestURI())
		switch {
		case strings.HasSuffix(r.URL.Path, "/like/"):
			_, _ = io.WriteString(w, `{"liked":true}`)
		case strings.HasSuffix(r.URL.Path, "/comments/") && r.Method == http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":1,"text":"hi"}]`)
		case strings.HasSuffix(r.URL.Path, "/comments/"):
			_, _ = io.WriteString(w, `{"id":2,"text":"yo"}`)
		case strings.HasPrefix(r.URL.Path, "/api/profiles/"):
			_, _ = io.WriteString(w, `{"id":1,"user":3,"username":"alice"}`)
		case r.URL.Path == "/api/posts/":
			_, _ = io.WriteString(w, `[]`)
		default:
			_, _ = io.WriteString(w, `{"id":7}`)
		}
	}))
	ctx := context.Background()

	_, err := c.ListUserPosts(ctx, 3)
	require.NoError(t, err)
	_, err = c.GetPost(ctx, "7")
	require.NoError(t, err)
	_, err = c.UpdatePost(ctx, "7", models.UpdatePostRequest{Content: "x"})
	require.NoError(t, err)
	like, err := c.ToggleLike(ctx, "7")
	require.NoError(t, err)
	assert.True(t, like.Liked)
	comments, err := c.ListComments(ctx, "7")
	require.NoError(t, err)
	assert.Len(t, comments, 1)
	_, err = c.CreateComment(ctx, "7", models.CommentRequest{Text: "yo"})
	require.NoError(t, err)
	prof, err := c.GetProfileByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), prof.User)
	_, err = c.UpdateAvatar(ctx, FormFile{Name: "a.png", Content: strings.NewReader("x")})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /api/posts/?author=3",
		"GET /api/posts/7/",
		"PATCH /api/posts/7/",
		"POST /api/posts/7/like/",
		"GET /api/posts/7/comments/",
		"POST /api/posts/7/comments/",
		"GET /api/profiles/by-username/alice/",
		"PATCH /api/profiles/me/",
	}, seen)
}

func TestLogout_ClearsTokenOnFailure(t *testing.T) {
	c, stores := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	ctx := context.Background()
	c.SetToken(ctx, "abc", true)
	require.NoError(t, stores.Tab.Set(ctx, storage.KeyAuthToken, []byte("stale")))

	err := c.Logout(ctx)
	require.Error(t, err)
	assert.Equal(t, "Request failed with status: 500", err.Error())
	assert.Empty(t, c.Token())
	assert.Empty(t, getKey(t, stores.Tab, storage.KeyAuthToken))
	assert.Empty(t, getKey(t, stores.Durable, storage.KeyAuthToken))
}

func TestInitToken(t *testing.T) {
	ctx := context.Background()
	c, stores := newTestClient(t, http.NotFoundHandler())
	assert.Empty(t, c.InitToken(ctx))

	require.NoError(t, stores.Durable.Set(ctx, storage.KeyAuthToken, []byte("durable")))
	assert.Equal(t, "durable", c.InitToken(ctx))

	require.NoError(t, stores.Tab.Set(ctx, storage.KeyAuthToken, []byte("tab")))
	assert.Equal(t, "tab", c.InitToken(ctx))
	assert.Equal(t, "tab", c.Token())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}), WithMetrics(m))
	ctx := context.Background()

	_, _ = c.ListPosts(ctx)
	_, _ = c.ListPosts(ctx)
	err := c.DeletePost(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("DELETE", "404")))
}

func TestNewHTTPClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPClient("/api")
	assert.Error(t, err)
}

func TestNewHTTPClient_OptionsDoNotTouchCallerClient(t *testing.T) {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	shared := &http.Client{}

	orders := map[string][]Option{
		"jar and timeout first": {WithCookieJar(jar), WithTimeout(3 * time.Second), WithHTTPClient(shared)},
		"http client first":     {WithHTTPClient(shared), WithCookieJar(jar), WithTimeout(3 * time.Second)},
	}
	for name, opts := range orders {
		t.Run(name, func(t *testing.T) {
			c, err := NewHTTPClient("http://example.test/api", opts...)
			require.NoError(t, err)

			assert.Same(t, jar, c.http.Jar)
			assert.Equal(t, 3*time.Second, c.http.Timeout)
			assert.NotSame(t, shared, c.http)
			assert.Nil(t, shared.Jar)
			assert.Zero(t, shared.Timeout)
		})
	}
}

func TestNewHTTPClient_DefaultJar(t *testing.T) {
	shared := &http.Client{}
	c, err := NewHTTPClient("http://example.test/api", WithHTTPClient(shared), WithTimeout(0))
	require.NoError(t, err)

	assert.NotNil(t, c.http.Jar)
	assert.Zero(t, c.http.Timeout)
	assert.Nil(t, shared.Jar)
}
