package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/cacutler/recipearchive/internal/client/models"
	"github.com/cacutler/recipearchive/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captured is what the fake backend saw for one request.
type captured struct {
	Method        string
	Path          string
	ContentType   string
	Authorization string
	RequestID     string
	Body          string
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []captured
	handler  http.HandlerFunc
}

func (f *fakeBackend) last(t *testing.T) captured {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newBackend(t *testing.T, h http.HandlerFunc) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{handler: h}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.requests = append(fb.requests, captured{
			Method:        r.Method,
			Path:          r.URL.Path,
			ContentType:   r.Header.Get("Content-Type"),
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          string(raw),
		})
		fb.mu.Unlock()
		fb.handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return fb, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func routes(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method+" "+r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}
}

func loginOK(token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.LoginResponse{Token: token, Username: "alice", UserID: 7})
	}
}

func TestLogin_PersistsTokenAndSendsCredentials(t *testing.T) {
	fb, srv := newBackend(t, routes(map[string]http.HandlerFunc{
		"POST /auth/login": loginOK("tok-1"),
	}))
	tokens := NewMemoryTokenStore()
	c := NewHTTPClient(srv.URL, tokens)

	resp, err := c.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "tok-1", resp.Token)
	assert.Equal(t, int64(7), resp.UserID)

	got, ok := tokens.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, "tok-1", got)

	req := fb.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Empty(t, req.Authorization, "login is not authenticated")
	assert.JSONEq(t, `{"username":"alice","password":"secret123"}`, req.Body)
}

func TestLogin_FailureKeepsPriorCredential(t *testing.T) {
	_, srv := newBackend(t, routes(map[string]http.HandlerFunc{
		"POST /auth/login": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password"})
		},
	}))
	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.Set(context.Background(), "old"))
	c := NewHTTPClient(srv.URL, tokens)

	resp, err := c.Login(context.Background(), "alice", "wrong-pass")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "Invalid username or password", err.Error())
	assert.ErrorIs(t, err, ErrUnauthorized)

	got, ok := tokens.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, "old", got)
}

func TestLogin_EmptyTokenIsNotPersisted(t *testing.T) {
	_, srv := newBackend(t, routes(map[string]http.HandlerFunc{
		"POST /auth/login": loginOK(""),
	}))
	tokens := NewMemoryTokenStore()
	c := NewHTTPClient(srv.URL, tokens)

	_, err := c.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	_, ok := tokens.Get(context.Background())
	assert.False(t, ok)
}

type failingTokenStore struct{ MemoryTokenStore }

func (*failingTokenStore) Set(context.Context, string) error { return errors.New("disk full") }

func TestLogin_PersistFailureIsReported(t *testing.T) {
	_, srv := newBackend(t, routes(map[string]http.HandlerFunc{
		"POST /auth/login": loginOK("tok"),
	}))
	c := NewHTTPClient(srv.URL, &failingTokenStore{})

	resp, err := c.Login(context.Background(), "alice", "secret123")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "disk full")
}

func TestAuthorizationHeader_FollowsCredentialLifecycle(t *testing.T) {
	fb, srv := newBackend(t, routes(map[string]http.HandlerFunc{
		"POST /auth/login": loginOK("tok-xyz"),
		"GET /users/7": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.User{ID: 7, Username: "alice"})
		},
	}))
	c := NewHTTPClient(srv.URL, NewMemoryTokenStore())
	ctx := context.Background()

	// No credential yet: the request still goes out, without a header.
	_, err := c.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, fb.last(t).Authorization)

	_, err = c.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	u, err := c.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "Bearer tok-xyz", fb.last(t).Authorization)

	c.Logout(ctx)
	_, err = c.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, fb.last(t).Authorization)
}

func TestPublicEndpoints_NeverSendCredential(t *testing.T) {
	fb, srv := newBackend(t, routes(map[string]http.HandlerFunc{
		"GET /recipes": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []models.Recipe{})
		},
		"GET /recipes/3": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.Recipe{ID: 3})
		},
		"GET /recipes/user/7": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []models.Recipe{{ID: 1, UserID: 7}})
		},
	}))
	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.Set(context.Background(), "tok"))
	c := NewHTTPClient(srv.URL, tokens)
	ctx := context.Background()

	_, err := c.GetAllRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, fb.last(t).Authorization)

	_, err = c.GetRecipeByID(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, fb.last(t).Authorization)

	rs, err := c.GetUserRecipes(ctx, 7)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "/recipes/user/7", fb.last(t).Path)
	assert.Empty(t, fb.last(t).Authorization)
}

func TestRequest_HeadersAndBody(t *testing.T) {
	fb, srv := newBackend(t, routes(map[string]http.HandlerFunc{
		"GET /recipes": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []models.Recipe{})
		},
		"POST /recipes": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, models.Recipe{ID: 11, Title: "Soup"})
		},
	}))
	c := NewHTTPClient(srv.URL+"/", nil)
	ctx := context.Background()

	_, err := c.GetAllRecipes(ctx)
	require.NoError(t, err)
	get := fb.last(t)
	assert.Equal(t, "application/json", get.ContentType)
	assert.Empty(t, get.Body, "GET carries no body")
	assert.NotEmpty(t, get.RequestID)
	assert.Equal(t, "/recipes", get.Path, "trailing slash of the base is trimmed")

	created, err := c.CreateRecipe(ctx, models.RecipeCreate{
		UserID: 7, Title: "Soup", Ingredients: "water", Instructions: "boil",
		Servings: models.Ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)

	post := fb.last(t)
	assert.Equal(t, "application/json", post.ContentType)
	assert.NotEqual(t, get.RequestID, post.RequestID)
	assert.JSONEq(t,
		`{"userId":7,"title":"Soup","description":"","ingredients":"water","instructions":"boil","servings":0}`,
		post.Body)
}

func TestRequest_LogsRequestIDSentInHeader(t *testing.T) {
	fb, srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Recipe{})
	})
	var buf bytes.Buffer
	logger, err := logging.New(&buf, logging.FormatText, "debug")
	require.NoError(t, err)
	c := NewHTTPClient(srv.URL, nil, WithLogger(logger))

	_, err = c.GetAllRecipes(context.Background())
	require.NoError(t, err)

	id := fb.last(t).RequestID
	require.NotEmpty(t, id)
	assert.Contains(t, buf.String(), "request_id="+id)
	assert.Contains(t, buf.String(), "path=/recipes")
}

func TestUpdateRecipe_SendsPutWithPartialBody(t *testing.T) {
	fb, srv := newBackend(t, routes(map[string]http.HandlerFunc{
		"PUT /recipes/5": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.Recipe{ID: 5, Title: "New"})
		},
	}))
	c := NewHTTPClient(srv.URL, nil)

	r, err := c.UpdateRecipe(context.Background(), 5, models.RecipeUpdate{Title: models.Ptr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", r.Title)
	assert.JSONEq(t, `{"title":"New"}`, fb.last(t).Body)
}

func TestUpdateUser_SendsPatch(t *testing.T) {
	fb, srv := newBackend(t, routes(map[string]http.HandlerFunc{
		"PATCH /users/7": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.User{ID: 7, Email: "new@example.com"})
		},
	}))
	c := NewHTTPClient(srv.URL, nil)

	u, err := c.UpdateUser(context.Background(), 7, models.UserUpdate{Email: models.Ptr("new@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, http.MethodPatch, fb.last(t).Method)
	assert.JSONEq(t, `{"email":"new@example.com"}`, fb.last(t).Body)
}

func TestNoContent_IsAbsentAndBodyIgnored(t *testing.T) {
	_, srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
		_, _ = w.Write([]byte("{not json"))
	})
	c := NewHTTPClient(srv.URL, nil)
	ctx := context.Background()

	require.NoError(t, c.DeleteRecipe(ctx, 1))
	require.NoError(t, c.DeleteUser(ctx, 1))

	r, err := c.GetRecipeByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, r)

	rs, err := c.GetAllRecipes(ctx)
	require.NoError(t, err)
	assert.Nil(t, rs)
}

func TestDelete_SuccessBodyIsDecoded(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "json body", body: `{"message":"deleted"}`},
		{name: "malformed body", body: "{not json", wantErr: true},
		{name: "empty body", body: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(tt.body))
			})
			c := NewHTTPClient(srv.URL, nil)
			ctx := context.Background()

			for _, err := range []error{c.DeleteRecipe(ctx, 1), c.DeleteUser(ctx, 1)} {
				if !tt.wantErr {
					require.NoError(t, err)
					continue
				}
				var te *TransportError
				require.ErrorAs(t, err, &te)
				assert.True(t, te.Decode)
				assert.NotErrorIs(t, err, ErrUnavailable)
			}
		})
	}
}

func TestAPIError_Messages(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantDetail string
		wantIs     error
	}{
		{
			name:    "message field",
			status:  http.StatusBadRequest,
			body:    `{"message":"bad input"}`,
			wantMsg: "bad input",
		},
		{
			name:       "message and error",
			status:     http.StatusConflict,
			body:       `{"message":"Username taken","error":"Conflict"}`,
			wantMsg:    "Username taken",
			wantDetail: "Conflict",
		},
		{
			name:    "unparseable body",
			status:  http.StatusInternalServerError,
			body:    `<html>oops</html>`,
			wantMsg: "API Error: 500",
		},
		{
			name:       "empty message",
			status:     http.StatusBadRequest,
			body:       `{"error":"Bad Request"}`,
			wantMsg:    "API Error: 400",
			wantDetail: "Bad Request",
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    ``,
			wantMsg: "API Error: 404",
			wantIs:  ErrNotFound,
		},
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			body:    `{"message":"not yours"}`,
			wantMsg: "not yours",
			wantIs:  ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			c := NewHTTPClient(srv.URL, nil)

			_, err := c.GetRecipeByID(context.Background(), 1)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
			assert.Equal(t, tt.wantMsg, Message(err))
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestMalformedSuccessBody_IsTransportError(t *testing.T) {
	_, srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{broken"))
	})
	c := NewHTTPClient(srv.URL, nil)

	_, err := c.GetRecipeByID(context.Background(), 1)
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Decode)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "decode response")
}

func TestUnreachableServer_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, nil)
	_, err := c.GetAllRecipes(context.Background())
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.False(t, te.Decode)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, ErrUnavailable.Error(), Message(err))
	assert.True(t, strings.HasPrefix(te.Op, "GET /recipes"))
}

func TestCanceledContext_IsTransportError(t *testing.T) {
	_, srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Recipe{})
	})
	c := NewHTTPClient(srv.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetAllRecipes(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestWithHTTPClient_EmptyBaseYieldsRelativeURL(t *testing.T) {
	var seen string
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`[]`)),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	})}

	c := NewHTTPClient("", nil, WithHTTPClient(hc))
	rs, err := c.GetAllRecipes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rs)
	assert.Equal(t, "/recipes", seen)
}
