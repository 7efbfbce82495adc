package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "a-test-secret-of-some-length"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func testConfig() *Config {
	return &Config{
		Port:               "3003",
		Environment:        "test",
		Version:            "1.0.0",
		LogLevel:           "info",
		StoreBackend:       "memory",
		JWTSecret:          testSecret,
		BcryptCost:         bcrypt.MinCost,
		TrustedOrigins:     []string{"http://localhost:5173"},
		RateLimitEnabled:   false,
		RateLimitRPS:       2,
		RateLimitBurst:     4,
		UnauthorizedStatus: http.StatusUnauthorized,
	}
}

// newTestApplication wires the application to a fresh in-memory store.
func newTestApplication(t *testing.T, cfg *Config) (*application, *store.Memory) {
	if cfg == nil {
		cfg = testConfig()
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := store.NewMemoryStore()

	return newApplication(cfg, logger, m, m, common.NopProducer{}), m
}

// syncBuffer collects log output written from handler goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// decode unmarshals the response body into dst.
func (res response) decode(t *testing.T, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(res.body, dst), "body: %s", res.body)
}

// errorMessage returns the "error" field of an error body.
func (res response) errorMessage(t *testing.T) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	res.decode(t, &body)
	return body.Error
}

func (ts *testServer) do(t *testing.T, method, path string, token *string, payload any) response {
	t.Helper()

	var body io.Reader
	switch p := payload.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(p)
	default:
		jsonPayload, err := json.Marshal(p)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return response{status: res.StatusCode, header: res.Header, body: responseBody}
}

func (ts *testServer) get(t *testing.T, path string, token *string) response {
	return ts.do(t, http.MethodGet, path, token, nil)
}

func (ts *testServer) post(t *testing.T, path string, token *string, payload any) response {
	return ts.do(t, http.MethodPost, path, token, payload)
}

func (ts *testServer) patch(t *testing.T, path string, token *string, payload any) response {
	return ts.do(t, http.MethodPatch, path, token, payload)
}

func (ts *testServer) delete(t *testing.T, path string, token *string) response {
	return ts.do(t, http.MethodDelete, path, token, nil)
}

func strptr(s string) *string {
	return &s
}

// createUser registers a user through the API and logs them in.
func (ts *testServer) createUser(t *testing.T, name, username, password string) (id string, token *string) {
	t.Helper()

	res := ts.post(t, "/api/users", nil, map[string]string{"name": name, "username": username, "password": password})
	require.Equal(t, http.StatusCreated, res.status, "body: %s", res.body)

	var user struct {
		ID string `json:"id"`
	}
	res.decode(t, &user)

	res = ts.post(t, "/api/login", nil, map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, res.status, "body: %s", res.body)

	var login struct {
		Token string `json:"token"`
	}
	res.decode(t, &login)

	return user.ID, &login.Token
}

type blogBody struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	Owner  *struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"owner"`
}

// createBlog posts a blog as the holder of token and returns it.
func (ts *testServer) createBlog(t *testing.T, token *string, payload map[string]any) blogBody {
	t.Helper()

	res := ts.post(t, "/api/blogs", token, payload)
	require.Equal(t, http.StatusCreated, res.status, "body: %s", res.body)

	var b blogBody
	res.decode(t, &b)
	return b
}
