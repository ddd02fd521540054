package router

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func text(s string) HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, s)
	}
}

func newTestRouter() *Router {
	r := New(zap.NewNop())
	r.GET("/", text("page"))
	r.GET("/api/v1/charts/pie", text("pie"))
	r.POST("/api/v1/callbacks", text("callback"))
	r.GET("/swagger/*", text("swagger"))
	r.GET("/api/v1/items/*/detail", text("detail"))
	return r
}

func TestDispatch(t *testing.T) {
	h := newTestRouter().Handler()

	tests := []struct {
		method, path string
		status       int
		body         string
	}{
		{http.MethodGet, "/", http.StatusOK, "page"},
		{http.MethodGet, "/api/v1/charts/pie", http.StatusOK, "pie"},
		{http.MethodPost, "/api/v1/callbacks", http.StatusOK, "callback"},
		{http.MethodGet, "/swagger/index.html", http.StatusOK, "swagger"},
		{http.MethodGet, "/swagger/", http.StatusOK, "swagger"},
		{http.MethodGet, "/api/v1/items/42/detail", http.StatusOK, "detail"},
		{http.MethodGet, "/api/v1/callbacks", http.StatusMethodNotAllowed, "Method Not Allowed\n"},
		{http.MethodDelete, "/swagger/index.html", http.StatusMethodNotAllowed, "Method Not Allowed\n"},
		{http.MethodGet, "/api/v1/items/42", http.StatusNotFound, "Not Found\n"},
		{http.MethodGet, "/nope", http.StatusNotFound, "Not Found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestMatchWildcardRoute(t *testing.T) {
	assert.True(t, matchWildcardRoute("/swagger/doc.json", "/swagger/*"))
	assert.True(t, matchWildcardRoute("/swagger/a/b/c", "/swagger/*"))
	assert.False(t, matchWildcardRoute("/other/doc.json", "/swagger/*"))
	assert.True(t, matchWildcardRoute("/a/1/b", "/a/*/b"))
	assert.False(t, matchWildcardRoute("/a/1/c", "/a/*/b"))
	assert.False(t, matchWildcardRoute("/a/1", "/a/*/b"))
}

func TestRoutesAndPaths(t *testing.T) {
	r := newTestRouter()
	assert.Contains(t, r.Routes(), "POST:/api/v1/callbacks")
	assert.True(t, r.Paths()["/api/v1/charts/pie"])
}

func TestServeGracefulShutdown(t *testing.T) {
	r := New(zap.NewNop())
	entered := make(chan struct{})
	release := make(chan struct{})
	r.GET("/slow", func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
		io.WriteString(w, "done")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- r.Serve(ctx, ln, 5*time.Second) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	defer client.CloseIdleConnections()

	type result struct {
		body string
		err  error
	}
	got := make(chan result, 1)
	go func() {
		resp, err := client.Get("http://" + ln.Addr().String() + "/slow")
		if err != nil {
			got <- result{err: err}
			return
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		got <- result{body: string(b), err: err}
	}()

	<-entered
	cancel()
	time.Sleep(50 * time.Millisecond)
	close(release)

	res := <-got
	require.NoError(t, res.err)
	assert.Equal(t, "done", res.body)
	assert.NoError(t, <-served)
}

func TestStartBadAddress(t *testing.T) {
	err := New(nil).Start(context.Background(), "256.0.0.1:99999", time.Second)
	assert.Error(t, err)
}
