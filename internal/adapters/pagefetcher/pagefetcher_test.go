package pagefetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"subscription-service/internal/core/domain"
	"subscription-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// больше 10 МБ, предела colly по умолчанию; цена в самом конце
var largePage = "<html><body>" + strings.Repeat("<p>filler</p>", 1<<20) +
	`<div data-id-flat="42">5 200 000 ₽</div></body></html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><div data-id-flat="42">price</div></body></html>`))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/partial", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		_, _ = w.Write([]byte(`<div data-id-flat="42">price</div>`))
	})
	mux.HandleFunc("/large", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(largePage))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchPage_ReturnsBody(t *testing.T) {
	srv := newTestServer(t)
	a := NewPageFetcherAdapter(Config{Timeout: time.Second, UserAgent: "test-agent"})

	body, err := a.FetchPage(context.Background(), srv.URL+"/ok")

	require.NoError(t, err)
	assert.Contains(t, body, `data-id-flat="42"`)
}

func TestFetchPage_ErrorStatusIsFetchError(t *testing.T) {
	srv := newTestServer(t)
	a := NewPageFetcherAdapter(Config{Timeout: time.Second})

	for _, path := range []string{"/missing", "/broken"} {
		_, err := a.FetchPage(context.Background(), srv.URL+path)
		assert.ErrorIs(t, err, domain.ErrFetch, path)
	}
}

func TestFetchPage_Any2xxIsSuccess(t *testing.T) {
	srv := newTestServer(t)
	a := NewPageFetcherAdapter(Config{Timeout: time.Second})

	body, err := a.FetchPage(context.Background(), srv.URL+"/empty")
	require.NoError(t, err)
	assert.Empty(t, body)

	body, err = a.FetchPage(context.Background(), srv.URL+"/partial")
	require.NoError(t, err)
	assert.Contains(t, body, `data-id-flat="42"`)
}

func TestFetchPage_LargePageIsNotTruncated(t *testing.T) {
	srv := newTestServer(t)
	a := NewPageFetcherAdapter(Config{Timeout: 10 * time.Second})

	body, err := a.FetchPage(context.Background(), srv.URL+"/large")

	require.NoError(t, err)
	assert.Len(t, body, len(largePage))
	assert.True(t, strings.HasSuffix(body, `5 200 000 ₽</div></body></html>`))
}

func TestFetchPage_MaxBodySize(t *testing.T) {
	srv := newTestServer(t)
	a := NewPageFetcherAdapter(Config{Timeout: time.Second, MaxBodySize: 16})

	body, err := a.FetchPage(context.Background(), srv.URL+"/ok")

	require.NoError(t, err)
	assert.Len(t, body, 16)
}

func TestFetchPage_TransportFailure(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL + "/ok"
	srv.Close()

	a := NewPageFetcherAdapter(Config{Timeout: time.Second})
	_, err := a.FetchPage(context.Background(), url)

	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestFetchPage_Timeout(t *testing.T) {
	srv := newTestServer(t)
	a := NewPageFetcherAdapter(Config{Timeout: 100 * time.Millisecond})

	start := time.Now()
	_, err := a.FetchPage(context.Background(), srv.URL+"/slow")

	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFetchPage_ForbiddenDomain(t *testing.T) {
	srv := newTestServer(t)
	a := NewPageFetcherAdapter(Config{Timeout: time.Second, AllowedDomains: []string{"prinzip.su"}})

	_, err := a.FetchPage(context.Background(), srv.URL+"/ok")

	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestIsReachable(t *testing.T) {
	srv := newTestServer(t)
	a := NewPageFetcherAdapter(Config{Timeout: time.Second})
	ctx := context.Background()

	assert.True(t, a.IsReachable(ctx, srv.URL+"/ok"))
	// сервер ответил, пусть и ошибкой
	assert.True(t, a.IsReachable(ctx, srv.URL+"/missing"))
	assert.True(t, a.IsReachable(ctx, srv.URL+"/broken"))
	assert.True(t, a.IsReachable(ctx, srv.URL+"/empty"))
}

func TestIsReachable_TransportFailure(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL + "/ok"
	srv.Close()

	a := NewPageFetcherAdapter(Config{Timeout: time.Second})
	assert.False(t, a.IsReachable(context.Background(), url))
}

func TestIsReachable_CancelledContext(t *testing.T) {
	srv := newTestServer(t)
	a := NewPageFetcherAdapter(Config{Timeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, a.IsReachable(ctx, srv.URL+"/ok"))
}

type countingLogger struct {
	debugs int
}

func (l *countingLogger) Info(string, port.Fields) {}
func (l *countingLogger) Warn(string, port.Fields) {}
func (l *countingLogger) Error(string, error, port.Fields) {}
func (l *countingLogger) Debug(string, port.Fields) { l.debugs++ }
func (l *countingLogger) WithFields(port.Fields) port.LoggerPort { return l }

func TestCollyEventsBridgedToLogger(t *testing.T) {
	srv := newTestServer(t)
	logger := &countingLogger{}
	a := NewPageFetcherAdapter(Config{Timeout: time.Second, Logger: logger})

	_, err := a.FetchPage(context.Background(), srv.URL+"/ok")

	require.NoError(t, err)
	assert.Positive(t, logger.debugs)
}
