package comicapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type stubTokenStore struct {
	token string
}

func (s *stubTokenStore) Token(context.Context) (string, error) { return s.token, nil }
func (s *stubTokenStore) Save(_ context.Context, t string) error {
	s.token = t
	return nil
}
func (s *stubTokenStore) Clear(context.Context) error {
	s.token = ""
	return nil
}

func newTestClient(t *testing.T, srv *httptest.Server, token string) *Client {
	t.Helper()
	return New(Config{
		BaseURL:    srv.URL,
		TokenStore: &stubTokenStore{token: token},
		HTTPClient: srv.Client(),
		Logger:     zerolog.Nop(),
	})
}

func TestRequest_AttachesSingleBearerToken(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			return
		}
		got = r.Header.Values("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "abc123")
	if err := c.Request(context.Background(), http.MethodGet, "/manga", nil, nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected exactly one Authorization header, got %d", len(got))
	}
	if got[0] != "Bearer abc123" {
		t.Fatalf("unexpected header value: %q", got[0])
	}
}

func TestRequest_NoTokenNoAuthorizationHeader(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			return
		}
		got = r.Header.Values("Authorization")
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	if err := c.Request(context.Background(), http.MethodGet, "/manga", nil, nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no Authorization header, got %v", got)
	}
}

func TestRequest_InfersJSONContentType(t *testing.T) {
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			return
		}
		contentType = r.Header.Get("Content-Type")
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	opts := &RequestOptions{Body: strings.NewReader(`{"title":"x"}`)}
	if err := c.Request(context.Background(), http.MethodPost, "/manga", opts, nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if contentType != "application/json" {
		t.Fatalf("expected application/json, got %q", contentType)
	}
}

func TestRequest_ExplicitContentTypeWins(t *testing.T) {
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			return
		}
		contentType = r.Header.Get("Content-Type")
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	opts := &RequestOptions{Body: strings.NewReader("a,b"), ContentType: "text/csv"}
	if err := c.Request(context.Background(), http.MethodPost, "/import", opts, nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if contentType != "text/csv" {
		t.Fatalf("expected text/csv, got %q", contentType)
	}
}

func TestRequest_StatusCodePartition(t *testing.T) {
	for _, tc := range []struct {
		status int
		wantOK bool
	}{
		{200, true},
		{201, true},
		{299, true},
		{301, false},
		{400, false},
		{404, false},
		{500, false},
	} {
		status := tc.status
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				return
			}
			w.WriteHeader(status)
		}))

		c := newTestClient(t, srv, "")
		err := c.Request(context.Background(), http.MethodGet, "/manga", nil, nil)
		srv.Close()

		if tc.wantOK && err != nil {
			t.Fatalf("status %d: unexpected error %v", status, err)
		}
		if !tc.wantOK {
			if err == nil {
				t.Fatalf("status %d: expected error", status)
			}
			if !IsStatus(err, status) {
				t.Fatalf("status %d: IsStatus mismatch for %v", status, err)
			}
		}
	}
}

func TestRequest_ErrorMessageExtraction(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
		ct   string
		want string
	}{
		{"json message field", `{"message":"series not found"}`, "application/json", "HTTP 404: series not found"},
		{"json error field", `{"error":"nope"}`, "application/json", "HTTP 404: nope"},
		{"raw text body", "plain failure", "text/plain", "HTTP 404: plain failure"},
		{"empty body", "", "text/plain", "HTTP 404: Not Found"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/health" {
					return
				}
				w.Header().Set("Content-Type", tc.ct)
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv, "")
			err := c.Request(context.Background(), http.MethodGet, "/manga/x", nil, nil)
			if err == nil {
				t.Fatalf("expected error")
			}
			if err.Error() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestRequest_NoContentResolvesWithoutDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	out := map[string]any{"untouched": true}
	if err := c.Request(context.Background(), http.MethodDelete, "/manga/1", nil, &out); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if !out["untouched"].(bool) {
		t.Fatalf("out was modified on 204")
	}
}

func TestRequest_PlainTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("pong"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	var out string
	if err := c.Request(context.Background(), http.MethodGet, "/ping", nil, &out); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if out != "pong" {
		t.Fatalf("expected pong, got %q", out)
	}
}

func TestResolveBase_FallsBackToHealthyCandidate(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	alive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer alive.Close()

	c := New(Config{
		BaseURL:    deadURL,
		Candidates: []string{alive.URL},
		TokenStore: &stubTokenStore{},
		Logger:     zerolog.Nop(),
	})

	if err := c.Request(context.Background(), http.MethodGet, "/manga", nil, nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if c.BaseURL() != alive.URL {
		t.Fatalf("expected resolved base %s, got %s", alive.URL, c.BaseURL())
	}
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	if !c.HealthCheck(context.Background()) {
		t.Fatalf("expected healthy backend")
	}
}
