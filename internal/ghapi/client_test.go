package ghapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient points a Client at a local test server with a fast
// contributor-stats poll delay.
func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		rest:       srv.Client(),
		baseURL:    srv.URL,
		statsDelay: time.Millisecond,
	}
}

func TestGetRESTPassesStatusThrough(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accepted":
			w.WriteHeader(http.StatusAccepted)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)

	// Non-5xx statuses are returned to the caller, not retried or errored
	resp, err := c.GetREST(context.Background(), "/accepted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("status = %d, want 202", resp.StatusCode)
	}

	resp, err = c.GetREST(context.Background(), "/missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}

	resp, err = c.GetREST(context.Background(), "/ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("body = %q", resp.Body)
	}
}

func TestParseLinkHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		header string
		rel    string
		want   int
		found  bool
	}{
		{
			name:   "last rel present",
			header: `<https://api.github.com/user/starred?per_page=1&page=2>; rel="next", <https://api.github.com/user/starred?per_page=1&page=966>; rel="last"`,
			rel:    "last",
			want:   966,
			found:  true,
		},
		{
			name:   "next rel present",
			header: `<https://api.github.com/user/repos?page=3>; rel="next"`,
			rel:    "next",
			want:   3,
			found:  true,
		},
		{
			name:   "rel missing",
			header: `<https://api.github.com/user/repos?page=3>; rel="next"`,
			rel:    "last",
			found:  false,
		},
		{
			name:   "empty header",
			header: "",
			rel:    "last",
			found:  false,
		},
		{
			name:   "no page parameter",
			header: `<https://api.github.com/user/repos?per_page=10>; rel="last"`,
			rel:    "last",
			found:  false,
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, found := parseLinkHeader(c.header, c.rel)
			if found != c.found || got != c.want {
				t.Fatalf("parseLinkHeader = (%d, %v), want (%d, %v)", got, found, c.want, c.found)
			}
		})
	}
}

func TestFetchStarsGivenCount(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Link",
			`<`+r.Host+`/users/octocat/starred?per_page=1&page=2>; rel="next", <`+r.Host+`/users/octocat/starred?per_page=1&page=42>; rel="last"`)
		w.Write([]byte(`[{}]`))
	}))
	defer srv.Close()

	count, err := newTestClient(srv).FetchStarsGivenCount(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Fatalf("count = %d, want 42", count)
	}
}

func TestFetchStarsGivenCountNoLinkHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{}]`))
	}))
	defer srv.Close()

	count, err := newTestClient(srv).FetchStarsGivenCount(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 (single page)", count)
	}
}
