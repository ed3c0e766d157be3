package ghapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestFetchContributorStatsGivesUpOn202(t *testing.T) {
	t.Parallel()

	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	stats := newTestClient(srv).FetchContributorStats(context.Background(), "octocat", "repo")
	if stats != nil {
		t.Fatalf("expected no data after exhausting retries, got %v", stats)
	}
	if got := atomic.LoadInt64(&requests); got != statsMaxAttempts {
		t.Fatalf("made %d requests, want exactly %d", got, statsMaxAttempts)
	}
}

func TestFetchContributorStatsParsesPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"author":{"login":"octocat"},"total":3,"weeks":[{"w":1700000000,"a":10,"d":4,"c":3}]},
			{"author":{"login":"other"},"total":1,"weeks":[]}
		]`))
	}))
	defer srv.Close()

	stats := newTestClient(srv).FetchContributorStats(context.Background(), "octocat", "repo")
	if len(stats) != 2 {
		t.Fatalf("got %d contributors, want 2", len(stats))
	}
	if stats[0].Author.Login != "octocat" || stats[0].Total != 3 {
		t.Errorf("first contributor = %+v", stats[0])
	}
	if w := stats[0].Weeks[0]; w.Additions != 10 || w.Deletions != 4 || w.Commits != 3 {
		t.Errorf("week = %+v", w)
	}
}

func TestFetchContributorStatsRecoversAfter202(t *testing.T) {
	t.Parallel()

	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&requests, 1) < 3 {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		w.Write([]byte(`[{"author":{"login":"octocat"},"total":1,"weeks":[]}]`))
	}))
	defer srv.Close()

	stats := newTestClient(srv).FetchContributorStats(context.Background(), "octocat", "repo")
	if len(stats) != 1 {
		t.Fatalf("expected data once computation finished, got %v", stats)
	}
}

func TestFetchContributorStatsBestEffortStatuses(t *testing.T) {
	t.Parallel()

	// Neither an empty repo (204) nor a denied one (403) may surface an error
	for _, status := range []int{http.StatusNoContent, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		stats := newTestClient(srv).FetchContributorStats(context.Background(), "octocat", "repo")
		if stats != nil {
			t.Errorf("status %d: expected no data, got %v", status, stats)
		}
		srv.Close()
	}
}
