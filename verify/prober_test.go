package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestHTTPProber_HeadSuccess(t *testing.T) {
	var gotMethod, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := NewHTTPProber(nil, 5*time.Second, "probe-test/1.0")
	out := prober.Probe(context.Background(), server.URL)

	if !out.OK {
		t.Errorf("expected OK, got %+v", out)
	}
	if gotMethod != http.MethodHead {
		t.Errorf("expected HEAD request, got %s", gotMethod)
	}
	if gotAgent != "probe-test/1.0" {
		t.Errorf("expected identifying user agent, got %q", gotAgent)
	}
	if out.Origin() != server.URL || out.FinalURL() != server.URL {
		t.Errorf("unexpected chain %v", out.Chain)
	}
}

func TestHTTPProber_FallsBackToGetOn405(t *testing.T) {
	var heads, gets int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			atomic.AddInt32(&heads, 1)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		atomic.AddInt32(&gets, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	out := NewHTTPProber(nil, 5*time.Second, DefaultUserAgent).Probe(context.Background(), server.URL)

	if !out.OK {
		t.Errorf("expected OK after GET fallback, got %+v", out)
	}
	if heads != 1 || gets != 1 {
		t.Errorf("expected 1 HEAD and 1 GET, got %d and %d", heads, gets)
	}
}

func TestHTTPProber_ErrorStatusIsNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	out := NewHTTPProber(nil, 5*time.Second, DefaultUserAgent).Probe(context.Background(), server.URL)

	if out.OK {
		t.Error("expected 403 to be not OK")
	}
	if out.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", out.StatusCode)
	}
	if out.Err != nil {
		t.Errorf("expected no transport error, got %v", out.Err)
	}
}

func TestHTTPProber_RecordsRedirectChain(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/a", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/b", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/b", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/c", http.StatusFound)
	})
	mux.HandleFunc("/c", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	out := NewHTTPProber(nil, 5*time.Second, DefaultUserAgent).Probe(context.Background(), server.URL+"/a")

	if !out.OK {
		t.Fatalf("expected OK, got %+v", out)
	}
	want := []string{server.URL + "/a", server.URL + "/b", server.URL + "/c"}
	if len(out.Chain) != len(want) {
		t.Fatalf("chain = %v, want %v", out.Chain, want)
	}
	for i := range want {
		if out.Chain[i] != want[i] {
			t.Errorf("chain[%d] = %q, want %q", i, out.Chain[i], want[i])
		}
	}
	if out.Origin() != server.URL+"/a" {
		t.Errorf("Origin() = %q, want %q", out.Origin(), server.URL+"/a")
	}
	if out.FinalURL() != server.URL+"/c" {
		t.Errorf("FinalURL() = %q, want %q", out.FinalURL(), server.URL+"/c")
	}
}

func TestHTTPProber_RedirectLoopIsNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
	}))
	defer server.Close()

	out := NewHTTPProber(nil, 5*time.Second, DefaultUserAgent).Probe(context.Background(), server.URL+"/loop")

	if out.OK {
		t.Error("expected redirect loop to be not OK")
	}
	if out.Err == nil {
		t.Error("expected redirect error")
	}
}

func TestHTTPProber_TimeoutIsNotOK(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	out := NewHTTPProber(nil, 50*time.Millisecond, DefaultUserAgent).Probe(context.Background(), server.URL)

	if out.OK {
		t.Error("expected timeout to be not OK")
	}
	if out.Err == nil {
		t.Error("expected timeout error to be recorded")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("probe did not honor timeout, took %v", elapsed)
	}
}

func TestHTTPProber_InvalidURL(t *testing.T) {
	out := NewHTTPProber(nil, time.Second, DefaultUserAgent).Probe(context.Background(), "http://[::1")
	if out.OK || out.Err == nil {
		t.Errorf("expected request creation failure, got %+v", out)
	}
	if out.Origin() != "" {
		t.Errorf("expected empty origin, got %q", out.Origin())
	}
}
