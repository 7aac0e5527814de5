package scanner

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRequesterStatusAndSize(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin":
			io.WriteString(w, "welcome")
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	req := NewRequester(ClientOptions{Timeout: 5 * time.Second})

	res := req.Do(context.Background(), Candidate{Mode: ModeDir, URL: ts.URL + "/admin", Path: "admin"})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", res.StatusCode)
	}
	if res.ContentLength != int64(len("welcome")) {
		t.Errorf("expected size %d, got %d", len("welcome"), res.ContentLength)
	}

	res = req.Do(context.Background(), Candidate{Mode: ModeDir, URL: ts.URL + "/missing", Path: "missing"})
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", res.StatusCode)
	}
}

func TestRequesterMethodHeadersAndBody(t *testing.T) {
	var gotMethod, gotUA, gotHeader, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotUA = r.UserAgent()
		gotHeader = r.Header.Get("X-Token")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	}))
	defer ts.Close()

	req := NewRequester(ClientOptions{Timeout: 5 * time.Second, UserAgent: "agent-under-test"})
	res := req.Do(context.Background(), Candidate{
		Mode:    ModeFuzz,
		Method:  http.MethodPost,
		URL:     ts.URL + "/login",
		Body:    `{"user":"alice"}`,
		Headers: map[string]string{"X-Token": "abc123"},
	})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotUA != "agent-under-test" {
		t.Errorf("expected custom user agent, got %q", gotUA)
	}
	if gotHeader != "abc123" {
		t.Errorf("expected X-Token header, got %q", gotHeader)
	}
	if gotBody != `{"user":"alice"}` {
		t.Errorf("expected request body to be sent, got %q", gotBody)
	}
}

func TestRequesterHostOverride(t *testing.T) {
	var gotHost string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost = r.Host
	}))
	defer ts.Close()

	req := NewRequester(ClientOptions{Timeout: 5 * time.Second})
	res := req.Do(context.Background(), Candidate{Mode: ModeVhost, URL: ts.URL, Host: "dev.example.com"})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if gotHost != "dev.example.com" {
		t.Errorf("expected Host override, got %q", gotHost)
	}
	if res.Host != "dev.example.com" {
		t.Errorf("expected result to carry the probed host, got %q", res.Host)
	}
}

func TestRequesterIgnoreStrings(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Host == "real.example.com" {
			io.WriteString(w, "welcome to the real site")
			return
		}
		io.WriteString(w, "default catch-all page")
	}))
	defer ts.Close()

	req := NewRequester(ClientOptions{
		Timeout:       5 * time.Second,
		IgnoreStrings: []string{"catch-all"},
	})

	res := req.Do(context.Background(), Candidate{Mode: ModeVhost, URL: ts.URL, Host: "dev.example.com"})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !res.Ignored {
		t.Error("expected catch-all response to be marked ignored")
	}

	res = req.Do(context.Background(), Candidate{Mode: ModeVhost, URL: ts.URL, Host: "real.example.com"})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Ignored {
		t.Error("expected distinct response to pass")
	}
}

func TestRequesterNoFollowRedirects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
			return
		}
	}))
	defer ts.Close()

	req := NewRequester(ClientOptions{Timeout: 5 * time.Second})
	res := req.Do(context.Background(), Candidate{Mode: ModeDir, URL: ts.URL + "/old", Path: "old"})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.StatusCode != http.StatusMovedPermanently {
		t.Errorf("expected redirect to be reported, not followed, got %d", res.StatusCode)
	}
}

func TestRequesterTLSValidation(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()

	strict := NewRequester(ClientOptions{Timeout: 5 * time.Second})
	res := strict.Do(context.Background(), Candidate{Mode: ModeDir, URL: ts.URL + "/admin", Path: "admin"})
	if res.Err == nil {
		t.Error("expected certificate validation failure against self-signed server")
	}

	lax := NewRequester(ClientOptions{Timeout: 5 * time.Second, InsecureTLS: true})
	res = lax.Do(context.Background(), Candidate{Mode: ModeDir, URL: ts.URL + "/admin", Path: "admin"})
	if res.Err != nil {
		t.Errorf("expected InsecureTLS to accept self-signed cert, got %v", res.Err)
	}
}

func TestRequesterConnectionError(t *testing.T) {
	req := NewRequester(ClientOptions{Timeout: time.Second})
	res := req.Do(context.Background(), Candidate{Mode: ModeDir, URL: "http://127.0.0.1:1/admin", Path: "admin"})
	if res.Err == nil {
		t.Fatal("expected connection error against closed port")
	}
}
