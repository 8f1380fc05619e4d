package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// fakeUpstream is an identity endpoint plus one protected path. The
// protected path accepts only the token most recently issued by refresh.
type fakeUpstream struct {
	mu           sync.Mutex
	validToken   string
	refreshIssue string // token handed out by refresh; defaults to validToken
	refreshCalls int32
	refreshDelay time.Duration
	refreshFail  bool
	refreshDrop  bool // sever the connection instead of answering
	seenBodies   []string
}

func (f *fakeUpstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/token/", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(tokenPair{Access: f.current(), Refresh: "refresh-1"})
	})
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.refreshCalls, 1)
		if f.refreshDelay > 0 {
			time.Sleep(f.refreshDelay)
		}
		if f.refreshDrop {
			conn, _, err := http.NewResponseController(w).Hijack()
			if err == nil {
				conn.Close()
			}
			return
		}
		if f.refreshFail {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.mu.Lock()
		issued := f.refreshIssue
		if issued == "" {
			issued = f.validToken
		}
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"access": issued})
	})
	mux.HandleFunc("/activities/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.seenBodies = append(f.seenBodies, string(body))
		ok := r.Header.Get("Authorization") == "Bearer "+f.validToken
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]string{"ok"})
	})
	mux.HandleFunc("/boom/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"message": "upstream exploded"})
	})
	return mux
}

func (f *fakeUpstream) current() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validToken
}

func newTestManager(t *testing.T, f *fakeUpstream, store Store) (*Manager, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	m, err := NewManager(srv.URL, store)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, srv
}

func TestLoginPersistsCredentialPair(t *testing.T) {
	f := &fakeUpstream{validToken: "tok-1"}
	store := NewMemStore()
	m, _ := newTestManager(t, f, store)

	if err := m.Login(context.Background(), "admin", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !m.IsAuthenticated() {
		t.Fatal("expected authenticated session")
	}
	access, refresh, _ := store.Load()
	if access != "tok-1" || refresh != "refresh-1" {
		t.Fatalf("store holds %q/%q", access, refresh)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := &fakeUpstream{validToken: "tok-1"}
	m, _ := newTestManager(t, f, NewMemStore())

	err := m.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if m.IsAuthenticated() {
		t.Fatal("failed login must not authenticate")
	}
}

func TestExpiredTokenRefreshedAndRetriedOnce(t *testing.T) {
	f := &fakeUpstream{validToken: "fresh"}
	store := NewMemStore()
	store.Save("stale", "refresh-1")
	m, _ := newTestManager(t, f, store)

	resp, err := m.Do(context.Background(), http.MethodPost, "/activities/", []byte(`{"title":"x"}`))
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if n := atomic.LoadInt32(&f.refreshCalls); n != 1 {
		t.Fatalf("refresh called %d times, want 1", n)
	}
	if len(f.seenBodies) != 2 {
		t.Fatalf("expected original + retry, saw %d attempts", len(f.seenBodies))
	}
	// The retry must be byte-identical.
	if f.seenBodies[0] != f.seenBodies[1] {
		t.Fatalf("retry body %q differs from original %q", f.seenBodies[1], f.seenBodies[0])
	}
	if access, _, _ := store.Load(); access != "fresh" {
		t.Fatalf("refreshed access token not persisted, store has %q", access)
	}
}

func TestSecond401ClearsAndExpires(t *testing.T) {
	// Refresh succeeds but hands back a token the server still rejects.
	f := &fakeUpstream{validToken: "good", refreshIssue: "still-bad"}
	store := NewMemStore()
	store.Save("stale", "refresh-1")
	m, _ := newTestManager(t, f, store)

	_, err := m.Do(context.Background(), http.MethodGet, "/activities/", nil)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	if n := atomic.LoadInt32(&f.refreshCalls); n != 1 {
		t.Fatalf("refresh called %d times after second 401, want exactly 1", n)
	}
	if m.IsAuthenticated() {
		t.Fatal("credentials must be cleared after second 401")
	}
	if access, refresh, _ := store.Load(); access != "" || refresh != "" {
		t.Fatal("persisted credentials must be cleared")
	}
}

func TestNoRefreshTokenExpiresWithoutRefreshCall(t *testing.T) {
	f := &fakeUpstream{validToken: "valid"}
	store := NewMemStore()
	store.Save("stale", "")
	m, _ := newTestManager(t, f, store)

	_, err := m.Do(context.Background(), http.MethodGet, "/activities/", nil)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	if n := atomic.LoadInt32(&f.refreshCalls); n != 0 {
		t.Fatalf("refresh endpoint hit %d times without a refresh token", n)
	}
}

func TestRefreshRejectionClearsState(t *testing.T) {
	f := &fakeUpstream{validToken: "valid", refreshFail: true}
	store := NewMemStore()
	store.Save("stale", "refresh-1")
	m, _ := newTestManager(t, f, store)

	_, err := m.Do(context.Background(), http.MethodGet, "/activities/", nil)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	if m.IsAuthenticated() {
		t.Fatal("rejected refresh must clear credentials")
	}
}

func TestFailedRefreshTransportClearsCredentials(t *testing.T) {
	// The refresh endpoint drops the connection mid-exchange. A repair
	// attempt that fails for any reason ends the session the same way a
	// rejection does.
	f := &fakeUpstream{validToken: "valid", refreshDrop: true}
	store := NewMemStore()
	store.Save("stale", "refresh-1")
	m, _ := newTestManager(t, f, store)

	_, err := m.Do(context.Background(), http.MethodGet, "/activities/", nil)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	if m.IsAuthenticated() {
		t.Fatal("credentials must be cleared after a failed refresh")
	}
	if access, refresh, _ := store.Load(); access != "" || refresh != "" {
		t.Fatalf("persisted credentials must be cleared, store has %q/%q", access, refresh)
	}
}

func TestRequestErrorCarriesServerMessage(t *testing.T) {
	f := &fakeUpstream{validToken: "valid"}
	store := NewMemStore()
	store.Save("valid", "refresh-1")
	m, _ := newTestManager(t, f, store)

	_, err := m.Do(context.Background(), http.MethodGet, "/boom/", nil)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
	if reqErr.Status != http.StatusBadGateway || reqErr.Message != "upstream exploded" {
		t.Fatalf("unexpected request error: %+v", reqErr)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	f := &fakeUpstream{validToken: "tok-1"}
	store := NewMemStore()
	m, _ := newTestManager(t, f, store)

	if err := m.Login(context.Background(), "admin", "hunter2"); err != nil {
		t.Fatal(err)
	}
	if err := m.Logout(); err != nil {
		t.Fatal(err)
	}
	if m.IsAuthenticated() {
		t.Fatal("expected unauthenticated after logout")
	}
	if access, refresh, _ := store.Load(); access != "" || refresh != "" {
		t.Fatal("store not cleared on logout")
	}
	// Behaves as if no access token exists.
	if _, err := m.Do(context.Background(), http.MethodGet, "/activities/", nil); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired after logout, got %v", err)
	}
}

func TestConcurrentRefreshesCoalesce(t *testing.T) {
	f := &fakeUpstream{validToken: "fresh", refreshDelay: 50 * time.Millisecond}
	store := NewMemStore()
	store.Save("stale", "refresh-1")
	m, _ := newTestManager(t, f, store)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := m.Do(context.Background(), http.MethodGet, "/activities/", nil)
			if err != nil {
				errs <- err
				return
			}
			resp.Body.Close()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent Do failed: %v", err)
	}
	if n := atomic.LoadInt32(&f.refreshCalls); n != 1 {
		t.Fatalf("refresh endpoint hit %d times, want 1 (coalesced)", n)
	}
}

func TestExpiresAtReadsJWTClaim(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	store := NewMemStore()
	store.Save(signed, "refresh-1")
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	m, err := NewManager(srv.URL, store)
	if err != nil {
		t.Fatal(err)
	}

	got, ok := m.ExpiresAt()
	if !ok || !got.Equal(exp) {
		t.Fatalf("ExpiresAt = %v/%v, want %v", got, ok, exp)
	}

	// Opaque tokens report no expiry.
	store.Save("not-a-jwt", "")
	m2, _ := NewManager(srv.URL, store)
	if _, ok := m2.ExpiresAt(); ok {
		t.Fatal("opaque token must not report expiry")
	}
}
