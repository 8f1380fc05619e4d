package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"sdgdash.org/internal/obs"
)

const defaultTimeout = 15 * time.Second

// Manager owns the credential pair and the authenticated-request primitive.
// No other component reads raw token values. A 401 triggers at most one
// refresh-and-retry cycle per logical call; concurrent 401s share a single
// in-flight refresh.
type Manager struct {
	base   string
	client *http.Client
	store  Store

	mu      sync.Mutex
	access  string
	refresh string

	sf singleflight.Group
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithHTTPClient replaces the transport. Mostly for tests.
func WithHTTPClient(c *http.Client) ManagerOption {
	return func(m *Manager) {
		if c != nil {
			m.client = c
		}
	}
}

// WithTimeout bounds every upstream call so a hung network degrades to
// local data instead of stalling the caller.
func WithTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.client.Timeout = d
		}
	}
}

// NewManager builds a session over the given identity endpoint base URL and
// loads any persisted credential pair from the store.
func NewManager(baseURL string, store Store, opts ...ManagerOption) (*Manager, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("session: base URL is required")
	}
	if store == nil {
		store = NewMemStore()
	}
	m := &Manager{
		base:   baseURL,
		client: &http.Client{Timeout: defaultTimeout},
		store:  store,
	}
	for _, opt := range opts {
		opt(m)
	}
	access, refresh, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("session: load credentials: %w", err)
	}
	m.access, m.refresh = access, refresh
	return m, nil
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair and persists it.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	resp, err := m.post(ctx, "/token/", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ErrInvalidCredentials
	}

	var pair tokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return fmt.Errorf("session: decode token response: %w", err)
	}
	m.setTokens(pair.Access, pair.Refresh)
	return m.store.Save(pair.Access, pair.Refresh)
}

// Logout clears in-memory and persisted credential state.
func (m *Manager) Logout() error {
	m.setTokens("", "")
	return m.store.Clear()
}

// IsAuthenticated reports whether an access token is held. It does not
// validate expiry against the server.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access != ""
}

// ExpiresAt reports the unverified exp claim of the held access token.
// Best effort: tokens are otherwise treated as opaque.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	m.mu.Lock()
	token := m.access
	m.mu.Unlock()
	if token == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Do issues an authenticated request. On the first 401 with a refresh token
// held it refreshes once and retries the identical request (same method,
// path and byte-for-byte body) with the new bearer. A second 401, a refresh
// rejection or a missing refresh token clears credentials and fails with
// ErrExpired. Any other non-2xx fails with *RequestError. The caller owns
// the returned body.
func (m *Manager) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	resp, err := m.send(ctx, method, path, body, m.accessToken())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if !m.hasRefreshToken() {
			m.clearAll()
			return nil, ErrExpired
		}
		if _, err := m.Refresh(ctx); err != nil {
			// Any failed repair attempt ends the session, not just an
			// explicit rejection. A stale pair must not keep reporting
			// the session as authenticated.
			m.clearAll()
			return nil, ErrExpired
		}
		resp, err = m.send(ctx, method, path, body, m.accessToken())
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			m.clearAll()
			return nil, ErrExpired
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{Status: resp.StatusCode, Message: serverMessage(resp.Body)}
		resp.Body.Close()
		return nil, reqErr
	}
	return resp, nil
}

// JSON issues an authenticated request with a JSON body and decodes the
// JSON response into out (skipped when out is nil).
func (m *Manager) JSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return err
		}
	}
	resp, err := m.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("session: decode response: %w", err)
	}
	return nil
}

// Refresh exchanges the refresh token for a new access token. Rejection
// clears all credential state. Concurrent callers are coalesced so a burst
// of 401s hits the refresh endpoint once.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	v, err, _ := m.sf.Do("refresh", func() (any, error) {
		return m.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (m *Manager) doRefresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	refresh := m.refresh
	m.mu.Unlock()
	if refresh == "" {
		return "", ErrNoRefreshToken
	}

	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return "", err
	}
	resp, err := m.post(ctx, "/token/refresh/", payload)
	if err != nil {
		obs.RefreshInc("error")
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		obs.RefreshInc("rejected")
		m.clearAll()
		return "", ErrRefreshRejected
	}

	var pair tokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		obs.RefreshInc("error")
		return "", fmt.Errorf("session: decode refresh response: %w", err)
	}

	m.mu.Lock()
	m.access = pair.Access
	refresh = m.refresh
	m.mu.Unlock()
	obs.RefreshInc("ok")
	if err := m.store.Save(pair.Access, refresh); err != nil {
		return "", err
	}
	return pair.Access, nil
}

// Internals ---------------------------------------------------------------

func (m *Manager) send(ctx context.Context, method, path string, body []byte, token string) (*http.Response, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, m.base+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return m.client.Do(req)
}

func (m *Manager) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	return m.send(ctx, http.MethodPost, path, body, "")
}

func (m *Manager) accessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access
}

func (m *Manager) hasRefreshToken() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh != ""
}

func (m *Manager) setTokens(access, refresh string) {
	m.mu.Lock()
	m.access, m.refresh = access, refresh
	m.mu.Unlock()
}

func (m *Manager) clearAll() {
	m.setTokens("", "")
	_ = m.store.Clear()
}

func serverMessage(body io.Reader) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 1<<16)).Decode(&parsed); err != nil {
		return ""
	}
	return parsed.Message
}
