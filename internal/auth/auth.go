// Package auth signs users in against the Firebase Identity Toolkit
// REST API and hands out fresh ID tokens for API calls.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	defaultIdentityURL = "https://identitytoolkit.googleapis.com/v1"
	defaultTokenURL    = "https://securetoken.googleapis.com/v1/token"

	// Tokens are refreshed slightly before they expire so a token
	// handed to an API call is never stale mid-flight.
	refreshLeeway = time.Minute
)

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// User is the signed-in account's public identity.
type User struct {
	LocalID     string
	Email       string
	DisplayName string
}

// session holds the signed-in state. idToken is refreshed via the
// refresh token when it nears expiry.
type session struct {
	user         User
	idToken      string
	refreshToken string
	expiresAt    time.Time
}

// Service handles authentication against the identity provider.
type Service struct {
	apiKey      string
	identityURL string
	tokenURL    string
	httpClient  HTTPClient

	mu      sync.Mutex
	session *session
}

// Option allows configuring the Service
type Option func(*Service)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(s *Service) {
		s.httpClient = httpClient
	}
}

// WithIdentityURL sets a custom identity endpoint base URL
func WithIdentityURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.identityURL = url
		}
	}
}

// WithTokenURL sets a custom token refresh endpoint
func WithTokenURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.tokenURL = url
		}
	}
}

// NewService creates an authentication service for the given project
// API key.
func NewService(apiKey string, opts ...Option) (*Service, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GIGSHIELD_FIREBASE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GIGSHIELD_FIREBASE_API_KEY environment variable not set")
	}

	svc := &Service{
		apiKey:      apiKey,
		identityURL: defaultIdentityURL,
		tokenURL:    defaultTokenURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// SignUp creates a new email/password account and signs it in. The
// display name is set in a follow-up profile update, matching the
// provider's two-step account creation.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (*User, error) {
	req := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var resp signInResponse
	if err := s.post(ctx, s.identityURL+"/accounts:signUp", req, &resp); err != nil {
		return nil, err
	}
	s.storeSession(resp)

	if name != "" {
		if err := s.UpdateProfile(ctx, name); err != nil {
			return nil, fmt.Errorf("account created but profile update failed: %w", err)
		}
	}

	user := s.currentUserCopy()
	return &user, nil
}

// SignIn authenticates an existing email/password account.
func (s *Service) SignIn(ctx context.Context, email, password string) (*User, error) {
	req := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var resp signInResponse
	if err := s.post(ctx, s.identityURL+"/accounts:signInWithPassword", req, &resp); err != nil {
		return nil, err
	}
	s.storeSession(resp)

	user := s.currentUserCopy()
	return &user, nil
}

// SignOut discards the local session. The provider keeps no server-side
// session for password sign-in; dropping the tokens is sufficient.
func (s *Service) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// ResetPassword sends a password-reset email.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	req := map[string]interface{}{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}
	return s.post(ctx, s.identityURL+"/accounts:sendOobCode", req, nil)
}

// UpdateProfile sets the signed-in user's display name.
func (s *Service) UpdateProfile(ctx context.Context, name string) error {
	token, err := s.Token(ctx)
	if err != nil {
		return err
	}

	req := map[string]interface{}{
		"idToken":           token,
		"displayName":       name,
		"returnSecureToken": false,
	}

	var resp struct {
		DisplayName string `json:"displayName"`
	}
	if err := s.post(ctx, s.identityURL+"/accounts:update", req, &resp); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		s.session.user.DisplayName = resp.DisplayName
	}
	return nil
}

// CurrentUser returns the signed-in user, if any.
func (s *Service) CurrentUser() (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, false
	}
	user := s.session.user
	return &user, true
}

// Token returns a valid ID token for the signed-in user, refreshing it
// through the secure-token endpoint when it nears expiry. Implements
// gigshield.TokenSource.
func (s *Service) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	sess := s.session
	if sess == nil {
		s.mu.Unlock()
		return "", fmt.Errorf("not signed in")
	}
	if time.Until(sess.expiresAt) > refreshLeeway {
		token := sess.idToken
		s.mu.Unlock()
		return token, nil
	}
	refreshToken := sess.refreshToken
	s.mu.Unlock()

	return s.refresh(ctx, refreshToken)
}

// refresh exchanges the refresh token for a new ID token.
func (s *Service) refresh(ctx context.Context, refreshToken string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	reqURL := s.tokenURL + "?key=" + url.QueryEscape(s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader([]byte(form.Encode())))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", parseProviderError(body)
	}

	var parsed struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unexpected token response: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		s.session.idToken = parsed.IDToken
		if parsed.RefreshToken != "" {
			s.session.refreshToken = parsed.RefreshToken
		}
		s.session.expiresAt = time.Now().Add(expirySeconds(parsed.ExpiresIn))
	}
	return parsed.IDToken, nil
}

// post sends a JSON request to an identity endpoint, keyed with the
// project API key, and decodes the response into out.
func (s *Service) post(ctx context.Context, endpoint string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	reqURL := endpoint + "?key=" + url.QueryEscape(s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return parseProviderError(respBody)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

func (s *Service) storeSession(resp signInResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session{
		user: User{
			LocalID:     resp.LocalID,
			Email:       resp.Email,
			DisplayName: resp.DisplayName,
		},
		idToken:      resp.IDToken,
		refreshToken: resp.RefreshToken,
		expiresAt:    time.Now().Add(expirySeconds(resp.ExpiresIn)),
	}
}

func (s *Service) currentUserCopy() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return User{}
	}
	return s.session.user
}

func expirySeconds(expiresIn string) time.Duration {
	seconds, err := strconv.Atoi(expiresIn)
	if err != nil || seconds <= 0 {
		return time.Hour
	}
	return time.Duration(seconds) * time.Second
}
