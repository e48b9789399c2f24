package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"school-assistant/internal/toolctx"
	"school-assistant/pkg/log"
)

const requestTimeout = 15 * time.Second

// Client talks to the school-management data API. Every call resolves the
// active toolctx.RunContext for its credential and addressing, so the same
// client instance serves all concurrent requests.
type Client struct {
	l            log.Logger
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	limiter      *rate.Limiter

	// tokens caches service-minted bearer tokens per acting user. Entries
	// expire before the backend-issued token does.
	tokens *expirable.LRU[string, string]
}

// New creates a backend client from config.
func New(l log.Logger, cfg Config) *Client {
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 10
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 20
	}
	ttl := cfg.TokenCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Client{
		l:            l,
		baseURL:      cfg.BaseURL,
		tokenURL:     cfg.TokenURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: requestTimeout},
		limiter:      rate.NewLimiter(rate.Limit(perSecond), burst),
		tokens:       expirable.NewLRU[string, string](256, nil, ttl),
	}
}

// GetStudent looks up a student by name in the directory.
func (c *Client) GetStudent(ctx context.Context, name string) (*Student, error) {
	var student Student
	query := url.Values{"name": {name}}
	if err := c.get(ctx, "/api/v1/students/lookup", query, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListExamResults returns a student's results, optionally filtered by exam term.
func (c *Client) ListExamResults(ctx context.Context, studentID, term string) ([]ExamResult, error) {
	var results []ExamResult
	query := url.Values{}
	if term != "" {
		query.Set("term", term)
	}
	path := fmt.Sprintf("/api/v1/students/%s/exam-results", url.PathEscape(studentID))
	if err := c.get(ctx, path, query, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetAttendanceSummary returns a student's attendance aggregate for a date
// range. Dates are YYYY-MM-DD; empty values default server-side to the
// current term.
func (c *Client) GetAttendanceSummary(ctx context.Context, studentID, from, to string) (*AttendanceSummary, error) {
	var summary AttendanceSummary
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}
	path := fmt.Sprintf("/api/v1/students/%s/attendance/summary", url.PathEscape(studentID))
	if err := c.get(ctx, path, query, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListClubs returns all extracurricular clubs.
func (c *Client) ListClubs(ctx context.Context) ([]Club, error) {
	var clubs []Club
	if err := c.get(ctx, "/api/v1/clubs", nil, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// get performs an authenticated GET and decodes the data envelope into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	rc, err := toolctx.From(ctx)
	if err != nil {
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("backend: rate limiter: %w", err)
	}

	token := rc.Token
	if token == "" {
		token, err = c.mintToken(ctx, rc.UserID)
		if err != nil {
			return err
		}
	}

	base := c.baseURL
	if rc.BackendURL != "" {
		base = rc.BackendURL
	}

	reqURL := base + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("backend: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client(rc).Do(req)
	if err != nil {
		return fmt.Errorf("backend: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend: API error %d: %s", resp.StatusCode, string(raw))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("backend: failed to decode response: %w", err)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("backend: failed to decode data payload: %w", err)
		}
	}
	return nil
}

// client returns the HTTP client honoring the run context's transport hook.
func (c *Client) client(rc *toolctx.RunContext) *http.Client {
	if rc.Transport != nil {
		return &http.Client{Transport: rc.Transport, Timeout: requestTimeout}
	}
	return c.httpClient
}

// mintToken exchanges service credentials for a short-lived bearer token
// scoped to the acting user, caching it until shortly before expiry.
func (c *Client) mintToken(ctx context.Context, userID string) (string, error) {
	if c.tokenURL == "" || c.clientID == "" {
		return "", ErrNoCredential
	}

	cacheKey := userID
	if cacheKey == "" {
		cacheKey = "service"
	}
	if token, ok := c.tokens.Get(cacheKey); ok {
		return token, nil
	}

	cc := &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.tokenURL,
	}
	if userID != "" {
		cc.EndpointParams = url.Values{"subject": {userID}}
	}

	token, err := cc.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("backend: failed to mint token: %w", err)
	}

	c.tokens.Add(cacheKey, token.AccessToken)
	c.l.Debugf(ctx, "backend: minted service token for user %q", userID)
	return token.AccessToken, nil
}
