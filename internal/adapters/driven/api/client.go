package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 8 << 20
)

// Config configures the Persistence API client.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.com/action/provider".
	BaseURL string

	// Token is the bearer token. Requests are unauthenticated when empty.
	Token string

	// RequestsPerSecond throttles outgoing requests. Zero or less uses
	// domain.DefaultAPIRequestsPerSecond.
	RequestsPerSecond float64

	// Timeout bounds each request. Zero uses DefaultTimeout.
	Timeout time.Duration

	// Transport overrides the underlying round tripper (tests).
	Transport http.RoundTripper
}

// DraftStore implements driven.DraftStore over HTTP.
type DraftStore struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
}

// Ensure DraftStore implements the interface.
var _ driven.DraftStore = (*DraftStore)(nil)

// NewDraftStore creates a client for the Persistence API at cfg.BaseURL.
func NewDraftStore(cfg Config) (*DraftStore, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: api base URL is required", domain.ErrInvalidInput)
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: api base URL %q", domain.ErrInvalidInput, cfg.BaseURL)
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = domain.DefaultAPIRequestsPerSecond
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	client := &http.Client{Transport: transport, Timeout: timeout}
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
		client.Timeout = timeout
	}

	return &DraftStore{
		base:    base,
		http:    client,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// remoteDraft is the API's draft representation.
type remoteDraft struct {
	Key         string           `json:"key"`
	ProviderKey string           `json:"providerKey"`
	Title       string           `json:"title"`
	Subtitle    string           `json:"subtitle"`
	Sections    []domain.Section `json:"sections"`
	Version     int              `json:"version"`
	CreatedOn   time.Time        `json:"createdOn"`
	ModifiedOn  time.Time        `json:"modifiedOn"`
}

func (r *remoteDraft) toDomain() *domain.Draft {
	sections := r.Sections
	if sections == nil {
		sections = []domain.Section{}
	}
	return &domain.Draft{
		Key:         r.Key,
		ProviderKey: r.ProviderKey,
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		Sections:    sections,
		Version:     r.Version,
		CreatedAt:   r.CreatedOn,
		UpdatedAt:   r.ModifiedOn,
	}
}

// envelope wraps every API response.
type envelope struct {
	Success  bool            `json:"success"`
	Result   json.RawMessage `json:"result"`
	Messages []Message       `json:"messages"`
}

// CreateDraft posts a new draft. The command's ID is not sent.
func (s *DraftStore) CreateDraft(ctx context.Context, cmd domain.DraftCommand) (*domain.Draft, error) {
	cmd.ID = ""
	var out remoteDraft
	if err := s.do(ctx, "create draft", http.MethodPost, "drafts", cmd, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// UpdateDraft replaces an existing draft.
func (s *DraftStore) UpdateDraft(ctx context.Context, key string, cmd domain.DraftCommand) (*domain.Draft, error) {
	cmd.ID = key
	var out remoteDraft
	if err := s.do(ctx, "update draft", http.MethodPut, "drafts/"+url.PathEscape(key), cmd, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// GetDraft fetches a draft by key.
func (s *DraftStore) GetDraft(ctx context.Context, key string) (*domain.Draft, error) {
	var out remoteDraft
	if err := s.do(ctx, "get draft", http.MethodGet, "drafts/"+url.PathEscape(key), nil, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// ListDrafts fetches all drafts in the order the API returns them.
func (s *DraftStore) ListDrafts(ctx context.Context) ([]domain.Draft, error) {
	var out []remoteDraft
	if err := s.do(ctx, "list drafts", http.MethodGet, "drafts", nil, &out); err != nil {
		return nil, err
	}
	drafts := make([]domain.Draft, 0, len(out))
	for i := range out {
		drafts = append(drafts, *out[i].toDomain())
	}
	return drafts, nil
}

// DeleteDraft removes a draft. A draft the API no longer knows is not an error.
func (s *DraftStore) DeleteDraft(ctx context.Context, key string) error {
	err := s.do(ctx, "delete draft", http.MethodDelete, "drafts/"+url.PathEscape(key), nil, nil)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// do sends one request and decodes the envelope's result into out.
func (s *DraftStore) do(ctx context.Context, op, method, path string, body, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: rate limit wait: %w", op, err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.base.JoinPath(path).String(), reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("api: %s %s", method, req.URL.Path)
	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrRemote, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%s: read response: %w: %w", op, domain.ErrRemote, err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if ok && len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil && ok {
		return fmt.Errorf("%s: decode response: %w: %w", op, domain.ErrRemote, err)
	}
	if !ok {
		return &Error{Op: op, StatusCode: resp.StatusCode, Messages: env.Messages}
	}
	if !env.Success {
		return &Error{Op: op, Messages: env.Messages}
	}
	if out == nil || len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("%s: decode result: %w: %w", op, domain.ErrRemote, err)
	}
	return nil
}
