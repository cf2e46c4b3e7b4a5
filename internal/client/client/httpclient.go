package client

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
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/gnode/gcaeditor/internal/auth"
	"github.com/gnode/gcaeditor/internal/client/models"
	"github.com/gnode/gcaeditor/internal/logging"
	"github.com/gnode/gcaeditor/internal/metrics"
	"github.com/gnode/gcaeditor/internal/netx"
)

const (
	DefaultTimeout           = 10 * time.Second
	DefaultRequestsPerSecond = 5

	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 512
)

// Options configure an HTTPClient. Zero values select the defaults.
type Options struct {
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64
	// HTTPClient replaces the underlying client; Timeout is ignored then.
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
	Logger     logging.Logger
}

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	limiter *rate.Limiter
	metrics *metrics.Metrics
	log     logging.Logger
	now     func() time.Time

	mu    sync.RWMutex
	token string
}

// NewHTTPClient returns a client for the server at baseURL, e.g.
// "https://abstracts.example.org".
func NewHTTPClient(baseURL string, opts Options) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		if b := int(opts.RequestsPerSecond); b > burst {
			burst = b
		}
	}

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &HTTPClient{
		baseURL: u,
		http:    hc,
		limiter: rate.NewLimiter(limit, burst),
		metrics: opts.Metrics,
		log:     log.With("component", "http_client"),
		now:     time.Now,
		token:   opts.Token,
	}, nil
}

// SetToken replaces the bearer token for subsequent requests.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) GetConference(ctx context.Context, id string) (*models.Conference, error) {
	conf := models.NewConference()
	if err := c.do(ctx, "get_conference", http.MethodGet, path("conferences", id), nil, "", conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *HTTPClient) GetAbstract(ctx context.Context, id string) (*models.Abstract, error) {
	a := models.NewAbstract()
	if err := c.do(ctx, "get_abstract", http.MethodGet, path("abstracts", id), nil, "", a); err != nil {
		return nil, err
	}
	return a, nil
}

func (c *HTTPClient) CreateAbstract(ctx context.Context, conferenceID string, a *models.Abstract) (*models.Abstract, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode abstract: %w", err)
	}
	out := models.NewAbstract()
	err = c.do(ctx, "create_abstract", http.MethodPost,
		path("conferences", conferenceID, "abstracts"), bytes.NewReader(body), "application/json", out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateAbstract(ctx context.Context, id string, a *models.Abstract) (*models.Abstract, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode abstract: %w", err)
	}
	out := models.NewAbstract()
	err = c.do(ctx, "update_abstract", http.MethodPut,
		path("abstracts", id), bytes.NewReader(body), "application/json", out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UploadFigure(ctx context.Context, abstractID, caption, fileName string, image io.Reader) (*models.Figure, error) {
	body, contentType, err := netx.FigureForm(caption, fileName, image)
	if err != nil {
		return nil, err
	}
	fig := models.NewFigure()
	err = c.do(ctx, "upload_figure", http.MethodPost,
		path("abstracts", abstractID, "figures"), body, contentType, fig)
	if err != nil {
		return nil, err
	}
	return fig, nil
}

func (c *HTTPClient) DeleteFigure(ctx context.Context, id string) error {
	return c.do(ctx, "delete_figure", http.MethodDelete, path("figures", id), nil, "", nil)
}

func (c *HTTPClient) GetOwners(ctx context.Context, abstractID string) ([]*models.Owner, error) {
	var owners []*models.Owner
	if err := c.do(ctx, "get_owners", http.MethodGet, path("abstracts", abstractID, "owners"), nil, "", &owners); err != nil {
		return nil, err
	}
	if owners == nil {
		owners = []*models.Owner{}
	}
	return owners, nil
}

func path(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return "/api/" + strings.Join(escaped, "/")
}

func (c *HTTPClient) do(ctx context.Context, op, method, p string, body io.Reader, contentType string, out any) (err error) {
	log := c.log.With("op", op, "method", method, "path", p)
	defer func() {
		c.metrics.ObserveRequest(op, outcome(err))
		if err != nil {
			log.Warn(ctx, "request failed", "error", err)
		}
	}()

	token := c.Token()
	if err := auth.CheckExpiry(token, c.now()); err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+p, body)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrRequestFailed, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debug(ctx, "sending request", "request_id", reqID)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapStatus(resp.StatusCode, readPrefix(resp.Body))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrRequestFailed, err)
	}
	return nil
}

func readPrefix(r io.Reader) []byte {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return b
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrUnavailable):
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeError
	}
}
