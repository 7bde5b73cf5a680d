package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/utils"
	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

const (
	// DefaultTimeout is the default HTTP timeout for provider calls.
	DefaultTimeout = 20 * time.Second

	// DefaultRateLimit is the default provider rate limit (requests per second).
	DefaultRateLimit = 5

	maxBodyBytes = 8 << 20
)

// HTTPSource fetches statements from a statement provider:
//
//	GET {base}/statements/{id}/{income|balance|cashflow}  -> JSON table or HTML page
//	GET {base}/entities/{id}                             -> 200 known, 404 unknown
type HTTPSource struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// HTTPOption configures the HTTPSource.
type HTTPOption func(*HTTPSource)

// WithAPIKey sets the provider API key, sent as x-api-key.
func WithAPIKey(key string) HTTPOption {
	return func(s *HTTPSource) {
		s.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.httpClient = c
	}
}

// WithTimeout sets the per-call timeout of the default client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if d > 0 {
			s.httpClient.Timeout = d
		}
	}
}

// WithRateLimit sets a custom rate limit. Fractional rates are allowed;
// the burst is at least one request.
func WithRateLimit(requestsPerSecond float64) HTTPOption {
	return func(s *HTTPSource) {
		if requestsPerSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), max(1, int(requestsPerSecond)))
		}
	}
}

// NewHTTPSource creates a provider client for baseURL.
func NewHTTPSource(baseURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProviderError is a non-2xx response other than 404.
type ProviderError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("statement provider error: %s (status %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// FetchStatements fetches the three statements concurrently, one request
// per statement kind. A 404 for a statement yields an empty table; 404 on
// all three yields ErrNoData.
func (s *HTTPSource) FetchStatements(ctx context.Context, id string) (*models.Statements, error) {
	id = NormalizeID(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrNoData)
	}

	tables := make([]*models.StatementTable, len(Kinds))
	currencies := make([]string, len(Kinds))
	missing := make([]bool, len(Kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range Kinds {
		g.Go(func() error {
			table, currency, err := s.fetchTable(gctx, id, kind)
			if errors.Is(err, errNotFound) {
				missing[i] = true
				tables[i] = &models.StatementTable{Rows: map[string][]models.Value{}}
				return nil
			}
			if err != nil {
				return fmt.Errorf("fetch %s statement: %w", kind, err)
			}
			tables[i], currencies[i] = table, currency
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if missing[0] && missing[1] && missing[2] {
		return nil, fmt.Errorf("%w: %s", ErrNoData, id)
	}

	st := &models.Statements{}
	for i, kind := range Kinds {
		assign(st, kind, tables[i])
		if st.Currency == "" {
			st.Currency = currencies[i]
		}
	}
	return st, nil
}

// Exists asks the provider whether the identifier is a known entity.
func (s *HTTPSource) Exists(ctx context.Context, id string) (bool, error) {
	id = NormalizeID(id)
	if id == "" {
		return false, nil
	}
	_, _, err := s.get(ctx, "/entities/"+url.PathEscape(id))
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var errNotFound = errors.New("provider: not found")

func (s *HTTPSource) fetchTable(ctx context.Context, id, kind string) (*models.StatementTable, string, error) {
	body, contentType, err := s.get(ctx, "/statements/"+url.PathEscape(id)+"/"+kind)
	if err != nil {
		return nil, "", err
	}

	if strings.Contains(contentType, "html") {
		table, err := statementTableFor(body, kind)
		return table, "", err
	}

	var doc tableDoc
	if err := utils.DecodeLenient(string(body), &doc); err != nil {
		return nil, "", fmt.Errorf("failed to decode %s table: %w", kind, err)
	}
	return doc.table(), doc.Currency, nil
}

func (s *HTTPSource) get(ctx context.Context, path string) ([]byte, string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, "", fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL := s.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/html;q=0.9")
	if s.apiKey != "" {
		req.Header.Set("x-api-key", s.apiKey)
	}

	log.Debug().Str("url", reqURL).Msg("statement provider request")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", errNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, "", &ProviderError{StatusCode: resp.StatusCode, Message: string(body), Endpoint: path}
	}
	return body, resp.Header.Get("Content-Type"), nil
}
