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

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cup-standings/internal/platform/logging"
	"github.com/riskibarqy/cup-standings/internal/platform/resilience"
	"github.com/riskibarqy/cup-standings/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	maxSheetBytes       = 8 << 20
	defaultHTTPTimeout  = 20 * time.Second
	defaultRetryBackoff = time.Second
)

var (
	errSourceTransient = crerr.New("fixture source transient failure")

	// ErrSheetTooLarge rejects a body over the size limit instead of parsing a
	// truncated last row.
	ErrSheetTooLarge = crerr.New("fixture sheet exceeds size limit")
)

type HTTPConfig struct {
	HTTPClient     *http.Client
	URL            string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	MaxBodyBytes   int64
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// HTTPSource downloads the fixture sheet, typically a published spreadsheet CSV export.
type HTTPSource struct {
	httpClient *http.Client
	url        string
	maxRetries int
	backoff    time.Duration
	maxBytes   int64
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[string]
}

func NewHTTPSource(cfg HTTPConfig) *HTTPSource {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultHTTPTimeout
	}

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = maxSheetBytes
	}

	return &HTTPSource{
		httpClient: httpClient,
		url:        strings.TrimSpace(cfg.URL),
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    backoff,
		maxBytes:   maxBytes,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// Fetch returns the sheet body. Overlapping calls share one download.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	raw, err, shared := s.flight.Do(ctx, s.url, func(flightCtx context.Context) (string, error) {
		var body string
		execErr := s.breaker.Execute(func() error {
			var reqErr error
			body, reqErr = s.executeRequest(flightCtx)
			return reqErr
		}, isTransient)
		return body, execErr
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		s.logger.WarnContext(ctx, "fixture source circuit breaker rejected request",
			"url", redactURL(s.url),
			"state", s.breaker.State(),
		)
		return "", fmt.Errorf("%w: fixture source is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return "", err
	}

	s.logger.DebugContext(ctx, "fixture sheet downloaded", "bytes", len(raw), "shared", shared)
	return raw, nil
}

func (s *HTTPSource) executeRequest(ctx context.Context) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return "", fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errSourceTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errSourceTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				if int64(len(raw)) > s.maxBytes {
					return "", crerr.Wrapf(ErrSheetTooLarge, "limit=%d bytes", s.maxBytes)
				}
				return string(raw), nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("fixture source status=%d", resp.StatusCode), errSourceTransient)
			default:
				return "", crerr.Newf("fixture source status=%d", resp.StatusCode)
			}
		}

		if attempt == s.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * s.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("fixture source request failed")
	}
	s.logger.WarnContext(ctx, "fixture source request failed",
		"url", redactURL(s.url),
		"attempts", s.maxRetries+1,
		"error", lastErr,
	)
	return "", lastErr
}

func isTransient(err error) bool {
	return crerr.Is(err, errSourceTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// redactURL drops the query, which often carries sheet access keys.
func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "invalid-url"
	}
	parsed.RawQuery = ""
	parsed.User = nil
	return parsed.String()
}
