package transport

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
	"weatherdash.app/pkg/validation"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries the id of each outbound call.
	RequestIDHeader = "X-Request-ID"

	maxErrorBodyBytes = 1 << 20
)

var errServerStatus = stderrors.New("server returned error status")

// HTTPClient is the subset of *http.Client the transport needs
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// envelope is the wrapper of every backend response. Code is a pointer so a
// body without a code is told apart from a success.
type envelope struct {
	Code      *int            `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// HTTPTransport implements ports.Transport against the envelope backend over HTTP.
type HTTPTransport struct {
	baseURL   string
	client    HTTPClient
	validate  *validator.Validate
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	logger    ports.Logger
	userAgent string
}

// BreakerSettings enables a fail-fast circuit breaker. It never retries.
type BreakerSettings struct {
	MaxConsecutiveFailures uint32
	OpenTimeout            time.Duration
}

// HTTPTransportParams holds parameters for creating the HTTP transport
type HTTPTransportParams struct {
	BaseURL string
	Timeout time.Duration
	// Client overrides the default *http.Client built from Timeout.
	Client HTTPClient
	// RateLimitRPS of zero disables client-side rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
	Breaker        *BreakerSettings
	Validator      *validator.Validate
	Logger         ports.Logger
}

// NewHTTPTransport creates the transport. Unset base URL and timeout fall back to the defaults.
func NewHTTPTransport(params HTTPTransportParams) (*HTTPTransport, error) {
	if params.Logger == nil {
		return nil, errors.NewConfigurationError("logger is required", nil)
	}

	baseURL := strings.TrimSuffix(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	validate := params.Validator
	if validate == nil {
		validate = validation.New()
	}

	t := &HTTPTransport{
		baseURL:   baseURL,
		client:    client,
		validate:  validate,
		logger:    params.Logger,
		userAgent: "weatherdash/1.0",
	}

	if params.RateLimitRPS > 0 {
		burst := params.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(params.RateLimitRPS), burst)
	}

	if params.Breaker != nil {
		maxFailures := params.Breaker.MaxConsecutiveFailures
		if maxFailures == 0 {
			maxFailures = 5
		}
		t.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "weatherdash-backend",
			Timeout: params.Breaker.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				t.logger.Warn("Circuit breaker state changed",
					ports.F("breaker", name),
					ports.F("from", from.String()),
					ports.F("to", to.String()))
			},
		})
	}

	return t, nil
}

// BaseURL returns the backend root the transport talks to.
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL
}

// Send performs req and decodes the envelope data into out.
func (t *HTTPTransport) Send(ctx context.Context, req ports.Request, out interface{}) error {
	ensureRequestID(&req)

	if err := t.validateValue(req.Input); err != nil {
		return errors.NewClientError(fmt.Errorf("invalid request input: %w", err))
	}

	httpReq, err := t.buildRequest(ctx, req)
	if err != nil {
		return errors.NewClientError(err)
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return errors.NewClientError(fmt.Errorf("rate limiter: %w", err))
		}
	}

	resp, err := t.do(httpReq)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.logger.Warn("Failed to close response body", ports.F("path", req.Path), ports.F("error", closeErr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError(fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewServerError(resp.StatusCode, serverMessage(body))
	}

	return t.unwrap(body, out)
}

func (t *HTTPTransport) buildRequest(ctx context.Context, req ports.Request) (*http.Request, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	target := t.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Params) > 0 {
		target += "?" + req.Params.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		if err := t.validateValue(req.Body); err != nil {
			return nil, fmt.Errorf("invalid request body: %w", err)
		}
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpReq.Header.Set(RequestIDHeader, req.RequestID)
	return httpReq, nil
}

// do sends the request through the breaker when one is configured.
// 5xx responses count as breaker failures but are still returned to the caller.
func (t *HTTPTransport) do(httpReq *http.Request) (*http.Response, error) {
	if t.breaker == nil {
		resp, err := t.client.Do(httpReq)
		if err != nil {
			return nil, errors.NewNetworkError(err)
		}
		return resp, nil
	}

	var resp *http.Response
	_, err := t.breaker.Execute(func() (interface{}, error) {
		r, err := t.client.Do(httpReq)
		if err != nil {
			return nil, err
		}
		resp = r
		if r.StatusCode >= 500 {
			return nil, errServerStatus
		}
		return nil, nil
	})

	switch {
	case err == nil, stderrors.Is(err, errServerStatus):
		return resp, nil
	case stderrors.Is(err, gobreaker.ErrOpenState), stderrors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, errors.NewClientError(fmt.Errorf("circuit breaker: %w", err))
	default:
		return nil, errors.NewNetworkError(err)
	}
}

// unwrap checks the envelope and hands its data to out.
func (t *HTTPTransport) unwrap(body []byte, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Code == nil {
		if err == nil {
			err = stderrors.New("response has no envelope code")
		}
		return errors.Wrap(errors.ApplicationError, errors.MessageRequestFailed, err)
	}

	if *env.Code != 0 {
		return errors.NewApplicationError(*env.Code, env.Message)
	}

	if out == nil {
		return nil
	}

	if len(env.Data) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.NewInvalidDataError(err)
		}
	}

	if err := t.validateValue(out); err != nil {
		return errors.NewInvalidDataError(err)
	}
	return nil
}

// validateValue validates a struct, a pointer to one, or each element of a slice.
func (t *HTTPTransport) validateValue(v interface{}) error {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return t.validate.Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := t.validateValue(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

// serverMessage extracts the message field of an error body, if any.
func serverMessage(body []byte) string {
	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

func ensureRequestID(req *ports.Request) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
}
