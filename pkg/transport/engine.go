// Package transport performs single, bounded, classified HTTP exchanges
// against the configured Codeplane endpoint. Every outcome is either a
// Result or a *Fault with an enumerated Kind; nothing else escapes.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout is deliberately long: remote calls drive agent tasks,
	// not interactive requests.
	DefaultTimeout = 10 * time.Minute

	// MaxResponseBytes is the hard ceiling on a response body. The stream
	// is aborted the moment the running total passes it.
	MaxResponseBytes = 5 << 20

	readChunkSize   = 32 * 1024
	errorSnippetLen = 300
)

// Endpoint is the process-wide target, read once at startup and never
// mutated afterward.
type Endpoint struct {
	BaseURL    string
	Credential string
	UserAgent  string
}

// Request describes one exchange. Path is always relative to the configured
// base; the engine never accepts a caller-supplied host.
type Request struct {
	Method  string
	Path    string
	Body    any
	Timeout time.Duration
}

// Engine performs exchanges against a single Endpoint. Safe for concurrent
// use; per-call state never outlives the call.
type Engine struct {
	base           *url.URL
	credential     string
	userAgent      string
	limit          int64
	defaultTimeout time.Duration
	client         *resty.Client
	log            *zap.SugaredLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTransport swaps the underlying round tripper. Used by tests to trust
// httptest TLS certificates.
func WithTransport(rt http.RoundTripper) Option {
	return func(e *Engine) { e.client.SetTransport(rt) }
}

// WithResponseLimit overrides the response byte ceiling.
func WithResponseLimit(n int64) Option {
	return func(e *Engine) { e.limit = n }
}

// WithDefaultTimeout overrides the timeout applied when a Request carries
// none.
func WithDefaultTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.defaultTimeout = d
		}
	}
}

// WithLogger attaches a logger for per-call debug output.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New builds an Engine for the endpoint. The base URL must parse and carry a
// scheme and host; a trailing path separator is stripped.
func New(ep Endpoint, opts ...Option) (*Engine, error) {
	base, err := url.Parse(trimTrailingSlash(ep.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", ep.BaseURL)
	}

	client := resty.New()
	client.SetDoNotParseResponse(true)

	e := &Engine{
		base:           base,
		credential:     ep.Credential,
		userAgent:      ep.UserAgent,
		limit:          MaxResponseBytes,
		defaultTimeout: DefaultTimeout,
		client:         client,
		log:            zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// Do performs one exchange. The returned error, when non-nil, is always a
// *Fault except for caller programming errors (bad method, unencodable
// body).
func (e *Engine) Do(ctx context.Context, req Request) (Result, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		return Result{}, fmt.Errorf("unsupported method %q", req.Method)
	}

	// Checked before any connection attempt: a configured credential never
	// travels over an unencrypted scheme.
	if e.credential != "" && e.base.Scheme != "https" {
		return Result{}, &Fault{
			Kind:    KindSecurity,
			Message: fmt.Sprintf("refusing to send API key over unencrypted %s transport", e.base.Scheme),
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r := e.client.R().SetContext(ctx)
	r.SetHeader("Content-Type", "application/json")
	if e.userAgent != "" {
		r.SetHeader("User-Agent", e.userAgent)
	}
	if e.credential != "" {
		r.SetHeader("Authorization", "Bearer "+e.credential)
	}
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return Result{}, fmt.Errorf("encode request body: %w", err)
		}
		r.SetBody(raw)
	}

	resp, err := r.Execute(req.Method, e.base.String()+req.Path)
	if err != nil {
		return Result{}, classifyTransportErr(err)
	}

	body := resp.RawBody()
	defer body.Close()

	acc := newAccumulator(e.limit)
	chunk := make([]byte, readChunkSize)
	for {
		n, rerr := body.Read(chunk)
		if n > 0 && !acc.Append(chunk[:n]) {
			// Closing the body tears down the in-flight connection; the
			// remote cannot force further memory growth.
			body.Close()
			e.log.Warnw("response aborted over size ceiling", "path", req.Path, "limit", e.limit)
			return Result{}, &Fault{
				Kind:    KindOversized,
				Message: fmt.Sprintf("response body exceeded %d byte limit", e.limit),
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return Result{}, classifyTransportErr(rerr)
		}
	}

	e.log.Debugw("exchange complete", "method", req.Method, "path", req.Path, "status", resp.StatusCode())
	return classifyBody(resp.StatusCode(), acc.Bytes())
}

// classifyBody turns a complete status+body pair into the uniform outcome:
// JSON error bodies surface their "error" field, non-JSON error bodies are
// truncated to a fixed snippet, and non-JSON success bodies degrade to raw
// text.
func classifyBody(status int, body []byte) (Result, error) {
	var value any
	parseErr := json.Unmarshal(body, &value)

	if status >= http.StatusBadRequest {
		if parseErr != nil {
			return Result{}, &Fault{
				Kind:    KindHTTP,
				Message: "HTTP " + strconv.Itoa(status) + ": " + bodySnippet(body),
			}
		}
		msg := "HTTP " + strconv.Itoa(status)
		if obj, ok := value.(map[string]any); ok {
			if s, ok := obj["error"].(string); ok && s != "" {
				msg = s
			}
		}
		return Result{}, &Fault{Kind: KindHTTP, Message: msg}
	}

	if parseErr != nil {
		return Result{Raw: string(body)}, nil
	}
	return Result{JSON: true, Value: value, Raw: string(body)}, nil
}

func classifyTransportErr(err error) *Fault {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Fault{Kind: KindTimeout, Message: "request timed out"}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &Fault{Kind: KindTimeout, Message: "request timed out"}
	}
	return &Fault{Kind: KindNetwork, Message: err.Error()}
}

// bodySnippet caps how much arbitrary upstream text can reach caller-visible
// error messages.
func bodySnippet(body []byte) string {
	if len(body) > errorSnippetLen {
		body = body[:errorSnippetLen]
	}
	return string(body)
}
