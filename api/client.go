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

	"github.com/askdesk/askdesk-go/config"
	"github.com/askdesk/askdesk-go/consts"
	"github.com/askdesk/askdesk-go/ctxutil"
	"github.com/askdesk/askdesk-go/ecode"
	"github.com/askdesk/askdesk-go/logging/logger"

	"github.com/sony/gobreaker"
)

// SessionSource supplies the bearer header for authenticated calls and
// receives the invalidation signal when the backend rejects it. The
// epoch pins the session a request was issued against, so a 401 held
// in flight across a logout and re-login cannot drop the newer session.
type SessionSource interface {
	AuthHeader() string
	Epoch() uint64
	Invalidate(ctx context.Context, epoch uint64)
}

// Client talks to the question/FAQ backend. Authenticated calls pull
// the current credential from the bound session source on every call.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	session SessionSource
	log     *logger.Logger
}

// New creates a client from configuration
func New(cfg *config.API) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = consts.RequestTimeout
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "askdesk-api",
		Timeout: time.Second * 30,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{},
		breaker: breaker,
		timeout: timeout,
		log:     logger.StdLogger(),
	}
}

// BindSession attaches the session source; calls made before binding
// go out unauthenticated
func (c *Client) BindSession(s SessionSource) {
	c.session = s
}

// request describes one backend call
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	authed bool
	// header carries an explicit Authorization value, bypassing the
	// bound session source
	header string
}

// do executes a request and decodes the JSON response into out.
// Failures are mapped onto the client error taxonomy; a 401 on an
// authenticated call additionally invalidates the session the request
// was issued against.
func (c *Client) do(ctx context.Context, req *request, out any) error {
	ctx, traceID := ctxutil.EnsureTraceID(ctx)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var reader io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return ecode.Wrap(ecode.Validation, "failed to encode request body", err)
		}
		reader = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, reader)
	if err != nil {
		return ecode.Wrap(ecode.Validation, "failed to build request", err)
	}
	httpReq.Header.Set(consts.ContentTypeKey, consts.ContentTypeJSON)
	httpReq.Header.Set(consts.TraceKey, traceID)

	// the epoch is read before the header so a later 401 can be
	// attributed to the session this request went out under
	var sessionEpoch uint64
	if req.header != "" {
		httpReq.Header.Set(consts.AuthorizationKey, req.header)
	} else if req.authed && c.session != nil {
		sessionEpoch = c.session.Epoch()
		if header := c.session.AuthHeader(); header != "" {
			httpReq.Header.Set(consts.AuthorizationKey, header)
		}
	}

	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.http.Do(httpReq)
		if err != nil {
			return nil, ecode.FromTransport(err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, ecode.FromTransport(err)
		}
		return &rawResponse{status: resp.StatusCode, body: raw}, nil
	})
	if err != nil {
		var e *ecode.Error
		if errors.As(err, &e) {
			c.log.Warnf(ctx, "%s %s failed: %v", req.method, req.path, err)
			return e
		}
		// breaker open or too many requests
		c.log.Warnf(ctx, "%s %s rejected by circuit breaker: %v", req.method, req.path, err)
		return ecode.Wrap(ecode.Network, "backend temporarily unavailable", err)
	}

	resp := result.(*rawResponse)
	if resp.status == http.StatusUnauthorized {
		if req.authed && c.session != nil {
			c.session.Invalidate(ctx, sessionEpoch)
			return ecode.New(ecode.Unauthorized, errorMessage(resp.body, "unauthorized"))
		}
		// a 401 outside a session is a rejected credential exchange,
		// not a stale session
		return ecode.New(ecode.Backend, errorMessage(resp.body, "unauthorized"))
	}
	if resp.status < 200 || resp.status >= 300 {
		kind := ecode.Backend
		if resp.status >= 400 && resp.status < 500 {
			kind = ecode.Validation
		}
		return ecode.New(kind, errorMessage(resp.body, fmt.Sprintf("HTTP %d", resp.status)))
	}

	if out == nil || len(resp.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return ecode.Wrap(ecode.Validation, "malformed backend response", err)
	}
	return nil
}

type rawResponse struct {
	status int
	body   []byte
}

// errorMessage extracts the user-facing message from an error body,
// falling back when the body carries none
func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fallback
}

// envelope is the common success/message wrapper on backend responses
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// check validates the envelope's success flag
func (e *envelope) check() error {
	if !e.Success {
		msg := e.Message
		if msg == "" {
			msg = ecode.Unknown()
		}
		return ecode.New(ecode.Backend, msg)
	}
	return nil
}
