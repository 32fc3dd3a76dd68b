// Package submission sends completed idea forms to the backend. The contract
// is a single JSON POST answered by `{"ideaNumber": n}` on 2xx or
// `{"error": "..."}` otherwise. There is no retry, backoff or idempotency key:
// a caller that submits twice creates two ideas.
package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/goliatone/go-ideaform/pkg/model"
)

type successBody struct {
	IdeaNumber *int `json:"ideaNumber"`
}

type errorBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// Client posts FormData to the configured endpoint.
type Client struct {
	http     *resty.Client
	endpoint string
	logger   *slog.Logger
}

// New constructs a Client applying any provided options.
func New(options ...Option) *Client {
	cfg := config{
		endpoint: DefaultEndpoint,
		timeout:  DefaultTimeout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	var rc *resty.Client
	if cfg.httpClient != nil {
		rc = resty.NewWithClient(cfg.httpClient)
	} else {
		rc = resty.New()
	}
	rc.SetTimeout(cfg.timeout).
		SetLogger(restyLogger{logger: cfg.logger}).
		SetHeader("Accept", "application/json")
	if cfg.userAgent != "" {
		rc.SetHeader("User-Agent", cfg.userAgent)
	}

	return &Client{
		http:     rc,
		endpoint: cfg.endpoint,
		logger:   cfg.logger,
	}
}

// Endpoint reports the URL submissions are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit serialises data as JSON and posts it. Non-2xx responses become
// *ServerError, transport failures *NetworkError.
func (c *Client) Submit(ctx context.Context, data model.FormData) (model.Receipt, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var ok successBody
	var fail errorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		ExpectContentType("application/json").
		SetBody(data).
		SetResult(&ok).
		SetError(&fail).
		Post(c.endpoint)
	if err != nil {
		if resp != nil && resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
			return model.Receipt{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return model.Receipt{}, &NetworkError{Err: err}
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		if strings.TrimSpace(fail.Error) == "" {
			fail = decodeErrorBody(resp.Body())
		}
		message := strings.TrimSpace(fail.Error)
		if message == "" {
			message = statusMessage(status)
		}
		c.logger.Debug("submission rejected",
			slog.String("endpoint", c.endpoint),
			slog.Int("status", status),
			slog.String("message", message),
		)
		return model.Receipt{}, &ServerError{Status: status, Message: message, Fields: fail.Fields}
	}

	if ok.IdeaNumber == nil {
		// content type may not have been JSON; decode manually before giving up
		if err := json.Unmarshal(resp.Body(), &ok); err != nil || ok.IdeaNumber == nil {
			return model.Receipt{}, ErrMalformedResponse
		}
	}

	return model.Receipt{IdeaNumber: *ok.IdeaNumber}, nil
}

func decodeErrorBody(body []byte) errorBody {
	var fail errorBody
	if err := json.Unmarshal(body, &fail); err != nil {
		return errorBody{}
	}
	return fail
}

type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("scope", "submission.http"))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("scope", "submission.http"))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("scope", "submission.http"))
}
