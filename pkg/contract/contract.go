// Package contract embeds the OpenAPI description of the idea submission
// endpoint and validates traffic against it. The development backend uses it
// to reject malformed requests and tests use it to pin the client wire
// format.
package contract

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

// SubmitPath is the path the submission endpoint is served on.
const SubmitPath = "/api/submit-idea"

// RecentPath lists recent submissions on the development backend.
const RecentPath = "/api/ideas/recent"

//go:embed submit-idea.yaml
var document []byte

// ErrNoRoute is returned when a request does not match any documented
// operation.
var ErrNoRoute = errors.New("contract: no matching operation")

// Contract is a loaded and validated OpenAPI document plus its router.
type Contract struct {
	doc    *openapi3.T
	router routers.Router
}

// Document returns the raw embedded OpenAPI YAML.
func Document() []byte {
	return append([]byte(nil), document...)
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Contract, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("contract: build router: %w", err)
	}
	return &Contract{doc: doc, router: router}, nil
}

// MustLoad is Load for package initialisation and tests.
func MustLoad() *Contract {
	c, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return c
}

// Title reports the document title.
func (c *Contract) Title() string {
	if c == nil || c.doc == nil || c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}

// Version reports the document version.
func (c *Contract) Version() string {
	if c == nil || c.doc == nil || c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Version
}

// ValidateRequest checks method, path, parameters and body of r. The body is
// left readable for the handler.
func (c *Contract) ValidateRequest(ctx context.Context, r *http.Request) error {
	input, err := c.requestInput(r)
	if err != nil {
		return err
	}
	if err := openapi3filter.ValidateRequest(ctx, input); err != nil {
		return fmt.Errorf("contract: request: %w", err)
	}
	return nil
}

// ValidateResponse checks a response produced for r.
func (c *Contract) ValidateResponse(ctx context.Context, r *http.Request, status int, header http.Header, body []byte) error {
	input, err := c.requestInput(r)
	if err != nil {
		return err
	}
	// avoid re-reading a request body that was already consumed
	input.Options = &openapi3filter.Options{ExcludeRequestBody: true, IncludeResponseStatus: true}

	if header == nil {
		header = http.Header{}
	}
	if header.Get("Content-Type") == "" {
		header = header.Clone()
		header.Set("Content-Type", "application/json")
	}
	responseInput := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: input,
		Status:                 status,
		Header:                 header,
		Body:                   io.NopCloser(bytes.NewReader(body)),
		Options:                input.Options,
	}
	if err := openapi3filter.ValidateResponse(ctx, responseInput); err != nil {
		return fmt.Errorf("contract: response: %w", err)
	}
	return nil
}

func (c *Contract) requestInput(r *http.Request) (*openapi3filter.RequestValidationInput, error) {
	if c == nil || c.router == nil {
		return nil, errors.New("contract: not loaded")
	}
	if r == nil {
		return nil, errors.New("contract: nil request")
	}
	route, params, err := c.router.FindRoute(routable(r))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNoRoute, r.Method, r.URL.Path, err)
	}
	return &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route:      route,
		Options:    &openapi3filter.Options{MultiError: true},
	}, nil
}

// FieldErrors flattens a validation error into messages keyed by the JSON
// pointer of the offending body member ("/email"). Failures that do not point
// into the body are grouped under "".
func FieldErrors(err error) map[string][]string {
	if err == nil {
		return nil
	}
	out := make(map[string][]string)
	collectFieldErrors(err, out)
	return out
}

func collectFieldErrors(err error, out map[string][]string) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, item := range multi {
			collectFieldErrors(item, out)
		}
		return
	}
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) && reqErr.Err != nil {
		collectFieldErrors(reqErr.Err, out)
		return
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		key := "/" + strings.Join(schemaErr.JSONPointer(), "/")
		out[key] = append(out[key], schemaErr.Reason)
		return
	}
	out[""] = append(out[""], err.Error())
}

// routable strips scheme and host so the server-less document matches requests
// built for any backend host.
func routable(r *http.Request) *http.Request {
	if r.URL == nil || (r.URL.Scheme == "" && r.URL.Host == "") {
		return r
	}
	clone := r.Clone(r.Context())
	clone.URL = &url.URL{Path: r.URL.Path, RawPath: r.URL.RawPath, RawQuery: r.URL.RawQuery}
	clone.Host = ""
	return clone
}
