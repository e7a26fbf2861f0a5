package remote

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

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"recordboard/internal/model"
)

// DefaultCollectionURL is the public demo collection the board talks to when nothing else is configured.
const DefaultCollectionURL = "https://jsonplaceholder.typicode.com/users"

const requestIDHeader = "X-Request-ID"

// Collection is the remote record collection. Each call is exactly one HTTP request.
type Collection interface {
	List(ctx context.Context) ([]model.Record, error)
	Create(ctx context.Context, draft model.Draft) (model.Record, error)
	Update(ctx context.Context, id int, draft model.Draft) (model.Record, error)
	Delete(ctx context.Context, id int) error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for outbound calls.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeaders assigns default headers added to every request.
// An Accept header given here wins over the JSON default.
func WithHeaders(h http.Header) Option {
	return func(c *Client) {
		for k, values := range h {
			for _, v := range values {
				c.headers.Add(k, v)
			}
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent != "" {
			c.headers.Set("User-Agent", agent)
		}
	}
}

// WithTimeout bounds every request. It keeps the transport of a client set
// earlier through WithHTTPClient, which is copied rather than mutated.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// Client talks JSON to a REST collection rooted at baseURL.
// It never retries: a failed call is reported once and left to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
}

var _ Collection = (*Client)(nil)

// NewClient creates a Client for the collection at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("remote: collection URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("remote: invalid collection URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("remote: collection URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(parsed.String(), "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		headers: make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the collection URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List reads the whole collection, in server order.
func (c *Client) List(ctx context.Context) ([]model.Record, error) {
	var out []model.Record
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts the draft and returns the record the server answered with.
func (c *Client) Create(ctx context.Context, draft model.Draft) (model.Record, error) {
	var out model.Record
	if err := c.do(ctx, http.MethodPost, c.baseURL, draft, &out); err != nil {
		return model.Record{}, err
	}
	return out, nil
}

// Update replaces the record with the given id.
func (c *Client) Update(ctx context.Context, id int, draft model.Draft) (model.Record, error) {
	target, err := c.itemURL(id)
	if err != nil {
		return model.Record{}, err
	}
	var out model.Record
	if err := c.do(ctx, http.MethodPut, target, draft, &out); err != nil {
		return model.Record{}, err
	}
	return out, nil
}

// Delete removes the record with the given id. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id int) error {
	target, err := c.itemURL(id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, target, nil, nil)
}

func (c *Client) itemURL(id int) (string, error) {
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", fmt.Errorf("remote: style id: %w", err)
	}
	return c.baseURL + "/" + pathParam, nil
}

func (c *Client) do(ctx context.Context, method, target string, in, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var body io.Reader
	if in != nil {
		data, err := jsonMarshal(in)
		if err != nil {
			return fmt.Errorf("remote: encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header = cloneHeader(c.headers)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s [%s]: %w", method, target, requestID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("remote: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data, requestID)
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("remote: missing body for %d response", resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("remote: decode response: %w", err)
	}
	return nil
}

func cloneHeader(src http.Header) http.Header {
	dst := make(http.Header, len(src))
	for k, values := range src {
		vCopy := make([]string, len(values))
		copy(vCopy, values)
		dst[k] = vCopy
	}
	return dst
}

func jsonMarshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
