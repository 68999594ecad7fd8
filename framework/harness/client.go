package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/petstore-qa/petstore-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ServiceClient sends requests to the service under test. All request paths are relative to
// the base URL it was created with.
//
// It does not retry anything, and it does not impose a timeout of its own: a request is only
// limited by whatever timeout the underlying http.Client has.
type ServiceClient struct {
	baseURL    string
	httpClient *http.Client
	logger     framework.Logger
}

// Response is the outcome of one request to the service. Error statuses such as 404 are
// normal responses, not errors.
type Response struct {
	StatusCode int
	// Reason is the reason phrase from the status line, such as "Bad Request".
	Reason string
	Header http.Header
	Body   []byte
}

// TransportError means that a request could not be completed at the HTTP level at all,
// because of a network, DNS, or connection failure.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewServiceClient creates a ServiceClient. If httpClient is nil, http.DefaultClient is used.
func NewServiceClient(baseURL string, httpClient *http.Client, logger framework.Logger) *ServiceClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &ServiceClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the base URL of the service.
func (c *ServiceClient) BaseURL() string {
	return c.baseURL
}

// WithLogger returns a copy of the client that writes its request log to a different Logger.
// Tests use this to direct each request into their own debug output.
func (c *ServiceClient) WithLogger(logger framework.Logger) *ServiceClient {
	c1 := *c
	if logger != nil {
		c1.logger = logger
	}
	return &c1
}

// URL returns the absolute URL for a path relative to the base URL.
func (c *ServiceClient) URL(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) != 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do sends a request. If payload is not nil, it is marshalled to JSON as the request body.
func (c *ServiceClient) Do(method, path string, payload interface{}, query url.Values) (Response, error) {
	target := c.URL(path, query)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Response{}, fmt.Errorf("could not serialize request payload: %w", err)
		}
		c.logger.Printf(">> %s %s %s", method, target, string(data))
		body = bytes.NewReader(data)
	} else {
		c.logger.Printf(">> %s %s", method, target)
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("<< %s %s: %s", method, target, err)
		return Response{}, &TransportError{Method: method, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, &TransportError{Method: method, URL: target, Err: err}
	}

	r := Response{
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
		Header:     resp.Header,
		Body:       respBody,
	}
	c.logger.Printf("<< %d %s %s", r.StatusCode, r.Reason, string(respBody))
	return r, nil
}

func (c *ServiceClient) Get(path string, query url.Values) (Response, error) {
	return c.Do(http.MethodGet, path, nil, query)
}

func (c *ServiceClient) Post(path string, payload interface{}) (Response, error) {
	return c.Do(http.MethodPost, path, payload, nil)
}

func (c *ServiceClient) Put(path string, payload interface{}) (Response, error) {
	return c.Do(http.MethodPut, path, payload, nil)
}

func (c *ServiceClient) Delete(path string) (Response, error) {
	return c.Do(http.MethodDelete, path, nil, nil)
}

// Text returns the response body as a string.
func (r Response) Text() string {
	return string(r.Body)
}

// JSON parses the response body as JSON.
func (r Response) JSON() (ldvalue.Value, error) {
	var value ldvalue.Value
	if err := json.Unmarshal(r.Body, &value); err != nil {
		return ldvalue.Null(), fmt.Errorf("response body is not valid JSON: %w (body: %q)", err, truncate(r.Text(), 200))
	}
	return value, nil
}

// IsSuccess returns true for 2xx statuses.
func (r Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// reasonPhrase extracts the reason phrase that the server put in its status line. Go's
// http.Response.Status is "404 Not Found"; if the server sent no phrase, the standard one for
// the status code is used.
func reasonPhrase(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if strings.HasPrefix(resp.Status, prefix) {
		if reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, prefix)); reason != "" {
			return reason
		}
	}
	return http.StatusText(resp.StatusCode)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
