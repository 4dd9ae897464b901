package myhours

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/myhours-cli/internal/model"
)

// DefaultBaseURL is the production My Hours API root.
const DefaultBaseURL = "https://api2.myhours.com/api"

// Client talks to the My Hours REST API. Token endpoints are called with the
// plain HTTP client; every other call goes through the authorized client,
// which carries "Authorization: Bearer <accessToken>".
type Client struct {
	baseURL    string
	plain      *http.Client
	authorized *http.Client
}

// NewClient creates an unauthenticated client. A nil httpClient means
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		plain:      httpClient,
		authorized: httpClient,
	}
}

// WithTokenSource returns a copy of c whose data calls are authorized with
// tokens from ts.
func (c *Client) WithTokenSource(ctx context.Context, ts oauth2.TokenSource) *Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.plain)
	return &Client{
		baseURL:    c.baseURL,
		plain:      c.plain,
		authorized: oauth2.NewClient(ctx, ts),
	}
}

// any2xx accepts every 2xx status.
const any2xx = 0

type request struct {
	op     string
	method string
	path   string
	body   any
	want   int
	// kind is the error kind reported on failure.
	kind error
}

func (c *Client) do(ctx context.Context, httpClient *http.Client, r request, out any) error {
	var reader io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", r.op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, reader)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", r.op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-version", "1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", r.op, r.kind, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("%s: reading response body: %w", r.op, err)
	}

	if !statusOK(resp.StatusCode, r.want) {
		return newAPIError(r.op, resp.StatusCode, body, r.kind)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", r.op, err)
	}
	return nil
}

func statusOK(status, want int) bool {
	if want == any2xx {
		return status >= 200 && status < 300
	}
	return status == want
}

// APIError is a non-success answer from the API.
type APIError struct {
	Op               string
	Status           int
	Message          string
	ValidationErrors []string
	kind             error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	s := fmt.Sprintf("%s: api error %d: %s", e.Op, e.Status, msg)
	if len(e.ValidationErrors) > 0 {
		s += "\n  " + strings.Join(e.ValidationErrors, "\n  ")
	}
	return s
}

// Unwrap returns model.ErrAuth or model.ErrRemote.
func (e *APIError) Unwrap() error {
	return e.kind
}

func newAPIError(op string, status int, body []byte, kind error) *APIError {
	var payload struct {
		Message          string   `json:"message"`
		ValidationErrors []string `json:"validationErrors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		payload.Message = strings.TrimSpace(string(body))
	}
	if kind == nil {
		kind = model.ErrRemote
	}
	return &APIError{
		Op:               op,
		Status:           status,
		Message:          payload.Message,
		ValidationErrors: payload.ValidationErrors,
		kind:             kind,
	}
}
