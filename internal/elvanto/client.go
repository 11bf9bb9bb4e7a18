package elvanto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/isaaclee0/elvantoexport/internal/metrics"
)

const (
	// DefaultBaseURL is the public Elvanto API root.
	DefaultBaseURL = "https://api.elvanto.com/v1"

	defaultTimeout  = 60 * time.Second
	defaultPageSize = 100
)

// Client issues authenticated requests against the Elvanto API. The
// API key is passed per call and never stored. Paginated listings are
// always fetched to completion before returning; callers never see a
// partial page.
type Client struct {
	baseURL  string
	pageSize int
	http     *http.Client
	metrics  *metrics.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithPageSize sets the page size for paginated listings.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithMetrics attaches upstream-request counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Client for the given API root. An empty baseURL
// selects the public Elvanto endpoint.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:  baseURL,
		pageSize: defaultPageSize,
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request POSTs a JSON body to <base>/<endpoint>.json with HTTP basic
// auth (key as username, "x" as password, per the Elvanto docs) and
// decodes the response into out.
func (c *Client) request(ctx context.Context, apiKey, endpoint string, body map[string]any, out apiResponse) error {
	err := c.doRequest(ctx, apiKey, endpoint, body, out)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.ObserveUpstreamRequest(endpoint, outcome)
	return err
}

func (c *Client) doRequest(ctx context.Context, apiKey, endpoint string, body map[string]any, out apiResponse) error {
	if body == nil {
		body = map[string]any{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return &UpstreamError{Message: fmt.Sprintf("encode request: %v", err)}
	}

	url := fmt.Sprintf("%s/%s.json", c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &UpstreamError{Message: err.Error()}
	}
	req.SetBasicAuth(apiKey, "x")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UpstreamError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &CredentialError{Message: apiMessage(data, resp.Status)}
	case resp.StatusCode >= 400:
		return &UpstreamError{StatusCode: resp.StatusCode, Message: apiMessage(data, resp.Status)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &UpstreamError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("invalid JSON response: %v", err)}
	}
	return out.apiErr(resp.StatusCode)
}

// apiMessage pulls the Elvanto error message out of an error body,
// falling back to the HTTP status line.
func apiMessage(data []byte, fallback string) string {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return fallback
}

// PeopleCategories lists all person categories.
func (c *Client) PeopleCategories(ctx context.Context, apiKey string) ([]Category, error) {
	var resp categoriesResponse
	if err := c.request(ctx, apiKey, "people/categories/getAll", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories.Category, nil
}

// GroupCategories lists all group categories.
func (c *Client) GroupCategories(ctx context.Context, apiKey string) ([]Category, error) {
	var resp categoriesResponse
	if err := c.request(ctx, apiKey, "groups/categories/getAll", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories.Category, nil
}

// GroupsWithPeople lists every group with its people field populated.
func (c *Client) GroupsWithPeople(ctx context.Context, apiKey string) ([]Group, error) {
	return c.groups(ctx, apiKey, "people")
}

// GroupsWithCategories lists every group with its categories field
// populated.
func (c *Client) GroupsWithCategories(ctx context.Context, apiKey string) ([]Group, error) {
	return c.groups(ctx, apiKey, "categories")
}

func (c *Client) groups(ctx context.Context, apiKey, field string) ([]Group, error) {
	var all []Group
	for page := 1; ; page++ {
		var resp groupsResponse
		err := c.request(ctx, apiKey, "groups/getAll", map[string]any{
			"page":      page,
			"page_size": c.pageSize,
			"fields":    []string{field},
		}, &resp)
		if err != nil {
			return nil, err
		}

		batch := resp.Groups.Group
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)

		if donePaging(resp.Groups.pageInfo, len(batch), len(all), c.pageSize) {
			break
		}
	}
	return all, nil
}

// PeopleWithDepartments lists every person with their departments and
// demographics fields populated.
func (c *Client) PeopleWithDepartments(ctx context.Context, apiKey string) ([]PersonRecord, error) {
	var all []PersonRecord
	for page := 1; ; page++ {
		var resp peopleResponse
		err := c.request(ctx, apiKey, "people/getAll", map[string]any{
			"page":      page,
			"page_size": c.pageSize,
			"fields":    []string{"departments", "demographics"},
		}, &resp)
		if err != nil {
			return nil, err
		}

		batch := resp.People.Person
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)

		if donePaging(resp.People.pageInfo, len(batch), len(all), c.pageSize) {
			break
		}
	}
	return all, nil
}

// donePaging decides whether the last fetched page was the final one:
// either it came back short, or the running total covers everything
// the API reports.
func donePaging(info pageInfo, batchLen, totalFetched, pageSize int) bool {
	perPage := int(info.PerPage)
	if perPage == 0 {
		perPage = pageSize
	}
	onThisPage := int(info.OnThisPage)
	if onThisPage == 0 {
		onThisPage = batchLen
	}
	return onThisPage < perPage || totalFetched >= int(info.Total)
}
