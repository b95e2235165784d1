package censusapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/interfaces"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

const defaultBaseURL = "https://api.census.gov/data"

// Client calls the Census data API. The API returns a JSON array of
// arrays where the first row holds column names.
type Client struct {
	baseURL string
	apiKey  string
	http    *resty.Client
}

var _ interfaces.CensusAPI = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithAPIKey attaches a Census API key to every request. Most datasets
// work without one at low volume.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient replaces the underlying resty client.
func WithHTTPClient(hc *resty.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a data API client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    resty.New().SetHeader("User-Agent", "tigerline"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get runs a query against the data API and returns the result as a
// table. When req.ReturnGEOID is set the geography identifier columns
// are collapsed into a single GEOID column.
func (c *Client) Get(ctx context.Context, req model.CensusRequest) (*model.Table, error) {
	if req.Dataset == "" {
		return nil, goerr.New("dataset is required")
	}
	if len(req.Variables) == 0 {
		return nil, goerr.New("at least one variable is required")
	}

	endpoint := c.baseURL
	if req.Year > 0 {
		endpoint = fmt.Sprintf("%s/%d/%s", c.baseURL, req.Year, req.Dataset)
	} else {
		endpoint = fmt.Sprintf("%s/%s", c.baseURL, req.Dataset)
	}

	r := c.http.R().
		SetContext(ctx).
		SetQueryParam("get", strings.Join(req.Variables, ","))
	for k, v := range req.Params {
		r.SetQueryParam(k, v)
	}
	if c.apiKey != "" {
		r.SetQueryParam("key", c.apiKey)
	}

	resp, err := r.Get(endpoint)
	if err != nil {
		return nil, goerr.Wrap(err, "data API request failed", goerr.Value("endpoint", endpoint))
	}
	if resp.StatusCode() != 200 {
		// The API reports query mistakes as plain-text bodies.
		return nil, goerr.New("data API returned an error",
			goerr.Value("status", resp.StatusCode()),
			goerr.Value("body", strings.TrimSpace(resp.String())))
	}

	var rows [][]string
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, goerr.Wrap(err, "parsing data API response",
			goerr.Value("endpoint", endpoint))
	}
	if len(rows) == 0 {
		return nil, goerr.New("data API returned an empty result")
	}

	table := &model.Table{Columns: rows[0], Rows: rows[1:]}
	if req.ReturnGEOID {
		return assembleGEOID(table)
	}
	return table, nil
}

// assembleGEOID concatenates the geography identifier columns, which
// the API appends starting at "state", into one GEOID column and drops
// the constituents.
func assembleGEOID(t *model.Table) (*model.Table, error) {
	start := t.ColumnIndex("state")
	if start < 0 {
		return nil, goerr.New("GEOID assembly requires a state column in the result",
			goerr.Value("columns", t.Columns))
	}

	idCols := t.Columns[start:]
	out := &model.Table{Columns: append([]string{}, t.Columns[:start]...)}
	out.Columns = append(out.Columns, "GEOID")
	for _, row := range t.Rows {
		if len(row) < len(t.Columns) {
			return nil, goerr.New("short row in data API result",
				goerr.Value("row", row))
		}
		geoid := strings.Join(row[start:start+len(idCols)], "")
		newRow := append([]string{}, row[:start]...)
		newRow = append(newRow, geoid)
		out.Rows = append(out.Rows, newRow)
	}
	return out, nil
}
