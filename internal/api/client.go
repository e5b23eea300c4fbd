package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"unifiedlist/internal/auth"
	"unifiedlist/internal/config"
)

// Client talks to one REST resource.
type Client struct {
	http    *http.Client
	baseURL string
	store   auth.Store
	csrf    config.CSRF
	now     func() time.Time
	metrics *Metrics
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default limiting client. Its requests are not
// counted, so Metrics returns nil afterwards.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
		c.metrics = nil
	}
}

// WithCSRF adds the header/value pair to every JSON request.
func WithCSRF(csrf config.CSRF) Option { return func(c *Client) { c.csrf = csrf } }

// WithClock overrides the time source used for export cache busting.
func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

// New returns a client for the resource at baseURL.
func New(baseURL string, store auth.Store, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	topts := DefaultTransportOptions()
	c := &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: NewLimiterTransport(topts),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		now:     time.Now,
		metrics: topts.Metrics,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewFromConfig wires a client from the list configuration.
func NewFromConfig(cfg config.Config, store auth.Store, opts ...Option) *Client {
	opts = append([]Option{WithCSRF(cfg.CSRF)}, opts...)
	return New(cfg.APIURL, store, cfg.Timeout, opts...)
}

// Metrics exposes the transport counters, nil after WithHTTPClient.
func (c *Client) Metrics() *Metrics { return c.metrics }

// BaseURL returns the resource endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// ---------- request builder ----------

// newJSONRequest builds an API call: JSON content type, the CSRF pair when
// configured and the bearer token when one is stored. Missing credentials
// only mean the request goes out unauthenticated.
func (c *Client) newJSONRequest(ctx context.Context, method, u string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.csrf.Enabled() {
		req.Header.Set(c.csrf.Header, c.csrf.Token)
	}
	c.setBearer(req)
	return req, nil
}

// newDownloadRequest carries the bearer token only: it is a file download,
// not an API call.
func (c *Client) newDownloadRequest(ctx context.Context, u string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.setBearer(req)
	return req, nil
}

func (c *Client) setBearer(req *http.Request) {
	if c.store == nil {
		return
	}
	if tok := c.store.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// do sends req and maps 401 and other non-2xx answers to errors. On success
// the caller owns the response body.
func (c *Client) do(req *http.Request, op Op) (*http.Response, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if res.StatusCode == http.StatusUnauthorized {
		drain(res)
		return nil, fmt.Errorf("%s: %w", op, ErrSessionExpired)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		drain(res)
		return nil, &StatusError{Op: op, Code: res.StatusCode, Status: res.Status}
	}
	return res, nil
}

func drain(res *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))
	res.Body.Close()
}

func decode(res *http.Response, op Op, v any) error {
	defer res.Body.Close()
	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) recordURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}

// ---------- list ----------

// List fetches one page of records matching search.
func (c *Client) List(ctx context.Context, page int, search string) (ListResponse, error) {
	if page < 0 {
		page = 0
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(config.PageSize))
	q.Set("search", search)
	req, err := c.newJSONRequest(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return ListResponse{}, err
	}
	res, err := c.do(req, OpList)
	if err != nil {
		return ListResponse{}, err
	}
	var out ListResponse
	if err := decode(res, OpList, &out); err != nil {
		return ListResponse{}, err
	}
	if out.Content == nil {
		out.Content = []Record{}
	}
	return out, nil
}

// ---------- single record ----------

// Get fetches one record. A nil Record with a nil error means the server
// answered with an empty or null body; an empty object is still a record.
func (c *Client) Get(ctx context.Context, id string) (Record, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, c.recordURL(id), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.do(req, OpDetail)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := decode(res, OpDetail, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Create posts a new record.
func (c *Client) Create(ctx context.Context, rec Record) (MutationResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, c.baseURL, rec)
	if err != nil {
		return MutationResult{}, err
	}
	return c.mutate(req, OpCreate)
}

// Update replaces the editable fields of record id.
func (c *Client) Update(ctx context.Context, id string, rec Record) (MutationResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, c.recordURL(id), rec)
	if err != nil {
		return MutationResult{}, err
	}
	return c.mutate(req, OpUpdate)
}

// Delete removes all ids in one request. The server applies it as a whole or
// not at all.
func (c *Client) Delete(ctx context.Context, ids []int64) (MutationResult, error) {
	if ids == nil {
		ids = []int64{}
	}
	req, err := c.newJSONRequest(ctx, http.MethodDelete, c.baseURL, ids)
	if err != nil {
		return MutationResult{}, err
	}
	return c.mutate(req, OpDelete)
}

func (c *Client) mutate(req *http.Request, op Op) (MutationResult, error) {
	res, err := c.do(req, op)
	if err != nil {
		return MutationResult{}, err
	}
	var out MutationResult
	if err := decode(res, op, &out); err != nil {
		return MutationResult{}, err
	}
	return out, nil
}

// ---------- export ----------

// Download is a streamed export. The caller closes Body.
type Download struct {
	Filename string
	Body     io.ReadCloser
}

// ExportURL builds the spreadsheet URL; t only defeats intermediate caches.
func (c *Client) ExportURL(search string) string {
	q := url.Values{}
	q.Set("search", search)
	q.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	return c.baseURL + "/excel?" + q.Encode()
}

// Export starts the spreadsheet download for the current search.
func (c *Client) Export(ctx context.Context, search, defaultName string) (*Download, error) {
	req, err := c.newDownloadRequest(ctx, c.ExportURL(search))
	if err != nil {
		return nil, err
	}
	res, err := c.do(req, OpExport)
	if err != nil {
		return nil, err
	}
	return &Download{
		Filename: FilenameFromDisposition(res.Header.Get("Content-Disposition"), defaultName),
		Body:     res.Body,
	}, nil
}
