package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/xh3b4sd/tracer"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultVersion = "2022-06-28"
)

type Interface interface {
	QueryDatabase(ctx context.Context, databaseID string, q Query) (*PageList, error)
	RetrievePage(ctx context.Context, pageID string) (*Page, error)
	ListChildren(ctx context.Context, blockID string, cursor string, pageSize int) (*BlockList, error)
}

type ClientConfig struct {
	HTTPClient *http.Client

	BaseURL string
	Timeout time.Duration
	Token   string
	Version string
}

type Client struct {
	httpClient *http.Client

	baseURL string
	token   string
	version string
}

func NewClient(config ClientConfig) (*Client, error) {
	if config.Token == "" {
		return nil, tracer.Maskf(invalidConfigError, "%T.Token must not be empty", config)
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Version == "" {
		config.Version = DefaultVersion
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	c := &Client{
		httpClient: config.HTTPClient,

		baseURL: config.BaseURL,
		token:   config.Token,
		version: config.Version,
	}

	return c, nil
}

func (c *Client) QueryDatabase(ctx context.Context, databaseID string, q Query) (*PageList, error) {
	var l PageList

	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/databases/%s/query", url.PathEscape(databaseID)), q, &l)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return &l, nil
}

func (c *Client) RetrievePage(ctx context.Context, pageID string) (*Page, error) {
	var p Page

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pages/%s", url.PathEscape(pageID)), nil, &p)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	if p.Object == "error" {
		return nil, tracer.Maskf(notFoundError, "page %s", pageID)
	}

	return &p, nil
}

func (c *Client) ListChildren(ctx context.Context, blockID string, cursor string, pageSize int) (*BlockList, error) {
	var l BlockList

	var p string
	{
		v := url.Values{}
		v.Set("page_size", strconv.Itoa(pageSize))
		if cursor != "" {
			v.Set("start_cursor", cursor)
		}

		p = fmt.Sprintf("/blocks/%s/children?%s", url.PathEscape(blockID), v.Encode())
	}

	err := c.do(ctx, http.MethodGet, p, nil, &l)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return &l, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, res interface{}) error {
	var err error

	var rea io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return tracer.Mask(err)
		}

		rea = bytes.NewReader(b)
	}

	var req *http.Request
	{
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, rea)
		if err != nil {
			return tracer.Mask(err)
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Notion-Version", c.version)
		req.Header.Set("Content-Type", "application/json")
	}

	var rsp *http.Response
	{
		rsp, err = c.httpClient.Do(req)
		if err != nil {
			return tracer.Mask(err)
		}
		defer rsp.Body.Close()
	}

	var b []byte
	{
		b, err = io.ReadAll(rsp.Body)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	if rsp.StatusCode != http.StatusOK {
		var e apiError
		_ = json.Unmarshal(b, &e)

		if rsp.StatusCode == http.StatusNotFound {
			return tracer.Maskf(notFoundError, "%s %s: %s", method, path, e.Message)
		}

		return tracer.Maskf(requestFailedError, "%s %s: %d %s %s", method, path, rsp.StatusCode, e.Code, e.Message)
	}

	err = json.Unmarshal(b, res)
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}
