package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"golang.org/x/oauth2/google"

	"github.com/Clau791/Drive-search-with-AI-extended/pkg/types"
)

const (
	// DefaultBaseURL is the Drive v3 REST endpoint.
	DefaultBaseURL = "https://www.googleapis.com/drive/v3"

	// ScopeReadonly is the OAuth2 scope the client requests.
	ScopeReadonly = "https://www.googleapis.com/auth/drive.readonly"

	// DefaultPageSize bounds a single listing page.
	DefaultPageSize = 100

	// MaxPageSize is the Drive API ceiling for files.list.
	MaxPageSize = 1000

	// listFields selects the metadata the client consumes.
	listFields = "nextPageToken,files(id,name,mimeType,webViewLink,createdTime,modifiedTime)"
)

// Common errors
var (
	ErrNoCredentials = errors.New("no Drive credentials configured")
	ErrNotFound      = errors.New("file not found")
)

// ListRequest parameterizes one files.list call.
type ListRequest struct {
	Query     Query
	OrderBy   string // e.g. "modifiedTime desc"; empty for API default
	PageSize  int    // 0 uses DefaultPageSize
	PageToken string
}

// ListPage is one page of listing results plus the continuation token.
type ListPage struct {
	Files         []types.RemoteFileSummary
	NextPageToken string
}

// Client is the remote metadata store the core consumes: list file metadata
// and fetch raw content by id.
type Client interface {
	// List returns a single bounded page of file metadata.
	List(ctx context.Context, req ListRequest) (*ListPage, error)

	// ListAll paginates until the continuation token is empty, returning
	// the exhaustive listing. Reconciliation must see every remote file.
	ListAll(ctx context.Context, req ListRequest) ([]types.RemoteFileSummary, error)

	// Download fetches the raw bytes of a file.
	Download(ctx context.Context, id string) ([]byte, error)
}

// RESTClient talks to the Drive v3 REST API directly over HTTP.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a RESTClient.
type Option func(*RESTClient)

// WithBaseURL overrides the API endpoint. Used by tests to point the client
// at a fake server.
func WithBaseURL(u string) Option {
	return func(c *RESTClient) { c.baseURL = u }
}

// WithHTTPClient supplies a pre-authenticated HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *RESTClient) { c.httpClient = hc }
}

// NewRESTClient creates a Drive client with the given options. Without an
// explicit HTTP client, requests are unauthenticated and will only work
// against public files or a test server.
func NewRESTClient(opts ...Option) *RESTClient {
	c := &RESTClient{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewServiceAccountClient creates a Drive client authenticated with a
// service account key file, requesting the read-only scope.
func NewServiceAccountClient(ctx context.Context, keyFile string) (*RESTClient, error) {
	if keyFile == "" {
		return nil, ErrNoCredentials
	}

	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read service account key: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, ScopeReadonly)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}

	return NewRESTClient(WithHTTPClient(conf.Client(ctx))), nil
}

// List implements a single files.list round trip.
func (c *RESTClient) List(ctx context.Context, req ListRequest) (*ListPage, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	params := url.Values{}
	params.Set("q", req.Query.Expression())
	params.Set("fields", listFields)
	params.Set("pageSize", strconv.Itoa(pageSize))
	if req.OrderBy != "" {
		params.Set("orderBy", req.OrderBy)
	}
	if req.PageToken != "" {
		params.Set("pageToken", req.PageToken)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("drive list: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("drive list error %d: %s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		NextPageToken string                    `json:"nextPageToken"`
		Files         []types.RemoteFileSummary `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	return &ListPage{
		Files:         apiResp.Files,
		NextPageToken: apiResp.NextPageToken,
	}, nil
}

// ListAll iterates pages until the remote store reports no continuation.
func (c *RESTClient) ListAll(ctx context.Context, req ListRequest) ([]types.RemoteFileSummary, error) {
	var all []types.RemoteFileSummary

	req.PageToken = ""
	for {
		page, err := c.List(ctx, req)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Files...)

		if page.NextPageToken == "" {
			return all, nil
		}
		req.PageToken = page.NextPageToken
	}
}

// Download fetches raw file content via alt=media.
func (c *RESTClient) Download(ctx context.Context, id string) ([]byte, error) {
	u := c.baseURL + "/files/" + url.PathEscape(id) + "?alt=media"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("drive download: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("drive download error %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download body: %w", err)
	}
	return data, nil
}
