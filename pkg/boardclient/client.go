// Package boardclient is a Go client for the board's REST API. It lets the
// list and status engine run against a remote service instead of local stores.
package boardclient

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

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/pkg/listx"
	"github.com/Abraxas-365/shiftboard/recruitment/application"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for baseURL. token is sent as a bearer token when set;
// a nil httpClient uses http.DefaultClient.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
	}
}

// WithToken returns a copy of the client using token
func (c *Client) WithToken(token string) *Client {
	out := *c
	out.token = strings.TrimSpace(token)
	return &out
}

// Export is a downloaded CSV file
type Export struct {
	FileName string
	Data     []byte
}

type errorResponse struct {
	Error   string         `json:"error"`
	Type    errx.Type      `json:"type"`
	Code    errx.Code      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// ListJobs fetches one page of the filtered job list
func (c *Client) ListJobs(ctx context.Context, filters listx.FilterState, page kernel.PaginationOptions) (*job.PaginatedJobsResponse, error) {
	var out job.PaginatedJobsResponse
	if err := c.getJSON(ctx, "/api/jobs", listQuery(filters, page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListApplications fetches one page of the filtered application list
func (c *Client) ListApplications(ctx context.Context, filters listx.FilterState, page kernel.PaginationOptions) (*application.PaginatedApplicationsResponse, error) {
	var out application.PaginatedApplicationsResponse
	if err := c.getJSON(ctx, "/api/applications", listQuery(filters, page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus moves an application to status. A nil note keeps the current one.
func (c *Client) UpdateStatus(ctx context.Context, id kernel.ApplicationID, status application.ApplicationStatus, note *string) (*application.ApplicationResponse, error) {
	if id.IsEmpty() {
		return nil, errx.New("application id is required", errx.TypeValidation)
	}
	body, err := json.Marshal(application.UpdateStatusRequest{Status: status, Note: note})
	if err != nil {
		return nil, fmt.Errorf("encode status request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPatch, "/api/applications/"+url.PathEscape(id.String())+"/status", nil, body)
	if err != nil {
		return nil, err
	}
	var out application.ApplicationResponse
	if err := json.Unmarshal(resp, &out); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &out, nil
}

// ExportCSV downloads the filtered application list as CSV
func (c *Client) ExportCSV(ctx context.Context, filters listx.FilterState) (*Export, error) {
	return c.download(ctx, "/api/applications/export", listx.ToQuery(filters))
}

// ExportJobsCSV downloads the filtered job list as CSV
func (c *Client) ExportJobsCSV(ctx context.Context, filters listx.FilterState) (*Export, error) {
	return c.download(ctx, "/api/jobs/export", listx.ToQuery(filters))
}

func (c *Client) download(ctx context.Context, path string, query url.Values) (*Export, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send export request: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, mapError(resp.StatusCode, data)
	}
	return &Export{FileName: attachmentName(resp.Header.Get("Content-Disposition")), Data: data}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapError(resp.StatusCode, data)
	}
	return data, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body []byte) (*http.Request, error) {
	if c.baseURL == "" {
		return nil, errx.New("base url is required", errx.TypeValidation)
	}
	target := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func listQuery(filters listx.FilterState, page kernel.PaginationOptions) url.Values {
	values := listx.ToQuery(filters)
	if page.Page > 0 {
		values.Set("page", strconv.Itoa(page.Page))
	}
	if page.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(page.PageSize))
	}
	return values
}

// mapError rebuilds the server's error body. Bodies that are not JSON keep
// the raw text as the message.
func mapError(status int, payload []byte) error {
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err != nil || parsed.Code == "" {
		message := strings.TrimSpace(string(payload))
		if message == "" {
			message = http.StatusText(status)
		}
		return &errx.Error{Code: "HTTP_ERROR", Type: errx.TypeExternal, Message: message, HTTPStatus: status}
	}
	message := parsed.Message
	if message == "" {
		message = parsed.Error
	}
	return &errx.Error{
		Code:       parsed.Code,
		Type:       parsed.Type,
		Message:    message,
		HTTPStatus: status,
		Details:    parsed.Details,
	}
}

func attachmentName(disposition string) string {
	_, rest, ok := strings.Cut(disposition, "filename=")
	if !ok {
		return ""
	}
	return strings.Trim(strings.TrimSpace(rest), `"`)
}
