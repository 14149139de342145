// Package api provides a typed client for the document-generation API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/docorator/internal/session"
	"github.com/jonathan/docorator/internal/types"
)

// Media types returned by the download endpoints.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Blob is a binary document returned by the API.
type Blob struct {
	Data        []byte
	ContentType string
	// Filename is taken from Content-Disposition when the server sends one.
	Filename string
}

// Client calls the API. Authenticated endpoints go through the session
// manager; login uses the plain HTTP client.
type Client struct {
	baseURL *url.URL
	session *session.Manager
	http    session.Doer
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string, sess *session.Manager, httpClient session.Doer) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, session: sess, http: httpClient}, nil
}

// Session returns the session manager used for authenticated calls.
func (c *Client) Session() *session.Manager {
	return c.session
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.session.Send(ctx, req)
}

func (c *Client) getJSON(ctx context.Context, path, fallback string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !statusOK(resp.StatusCode) {
		return newError(resp, fallback)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return unexpected("failed to decode "+path+" response", err)
	}
	return nil
}

func readBlob(resp *http.Response) (*Blob, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document body: %w", err)
	}
	blob := &Blob{Data: data, ContentType: resp.Header.Get("Content-Type")}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			blob.Filename = params["filename"]
		}
	}
	return blob, nil
}

// Generate submits a payload to POST /generate and returns the rendered document.
func (c *Client) Generate(ctx context.Context, p types.Payload) (*Blob, error) {
	resp, err := c.do(ctx, http.MethodPost, "/generate", nil, p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !statusOK(resp.StatusCode) {
		return nil, newError(resp, "Generation failed")
	}
	return readBlob(resp)
}

// GetDocument fetches a previously generated document's record, including its stored input data.
func (c *Client) GetDocument(ctx context.Context, id string) (*types.DocumentRecord, error) {
	var rec types.DocumentRecord
	if err := c.getJSON(ctx, "/dashboard/doc/"+url.PathEscape(id), "Document not found", &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListDocuments returns the user's documents, newest first.
func (c *Client) ListDocuments(ctx context.Context) ([]types.DocumentRecord, error) {
	var recs []types.DocumentRecord
	if err := c.getJSON(ctx, "/dashboard/documents", "Failed to list documents", &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// DeleteDocument removes a document and its files.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/dashboard/delete/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !statusOK(resp.StatusCode) {
		return newError(resp, "Failed to delete document")
	}
	return nil
}

// Download fetches a stored document in the given format ("pdf" or "docx").
func (c *Client) Download(ctx context.Context, id, format string) (*Blob, error) {
	resp, err := c.do(ctx, http.MethodGet, "/dashboard/download/"+url.PathEscape(id), url.Values{"format": {format}}, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !statusOK(resp.StatusCode) {
		return nil, newError(resp, "Download failed")
	}
	return readBlob(resp)
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*types.UserProfile, error) {
	var user types.UserProfile
	if err := c.getJSON(ctx, "/auth/me", "Failed to load profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for an access token. The token is not stored;
// callers hand it to the session manager.
func (c *Client) Login(ctx context.Context, r types.LoginRequest) (string, error) {
	if err := r.Validate(); err != nil {
		return "", fmt.Errorf("invalid login request: %w", err)
	}

	form := url.Values{"username": {r.Email}, "password": {r.Password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/auth/login", nil), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("POST /auth/login: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !statusOK(resp.StatusCode) {
		return "", newError(resp, "Login failed")
	}

	var out types.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", unexpected("failed to decode login response", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login response did not contain an access token")
	}
	return out.AccessToken, nil
}
