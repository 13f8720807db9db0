// Package api is a thin authenticated HTTP client for the muayene
// backend. It normalizes success detection and decodes the backend's
// JSON envelope once, at this boundary.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"go.uber.org/zap"
)

// File is a multipart upload payload.
type File struct {
	Field    string
	Name     string
	Content  []byte
	MIMEType string
}

// Client issues requests against the backend base URL. One Client is
// shared by all steps of a run; connection reuse is whatever the
// underlying http.Client provides.
type Client struct {
	base   string
	http   *http.Client
	logger *zap.Logger
}

// New creates a client for the given base URL. A nil logger disables
// request logging.
func New(base string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return &Client{base: base, http: &http.Client{}, logger: logger}
}

// Get performs an authenticated GET. Query values may be nil.
func (c *Client) Get(path string, token string, query url.Values) (*Response, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req, token, "")
}

// Post performs a POST with an optional JSON body.
func (c *Client) Post(path string, body any, token string) (*Response, error) {
	return c.send(http.MethodPost, path, body, token)
}

// Put performs a PUT with an optional JSON body.
func (c *Client) Put(path string, body any, token string) (*Response, error) {
	return c.send(http.MethodPut, path, body, token)
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(path string, token string) (*Response, error) {
	req, err := http.NewRequest(http.MethodDelete, c.base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req, token, "")
}

// PostMultipart performs a POST with file payloads. The request carries
// a multipart content type, never application/json; fields are sent as
// plain form fields alongside the file parts.
func (c *Client) PostMultipart(path string, fields map[string]string, files []File, token string) (*Response, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write form field %q: %w", k, err)
		}
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Name))
		if f.MIMEType != "" {
			header.Set("Content-Type", f.MIMEType)
		}
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("create form file %q: %w", f.Name, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, fmt.Errorf("write form file %q: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.base+path, buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req, token, w.FormDataContentType())
}

func (c *Client) send(method, path string, body any, token string) (*Response, error) {
	var reader io.Reader
	if body == nil {
		body = map[string]any{}
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	reader = bytes.NewReader(encoded)

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req, token, "application/json")
}

func (c *Client) do(req *http.Request, token, contentType string) (*Response, error) {
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode))

	return newResponse(resp.StatusCode, resp.Header, raw), nil
}
