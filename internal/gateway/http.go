package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	headerAccept        = "Accept"
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerUserAgent     = "User-Agent"
	contentTypeJSON     = "application/json"
	defaultUserAgent    = "futureintern-go/1.0"
)

// Request describes one API call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
	// Header values replace the defaults of the same name
	Header http.Header
}

// Response is a successful (2xx) reply.
type Response struct {
	StatusCode int
	Header     http.Header
	// Raw is the body as received
	Raw []byte
	// Data is the JSON payload with a {"success":..,"data":..} envelope
	// removed. It is nil when the body was empty or not JSON.
	Data json.RawMessage
}

// Decode unmarshals Data into v. An empty payload leaves v untouched.
func (r *Response) Decode(v interface{}) error {
	if r == nil || len(r.Data) == 0 || v == nil {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Upload is a file sent as multipart form data.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Do performs a JSON request.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	var bodyReader io.Reader
	if r.Body != nil {
		bodyBytes, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	header := http.Header{}
	header.Set(headerContentType, contentTypeJSON)
	for k, vs := range r.Header {
		header[http.CanonicalHeaderKey(k)] = vs
	}

	return c.send(ctx, r.Method, r.Path, r.Query, bodyReader, header)
}

// Upload sends file under the given form field together with any extra fields.
func (c *Client) Upload(ctx context.Context, path, field string, file Upload, fields map[string]string) (*Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}

	part, err := mw.CreateFormFile(field, file.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", file.Filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	header := http.Header{}
	header.Set(headerContentType, mw.FormDataContentType())

	return c.send(ctx, http.MethodPost, path, nil, &buf, header)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, header http.Header) (*Response, error) {
	reqURL, err := c.buildURL(path, query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = header
	if req.Header.Get(headerAccept) == "" {
		req.Header.Set(headerAccept, contentTypeJSON)
	}
	if req.Header.Get(headerUserAgent) == "" {
		req.Header.Set(headerUserAgent, c.userAgent)
	}
	if c.session != nil {
		token, ok, err := c.session.Load()
		if err != nil {
			return nil, err
		}
		if ok {
			req.Header.Set(headerAuthorization, "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, &NetworkError{Method: method, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: reqURL, Err: err}
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseError(resp.StatusCode, respBody)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Raw:        respBody,
		Data:       unwrapEnvelope(respBody),
	}, nil
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	base, err := url.Parse(strings.TrimRight(c.baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	rel, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("failed to parse path %q: %w", path, err)
	}

	u := base.JoinPath(rel.Path)
	q := rel.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// unwrapEnvelope returns nil for empty or non-JSON bodies, which count as an
// empty success.
func unwrapEnvelope(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil
	}

	if trimmed[0] == '{' {
		var env map[string]json.RawMessage
		if json.Unmarshal(trimmed, &env) == nil {
			_, hasSuccess := env["success"]
			if data, hasData := env["data"]; hasSuccess && hasData {
				return data
			}
		}
	}
	return json.RawMessage(trimmed)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return err
	}
	return resp.Decode(result)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return err
	}
	return resp.Decode(result)
}

func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
	if err != nil {
		return err
	}
	return resp.Decode(result)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
	return err
}

func (c *Client) upload(ctx context.Context, path, field string, file Upload, result interface{}) error {
	resp, err := c.Upload(ctx, path, field, file, nil)
	if err != nil {
		return err
	}
	return resp.Decode(result)
}
