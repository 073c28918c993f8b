// Package uploader sends files to the gallery gateway and reports per-file
// upload progress. The gateway variant measures real bytes on the wire; the
// direct-to-store variant in direct.go synthesizes a ramp instead.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// ProgressFunc receives upload progress as an integer percentage. Calls are
// monotonically non-decreasing; a successful upload always ends with 100.
type ProgressFunc func(percent int)

// Client uploads files through the gateway's POST /api/upload endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// NewWithHTTPClient allows substituting the transport, mainly for tests.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := New(baseURL)
	c.httpClient = httpClient
	return c
}

type uploadResult struct {
	Success bool   `json:"success"`
	FileKey string `json:"fileKey"`
	URL     string `json:"url"`
}

type uploadError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Upload sends one file as the multipart "file" field and returns the key the
// gateway stored it under. onProgress (optional) is fed byte-accurate
// percentages while the body is transmitted. Any failure is terminal: the
// client never retries, and no progress is reported past the error.
func (c *Client) Upload(ctx context.Context, fileName string, content io.Reader, contentType string, onProgress ProgressFunc) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("read %s: %w", fileName, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}

	reader := &progressReader{
		r:          &body,
		total:      int64(body.Len()),
		onProgress: onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", reader)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = reader.total

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", fileName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("upload %s: read response: %w", fileName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ue uploadError
		if json.Unmarshal(respBody, &ue) == nil && (ue.Message != "" || ue.Error != "") {
			msg := ue.Message
			if msg == "" {
				msg = ue.Error
			}
			return "", fmt.Errorf("upload %s failed: %s", fileName, msg)
		}
		return "", fmt.Errorf("upload %s failed with status %d", fileName, resp.StatusCode)
	}

	var result uploadResult
	if err := json.Unmarshal(respBody, &result); err != nil || result.FileKey == "" {
		return "", fmt.Errorf("upload %s: invalid response from server", fileName)
	}

	reader.finish()
	return result.FileKey, nil
}

// progressReader reports transmission progress as the transport drains the
// request body. Reported percentages never decrease and never exceed 100.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	last       int
	onProgress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if n > 0 {
		p.report(p.percent())
	}
	return n, err
}

func (p *progressReader) percent() int {
	if p.total <= 0 {
		return 100
	}
	pct := int(p.read * 100 / p.total)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// finish guarantees the terminal 100 even when the transport drained the body
// without a final Read call reaching 100.
func (p *progressReader) finish() {
	p.report(100)
}

func (p *progressReader) report(pct int) {
	if p.onProgress == nil || pct <= p.last {
		return
	}
	p.last = pct
	p.onProgress(pct)
}
