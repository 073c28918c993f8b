// Package aiclient talks to the external image AI service that performs
// segmentation and mask-based blurring.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
)

// ErrCallInFlight is returned when a call is attempted while another one on
// the same client has not finished. Calls are rejected, never queued.
var ErrCallInFlight = errors.New("image AI call already in flight")

// SegmentRequest asks the service to segment an image by text prompt.
// Exactly one of Image (base64 data URL) or ImageURL must be set.
type SegmentRequest struct {
	Image      string `json:"image,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	TextPrompt string `json:"textPrompt"`
}

// SegmentResult is the service's segmentation output.
type SegmentResult struct {
	Visualization string `json:"visualization"`
	MaskData      string `json:"maskData"`
}

// BlurRequest asks the service to blur the masked region of an image.
// Exactly one of Image or ImageURL must be set.
type BlurRequest struct {
	Image    string `json:"image,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	MaskData string `json:"maskData"`
}

// BlurResult is the service's blur output.
type BlurResult struct {
	Image string `json:"image"`
}

// Client is a single-slot client: one request at a time per instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	busy       atomic.Bool
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

// Segment runs segmentation for the given prompt.
func (c *Client) Segment(ctx context.Context, req SegmentRequest) (*SegmentResult, error) {
	if req.Image == "" && req.ImageURL == "" {
		return nil, errors.New("segment: image or imageUrl required")
	}
	var result SegmentResult
	if err := c.call(ctx, "/api/segment", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Blur blurs the masked region of an image.
func (c *Client) Blur(ctx context.Context, req BlurRequest) (*BlurResult, error) {
	if req.Image == "" && req.ImageURL == "" {
		return nil, errors.New("blur: image or imageUrl required")
	}
	var result BlurResult
	if err := c.call(ctx, "/api/blur", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) call(ctx context.Context, pathname string, payload, result any) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrCallInFlight
	}
	defer c.busy.Store(false)

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathname, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call image AI at %s%s: %w", c.baseURL, pathname, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("failed to call image AI at %s%s: %d %s - %s",
			c.baseURL, pathname, resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(text)))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
