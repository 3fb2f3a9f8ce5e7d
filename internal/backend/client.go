package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/munivisitas/gateway/internal/config"
	"github.com/munivisitas/gateway/internal/observability"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

const defaultRetryWaitMax = 3 * time.Second

// Client is the typed wrapper around the municipal REST backend. It owns no
// state besides connection settings; every call is scoped explicitly by the
// caller (acting office, acting user), never by an ambient snapshot.
type Client struct {
	http          *http.Client
	baseURL       string
	uploadBaseURL string
	logger        *zap.Logger
	metrics       *observability.Metrics
}

// NewClient builds a backend client with capped retries. Only transport
// errors are retried; a response from the backend is final so mutations are
// never replayed.
func NewClient(cfg config.BackendConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryAttempts
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Timeout()
	retryClient.Logger = nil
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}
		return false, nil
	}

	return &Client{
		http:          retryClient.StandardClient(),
		baseURL:       cfg.BaseURL,
		uploadBaseURL: cfg.UploadBaseURL,
		logger:        logger,
		metrics:       metrics,
	}
}

// UploadURL resolves a stored photo reference against the upload host.
func (c *Client) UploadURL(ref string) string {
	if ref == "" {
		return ""
	}
	return c.uploadBaseURL + "/" + ref
}

// Page is one page of a backend filter endpoint.
type Page[T any] struct {
	Items []T
	Total int
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type pagedEnvelope[T any] struct {
	Data struct {
		Items []T `json:"data"`
		Total int `json:"total"`
	} `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.RecordUpstream(method+" "+path, time.Since(start))
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("backend request: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		payload, _ := io.ReadAll(resp.Body)
		return nil, mapStatusError(resp.StatusCode, payload)
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, "application/json", body)
}

func decodeInto[T any](resp *http.Response) (T, error) {
	var envelope dataEnvelope[T]
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		var zero T
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return envelope.Data, nil
}

func getData[T any](ctx context.Context, c *Client, path string) (T, error) {
	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeInto[T](resp)
}

func getPaged[T any](ctx context.Context, c *Client, path string, page, limit int) (Page[T], error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s?page=%d&limit=%d", path, page, limit), "", nil)
	if err != nil {
		return Page[T]{}, err
	}
	defer resp.Body.Close()

	var envelope pagedEnvelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Page[T]{}, fmt.Errorf("decode response: %w", err)
	}
	return Page[T]{Items: envelope.Data.Items, Total: envelope.Data.Total}, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload any) error {
	resp, err := c.doJSON(ctx, method, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
