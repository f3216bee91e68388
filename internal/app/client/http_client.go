package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/exp/slog"

	"otsshare/internal/app/client/config"
	"otsshare/internal/domain/record"
)

var (
	// ErrSecretGone means the record was never stored, has expired or was already read.
	ErrSecretGone = errors.New("secret does not exist, has expired or was already read")
	ErrServer     = errors.New("server error")
)

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func newHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	return &httpClient{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		log:       log.With("component", "http_client"),
		baseURL:   cfg.BaseURL(),
		userAgent: "otsshare-cli/1.0",
	}
}

func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) CreateRecord(ctx context.Context, req record.CreateRequest) (*record.Record, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/records", req)
	if err != nil {
		return nil, err
	}

	var rec record.Record
	if err := h.parseResponse(resp, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (h *httpClient) GetRecord(ctx context.Context, id string) (*record.Record, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/records/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var rec record.Record
	if err := h.parseResponse(resp, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	h.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	h.log.Debug("received response", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode == http.StatusNotFound {
		return ErrSecretGone
	}
	if resp.StatusCode >= 400 {
		// huma error model
		var errResp struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("%w: %d %s", ErrServer, resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
