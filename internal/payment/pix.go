package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "vendazap/internal/errors"

	"go.uber.org/zap"
)

// ===========================================================================
// Pix Generator Client
// Calls the external Pix-code microservice with the merchant identity
// and the charge amount; gets back a shareable payment URL and the
// copy-and-paste code.
// ===========================================================================

// PixRequest is the generator call body
type PixRequest struct {
	KeyType   string `json:"key_type"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}

// PixResponse is the generator result
type PixResponse struct {
	ShareURL string `json:"share_url"`
	Code     string `json:"code"`
}

// PixGenerator generates Pix charges
type PixGenerator interface {
	Generate(ctx context.Context, req *PixRequest) (*PixResponse, error)
}

// pixClient implements PixGenerator over HTTP
type pixClient struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewPixClient creates a Pix generator client
func NewPixClient(url string, logger *zap.Logger) PixGenerator {
	return &pixClient{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Generate issues the generator call
func (c *pixClient) Generate(ctx context.Context, pixReq *PixRequest) (*PixResponse, error) {
	jsonBody, err := json.Marshal(pixReq)
	if err != nil {
		return nil, fmt.Errorf("marshal pix request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExternal, err.Error())
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("pix generate failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, apperrors.Wrap(apperrors.ErrExternal, fmt.Sprintf("pix api status %d", resp.StatusCode))
	}

	var result PixResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal pix response: %w", err)
	}

	return &result, nil
}
