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
// Boleto Generator Client
// Calls the external bank-slip microservice. The generator's field names
// are its own (Portuguese) API contract and are kept verbatim.
// ===========================================================================

// BoletoRequest is the generator call body
type BoletoRequest struct {
	Bank           string `json:"bank"`
	Valor          string `json:"valor"`
	DataDocumento  string `json:"data_documento"`
	DataVencimento string `json:"data_vencimento"`
	Agencia        string `json:"agencia"`
	LocalPagamento string `json:"local_pagamento"`
	Cedente        string `json:"cedente"`
	DocCedente     string `json:"documento_cedente"`
	Sacado         string `json:"sacado"`
	DocSacado      string `json:"documento_sacado"`
	ContaCorrente  string `json:"conta_corrente"`
	Convenio       string `json:"convenio"`
	NossoNumero    string `json:"nosso_numero"`
}

// BoletoResponse is the generator result
type BoletoResponse struct {
	URL string `json:"url"`
}

// BoletoGenerator generates bank slips
type BoletoGenerator interface {
	Generate(ctx context.Context, req *BoletoRequest) (*BoletoResponse, error)
}

// boletoClient implements BoletoGenerator over HTTP
type boletoClient struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewBoletoClient creates a boleto generator client
func NewBoletoClient(url string, logger *zap.Logger) BoletoGenerator {
	return &boletoClient{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Generate issues the generator call
func (c *boletoClient) Generate(ctx context.Context, boletoReq *BoletoRequest) (*BoletoResponse, error) {
	jsonBody, err := json.Marshal(boletoReq)
	if err != nil {
		return nil, fmt.Errorf("marshal boleto request: %w", err)
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
		c.logger.Error("boleto generate failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, apperrors.Wrap(apperrors.ErrExternal, fmt.Sprintf("boleto api status %d", resp.StatusCode))
	}

	var result BoletoResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal boleto response: %w", err)
	}

	return &result, nil
}
