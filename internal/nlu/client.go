package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vendazap/internal/config"
	apperrors "vendazap/internal/errors"

	"go.uber.org/zap"
)

// ===========================================================================
// NLU Client
// Calls the platform's detect-intent endpoint synchronously. The session
// is keyed by (project id, sender phone number) so the platform keeps
// per-user dialogue state; this service stores none of it.
// ===========================================================================

// Detector resolves a user utterance into ordered fulfillment messages
type Detector interface {
	DetectIntent(ctx context.Context, sessionID, text string) ([]Message, error)
}

// Client implements Detector against the NLU REST API
type Client struct {
	baseURL      string
	projectID    string
	accessToken  string
	languageCode string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewClient creates an NLU client
func NewClient(cfg *config.NLUConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		projectID:    cfg.ProjectID,
		accessToken:  cfg.AccessToken,
		languageCode: cfg.LanguageCode,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		logger:       logger,
	}
}

// DetectIntent sends the utterance and returns the fulfillment segments
// in the order the platform produced them
func (c *Client) DetectIntent(ctx context.Context, sessionID, text string) ([]Message, error) {
	endpoint := fmt.Sprintf(
		"%s/v2/projects/%s/agent/sessions/%s:detectIntent",
		c.baseURL, c.projectID, url.PathEscape(sessionID),
	)

	reqBody := DetectIntentRequest{
		QueryInput: QueryInput{
			Text: TextInput{
				Text:         text,
				LanguageCode: c.languageCode,
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal detect intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExternal, err.Error())
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("detect intent failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, apperrors.Wrap(apperrors.ErrExternal, fmt.Sprintf("nlu api status %d", resp.StatusCode))
	}

	var result DetectIntentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal detect intent response: %w", err)
	}

	c.logger.Debug("intent detected",
		zap.String("session", sessionID),
		zap.String("intent", result.QueryResult.Intent.DisplayName),
		zap.Int("segments", len(result.QueryResult.FulfillmentMessages)),
	)

	return result.QueryResult.FulfillmentMessages, nil
}

// SessionID derives the NLU session identifier from the sender's phone
// number. The gateway prefixes numbers with "whatsapp:"; the raw number
// keeps one session per user.
func SessionID(from string) string {
	return strings.TrimPrefix(from, "whatsapp:")
}
