package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"vendazap/internal/config"
	apperrors "vendazap/internal/errors"

	"go.uber.org/zap"
)

// ===========================================================================
// Messaging Gateway Client
// Sends WhatsApp messages through the Twilio-compatible messaging API.
// One API call per message segment; callers send segments in sequence so
// the user receives them in the order the NLU produced them.
// ===========================================================================

// OutboundMessage is one message segment to deliver to a user
type OutboundMessage struct {
	// From is the bound business number (whatsapp:+55...)
	From string

	// To is the recipient number as received on the inbound webhook
	To string

	// Body is the text content; may be empty for media-only segments
	Body string

	// MediaURL is an optional media attachment
	MediaURL string
}

// SendResult reports the outcome of one send call
type SendResult struct {
	// SID is the message identifier assigned by the gateway
	SID string `json:"sid"`

	// Status is the gateway's initial delivery status
	Status string `json:"status"`
}

// Sender delivers outbound messages. The production implementation calls
// the gateway REST API; tests substitute a recording fake.
type Sender interface {
	SendMessage(ctx context.Context, msg *OutboundMessage) (*SendResult, error)
}

// Client implements Sender against the gateway REST API
type Client struct {
	baseURL    string
	accountSID string
	authToken  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a gateway client
func NewClient(cfg *config.GatewayConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// SendMessage issues one send-message call to the gateway
func (c *Client) SendMessage(ctx context.Context, msg *OutboundMessage) (*SendResult, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	form := url.Values{}
	form.Set("From", msg.From)
	form.Set("To", msg.To)
	form.Set("Body", msg.Body)
	if msg.MediaURL != "" {
		form.Set("MediaUrl", msg.MediaURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExternal, err.Error())
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("gateway send failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, apperrors.Wrap(apperrors.ErrExternal, fmt.Sprintf("gateway api status %d", resp.StatusCode))
	}

	var result SendResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal send response: %w", err)
	}

	c.logger.Info("gateway message sent",
		zap.String("to", msg.To),
		zap.String("sid", result.SID),
		zap.Bool("has_media", msg.MediaURL != ""),
	)

	return &result, nil
}

// sortedFormKeys returns form keys in lexical order, as the signature
// scheme requires
func sortedFormKeys(form url.Values) []string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
