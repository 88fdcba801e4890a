package intent

import (
	"fmt"
	"strconv"
	"strings"

	"vendazap/internal/nlu"
)

// ===========================================================================
// Conversation
// The capability handed to intent handlers: read access to the current
// dialogue slot snapshot, reply accumulation, and context persistence
// for the next turn. One Conversation lives for one webhook request.
// ===========================================================================

// Conversation is the handler-facing view of one fulfillment request
type Conversation interface {
	// AddText appends a text reply segment
	AddText(text string)

	// AddMedia appends a media reply segment with optional caption
	AddMedia(mediaURL, caption string)

	// AddMessages appends prebuilt segments, preserving their order
	AddMessages(messages []nlu.Message)

	// Parameters returns the current dialogue slot values
	Parameters() map[string]interface{}

	// SetContext persists slot values into the next dialogue turn
	SetContext(name string, lifespan int, params map[string]interface{})

	// Session returns the caller's session key (the sender phone number)
	Session() string

	// Response returns the accumulated reply body
	Response() *nlu.WebhookResponse
}

// conversation implements Conversation over one webhook request
type conversation struct {
	req      *nlu.WebhookRequest
	response nlu.WebhookResponse
}

// NewConversation wraps a webhook request
func NewConversation(req *nlu.WebhookRequest) Conversation {
	return &conversation{req: req}
}

// AddText appends a text reply segment
func (c *conversation) AddText(text string) {
	c.response.FulfillmentMessages = append(c.response.FulfillmentMessages, nlu.NewTextMessage(text))
}

// AddMedia appends a media reply segment
func (c *conversation) AddMedia(mediaURL, caption string) {
	c.response.FulfillmentMessages = append(c.response.FulfillmentMessages, nlu.NewMediaMessage(mediaURL, caption))
}

// AddMessages appends prebuilt segments in order
func (c *conversation) AddMessages(messages []nlu.Message) {
	c.response.FulfillmentMessages = append(c.response.FulfillmentMessages, messages...)
}

// Parameters returns the slot snapshot: the first active context's
// parameters when one exists (slots collected across turns live there),
// otherwise the current turn's own parameters
func (c *conversation) Parameters() map[string]interface{} {
	if len(c.req.QueryResult.OutputContexts) > 0 && c.req.QueryResult.OutputContexts[0].Parameters != nil {
		return c.req.QueryResult.OutputContexts[0].Parameters
	}
	return c.req.QueryResult.Parameters
}

// SetContext persists slot values into the next turn. The platform
// expects context names scoped under the session path.
func (c *conversation) SetContext(name string, lifespan int, params map[string]interface{}) {
	c.response.OutputContexts = append(c.response.OutputContexts, nlu.Context{
		Name:          fmt.Sprintf("%s/contexts/%s", c.req.Session, name),
		LifespanCount: lifespan,
		Parameters:    params,
	})
}

// Session returns the last segment of the platform session path, which
// this agent keys by sender phone number
func (c *conversation) Session() string {
	parts := strings.Split(c.req.Session, "/")
	return parts[len(parts)-1]
}

// Response returns the accumulated reply body
func (c *conversation) Response() *nlu.WebhookResponse {
	return &c.response
}

// ===========================================================================
// Slot helpers
// The platform sends slot values with loose typing: numbers arrive as
// float64, sometimes as strings, names sometimes as structured objects.
// ===========================================================================

// StringParam reads a slot as a string
func StringParam(params map[string]interface{}, key string) string {
	value, ok := params[key]
	if !ok || value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]interface{}:
		// sys.person slots arrive as {"name": "..."}
		if name, ok := v["name"].(string); ok {
			return name
		}
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IntParam reads a slot as an int, zero when absent or malformed
func IntParam(params map[string]interface{}, key string) int {
	value, ok := params[key]
	if !ok || value == nil {
		return 0
	}

	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
