package nlu

// ===========================================================================
// NLU Wire Types
// JSON shapes exchanged with the NLU platform, both on the detect-intent
// REST call and on the fulfillment webhook it fires back at us.
// ===========================================================================

// Text is a plain text fulfillment segment; the platform sends the
// message variants as a one-element array
type Text struct {
	Text []string `json:"text"`
}

// CustomPayload carries non-text reply data. For this agent the only
// payload in use is a media attachment with optional caption.
type CustomPayload struct {
	MediaURL string `json:"mediaUrl,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Message is one ordered fulfillment segment: either Text or Payload is
// set, never both
type Message struct {
	Text    *Text          `json:"text,omitempty"`
	Payload *CustomPayload `json:"payload,omitempty"`
}

// NewTextMessage builds a plain text segment
func NewTextMessage(text string) Message {
	return Message{Text: &Text{Text: []string{text}}}
}

// NewMediaMessage builds a media segment with optional caption
func NewMediaMessage(mediaURL, caption string) Message {
	return Message{Payload: &CustomPayload{MediaURL: mediaURL, Text: caption}}
}

// PlainText returns the text content of a segment, or "" for media
func (m Message) PlainText() string {
	if m.Text == nil || len(m.Text.Text) == 0 {
		return ""
	}
	return m.Text.Text[0]
}

// Intent identifies the matched intent
type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Context is a dialogue context carrying slot values across turns
type Context struct {
	Name          string                 `json:"name"`
	LifespanCount int                    `json:"lifespanCount,omitempty"`
	Parameters    map[string]interface{} `json:"parameters,omitempty"`
}

// QueryResult is the understood result for one user utterance
type QueryResult struct {
	QueryText           string                 `json:"queryText"`
	Parameters          map[string]interface{} `json:"parameters"`
	FulfillmentText     string                 `json:"fulfillmentText"`
	FulfillmentMessages []Message              `json:"fulfillmentMessages"`
	OutputContexts      []Context              `json:"outputContexts"`
	Intent              Intent                 `json:"intent"`
	LanguageCode        string                 `json:"languageCode"`
}

// ===========================================================================
// Detect Intent (outbound REST call)
// ===========================================================================

// TextInput is the user utterance sent for understanding
type TextInput struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

// QueryInput wraps the input variants; only text is used here
type QueryInput struct {
	Text TextInput `json:"text"`
}

// DetectIntentRequest is the detect-intent call body
type DetectIntentRequest struct {
	QueryInput QueryInput `json:"queryInput"`
}

// DetectIntentResponse is the detect-intent call result
type DetectIntentResponse struct {
	ResponseID  string      `json:"responseId"`
	QueryResult QueryResult `json:"queryResult"`
}

// ===========================================================================
// Fulfillment Webhook (inbound from the platform)
// ===========================================================================

// WebhookRequest is what the platform POSTs when an intent with
// fulfillment enabled matches
type WebhookRequest struct {
	ResponseID  string      `json:"responseId"`
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

// WebhookResponse is the reply body the platform expects: the ordered
// reply segments plus any contexts to persist into the next turn
type WebhookResponse struct {
	FulfillmentMessages []Message `json:"fulfillmentMessages"`
	OutputContexts      []Context `json:"outputContexts,omitempty"`
}
