package intent

import (
	"context"
	"sync"

	"vendazap/internal/nlu"
)

// ===========================================================================
// Intent Dispatch
// The NLU platform resolves each utterance to a named intent; intents
// with fulfillment enabled land on our webhook. This registry maps the
// known intents to their handlers. Names the platform may send that we
// do not know resolve to IntentUnknown; the platform's own fallback
// intent covers the user-facing side of those.
// ===========================================================================

// Intent is the tagged set of intents this agent fulfills
type Intent int

const (
	// IntentUnknown any display name not listed below
	IntentUnknown Intent = iota

	// IntentWelcome greeting at the start of a conversation
	IntentWelcome

	// IntentFallback the platform's catch-all for unmatched utterances
	IntentFallback

	// IntentOrder slot collection for a purchase
	IntentOrder

	// IntentPayment terminal checkout step; routes on payment method
	IntentPayment
)

// Display names as configured on the NLU agent
const (
	displayWelcome  = "Default Welcome Intent"
	displayFallback = "Default Fallback Intent"
	displayOrder    = "Fazer Pedido"
	displayPayment  = "Finalizar Compra"
)

// Parse resolves the platform's intent display name
func Parse(displayName string) Intent {
	switch displayName {
	case displayWelcome:
		return IntentWelcome
	case displayFallback:
		return IntentFallback
	case displayOrder:
		return IntentOrder
	case displayPayment:
		return IntentPayment
	default:
		return IntentUnknown
	}
}

// String returns the intent name for logging
func (i Intent) String() string {
	switch i {
	case IntentWelcome:
		return "welcome"
	case IntentFallback:
		return "fallback"
	case IntentOrder:
		return "order"
	case IntentPayment:
		return "payment"
	default:
		return "unknown"
	}
}

// HandlerFunc fulfills one intent by accumulating replies on the
// conversation
type HandlerFunc func(ctx context.Context, conv Conversation) error

// Registry maps intents to handlers
type Registry struct {
	// mu guards handlers against concurrent access
	mu sync.RWMutex

	handlers map[Intent]HandlerFunc
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[Intent]HandlerFunc),
	}
}

// Register binds a handler to an intent, overwriting any previous one
func (r *Registry) Register(intent Intent, handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[intent] = handler
}

// Get returns the handler for an intent, if registered
func (r *Registry) Get(intent Intent) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, exists := r.handlers[intent]
	return handler, exists
}

// Count returns the number of registered handlers
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.handlers)
}

// Dispatch resolves the request's intent and runs its handler against a
// fresh conversation, returning the accumulated response. An unknown or
// unregistered intent yields an empty response, which tells the platform
// to use its own static replies.
func (r *Registry) Dispatch(ctx context.Context, req *nlu.WebhookRequest) (*nlu.WebhookResponse, Intent, error) {
	matched := Parse(req.QueryResult.Intent.DisplayName)

	handler, exists := r.Get(matched)
	if !exists {
		return &nlu.WebhookResponse{}, matched, nil
	}

	conv := NewConversation(req)
	if err := handler(ctx, conv); err != nil {
		return nil, matched, err
	}

	return conv.Response(), matched, nil
}
